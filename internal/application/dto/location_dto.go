package dto

import "time"

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Code                  string `json:"code" validate:"required,min=1,max=50"`
	Name                  string `json:"name" validate:"required,min=1,max=200"`
	Description           string `json:"description"`
	Type                  string `json:"type" validate:"required,oneof=warehouse site department"`
	Building              string `json:"building"`
	Floor                 int    `json:"floor"`
	Address               string `json:"address"`
	MaxCapacity           int    `json:"max_capacity"`
	ResponsibleDepartment string `json:"responsible_department"`
}

// UpdateLocationRequest entrada para actualizar una ubicación.
type UpdateLocationRequest struct {
	Name                  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description           *string `json:"description"`
	Building              *string `json:"building"`
	Floor                 *int    `json:"floor"`
	Address               *string `json:"address"`
	MaxCapacity           *int    `json:"max_capacity"`
	ResponsibleDepartment *string `json:"responsible_department"`
	Active                *bool   `json:"active"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID                    string    `json:"id"`
	Code                  string    `json:"code"`
	Name                  string    `json:"name"`
	Description           string    `json:"description,omitempty"`
	Type                  string    `json:"type"`
	Building              string    `json:"building,omitempty"`
	Floor                 int       `json:"floor,omitempty"`
	Address               string    `json:"address,omitempty"`
	MaxCapacity           int       `json:"max_capacity,omitempty"`
	ResponsibleDepartment string    `json:"responsible_department,omitempty"`
	Active                bool      `json:"active"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// LocationListResponse lista paginada de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
