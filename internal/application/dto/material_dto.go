package dto

import "time"

// CreateMaterialRequest entrada para crear un material del catálogo.
type CreateMaterialRequest struct {
	Code           string `json:"code" validate:"required,min=1,max=50"`
	Name           string `json:"name" validate:"required,min=1,max=200"`
	Description    string `json:"description"`
	MaterialType   string `json:"material_type"`
	Specifications string `json:"specifications"`
	Unit           string `json:"unit" validate:"required"`
	CategoryID     string `json:"category_id"`
	MinimumStock   int    `json:"minimum_stock"`
	Ownership      string `json:"ownership"`
	Notes          string `json:"notes"`
}

// UpdateMaterialRequest entrada para actualizar un material (campos opcionales).
type UpdateMaterialRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description    *string `json:"description"`
	MaterialType   *string `json:"material_type"`
	Specifications *string `json:"specifications"`
	Unit           *string `json:"unit"`
	CategoryID     *string `json:"category_id"`
	MinimumStock   *int    `json:"minimum_stock"`
	Ownership      *string `json:"ownership"`
	Notes          *string `json:"notes"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID             string    `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	MaterialType   string    `json:"material_type,omitempty"`
	Specifications string    `json:"specifications,omitempty"`
	Unit           string    `json:"unit"`
	CategoryID     string    `json:"category_id,omitempty"`
	MinimumStock   int       `json:"minimum_stock"`
	Ownership      string    `json:"ownership,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MaterialDetailResponse material con sus cifras derivadas (snapshot cargado
// explícitamente: saldos y compras).
type MaterialDetailResponse struct {
	MaterialResponse
	TotalQuantity     int            `json:"total_quantity"`
	LastPurchasePrice string         `json:"last_purchase_price"`
	AveragePrice      string         `json:"average_price"`
	TotalValue        string         `json:"total_value"`
	LowStock          bool           `json:"low_stock"`
	Balances          []StockBalance `json:"balances"`
}

// MaterialListResponse lista paginada de materiales.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
