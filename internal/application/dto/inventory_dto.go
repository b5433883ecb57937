package dto

import "time"

// CreateInventoryRecordRequest entrada para un renglón del inventario físico
// anual (formulario 2).
type CreateInventoryRecordRequest struct {
	MaterialID     string    `json:"material_id" validate:"required"`
	LocationID     string    `json:"location_id" validate:"required"`
	Year           int       `json:"year"`
	InventoryDate  time.Time `json:"inventory_date"`
	ActualQuantity int       `json:"actual_quantity" validate:"min=0"`
	Condition      string    `json:"condition"`
	ActualLocation string    `json:"actual_location"`
	Department     string    `json:"department"`
	CountedBy      string    `json:"counted_by"`
	Notes          string    `json:"notes"`
}

// UpdateInventoryRecordRequest corrección de un renglón no aprobado.
type UpdateInventoryRecordRequest struct {
	ActualQuantity *int    `json:"actual_quantity" validate:"omitempty,min=0"`
	Condition      *string `json:"condition"`
	ActualLocation *string `json:"actual_location"`
	Department     *string `json:"department"`
	CountedBy      *string `json:"counted_by"`
	Notes          *string `json:"notes"`
}

// ApproveInventoryRecordRequest aprobación del renglón, con aplicación
// opcional de la diferencia al stock.
type ApproveInventoryRecordRequest struct {
	ApprovedBy   string `json:"approved_by"`
	ApplyToStock bool   `json:"apply_to_stock"`
}

// InventoryRecordResponse salida de un renglón del formulario 2.
type InventoryRecordResponse struct {
	ID               string     `json:"id"`
	SequenceNumber   int        `json:"sequence_number"`
	MaterialID       string     `json:"material_id"`
	LocationID       string     `json:"location_id"`
	Year             int        `json:"year"`
	InventoryDate    time.Time  `json:"inventory_date"`
	ActualQuantity   int        `json:"actual_quantity"`
	RecordedQuantity int        `json:"recorded_quantity"`
	Difference       int        `json:"difference"`
	Condition        string     `json:"condition"`
	ActualLocation   string     `json:"actual_location,omitempty"`
	Department       string     `json:"department,omitempty"`
	CountedBy        string     `json:"counted_by,omitempty"`
	Approved         bool       `json:"approved"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
	ApprovedBy       string     `json:"approved_by,omitempty"`
	StockUpdated     bool       `json:"stock_updated"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// InventoryRecordListResponse lista paginada de renglones.
type InventoryRecordListResponse struct {
	Items []InventoryRecordResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
