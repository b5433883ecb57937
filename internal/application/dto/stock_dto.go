package dto

import "time"

// StockBalance salida de un saldo material+ubicación.
type StockBalance struct {
	MaterialID        string     `json:"material_id"`
	LocationID        string     `json:"location_id"`
	Quantity          int        `json:"quantity"`
	ReservedQuantity  int        `json:"reserved_quantity"`
	AvailableQuantity int        `json:"available_quantity"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	BatchNumber       string     `json:"batch_number,omitempty"`
	Condition         string     `json:"condition"`
	Notes             string     `json:"notes,omitempty"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// AdjustStockRequest entrada para una entrada/salida manual de stock. Lote y
// vencimiento solo aplican a las entradas; las salidas los ignoran.
type AdjustStockRequest struct {
	MaterialID  string     `json:"material_id" validate:"required"`
	LocationID  string     `json:"location_id" validate:"required"`
	Quantity    int        `json:"quantity" validate:"required,gt=0"`
	Note        string     `json:"note"`
	BatchNumber string     `json:"batch_number"`
	ExpiryDate  *time.Time `json:"expiry_date"`
}

// StockMovementResponse un registro de la pista de auditoría.
type StockMovementResponse struct {
	ID         string    `json:"id"`
	MaterialID string    `json:"material_id"`
	LocationID string    `json:"location_id"`
	Type       string    `json:"type"`
	Quantity   int       `json:"quantity"`
	Reference  string    `json:"reference,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	CreatedBy  string    `json:"created_by,omitempty"`
}

// StockMovementListResponse lista paginada de movimientos.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// StockBalanceListResponse lista paginada de saldos.
type StockBalanceListResponse struct {
	Items []StockBalance `json:"items"`
	Page  PageResponse   `json:"page"`
}
