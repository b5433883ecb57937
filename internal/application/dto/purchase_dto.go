package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest entrada para registrar una adquisición.
type CreatePurchaseRequest struct {
	MaterialID     string          `json:"material_id" validate:"required"`
	LocationID     string          `json:"location_id" validate:"required"`
	Quantity       int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Currency       string          `json:"currency"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate"`
	Supplier       string          `json:"supplier"`
	InvoiceNumber  string          `json:"invoice_number"`
	Method         string          `json:"method" validate:"omitempty,oneof=purchase donation transfer"`
	TransferSource string          `json:"transfer_source"`
	BatchNumber    string          `json:"batch_number"`
	ExpiryDate     *time.Time      `json:"expiry_date"`
	PurchaseDate   *time.Time      `json:"purchase_date"`
	Notes          string          `json:"notes"`
}

// UpdatePurchaseRequest entrada para corregir una compra aún no ingresada a stock.
type UpdatePurchaseRequest struct {
	Quantity      *int             `json:"quantity" validate:"omitempty,gt=0"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	Supplier      *string          `json:"supplier"`
	InvoiceNumber *string          `json:"invoice_number"`
	BatchNumber   *string          `json:"batch_number"`
	ExpiryDate    *time.Time       `json:"expiry_date"`
	Notes         *string          `json:"notes"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID             string          `json:"id"`
	MaterialID     string          `json:"material_id"`
	LocationID     string          `json:"location_id"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Currency       string          `json:"currency"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate"`
	TotalLocal     decimal.Decimal `json:"total_local"`
	Supplier       string          `json:"supplier,omitempty"`
	InvoiceNumber  string          `json:"invoice_number,omitempty"`
	Method         string          `json:"method"`
	TransferSource string          `json:"transfer_source,omitempty"`
	BatchNumber    string          `json:"batch_number,omitempty"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
	PurchaseDate   time.Time       `json:"purchase_date"`
	AddedToStock   bool            `json:"added_to_stock"`
	AddedToStockAt *time.Time      `json:"added_to_stock_at,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
