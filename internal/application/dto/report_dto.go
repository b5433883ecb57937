package dto

import "time"

// LowStockItemDTO fila del reporte de stock bajo.
type LowStockItemDTO struct {
	MaterialID    string `json:"material_id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	Unit          string `json:"unit"`
	MinimumStock  int    `json:"minimum_stock"`
	TotalQuantity int    `json:"total_quantity"`
	Deficit       int    `json:"deficit"`
}

// ExpiringItemDTO fila del reporte de vencimientos.
type ExpiringItemDTO struct {
	MaterialID   string    `json:"material_id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	LocationID   string    `json:"location_id"`
	LocationName string    `json:"location_name"`
	Quantity     int       `json:"quantity"`
	BatchNumber  string    `json:"batch_number,omitempty"`
	ExpiryDate   time.Time `json:"expiry_date"`
	DaysLeft     int       `json:"days_left"`
}

// LocationSummaryDTO resumen de existencias de una ubicación.
type LocationSummaryDTO struct {
	LocationID   string                   `json:"location_id"`
	LocationName string                   `json:"location_name"`
	Items        []LocationSummaryItemDTO `json:"items"`
	TotalUnits   int                      `json:"total_units"`
}

// LocationSummaryItemDTO una línea del resumen de ubicación.
type LocationSummaryItemDTO struct {
	MaterialID        string `json:"material_id"`
	Code              string `json:"code"`
	Name              string `json:"name"`
	Unit              string `json:"unit"`
	Quantity          int    `json:"quantity"`
	ReservedQuantity  int    `json:"reserved_quantity"`
	AvailableQuantity int    `json:"available_quantity"`
	Condition         string `json:"condition"`
}

// YearlyPurchasesDTO reporte anual de compras.
type YearlyPurchasesDTO struct {
	Year       int                    `json:"year"`
	Rows       []YearlyPurchaseRowDTO `json:"rows"`
	TotalValue string                 `json:"total_value"`
}

// YearlyPurchaseRowDTO agregado anual por material.
type YearlyPurchaseRowDTO struct {
	MaterialID    string `json:"material_id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	PurchaseCount int    `json:"purchase_count"`
	TotalQuantity int    `json:"total_quantity"`
	TotalValue    string `json:"total_value"`
}

// DashboardDTO totales del tablero.
type DashboardDTO struct {
	TotalMaterials   int    `json:"total_materials"`
	TotalLocations   int    `json:"total_locations"`
	TotalStockUnits  int    `json:"total_stock_units"`
	PendingTransfers int    `json:"pending_transfers"`
	LowStockCount    int    `json:"low_stock_count"`
	ExpiringCount    int    `json:"expiring_count"`
	InventoryValue   string `json:"inventory_value"`
	GeneratedAt      string `json:"generated_at"`
}
