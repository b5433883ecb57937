package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LowStockItem fila cruda del reporte de stock bajo: materiales activos cuyo
// total en existencia está en o bajo su mínimo.
type LowStockItem struct {
	MaterialID    string
	Code          string
	Name          string
	Unit          string
	MinimumStock  int
	TotalQuantity int
}

// ExpiringItem fila cruda del reporte de vencimientos.
type ExpiringItem struct {
	MaterialID   string
	Code         string
	Name         string
	LocationID   string
	LocationName string
	Quantity     int
	BatchNumber  string
	ExpiryDate   time.Time
}

// LocationSummaryItem existencia de un material dentro de una ubicación.
type LocationSummaryItem struct {
	MaterialID       string
	Code             string
	Name             string
	Unit             string
	Quantity         int
	ReservedQuantity int
	Condition        string
}

// YearlyPurchaseRow agregado anual de compras por material, en moneda local.
type YearlyPurchaseRow struct {
	MaterialID    string
	Code          string
	Name          string
	PurchaseCount int
	TotalQuantity int
	TotalValue    decimal.Decimal
}

// DashboardStats totales del tablero.
type DashboardStats struct {
	TotalMaterials   int
	TotalLocations   int
	TotalStockUnits  int
	PendingTransfers int
	LowStockCount    int
	ExpiringCount    int
	InventoryValue   decimal.Decimal
}

// ReportRepository define el puerto de consultas agregadas de solo lectura.
// Nunca muta saldos; el ledger es el único camino de escritura.
type ReportRepository interface {
	LowStockItems(ctx context.Context) ([]LowStockItem, error)
	ExpiringItems(ctx context.Context, days int) ([]ExpiringItem, error)
	LocationSummary(ctx context.Context, locationID string) ([]LocationSummaryItem, error)
	YearlyPurchases(ctx context.Context, year int) ([]YearlyPurchaseRow, error)
	DashboardStats(ctx context.Context, expiryDays int) (*DashboardStats, error)
}
