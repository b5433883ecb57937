package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN         = "IN"         // entrada (compra, alta manual)
	MovementTypeOUT        = "OUT"        // salida (consumo, baja)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste por inventario físico
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre ubicaciones
)

// StockMovement es la pista de auditoría del ledger: un registro inmutable
// por cada mutación de saldo, con delta firmado.
type StockMovement struct {
	ID         string
	MaterialID string
	LocationID string
	Type       string // IN, OUT, ADJUSTMENT, TRANSFER
	Quantity   int    // positivo entrada/ajuste+, negativo salida
	Reference  string // ID de compra, traslado, registro de inventario...
	Notes      string
	CreatedAt  time.Time
	CreatedBy  string // UserID o identidad del actor
}
