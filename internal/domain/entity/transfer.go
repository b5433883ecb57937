package entity

import "time"

// Estados de un traslado. Un solo enum en lugar de banderas independientes:
// los estados ilegales (ejecutado y cancelado a la vez) no son representables.
const (
	TransferStatusRequested = "requested" // inicial
	TransferStatusExecuted  = "executed"  // terminal
	TransferStatusCancelled = "cancelled" // terminal
)

// Transfer representa una solicitud de traslado de un material entre dos
// ubicaciones. Pasa exactamente una vez de requested a executed (vía
// confirmación) o a cancelled; ejecutado es inmutable.
type Transfer struct {
	ID             string
	MaterialID     string
	FromLocationID string
	ToLocationID   string
	Quantity       int // > 0
	Reason         string
	Notes          string
	RequestedBy    string
	RequestedAt    time.Time
	Status         string // requested, executed, cancelled
	ConfirmedBy    string
	ConfirmedAt    *time.Time
	CreatedAt      time.Time
}

// IsTerminal indica si el traslado ya no admite transiciones.
func (t *Transfer) IsTerminal() bool {
	return t.Status == TransferStatusExecuted || t.Status == TransferStatusCancelled
}
