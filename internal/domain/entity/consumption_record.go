package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Motivos de consumo o baja (formulario 5).
const (
	ConsumptionReasonNormalUse        = "normal_use"
	ConsumptionReasonObsolescence     = "obsolescence"
	ConsumptionReasonTechnicalFailure = "technical_failure"
	ConsumptionReasonDamage           = "damage"
	ConsumptionReasonExpiry           = "expiry"
	ConsumptionReasonLoss             = "loss"
)

// Decisiones del comité evaluador.
const (
	DecisionUnderReview = "under_review"
	DecisionDispose     = "dispose" // dar de baja / desechar
	DecisionSell        = "sell"
	DecisionRepair      = "repair"
	DecisionKeep        = "keep"
)

// ConsumptionRecord es una línea del reporte de consumo y bajas (formulario 5),
// siempre ligada a un renglón del inventario físico. La deducción de stock es
// opcional y pasa por el ledger exactamente una vez.
type ConsumptionRecord struct {
	ID                string
	SequenceNumber    int
	InventoryRecordID string
	ConsumedQuantity  int // > 0
	ReportDate        time.Time
	DamagePercentage  *decimal.Decimal // 0..100, nil si no aplica
	UsageDurationDays *int
	Reason            string // normal_use, obsolescence...
	ReasonDetails     string
	Decision          string // under_review, dispose, sell, repair, keep
	DecisionNotes     string
	CommitteeMembers  string
	OriginalUnitPrice decimal.Decimal
	Disposed          bool
	DisposalDate      *time.Time
	DisposalMethod    string
	SaleValue         *decimal.Decimal
	StockDeducted     bool
	CurrentLocation   string
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CreatedBy         string
}

// OriginalValue devuelve cantidad consumida por precio unitario original.
func (c *ConsumptionRecord) OriginalValue() decimal.Decimal {
	return c.OriginalUnitPrice.Mul(decimal.NewFromInt(int64(c.ConsumedQuantity)))
}

// ResidualValue devuelve el valor residual tras aplicar el porcentaje de daño.
// Sin porcentaje declarado el valor residual es cero (baja total).
func (c *ConsumptionRecord) ResidualValue() decimal.Decimal {
	if c.DamagePercentage == nil {
		return decimal.Zero
	}
	remaining := decimal.NewFromInt(100).Sub(*c.DamagePercentage)
	return c.OriginalValue().Mul(remaining).Div(decimal.NewFromInt(100))
}

// LossValue devuelve la pérdida: valor original menos residual.
func (c *ConsumptionRecord) LossValue() decimal.Decimal {
	return c.OriginalValue().Sub(c.ResidualValue())
}
