package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateConsumptionRecordRequest entrada para un renglón del reporte de
// consumo y bajas (formulario 5).
type CreateConsumptionRecordRequest struct {
	InventoryRecordID string           `json:"inventory_record_id" validate:"required"`
	ConsumedQuantity  int              `json:"consumed_quantity" validate:"required,gt=0"`
	ReportDate        *time.Time       `json:"report_date"`
	DamagePercentage  *decimal.Decimal `json:"damage_percentage"`
	UsageDurationDays *int             `json:"usage_duration_days"`
	Reason            string           `json:"reason" validate:"required"`
	ReasonDetails     string           `json:"reason_details"`
	CommitteeMembers  string           `json:"committee_members"`
	DeductFromStock   bool             `json:"deduct_from_stock"`
	Notes             string           `json:"notes"`
}

// DecideConsumptionRequest decisión del comité sobre el renglón.
type DecideConsumptionRequest struct {
	Decision      string `json:"decision" validate:"required,oneof=under_review dispose sell repair keep"`
	DecisionNotes string `json:"decision_notes"`
}

// DisposeConsumptionRequest cierre de la baja (desecho o venta).
type DisposeConsumptionRequest struct {
	DisposalMethod string           `json:"disposal_method"`
	DisposalDate   *time.Time       `json:"disposal_date"`
	SaleValue      *decimal.Decimal `json:"sale_value"`
}

// ConsumptionRecordResponse salida de un renglón del formulario 5.
type ConsumptionRecordResponse struct {
	ID                string           `json:"id"`
	SequenceNumber    int              `json:"sequence_number"`
	InventoryRecordID string           `json:"inventory_record_id"`
	ConsumedQuantity  int              `json:"consumed_quantity"`
	ReportDate        time.Time        `json:"report_date"`
	DamagePercentage  *decimal.Decimal `json:"damage_percentage,omitempty"`
	UsageDurationDays *int             `json:"usage_duration_days,omitempty"`
	Reason            string           `json:"reason"`
	ReasonDetails     string           `json:"reason_details,omitempty"`
	Decision          string           `json:"decision"`
	DecisionNotes     string           `json:"decision_notes,omitempty"`
	CommitteeMembers  string           `json:"committee_members,omitempty"`
	OriginalUnitPrice decimal.Decimal  `json:"original_unit_price"`
	OriginalValue     decimal.Decimal  `json:"original_value"`
	ResidualValue     decimal.Decimal  `json:"residual_value"`
	LossValue         decimal.Decimal  `json:"loss_value"`
	Disposed          bool             `json:"disposed"`
	DisposalDate      *time.Time       `json:"disposal_date,omitempty"`
	DisposalMethod    string           `json:"disposal_method,omitempty"`
	SaleValue         *decimal.Decimal `json:"sale_value,omitempty"`
	StockDeducted     bool             `json:"stock_deducted"`
	Notes             string           `json:"notes,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

// ConsumptionRecordListResponse lista paginada de renglones.
type ConsumptionRecordListResponse struct {
	Items []ConsumptionRecordResponse `json:"items"`
	Page  PageResponse                `json:"page"`
}
