package dto

import "time"

// Form2Data datos listos para imprimir del formulario 2 (inventario físico anual).
type Form2Data struct {
	Year         int        `json:"year"`
	LocationName string     `json:"location_name,omitempty"`
	FormNumber   string     `json:"form_number"`
	GeneratedAt  time.Time  `json:"generated_at"`
	Rows         []Form2Row `json:"rows"`
}

// Form2Row un renglón del formulario 2.
type Form2Row struct {
	Sequence         int    `json:"sequence"`
	MaterialCode     string `json:"material_code"`
	MaterialName     string `json:"material_name"`
	Unit             string `json:"unit"`
	LocationName     string `json:"location_name"`
	RecordedQuantity int    `json:"recorded_quantity"`
	ActualQuantity   int    `json:"actual_quantity"`
	Difference       int    `json:"difference"`
	Condition        string `json:"condition"`
	Notes            string `json:"notes,omitempty"`
}

// Form5Data datos listos para imprimir del formulario 5 (consumo y bajas).
type Form5Data struct {
	Year        int        `json:"year"`
	FormNumber  string     `json:"form_number"`
	GeneratedAt time.Time  `json:"generated_at"`
	Rows        []Form5Row `json:"rows"`
	TotalLoss   string     `json:"total_loss"`
}

// Form5Row un renglón del formulario 5.
type Form5Row struct {
	Sequence         int    `json:"sequence"`
	MaterialCode     string `json:"material_code"`
	MaterialName     string `json:"material_name"`
	Unit             string `json:"unit"`
	ConsumedQuantity int    `json:"consumed_quantity"`
	Reason           string `json:"reason"`
	Decision         string `json:"decision"`
	OriginalValue    string `json:"original_value"`
	ResidualValue    string `json:"residual_value"`
	LossValue        string `json:"loss_value"`
	Notes            string `json:"notes,omitempty"`
}
