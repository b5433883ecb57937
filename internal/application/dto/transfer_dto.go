package dto

import "time"

// CreateTransferRequest entrada para solicitar un traslado.
type CreateTransferRequest struct {
	MaterialID     string `json:"material_id" validate:"required"`
	FromLocationID string `json:"from_location_id" validate:"required"`
	ToLocationID   string `json:"to_location_id" validate:"required"`
	Quantity       int    `json:"quantity" validate:"required,gt=0"`
	Reason         string `json:"reason"`
	Notes          string `json:"notes"`
}

// ConfirmTransferRequest entrada para confirmar (ejecutar) un traslado.
type ConfirmTransferRequest struct {
	ConfirmedBy string `json:"confirmed_by"`
}

// CancelTransferRequest entrada para cancelar un traslado pendiente.
type CancelTransferRequest struct {
	Reason string `json:"reason"`
}

// TransferResponse salida de una solicitud de traslado.
// InsufficientAtCreation es el aviso consultivo al crear: la solicitud se
// registró aunque el stock no alcanzara en ese momento.
type TransferResponse struct {
	ID                     string     `json:"id"`
	MaterialID             string     `json:"material_id"`
	FromLocationID         string     `json:"from_location_id"`
	ToLocationID           string     `json:"to_location_id"`
	Quantity               int        `json:"quantity"`
	Reason                 string     `json:"reason,omitempty"`
	Notes                  string     `json:"notes,omitempty"`
	RequestedBy            string     `json:"requested_by"`
	RequestedAt            time.Time  `json:"requested_at"`
	Status                 string     `json:"status"`
	ConfirmedBy            string     `json:"confirmed_by,omitempty"`
	ConfirmedAt            *time.Time `json:"confirmed_at,omitempty"`
	InsufficientAtCreation bool       `json:"insufficient_at_creation,omitempty"`
}

// TransferListResponse lista paginada de traslados con contador de pendientes.
type TransferListResponse struct {
	Items        []TransferResponse `json:"items"`
	PendingCount int                `json:"pending_count"`
	Page         PageResponse       `json:"page"`
}
