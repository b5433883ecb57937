// Package transfer implementa el flujo de solicitudes de traslado sobre el
// ledger: creación con chequeo consultivo, confirmación con re-validación
// autoritativa dentro de la transacción, cancelación y eliminación según la
// máquina de estados requested → executed | cancelled.
package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UseCase casos de uso del flujo de traslados.
type UseCase struct {
	txRunner     stock.TxRunner
	ledger       *stock.Ledger
	transferRepo repository.TransferRepository
	stockRepo    repository.StockRepository
	materialRepo repository.MaterialRepository
	locationRepo repository.LocationRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner stock.TxRunner,
	ledger *stock.Ledger,
	transferRepo repository.TransferRepository,
	stockRepo repository.StockRepository,
	materialRepo repository.MaterialRepository,
	locationRepo repository.LocationRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		transferRepo: transferRepo,
		stockRepo:    stockRepo,
		materialRepo: materialRepo,
		locationRepo: locationRepo,
	}
}

// Create registra una solicitud de traslado en estado requested.
//
// El chequeo de disponibilidad aquí es consultivo: avisa al operador si al
// momento de solicitar no alcanza el stock, pero no bloquea la creación ni
// reserva cantidad. El chequeo autoritativo se repite en Confirm porque el
// saldo puede haber cambiado entre solicitud y confirmación.
func (uc *UseCase) Create(ctx context.Context, requestedBy string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.FromLocationID == in.ToLocationID {
		return nil, domain.ErrSameLocation
	}
	material, err := uc.materialRepo.GetByID(in.MaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil || !material.IsActive() {
		return nil, domain.ErrNotFound
	}
	from, err := uc.locationRepo.GetByID(in.FromLocationID)
	if err != nil {
		return nil, err
	}
	to, err := uc.locationRepo.GetByID(in.ToLocationID)
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, domain.ErrNotFound
	}

	bal, err := uc.ledger.GetBalance(in.MaterialID, in.FromLocationID)
	if err != nil {
		return nil, err
	}
	warning := bal.Available() < in.Quantity

	now := time.Now()
	t := &entity.Transfer{
		ID:             uuid.New().String(),
		MaterialID:     in.MaterialID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		Reason:         in.Reason,
		Notes:          in.Notes,
		RequestedBy:    requestedBy,
		RequestedAt:    now,
		Status:         entity.TransferStatusRequested,
		CreatedAt:      now,
	}
	if err := uc.transferRepo.Create(t); err != nil {
		return nil, err
	}
	out := toTransferResponse(t)
	out.InsufficientAtCreation = warning
	return out, nil
}

// Confirm ejecuta el traslado: dentro de una sola transacción bloquea la
// solicitud, re-verifica la disponibilidad del origen contra el saldo actual
// y aplica ambos lados del movimiento. Si cualquier paso falla todo se
// revierte y la solicitud permanece en requested.
func (uc *UseCase) Confirm(ctx context.Context, id, confirmedBy string) error {
	return uc.txRunner.Run(ctx, func(r stock.Repos) error {
		t, err := r.Transfers.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		switch t.Status {
		case entity.TransferStatusExecuted:
			return domain.ErrAlreadyExecuted
		case entity.TransferStatusCancelled:
			return domain.ErrAlreadyCancelled
		}
		now := time.Now()
		err = uc.ledger.TransferInTx(r, stock.TransferInput{
			MaterialID:     t.MaterialID,
			FromLocationID: t.FromLocationID,
			ToLocationID:   t.ToLocationID,
			Quantity:       t.Quantity,
			Reference:      t.ID,
			Note:           t.Reason,
			Actor:          confirmedBy,
		}, now)
		if err != nil {
			return err
		}
		t.Status = entity.TransferStatusExecuted
		t.ConfirmedBy = confirmedBy
		t.ConfirmedAt = &now
		return r.Transfers.Update(t)
	})
}

// Cancel marca una solicitud pendiente como cancelada y anexa el motivo.
// Un traslado ejecutado no puede cancelarse.
func (uc *UseCase) Cancel(ctx context.Context, id, reason string) error {
	return uc.txRunner.Run(ctx, func(r stock.Repos) error {
		t, err := r.Transfers.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		switch t.Status {
		case entity.TransferStatusExecuted:
			return domain.ErrAlreadyExecuted
		case entity.TransferStatusCancelled:
			return domain.ErrAlreadyCancelled
		}
		t.Status = entity.TransferStatusCancelled
		if reason != "" {
			if t.Notes != "" {
				t.Notes += "\n"
			}
			t.Notes += "cancelado: " + reason
		}
		return r.Transfers.Update(t)
	})
}

// Delete elimina una solicitud en requested o cancelled. Un traslado
// ejecutado es inmutable y no puede eliminarse.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(r stock.Repos) error {
		t, err := r.Transfers.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.Status == entity.TransferStatusExecuted {
			return domain.ErrAlreadyExecuted
		}
		return r.Transfers.Delete(t.ID)
	})
}

// GetByID obtiene una solicitud por ID.
func (uc *UseCase) GetByID(id string) (*dto.TransferResponse, error) {
	t, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return toTransferResponse(t), nil
}

// List lista solicitudes con filtros.
func (uc *UseCase) List(filter repository.TransferFilter) (*dto.TransferListResponse, error) {
	list, err := uc.transferRepo.List(filter)
	if err != nil {
		return nil, err
	}
	pending, err := uc.transferRepo.CountByStatus(entity.TransferStatusRequested)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransferResponse(t))
	}
	return &dto.TransferListResponse{
		Items:        items,
		PendingCount: pending,
		Page:         dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Pending lista solo las solicitudes en requested.
func (uc *UseCase) Pending(limit, offset int) (*dto.TransferListResponse, error) {
	return uc.List(repository.TransferFilter{
		Status: entity.TransferStatusRequested,
		Limit:  limit,
		Offset: offset,
	})
}

func toTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	return &dto.TransferResponse{
		ID:             t.ID,
		MaterialID:     t.MaterialID,
		FromLocationID: t.FromLocationID,
		ToLocationID:   t.ToLocationID,
		Quantity:       t.Quantity,
		Reason:         t.Reason,
		Notes:          t.Notes,
		RequestedBy:    t.RequestedBy,
		RequestedAt:    t.RequestedAt,
		Status:         t.Status,
		ConfirmedBy:    t.ConfirmedBy,
		ConfirmedAt:    t.ConfirmedAt,
	}
}
