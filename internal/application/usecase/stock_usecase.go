package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StockUseCase expone el ledger hacia la capa HTTP: consulta de saldos,
// entradas/salidas manuales y pista de auditoría. Toda mutación pasa por el
// ledger; este caso de uso nunca escribe saldos directamente.
type StockUseCase struct {
	ledger       *stock.Ledger
	stockRepo    repository.StockRepository
	movementRepo repository.StockMovementRepository
	materialRepo repository.MaterialRepository
	locationRepo repository.LocationRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	ledger *stock.Ledger,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	materialRepo repository.MaterialRepository,
	locationRepo repository.LocationRepository,
) *StockUseCase {
	return &StockUseCase{
		ledger:       ledger,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		materialRepo: materialRepo,
		locationRepo: locationRepo,
	}
}

// Balance devuelve el saldo de la pareja material+ubicación (en cero si no hay fila).
func (uc *StockUseCase) Balance(materialID, locationID string) (*dto.StockBalance, error) {
	bal, err := uc.ledger.GetBalance(materialID, locationID)
	if err != nil {
		return nil, err
	}
	out := toStockBalanceDTO(bal)
	return &out, nil
}

// ListByLocation lista los saldos de una ubicación.
func (uc *StockUseCase) ListByLocation(locationID string, limit, offset int) (*dto.StockBalanceListResponse, error) {
	list, err := uc.stockRepo.ListByLocation(locationID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockBalance, 0, len(list))
	for _, b := range list {
		items = append(items, toStockBalanceDTO(b))
	}
	return &dto.StockBalanceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Increase registra una entrada manual de stock.
func (uc *StockUseCase) Increase(ctx context.Context, actor string, in dto.AdjustStockRequest) error {
	if err := uc.checkRefs(in.MaterialID, in.LocationID); err != nil {
		return err
	}
	return uc.ledger.Increase(ctx, stock.MovementInput{
		MaterialID:  in.MaterialID,
		LocationID:  in.LocationID,
		Quantity:    in.Quantity,
		Note:        in.Note,
		Actor:       actor,
		BatchNumber: in.BatchNumber,
		ExpiryDate:  in.ExpiryDate,
	})
}

// Decrease registra una salida manual de stock.
func (uc *StockUseCase) Decrease(ctx context.Context, actor string, in dto.AdjustStockRequest) error {
	if err := uc.checkRefs(in.MaterialID, in.LocationID); err != nil {
		return err
	}
	return uc.ledger.Decrease(ctx, stock.MovementInput{
		MaterialID: in.MaterialID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		Note:       in.Note,
		Actor:      actor,
	})
}

// DeleteBalance elimina administrativamente un saldo en cero.
func (uc *StockUseCase) DeleteBalance(ctx context.Context, materialID, locationID string) error {
	return uc.ledger.DeleteBalance(ctx, materialID, locationID)
}

// MovementsByMaterial lista la pista de auditoría de un material.
func (uc *StockUseCase) MovementsByMaterial(materialID string, from, to *time.Time, limit, offset int) (*dto.StockMovementListResponse, error) {
	list, err := uc.movementRepo.ListByMaterial(materialID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementList(list, limit, offset), nil
}

// MovementsByLocation lista la pista de auditoría de una ubicación.
func (uc *StockUseCase) MovementsByLocation(locationID string, from, to *time.Time, limit, offset int) (*dto.StockMovementListResponse, error) {
	list, err := uc.movementRepo.ListByLocation(locationID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementList(list, limit, offset), nil
}

func (uc *StockUseCase) checkRefs(materialID, locationID string) error {
	m, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return err
	}
	if m == nil || !m.IsActive() {
		return domain.ErrNotFound
	}
	l, err := uc.locationRepo.GetByID(locationID)
	if err != nil {
		return err
	}
	if l == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toMovementList(list []*entity.StockMovement, limit, offset int) *dto.StockMovementListResponse {
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.StockMovementResponse{
			ID:         m.ID,
			MaterialID: m.MaterialID,
			LocationID: m.LocationID,
			Type:       m.Type,
			Quantity:   m.Quantity,
			Reference:  m.Reference,
			Notes:      m.Notes,
			CreatedAt:  m.CreatedAt,
			CreatedBy:  m.CreatedBy,
		})
	}
	return &dto.StockMovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}
