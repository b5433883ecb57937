package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	domstock "github.com/jhoicas/almacen-api/internal/domain/stock"
)

// ConsumptionUseCase casos de uso del reporte de consumo y bajas
// (formulario 5). Cada renglón nace ligado a un renglón del inventario
// físico; la deducción de stock es opcional y pasa por el ledger una
// sola vez.
type ConsumptionUseCase struct {
	txRunner     stock.TxRunner
	ledger       *stock.Ledger
	recordRepo   repository.ConsumptionRecordRepository
	invRepo      repository.InventoryRecordRepository
	materialRepo repository.MaterialRepository
	purchaseRepo repository.PurchaseRepository
}

// NewConsumptionUseCase construye el caso de uso.
func NewConsumptionUseCase(
	txRunner stock.TxRunner,
	ledger *stock.Ledger,
	recordRepo repository.ConsumptionRecordRepository,
	invRepo repository.InventoryRecordRepository,
	materialRepo repository.MaterialRepository,
	purchaseRepo repository.PurchaseRepository,
) *ConsumptionUseCase {
	return &ConsumptionUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		recordRepo:   recordRepo,
		invRepo:      invRepo,
		materialRepo: materialRepo,
		purchaseRepo: purchaseRepo,
	}
}

var validReasons = map[string]bool{
	entity.ConsumptionReasonNormalUse:        true,
	entity.ConsumptionReasonObsolescence:     true,
	entity.ConsumptionReasonTechnicalFailure: true,
	entity.ConsumptionReasonDamage:           true,
	entity.ConsumptionReasonExpiry:           true,
	entity.ConsumptionReasonLoss:             true,
}

var validDecisions = map[string]bool{
	entity.DecisionUnderReview: true,
	entity.DecisionDispose:     true,
	entity.DecisionSell:        true,
	entity.DecisionRepair:      true,
	entity.DecisionKeep:        true,
}

// Create registra un renglón del formulario 5. El precio unitario original se
// congela al crear, tomando el promedio ponderado de compras del material. Si
// se pide deducir el stock, la deducción ocurre en la misma transacción.
func (uc *ConsumptionUseCase) Create(ctx context.Context, createdBy string, in dto.CreateConsumptionRecordRequest) (*dto.ConsumptionRecordResponse, error) {
	if in.ConsumedQuantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if !validReasons[in.Reason] {
		return nil, domain.ErrInvalidInput
	}
	if in.DamagePercentage != nil {
		pct := *in.DamagePercentage
		if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
			return nil, domain.ErrInvalidInput
		}
	}
	inv, err := uc.invRepo.GetByID(in.InventoryRecordID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	purchases, err := uc.purchaseRepo.ListByMaterial(inv.MaterialID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	reportDate := now
	if in.ReportDate != nil {
		reportDate = *in.ReportDate
	}
	seq, err := uc.recordRepo.NextSequenceNumber(reportDate.Year())
	if err != nil {
		return nil, err
	}
	rec := &entity.ConsumptionRecord{
		ID:                uuid.New().String(),
		SequenceNumber:    seq,
		InventoryRecordID: in.InventoryRecordID,
		ConsumedQuantity:  in.ConsumedQuantity,
		ReportDate:        reportDate,
		DamagePercentage:  in.DamagePercentage,
		UsageDurationDays: in.UsageDurationDays,
		Reason:            in.Reason,
		ReasonDetails:     in.ReasonDetails,
		Decision:          entity.DecisionUnderReview,
		CommitteeMembers:  in.CommitteeMembers,
		OriginalUnitPrice: domstock.AveragePrice(purchases),
		CurrentLocation:   inv.ActualLocation,
		Notes:             in.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
		CreatedBy:         createdBy,
	}
	err = uc.txRunner.Run(ctx, func(r stock.Repos) error {
		if in.DeductFromStock {
			err := uc.ledger.DecreaseInTx(r, stock.MovementInput{
				MaterialID: inv.MaterialID,
				LocationID: inv.LocationID,
				Quantity:   in.ConsumedQuantity,
				Reference:  rec.ID,
				Note:       fmt.Sprintf("baja por %s", in.Reason),
				Actor:      createdBy,
			}, now)
			if err != nil {
				return err
			}
			rec.StockDeducted = true
		}
		return r.Consumption.Create(rec)
	})
	if err != nil {
		return nil, err
	}
	return toConsumptionRecordResponse(rec), nil
}

// GetByID obtiene un renglón por ID.
func (uc *ConsumptionUseCase) GetByID(id string) (*dto.ConsumptionRecordResponse, error) {
	rec, err := uc.recordRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return toConsumptionRecordResponse(rec), nil
}

// Decide registra la decisión del comité evaluador.
func (uc *ConsumptionUseCase) Decide(id string, in dto.DecideConsumptionRequest) (*dto.ConsumptionRecordResponse, error) {
	if !validDecisions[in.Decision] {
		return nil, domain.ErrInvalidInput
	}
	rec, err := uc.recordRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	if rec.Disposed {
		return nil, domain.ErrConflict
	}
	rec.Decision = in.Decision
	rec.DecisionNotes = in.DecisionNotes
	rec.UpdatedAt = time.Now()
	if err := uc.recordRepo.Update(rec); err != nil {
		return nil, err
	}
	return toConsumptionRecordResponse(rec), nil
}

// Dispose cierra la baja: registra método, fecha y valor de venta si lo hay.
// Exige una decisión de baja o venta previa del comité.
func (uc *ConsumptionUseCase) Dispose(id string, in dto.DisposeConsumptionRequest) (*dto.ConsumptionRecordResponse, error) {
	rec, err := uc.recordRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	if rec.Disposed {
		return nil, domain.ErrConflict
	}
	if rec.Decision != entity.DecisionDispose && rec.Decision != entity.DecisionSell {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	disposalDate := now
	if in.DisposalDate != nil {
		disposalDate = *in.DisposalDate
	}
	rec.Disposed = true
	rec.DisposalDate = &disposalDate
	rec.DisposalMethod = in.DisposalMethod
	rec.SaleValue = in.SaleValue
	rec.UpdatedAt = now
	if err := uc.recordRepo.Update(rec); err != nil {
		return nil, err
	}
	return toConsumptionRecordResponse(rec), nil
}

// DeductFromStock deduce el stock de un renglón que no lo dedujo al crearse.
func (uc *ConsumptionUseCase) DeductFromStock(ctx context.Context, id, actor string) error {
	return uc.txRunner.Run(ctx, func(r stock.Repos) error {
		rec, err := r.Consumption.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if rec.StockDeducted {
			return domain.ErrAlreadyApplied
		}
		inv, err := r.Inventory.GetByIDForUpdate(rec.InventoryRecordID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		err = uc.ledger.DecreaseInTx(r, stock.MovementInput{
			MaterialID: inv.MaterialID,
			LocationID: inv.LocationID,
			Quantity:   rec.ConsumedQuantity,
			Reference:  rec.ID,
			Note:       fmt.Sprintf("baja por %s", rec.Reason),
			Actor:      actor,
		}, now)
		if err != nil {
			return err
		}
		rec.StockDeducted = true
		rec.UpdatedAt = now
		return r.Consumption.Update(rec)
	})
}

// Delete elimina un renglón que no haya deducido stock.
func (uc *ConsumptionUseCase) Delete(id string) error {
	rec, err := uc.recordRepo.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	if rec.StockDeducted {
		return domain.ErrConflict
	}
	return uc.recordRepo.Delete(id)
}

// List lista renglones con filtros.
func (uc *ConsumptionUseCase) List(filter repository.ConsumptionRecordFilter) (*dto.ConsumptionRecordListResponse, error) {
	list, err := uc.recordRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ConsumptionRecordResponse, 0, len(list))
	for _, rec := range list {
		items = append(items, *toConsumptionRecordResponse(rec))
	}
	return &dto.ConsumptionRecordListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// BuildForm5 arma el formulario 5 imprimible de un año, con el total de
// pérdida acumulado de todos los renglones.
func (uc *ConsumptionUseCase) BuildForm5(year int) (*dto.Form5Data, error) {
	records, err := uc.recordRepo.List(repository.ConsumptionRecordFilter{
		Year:  year,
		Limit: 10000,
	})
	if err != nil {
		return nil, err
	}
	form := &dto.Form5Data{
		Year:        year,
		FormNumber:  fmt.Sprintf("5/%d", year),
		GeneratedAt: time.Now(),
		Rows:        make([]dto.Form5Row, 0, len(records)),
	}
	totalLoss := decimal.Zero
	materials := map[string]*entity.Material{}
	for _, rec := range records {
		row := dto.Form5Row{
			Sequence:         rec.SequenceNumber,
			ConsumedQuantity: rec.ConsumedQuantity,
			Reason:           rec.Reason,
			Decision:         rec.Decision,
			OriginalValue:    rec.OriginalValue().StringFixed(2),
			ResidualValue:    rec.ResidualValue().StringFixed(2),
			LossValue:        rec.LossValue().StringFixed(2),
			Notes:            rec.Notes,
		}
		if inv, _ := uc.invRepo.GetByID(rec.InventoryRecordID); inv != nil {
			m, ok := materials[inv.MaterialID]
			if !ok {
				m, _ = uc.materialRepo.GetByID(inv.MaterialID)
				materials[inv.MaterialID] = m
			}
			if m != nil {
				row.MaterialCode = m.Code
				row.MaterialName = m.Name
				row.Unit = m.Unit
			}
		}
		totalLoss = totalLoss.Add(rec.LossValue())
		form.Rows = append(form.Rows, row)
	}
	form.TotalLoss = totalLoss.StringFixed(2)
	return form, nil
}

func toConsumptionRecordResponse(rec *entity.ConsumptionRecord) *dto.ConsumptionRecordResponse {
	return &dto.ConsumptionRecordResponse{
		ID:                rec.ID,
		SequenceNumber:    rec.SequenceNumber,
		InventoryRecordID: rec.InventoryRecordID,
		ConsumedQuantity:  rec.ConsumedQuantity,
		ReportDate:        rec.ReportDate,
		DamagePercentage:  rec.DamagePercentage,
		UsageDurationDays: rec.UsageDurationDays,
		Reason:            rec.Reason,
		ReasonDetails:     rec.ReasonDetails,
		Decision:          rec.Decision,
		DecisionNotes:     rec.DecisionNotes,
		CommitteeMembers:  rec.CommitteeMembers,
		OriginalUnitPrice: rec.OriginalUnitPrice,
		OriginalValue:     rec.OriginalValue(),
		ResidualValue:     rec.ResidualValue(),
		LossValue:         rec.LossValue(),
		Disposed:          rec.Disposed,
		DisposalDate:      rec.DisposalDate,
		DisposalMethod:    rec.DisposalMethod,
		SaleValue:         rec.SaleValue,
		StockDeducted:     rec.StockDeducted,
		Notes:             rec.Notes,
		CreatedAt:         rec.CreatedAt,
	}
}
