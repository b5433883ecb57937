package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// InventoryUseCase casos de uso del inventario físico anual (formulario 2).
// La cantidad registrada se congela al crear el renglón; la diferencia
// aprobada se aplica al stock como ajuste, una sola vez, vía ledger.
type InventoryUseCase struct {
	txRunner     stock.TxRunner
	ledger       *stock.Ledger
	recordRepo   repository.InventoryRecordRepository
	materialRepo repository.MaterialRepository
	locationRepo repository.LocationRepository
	stockRepo    repository.StockRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	txRunner stock.TxRunner,
	ledger *stock.Ledger,
	recordRepo repository.InventoryRecordRepository,
	materialRepo repository.MaterialRepository,
	locationRepo repository.LocationRepository,
	stockRepo repository.StockRepository,
) *InventoryUseCase {
	return &InventoryUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		recordRepo:   recordRepo,
		materialRepo: materialRepo,
		locationRepo: locationRepo,
		stockRepo:    stockRepo,
	}
}

// Create registra un renglón del conteo: congela la cantidad según sistema
// en ese instante y asigna el siguiente número de renglón del año.
func (uc *InventoryUseCase) Create(createdBy string, in dto.CreateInventoryRecordRequest) (*dto.InventoryRecordResponse, error) {
	if in.ActualQuantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	m, err := uc.materialRepo.GetByID(in.MaterialID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	l, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	year := in.Year
	if year == 0 {
		year = now.Year()
	}
	invDate := in.InventoryDate
	if invDate.IsZero() {
		invDate = now
	}
	seq, err := uc.recordRepo.NextSequenceNumber(year)
	if err != nil {
		return nil, err
	}
	bal, err := uc.stockRepo.Get(in.MaterialID, in.LocationID)
	if err != nil {
		return nil, err
	}
	recorded := 0
	if bal != nil {
		recorded = bal.Quantity
	}
	condition := in.Condition
	if condition == "" {
		condition = entity.ConditionGood
	}
	rec := &entity.InventoryRecord{
		ID:               uuid.New().String(),
		SequenceNumber:   seq,
		MaterialID:       in.MaterialID,
		LocationID:       in.LocationID,
		Year:             year,
		InventoryDate:    invDate,
		ActualQuantity:   in.ActualQuantity,
		RecordedQuantity: recorded,
		Condition:        condition,
		ActualLocation:   in.ActualLocation,
		Department:       in.Department,
		CountedBy:        in.CountedBy,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
		CreatedBy:        createdBy,
	}
	if err := uc.recordRepo.Create(rec); err != nil {
		return nil, err
	}
	return toInventoryRecordResponse(rec), nil
}

// GetByID obtiene un renglón por ID.
func (uc *InventoryUseCase) GetByID(id string) (*dto.InventoryRecordResponse, error) {
	rec, err := uc.recordRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return toInventoryRecordResponse(rec), nil
}

// Update corrige un renglón no aprobado.
func (uc *InventoryUseCase) Update(id string, in dto.UpdateInventoryRecordRequest) (*dto.InventoryRecordResponse, error) {
	rec, err := uc.recordRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	if rec.Approved {
		return nil, domain.ErrConflict
	}
	if in.ActualQuantity != nil {
		if *in.ActualQuantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		rec.ActualQuantity = *in.ActualQuantity
	}
	if in.Condition != nil {
		rec.Condition = *in.Condition
	}
	if in.ActualLocation != nil {
		rec.ActualLocation = *in.ActualLocation
	}
	if in.Department != nil {
		rec.Department = *in.Department
	}
	if in.CountedBy != nil {
		rec.CountedBy = *in.CountedBy
	}
	if in.Notes != nil {
		rec.Notes = *in.Notes
	}
	rec.UpdatedAt = time.Now()
	if err := uc.recordRepo.Update(rec); err != nil {
		return nil, err
	}
	return toInventoryRecordResponse(rec), nil
}

// Approve aprueba el renglón y, si se solicita, aplica la diferencia al
// stock como ajuste dentro de la misma transacción.
func (uc *InventoryUseCase) Approve(ctx context.Context, id string, in dto.ApproveInventoryRecordRequest) error {
	return uc.txRunner.Run(ctx, func(r stock.Repos) error {
		rec, err := r.Inventory.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if rec.Approved {
			return domain.ErrConflict
		}
		now := time.Now()
		rec.Approved = true
		rec.ApprovedAt = &now
		rec.ApprovedBy = in.ApprovedBy
		rec.UpdatedAt = now
		if in.ApplyToStock {
			if err := uc.applyDifference(r, rec, in.ApprovedBy, now); err != nil {
				return err
			}
		}
		return r.Inventory.Update(rec)
	})
}

// ApplyToStock aplica la diferencia de un renglón ya aprobado que aún no
// haya tocado el stock.
func (uc *InventoryUseCase) ApplyToStock(ctx context.Context, id, actor string) error {
	return uc.txRunner.Run(ctx, func(r stock.Repos) error {
		rec, err := r.Inventory.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if !rec.Approved {
			return domain.ErrConflict
		}
		now := time.Now()
		if err := uc.applyDifference(r, rec, actor, now); err != nil {
			return err
		}
		rec.UpdatedAt = now
		return r.Inventory.Update(rec)
	})
}

// Delete elimina un renglón no aprobado.
func (uc *InventoryUseCase) Delete(id string) error {
	rec, err := uc.recordRepo.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	if rec.Approved {
		return domain.ErrConflict
	}
	return uc.recordRepo.Delete(id)
}

// List lista renglones con filtros.
func (uc *InventoryUseCase) List(filter repository.InventoryRecordFilter) (*dto.InventoryRecordListResponse, error) {
	list, err := uc.recordRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryRecordResponse, 0, len(list))
	for _, rec := range list {
		items = append(items, *toInventoryRecordResponse(rec))
	}
	return &dto.InventoryRecordListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// BuildForm2 arma el formulario 2 imprimible de un año, resolviendo nombres
// de materiales y ubicaciones sobre un snapshot explícito.
func (uc *InventoryUseCase) BuildForm2(year int, locationID string) (*dto.Form2Data, error) {
	records, err := uc.recordRepo.List(repository.InventoryRecordFilter{
		Year:       year,
		LocationID: locationID,
		Limit:      10000,
	})
	if err != nil {
		return nil, err
	}
	form := &dto.Form2Data{
		Year:        year,
		FormNumber:  fmt.Sprintf("2/%d", year),
		GeneratedAt: time.Now(),
		Rows:        make([]dto.Form2Row, 0, len(records)),
	}
	if locationID != "" {
		if l, _ := uc.locationRepo.GetByID(locationID); l != nil {
			form.LocationName = l.Name
		}
	}
	materials := map[string]*entity.Material{}
	locations := map[string]*entity.Location{}
	for _, rec := range records {
		m, ok := materials[rec.MaterialID]
		if !ok {
			m, _ = uc.materialRepo.GetByID(rec.MaterialID)
			materials[rec.MaterialID] = m
		}
		l, ok := locations[rec.LocationID]
		if !ok {
			l, _ = uc.locationRepo.GetByID(rec.LocationID)
			locations[rec.LocationID] = l
		}
		row := dto.Form2Row{
			Sequence:         rec.SequenceNumber,
			RecordedQuantity: rec.RecordedQuantity,
			ActualQuantity:   rec.ActualQuantity,
			Difference:       rec.Difference(),
			Condition:        rec.Condition,
			Notes:            rec.Notes,
		}
		if m != nil {
			row.MaterialCode = m.Code
			row.MaterialName = m.Name
			row.Unit = m.Unit
		}
		if l != nil {
			row.LocationName = l.Name
		}
		form.Rows = append(form.Rows, row)
	}
	return form, nil
}

// applyDifference aplica contado-menos-registrado como ajuste, una sola vez.
func (uc *InventoryUseCase) applyDifference(r stock.Repos, rec *entity.InventoryRecord, actor string, now time.Time) error {
	if rec.StockUpdated {
		return domain.ErrAlreadyApplied
	}
	if delta := rec.Difference(); delta != 0 {
		err := uc.ledger.AdjustInTx(r, stock.MovementInput{
			MaterialID: rec.MaterialID,
			LocationID: rec.LocationID,
			Quantity:   delta,
			Reference:  rec.ID,
			Note:       fmt.Sprintf("ajuste por inventario físico %d", rec.Year),
			Actor:      actor,
		}, now)
		if err != nil {
			return err
		}
	}
	rec.StockUpdated = true
	return nil
}

func toInventoryRecordResponse(rec *entity.InventoryRecord) *dto.InventoryRecordResponse {
	return &dto.InventoryRecordResponse{
		ID:               rec.ID,
		SequenceNumber:   rec.SequenceNumber,
		MaterialID:       rec.MaterialID,
		LocationID:       rec.LocationID,
		Year:             rec.Year,
		InventoryDate:    rec.InventoryDate,
		ActualQuantity:   rec.ActualQuantity,
		RecordedQuantity: rec.RecordedQuantity,
		Difference:       rec.Difference(),
		Condition:        rec.Condition,
		ActualLocation:   rec.ActualLocation,
		Department:       rec.Department,
		CountedBy:        rec.CountedBy,
		Approved:         rec.Approved,
		ApprovedAt:       rec.ApprovedAt,
		ApprovedBy:       rec.ApprovedBy,
		StockUpdated:     rec.StockUpdated,
		Notes:            rec.Notes,
		CreatedAt:        rec.CreatedAt,
	}
}
