package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	domstock "github.com/jhoicas/almacen-api/internal/domain/stock"
	"github.com/jhoicas/almacen-api/pkg/textutil"
)

// MaterialUseCase casos de uso del catálogo de materiales.
type MaterialUseCase struct {
	materialRepo repository.MaterialRepository
	stockRepo    repository.StockRepository
	purchaseRepo repository.PurchaseRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(
	materialRepo repository.MaterialRepository,
	stockRepo repository.StockRepository,
	purchaseRepo repository.PurchaseRepository,
) *MaterialUseCase {
	return &MaterialUseCase{materialRepo: materialRepo, stockRepo: stockRepo, purchaseRepo: purchaseRepo}
}

// Create da de alta un material. El código de catalogación es único.
func (uc *MaterialUseCase) Create(createdBy string, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	existing, err := uc.materialRepo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	m := &entity.Material{
		ID:             uuid.New().String(),
		Code:           in.Code,
		Name:           in.Name,
		Description:    in.Description,
		MaterialType:   in.MaterialType,
		Specifications: in.Specifications,
		Unit:           in.Unit,
		CategoryID:     in.CategoryID,
		MinimumStock:   in.MinimumStock,
		Ownership:      in.Ownership,
		Notes:          in.Notes,
		Status:         entity.MaterialStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      createdBy,
	}
	if err := uc.materialRepo.Create(m); err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// GetByID obtiene un material por ID.
func (uc *MaterialUseCase) GetByID(id string) (*dto.MaterialResponse, error) {
	m, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return toMaterialResponse(m), nil
}

// Detail obtiene un material con sus cifras derivadas, calculadas sobre un
// snapshot cargado explícitamente de saldos y compras.
func (uc *MaterialUseCase) Detail(id string) (*dto.MaterialDetailResponse, error) {
	m, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	balances, err := uc.stockRepo.ListByMaterial(id)
	if err != nil {
		return nil, err
	}
	purchases, err := uc.purchaseRepo.ListByMaterial(id)
	if err != nil {
		return nil, err
	}
	out := &dto.MaterialDetailResponse{
		MaterialResponse:  *toMaterialResponse(m),
		TotalQuantity:     domstock.TotalQuantity(balances),
		LastPurchasePrice: domstock.LastPurchasePrice(purchases).String(),
		AveragePrice:      domstock.AveragePrice(purchases).String(),
		TotalValue:        domstock.TotalValue(balances, purchases).String(),
		LowStock:          domstock.IsLowStock(m, balances),
	}
	out.Balances = make([]dto.StockBalance, 0, len(balances))
	for _, b := range balances {
		out.Balances = append(out.Balances, toStockBalanceDTO(b))
	}
	return out, nil
}

// Update actualiza campos del material.
func (uc *MaterialUseCase) Update(id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	m, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	if in.Name != nil {
		m.Name = *in.Name
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.MaterialType != nil {
		m.MaterialType = *in.MaterialType
	}
	if in.Specifications != nil {
		m.Specifications = *in.Specifications
	}
	if in.Unit != nil {
		m.Unit = *in.Unit
	}
	if in.CategoryID != nil {
		m.CategoryID = *in.CategoryID
	}
	if in.MinimumStock != nil {
		m.MinimumStock = *in.MinimumStock
	}
	if in.Ownership != nil {
		m.Ownership = *in.Ownership
	}
	if in.Notes != nil {
		m.Notes = *in.Notes
	}
	m.UpdatedAt = time.Now()
	if err := uc.materialRepo.Update(m); err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// Retire marca el material como retirado: deja de aparecer en catálogos
// operativos pero conserva saldos e historial.
func (uc *MaterialUseCase) Retire(id string) error {
	m, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	if m.Status == entity.MaterialStatusRetired {
		return domain.ErrConflict
	}
	m.Status = entity.MaterialStatusRetired
	m.UpdatedAt = time.Now()
	return uc.materialRepo.Update(m)
}

// List lista materiales; la búsqueda es insensible a diacríticos.
func (uc *MaterialUseCase) List(filter repository.MaterialFilter) (*dto.MaterialListResponse, error) {
	filter.Search = textutil.Normalize(filter.Search)
	list, err := uc.materialRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:             m.ID,
		Code:           m.Code,
		Name:           m.Name,
		Description:    m.Description,
		MaterialType:   m.MaterialType,
		Specifications: m.Specifications,
		Unit:           m.Unit,
		CategoryID:     m.CategoryID,
		MinimumStock:   m.MinimumStock,
		Ownership:      m.Ownership,
		Notes:          m.Notes,
		Status:         m.Status,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toStockBalanceDTO(b *entity.StockBalance) dto.StockBalance {
	return dto.StockBalance{
		MaterialID:        b.MaterialID,
		LocationID:        b.LocationID,
		Quantity:          b.Quantity,
		ReservedQuantity:  b.ReservedQuantity,
		AvailableQuantity: b.Available(),
		ExpiryDate:        b.ExpiryDate,
		BatchNumber:       b.BatchNumber,
		Condition:         b.Condition,
		Notes:             b.Notes,
		UpdatedAt:         b.UpdatedAt,
	}
}
