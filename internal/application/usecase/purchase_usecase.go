package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// PurchaseUseCase casos de uso de adquisiciones. El ingreso a stock es un
// paso explícito (AddToStock) que pasa por el ledger exactamente una vez,
// en la misma transacción que marca la compra como ingresada.
type PurchaseUseCase struct {
	txRunner     stock.TxRunner
	ledger       *stock.Ledger
	purchaseRepo repository.PurchaseRepository
	materialRepo repository.MaterialRepository
	locationRepo repository.LocationRepository
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner stock.TxRunner,
	ledger *stock.Ledger,
	purchaseRepo repository.PurchaseRepository,
	materialRepo repository.MaterialRepository,
	locationRepo repository.LocationRepository,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		purchaseRepo: purchaseRepo,
		materialRepo: materialRepo,
		locationRepo: locationRepo,
	}
}

// Create registra una adquisición (sin tocar stock todavía).
func (uc *PurchaseUseCase) Create(createdBy string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	m, err := uc.materialRepo.GetByID(in.MaterialID)
	if err != nil {
		return nil, err
	}
	if m == nil || !m.IsActive() {
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
	purchaseDate := now
	if in.PurchaseDate != nil {
		purchaseDate = *in.PurchaseDate
	}
	method := in.Method
	if method == "" {
		method = entity.AcquisitionPurchase
	}
	currency := in.Currency
	if currency == "" {
		currency = "IQD"
	}
	rate := in.ExchangeRate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	p := &entity.Purchase{
		ID:             uuid.New().String(),
		MaterialID:     in.MaterialID,
		LocationID:     in.LocationID,
		Quantity:       in.Quantity,
		UnitPrice:      in.UnitPrice,
		Currency:       currency,
		ExchangeRate:   rate,
		Supplier:       in.Supplier,
		InvoiceNumber:  in.InvoiceNumber,
		Method:         method,
		TransferSource: in.TransferSource,
		BatchNumber:    in.BatchNumber,
		ExpiryDate:     in.ExpiryDate,
		PurchaseDate:   purchaseDate,
		Notes:          in.Notes,
		CreatedAt:      now,
		CreatedBy:      createdBy,
	}
	if err := uc.purchaseRepo.Create(p); err != nil {
		return nil, err
	}
	return toPurchaseResponse(p), nil
}

// GetByID obtiene una compra por ID.
func (uc *PurchaseUseCase) GetByID(id string) (*dto.PurchaseResponse, error) {
	p, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toPurchaseResponse(p), nil
}

// Update corrige una compra que aún no ha sido ingresada a stock.
func (uc *PurchaseUseCase) Update(id string, in dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	p, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if p.AddedToStock {
		return nil, domain.ErrConflict
	}
	if in.Quantity != nil {
		if *in.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		p.Quantity = *in.Quantity
	}
	if in.UnitPrice != nil {
		p.UnitPrice = *in.UnitPrice
	}
	if in.Supplier != nil {
		p.Supplier = *in.Supplier
	}
	if in.InvoiceNumber != nil {
		p.InvoiceNumber = *in.InvoiceNumber
	}
	if in.BatchNumber != nil {
		p.BatchNumber = *in.BatchNumber
	}
	if in.ExpiryDate != nil {
		p.ExpiryDate = in.ExpiryDate
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	if err := uc.purchaseRepo.Update(p); err != nil {
		return nil, err
	}
	return toPurchaseResponse(p), nil
}

// Delete elimina una compra no ingresada a stock.
func (uc *PurchaseUseCase) Delete(id string) error {
	p, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if p.AddedToStock {
		return domain.ErrConflict
	}
	return uc.purchaseRepo.Delete(id)
}

// List lista compras con filtros.
func (uc *PurchaseUseCase) List(filter repository.PurchaseFilter) (*dto.PurchaseListResponse, error) {
	list, err := uc.purchaseRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// AddToStock ingresa la compra al stock: bloquea la fila de la compra,
// verifica que no haya sido aplicada antes, suma la cantidad vía ledger y
// marca la compra como ingresada. Todo en una transacción.
func (uc *PurchaseUseCase) AddToStock(ctx context.Context, id, actor string) error {
	return uc.txRunner.Run(ctx, func(r stock.Repos) error {
		p, err := r.Purchases.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.AddedToStock {
			return domain.ErrAlreadyApplied
		}
		now := time.Now()
		err = uc.ledger.IncreaseInTx(r, stock.MovementInput{
			MaterialID:  p.MaterialID,
			LocationID:  p.LocationID,
			Quantity:    p.Quantity,
			Reference:   p.ID,
			Note:        "ingreso por compra " + p.InvoiceNumber,
			Actor:       actor,
			BatchNumber: p.BatchNumber,
			ExpiryDate:  p.ExpiryDate,
		}, now)
		if err != nil {
			return err
		}
		p.AddedToStock = true
		p.AddedToStockAt = &now
		return r.Purchases.Update(p)
	})
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	return &dto.PurchaseResponse{
		ID:             p.ID,
		MaterialID:     p.MaterialID,
		LocationID:     p.LocationID,
		Quantity:       p.Quantity,
		UnitPrice:      p.UnitPrice,
		TotalPrice:     p.TotalPrice(),
		Currency:       p.Currency,
		ExchangeRate:   p.ExchangeRate,
		TotalLocal:     p.TotalPriceLocal(),
		Supplier:       p.Supplier,
		InvoiceNumber:  p.InvoiceNumber,
		Method:         p.Method,
		TransferSource: p.TransferSource,
		BatchNumber:    p.BatchNumber,
		ExpiryDate:     p.ExpiryDate,
		PurchaseDate:   p.PurchaseDate,
		AddedToStock:   p.AddedToStock,
		AddedToStockAt: p.AddedToStockAt,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
	}
}
