package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// PurchaseFilter filtros de listado de compras.
type PurchaseFilter struct {
	MaterialID string
	LocationID string
	Year       int // 0 = todos los años
	Method     string
	Limit      int
	Offset     int
}

// PurchaseRepository define el puerto de persistencia para Purchase (DIP).
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	// GetByIDForUpdate bloquea la fila de la compra para que el alta en stock
	// se aplique exactamente una vez.
	GetByIDForUpdate(id string) (*entity.Purchase, error)
	Update(purchase *entity.Purchase) error
	Delete(id string) error
	List(filter PurchaseFilter) ([]*entity.Purchase, error)
	ListByMaterial(materialID string) ([]*entity.Purchase, error)
}
