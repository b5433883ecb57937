package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para la pista de
// auditoría del ledger (DIP). Los movimientos son inmutables: solo alta y lectura.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByMaterial(materialID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
