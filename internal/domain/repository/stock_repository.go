package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar saldos por
// material+ubicación. Las escrituras solo ocurren dentro de transacciones
// abiertas por el ledger, nunca directamente.
type StockRepository interface {
	Get(materialID, locationID string) (*entity.StockBalance, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Devuelve nil (sin error) si no existe saldo para la pareja.
	GetForUpdate(materialID, locationID string) (*entity.StockBalance, error)
	Upsert(balance *entity.StockBalance) error
	// Delete elimina un saldo en cero (acción administrativa).
	Delete(materialID, locationID string) error
	ListByMaterial(materialID string) ([]*entity.StockBalance, error)
	ListByLocation(locationID string, limit, offset int) ([]*entity.StockBalance, error)
}
