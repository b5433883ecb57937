package stock

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción de BD.
// Los casos de uso que mutan saldos reciben este juego completo para poder
// actualizar la entidad disparadora (compra, traslado, renglón de inventario)
// en la misma unidad atómica que el saldo.
type Repos struct {
	Stock       repository.StockRepository
	Movements   repository.StockMovementRepository
	Transfers   repository.TransferRepository
	Purchases   repository.PurchaseRepository
	Inventory   repository.InventoryRecordRepository
	Consumption repository.ConsumptionRecordRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Commit si fn devuelve nil, Rollback si no:
// garantiza el todo-o-nada del ledger.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
