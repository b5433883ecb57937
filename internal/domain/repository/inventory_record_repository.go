package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// InventoryRecordFilter filtros de listado del inventario físico (formulario 2).
type InventoryRecordFilter struct {
	Year         int // 0 = todos
	LocationID   string
	MaterialID   string
	ApprovedOnly bool
	Limit        int
	Offset       int
}

// InventoryRecordRepository define el puerto de persistencia para
// InventoryRecord (DIP).
type InventoryRecordRepository interface {
	Create(record *entity.InventoryRecord) error
	GetByID(id string) (*entity.InventoryRecord, error)
	// GetByIDForUpdate bloquea la fila para aplicar el ajuste una sola vez.
	GetByIDForUpdate(id string) (*entity.InventoryRecord, error)
	Update(record *entity.InventoryRecord) error
	Delete(id string) error
	List(filter InventoryRecordFilter) ([]*entity.InventoryRecord, error)
	// NextSequenceNumber devuelve el siguiente número de renglón del formulario del año.
	NextSequenceNumber(year int) (int, error)
}
