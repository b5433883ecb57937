package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ConsumptionRecordFilter filtros de listado de consumos y bajas (formulario 5).
type ConsumptionRecordFilter struct {
	Year              int // sobre ReportDate; 0 = todos
	InventoryRecordID string
	Reason            string
	Decision          string
	Limit             int
	Offset            int
}

// ConsumptionRecordRepository define el puerto de persistencia para
// ConsumptionRecord (DIP).
type ConsumptionRecordRepository interface {
	Create(record *entity.ConsumptionRecord) error
	GetByID(id string) (*entity.ConsumptionRecord, error)
	// GetByIDForUpdate bloquea la fila para deducir stock una sola vez.
	GetByIDForUpdate(id string) (*entity.ConsumptionRecord, error)
	Update(record *entity.ConsumptionRecord) error
	Delete(id string) error
	List(filter ConsumptionRecordFilter) ([]*entity.ConsumptionRecord, error)
	NextSequenceNumber(year int) (int, error)
}
