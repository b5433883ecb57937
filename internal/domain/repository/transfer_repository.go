package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// TransferFilter filtros de listado de traslados.
type TransferFilter struct {
	MaterialID     string
	FromLocationID string
	ToLocationID   string
	Status         string // vacío = todos
	Limit          int
	Offset         int
}

// TransferRepository define el puerto de persistencia para Transfer (DIP).
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	// GetByIDForUpdate bloquea la fila del traslado (SELECT FOR UPDATE) para
	// serializar confirmaciones concurrentes del mismo traslado.
	GetByIDForUpdate(id string) (*entity.Transfer, error)
	Update(transfer *entity.Transfer) error
	Delete(id string) error
	List(filter TransferFilter) ([]*entity.Transfer, error)
	CountByStatus(status string) (int, error)
}
