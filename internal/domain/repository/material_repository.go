package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// MaterialFilter filtros de listado del catálogo.
type MaterialFilter struct {
	Search     string // sobre nombre y código, normalizado sin diacríticos
	CategoryID string
	Status     string // vacío = todos
	Limit      int
	Offset     int
}

// MaterialRepository define el puerto de persistencia para Material (DIP).
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	GetByCode(code string) (*entity.Material, error)
	Update(material *entity.Material) error
	List(filter MaterialFilter) ([]*entity.Material, error)
}
