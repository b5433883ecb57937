package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	GetByCode(code string) (*entity.Location, error)
	Update(location *entity.Location) error
	List(locType string, activeOnly bool, limit, offset int) ([]*entity.Location, error)
	Delete(id string) error
}
