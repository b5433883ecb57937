package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones (bodegas, sitios, dependencias).
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create crea una ubicación con código único.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	l := &entity.Location{
		ID:                    uuid.New().String(),
		Code:                  in.Code,
		Name:                  in.Name,
		Description:           in.Description,
		Type:                  in.Type,
		Building:              in.Building,
		Floor:                 in.Floor,
		Address:               in.Address,
		MaxCapacity:           in.MaxCapacity,
		ResponsibleDepartment: in.ResponsibleDepartment,
		Active:                true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := uc.repo.Create(l); err != nil {
		return nil, err
	}
	return toLocationResponse(l), nil
}

// GetByID obtiene una ubicación por ID.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	l, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, nil
	}
	return toLocationResponse(l), nil
}

// Update actualiza una ubicación.
func (uc *LocationUseCase) Update(id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	l, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, nil
	}
	if in.Name != nil {
		l.Name = *in.Name
	}
	if in.Description != nil {
		l.Description = *in.Description
	}
	if in.Building != nil {
		l.Building = *in.Building
	}
	if in.Floor != nil {
		l.Floor = *in.Floor
	}
	if in.Address != nil {
		l.Address = *in.Address
	}
	if in.MaxCapacity != nil {
		l.MaxCapacity = *in.MaxCapacity
	}
	if in.ResponsibleDepartment != nil {
		l.ResponsibleDepartment = *in.ResponsibleDepartment
	}
	if in.Active != nil {
		l.Active = *in.Active
	}
	l.UpdatedAt = time.Now()
	if err := uc.repo.Update(l); err != nil {
		return nil, err
	}
	return toLocationResponse(l), nil
}

// List lista ubicaciones, con filtro opcional por tipo y activas.
func (uc *LocationUseCase) List(locType string, activeOnly bool, limit, offset int) (*dto.LocationListResponse, error) {
	list, err := uc.repo.List(locType, activeOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una ubicación sin saldos asociados.
func (uc *LocationUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:                    l.ID,
		Code:                  l.Code,
		Name:                  l.Name,
		Description:           l.Description,
		Type:                  l.Type,
		Building:              l.Building,
		Floor:                 l.Floor,
		Address:               l.Address,
		MaxCapacity:           l.MaxCapacity,
		ResponsibleDepartment: l.ResponsibleDepartment,
		Active:                l.Active,
		CreatedAt:             l.CreatedAt,
		UpdatedAt:             l.UpdatedAt,
	}
}
