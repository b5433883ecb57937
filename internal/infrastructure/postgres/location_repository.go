package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de persistencia para ubicaciones. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, code, name, description, type, building, floor, address, max_capacity, responsible_department, active, created_at, updated_at`

// Create persiste una nueva ubicación.
func (r *LocationRepo) Create(location *entity.Location) error {
	query := `
		INSERT INTO locations (id, code, name, description, type, building, floor, address, max_capacity, responsible_department, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Code, location.Name, location.Description, location.Type,
		location.Building, location.Floor, location.Address, location.MaxCapacity,
		location.ResponsibleDepartment, location.Active, location.CreatedAt, location.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get location")
}

// GetByCode obtiene una ubicación por código.
func (r *LocationRepo) GetByCode(code string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code), "get location by code")
}

// Update actualiza una ubicación existente.
func (r *LocationRepo) Update(location *entity.Location) error {
	query := `
		UPDATE locations SET code = $2, name = $3, description = $4, type = $5, building = $6,
			floor = $7, address = $8, max_capacity = $9, responsible_department = $10,
			active = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Code, location.Name, location.Description, location.Type,
		location.Building, location.Floor, location.Address, location.MaxCapacity,
		location.ResponsibleDepartment, location.Active, location.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// List lista ubicaciones con filtros y paginación.
func (r *LocationRepo) List(locType string, activeOnly bool, limit, offset int) ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE 1=1`
	args := []any{}
	n := 0
	if locType != "" {
		n++
		query += fmt.Sprintf(" AND type = $%d", n)
		args = append(args, locType)
	}
	if activeOnly {
		query += " AND active"
	}
	query += fmt.Sprintf(" ORDER BY code LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(
			&l.ID, &l.Code, &l.Name, &l.Description, &l.Type, &l.Building, &l.Floor,
			&l.Address, &l.MaxCapacity, &l.ResponsibleDepartment, &l.Active,
			&l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Delete elimina una ubicación por ID.
func (r *LocationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}

func (r *LocationRepo) scanOne(row pgx.Row, op string) (*entity.Location, error) {
	var l entity.Location
	err := row.Scan(
		&l.ID, &l.Code, &l.Name, &l.Description, &l.Type, &l.Building, &l.Floor,
		&l.Address, &l.MaxCapacity, &l.ResponsibleDepartment, &l.Active,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &l, nil
}
