package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/textutil"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de persistencia para materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, code, name, search_name, description, material_type, specifications, unit, category_id, minimum_stock, ownership, notes, status, created_at, updated_at, created_by`

// Create persiste un nuevo material. search_name guarda el nombre normalizado
// sin diacríticos para búsqueda.
func (r *MaterialRepo) Create(material *entity.Material) error {
	query := `
		INSERT INTO materials (id, code, name, search_name, description, material_type, specifications, unit, category_id, minimum_stock, ownership, notes, status, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Code, material.Name, textutil.Normalize(material.Name),
		material.Description, material.MaterialType, material.Specifications, material.Unit,
		material.CategoryID, material.MinimumStock, material.Ownership, material.Notes,
		material.Status, material.CreatedAt, material.UpdatedAt, material.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get material")
}

// GetByCode obtiene un material por su código de catalogación.
func (r *MaterialRepo) GetByCode(code string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code), "get material by code")
}

// Update actualiza un material existente.
func (r *MaterialRepo) Update(material *entity.Material) error {
	query := `
		UPDATE materials SET code = $2, name = $3, search_name = $4, description = $5,
			material_type = $6, specifications = $7, unit = $8, category_id = NULLIF($9, ''),
			minimum_stock = $10, ownership = $11, notes = $12, status = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Code, material.Name, textutil.Normalize(material.Name),
		material.Description, material.MaterialType, material.Specifications, material.Unit,
		material.CategoryID, material.MinimumStock, material.Ownership, material.Notes,
		material.Status, material.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// List lista materiales con filtros y paginación. La búsqueda compara el
// término normalizado contra search_name y el código.
func (r *MaterialRepo) List(filter repository.MaterialFilter) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE 1=1`
	args := []any{}
	n := 0
	if filter.Search != "" {
		n++
		query += fmt.Sprintf(" AND (search_name LIKE $%d OR code LIKE $%d)", n, n)
		args = append(args, "%"+textutil.Normalize(filter.Search)+"%")
	}
	if filter.CategoryID != "" {
		n++
		query += fmt.Sprintf(" AND category_id = $%d", n)
		args = append(args, filter.CategoryID)
	}
	if filter.Status != "" {
		n++
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, filter.Status)
	}
	query += fmt.Sprintf(" ORDER BY code LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *MaterialRepo) scanOne(row pgx.Row, op string) (*entity.Material, error) {
	m, err := scanMaterial(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	var searchName string
	var categoryID *string
	err := row.Scan(
		&m.ID, &m.Code, &m.Name, &searchName, &m.Description, &m.MaterialType,
		&m.Specifications, &m.Unit, &categoryID, &m.MinimumStock, &m.Ownership,
		&m.Notes, &m.Status, &m.CreatedAt, &m.UpdatedAt, &m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if categoryID != nil {
		m.CategoryID = *categoryID
	}
	return &m, nil
}
