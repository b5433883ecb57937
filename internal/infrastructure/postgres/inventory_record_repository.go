package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)

// InventoryRecordRepo implementación de InventoryRecordRepository sobre PostgreSQL.
type InventoryRecordRepo struct {
	q Querier
}

// NewInventoryRecordRepository construye el adaptador del inventario físico. Pasar pool o tx (Querier).
func NewInventoryRecordRepository(q Querier) *InventoryRecordRepo {
	return &InventoryRecordRepo{q: q}
}

const inventoryRecordColumns = `id, sequence_number, material_id, location_id, year, inventory_date, actual_quantity, recorded_quantity, condition, actual_location, department, counted_by, approved, approved_at, approved_by, stock_updated, notes, created_at, updated_at, created_by`

// Create persiste un renglón del inventario físico.
func (r *InventoryRecordRepo) Create(record *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (id, sequence_number, material_id, location_id, year, inventory_date, actual_quantity, recorded_quantity, condition, actual_location, department, counted_by, approved, approved_at, approved_by, stock_updated, notes, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.SequenceNumber, record.MaterialID, record.LocationID, record.Year,
		record.InventoryDate, record.ActualQuantity, record.RecordedQuantity, record.Condition,
		record.ActualLocation, record.Department, record.CountedBy, record.Approved,
		record.ApprovedAt, record.ApprovedBy, record.StockUpdated, record.Notes,
		record.CreatedAt, record.UpdatedAt, record.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert inventory record: %w", err)
	}
	return nil
}

// GetByID obtiene un renglón por ID.
func (r *InventoryRecordRepo) GetByID(id string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryRecordColumns + ` FROM inventory_records WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get inventory record")
}

// GetByIDForUpdate obtiene el renglón y bloquea la fila (SELECT FOR UPDATE)
// para que el ajuste al stock se aplique exactamente una vez.
func (r *InventoryRecordRepo) GetByIDForUpdate(id string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryRecordColumns + ` FROM inventory_records WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get inventory record for update")
}

// Update actualiza un renglón existente.
func (r *InventoryRecordRepo) Update(record *entity.InventoryRecord) error {
	query := `
		UPDATE inventory_records SET actual_quantity = $2, condition = $3, actual_location = $4,
			department = $5, counted_by = $6, approved = $7, approved_at = $8, approved_by = $9,
			stock_updated = $10, notes = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ActualQuantity, record.Condition, record.ActualLocation,
		record.Department, record.CountedBy, record.Approved, record.ApprovedAt,
		record.ApprovedBy, record.StockUpdated, record.Notes, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory record: %w", err)
	}
	return nil
}

// Delete elimina un renglón por ID.
func (r *InventoryRecordRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory record: %w", err)
	}
	return nil
}

// List lista renglones con filtros, por número de renglón.
func (r *InventoryRecordRepo) List(filter repository.InventoryRecordFilter) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryRecordColumns + ` FROM inventory_records WHERE 1=1`
	args := []any{}
	n := 0
	if filter.Year != 0 {
		n++
		query += fmt.Sprintf(" AND year = $%d", n)
		args = append(args, filter.Year)
	}
	if filter.LocationID != "" {
		n++
		query += fmt.Sprintf(" AND location_id = $%d", n)
		args = append(args, filter.LocationID)
	}
	if filter.MaterialID != "" {
		n++
		query += fmt.Sprintf(" AND material_id = $%d", n)
		args = append(args, filter.MaterialID)
	}
	if filter.ApprovedOnly {
		query += " AND approved"
	}
	query += fmt.Sprintf(" ORDER BY year DESC, sequence_number LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory records: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryRecord
	for rows.Next() {
		rec, err := scanInventoryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// NextSequenceNumber devuelve el siguiente número de renglón del año.
func (r *InventoryRecordRepo) NextSequenceNumber(year int) (int, error) {
	var next int
	err := r.q.QueryRow(context.Background(),
		`SELECT coalesce(max(sequence_number), 0) + 1 FROM inventory_records WHERE year = $1`, year,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next inventory sequence: %w", err)
	}
	return next, nil
}

func (r *InventoryRecordRepo) scanOne(row pgx.Row, op string) (*entity.InventoryRecord, error) {
	rec, err := scanInventoryRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rec, nil
}

func scanInventoryRecord(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := row.Scan(
		&rec.ID, &rec.SequenceNumber, &rec.MaterialID, &rec.LocationID, &rec.Year,
		&rec.InventoryDate, &rec.ActualQuantity, &rec.RecordedQuantity, &rec.Condition,
		&rec.ActualLocation, &rec.Department, &rec.CountedBy, &rec.Approved,
		&rec.ApprovedAt, &rec.ApprovedBy, &rec.StockUpdated, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
