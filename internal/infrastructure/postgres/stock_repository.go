package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `material_id, location_id, quantity, reserved_quantity, expiry_date, batch_number, condition, notes, created_at, updated_at`

// Get obtiene el saldo de un material en una ubicación. Devuelve nil si no hay fila.
func (r *StockRepo) Get(materialID, locationID string) (*entity.StockBalance, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_balances WHERE material_id = $1 AND location_id = $2`
	b, err := r.scanOne(r.q.QueryRow(context.Background(), query, materialID, locationID))
	if err != nil {
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	return b, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE).
// Devuelve nil si no hay fila; el caller decide si la crea.
func (r *StockRepo) GetForUpdate(materialID, locationID string) (*entity.StockBalance, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_balances WHERE material_id = $1 AND location_id = $2
		FOR UPDATE`
	b, err := r.scanOne(r.q.QueryRow(context.Background(), query, materialID, locationID))
	if err != nil {
		return nil, fmt.Errorf("get stock balance for update: %w", err)
	}
	return b, nil
}

// Upsert inserta o actualiza el saldo por material y ubicación.
func (r *StockRepo) Upsert(balance *entity.StockBalance) error {
	query := `
		INSERT INTO stock_balances (material_id, location_id, quantity, reserved_quantity, expiry_date, batch_number, condition, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (material_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, reserved_quantity = EXCLUDED.reserved_quantity,
			expiry_date = EXCLUDED.expiry_date, batch_number = EXCLUDED.batch_number,
			condition = EXCLUDED.condition, notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		balance.MaterialID, balance.LocationID, balance.Quantity, balance.ReservedQuantity,
		balance.ExpiryDate, balance.BatchNumber, balance.Condition, balance.Notes,
		balance.CreatedAt, balance.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock balance: %w", err)
	}
	return nil
}

// Delete elimina el saldo de la pareja (solo saldos en cero, lo valida el ledger).
func (r *StockRepo) Delete(materialID, locationID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_balances WHERE material_id = $1 AND location_id = $2`,
		materialID, locationID,
	)
	if err != nil {
		return fmt.Errorf("delete stock balance: %w", err)
	}
	return nil
}

// ListByMaterial lista los saldos de un material en todas las ubicaciones.
func (r *StockRepo) ListByMaterial(materialID string) ([]*entity.StockBalance, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_balances WHERE material_id = $1 ORDER BY location_id`
	rows, err := r.q.Query(context.Background(), query, materialID)
	if err != nil {
		return nil, fmt.Errorf("list stock by material: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListByLocation lista los saldos de una ubicación con paginación.
func (r *StockRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.StockBalance, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_balances WHERE location_id = $1 ORDER BY material_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock by location: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *StockRepo) scanOne(row pgx.Row) (*entity.StockBalance, error) {
	var b entity.StockBalance
	err := row.Scan(
		&b.MaterialID, &b.LocationID, &b.Quantity, &b.ReservedQuantity,
		&b.ExpiryDate, &b.BatchNumber, &b.Condition, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *StockRepo) scanAll(rows pgx.Rows) ([]*entity.StockBalance, error) {
	var list []*entity.StockBalance
	for rows.Next() {
		var b entity.StockBalance
		if err := rows.Scan(
			&b.MaterialID, &b.LocationID, &b.Quantity, &b.ReservedQuantity,
			&b.ExpiryDate, &b.BatchNumber, &b.Condition, &b.Notes,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
