package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación del puerto TransferRepository sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de traslados. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, material_id, from_location_id, to_location_id, quantity, reason, notes, requested_by, requested_at, status, confirmed_by, confirmed_at, created_at`

// Create persiste una solicitud de traslado.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	query := `
		INSERT INTO transfers (id, material_id, from_location_id, to_location_id, quantity, reason, notes, requested_by, requested_at, status, confirmed_by, confirmed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.MaterialID, transfer.FromLocationID, transfer.ToLocationID,
		transfer.Quantity, transfer.Reason, transfer.Notes, transfer.RequestedBy,
		transfer.RequestedAt, transfer.Status, transfer.ConfirmedBy, transfer.ConfirmedAt,
		transfer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get transfer")
}

// GetByIDForUpdate obtiene el traslado y bloquea la fila (SELECT FOR UPDATE)
// para serializar confirmaciones concurrentes.
func (r *TransferRepo) GetByIDForUpdate(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get transfer for update")
}

// Update actualiza estado, confirmación y notas de un traslado.
func (r *TransferRepo) Update(transfer *entity.Transfer) error {
	query := `
		UPDATE transfers SET quantity = $2, reason = $3, notes = $4, status = $5,
			confirmed_by = $6, confirmed_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.Quantity, transfer.Reason, transfer.Notes,
		transfer.Status, transfer.ConfirmedBy, transfer.ConfirmedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	return nil
}

// Delete elimina un traslado por ID.
func (r *TransferRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM transfers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transfer: %w", err)
	}
	return nil
}

// List lista traslados con filtros, más recientes primero.
func (r *TransferRepo) List(filter repository.TransferFilter) ([]*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE 1=1`
	args := []any{}
	n := 0
	if filter.MaterialID != "" {
		n++
		query += fmt.Sprintf(" AND material_id = $%d", n)
		args = append(args, filter.MaterialID)
	}
	if filter.FromLocationID != "" {
		n++
		query += fmt.Sprintf(" AND from_location_id = $%d", n)
		args = append(args, filter.FromLocationID)
	}
	if filter.ToLocationID != "" {
		n++
		query += fmt.Sprintf(" AND to_location_id = $%d", n)
		args = append(args, filter.ToLocationID)
	}
	if filter.Status != "" {
		n++
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, filter.Status)
	}
	query += fmt.Sprintf(" ORDER BY requested_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// CountByStatus cuenta traslados en un estado dado.
func (r *TransferRepo) CountByStatus(status string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM transfers WHERE status = $1`, status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transfers: %w", err)
	}
	return count, nil
}

func (r *TransferRepo) scanOne(row pgx.Row, op string) (*entity.Transfer, error) {
	t, err := scanTransfer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	err := row.Scan(
		&t.ID, &t.MaterialID, &t.FromLocationID, &t.ToLocationID, &t.Quantity,
		&t.Reason, &t.Notes, &t.RequestedBy, &t.RequestedAt, &t.Status,
		&t.ConfirmedBy, &t.ConfirmedAt, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
