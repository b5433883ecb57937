package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ConsumptionRecordRepository = (*ConsumptionRecordRepo)(nil)

// ConsumptionRecordRepo implementación de ConsumptionRecordRepository sobre PostgreSQL.
type ConsumptionRecordRepo struct {
	q Querier
}

// NewConsumptionRecordRepository construye el adaptador de consumos y bajas. Pasar pool o tx (Querier).
func NewConsumptionRecordRepository(q Querier) *ConsumptionRecordRepo {
	return &ConsumptionRecordRepo{q: q}
}

const consumptionColumns = `id, sequence_number, inventory_record_id, consumed_quantity, report_date, damage_percentage, usage_duration_days, reason, reason_details, decision, decision_notes, committee_members, original_unit_price, disposed, disposal_date, disposal_method, sale_value, stock_deducted, current_location, notes, created_at, updated_at, created_by`

// Create persiste un renglón de consumo o baja.
func (r *ConsumptionRecordRepo) Create(record *entity.ConsumptionRecord) error {
	query := `
		INSERT INTO consumption_records (id, sequence_number, inventory_record_id, consumed_quantity, report_date, damage_percentage, usage_duration_days, reason, reason_details, decision, decision_notes, committee_members, original_unit_price, disposed, disposal_date, disposal_method, sale_value, stock_deducted, current_location, notes, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.SequenceNumber, record.InventoryRecordID, record.ConsumedQuantity,
		record.ReportDate, record.DamagePercentage, record.UsageDurationDays, record.Reason,
		record.ReasonDetails, record.Decision, record.DecisionNotes, record.CommitteeMembers,
		record.OriginalUnitPrice, record.Disposed, record.DisposalDate, record.DisposalMethod,
		record.SaleValue, record.StockDeducted, record.CurrentLocation, record.Notes,
		record.CreatedAt, record.UpdatedAt, record.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert consumption record: %w", err)
	}
	return nil
}

// GetByID obtiene un renglón por ID.
func (r *ConsumptionRecordRepo) GetByID(id string) (*entity.ConsumptionRecord, error) {
	query := `SELECT ` + consumptionColumns + ` FROM consumption_records WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get consumption record")
}

// GetByIDForUpdate obtiene el renglón y bloquea la fila (SELECT FOR UPDATE)
// para que la deducción de stock se aplique exactamente una vez.
func (r *ConsumptionRecordRepo) GetByIDForUpdate(id string) (*entity.ConsumptionRecord, error) {
	query := `SELECT ` + consumptionColumns + ` FROM consumption_records WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get consumption record for update")
}

// Update actualiza un renglón existente.
func (r *ConsumptionRecordRepo) Update(record *entity.ConsumptionRecord) error {
	query := `
		UPDATE consumption_records SET consumed_quantity = $2, report_date = $3,
			damage_percentage = $4, usage_duration_days = $5, reason = $6, reason_details = $7,
			decision = $8, decision_notes = $9, committee_members = $10, disposed = $11,
			disposal_date = $12, disposal_method = $13, sale_value = $14, stock_deducted = $15,
			current_location = $16, notes = $17, updated_at = $18
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ConsumedQuantity, record.ReportDate, record.DamagePercentage,
		record.UsageDurationDays, record.Reason, record.ReasonDetails, record.Decision,
		record.DecisionNotes, record.CommitteeMembers, record.Disposed, record.DisposalDate,
		record.DisposalMethod, record.SaleValue, record.StockDeducted, record.CurrentLocation,
		record.Notes, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update consumption record: %w", err)
	}
	return nil
}

// Delete elimina un renglón por ID.
func (r *ConsumptionRecordRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM consumption_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete consumption record: %w", err)
	}
	return nil
}

// List lista renglones con filtros, por número de renglón.
func (r *ConsumptionRecordRepo) List(filter repository.ConsumptionRecordFilter) ([]*entity.ConsumptionRecord, error) {
	query := `SELECT ` + consumptionColumns + ` FROM consumption_records WHERE 1=1`
	args := []any{}
	n := 0
	if filter.Year != 0 {
		n++
		query += fmt.Sprintf(" AND extract(year FROM report_date) = $%d", n)
		args = append(args, filter.Year)
	}
	if filter.InventoryRecordID != "" {
		n++
		query += fmt.Sprintf(" AND inventory_record_id = $%d", n)
		args = append(args, filter.InventoryRecordID)
	}
	if filter.Reason != "" {
		n++
		query += fmt.Sprintf(" AND reason = $%d", n)
		args = append(args, filter.Reason)
	}
	if filter.Decision != "" {
		n++
		query += fmt.Sprintf(" AND decision = $%d", n)
		args = append(args, filter.Decision)
	}
	query += fmt.Sprintf(" ORDER BY report_date DESC, sequence_number LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list consumption records: %w", err)
	}
	defer rows.Close()
	var list []*entity.ConsumptionRecord
	for rows.Next() {
		rec, err := scanConsumptionRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consumption record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// NextSequenceNumber devuelve el siguiente número de renglón del formulario del año.
func (r *ConsumptionRecordRepo) NextSequenceNumber(year int) (int, error) {
	var next int
	err := r.q.QueryRow(context.Background(),
		`SELECT coalesce(max(sequence_number), 0) + 1 FROM consumption_records WHERE extract(year FROM report_date) = $1`, year,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next consumption sequence: %w", err)
	}
	return next, nil
}

func (r *ConsumptionRecordRepo) scanOne(row pgx.Row, op string) (*entity.ConsumptionRecord, error) {
	rec, err := scanConsumptionRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rec, nil
}

func scanConsumptionRecord(row pgx.Row) (*entity.ConsumptionRecord, error) {
	var rec entity.ConsumptionRecord
	err := row.Scan(
		&rec.ID, &rec.SequenceNumber, &rec.InventoryRecordID, &rec.ConsumedQuantity,
		&rec.ReportDate, &rec.DamagePercentage, &rec.UsageDurationDays, &rec.Reason,
		&rec.ReasonDetails, &rec.Decision, &rec.DecisionNotes, &rec.CommitteeMembers,
		&rec.OriginalUnitPrice, &rec.Disposed, &rec.DisposalDate, &rec.DisposalMethod,
		&rec.SaleValue, &rec.StockDeducted, &rec.CurrentLocation, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
