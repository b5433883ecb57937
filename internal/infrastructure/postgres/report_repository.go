package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura sobre PostgreSQL.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// LowStockItems materiales activos cuyo total en existencia está en o bajo su mínimo.
func (r *ReportRepo) LowStockItems(ctx context.Context) ([]repository.LowStockItem, error) {
	query := `
		SELECT m.id, m.code, m.name, m.unit, m.minimum_stock, coalesce(sum(sb.quantity), 0) AS total
		FROM materials m
		LEFT JOIN stock_balances sb ON sb.material_id = m.id
		WHERE m.status = $1
		GROUP BY m.id, m.code, m.name, m.unit, m.minimum_stock
		HAVING coalesce(sum(sb.quantity), 0) <= m.minimum_stock
		ORDER BY m.code`
	rows, err := r.pool.Query(ctx, query, entity.MaterialStatusActive)
	if err != nil {
		return nil, fmt.Errorf("low stock items: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(&it.MaterialID, &it.Code, &it.Name, &it.Unit, &it.MinimumStock, &it.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// ExpiringItems saldos con vencimiento dentro de la ventana de días, ordenados
// por fecha de vencimiento ascendente.
func (r *ReportRepo) ExpiringItems(ctx context.Context, days int) ([]repository.ExpiringItem, error) {
	query := `
		SELECT sb.material_id, m.code, m.name, sb.location_id, l.name, sb.quantity, sb.batch_number, sb.expiry_date
		FROM stock_balances sb
		JOIN materials m ON m.id = sb.material_id
		JOIN locations l ON l.id = sb.location_id
		WHERE sb.expiry_date IS NOT NULL
		  AND sb.expiry_date < now() + make_interval(days => $1)
		  AND sb.quantity > 0
		ORDER BY sb.expiry_date`
	rows, err := r.pool.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("expiring items: %w", err)
	}
	defer rows.Close()
	var list []repository.ExpiringItem
	for rows.Next() {
		var it repository.ExpiringItem
		if err := rows.Scan(&it.MaterialID, &it.Code, &it.Name, &it.LocationID, &it.LocationName, &it.Quantity, &it.BatchNumber, &it.ExpiryDate); err != nil {
			return nil, fmt.Errorf("scan expiring item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// LocationSummary existencias de una ubicación, por código de material.
func (r *ReportRepo) LocationSummary(ctx context.Context, locationID string) ([]repository.LocationSummaryItem, error) {
	query := `
		SELECT sb.material_id, m.code, m.name, m.unit, sb.quantity, sb.reserved_quantity, sb.condition
		FROM stock_balances sb
		JOIN materials m ON m.id = sb.material_id
		WHERE sb.location_id = $1
		ORDER BY m.code`
	rows, err := r.pool.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("location summary: %w", err)
	}
	defer rows.Close()
	var list []repository.LocationSummaryItem
	for rows.Next() {
		var it repository.LocationSummaryItem
		if err := rows.Scan(&it.MaterialID, &it.Code, &it.Name, &it.Unit, &it.Quantity, &it.ReservedQuantity, &it.Condition); err != nil {
			return nil, fmt.Errorf("scan location summary item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// YearlyPurchases agregado anual de compras por material, en moneda local.
func (r *ReportRepo) YearlyPurchases(ctx context.Context, year int) ([]repository.YearlyPurchaseRow, error) {
	query := `
		SELECT p.material_id, m.code, m.name, count(*), sum(p.quantity),
			coalesce(sum(p.quantity * p.unit_price * p.exchange_rate), 0)
		FROM purchases p
		JOIN materials m ON m.id = p.material_id
		WHERE extract(year FROM p.purchase_date) = $1
		GROUP BY p.material_id, m.code, m.name
		ORDER BY m.code`
	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("yearly purchases: %w", err)
	}
	defer rows.Close()
	var list []repository.YearlyPurchaseRow
	for rows.Next() {
		var row repository.YearlyPurchaseRow
		if err := rows.Scan(&row.MaterialID, &row.Code, &row.Name, &row.PurchaseCount, &row.TotalQuantity, &row.TotalValue); err != nil {
			return nil, fmt.Errorf("scan yearly purchase row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// DashboardStats totales del tablero en una sola consulta con subselects.
func (r *ReportRepo) DashboardStats(ctx context.Context, expiryDays int) (*repository.DashboardStats, error) {
	query := `
		SELECT
			(SELECT count(*) FROM materials WHERE status = $1),
			(SELECT count(*) FROM locations WHERE active),
			(SELECT coalesce(sum(quantity), 0) FROM stock_balances),
			(SELECT count(*) FROM transfers WHERE status = $2),
			(SELECT count(*) FROM (
				SELECT m.id FROM materials m
				LEFT JOIN stock_balances sb ON sb.material_id = m.id
				WHERE m.status = $1
				GROUP BY m.id, m.minimum_stock
				HAVING coalesce(sum(sb.quantity), 0) <= m.minimum_stock
			) low),
			(SELECT count(*) FROM stock_balances
				WHERE expiry_date IS NOT NULL
				  AND expiry_date < now() + make_interval(days => $3)
				  AND quantity > 0),
			(SELECT coalesce(sum(p.quantity * p.unit_price * p.exchange_rate), 0)
				FROM purchases p WHERE p.added_to_stock)`
	var s repository.DashboardStats
	err := r.pool.QueryRow(ctx, query,
		entity.MaterialStatusActive, entity.TransferStatusRequested, expiryDays,
	).Scan(
		&s.TotalMaterials, &s.TotalLocations, &s.TotalStockUnits, &s.PendingTransfers,
		&s.LowStockCount, &s.ExpiringCount, &s.InventoryValue,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &s, nil
}
