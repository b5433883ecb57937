package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de compras. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, material_id, location_id, quantity, unit_price, currency, exchange_rate, supplier, invoice_number, method, transfer_source, batch_number, expiry_date, purchase_date, added_to_stock, added_to_stock_at, notes, created_at, created_by`

// Create persiste una compra.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, material_id, location_id, quantity, unit_price, currency, exchange_rate, supplier, invoice_number, method, transfer_source, batch_number, expiry_date, purchase_date, added_to_stock, added_to_stock_at, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.MaterialID, purchase.LocationID, purchase.Quantity,
		purchase.UnitPrice, purchase.Currency, purchase.ExchangeRate, purchase.Supplier,
		purchase.InvoiceNumber, purchase.Method, purchase.TransferSource, purchase.BatchNumber,
		purchase.ExpiryDate, purchase.PurchaseDate, purchase.AddedToStock, purchase.AddedToStockAt,
		purchase.Notes, purchase.CreatedAt, purchase.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por ID.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get purchase")
}

// GetByIDForUpdate obtiene la compra y bloquea la fila (SELECT FOR UPDATE)
// para que el alta en stock se aplique exactamente una vez.
func (r *PurchaseRepo) GetByIDForUpdate(id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get purchase for update")
}

// Update actualiza una compra existente.
func (r *PurchaseRepo) Update(purchase *entity.Purchase) error {
	query := `
		UPDATE purchases SET quantity = $2, unit_price = $3, currency = $4, exchange_rate = $5,
			supplier = $6, invoice_number = $7, method = $8, transfer_source = $9,
			batch_number = $10, expiry_date = $11, purchase_date = $12,
			added_to_stock = $13, added_to_stock_at = $14, notes = $15
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.Quantity, purchase.UnitPrice, purchase.Currency,
		purchase.ExchangeRate, purchase.Supplier, purchase.InvoiceNumber, purchase.Method,
		purchase.TransferSource, purchase.BatchNumber, purchase.ExpiryDate, purchase.PurchaseDate,
		purchase.AddedToStock, purchase.AddedToStockAt, purchase.Notes,
	)
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	return nil
}

// Delete elimina una compra por ID.
func (r *PurchaseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return nil
}

// List lista compras con filtros, más recientes primero.
func (r *PurchaseRepo) List(filter repository.PurchaseFilter) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE 1=1`
	args := []any{}
	n := 0
	if filter.MaterialID != "" {
		n++
		query += fmt.Sprintf(" AND material_id = $%d", n)
		args = append(args, filter.MaterialID)
	}
	if filter.LocationID != "" {
		n++
		query += fmt.Sprintf(" AND location_id = $%d", n)
		args = append(args, filter.LocationID)
	}
	if filter.Year != 0 {
		n++
		query += fmt.Sprintf(" AND extract(year FROM purchase_date) = $%d", n)
		args = append(args, filter.Year)
	}
	if filter.Method != "" {
		n++
		query += fmt.Sprintf(" AND method = $%d", n)
		args = append(args, filter.Method)
	}
	query += fmt.Sprintf(" ORDER BY purchase_date DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	return scanPurchases(rows)
}

// ListByMaterial lista todas las compras de un material (para valoración).
func (r *PurchaseRepo) ListByMaterial(materialID string) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE material_id = $1 ORDER BY purchase_date`
	rows, err := r.q.Query(context.Background(), query, materialID)
	if err != nil {
		return nil, fmt.Errorf("list purchases by material: %w", err)
	}
	defer rows.Close()
	return scanPurchases(rows)
}

func (r *PurchaseRepo) scanOne(row pgx.Row, op string) (*entity.Purchase, error) {
	p, err := scanPurchase(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	err := row.Scan(
		&p.ID, &p.MaterialID, &p.LocationID, &p.Quantity, &p.UnitPrice, &p.Currency,
		&p.ExchangeRate, &p.Supplier, &p.InvoiceNumber, &p.Method, &p.TransferSource,
		&p.BatchNumber, &p.ExpiryDate, &p.PurchaseDate, &p.AddedToStock, &p.AddedToStockAt,
		&p.Notes, &p.CreatedAt, &p.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPurchases(rows pgx.Rows) ([]*entity.Purchase, error) {
	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
