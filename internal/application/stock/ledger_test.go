package stock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: el TxRunner toma un snapshot de los saldos antes de fn y
// lo restaura si fn falla, emulando el Rollback de la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	rows map[string]*entity.StockBalance
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: map[string]*entity.StockBalance{}}
}

func key(materialID, locationID string) string { return materialID + "|" + locationID }

func (f *fakeStockRepo) Get(materialID, locationID string) (*entity.StockBalance, error) {
	b, ok := f.rows[key(materialID, locationID)]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeStockRepo) GetForUpdate(materialID, locationID string) (*entity.StockBalance, error) {
	return f.Get(materialID, locationID)
}

func (f *fakeStockRepo) Upsert(balance *entity.StockBalance) error {
	cp := *balance
	f.rows[key(balance.MaterialID, balance.LocationID)] = &cp
	return nil
}

func (f *fakeStockRepo) Delete(materialID, locationID string) error {
	delete(f.rows, key(materialID, locationID))
	return nil
}

func (f *fakeStockRepo) ListByMaterial(materialID string) ([]*entity.StockBalance, error) {
	var out []*entity.StockBalance
	for _, b := range f.rows {
		if b.MaterialID == materialID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.StockBalance, error) {
	var out []*entity.StockBalance
	for _, b := range f.rows {
		if b.LocationID == locationID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) snapshot() map[string]*entity.StockBalance {
	snap := map[string]*entity.StockBalance{}
	for k, b := range f.rows {
		cp := *b
		snap[k] = &cp
	}
	return snap
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
	failWith  error
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	if f.failWith != nil {
		return f.failWith
	}
	cp := *m
	f.movements = append(f.movements, &cp)
	return nil
}

func (f *fakeMovementRepo) ListByMaterial(string, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return f.movements, nil
}

func (f *fakeMovementRepo) ListByLocation(string, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return f.movements, nil
}

type fakeTxRunner struct {
	stocks    *fakeStockRepo
	movements *fakeMovementRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(r stock.Repos) error) error {
	snapStocks := f.stocks.snapshot()
	snapMovs := len(f.movements.movements)
	err := fn(stock.Repos{Stock: f.stocks, Movements: f.movements})
	if err != nil {
		f.stocks.rows = snapStocks
		f.movements.movements = f.movements.movements[:snapMovs]
	}
	return err
}

func newLedgerForTest() (*stock.Ledger, *fakeStockRepo, *fakeMovementRepo) {
	stocks := newFakeStockRepo()
	movs := &fakeMovementRepo{}
	runner := &fakeTxRunner{stocks: stocks, movements: movs}
	return stock.NewLedger(runner, stocks), stocks, movs
}

// ──────────────────────────────────────────────────────────────────────────────
// Increase / Decrease
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_Increase_CreaSaldoSiNoExiste(t *testing.T) {
	ledger, stocks, movs := newLedgerForTest()

	err := ledger.Increase(context.Background(), stock.MovementInput{
		MaterialID: "mat-1", LocationID: "loc-1", Quantity: 10, Actor: "u1",
	})
	require.NoError(t, err)

	bal, ok := stocks.rows[key("mat-1", "loc-1")]
	require.True(t, ok, "debe crearse la fila del saldo")
	assert.Equal(t, 10, bal.Quantity)
	assert.Equal(t, entity.ConditionGood, bal.Condition)

	require.Len(t, movs.movements, 1)
	assert.Equal(t, entity.MovementTypeIN, movs.movements[0].Type)
	assert.Equal(t, 10, movs.movements[0].Quantity)
}

func TestLedger_Increase_AcumulaSobreSaldoExistente(t *testing.T) {
	ledger, stocks, _ := newLedgerForTest()
	require.NoError(t, ledger.Increase(context.Background(), stock.MovementInput{MaterialID: "m", LocationID: "l", Quantity: 5}))
	require.NoError(t, ledger.Increase(context.Background(), stock.MovementInput{MaterialID: "m", LocationID: "l", Quantity: 7}))

	assert.Equal(t, 12, stocks.rows[key("m", "l")].Quantity)
}

func TestLedger_Increase_CantidadInvalida(t *testing.T) {
	ledger, _, _ := newLedgerForTest()
	err := ledger.Increase(context.Background(), stock.MovementInput{MaterialID: "m", LocationID: "l", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	err = ledger.Increase(context.Background(), stock.MovementInput{MaterialID: "m", LocationID: "l", Quantity: -3})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestLedger_Increase_RegistraLoteYVencimiento(t *testing.T) {
	ledger, stocks, _ := newLedgerForTest()
	expiry := time.Now().AddDate(0, 6, 0)

	err := ledger.Increase(context.Background(), stock.MovementInput{
		MaterialID: "m", LocationID: "l", Quantity: 10,
		BatchNumber: "LOTE-9", ExpiryDate: &expiry,
	})
	require.NoError(t, err)

	bal := stocks.rows[key("m", "l")]
	assert.Equal(t, "LOTE-9", bal.BatchNumber)
	require.NotNil(t, bal.ExpiryDate, "el vencimiento debe quedar en el saldo")
	assert.True(t, bal.ExpiryDate.Equal(expiry))

	// Una entrada posterior sin lote no borra el registrado.
	require.NoError(t, ledger.Increase(context.Background(), stock.MovementInput{
		MaterialID: "m", LocationID: "l", Quantity: 5,
	}))
	bal = stocks.rows[key("m", "l")]
	assert.Equal(t, "LOTE-9", bal.BatchNumber)
	require.NotNil(t, bal.ExpiryDate)

	// Una entrada con lote nuevo lo reemplaza.
	later := expiry.AddDate(1, 0, 0)
	require.NoError(t, ledger.Increase(context.Background(), stock.MovementInput{
		MaterialID: "m", LocationID: "l", Quantity: 5,
		BatchNumber: "LOTE-10", ExpiryDate: &later,
	}))
	bal = stocks.rows[key("m", "l")]
	assert.Equal(t, "LOTE-10", bal.BatchNumber)
	assert.True(t, bal.ExpiryDate.Equal(later))
}

func TestLedger_Decrease_RestaYAudita(t *testing.T) {
	ledger, stocks, movs := newLedgerForTest()
	require.NoError(t, ledger.Increase(context.Background(), stock.MovementInput{MaterialID: "m", LocationID: "l", Quantity: 10}))

	err := ledger.Decrease(context.Background(), stock.MovementInput{MaterialID: "m", LocationID: "l", Quantity: 4, Actor: "u1"})
	require.NoError(t, err)

	assert.Equal(t, 6, stocks.rows[key("m", "l")].Quantity)
	require.Len(t, movs.movements, 2)
	assert.Equal(t, entity.MovementTypeOUT, movs.movements[1].Type)
	assert.Equal(t, -4, movs.movements[1].Quantity, "la salida se audita con cantidad firmada")
}

func TestLedger_Decrease_StockInsuficiente(t *testing.T) {
	ledger, stocks, _ := newLedgerForTest()
	require.NoError(t, ledger.Increase(context.Background(), stock.MovementInput{MaterialID: "m", LocationID: "l", Quantity: 3}))

	err := ledger.Decrease(context.Background(), stock.MovementInput{MaterialID: "m", LocationID: "l", Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, stocks.rows[key("m", "l")].Quantity, "sin deducción parcial")
}

func TestLedger_Decrease_SinFilaEsInsuficiente(t *testing.T) {
	ledger, _, _ := newLedgerForTest()
	err := ledger.Decrease(context.Background(), stock.MovementInput{MaterialID: "m", LocationID: "l", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestLedger_Decrease_RollbackSiFallaAuditoria(t *testing.T) {
	ledger, stocks, movs := newLedgerForTest()
	require.NoError(t, ledger.Increase(context.Background(), stock.MovementInput{MaterialID: "m", LocationID: "l", Quantity: 10}))

	movs.failWith = errors.New("db caída")
	err := ledger.Decrease(context.Background(), stock.MovementInput{MaterialID: "m", LocationID: "l", Quantity: 4})
	require.Error(t, err)

	assert.Equal(t, 10, stocks.rows[key("m", "l")].Quantity,
		"si no se puede auditar, el saldo no cambia (todo-o-nada)")
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_Transfer_MueveYConservaElTotal(t *testing.T) {
	ledger, stocks, movs := newLedgerForTest()
	require.NoError(t, ledger.Increase(context.Background(), stock.MovementInput{MaterialID: "m", LocationID: "origen", Quantity: 10}))

	err := ledger.Transfer(context.Background(), stock.TransferInput{
		MaterialID: "m", FromLocationID: "origen", ToLocationID: "destino", Quantity: 4, Reference: "tr-1",
	})
	require.NoError(t, err)

	origin := stocks.rows[key("m", "origen")]
	dest := stocks.rows[key("m", "destino")]
	assert.Equal(t, 6, origin.Quantity)
	assert.Equal(t, 4, dest.Quantity)
	assert.Equal(t, 10, origin.Quantity+dest.Quantity, "el traslado conserva el total")
	assert.Equal(t, origin.Condition, dest.Condition, "el destino hereda la condición del origen")

	// Dos registros de auditoría con el mismo Reference.
	require.Len(t, movs.movements, 3)
	assert.Equal(t, -4, movs.movements[1].Quantity)
	assert.Equal(t, 4, movs.movements[2].Quantity)
	assert.Equal(t, "tr-1", movs.movements[1].Reference)
	assert.Equal(t, "tr-1", movs.movements[2].Reference)
}

func TestLedger_Transfer_DestinoHeredaLote(t *testing.T) {
	ledger, stocks, _ := newLedgerForTest()
	expiry := time.Now().AddDate(0, 3, 0)
	require.NoError(t, ledger.Increase(context.Background(), stock.MovementInput{
		MaterialID: "m", LocationID: "origen", Quantity: 10,
		BatchNumber: "LOTE-3", ExpiryDate: &expiry,
	}))

	err := ledger.Transfer(context.Background(), stock.TransferInput{
		MaterialID: "m", FromLocationID: "origen", ToLocationID: "destino", Quantity: 4,
	})
	require.NoError(t, err)

	dest := stocks.rows[key("m", "destino")]
	assert.Equal(t, "LOTE-3", dest.BatchNumber, "el destino nuevo hereda el lote del origen")
	require.NotNil(t, dest.ExpiryDate)
	assert.True(t, dest.ExpiryDate.Equal(expiry))
}

func TestLedger_Transfer_MismaUbicacion(t *testing.T) {
	ledger, _, _ := newLedgerForTest()
	err := ledger.Transfer(context.Background(), stock.TransferInput{
		MaterialID: "m", FromLocationID: "a", ToLocationID: "a", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrSameLocation)
}

func TestLedger_Transfer_InsuficienteNoTocaNada(t *testing.T) {
	ledger, stocks, _ := newLedgerForTest()
	require.NoError(t, ledger.Increase(context.Background(), stock.MovementInput{MaterialID: "m", LocationID: "origen", Quantity: 2}))

	err := ledger.Transfer(context.Background(), stock.TransferInput{
		MaterialID: "m", FromLocationID: "origen", ToLocationID: "destino", Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, stocks.rows[key("m", "origen")].Quantity)
	_, destExists := stocks.rows[key("m", "destino")]
	assert.False(t, destExists, "no debe crearse el saldo destino")
}

func TestLedger_Transfer_RespetaReservado(t *testing.T) {
	ledger, stocks, _ := newLedgerForTest()
	require.NoError(t, stocks.Upsert(&entity.StockBalance{
		MaterialID: "m", LocationID: "origen", Quantity: 10, ReservedQuantity: 8,
	}))

	err := ledger.Transfer(context.Background(), stock.TransferInput{
		MaterialID: "m", FromLocationID: "origen", ToLocationID: "destino", Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"el traslado valida contra lo disponible, no lo bruto")
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustInTx / DeleteBalance / GetBalance
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_Adjust_DeltaNegativoSinFila(t *testing.T) {
	ledger, stocks, movs := newLedgerForTest()
	runner := &fakeTxRunner{stocks: stocks, movements: movs}

	err := runner.Run(context.Background(), func(r stock.Repos) error {
		return ledger.AdjustInTx(r, stock.MovementInput{MaterialID: "m", LocationID: "l", Quantity: -3}, time.Now())
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestLedger_Adjust_DeltaPositivoCreaFila(t *testing.T) {
	ledger, stocks, movs := newLedgerForTest()
	runner := &fakeTxRunner{stocks: stocks, movements: movs}

	err := runner.Run(context.Background(), func(r stock.Repos) error {
		return ledger.AdjustInTx(r, stock.MovementInput{MaterialID: "m", LocationID: "l", Quantity: 7}, time.Now())
	})
	require.NoError(t, err)
	assert.Equal(t, 7, stocks.rows[key("m", "l")].Quantity)
	require.Len(t, movs.movements, 1)
	assert.Equal(t, entity.MovementTypeADJUSTMENT, movs.movements[0].Type)
}

func TestLedger_DeleteBalance_SoloEnCero(t *testing.T) {
	ledger, stocks, _ := newLedgerForTest()
	require.NoError(t, ledger.Increase(context.Background(), stock.MovementInput{MaterialID: "m", LocationID: "l", Quantity: 2}))

	err := ledger.DeleteBalance(context.Background(), "m", "l")
	assert.ErrorIs(t, err, domain.ErrBalanceNotEmpty)

	require.NoError(t, ledger.Decrease(context.Background(), stock.MovementInput{MaterialID: "m", LocationID: "l", Quantity: 2}))
	require.NoError(t, ledger.DeleteBalance(context.Background(), "m", "l"))
	_, exists := stocks.rows[key("m", "l")]
	assert.False(t, exists)
}

func TestLedger_GetBalance_SinFilaDevuelveCero(t *testing.T) {
	ledger, _, _ := newLedgerForTest()
	bal, err := ledger.GetBalance("m", "l")
	require.NoError(t, err)
	require.NotNil(t, bal)
	assert.Equal(t, 0, bal.Quantity)
	assert.Equal(t, "m", bal.MaterialID)
}
