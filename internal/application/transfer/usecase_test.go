package transfer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/application/transfer"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	rows map[string]*entity.StockBalance
}

func skey(materialID, locationID string) string { return materialID + "|" + locationID }

func (f *fakeStockRepo) Get(materialID, locationID string) (*entity.StockBalance, error) {
	b, ok := f.rows[skey(materialID, locationID)]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeStockRepo) GetForUpdate(materialID, locationID string) (*entity.StockBalance, error) {
	return f.Get(materialID, locationID)
}

func (f *fakeStockRepo) Upsert(b *entity.StockBalance) error {
	cp := *b
	f.rows[skey(b.MaterialID, b.LocationID)] = &cp
	return nil
}

func (f *fakeStockRepo) Delete(materialID, locationID string) error {
	delete(f.rows, skey(materialID, locationID))
	return nil
}

func (f *fakeStockRepo) ListByMaterial(string) ([]*entity.StockBalance, error) { return nil, nil }
func (f *fakeStockRepo) ListByLocation(string, int, int) ([]*entity.StockBalance, error) {
	return nil, nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
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

type fakeTransferRepo struct {
	rows map[string]*entity.Transfer
}

func (f *fakeTransferRepo) Create(t *entity.Transfer) error {
	cp := *t
	f.rows[t.ID] = &cp
	return nil
}

func (f *fakeTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	t, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTransferRepo) GetByIDForUpdate(id string) (*entity.Transfer, error) {
	return f.GetByID(id)
}

func (f *fakeTransferRepo) Update(t *entity.Transfer) error {
	cp := *t
	f.rows[t.ID] = &cp
	return nil
}

func (f *fakeTransferRepo) Delete(id string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeTransferRepo) List(filter repository.TransferFilter) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	for _, t := range f.rows {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeTransferRepo) CountByStatus(status string) (int, error) {
	n := 0
	for _, t := range f.rows {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeMaterialRepo struct {
	materials map[string]*entity.Material
}

func (f *fakeMaterialRepo) Create(*entity.Material) error { return nil }
func (f *fakeMaterialRepo) GetByID(id string) (*entity.Material, error) {
	m, ok := f.materials[id]
	if !ok {
		return nil, nil
	}
	return m, nil
}
func (f *fakeMaterialRepo) GetByCode(string) (*entity.Material, error) { return nil, nil }
func (f *fakeMaterialRepo) Update(*entity.Material) error              { return nil }
func (f *fakeMaterialRepo) List(repository.MaterialFilter) ([]*entity.Material, error) {
	return nil, nil
}

type fakeLocationRepo struct {
	locations map[string]*entity.Location
	failWith  error
}

func (f *fakeLocationRepo) Create(*entity.Location) error { return nil }
func (f *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	l, ok := f.locations[id]
	if !ok {
		return nil, nil
	}
	return l, nil
}
func (f *fakeLocationRepo) GetByCode(string) (*entity.Location, error) { return nil, nil }
func (f *fakeLocationRepo) Update(*entity.Location) error              { return nil }
func (f *fakeLocationRepo) List(string, bool, int, int) ([]*entity.Location, error) {
	return nil, nil
}
func (f *fakeLocationRepo) Delete(string) error { return nil }

// fakeTxRunner restaura saldos y traslados si fn falla, emulando Rollback.
type fakeTxRunner struct {
	stocks    *fakeStockRepo
	movements *fakeMovementRepo
	transfers *fakeTransferRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(r stock.Repos) error) error {
	snapStocks := map[string]*entity.StockBalance{}
	for k, b := range f.stocks.rows {
		cp := *b
		snapStocks[k] = &cp
	}
	snapTransfers := map[string]*entity.Transfer{}
	for k, t := range f.transfers.rows {
		cp := *t
		snapTransfers[k] = &cp
	}
	snapMovs := len(f.movements.movements)

	err := fn(stock.Repos{Stock: f.stocks, Movements: f.movements, Transfers: f.transfers})
	if err != nil {
		f.stocks.rows = snapStocks
		f.transfers.rows = snapTransfers
		f.movements.movements = f.movements.movements[:snapMovs]
	}
	return err
}

type fixture struct {
	uc        *transfer.UseCase
	stocks    *fakeStockRepo
	movements *fakeMovementRepo
	transfers *fakeTransferRepo
	locations *fakeLocationRepo
}

func newFixture() *fixture {
	stocks := &fakeStockRepo{rows: map[string]*entity.StockBalance{}}
	movements := &fakeMovementRepo{}
	transfers := &fakeTransferRepo{rows: map[string]*entity.Transfer{}}
	materials := &fakeMaterialRepo{materials: map[string]*entity.Material{
		"mat-1":        {ID: "mat-1", Code: "EQ-001", Status: entity.MaterialStatusActive},
		"mat-retirado": {ID: "mat-retirado", Code: "EQ-002", Status: entity.MaterialStatusRetired},
	}}
	locations := &fakeLocationRepo{locations: map[string]*entity.Location{
		"bodega":  {ID: "bodega", Code: "BOD-1", Active: true},
		"sitio-a": {ID: "sitio-a", Code: "SIT-A", Active: true},
	}}
	runner := &fakeTxRunner{stocks: stocks, movements: movements, transfers: transfers}
	ledger := stock.NewLedger(runner, stocks)
	uc := transfer.NewUseCase(runner, ledger, transfers, stocks, materials, locations)
	return &fixture{uc: uc, stocks: stocks, movements: movements, transfers: transfers, locations: locations}
}

func (fx *fixture) seedStock(materialID, locationID string, qty int) {
	fx.stocks.rows[skey(materialID, locationID)] = &entity.StockBalance{
		MaterialID: materialID, LocationID: locationID, Quantity: qty,
	}
}

func validRequest() dto.CreateTransferRequest {
	return dto.CreateTransferRequest{
		MaterialID:     "mat-1",
		FromLocationID: "bodega",
		ToLocationID:   "sitio-a",
		Quantity:       5,
		Reason:         "obra",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ConStockSuficiente(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 10)

	out, err := fx.uc.Create(context.Background(), "u1", validRequest())
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusRequested, out.Status)
	assert.False(t, out.InsufficientAtCreation)
	assert.Equal(t, "u1", out.RequestedBy)
	assert.Equal(t, 10, fx.stocks.rows[skey("mat-1", "bodega")].Quantity,
		"crear la solicitud no toca el stock")
}

func TestCreate_StockInsuficienteEsSoloAviso(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 2)

	out, err := fx.uc.Create(context.Background(), "u1", validRequest())
	require.NoError(t, err, "la solicitud se registra aunque no alcance el stock")

	assert.True(t, out.InsufficientAtCreation, "debe marcarse el aviso consultivo")
	assert.Equal(t, entity.TransferStatusRequested, out.Status)
}

func TestCreate_SinSaldoRegistradoTambienAvisa(t *testing.T) {
	fx := newFixture()

	out, err := fx.uc.Create(context.Background(), "u1", validRequest())
	require.NoError(t, err)
	assert.True(t, out.InsufficientAtCreation)
}

func TestCreate_Validaciones(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 10)

	in := validRequest()
	in.Quantity = 0
	_, err := fx.uc.Create(context.Background(), "u1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	in = validRequest()
	in.ToLocationID = in.FromLocationID
	_, err = fx.uc.Create(context.Background(), "u1", in)
	assert.ErrorIs(t, err, domain.ErrSameLocation)

	in = validRequest()
	in.MaterialID = "mat-retirado"
	_, err = fx.uc.Create(context.Background(), "u1", in)
	assert.ErrorIs(t, err, domain.ErrNotFound, "material retirado no puede trasladarse")

	in = validRequest()
	in.MaterialID = "no-existe"
	_, err = fx.uc.Create(context.Background(), "u1", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_FalloDeAlmacenNoSeReportaComoNotFound(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 10)

	dbErr := errors.New("conexión perdida")
	fx.locations.failWith = dbErr

	_, err := fx.uc.Create(context.Background(), "u1", validRequest())
	assert.ErrorIs(t, err, dbErr, "un fallo de almacenamiento debe propagarse tal cual")
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirm: re-chequeo autoritativo
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirm_EjecutaYMueveStock(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 10)
	out, err := fx.uc.Create(context.Background(), "u1", validRequest())
	require.NoError(t, err)

	require.NoError(t, fx.uc.Confirm(context.Background(), out.ID, "u2"))

	got, err := fx.uc.GetByID(out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusExecuted, got.Status)
	assert.Equal(t, "u2", got.ConfirmedBy)
	require.NotNil(t, got.ConfirmedAt)

	assert.Equal(t, 5, fx.stocks.rows[skey("mat-1", "bodega")].Quantity)
	assert.Equal(t, 5, fx.stocks.rows[skey("mat-1", "sitio-a")].Quantity)
	assert.Len(t, fx.movements.movements, 2, "salida del origen y entrada al destino")
}

func TestConfirm_StockCayoTrasLaSolicitud(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 10)
	out, err := fx.uc.Create(context.Background(), "u1", validRequest())
	require.NoError(t, err)

	// Otro proceso consumió el stock entre solicitud y confirmación.
	fx.seedStock("mat-1", "bodega", 3)

	err = fx.uc.Confirm(context.Background(), out.ID, "u2")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, _ := fx.uc.GetByID(out.ID)
	assert.Equal(t, entity.TransferStatusRequested, got.Status,
		"la solicitud sigue pendiente tras el fallo")
	assert.Equal(t, 3, fx.stocks.rows[skey("mat-1", "bodega")].Quantity)
	_, destExists := fx.stocks.rows[skey("mat-1", "sitio-a")]
	assert.False(t, destExists)
}

func TestConfirm_Idempotencia(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 10)
	out, err := fx.uc.Create(context.Background(), "u1", validRequest())
	require.NoError(t, err)

	require.NoError(t, fx.uc.Confirm(context.Background(), out.ID, "u2"))
	err = fx.uc.Confirm(context.Background(), out.ID, "u2")
	assert.ErrorIs(t, err, domain.ErrAlreadyExecuted)

	assert.Equal(t, 5, fx.stocks.rows[skey("mat-1", "bodega")].Quantity,
		"la segunda confirmación no vuelve a mover stock")
}

func TestConfirm_TrasladoInexistente(t *testing.T) {
	fx := newFixture()
	err := fx.uc.Confirm(context.Background(), "no-existe", "u2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancel / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_SoloPendientes(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 10)
	out, err := fx.uc.Create(context.Background(), "u1", validRequest())
	require.NoError(t, err)

	require.NoError(t, fx.uc.Cancel(context.Background(), out.ID, "ya no se necesita"))

	got, _ := fx.uc.GetByID(out.ID)
	assert.Equal(t, entity.TransferStatusCancelled, got.Status)
	assert.Contains(t, got.Notes, "cancelado: ya no se necesita")

	err = fx.uc.Cancel(context.Background(), out.ID, "otra vez")
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
}

func TestCancel_EjecutadoNoSePuede(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 10)
	out, err := fx.uc.Create(context.Background(), "u1", validRequest())
	require.NoError(t, err)
	require.NoError(t, fx.uc.Confirm(context.Background(), out.ID, "u2"))

	err = fx.uc.Cancel(context.Background(), out.ID, "tarde")
	assert.ErrorIs(t, err, domain.ErrAlreadyExecuted)
}

func TestDelete_EjecutadoEsInmutable(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 10)
	out, err := fx.uc.Create(context.Background(), "u1", validRequest())
	require.NoError(t, err)
	require.NoError(t, fx.uc.Confirm(context.Background(), out.ID, "u2"))

	err = fx.uc.Delete(context.Background(), out.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyExecuted)
}

func TestDelete_PendienteYCancelado(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 10)
	out, err := fx.uc.Create(context.Background(), "u1", validRequest())
	require.NoError(t, err)

	require.NoError(t, fx.uc.Delete(context.Background(), out.ID))
	got, err := fx.uc.GetByID(out.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pending
// ──────────────────────────────────────────────────────────────────────────────

func TestPending_SoloRequested(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 20)

	a, err := fx.uc.Create(context.Background(), "u1", validRequest())
	require.NoError(t, err)
	b, err := fx.uc.Create(context.Background(), "u1", validRequest())
	require.NoError(t, err)
	_, err = fx.uc.Create(context.Background(), "u1", validRequest())
	require.NoError(t, err)

	require.NoError(t, fx.uc.Confirm(context.Background(), a.ID, "u2"))
	require.NoError(t, fx.uc.Cancel(context.Background(), b.ID, ""))

	out, err := fx.uc.Pending(20, 0)
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, 1, out.PendingCount)
	assert.Equal(t, entity.TransferStatusRequested, out.Items[0].Status)
}
