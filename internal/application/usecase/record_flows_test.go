package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
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

type fakePurchaseRepo struct {
	rows map[string]*entity.Purchase
}

func (f *fakePurchaseRepo) Create(p *entity.Purchase) error {
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePurchaseRepo) GetByIDForUpdate(id string) (*entity.Purchase, error) {
	return f.GetByID(id)
}

func (f *fakePurchaseRepo) Update(p *entity.Purchase) error {
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePurchaseRepo) Delete(id string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakePurchaseRepo) List(repository.PurchaseFilter) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range f.rows {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakePurchaseRepo) ListByMaterial(materialID string) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range f.rows {
		if p.MaterialID != materialID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type fakeInventoryRepo struct {
	rows map[string]*entity.InventoryRecord
	seq  map[int]int
}

func (f *fakeInventoryRepo) Create(rec *entity.InventoryRecord) error {
	cp := *rec
	f.rows[rec.ID] = &cp
	return nil
}

func (f *fakeInventoryRepo) GetByID(id string) (*entity.InventoryRecord, error) {
	rec, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeInventoryRepo) GetByIDForUpdate(id string) (*entity.InventoryRecord, error) {
	return f.GetByID(id)
}

func (f *fakeInventoryRepo) Update(rec *entity.InventoryRecord) error {
	cp := *rec
	f.rows[rec.ID] = &cp
	return nil
}

func (f *fakeInventoryRepo) Delete(id string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeInventoryRepo) List(repository.InventoryRecordFilter) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, rec := range f.rows {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeInventoryRepo) NextSequenceNumber(year int) (int, error) {
	f.seq[year]++
	return f.seq[year], nil
}

type fakeConsumptionRepo struct {
	rows map[string]*entity.ConsumptionRecord
	seq  map[int]int
}

func (f *fakeConsumptionRepo) Create(rec *entity.ConsumptionRecord) error {
	cp := *rec
	f.rows[rec.ID] = &cp
	return nil
}

func (f *fakeConsumptionRepo) GetByID(id string) (*entity.ConsumptionRecord, error) {
	rec, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeConsumptionRepo) GetByIDForUpdate(id string) (*entity.ConsumptionRecord, error) {
	return f.GetByID(id)
}

func (f *fakeConsumptionRepo) Update(rec *entity.ConsumptionRecord) error {
	cp := *rec
	f.rows[rec.ID] = &cp
	return nil
}

func (f *fakeConsumptionRepo) Delete(id string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeConsumptionRepo) List(repository.ConsumptionRecordFilter) ([]*entity.ConsumptionRecord, error) {
	var out []*entity.ConsumptionRecord
	for _, rec := range f.rows {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeConsumptionRepo) NextSequenceNumber(year int) (int, error) {
	f.seq[year]++
	return f.seq[year], nil
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
}

func (f *fakeLocationRepo) Create(*entity.Location) error { return nil }
func (f *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
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

// fakeTxRunner restaura todos los repos mutables si fn falla, emulando Rollback.
type fakeTxRunner struct {
	stocks      *fakeStockRepo
	movements   *fakeMovementRepo
	purchases   *fakePurchaseRepo
	inventory   *fakeInventoryRepo
	consumption *fakeConsumptionRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(r stock.Repos) error) error {
	snapStocks := map[string]*entity.StockBalance{}
	for k, b := range f.stocks.rows {
		cp := *b
		snapStocks[k] = &cp
	}
	snapPurchases := map[string]*entity.Purchase{}
	for k, p := range f.purchases.rows {
		cp := *p
		snapPurchases[k] = &cp
	}
	snapInventory := map[string]*entity.InventoryRecord{}
	for k, rec := range f.inventory.rows {
		cp := *rec
		snapInventory[k] = &cp
	}
	snapConsumption := map[string]*entity.ConsumptionRecord{}
	for k, rec := range f.consumption.rows {
		cp := *rec
		snapConsumption[k] = &cp
	}
	snapMovs := len(f.movements.movements)

	err := fn(stock.Repos{
		Stock:       f.stocks,
		Movements:   f.movements,
		Purchases:   f.purchases,
		Inventory:   f.inventory,
		Consumption: f.consumption,
	})
	if err != nil {
		f.stocks.rows = snapStocks
		f.purchases.rows = snapPurchases
		f.inventory.rows = snapInventory
		f.consumption.rows = snapConsumption
		f.movements.movements = f.movements.movements[:snapMovs]
	}
	return err
}

type fixture struct {
	purchases   *usecase.PurchaseUseCase
	inventory   *usecase.InventoryUseCase
	consumption *usecase.ConsumptionUseCase

	stocks          *fakeStockRepo
	movements       *fakeMovementRepo
	purchaseRepo    *fakePurchaseRepo
	inventoryRepo   *fakeInventoryRepo
	consumptionRepo *fakeConsumptionRepo
}

func newFixture() *fixture {
	stocks := &fakeStockRepo{rows: map[string]*entity.StockBalance{}}
	movements := &fakeMovementRepo{}
	purchaseRepo := &fakePurchaseRepo{rows: map[string]*entity.Purchase{}}
	inventoryRepo := &fakeInventoryRepo{rows: map[string]*entity.InventoryRecord{}, seq: map[int]int{}}
	consumptionRepo := &fakeConsumptionRepo{rows: map[string]*entity.ConsumptionRecord{}, seq: map[int]int{}}
	materials := &fakeMaterialRepo{materials: map[string]*entity.Material{
		"mat-1": {ID: "mat-1", Code: "EQ-001", Unit: "pieza", Status: entity.MaterialStatusActive},
	}}
	locations := &fakeLocationRepo{locations: map[string]*entity.Location{
		"bodega": {ID: "bodega", Code: "BOD-1", Active: true},
	}}
	runner := &fakeTxRunner{
		stocks:      stocks,
		movements:   movements,
		purchases:   purchaseRepo,
		inventory:   inventoryRepo,
		consumption: consumptionRepo,
	}
	ledger := stock.NewLedger(runner, stocks)
	return &fixture{
		purchases:       usecase.NewPurchaseUseCase(runner, ledger, purchaseRepo, materials, locations),
		inventory:       usecase.NewInventoryUseCase(runner, ledger, inventoryRepo, materials, locations, stocks),
		consumption:     usecase.NewConsumptionUseCase(runner, ledger, consumptionRepo, inventoryRepo, materials, purchaseRepo),
		stocks:          stocks,
		movements:       movements,
		purchaseRepo:    purchaseRepo,
		inventoryRepo:   inventoryRepo,
		consumptionRepo: consumptionRepo,
	}
}

func (fx *fixture) seedStock(materialID, locationID string, qty int) {
	fx.stocks.rows[skey(materialID, locationID)] = &entity.StockBalance{
		MaterialID: materialID, LocationID: locationID, Quantity: qty,
		Condition: entity.ConditionGood,
	}
}

func (fx *fixture) stockQty(materialID, locationID string) int {
	b, ok := fx.stocks.rows[skey(materialID, locationID)]
	if !ok {
		return 0
	}
	return b.Quantity
}

func (fx *fixture) createPurchase(t *testing.T, qty int, price string) *dto.PurchaseResponse {
	t.Helper()
	out, err := fx.purchases.Create("u1", dto.CreatePurchaseRequest{
		MaterialID:    "mat-1",
		LocationID:    "bodega",
		Quantity:      qty,
		UnitPrice:     decimal.RequireFromString(price),
		InvoiceNumber: "F-001",
	})
	require.NoError(t, err)
	return out
}

// seedInventoryRecord registra un renglón del formulario 2 ya existente,
// como lo dejaría un conteo previo.
func (fx *fixture) seedInventoryRecord(id string, actual, recorded int) {
	fx.inventoryRepo.rows[id] = &entity.InventoryRecord{
		ID:               id,
		SequenceNumber:   1,
		MaterialID:       "mat-1",
		LocationID:       "bodega",
		Year:             2026,
		InventoryDate:    time.Now(),
		ActualQuantity:   actual,
		RecordedQuantity: recorded,
		Condition:        entity.ConditionGood,
		ActualLocation:   "estante 3",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Compras: ingreso a stock exactamente una vez
// ──────────────────────────────────────────────────────────────────────────────

func TestAddToStock_IngresaUnaSolaVez(t *testing.T) {
	fx := newFixture()
	p := fx.createPurchase(t, 12, "50")
	assert.Equal(t, 0, fx.stockQty("mat-1", "bodega"), "crear la compra no toca el stock")

	require.NoError(t, fx.purchases.AddToStock(context.Background(), p.ID, "u2"))

	assert.Equal(t, 12, fx.stockQty("mat-1", "bodega"))
	got, err := fx.purchases.GetByID(p.ID)
	require.NoError(t, err)
	assert.True(t, got.AddedToStock)
	require.NotNil(t, got.AddedToStockAt)
	require.Len(t, fx.movements.movements, 1)
	assert.Equal(t, entity.MovementTypeIN, fx.movements.movements[0].Type)
	assert.Equal(t, p.ID, fx.movements.movements[0].Reference)

	err = fx.purchases.AddToStock(context.Background(), p.ID, "u2")
	assert.ErrorIs(t, err, domain.ErrAlreadyApplied)
	assert.Equal(t, 12, fx.stockQty("mat-1", "bodega"), "el segundo ingreso no duplica el saldo")
	assert.Len(t, fx.movements.movements, 1)
}

func TestAddToStock_CopiaLoteYVencimientoAlSaldo(t *testing.T) {
	fx := newFixture()
	expiry := time.Now().AddDate(0, 6, 0)
	out, err := fx.purchases.Create("u1", dto.CreatePurchaseRequest{
		MaterialID:  "mat-1",
		LocationID:  "bodega",
		Quantity:    6,
		UnitPrice:   decimal.RequireFromString("25"),
		BatchNumber: "LOTE-9",
		ExpiryDate:  &expiry,
	})
	require.NoError(t, err)

	require.NoError(t, fx.purchases.AddToStock(context.Background(), out.ID, "u2"))

	bal := fx.stocks.rows[skey("mat-1", "bodega")]
	require.NotNil(t, bal)
	assert.Equal(t, "LOTE-9", bal.BatchNumber,
		"el lote de la compra debe quedar en el saldo para el reporte de vencimientos")
	require.NotNil(t, bal.ExpiryDate)
	assert.True(t, bal.ExpiryDate.Equal(expiry))
}

func TestAddToStock_CompraInexistente(t *testing.T) {
	fx := newFixture()
	err := fx.purchases.AddToStock(context.Background(), "no-existe", "u2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchase_InmutableTrasIngreso(t *testing.T) {
	fx := newFixture()
	p := fx.createPurchase(t, 3, "10")
	require.NoError(t, fx.purchases.AddToStock(context.Background(), p.ID, "u2"))

	qty := 5
	_, err := fx.purchases.Update(p.ID, dto.UpdatePurchaseRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = fx.purchases.Delete(p.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario físico: congelar al crear, aplicar diferencia una vez
// ──────────────────────────────────────────────────────────────────────────────

func TestInventoryCreate_CongelaCantidadRegistrada(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 8)

	out, err := fx.inventory.Create("u1", dto.CreateInventoryRecordRequest{
		MaterialID:     "mat-1",
		LocationID:     "bodega",
		Year:           2026,
		ActualQuantity: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, out.SequenceNumber)
	assert.Equal(t, 8, out.RecordedQuantity, "la cantidad según sistema se congela al crear")
	assert.Equal(t, -3, out.Difference)
	assert.False(t, out.Approved)
	assert.False(t, out.StockUpdated)
	assert.Equal(t, 8, fx.stockQty("mat-1", "bodega"), "el conteo no toca el stock")
}

func TestInventoryApprove_AplicaFaltanteUnaVez(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 8)
	fx.seedInventoryRecord("inv-1", 5, 8)

	err := fx.inventory.Approve(context.Background(), "inv-1", dto.ApproveInventoryRecordRequest{
		ApprovedBy:   "contador",
		ApplyToStock: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, fx.stockQty("mat-1", "bodega"), "el faltante baja el saldo al contado")
	got, err := fx.inventory.GetByID("inv-1")
	require.NoError(t, err)
	assert.True(t, got.Approved)
	assert.True(t, got.StockUpdated)
	assert.Equal(t, "contador", got.ApprovedBy)
	require.Len(t, fx.movements.movements, 1)
	assert.Equal(t, entity.MovementTypeADJUSTMENT, fx.movements.movements[0].Type)
	assert.Equal(t, -3, fx.movements.movements[0].Quantity)

	err = fx.inventory.ApplyToStock(context.Background(), "inv-1", "contador")
	assert.ErrorIs(t, err, domain.ErrAlreadyApplied)
	assert.Equal(t, 5, fx.stockQty("mat-1", "bodega"), "la diferencia no se aplica dos veces")
}

func TestInventoryApprove_Sobrante(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 8)
	fx.seedInventoryRecord("inv-1", 10, 8)

	err := fx.inventory.Approve(context.Background(), "inv-1", dto.ApproveInventoryRecordRequest{
		ApprovedBy:   "contador",
		ApplyToStock: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, fx.stockQty("mat-1", "bodega"))
	require.Len(t, fx.movements.movements, 1)
	assert.Equal(t, 2, fx.movements.movements[0].Quantity)
}

func TestInventoryApprove_SinDiferenciaNoGeneraMovimiento(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 8)
	fx.seedInventoryRecord("inv-1", 8, 8)

	err := fx.inventory.Approve(context.Background(), "inv-1", dto.ApproveInventoryRecordRequest{
		ApprovedBy:   "contador",
		ApplyToStock: true,
	})
	require.NoError(t, err)

	got, _ := fx.inventory.GetByID("inv-1")
	assert.True(t, got.StockUpdated, "el renglón queda cerrado aunque no haya delta")
	assert.Empty(t, fx.movements.movements)
}

func TestInventoryApprove_DobleAprobacion(t *testing.T) {
	fx := newFixture()
	fx.seedInventoryRecord("inv-1", 5, 5)

	require.NoError(t, fx.inventory.Approve(context.Background(), "inv-1", dto.ApproveInventoryRecordRequest{ApprovedBy: "contador"}))
	err := fx.inventory.Approve(context.Background(), "inv-1", dto.ApproveInventoryRecordRequest{ApprovedBy: "contador"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestInventoryApplyToStock_RequiereAprobacion(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 8)
	fx.seedInventoryRecord("inv-1", 5, 8)

	err := fx.inventory.ApplyToStock(context.Background(), "inv-1", "contador")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 8, fx.stockQty("mat-1", "bodega"), "sin aprobar no se toca el stock")
}

func TestInventoryApplyToStock_AprobadoSinAplicar(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 8)
	fx.seedInventoryRecord("inv-1", 5, 8)

	require.NoError(t, fx.inventory.Approve(context.Background(), "inv-1", dto.ApproveInventoryRecordRequest{ApprovedBy: "contador"}))
	assert.Equal(t, 8, fx.stockQty("mat-1", "bodega"), "aprobar sin aplicar no mueve stock")

	require.NoError(t, fx.inventory.ApplyToStock(context.Background(), "inv-1", "contador"))
	assert.Equal(t, 5, fx.stockQty("mat-1", "bodega"))
}

func TestInventoryDelete_AprobadoEsInmutable(t *testing.T) {
	fx := newFixture()
	fx.seedInventoryRecord("inv-1", 5, 5)
	require.NoError(t, fx.inventory.Approve(context.Background(), "inv-1", dto.ApproveInventoryRecordRequest{ApprovedBy: "contador"}))

	err := fx.inventory.Delete("inv-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consumo y bajas: deducción una sola vez, decisión del comité
// ──────────────────────────────────────────────────────────────────────────────

func validConsumption() dto.CreateConsumptionRecordRequest {
	return dto.CreateConsumptionRecordRequest{
		InventoryRecordID: "inv-1",
		ConsumedQuantity:  4,
		Reason:            entity.ConsumptionReasonDamage,
		ReasonDetails:     "golpe en traslado",
	}
}

func TestConsumptionCreate_ConDeduccionInmediata(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 10)
	fx.seedInventoryRecord("inv-1", 10, 10)

	in := validConsumption()
	in.DeductFromStock = true
	out, err := fx.consumption.Create(context.Background(), "u1", in)
	require.NoError(t, err)

	assert.True(t, out.StockDeducted)
	assert.Equal(t, entity.DecisionUnderReview, out.Decision, "todo renglón nace en revisión")
	assert.Equal(t, 6, fx.stockQty("mat-1", "bodega"))
	require.Len(t, fx.movements.movements, 1)
	assert.Equal(t, entity.MovementTypeOUT, fx.movements.movements[0].Type)
	assert.Equal(t, -4, fx.movements.movements[0].Quantity)

	err = fx.consumption.DeductFromStock(context.Background(), out.ID, "u2")
	assert.ErrorIs(t, err, domain.ErrAlreadyApplied)
	assert.Equal(t, 6, fx.stockQty("mat-1", "bodega"), "la deducción no se repite")
}

func TestConsumptionCreate_DeduccionInsuficienteRevierteTodo(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 2)
	fx.seedInventoryRecord("inv-1", 2, 2)

	in := validConsumption()
	in.DeductFromStock = true
	_, err := fx.consumption.Create(context.Background(), "u1", in)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Empty(t, fx.consumptionRepo.rows, "el renglón no queda creado si la deducción falla")
	assert.Equal(t, 2, fx.stockQty("mat-1", "bodega"))
	assert.Empty(t, fx.movements.movements)
}

func TestConsumptionCreate_CongelaPrecioPromedio(t *testing.T) {
	fx := newFixture()
	fx.seedInventoryRecord("inv-1", 10, 10)
	fx.createPurchase(t, 10, "100")
	fx.createPurchase(t, 30, "200")

	out, err := fx.consumption.Create(context.Background(), "u1", validConsumption())
	require.NoError(t, err)

	// (10*100 + 30*200) / 40 = 175
	assert.True(t, out.OriginalUnitPrice.Equal(decimal.NewFromInt(175)),
		"precio original = promedio ponderado de compras, se obtuvo %s", out.OriginalUnitPrice)
	assert.True(t, out.OriginalValue.Equal(decimal.NewFromInt(700)))
}

func TestConsumptionCreate_Validaciones(t *testing.T) {
	fx := newFixture()
	fx.seedInventoryRecord("inv-1", 10, 10)

	in := validConsumption()
	in.ConsumedQuantity = 0
	_, err := fx.consumption.Create(context.Background(), "u1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	in = validConsumption()
	in.Reason = "se perdió"
	_, err = fx.consumption.Create(context.Background(), "u1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la razón debe ser una del catálogo")

	in = validConsumption()
	pct := decimal.NewFromInt(150)
	in.DamagePercentage = &pct
	_, err = fx.consumption.Create(context.Background(), "u1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validConsumption()
	in.InventoryRecordID = "no-existe"
	_, err = fx.consumption.Create(context.Background(), "u1", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConsumptionDeduct_DiferidaUsaUbicacionDelConteo(t *testing.T) {
	fx := newFixture()
	fx.seedStock("mat-1", "bodega", 10)
	fx.seedInventoryRecord("inv-1", 10, 10)

	out, err := fx.consumption.Create(context.Background(), "u1", validConsumption())
	require.NoError(t, err)
	assert.False(t, out.StockDeducted)
	assert.Equal(t, 10, fx.stockQty("mat-1", "bodega"), "sin pedirlo, crear no deduce")

	require.NoError(t, fx.consumption.DeductFromStock(context.Background(), out.ID, "u2"))
	assert.Equal(t, 6, fx.stockQty("mat-1", "bodega"))

	err = fx.consumption.Delete(out.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "un renglón que dedujo stock no se borra")
}

func TestConsumptionDecide_YDispose(t *testing.T) {
	fx := newFixture()
	fx.seedInventoryRecord("inv-1", 10, 10)
	out, err := fx.consumption.Create(context.Background(), "u1", validConsumption())
	require.NoError(t, err)

	_, err = fx.consumption.Decide(out.ID, dto.DecideConsumptionRequest{Decision: "quemar"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := fx.consumption.Decide(out.ID, dto.DecideConsumptionRequest{Decision: entity.DecisionKeep})
	require.NoError(t, err)
	assert.Equal(t, entity.DecisionKeep, got.Decision)

	// Con decisión de conservar no procede el cierre de baja.
	_, err = fx.consumption.Dispose(out.ID, dto.DisposeConsumptionRequest{DisposalMethod: "chatarra"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = fx.consumption.Decide(out.ID, dto.DecideConsumptionRequest{Decision: entity.DecisionDispose})
	require.NoError(t, err)
	got, err = fx.consumption.Dispose(out.ID, dto.DisposeConsumptionRequest{DisposalMethod: "chatarra"})
	require.NoError(t, err)
	assert.True(t, got.Disposed)
	require.NotNil(t, got.DisposalDate)

	_, err = fx.consumption.Dispose(out.ID, dto.DisposeConsumptionRequest{DisposalMethod: "chatarra"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = fx.consumption.Decide(out.ID, dto.DecideConsumptionRequest{Decision: entity.DecisionSell})
	assert.ErrorIs(t, err, domain.ErrConflict, "tras el cierre la decisión es inmutable")
}
