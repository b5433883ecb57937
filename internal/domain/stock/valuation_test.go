package stock

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func purchase(qty int, unitPrice, rate string, date time.Time) *entity.Purchase {
	return &entity.Purchase{
		Quantity:     qty,
		UnitPrice:    d(unitPrice),
		ExchangeRate: d(rate),
		PurchaseDate: date,
	}
}

func TestTotalQuantity(t *testing.T) {
	balances := []*entity.StockBalance{
		{Quantity: 5}, {Quantity: 0}, {Quantity: 12},
	}
	assert.Equal(t, 17, TotalQuantity(balances))
	assert.Equal(t, 0, TotalQuantity(nil))
}

func TestLastPurchasePrice_TomaLaMasReciente(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	purchases := []*entity.Purchase{
		purchase(10, "100", "1", base),
		purchase(5, "250", "1", base.AddDate(0, 6, 0)), // la más reciente
		purchase(8, "120", "1", base.AddDate(0, 2, 0)),
	}
	assert.True(t, LastPurchasePrice(purchases).Equal(d("250")))
}

func TestLastPurchasePrice_ConvierteAMonedaLocal(t *testing.T) {
	purchases := []*entity.Purchase{
		purchase(3, "100", "1310", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	assert.True(t, LastPurchasePrice(purchases).Equal(d("131000")),
		"el precio se expresa en moneda local vía la tasa de cambio")
}

func TestLastPurchasePrice_SinCompras(t *testing.T) {
	assert.True(t, LastPurchasePrice(nil).IsZero())
}

func TestAveragePrice_PonderadoPorCantidad(t *testing.T) {
	now := time.Now()
	purchases := []*entity.Purchase{
		purchase(10, "100", "1", now), // 1000
		purchase(30, "200", "1", now), // 6000
	}
	// (1000 + 6000) / 40 = 175
	assert.True(t, AveragePrice(purchases).Equal(d("175")))
}

func TestAveragePrice_SinCompras(t *testing.T) {
	assert.True(t, AveragePrice(nil).IsZero())
	assert.True(t, AveragePrice([]*entity.Purchase{}).IsZero())
}

func TestTotalValue_UsaUltimoPrecio(t *testing.T) {
	balances := []*entity.StockBalance{{Quantity: 4}}
	purchases := []*entity.Purchase{
		purchase(10, "50", "1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		purchase(10, "80", "1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	assert.True(t, TotalValue(balances, purchases).Equal(d("320")))
}

func TestTotalValue_SinComprasEsCero(t *testing.T) {
	balances := []*entity.StockBalance{{Quantity: 4}}
	assert.True(t, TotalValue(balances, nil).IsZero())
}

func TestIsLowStock(t *testing.T) {
	m := &entity.Material{MinimumStock: 10}
	assert.True(t, IsLowStock(m, []*entity.StockBalance{{Quantity: 10}}), "en el mínimo cuenta como bajo")
	assert.True(t, IsLowStock(m, []*entity.StockBalance{{Quantity: 3}}))
	assert.False(t, IsLowStock(m, []*entity.StockBalance{{Quantity: 11}}))
}

func TestSortByExpiry_NulosAlFinal(t *testing.T) {
	d1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	balances := []*entity.StockBalance{
		{BatchNumber: "sin-vencimiento"},
		{BatchNumber: "junio", ExpiryDate: &d2},
		{BatchNumber: "enero", ExpiryDate: &d1},
	}
	SortByExpiry(balances)
	assert.Equal(t, "enero", balances[0].BatchNumber)
	assert.Equal(t, "junio", balances[1].BatchNumber)
	assert.Equal(t, "sin-vencimiento", balances[2].BatchNumber)
}
