// Package stock contiene los servicios de dominio del catálogo: funciones
// puras sobre snapshots cargados explícitamente (saldos y compras de un
// material), sin recorrer grafos perezosos de entidades.
package stock

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// TotalQuantity suma las cantidades de todos los saldos del material.
func TotalQuantity(balances []*entity.StockBalance) int {
	total := 0
	for _, b := range balances {
		total += b.Quantity
	}
	return total
}

// LastPurchasePrice devuelve el precio unitario (en moneda local) de la compra
// más reciente, o cero si no hay compras.
func LastPurchasePrice(purchases []*entity.Purchase) decimal.Decimal {
	if len(purchases) == 0 {
		return decimal.Zero
	}
	last := purchases[0]
	for _, p := range purchases[1:] {
		if p.PurchaseDate.After(last.PurchaseDate) {
			last = p
		}
	}
	return last.UnitPrice.Mul(last.ExchangeRate)
}

// AveragePrice devuelve el promedio ponderado por cantidad de los precios de
// compra en moneda local, o cero si no hay compras con cantidad.
func AveragePrice(purchases []*entity.Purchase) decimal.Decimal {
	totalQty := decimal.Zero
	totalValue := decimal.Zero
	for _, p := range purchases {
		qty := decimal.NewFromInt(int64(p.Quantity))
		totalQty = totalQty.Add(qty)
		totalValue = totalValue.Add(p.TotalPriceLocal())
	}
	if totalQty.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return totalValue.Div(totalQty)
}

// TotalValue valora el stock total del material: cantidad total por el último
// precio de compra, o por el promedio si no hay última compra.
func TotalValue(balances []*entity.StockBalance, purchases []*entity.Purchase) decimal.Decimal {
	price := LastPurchasePrice(purchases)
	if price.IsZero() {
		price = AveragePrice(purchases)
	}
	return price.Mul(decimal.NewFromInt(int64(TotalQuantity(balances))))
}

// IsLowStock indica si el total en existencia está en o bajo el mínimo.
func IsLowStock(material *entity.Material, balances []*entity.StockBalance) bool {
	return TotalQuantity(balances) <= material.MinimumStock
}

// SortByExpiry ordena los saldos por fecha de vencimiento ascendente;
// los saldos sin vencimiento quedan al final.
func SortByExpiry(balances []*entity.StockBalance) {
	sort.SliceStable(balances, func(i, j int) bool {
		a, b := balances[i].ExpiryDate, balances[j].ExpiryDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}
