package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de adquisición de una compra.
const (
	AcquisitionPurchase = "purchase" // compra directa
	AcquisitionDonation = "donation" // donación
	AcquisitionTransfer = "transfer" // transferido desde otra entidad
)

// Purchase representa una adquisición de material con destino a una ubicación.
// El alta en stock es un paso explícito posterior (AddedToStock) que pasa por
// el ledger exactamente una vez.
type Purchase struct {
	ID             string
	MaterialID     string
	LocationID     string
	Quantity       int // > 0
	UnitPrice      decimal.Decimal
	Currency       string          // IQD, USD...
	ExchangeRate   decimal.Decimal // tasa hacia la moneda local, 1 si es local
	Supplier       string
	InvoiceNumber  string
	Method         string // purchase, donation, transfer
	TransferSource string // entidad de origen si Method = transfer
	BatchNumber    string
	ExpiryDate     *time.Time
	PurchaseDate   time.Time
	AddedToStock   bool
	AddedToStockAt *time.Time
	Notes          string
	CreatedAt      time.Time
	CreatedBy      string
}

// TotalPrice devuelve cantidad por precio unitario en la moneda de la compra.
func (p *Purchase) TotalPrice() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// TotalPriceLocal devuelve el total convertido a moneda local.
func (p *Purchase) TotalPriceLocal() decimal.Decimal {
	return p.TotalPrice().Mul(p.ExchangeRate)
}

// Year devuelve el año de la compra (agrupador de reportes anuales).
func (p *Purchase) Year() int {
	return p.PurchaseDate.Year()
}
