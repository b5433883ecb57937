package entity

import "time"

// Condición por defecto de un saldo recién creado.
const ConditionGood = "buena"

// StockBalance representa el saldo actual de un material en una ubicación
// (clave única material+ubicación). Las cantidades son enteras y nunca
// negativas; solo el ledger puede mutarlas.
type StockBalance struct {
	MaterialID       string
	LocationID       string
	Quantity         int
	ReservedQuantity int // 0 <= reservado <= cantidad
	ExpiryDate       *time.Time
	BatchNumber      string
	Condition        string // buena, regular, dañada...
	Notes            string // bitácora de ajustes en texto, una línea por evento
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Available devuelve la cantidad disponible (cantidad menos reservado).
func (s *StockBalance) Available() int {
	return s.Quantity - s.ReservedQuantity
}

// IsExpired indica si el saldo está vencido respecto a now.
func (s *StockBalance) IsExpired(now time.Time) bool {
	return s.ExpiryDate != nil && s.ExpiryDate.Before(now)
}

// ExpiresWithin indica si el saldo vence dentro de los próximos días.
func (s *StockBalance) ExpiresWithin(now time.Time, days int) bool {
	if s.ExpiryDate == nil {
		return false
	}
	return !s.ExpiryDate.Before(now) && s.ExpiryDate.Before(now.AddDate(0, 0, days))
}
