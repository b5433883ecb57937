package entity

import "time"

// InventoryRecord es una línea del inventario físico anual (formulario 2):
// cantidad contada contra cantidad registrada para un material en una
// ubicación. La diferencia aprobada puede aplicarse al stock como ajuste,
// exactamente una vez.
type InventoryRecord struct {
	ID               string
	SequenceNumber   int // número de renglón dentro del formulario del año
	MaterialID       string
	LocationID       string
	Year             int
	InventoryDate    time.Time
	ActualQuantity   int // contada físicamente
	RecordedQuantity int // según sistema al momento del conteo
	Condition        string
	ActualLocation   string // ubicación física exacta observada
	Department       string
	CountedBy        string
	Approved         bool
	ApprovedAt       *time.Time
	ApprovedBy       string
	StockUpdated     bool // la diferencia ya fue aplicada al ledger
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	CreatedBy        string
}

// Difference devuelve contado menos registrado (negativo = faltante).
func (r *InventoryRecord) Difference() int {
	return r.ActualQuantity - r.RecordedQuantity
}

// HasShortage indica faltante.
func (r *InventoryRecord) HasShortage() bool { return r.Difference() < 0 }

// HasSurplus indica sobrante.
func (r *InventoryRecord) HasSurplus() bool { return r.Difference() > 0 }

// IsMatching indica que el conteo coincide con el registro.
func (r *InventoryRecord) IsMatching() bool { return r.Difference() == 0 }
