package entity

import "time"

// Estados de ciclo de vida de un material. Un material retirado deja de
// aparecer en catálogos y reportes operativos pero conserva su historial.
const (
	MaterialStatusActive  = "active"
	MaterialStatusRetired = "retired"
)

// Material representa un artículo del catálogo de almacén: la fuente única
// de datos del material, independiente de sus saldos por ubicación.
type Material struct {
	ID             string
	Code           string // código de catalogación, único (ej. 1/1/1, COMP-001)
	Name           string
	Description    string
	MaterialType   string // hierro, madera, aluminio, plástico, etc.
	Specifications string
	Unit           string // unidad de medida (pieza, caja, metro...)
	CategoryID     string // vacío si no está categorizado
	MinimumStock   int    // umbral de stock bajo sobre la suma de saldos
	Ownership      string
	Notes          string
	Status         string // active, retired
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CreatedBy      string
}

// IsActive indica si el material sigue en uso operativo.
func (m *Material) IsActive() bool {
	return m.Status == MaterialStatusActive
}
