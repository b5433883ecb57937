package entity

import "time"

// Tipos de ubicación.
const (
	LocationTypeWarehouse  = "warehouse"  // bodega principal
	LocationTypeSite       = "site"       // obra o sitio externo
	LocationTypeDepartment = "department" // dependencia administrativa
)

// Location representa una bodega, sitio o dependencia donde se almacena stock.
type Location struct {
	ID                    string
	Code                  string // código único de ubicación
	Name                  string
	Description           string
	Type                  string // warehouse, site, department
	Building              string
	Floor                 int
	Address               string
	MaxCapacity           int // 0 = sin límite declarado
	ResponsibleDepartment string
	Active                bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
