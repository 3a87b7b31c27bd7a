package entity

import "time"

// Estados de una categoría.
const (
	CategoryStatusActive   = "active"
	CategoryStatusInactive = "inactive"
)

// Category categoría de ingreso o de salida (dato maestro, solo lectura para este servicio).
// Solo las activas se pueden asignar a lotes nuevos.
type Category struct {
	ID        string
	Name      string
	Code      string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si la categoría se puede asignar.
func (c *Category) IsActive() bool {
	return c != nil && c.Status == CategoryStatusActive
}
