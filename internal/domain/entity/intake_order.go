package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de ingreso.
const (
	IntakeStatusPendiente  = "pendiente"
	IntakeStatusEnProceso  = "en_proceso"
	IntakeStatusCompletado = "completado"
	IntakeStatusCancelado  = "cancelado"
)

// IntakeOrder orden de ingreso: una entrega de semilla pesada y clasificada.
// NetWeight es el tope de kilos que se puede repartir en lotes de producción.
type IntakeOrder struct {
	ID          string
	OrderNumber string
	UnitID      string // sede que recibió la entrega
	VarietyID   string
	CategoryID  string // categoría de ingreso
	NetWeight   decimal.Decimal
	Status      string
	CreatedAt   time.Time
	CreatedBy   string
	UpdatedAt   time.Time
}

// IsTerminal indica si la orden ya no admite lotes ni cambios.
func (o *IntakeOrder) IsTerminal() bool {
	return o.Status == IntakeStatusCompletado || o.Status == IntakeStatusCancelado
}
