package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de lotes.
const (
	MovementTypeEntrada = "entrada" // aumenta el saldo
	MovementTypeSalida  = "salida"  // venta
	MovementTypeAjuste  = "ajuste"  // corrección con signo explícito
	MovementTypeMerma   = "merma"   // pérdida física
)

// BatchMovement asiento inmutable del libro de un lote.
// UnitsDelta/KgDelta llevan signo (negativo = salida); BalanceUnits/BalanceKg son el saldo
// del lote inmediatamente después de aplicar el movimiento.
type BatchMovement struct {
	ID              string
	BatchID         string
	Sequence        int
	Type            string
	UnitsDelta      int
	KgDelta         decimal.Decimal
	BalanceUnits    int
	BalanceKg       decimal.Decimal
	OutgoingOrderID string // referencia opcional a la orden de salida
	Note            string
	CreatedBy       string
	CreatedAt       time.Time
}

// IsReversal indica si el movimiento es una compensación de una orden de salida anulada.
func (m *BatchMovement) IsReversal() bool {
	return m.Type == MovementTypeEntrada && m.OutgoingOrderID != ""
}
