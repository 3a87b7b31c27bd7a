package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientWeight = errors.New("peso disponible insuficiente")
	ErrOrderNotEditable   = errors.New("la orden de ingreso no admite cambios")
	ErrBatchClosed        = errors.New("el lote no admite cambios en su estado actual")
	ErrBatchHasMovements  = errors.New("el lote ya tiene movimientos registrados")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrLedgerUnderflow    = errors.New("el movimiento deja el saldo del lote en negativo")
	ErrLedgerOverflow     = errors.New("el movimiento supera la cantidad original del lote")
)

// ValidationError error de validación de un campo de entrada. Se compara con ErrInvalidInput.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// InsufficientWeightError reporta el déficit exacto de una asignación que excede el peso disponible.
type InsufficientWeightError struct {
	OrderID   string
	Requested decimal.Decimal
	Available decimal.Decimal
}

// Deficit kilos que faltan para poder asignar lo solicitado.
func (e *InsufficientWeightError) Deficit() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

func (e *InsufficientWeightError) Error() string {
	return fmt.Sprintf("%s: orden %s, solicitado %s kg, disponible %s kg, déficit %s kg",
		ErrInsufficientWeight.Error(), e.OrderID,
		e.Requested.StringFixed(2), e.Available.StringFixed(2), e.Deficit().StringFixed(2))
}

func (e *InsufficientWeightError) Unwrap() error { return ErrInsufficientWeight }

// Dimensiones del saldo de un lote.
const (
	DimensionUnits = "unidades"
	DimensionKg    = "kg"
)

// LedgerBoundsError reporta un movimiento que deja el saldo fuera de [0, original].
// Se compara con ErrLedgerUnderflow o ErrLedgerOverflow según Underflow.
type LedgerBoundsError struct {
	BatchID   string
	Dimension string
	Current   decimal.Decimal
	Result    decimal.Decimal
	Limit     decimal.Decimal
	Underflow bool
}

func (e *LedgerBoundsError) Error() string {
	return fmt.Sprintf("%s: lote %s, %s actual %s, resultante %s, límite %s",
		e.sentinel().Error(), e.BatchID, e.Dimension,
		e.Current.String(), e.Result.String(), e.Limit.String())
}

func (e *LedgerBoundsError) Unwrap() error { return e.sentinel() }

func (e *LedgerBoundsError) sentinel() error {
	if e.Underflow {
		return ErrLedgerUnderflow
	}
	return ErrLedgerOverflow
}

// TransitionError transición de estado rechazada por la máquina de estados.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s de %q a %q", ErrInvalidTransition.Error(), e.Entity, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
