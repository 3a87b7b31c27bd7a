// Package production reúne las reglas puras del ciclo de vida de los lotes de producción:
// máquina de estados, aritmética del libro de movimientos, tope de peso por orden de ingreso
// y etiquetas derivadas. No depende de infraestructura.
package production

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/semillas-api/internal/domain"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
)

// batchTransitions grafo completo de transiciones legales de un lote.
var batchTransitions = map[string][]string{
	entity.BatchStatusDisponible: {
		entity.BatchStatusParcialmenteVendido,
		entity.BatchStatusVendido,
		entity.BatchStatusReservado,
		entity.BatchStatusDescartado,
	},
	entity.BatchStatusParcialmenteVendido: {
		entity.BatchStatusVendido,
		entity.BatchStatusDisponible,
		entity.BatchStatusDescartado,
	},
	entity.BatchStatusReservado: {
		entity.BatchStatusDisponible,
		entity.BatchStatusParcialmenteVendido,
		entity.BatchStatusVendido,
		entity.BatchStatusDescartado,
	},
	entity.BatchStatusVendido:    {},
	entity.BatchStatusDescartado: {},
}

// manualTransitions subconjunto que un usuario puede pedir explícitamente (changeStatus).
// parcialmente_vendido y vendido solo se alcanzan por movimientos del libro.
var manualTransitions = map[string][]string{
	entity.BatchStatusDisponible:          {entity.BatchStatusReservado, entity.BatchStatusDescartado},
	entity.BatchStatusReservado:           {entity.BatchStatusDisponible, entity.BatchStatusDescartado},
	entity.BatchStatusParcialmenteVendido: {entity.BatchStatusDescartado},
}

// IsValidBatchStatus indica si s es un estado conocido.
func IsValidBatchStatus(s string) bool {
	_, ok := batchTransitions[s]
	return ok
}

// IsTerminal vendido y descartado no admiten más cambios.
func IsTerminal(status string) bool {
	return status == entity.BatchStatusVendido || status == entity.BatchStatusDescartado
}

// CanTransition indica si el grafo permite pasar de from a to.
func CanTransition(from, to string) bool {
	for _, s := range batchTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidateManualTransition valida un cambio de estado pedido por un usuario.
func ValidateManualTransition(from, to string) error {
	if !IsValidBatchStatus(to) {
		return domain.Invalid("status", "estado desconocido")
	}
	if IsTerminal(from) {
		return domain.ErrBatchClosed
	}
	for _, s := range manualTransitions[from] {
		if s == to {
			return nil
		}
	}
	return &domain.TransitionError{Entity: "lote", From: from, To: to}
}

// CanEdit los datos de un lote solo se editan mientras está disponible.
func CanEdit(b *entity.ProductionBatch) bool {
	return b.Status == entity.BatchStatusDisponible
}

// CanDelete un lote se elimina solo si está disponible y su libro está vacío.
func CanDelete(b *entity.ProductionBatch, movementCount int) bool {
	return b.Status == entity.BatchStatusDisponible && movementCount == 0
}

// CanPost indica si el lote admite un nuevo movimiento. Un lote vendido solo admite
// la compensación de una orden de salida anulada.
func CanPost(b *entity.ProductionBatch, reversal bool) bool {
	if b.Status == entity.BatchStatusDescartado {
		return false
	}
	if b.Status == entity.BatchStatusVendido {
		return reversal
	}
	return true
}

// CanCreateBatchesAgainstOrder una orden completada o cancelada no admite lotes nuevos.
func CanCreateBatchesAgainstOrder(o *entity.IntakeOrder) bool {
	return !o.IsTerminal()
}

// StatusAfterPosting estado resultante de un lote tras aplicar un movimiento.
//   - saldo en cero → vendido
//   - saldo parcial → parcialmente_vendido
//   - saldo completo → disponible si venía de parcialmente_vendido o vendido (compensación)
//
// reservado se conserva mientras el saldo esté completo.
func StatusAfterPosting(status string, currentUnits, originalUnits int, currentKg, originalKg decimal.Decimal) string {
	if status == entity.BatchStatusDescartado {
		return status
	}
	switch {
	case currentUnits == 0 && currentKg.IsZero():
		return entity.BatchStatusVendido
	case currentUnits < originalUnits || currentKg.LessThan(originalKg):
		return entity.BatchStatusParcialmenteVendido
	default:
		if status == entity.BatchStatusParcialmenteVendido || status == entity.BatchStatusVendido {
			return entity.BatchStatusDisponible
		}
		return status
	}
}

// intakeTransitions transiciones legales de una orden de ingreso.
var intakeTransitions = map[string][]string{
	entity.IntakeStatusPendiente:  {entity.IntakeStatusEnProceso, entity.IntakeStatusCompletado, entity.IntakeStatusCancelado},
	entity.IntakeStatusEnProceso:  {entity.IntakeStatusCompletado, entity.IntakeStatusCancelado},
	entity.IntakeStatusCompletado: {},
	entity.IntakeStatusCancelado:  {},
}

// ValidateIntakeTransition valida el cambio de estado de una orden de ingreso.
func ValidateIntakeTransition(from, to string) error {
	if _, ok := intakeTransitions[to]; !ok {
		return domain.Invalid("status", "estado desconocido")
	}
	if from == entity.IntakeStatusCompletado || from == entity.IntakeStatusCancelado {
		return domain.ErrOrderNotEditable
	}
	for _, s := range intakeTransitions[from] {
		if s == to {
			return nil
		}
	}
	return &domain.TransitionError{Entity: "orden de ingreso", From: from, To: to}
}
