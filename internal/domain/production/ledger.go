package production

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/semillas-api/internal/domain"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
)

// KgScale decimales con que se guardan los kilos.
const KgScale = 2

// IsValidMovementType indica si t es un tipo de movimiento conocido.
func IsValidMovementType(t string) bool {
	switch t {
	case entity.MovementTypeEntrada, entity.MovementTypeSalida, entity.MovementTypeAjuste, entity.MovementTypeMerma:
		return true
	}
	return false
}

// Deltas variación con signo que un movimiento aplica al saldo de un lote.
type Deltas struct {
	Units int
	Kg    decimal.Decimal
}

// SignedDeltas convierte la cantidad pedida en variaciones con signo.
// entrada/salida/merma reciben magnitudes no negativas y el signo lo pone el tipo;
// ajuste debe venir firmado por el caller. Para entrada y salida los kilos se derivan de
// unidades × kg por unidad cuando no se informan, y si se informan deben coincidir.
// Los kilos se registran tal como quedan validados; si el saldo en kilos no alcanza o se
// pasa del original, ApplyDeltas lo rechaza.
func SignedDeltas(b *entity.ProductionBatch, movementType string, units int, kg decimal.Decimal) (Deltas, error) {
	if !IsValidMovementType(movementType) {
		return Deltas{}, domain.Invalid("type", "debe ser entrada, salida, ajuste o merma")
	}
	if !kg.Equal(kg.Round(KgScale)) {
		return Deltas{}, domain.Invalid("kg", fmt.Sprintf("admite como máximo %d decimales", KgScale))
	}

	if movementType == entity.MovementTypeAjuste {
		if units == 0 && kg.IsZero() {
			return Deltas{}, domain.Invalid("units", "el ajuste no puede ser cero")
		}
		if (units > 0 && kg.IsNegative()) || (units < 0 && kg.IsPositive()) {
			return Deltas{}, domain.Invalid("kg", "unidades y kilos del ajuste deben tener el mismo signo")
		}
		return Deltas{Units: units, Kg: kg}, nil
	}

	if units < 0 || kg.IsNegative() {
		return Deltas{}, domain.Invalid("units", "la cantidad debe ser positiva; el signo lo define el tipo")
	}
	if units == 0 && kg.IsZero() {
		return Deltas{}, domain.Invalid("units", "la cantidad debe ser mayor que cero")
	}

	switch movementType {
	case entity.MovementTypeEntrada, entity.MovementTypeSalida:
		if units == 0 {
			return Deltas{}, domain.Invalid("units", "entrada y salida requieren unidades")
		}
		expected := BatchTotalKg(units, b.KgPerUnit)
		if kg.IsZero() {
			kg = expected
		} else if !kg.Equal(expected) {
			return Deltas{}, domain.Invalid("kg", fmt.Sprintf("no coincide con unidades × kg por unidad (%s)", expected.StringFixed(KgScale)))
		}
	case entity.MovementTypeMerma:
		if kg.IsZero() {
			kg = BatchTotalKg(units, b.KgPerUnit)
		}
	}

	if movementType == entity.MovementTypeEntrada {
		return Deltas{Units: units, Kg: kg}, nil
	}
	return Deltas{Units: -units, Kg: kg.Neg()}, nil
}

// ApplyDeltas calcula el saldo resultante verificando que quede dentro de [0, original]
// en ambas dimensiones.
func ApplyDeltas(b *entity.ProductionBatch, d Deltas) (units int, kg decimal.Decimal, err error) {
	units = b.CurrentUnits + d.Units
	kg = b.CurrentKg.Add(d.Kg)

	if units < 0 {
		return 0, decimal.Zero, &domain.LedgerBoundsError{
			BatchID: b.ID, Dimension: domain.DimensionUnits, Underflow: true,
			Current: decimal.NewFromInt(int64(b.CurrentUnits)), Result: decimal.NewFromInt(int64(units)), Limit: decimal.Zero,
		}
	}
	if kg.IsNegative() {
		return 0, decimal.Zero, &domain.LedgerBoundsError{
			BatchID: b.ID, Dimension: domain.DimensionKg, Underflow: true,
			Current: b.CurrentKg, Result: kg, Limit: decimal.Zero,
		}
	}
	if units > b.OriginalUnits {
		return 0, decimal.Zero, &domain.LedgerBoundsError{
			BatchID: b.ID, Dimension: domain.DimensionUnits,
			Current: decimal.NewFromInt(int64(b.CurrentUnits)), Result: decimal.NewFromInt(int64(units)),
			Limit: decimal.NewFromInt(int64(b.OriginalUnits)),
		}
	}
	if kg.GreaterThan(b.OriginalKg) {
		return 0, decimal.Zero, &domain.LedgerBoundsError{
			BatchID: b.ID, Dimension: domain.DimensionKg,
			Current: b.CurrentKg, Result: kg, Limit: b.OriginalKg,
		}
	}
	return units, kg, nil
}

// ReplayLedger recorre los movimientos en orden desde la cantidad original y verifica que
// cada saldo registrado coincida con el plegado de las variaciones. Devuelve el saldo final.
func ReplayLedger(originalUnits int, originalKg decimal.Decimal, movements []*entity.BatchMovement) (int, decimal.Decimal, error) {
	units, kg := originalUnits, originalKg
	for i, m := range movements {
		units += m.UnitsDelta
		kg = kg.Add(m.KgDelta)
		if units != m.BalanceUnits || !kg.Equal(m.BalanceKg) {
			return units, kg, fmt.Errorf("%w: movimiento %d (%s) registra saldo %d/%s, esperado %d/%s",
				domain.ErrConflict, i+1, m.ID, m.BalanceUnits, m.BalanceKg.String(), units, kg.String())
		}
	}
	return units, kg, nil
}

// MovementSummary totales del libro de un lote.
type MovementSummary struct {
	Count         int
	EntradasUnits int
	EntradasKg    decimal.Decimal
	SalidasUnits  int
	SalidasKg     decimal.Decimal
	BalanceUnits  int
	BalanceKg     decimal.Decimal
	Consistent    bool
}

// Summarize totaliza los movimientos de un lote. Los ajustes positivos cuentan como entradas
// y los negativos como salidas, igual que merma.
func Summarize(b *entity.ProductionBatch, movements []*entity.BatchMovement) MovementSummary {
	s := MovementSummary{
		Count:        len(movements),
		EntradasKg:   decimal.Zero,
		SalidasKg:    decimal.Zero,
		BalanceUnits: b.CurrentUnits,
		BalanceKg:    b.CurrentKg,
	}
	for _, m := range movements {
		if m.UnitsDelta > 0 || m.KgDelta.IsPositive() {
			s.EntradasUnits += m.UnitsDelta
			s.EntradasKg = s.EntradasKg.Add(m.KgDelta)
			continue
		}
		s.SalidasUnits -= m.UnitsDelta
		s.SalidasKg = s.SalidasKg.Sub(m.KgDelta)
	}
	units, kg, err := ReplayLedger(b.OriginalUnits, b.OriginalKg, movements)
	s.Consistent = err == nil && units == b.CurrentUnits && kg.Equal(b.CurrentKg)
	return s
}
