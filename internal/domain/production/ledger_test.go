package production_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/semillas-api/internal/domain"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/domain/production"
)

func kg(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newBatch lote de 10 bolsas de 2,50 kg.
func newBatch() *entity.ProductionBatch {
	return &entity.ProductionBatch{
		ID:            "lote-1",
		Presentation:  entity.PresentationBolsas,
		KgPerUnit:     kg("2.50"),
		OriginalUnits: 10,
		OriginalKg:    kg("25.00"),
		CurrentUnits:  10,
		CurrentKg:     kg("25.00"),
		Status:        entity.BatchStatusDisponible,
	}
}

// post aplica un movimiento sobre b y lo devuelve como asiento del libro.
func post(t *testing.T, b *entity.ProductionBatch, typ string, units int, k decimal.Decimal) *entity.BatchMovement {
	t.Helper()
	d, err := production.SignedDeltas(b, typ, units, k)
	require.NoError(t, err)
	u, bk, err := production.ApplyDeltas(b, d)
	require.NoError(t, err)
	b.CurrentUnits, b.CurrentKg = u, bk
	b.Status = production.StatusAfterPosting(b.Status, u, b.OriginalUnits, bk, b.OriginalKg)
	return &entity.BatchMovement{Type: typ, UnitsDelta: d.Units, KgDelta: d.Kg, BalanceUnits: u, BalanceKg: bk}
}

func TestSignedDeltas_SalidaDerivaKilos(t *testing.T) {
	d, err := production.SignedDeltas(newBatch(), entity.MovementTypeSalida, 4, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, -4, d.Units)
	assert.True(t, d.Kg.Equal(kg("-10.00")), "got %s", d.Kg)
}

func TestSignedDeltas_KilosInformadosDebenCoincidir(t *testing.T) {
	_, err := production.SignedDeltas(newBatch(), entity.MovementTypeSalida, 4, kg("9.99"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	d, err := production.SignedDeltas(newBatch(), entity.MovementTypeEntrada, 0, kg("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada sin unidades: %+v", d)
}

func TestSignedDeltas_Validaciones(t *testing.T) {
	b := newBatch()
	_, err := production.SignedDeltas(b, "traslado", 1, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = production.SignedDeltas(b, entity.MovementTypeSalida, -1, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el signo lo pone el tipo")

	_, err = production.SignedDeltas(b, entity.MovementTypeMerma, 0, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = production.SignedDeltas(b, entity.MovementTypeMerma, 0, kg("0.125"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "más de dos decimales")

	_, err = production.SignedDeltas(b, entity.MovementTypeAjuste, 0, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = production.SignedDeltas(b, entity.MovementTypeAjuste, -1, kg("2.50"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "signos mezclados")
}

func TestSignedDeltas_AjusteConservaSigno(t *testing.T) {
	d, err := production.SignedDeltas(newBatch(), entity.MovementTypeAjuste, -2, kg("-5.00"))
	require.NoError(t, err)
	assert.Equal(t, -2, d.Units)
	assert.True(t, d.Kg.Equal(kg("-5")))
}

func TestSignedDeltas_SalidaTotalNoAbsorbeKilos(t *testing.T) {
	b := newBatch()
	post(t, b, entity.MovementTypeMerma, 0, kg("0.50"))
	require.True(t, b.CurrentKg.Equal(kg("24.50")))

	d, err := production.SignedDeltas(b, entity.MovementTypeSalida, 10, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, d.Kg.Equal(kg("-25.00")), "los kilos son unidades × kg/unidad: %s", d.Kg)

	_, _, err = production.ApplyDeltas(b, d)
	assert.ErrorIs(t, err, domain.ErrLedgerUnderflow)
	var bounds *domain.LedgerBoundsError
	require.True(t, errors.As(err, &bounds))
	assert.Equal(t, domain.DimensionKg, bounds.Dimension)

	// la diferencia se corrige con un ajuste explícito
	post(t, b, entity.MovementTypeAjuste, 0, kg("0.50"))
	m := post(t, b, entity.MovementTypeSalida, 10, decimal.Zero)
	assert.True(t, m.KgDelta.Equal(kg("-25.00")), "got %s", m.KgDelta)
	assert.True(t, b.CurrentKg.IsZero())
	assert.Equal(t, entity.BatchStatusVendido, b.Status)
}

// venta, merma solo en kilos y devolución: cada asiento registra exactamente
// los kilos informados y el resumen cuadra con el saldo.
func TestLedger_KilosInformadosSeRegistranTalCual(t *testing.T) {
	b := &entity.ProductionBatch{
		ID:            "lote-2",
		Presentation:  entity.PresentationBolsas,
		KgPerUnit:     kg("1.5"),
		OriginalUnits: 100,
		OriginalKg:    kg("150.00"),
		CurrentUnits:  100,
		CurrentKg:     kg("150.00"),
		Status:        entity.BatchStatusDisponible,
	}
	movs := []*entity.BatchMovement{
		post(t, b, entity.MovementTypeSalida, 40, kg("60")),
		post(t, b, entity.MovementTypeMerma, 0, kg("10")),
		post(t, b, entity.MovementTypeEntrada, 40, kg("60")),
	}
	for i, want := range []string{"-60", "-10", "60"} {
		assert.True(t, movs[i].KgDelta.Equal(kg(want)), "asiento %d: got %s", i, movs[i].KgDelta)
	}
	assert.Equal(t, 100, b.CurrentUnits)
	assert.True(t, b.CurrentKg.Equal(kg("140.00")), "got %s", b.CurrentKg)
	assert.Equal(t, entity.BatchStatusParcialmenteVendido, b.Status)

	s := production.Summarize(b, movs)
	assert.True(t, s.Consistent)
	assert.True(t, s.SalidasKg.Equal(kg("70")))
	assert.True(t, s.EntradasKg.Equal(kg("60")))

	u, k, err := production.ReplayLedger(b.OriginalUnits, b.OriginalKg, movs)
	require.NoError(t, err)
	assert.Equal(t, 100, u)
	assert.True(t, k.Equal(kg("140")))
}

func TestApplyDeltas_Limites(t *testing.T) {
	b := newBatch()

	_, _, err := production.ApplyDeltas(b, production.Deltas{Units: 1, Kg: kg("2.50")})
	assert.ErrorIs(t, err, domain.ErrLedgerOverflow)

	_, _, err = production.ApplyDeltas(b, production.Deltas{Units: -11, Kg: kg("-27.50")})
	assert.ErrorIs(t, err, domain.ErrLedgerUnderflow)
	var bounds *domain.LedgerBoundsError
	require.True(t, errors.As(err, &bounds))
	assert.Equal(t, domain.DimensionUnits, bounds.Dimension)
	assert.True(t, bounds.Result.Equal(decimal.NewFromInt(-1)))

	_, _, err = production.ApplyDeltas(b, production.Deltas{Units: 0, Kg: kg("-25.01")})
	assert.ErrorIs(t, err, domain.ErrLedgerUnderflow)

	u, k, err := production.ApplyDeltas(b, production.Deltas{Units: -10, Kg: kg("-25.00")})
	require.NoError(t, err)
	assert.Equal(t, 0, u)
	assert.True(t, k.IsZero())
}

// 10 bolsas, venta de 4 → parcialmente_vendido, venta de 6 → vendido,
// cualquier movimiento posterior se rechaza.
func TestLedger_VentaParcialYTotal(t *testing.T) {
	b := newBatch()
	m1 := post(t, b, entity.MovementTypeSalida, 4, decimal.Zero)
	assert.Equal(t, 6, m1.BalanceUnits)
	assert.True(t, m1.BalanceKg.Equal(kg("15.00")))
	assert.Equal(t, entity.BatchStatusParcialmenteVendido, b.Status)

	m2 := post(t, b, entity.MovementTypeSalida, 6, decimal.Zero)
	assert.Equal(t, 0, m2.BalanceUnits)
	assert.True(t, m2.BalanceKg.IsZero())
	assert.Equal(t, entity.BatchStatusVendido, b.Status)
	assert.False(t, production.CanPost(b, false))
}

func TestReplayLedger_ReproduceSaldos(t *testing.T) {
	b := newBatch()
	movs := []*entity.BatchMovement{
		post(t, b, entity.MovementTypeSalida, 3, decimal.Zero),
		post(t, b, entity.MovementTypeMerma, 1, decimal.Zero),
		post(t, b, entity.MovementTypeAjuste, 1, kg("2.50")),
		post(t, b, entity.MovementTypeEntrada, 3, decimal.Zero),
		post(t, b, entity.MovementTypeSalida, 2, decimal.Zero),
	}
	u, k, err := production.ReplayLedger(b.OriginalUnits, b.OriginalKg, movs)
	require.NoError(t, err)
	assert.Equal(t, b.CurrentUnits, u)
	assert.True(t, k.Equal(b.CurrentKg))

	movs[2].BalanceUnits++
	_, _, err = production.ReplayLedger(b.OriginalUnits, b.OriginalKg, movs)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSummarize(t *testing.T) {
	b := newBatch()
	movs := []*entity.BatchMovement{
		post(t, b, entity.MovementTypeSalida, 4, decimal.Zero),
		post(t, b, entity.MovementTypeMerma, 0, kg("0.30")),
		post(t, b, entity.MovementTypeAjuste, -1, kg("-2.50")),
		post(t, b, entity.MovementTypeEntrada, 2, decimal.Zero),
	}
	s := production.Summarize(b, movs)
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 2, s.EntradasUnits)
	assert.True(t, s.EntradasKg.Equal(kg("5.00")))
	assert.Equal(t, 5, s.SalidasUnits)
	assert.True(t, s.SalidasKg.Equal(kg("12.80")), "got %s", s.SalidasKg)
	assert.Equal(t, 7, s.BalanceUnits)
	assert.True(t, s.BalanceKg.Equal(kg("17.20")), "got %s", s.BalanceKg)
	assert.True(t, s.Consistent)

	b.CurrentUnits = 8
	assert.False(t, production.Summarize(b, movs).Consistent)
}
