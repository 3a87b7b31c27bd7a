package production_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/semillas-api/internal/domain"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/domain/production"
)

func TestValidateManualTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{"disponible a reservado", entity.BatchStatusDisponible, entity.BatchStatusReservado, nil},
		{"reservado a disponible", entity.BatchStatusReservado, entity.BatchStatusDisponible, nil},
		{"disponible a descartado", entity.BatchStatusDisponible, entity.BatchStatusDescartado, nil},
		{"parcial a descartado", entity.BatchStatusParcialmenteVendido, entity.BatchStatusDescartado, nil},
		{"reservado a descartado", entity.BatchStatusReservado, entity.BatchStatusDescartado, nil},
		{"vendido es terminal", entity.BatchStatusVendido, entity.BatchStatusDisponible, domain.ErrBatchClosed},
		{"descartado es terminal", entity.BatchStatusDescartado, entity.BatchStatusDisponible, domain.ErrBatchClosed},
		{"vendido solo por movimientos", entity.BatchStatusDisponible, entity.BatchStatusVendido, domain.ErrInvalidTransition},
		{"parcial solo por movimientos", entity.BatchStatusDisponible, entity.BatchStatusParcialmenteVendido, domain.ErrInvalidTransition},
		{"parcial no se reserva", entity.BatchStatusParcialmenteVendido, entity.BatchStatusReservado, domain.ErrInvalidTransition},
		{"estado desconocido", entity.BatchStatusDisponible, "perdido", domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := production.ValidateManualTransition(tc.from, tc.to)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCanTransition_TerminalesSinSalida(t *testing.T) {
	for _, to := range []string{
		entity.BatchStatusDisponible, entity.BatchStatusParcialmenteVendido,
		entity.BatchStatusReservado, entity.BatchStatusVendido, entity.BatchStatusDescartado,
	} {
		assert.False(t, production.CanTransition(entity.BatchStatusVendido, to))
		assert.False(t, production.CanTransition(entity.BatchStatusDescartado, to))
	}
	assert.True(t, production.CanTransition(entity.BatchStatusParcialmenteVendido, entity.BatchStatusDisponible))
}

func TestCanEditCanDeleteCanPost(t *testing.T) {
	b := &entity.ProductionBatch{Status: entity.BatchStatusDisponible}
	assert.True(t, production.CanEdit(b))
	assert.True(t, production.CanDelete(b, 0))
	assert.False(t, production.CanDelete(b, 1), "con movimientos no se borra")
	assert.True(t, production.CanPost(b, false))

	b.Status = entity.BatchStatusReservado
	assert.False(t, production.CanEdit(b))
	assert.False(t, production.CanDelete(b, 0))
	assert.True(t, production.CanPost(b, false))

	b.Status = entity.BatchStatusVendido
	assert.False(t, production.CanPost(b, false))
	assert.True(t, production.CanPost(b, true), "la compensación de una venta anulada reabre el lote")

	b.Status = entity.BatchStatusDescartado
	assert.False(t, production.CanPost(b, false))
	assert.False(t, production.CanPost(b, true))
}

func TestCanCreateBatchesAgainstOrder(t *testing.T) {
	for status, want := range map[string]bool{
		entity.IntakeStatusPendiente:  true,
		entity.IntakeStatusEnProceso:  true,
		entity.IntakeStatusCompletado: false,
		entity.IntakeStatusCancelado:  false,
	} {
		assert.Equal(t, want, production.CanCreateBatchesAgainstOrder(&entity.IntakeOrder{Status: status}), status)
	}
}

func TestStatusAfterPosting(t *testing.T) {
	origKg := decimal.RequireFromString("25.00")
	cases := []struct {
		name   string
		status string
		units  int
		kg     string
		want   string
	}{
		{"venta parcial", entity.BatchStatusDisponible, 6, "15.00", entity.BatchStatusParcialmenteVendido},
		{"venta total", entity.BatchStatusParcialmenteVendido, 0, "0", entity.BatchStatusVendido},
		{"reposición completa", entity.BatchStatusParcialmenteVendido, 10, "25.00", entity.BatchStatusDisponible},
		{"compensación sobre vendido", entity.BatchStatusVendido, 10, "25.00", entity.BatchStatusDisponible},
		{"compensación parcial sobre vendido", entity.BatchStatusVendido, 4, "10.00", entity.BatchStatusParcialmenteVendido},
		{"reservado con saldo completo", entity.BatchStatusReservado, 10, "25.00", entity.BatchStatusReservado},
		{"reservado vendido en parte", entity.BatchStatusReservado, 9, "22.50", entity.BatchStatusParcialmenteVendido},
		{"merma solo de kilos", entity.BatchStatusDisponible, 10, "24.50", entity.BatchStatusParcialmenteVendido},
		{"descartado no cambia", entity.BatchStatusDescartado, 0, "0", entity.BatchStatusDescartado},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := production.StatusAfterPosting(tc.status, tc.units, 10, decimal.RequireFromString(tc.kg), origKg)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidateIntakeTransition(t *testing.T) {
	assert.NoError(t, production.ValidateIntakeTransition(entity.IntakeStatusPendiente, entity.IntakeStatusEnProceso))
	assert.NoError(t, production.ValidateIntakeTransition(entity.IntakeStatusEnProceso, entity.IntakeStatusCompletado))
	assert.NoError(t, production.ValidateIntakeTransition(entity.IntakeStatusPendiente, entity.IntakeStatusCancelado))
	assert.ErrorIs(t, production.ValidateIntakeTransition(entity.IntakeStatusEnProceso, entity.IntakeStatusPendiente), domain.ErrInvalidTransition)
	assert.ErrorIs(t, production.ValidateIntakeTransition(entity.IntakeStatusCompletado, entity.IntakeStatusCancelado), domain.ErrOrderNotEditable)
	assert.ErrorIs(t, production.ValidateIntakeTransition(entity.IntakeStatusPendiente, "archivado"), domain.ErrInvalidInput)
}
