package production

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/semillas-api/internal/domain"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/domain/production"
)

// Claves del numerador.
const (
	outgoingSequenceKey = "orden_salida"
	lotSequencePrefix   = "lote:"
)

// asReference convierte un ErrNotFound de un dato maestro referenciado en error de validación del campo.
func asReference(err error, field string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Invalid(field, "no existe")
	}
	return err
}

// resolveUnit sede sobre la que opera una creación: la del token, o la indicada si es admin.
func resolveUnit(actor entity.Actor, requested string) (string, error) {
	if requested != "" && requested != actor.UnitID {
		if !actor.IsAdmin() {
			return "", domain.ErrForbidden
		}
		return requested, nil
	}
	if actor.UnitID == "" {
		return "", domain.Invalid("unit_id", "es obligatoria")
	}
	return actor.UnitID, nil
}

// checkAssignable la variedad debe existir y la categoría existir y estar activa.
func checkAssignable(ctx context.Context, r Repos, varietyID, categoryID string) error {
	if varietyID == "" {
		return domain.Invalid("variety_id", "es obligatoria")
	}
	if categoryID == "" {
		return domain.Invalid("category_id", "es obligatoria")
	}
	if _, err := r.Varieties.GetByID(ctx, varietyID); err != nil {
		return asReference(err, "variety_id")
	}
	cat, err := r.Categories.GetByID(ctx, categoryID)
	if err != nil {
		return asReference(err, "category_id")
	}
	if !cat.IsActive() {
		return domain.Invalid("category_id", "la categoría está inactiva")
	}
	return nil
}

// defaultCategory categoría de ingreso de la orden si sigue activa; vacío si no aplica.
func defaultCategory(ctx context.Context, r Repos, order *entity.IntakeOrder) (string, error) {
	if order.CategoryID == "" {
		return "", nil
	}
	cat, err := r.Categories.GetByID(ctx, order.CategoryID)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !cat.IsActive() {
		return "", nil
	}
	return cat.ID, nil
}

func validateWeight(field string, w decimal.Decimal) error {
	if !w.IsPositive() {
		return domain.Invalid(field, "debe ser mayor que cero")
	}
	if !w.Equal(w.Round(production.KgScale)) {
		return domain.Invalid(field, fmt.Sprintf("admite como máximo %d decimales", production.KgScale))
	}
	return nil
}

func loadOrder(ctx context.Context, r Repos, actor entity.Actor, id string, forUpdate bool) (*entity.IntakeOrder, error) {
	var (
		o   *entity.IntakeOrder
		err error
	)
	if forUpdate {
		o, err = r.Orders.GetForUpdate(ctx, id)
	} else {
		o, err = r.Orders.GetByID(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessUnit(o.UnitID) {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

func loadBatch(ctx context.Context, r Repos, actor entity.Actor, id string, forUpdate bool) (*entity.ProductionBatch, error) {
	var (
		b   *entity.ProductionBatch
		err error
	)
	if forUpdate {
		b, err = r.Batches.GetForUpdate(ctx, id)
	} else {
		b, err = r.Batches.GetByID(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessUnit(b.UnitID) {
		return nil, domain.ErrForbidden
	}
	return b, nil
}

// appendMovement aplica d al lote bloqueado, agrega el asiento con el saldo resultante y
// recalcula el estado. Debe llamarse dentro de una transacción con el lote tomado con GetForUpdate.
func appendMovement(
	ctx context.Context,
	r Repos,
	b *entity.ProductionBatch,
	movementType string,
	d production.Deltas,
	outgoingOrderID, note, userID string,
) (*entity.BatchMovement, error) {
	units, kg, err := production.ApplyDeltas(b, d)
	if err != nil {
		return nil, err
	}
	seq, err := r.Movements.LastSequence(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	t := now()
	m := &entity.BatchMovement{
		ID:              newID(),
		BatchID:         b.ID,
		Sequence:        seq + 1,
		Type:            movementType,
		UnitsDelta:      d.Units,
		KgDelta:         d.Kg,
		BalanceUnits:    units,
		BalanceKg:       kg,
		OutgoingOrderID: outgoingOrderID,
		Note:            note,
		CreatedBy:       userID,
		CreatedAt:       t,
	}
	b.CurrentUnits = units
	b.CurrentKg = kg
	b.Status = production.StatusAfterPosting(b.Status, units, b.OriginalUnits, kg, b.OriginalKg)
	b.UpdatedAt = t
	if err := r.Batches.Update(ctx, b); err != nil {
		return nil, err
	}
	if err := r.Movements.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func batchClosed(b *entity.ProductionBatch) error {
	return fmt.Errorf("%w: lote %s (%s)", domain.ErrBatchClosed, b.LotNumber, b.Status)
}
