package production

import (
	"context"
	"fmt"

	"github.com/jhoicas/semillas-api/internal/application/dto"
	"github.com/jhoicas/semillas-api/internal/domain"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/domain/production"
	"github.com/jhoicas/semillas-api/internal/domain/repository"
	"github.com/jhoicas/semillas-api/pkg/logger"
)

// BatchUseCase lotes de producción: asignación contra una orden de ingreso, edición,
// cambios de estado manuales y borrado.
type BatchUseCase struct {
	tx    TxRunner
	repos Repos
	log   *logger.Logger
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(tx TxRunner, repos Repos, log *logger.Logger) *BatchUseCase {
	return &BatchUseCase{tx: tx, repos: repos, log: log.Named("lotes")}
}

// Create asigna un lote contra la orden de ingreso. Bloquea la fila de la orden (SELECT FOR UPDATE),
// suma los kilos ya asignados, verifica el tope e inserta el lote en la misma transacción, de modo
// que dos asignaciones concurrentes nunca superen el peso neto. Sin variedad ni categoría se
// usan las de la orden, la categoría solo si sigue activa.
func (uc *BatchUseCase) Create(ctx context.Context, actor entity.Actor, orderID string, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if err := production.ValidateBatchQuantities(in.Units, in.KgPerUnit, in.Presentation); err != nil {
		return nil, err
	}

	var batch *entity.ProductionBatch
	err := uc.tx.Run(ctx, func(r Repos) error {
		order, err := loadOrder(ctx, r, actor, orderID, true)
		if err != nil {
			return err
		}
		if !production.CanCreateBatchesAgainstOrder(order) {
			return domain.ErrOrderNotEditable
		}
		varietyID := in.VarietyID
		if varietyID == "" {
			varietyID = order.VarietyID
		}
		categoryID := in.CategoryID
		if categoryID == "" {
			if categoryID, err = defaultCategory(ctx, r, order); err != nil {
				return err
			}
		}
		if err := checkAssignable(ctx, r, varietyID, categoryID); err != nil {
			return err
		}

		allocated, err := r.Orders.AllocatedKg(ctx, order.ID)
		if err != nil {
			return err
		}
		totalKg := production.BatchTotalKg(in.Units, in.KgPerUnit)
		if err := production.CheckWeightCap(order.ID, totalKg, production.AvailableWeight(order.NetWeight, allocated)); err != nil {
			return err
		}

		seq, err := r.Sequences.Next(ctx, lotSequencePrefix+order.ID)
		if err != nil {
			return err
		}
		t := now()
		batch = &entity.ProductionBatch{
			ID:            newID(),
			IntakeOrderID: order.ID,
			UnitID:        order.UnitID,
			VarietyID:     varietyID,
			CategoryID:    categoryID,
			LotNumber:     production.LotNumber(order.OrderNumber, seq),
			Presentation:  in.Presentation,
			KgPerUnit:     in.KgPerUnit,
			OriginalUnits: in.Units,
			OriginalKg:    totalKg,
			CurrentUnits:  in.Units,
			CurrentKg:     totalKg,
			Status:        entity.BatchStatusDisponible,
			CreatedAt:     t,
			CreatedBy:     actor.UserID,
			UpdatedAt:     t,
		}
		if err := r.Batches.Create(ctx, batch); err != nil {
			return err
		}
		if order.Status == entity.IntakeStatusPendiente {
			order.Status = entity.IntakeStatusEnProceso
			order.UpdatedAt = t
			return r.Orders.Update(ctx, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("batch_id", batch.ID).
		Str("order_id", batch.IntakeOrderID).
		Str("lot_number", batch.LotNumber).
		Int("units", batch.OriginalUnits).
		Str("kg", dto.Kg(batch.OriginalKg)).
		Msg("lote creado")
	return toBatchResponse(batch), nil
}

// GetByID obtiene un lote.
func (uc *BatchUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.BatchResponse, error) {
	b, err := loadBatch(ctx, uc.repos, actor, id, false)
	if err != nil {
		return nil, err
	}
	return toBatchResponse(b), nil
}

// ListAvailable lotes disponibles o parcialmente vendidos. Fuera del alcance admin se
// restringe a la sede del usuario.
func (uc *BatchUseCase) ListAvailable(ctx context.Context, actor entity.Actor, q dto.BatchListQuery) ([]*dto.BatchResponse, error) {
	f := repository.BatchFilter{
		UnitID:        q.UnitID,
		VarietyID:     q.VarietyID,
		CategoryID:    q.CategoryID,
		IntakeOrderID: q.OrderID,
		Statuses:      []string{entity.BatchStatusDisponible, entity.BatchStatusParcialmenteVendido},
	}
	if !actor.IsAdmin() {
		if q.UnitID != "" && q.UnitID != actor.UnitID {
			return nil, domain.ErrForbidden
		}
		f.UnitID = actor.UnitID
	}
	list, err := uc.repos.Batches.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BatchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBatchResponse(b))
	}
	return out, nil
}

// Update edita un lote disponible. Cambiar unidades o kg por unidad solo se admite con el libro
// vacío y vuelve a aplicar el tope de peso devolviendo al disponible los kilos del propio lote.
func (uc *BatchUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	var batch *entity.ProductionBatch
	err := uc.tx.Run(ctx, func(r Repos) error {
		current, err := loadBatch(ctx, r, actor, id, false)
		if err != nil {
			return err
		}
		// orden antes que lote, igual que la asignación
		order, err := r.Orders.GetForUpdate(ctx, current.IntakeOrderID)
		if err != nil {
			return err
		}
		b, err := r.Batches.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !production.CanEdit(b) {
			return batchClosed(b)
		}

		varietyID, categoryID := b.VarietyID, b.CategoryID
		if in.VarietyID != nil {
			varietyID = *in.VarietyID
		}
		if in.CategoryID != nil {
			categoryID = *in.CategoryID
		}
		if varietyID != b.VarietyID || categoryID != b.CategoryID {
			if err := checkAssignable(ctx, r, varietyID, categoryID); err != nil {
				return err
			}
		}

		units, kgPerUnit, presentation := b.OriginalUnits, b.KgPerUnit, b.Presentation
		if in.Units != nil {
			units = *in.Units
		}
		if in.KgPerUnit != nil {
			kgPerUnit = *in.KgPerUnit
		}
		if in.Presentation != nil {
			presentation = *in.Presentation
		}
		if err := production.ValidateBatchQuantities(units, kgPerUnit, presentation); err != nil {
			return err
		}

		if units != b.OriginalUnits || !kgPerUnit.Equal(b.KgPerUnit) {
			if order.IsTerminal() {
				return domain.ErrOrderNotEditable
			}
			n, err := r.Movements.CountByBatch(ctx, b.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return domain.ErrBatchHasMovements
			}
			allocated, err := r.Orders.AllocatedKg(ctx, order.ID)
			if err != nil {
				return err
			}
			available := production.AvailableWeight(order.NetWeight, allocated).Add(b.OriginalKg)
			newKg := production.BatchTotalKg(units, kgPerUnit)
			if err := production.CheckWeightCap(order.ID, newKg, available); err != nil {
				return err
			}
			b.OriginalUnits, b.CurrentUnits = units, units
			b.OriginalKg, b.CurrentKg = newKg, newKg
			b.KgPerUnit = kgPerUnit
		}

		b.VarietyID = varietyID
		b.CategoryID = categoryID
		b.Presentation = presentation
		b.UpdatedAt = now()
		if err := r.Batches.Update(ctx, b); err != nil {
			return err
		}
		batch = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("batch_id", batch.ID).
		Str("lot_number", batch.LotNumber).
		Int("units", batch.OriginalUnits).
		Str("kg", dto.Kg(batch.OriginalKg)).
		Msg("lote editado")
	return toBatchResponse(batch), nil
}

// ChangeStatus cambio de estado manual (reservar, liberar, descartar).
func (uc *BatchUseCase) ChangeStatus(ctx context.Context, actor entity.Actor, id, status string) (*dto.BatchResponse, error) {
	if status == entity.BatchStatusDescartado && !actor.CanDiscard() {
		return nil, domain.ErrForbidden
	}
	var (
		batch *entity.ProductionBatch
		from  string
	)
	err := uc.tx.Run(ctx, func(r Repos) error {
		b, err := loadBatch(ctx, r, actor, id, true)
		if err != nil {
			return err
		}
		if err := production.ValidateManualTransition(b.Status, status); err != nil {
			return err
		}
		from = b.Status
		b.Status = status
		b.UpdatedAt = now()
		if err := r.Batches.Update(ctx, b); err != nil {
			return err
		}
		batch = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("batch_id", batch.ID).
		Str("lot_number", batch.LotNumber).
		Str("from", from).
		Str("to", batch.Status).
		Msg("estado de lote")
	return toBatchResponse(batch), nil
}

// Delete elimina un lote disponible sin movimientos; sus kilos vuelven al disponible de la orden.
// En cualquier otro caso el lote está cerrado para el borrado.
func (uc *BatchUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	var batch *entity.ProductionBatch
	err := uc.tx.Run(ctx, func(r Repos) error {
		b, err := loadBatch(ctx, r, actor, id, true)
		if err != nil {
			return err
		}
		n, err := r.Movements.CountByBatch(ctx, b.ID)
		if err != nil {
			return err
		}
		if !production.CanDelete(b, n) {
			if b.Status != entity.BatchStatusDisponible {
				return batchClosed(b)
			}
			return fmt.Errorf("%w: lote %s con %d movimientos", domain.ErrBatchClosed, b.LotNumber, n)
		}
		batch = b
		return r.Batches.Delete(ctx, b.ID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().
		Str("batch_id", batch.ID).
		Str("order_id", batch.IntakeOrderID).
		Str("lot_number", batch.LotNumber).
		Msg("lote eliminado")
	return nil
}
