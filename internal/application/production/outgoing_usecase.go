package production

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/semillas-api/internal/application/dto"
	"github.com/jhoicas/semillas-api/internal/domain"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/domain/production"
	"github.com/jhoicas/semillas-api/pkg/logger"
)

// OutgoingOrderUseCase órdenes de salida. Cada línea registra una salida en el libro del lote;
// anular o eliminar una orden completada registra las entradas compensatorias. Todo o nada.
type OutgoingOrderUseCase struct {
	tx    TxRunner
	repos Repos
	log   *logger.Logger
}

// NewOutgoingOrderUseCase construye el caso de uso.
func NewOutgoingOrderUseCase(tx TxRunner, repos Repos, log *logger.Logger) *OutgoingOrderUseCase {
	return &OutgoingOrderUseCase{tx: tx, repos: repos, log: log.Named("ordenes_salida")}
}

// Create registra la orden como completada y una salida por línea.
func (uc *OutgoingOrderUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateOutgoingOrderRequest) (*dto.OutgoingOrderResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.Invalid("lines", "debe tener al menos una línea")
	}
	for i, l := range in.Lines {
		if l.BatchID == "" {
			return nil, domain.Invalid(fmt.Sprintf("lines[%d].batch_id", i), "es obligatorio")
		}
		if l.Units < 1 {
			return nil, domain.Invalid(fmt.Sprintf("lines[%d].units", i), "debe ser al menos 1")
		}
	}
	unitID, err := resolveUnit(actor, in.UnitID)
	if err != nil {
		return nil, err
	}

	var order *entity.OutgoingOrder
	err = uc.tx.Run(ctx, func(r Repos) error {
		number := strings.TrimSpace(in.OrderNumber)
		if number == "" {
			seq, err := r.Sequences.Next(ctx, outgoingSequenceKey)
			if err != nil {
				return err
			}
			number = fmt.Sprintf("OS-%06d", seq)
		}
		o := &entity.OutgoingOrder{
			ID:          newID(),
			OrderNumber: number,
			UnitID:      unitID,
			Status:      entity.OutgoingStatusCompletada,
			Note:        in.Note,
			CreatedAt:   now(),
			CreatedBy:   actor.UserID,
		}
		if err := r.Outgoing.Create(ctx, o); err != nil {
			return err
		}

		// los lotes se bloquean siempre en el mismo orden
		idx := make([]int, len(in.Lines))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool { return in.Lines[idx[a]].BatchID < in.Lines[idx[b]].BatchID })

		lines := make([]entity.OutgoingOrderLine, len(in.Lines))
		for _, i := range idx {
			req := in.Lines[i]
			b, err := loadBatch(ctx, r, actor, req.BatchID, true)
			if err != nil {
				return err
			}
			if b.UnitID != o.UnitID {
				return domain.Invalid(fmt.Sprintf("lines[%d].batch_id", i), "el lote pertenece a otra sede")
			}
			if !production.CanPost(b, false) {
				return batchClosed(b)
			}
			d, err := production.SignedDeltas(b, entity.MovementTypeSalida, req.Units, decimal.Zero)
			if err != nil {
				return err
			}
			m, err := appendMovement(ctx, r, b, entity.MovementTypeSalida, d, o.ID, "", actor.UserID)
			if err != nil {
				return err
			}
			line := entity.OutgoingOrderLine{
				ID:              newID(),
				OutgoingOrderID: o.ID,
				BatchID:         b.ID,
				Units:           req.Units,
				MovementID:      m.ID,
			}
			if err := r.Outgoing.AddLine(ctx, &line); err != nil {
				return err
			}
			lines[i] = line
		}
		o.Lines = lines
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("outgoing_order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Int("lines", len(order.Lines)).
		Msg("orden de salida registrada")
	return toOutgoingOrderResponse(order), nil
}

// GetByID obtiene una orden de salida con sus líneas.
func (uc *OutgoingOrderUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.OutgoingOrderResponse, error) {
	o, err := uc.repos.Outgoing.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessUnit(o.UnitID) {
		return nil, domain.ErrForbidden
	}
	return toOutgoingOrderResponse(o), nil
}

// Cancel anula una orden completada devolviendo a cada lote lo que la orden le sacó.
// Si algún lote no admite la compensación (descartado) no se anula nada.
func (uc *OutgoingOrderUseCase) Cancel(ctx context.Context, actor entity.Actor, id string) (*dto.OutgoingOrderResponse, error) {
	var (
		order    *entity.OutgoingOrder
		reversed int
	)
	err := uc.tx.Run(ctx, func(r Repos) error {
		o, err := uc.lockOrder(ctx, r, actor, id)
		if err != nil {
			return err
		}
		if o.Status != entity.OutgoingStatusCompletada {
			return &domain.TransitionError{Entity: "orden de salida", From: o.Status, To: entity.OutgoingStatusCancelada}
		}
		if reversed, err = compensate(ctx, r, actor, o); err != nil {
			return err
		}
		t := now()
		o.Status = entity.OutgoingStatusCancelada
		o.CancelledAt = &t
		if err := r.Outgoing.Update(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("outgoing_order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Int("reversals", reversed).
		Msg("orden de salida anulada")
	return toOutgoingOrderResponse(order), nil
}

// Delete elimina la orden. Si estaba completada primero compensa sus salidas.
// Los asientos del libro conservan la referencia a la orden eliminada.
func (uc *OutgoingOrderUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	var (
		order    *entity.OutgoingOrder
		reversed int
	)
	err := uc.tx.Run(ctx, func(r Repos) error {
		o, err := uc.lockOrder(ctx, r, actor, id)
		if err != nil {
			return err
		}
		if o.Status == entity.OutgoingStatusCompletada {
			if reversed, err = compensate(ctx, r, actor, o); err != nil {
				return err
			}
		}
		order = o
		return r.Outgoing.Delete(ctx, o.ID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().
		Str("outgoing_order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Int("reversals", reversed).
		Msg("orden de salida eliminada")
	return nil
}

func (uc *OutgoingOrderUseCase) lockOrder(ctx context.Context, r Repos, actor entity.Actor, id string) (*entity.OutgoingOrder, error) {
	o, err := r.Outgoing.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessUnit(o.UnitID) {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

// compensate registra una entrada por cada salida de la orden, con las variaciones exactas
// invertidas. Es el único camino que admite movimientos sobre un lote vendido.
func compensate(ctx context.Context, r Repos, actor entity.Actor, o *entity.OutgoingOrder) (int, error) {
	movs, err := r.Movements.ListByOutgoingOrder(ctx, o.ID)
	if err != nil {
		return 0, err
	}
	note := "anulación " + o.OrderNumber
	n := 0
	for _, m := range movs {
		if m.Type != entity.MovementTypeSalida {
			continue
		}
		b, err := r.Batches.GetForUpdate(ctx, m.BatchID)
		if err != nil {
			return n, err
		}
		if !production.CanPost(b, true) {
			return n, batchClosed(b)
		}
		d := production.Deltas{Units: -m.UnitsDelta, Kg: m.KgDelta.Neg()}
		if _, err := appendMovement(ctx, r, b, entity.MovementTypeEntrada, d, o.ID, note, actor.UserID); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
