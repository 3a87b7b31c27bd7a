package production

import (
	"context"

	"github.com/jhoicas/semillas-api/internal/application/dto"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/domain/production"
	"github.com/jhoicas/semillas-api/pkg/logger"
)

// LedgerUseCase libro de movimientos de los lotes.
type LedgerUseCase struct {
	tx    TxRunner
	repos Repos
	log   *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(tx TxRunner, repos Repos, log *logger.Logger) *LedgerUseCase {
	return &LedgerUseCase{tx: tx, repos: repos, log: log.Named("movimientos")}
}

// Post registra un movimiento. Bloquea la fila del lote, valida límites, actualiza saldo y estado
// y agrega el asiento en una sola transacción.
func (uc *LedgerUseCase) Post(ctx context.Context, actor entity.Actor, batchID string, in dto.PostMovementRequest) (*dto.MovementResponse, error) {
	var (
		mov   *entity.BatchMovement
		batch *entity.ProductionBatch
	)
	err := uc.tx.Run(ctx, func(r Repos) error {
		b, err := loadBatch(ctx, r, actor, batchID, true)
		if err != nil {
			return err
		}
		if !production.CanPost(b, false) {
			return batchClosed(b)
		}
		d, err := production.SignedDeltas(b, in.Type, in.Units, in.Kg)
		if err != nil {
			return err
		}
		m, err := appendMovement(ctx, r, b, in.Type, d, "", in.Note, actor.UserID)
		if err != nil {
			return err
		}
		mov, batch = m, b
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("batch_id", batch.ID).
		Str("lot_number", batch.LotNumber).
		Str("movement_type", mov.Type).
		Int("units_delta", mov.UnitsDelta).
		Str("kg_delta", dto.Kg(mov.KgDelta)).
		Int("balance_units", mov.BalanceUnits).
		Str("balance_kg", dto.Kg(mov.BalanceKg)).
		Str("status", batch.Status).
		Msg("movimiento registrado")
	return toMovementResponse(mov), nil
}

// List movimientos del lote en orden de secuencia.
func (uc *LedgerUseCase) List(ctx context.Context, actor entity.Actor, batchID string) ([]*dto.MovementResponse, error) {
	b, err := loadBatch(ctx, uc.repos, actor, batchID, false)
	if err != nil {
		return nil, err
	}
	list, err := uc.repos.Movements.ListByBatch(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// Summary totales de entradas y salidas y verificación del libro contra el saldo del lote.
func (uc *LedgerUseCase) Summary(ctx context.Context, actor entity.Actor, batchID string) (*dto.MovementSummaryResponse, error) {
	b, err := loadBatch(ctx, uc.repos, actor, batchID, false)
	if err != nil {
		return nil, err
	}
	list, err := uc.repos.Movements.ListByBatch(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	s := production.Summarize(b, list)
	if !s.Consistent {
		uc.log.Warn().Str("batch_id", b.ID).Str("lot_number", b.LotNumber).Msg("el libro no concilia con el saldo del lote")
	}
	return &dto.MovementSummaryResponse{
		BatchID:       b.ID,
		Count:         s.Count,
		EntradasUnits: s.EntradasUnits,
		EntradasKg:    dto.Kg(s.EntradasKg),
		SalidasUnits:  s.SalidasUnits,
		SalidasKg:     dto.Kg(s.SalidasKg),
		BalanceUnits:  s.BalanceUnits,
		BalanceKg:     dto.Kg(s.BalanceKg),
		Consistent:    s.Consistent,
	}, nil
}
