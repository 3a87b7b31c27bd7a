package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/semillas-api/internal/domain"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/domain/repository"
)

var _ repository.BatchMovementRepository = (*BatchMovementRepo)(nil)

// BatchMovementRepo implementa BatchMovementRepository sobre PostgreSQL. Solo INSERT y SELECT.
type BatchMovementRepo struct {
	q Querier
}

// NewBatchMovementRepository construye el repositorio.
func NewBatchMovementRepository(q Querier) *BatchMovementRepo {
	return &BatchMovementRepo{q: q}
}

var movementColumns = []string{
	"id", "batch_id", "sequence", "type", "units_delta", "kg_delta",
	"balance_units", "balance_kg", "outgoing_order_id", "note", "created_by", "created_at",
}

type movementRow struct {
	ID              string          `db:"id"`
	BatchID         string          `db:"batch_id"`
	Sequence        int             `db:"sequence"`
	Type            string          `db:"type"`
	UnitsDelta      int             `db:"units_delta"`
	KgDelta         decimal.Decimal `db:"kg_delta"`
	BalanceUnits    int             `db:"balance_units"`
	BalanceKg       decimal.Decimal `db:"balance_kg"`
	OutgoingOrderID *string         `db:"outgoing_order_id"`
	Note            string          `db:"note"`
	CreatedBy       string          `db:"created_by"`
	CreatedAt       time.Time       `db:"created_at"`
}

func (row movementRow) toEntity() *entity.BatchMovement {
	return &entity.BatchMovement{
		ID: row.ID, BatchID: row.BatchID, Sequence: row.Sequence, Type: row.Type,
		UnitsDelta: row.UnitsDelta, KgDelta: row.KgDelta,
		BalanceUnits: row.BalanceUnits, BalanceKg: row.BalanceKg,
		OutgoingOrderID: deref(row.OutgoingOrderID), Note: row.Note,
		CreatedBy: row.CreatedBy, CreatedAt: row.CreatedAt,
	}
}

// Create inserta el asiento. UNIQUE(batch_id, sequence) rechaza dos asientos con la misma secuencia.
func (r *BatchMovementRepo) Create(ctx context.Context, m *entity.BatchMovement) error {
	sql, args, err := psql.Insert("batch_movements").Columns(movementColumns...).Values(
		m.ID, m.BatchID, m.Sequence, m.Type, m.UnitsDelta, m.KgDelta,
		m.BalanceUnits, m.BalanceKg, nullable(m.OutgoingOrderID), m.Note, m.CreatedBy, m.CreatedAt,
	).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: secuencia %d repetida en el lote %s", domain.ErrConflict, m.Sequence, m.BatchID)
		}
		return fmt.Errorf("insert batch_movement: %w", err)
	}
	return nil
}

func (r *BatchMovementRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.BatchMovement, error) {
	return r.list(ctx, squirrel.Eq{"batch_id": batchID}, "sequence")
}

// ListByOutgoingOrder movimientos de la orden, por lote y secuencia (mismo orden en que se bloquean los lotes).
func (r *BatchMovementRepo) ListByOutgoingOrder(ctx context.Context, outgoingOrderID string) ([]*entity.BatchMovement, error) {
	return r.list(ctx, squirrel.Eq{"outgoing_order_id": outgoingOrderID}, "batch_id", "sequence")
}

func (r *BatchMovementRepo) list(ctx context.Context, where squirrel.Eq, orderBy ...string) ([]*entity.BatchMovement, error) {
	sql, args, err := psql.Select(movementColumns...).From("batch_movements").Where(where).OrderBy(orderBy...).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		if isInvalidID(err) {
			return []*entity.BatchMovement{}, nil
		}
		return nil, fmt.Errorf("list batch_movements: %w", err)
	}
	out := make([]*entity.BatchMovement, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *BatchMovementRepo) CountByBatch(ctx context.Context, batchID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM batch_movements WHERE batch_id = $1`, batchID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count batch_movements: %w", err)
	}
	return n, nil
}

func (r *BatchMovementRepo) LastSequence(ctx context.Context, batchID string) (int, error) {
	var n int
	const q = `SELECT COALESCE(MAX(sequence), 0) FROM batch_movements WHERE batch_id = $1`
	if err := r.q.QueryRow(ctx, q, batchID).Scan(&n); err != nil {
		return 0, fmt.Errorf("last sequence: %w", err)
	}
	return n, nil
}
