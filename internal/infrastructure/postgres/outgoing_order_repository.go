package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/semillas-api/internal/domain"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/domain/repository"
)

var _ repository.OutgoingOrderRepository = (*OutgoingOrderRepo)(nil)

// OutgoingOrderRepo implementa OutgoingOrderRepository sobre PostgreSQL.
type OutgoingOrderRepo struct {
	q Querier
}

// NewOutgoingOrderRepository construye el repositorio.
func NewOutgoingOrderRepository(q Querier) *OutgoingOrderRepo {
	return &OutgoingOrderRepo{q: q}
}

const outgoingOrderColumns = `id, order_number, unit_id, status, note, created_at, created_by, cancelled_at`

type outgoingOrderRow struct {
	ID          string     `db:"id"`
	OrderNumber string     `db:"order_number"`
	UnitID      string     `db:"unit_id"`
	Status      string     `db:"status"`
	Note        string     `db:"note"`
	CreatedAt   time.Time  `db:"created_at"`
	CreatedBy   string     `db:"created_by"`
	CancelledAt *time.Time `db:"cancelled_at"`
}

type outgoingLineRow struct {
	ID              string `db:"id"`
	OutgoingOrderID string `db:"outgoing_order_id"`
	BatchID         string `db:"batch_id"`
	Units           int    `db:"units"`
	MovementID      string `db:"movement_id"`
}

func (r *OutgoingOrderRepo) Create(ctx context.Context, o *entity.OutgoingOrder) error {
	const q = `
		INSERT INTO outgoing_orders (id, order_number, unit_id, status, note, created_at, created_by, cancelled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, q, o.ID, o.OrderNumber, o.UnitID, o.Status, o.Note, o.CreatedAt, o.CreatedBy, o.CancelledAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe la orden de salida %s", domain.ErrConflict, o.OrderNumber)
		}
		return fmt.Errorf("insert outgoing_order: %w", err)
	}
	return nil
}

func (r *OutgoingOrderRepo) AddLine(ctx context.Context, l *entity.OutgoingOrderLine) error {
	const q = `
		INSERT INTO outgoing_order_lines (id, outgoing_order_id, batch_id, units, movement_id)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, q, l.ID, l.OutgoingOrderID, l.BatchID, l.Units, l.MovementID); err != nil {
		return fmt.Errorf("insert outgoing_order_line: %w", err)
	}
	return nil
}

func (r *OutgoingOrderRepo) GetByID(ctx context.Context, id string) (*entity.OutgoingOrder, error) {
	return r.get(ctx, `SELECT `+outgoingOrderColumns+` FROM outgoing_orders WHERE id = $1`, id)
}

func (r *OutgoingOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.OutgoingOrder, error) {
	return r.get(ctx, `SELECT `+outgoingOrderColumns+` FROM outgoing_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OutgoingOrderRepo) get(ctx context.Context, q, id string) (*entity.OutgoingOrder, error) {
	var row outgoingOrderRow
	if err := pgxscan.Get(ctx, r.q, &row, q, id); err != nil {
		return nil, lookupErr(err, "orden de salida", id)
	}
	o := &entity.OutgoingOrder{
		ID: row.ID, OrderNumber: row.OrderNumber, UnitID: row.UnitID, Status: row.Status,
		Note: row.Note, CreatedAt: row.CreatedAt, CreatedBy: row.CreatedBy, CancelledAt: row.CancelledAt,
	}

	const lq = `
		SELECT id, outgoing_order_id, batch_id, units, movement_id
		FROM outgoing_order_lines WHERE outgoing_order_id = $1 ORDER BY id`
	var lines []outgoingLineRow
	if err := pgxscan.Select(ctx, r.q, &lines, lq, id); err != nil {
		return nil, fmt.Errorf("list outgoing_order_lines: %w", err)
	}
	o.Lines = make([]entity.OutgoingOrderLine, 0, len(lines))
	for _, l := range lines {
		o.Lines = append(o.Lines, entity.OutgoingOrderLine(l))
	}
	return o, nil
}

func (r *OutgoingOrderRepo) Update(ctx context.Context, o *entity.OutgoingOrder) error {
	const q = `UPDATE outgoing_orders SET status = $2, note = $3, cancelled_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, q, o.ID, o.Status, o.Note, o.CancelledAt)
	if err != nil {
		return fmt.Errorf("update outgoing_order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: orden de salida %s", domain.ErrNotFound, o.ID)
	}
	return nil
}

// Delete borra la cabecera; las líneas caen por ON DELETE CASCADE. Los asientos del libro
// conservan la referencia a la orden.
func (r *OutgoingOrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM outgoing_orders WHERE id = $1`, id)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("%w: orden de salida %s", domain.ErrNotFound, id)
		}
		return fmt.Errorf("delete outgoing_order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: orden de salida %s", domain.ErrNotFound, id)
	}
	return nil
}
