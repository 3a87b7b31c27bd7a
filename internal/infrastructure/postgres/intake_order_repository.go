package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/semillas-api/internal/domain"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/domain/repository"
)

var _ repository.IntakeOrderRepository = (*IntakeOrderRepo)(nil)

// IntakeOrderRepo implementa IntakeOrderRepository sobre PostgreSQL.
type IntakeOrderRepo struct {
	q Querier
}

// NewIntakeOrderRepository construye el repositorio.
func NewIntakeOrderRepository(q Querier) *IntakeOrderRepo {
	return &IntakeOrderRepo{q: q}
}

const intakeOrderColumns = `id, order_number, unit_id, variety_id, category_id, net_weight,
	status, created_at, created_by, updated_at`

type intakeOrderRow struct {
	ID          string          `db:"id"`
	OrderNumber string          `db:"order_number"`
	UnitID      string          `db:"unit_id"`
	VarietyID   string          `db:"variety_id"`
	CategoryID  string          `db:"category_id"`
	NetWeight   decimal.Decimal `db:"net_weight"`
	Status      string          `db:"status"`
	CreatedAt   time.Time       `db:"created_at"`
	CreatedBy   string          `db:"created_by"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (row intakeOrderRow) toEntity() *entity.IntakeOrder {
	return &entity.IntakeOrder{
		ID: row.ID, OrderNumber: row.OrderNumber, UnitID: row.UnitID,
		VarietyID: row.VarietyID, CategoryID: row.CategoryID, NetWeight: row.NetWeight,
		Status: row.Status, CreatedAt: row.CreatedAt, CreatedBy: row.CreatedBy, UpdatedAt: row.UpdatedAt,
	}
}

func (r *IntakeOrderRepo) Create(ctx context.Context, o *entity.IntakeOrder) error {
	const q = `
		INSERT INTO intake_orders
			(id, order_number, unit_id, variety_id, category_id, net_weight, status, created_at, created_by, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, q,
		o.ID, o.OrderNumber, o.UnitID, o.VarietyID, o.CategoryID,
		o.NetWeight, o.Status, o.CreatedAt, o.CreatedBy, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe la orden de ingreso %s", domain.ErrConflict, o.OrderNumber)
		}
		return fmt.Errorf("insert intake_order: %w", err)
	}
	return nil
}

func (r *IntakeOrderRepo) GetByID(ctx context.Context, id string) (*entity.IntakeOrder, error) {
	return r.get(ctx, `SELECT `+intakeOrderColumns+` FROM intake_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la orden hasta el fin de la transacción.
func (r *IntakeOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.IntakeOrder, error) {
	return r.get(ctx, `SELECT `+intakeOrderColumns+` FROM intake_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *IntakeOrderRepo) get(ctx context.Context, q, id string) (*entity.IntakeOrder, error) {
	var row intakeOrderRow
	if err := pgxscan.Get(ctx, r.q, &row, q, id); err != nil {
		return nil, lookupErr(err, "orden de ingreso", id)
	}
	return row.toEntity(), nil
}

func (r *IntakeOrderRepo) Update(ctx context.Context, o *entity.IntakeOrder) error {
	const q = `
		UPDATE intake_orders
		SET net_weight = $2, status = $3, updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, q, o.ID, o.NetWeight, o.Status, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update intake_order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: orden de ingreso %s", domain.ErrNotFound, o.ID)
	}
	return nil
}

// AllocatedKg suma de kilos originales de los lotes de la orden. Los lotes eliminados no cuentan.
func (r *IntakeOrderRepo) AllocatedKg(ctx context.Context, orderID string) (decimal.Decimal, error) {
	const q = `SELECT COALESCE(SUM(original_kg), 0) FROM production_batches WHERE intake_order_id = $1`
	var kg decimal.Decimal
	if err := r.q.QueryRow(ctx, q, orderID).Scan(&kg); err != nil {
		return decimal.Zero, fmt.Errorf("allocated kg: %w", err)
	}
	return kg, nil
}

func (r *IntakeOrderRepo) CountBatches(ctx context.Context, orderID string) (int, error) {
	const q = `SELECT COUNT(*) FROM production_batches WHERE intake_order_id = $1`
	var n int
	if err := r.q.QueryRow(ctx, q, orderID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count batches: %w", err)
	}
	return n, nil
}
