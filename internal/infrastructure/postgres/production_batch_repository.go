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

var _ repository.ProductionBatchRepository = (*ProductionBatchRepo)(nil)

// ProductionBatchRepo implementa ProductionBatchRepository sobre PostgreSQL.
type ProductionBatchRepo struct {
	q Querier
}

// NewProductionBatchRepository construye el repositorio.
func NewProductionBatchRepository(q Querier) *ProductionBatchRepo {
	return &ProductionBatchRepo{q: q}
}

var batchColumns = []string{
	"id", "intake_order_id", "unit_id", "variety_id", "category_id", "lot_number", "presentation",
	"kg_per_unit", "original_units", "original_kg", "current_units", "current_kg",
	"status", "created_at", "created_by", "updated_at",
}

type batchRow struct {
	ID            string          `db:"id"`
	IntakeOrderID string          `db:"intake_order_id"`
	UnitID        string          `db:"unit_id"`
	VarietyID     string          `db:"variety_id"`
	CategoryID    string          `db:"category_id"`
	LotNumber     string          `db:"lot_number"`
	Presentation  string          `db:"presentation"`
	KgPerUnit     decimal.Decimal `db:"kg_per_unit"`
	OriginalUnits int             `db:"original_units"`
	OriginalKg    decimal.Decimal `db:"original_kg"`
	CurrentUnits  int             `db:"current_units"`
	CurrentKg     decimal.Decimal `db:"current_kg"`
	Status        string          `db:"status"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func (row batchRow) toEntity() *entity.ProductionBatch {
	return &entity.ProductionBatch{
		ID: row.ID, IntakeOrderID: row.IntakeOrderID, UnitID: row.UnitID,
		VarietyID: row.VarietyID, CategoryID: row.CategoryID,
		LotNumber: row.LotNumber, Presentation: row.Presentation, KgPerUnit: row.KgPerUnit,
		OriginalUnits: row.OriginalUnits, OriginalKg: row.OriginalKg,
		CurrentUnits: row.CurrentUnits, CurrentKg: row.CurrentKg,
		Status: row.Status, CreatedAt: row.CreatedAt, CreatedBy: row.CreatedBy, UpdatedAt: row.UpdatedAt,
	}
}

func (r *ProductionBatchRepo) Create(ctx context.Context, b *entity.ProductionBatch) error {
	sql, args, err := psql.Insert("production_batches").Columns(batchColumns...).Values(
		b.ID, b.IntakeOrderID, b.UnitID, b.VarietyID, b.CategoryID, b.LotNumber, b.Presentation,
		b.KgPerUnit, b.OriginalUnits, b.OriginalKg, b.CurrentUnits, b.CurrentKg,
		b.Status, b.CreatedAt, b.CreatedBy, b.UpdatedAt,
	).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe el lote %s", domain.ErrConflict, b.LotNumber)
		}
		return fmt.Errorf("insert production_batch: %w", err)
	}
	return nil
}

func (r *ProductionBatchRepo) GetByID(ctx context.Context, id string) (*entity.ProductionBatch, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate bloquea la fila del lote hasta el fin de la transacción.
func (r *ProductionBatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductionBatch, error) {
	return r.get(ctx, id, "FOR UPDATE")
}

func (r *ProductionBatchRepo) get(ctx context.Context, id, suffix string) (*entity.ProductionBatch, error) {
	qb := psql.Select(batchColumns...).From("production_batches").Where(squirrel.Eq{"id": id})
	if suffix != "" {
		qb = qb.Suffix(suffix)
	}
	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var row batchRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		return nil, lookupErr(err, "lote", id)
	}
	return row.toEntity(), nil
}

// Update persiste los campos mutables: datos editables, saldo y estado.
func (r *ProductionBatchRepo) Update(ctx context.Context, b *entity.ProductionBatch) error {
	sql, args, err := psql.Update("production_batches").SetMap(map[string]any{
		"variety_id":     b.VarietyID,
		"category_id":    b.CategoryID,
		"presentation":   b.Presentation,
		"kg_per_unit":    b.KgPerUnit,
		"original_units": b.OriginalUnits,
		"original_kg":    b.OriginalKg,
		"current_units":  b.CurrentUnits,
		"current_kg":     b.CurrentKg,
		"status":         b.Status,
		"updated_at":     b.UpdatedAt,
	}).Where(squirrel.Eq{"id": b.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update production_batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: lote %s", domain.ErrNotFound, b.ID)
	}
	return nil
}

func (r *ProductionBatchRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM production_batches WHERE id = $1`, id)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
		}
		return fmt.Errorf("delete production_batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *ProductionBatchRepo) List(ctx context.Context, f repository.BatchFilter) ([]*entity.ProductionBatch, error) {
	qb := batchListQuery(f)
	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []batchRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		if isInvalidID(err) {
			return []*entity.ProductionBatch{}, nil
		}
		return nil, fmt.Errorf("list production_batches: %w", err)
	}
	out := make([]*entity.ProductionBatch, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// batchListQuery SELECT filtrado de lotes; los campos vacíos del filtro no agregan condición.
func batchListQuery(f repository.BatchFilter) squirrel.SelectBuilder {
	qb := psql.Select(batchColumns...).From("production_batches").OrderBy("created_at", "lot_number")
	if f.UnitID != "" {
		qb = qb.Where(squirrel.Eq{"unit_id": f.UnitID})
	}
	if f.VarietyID != "" {
		qb = qb.Where(squirrel.Eq{"variety_id": f.VarietyID})
	}
	if f.CategoryID != "" {
		qb = qb.Where(squirrel.Eq{"category_id": f.CategoryID})
	}
	if f.IntakeOrderID != "" {
		qb = qb.Where(squirrel.Eq{"intake_order_id": f.IntakeOrderID})
	}
	if len(f.Statuses) > 0 {
		qb = qb.Where(squirrel.Eq{"status": f.Statuses})
	}
	return qb
}
