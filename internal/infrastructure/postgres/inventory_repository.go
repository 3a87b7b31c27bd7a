package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/domain/production"
	"github.com/jhoicas/semillas-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo proyección de lectura del inventario vendible.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el repositorio.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

type snapshotRow struct {
	UnitID       string          `db:"unit_id"`
	VarietyID    string          `db:"variety_id"`
	VarietyName  string          `db:"variety_name"`
	SeedName     string          `db:"seed_name"`
	CategoryID   string          `db:"category_id"`
	CategoryName string          `db:"category_name"`
	TotalUnits   int             `db:"total_units"`
	TotalKg      decimal.Decimal `db:"total_kg"`
	BatchCount   int             `db:"batch_count"`
}

// Consolidate agrupa en SQL; el orden final lo pone production.SortSnapshots para que no
// dependa de la collation de la base.
func (r *InventoryRepo) Consolidate(ctx context.Context, f repository.InventoryFilter) ([]*entity.InventorySnapshot, error) {
	sql, args, err := consolidateQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []snapshotRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("consolidate inventory: %w", err)
	}

	out := make([]*entity.InventorySnapshot, 0, len(rows))
	for _, row := range rows {
		s := entity.InventorySnapshot(row)
		out = append(out, &s)
	}
	production.SortSnapshots(out)
	return out, nil
}

// consolidateQuery agregación de lotes vendibles por variedad y categoría (y sede si se pide).
func consolidateQuery(f repository.InventoryFilter) squirrel.SelectBuilder {
	unitCol := "'' AS unit_id"
	groupBy := []string{"b.variety_id", "v.name", "v.seed_name", "b.category_id", "c.name"}
	if f.GroupByUnit {
		unitCol = "b.unit_id"
		groupBy = append(groupBy, "b.unit_id")
	}

	qb := psql.Select(
		unitCol,
		"b.variety_id", "v.name AS variety_name", "v.seed_name",
		"b.category_id", "c.name AS category_name",
		"SUM(b.current_units) AS total_units",
		"SUM(b.current_kg) AS total_kg",
		"COUNT(*) AS batch_count",
	).
		From("production_batches b").
		Join("varieties v ON v.id = b.variety_id").
		Join("categories c ON c.id = b.category_id").
		Where(squirrel.Eq{"b.status": []string{entity.BatchStatusDisponible, entity.BatchStatusParcialmenteVendido}}).
		GroupBy(groupBy...)

	if f.UnitID != "" {
		qb = qb.Where(squirrel.Eq{"b.unit_id": f.UnitID})
	}
	if f.VarietyID != "" {
		qb = qb.Where(squirrel.Eq{"b.variety_id": f.VarietyID})
	}
	if f.CategoryID != "" {
		qb = qb.Where(squirrel.Eq{"b.category_id": f.CategoryID})
	}

	return qb
}
