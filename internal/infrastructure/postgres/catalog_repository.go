package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.VarietyRepository  = (*VarietyRepo)(nil)
	_ repository.UnitRepository     = (*UnitRepo)(nil)
)

// CategoryRepo lectura de categorías.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el repositorio.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

type categoryRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Code      string    `db:"code"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const categoryColumns = `id, name, code, status, created_at, updated_at`

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var row categoryRow
	if err := pgxscan.Get(ctx, r.q, &row, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id); err != nil {
		return nil, lookupErr(err, "categoría", id)
	}
	c := entity.Category(row)
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var rows []categoryRow
	if err := pgxscan.Select(ctx, r.q, &rows, `SELECT `+categoryColumns+` FROM categories ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]*entity.Category, 0, len(rows))
	for _, row := range rows {
		c := entity.Category(row)
		out = append(out, &c)
	}
	return out, nil
}

// VarietyRepo lectura de variedades.
type VarietyRepo struct {
	q Querier
}

// NewVarietyRepository construye el repositorio.
func NewVarietyRepository(q Querier) *VarietyRepo {
	return &VarietyRepo{q: q}
}

type varietyRow struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	SeedName string `db:"seed_name"`
}

func (r *VarietyRepo) GetByID(ctx context.Context, id string) (*entity.Variety, error) {
	var row varietyRow
	if err := pgxscan.Get(ctx, r.q, &row, `SELECT id, name, seed_name FROM varieties WHERE id = $1`, id); err != nil {
		return nil, lookupErr(err, "variedad", id)
	}
	v := entity.Variety(row)
	return &v, nil
}

func (r *VarietyRepo) List(ctx context.Context) ([]*entity.Variety, error) {
	var rows []varietyRow
	if err := pgxscan.Select(ctx, r.q, &rows, `SELECT id, name, seed_name FROM varieties ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list varieties: %w", err)
	}
	out := make([]*entity.Variety, 0, len(rows))
	for _, row := range rows {
		v := entity.Variety(row)
		out = append(out, &v)
	}
	return out, nil
}

// UnitRepo lectura de sedes.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el repositorio.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

type unitRow struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Address string `db:"address"`
}

func (r *UnitRepo) GetByID(ctx context.Context, id string) (*entity.Unit, error) {
	var row unitRow
	if err := pgxscan.Get(ctx, r.q, &row, `SELECT id, name, address FROM units WHERE id = $1`, id); err != nil {
		return nil, lookupErr(err, "sede", id)
	}
	u := entity.Unit(row)
	return &u, nil
}
