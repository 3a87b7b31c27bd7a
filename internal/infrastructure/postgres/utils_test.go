package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/semillas-api/internal/domain"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/domain/repository"
)

func TestLookupErr(t *testing.T) {
	assert.ErrorIs(t, lookupErr(pgx.ErrNoRows, "lote", "x"), domain.ErrNotFound)
	assert.ErrorIs(t, lookupErr(&pgconn.PgError{Code: "22P02"}, "lote", "no-uuid"), domain.ErrNotFound)

	boom := errors.New("conexión cerrada")
	err := lookupErr(boom, "lote", "x")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("otro")))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "abc", nullable("abc"))
	assert.Equal(t, "", deref(nil))
}

func TestBatchListQuery(t *testing.T) {
	sql, args, err := batchListQuery(repository.BatchFilter{}).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "WHERE")
	assert.Contains(t, sql, "ORDER BY created_at, lot_number")
	assert.Empty(t, args)

	sql, args, err = batchListQuery(repository.BatchFilter{
		UnitID:   "norte",
		Statuses: []string{entity.BatchStatusDisponible, entity.BatchStatusParcialmenteVendido},
	}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE unit_id = $1 AND status IN ($2,$3)")
	assert.Equal(t, []any{"norte", entity.BatchStatusDisponible, entity.BatchStatusParcialmenteVendido}, args)
}

func TestConsolidateQuery(t *testing.T) {
	sql, args, err := consolidateQuery(repository.InventoryFilter{UnitID: "norte"}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "'' AS unit_id")
	assert.Contains(t, sql, "WHERE b.status IN ($1,$2) AND b.unit_id = $3")
	assert.Contains(t, sql, "GROUP BY b.variety_id, v.name, v.seed_name, b.category_id, c.name")
	assert.Equal(t, []any{entity.BatchStatusDisponible, entity.BatchStatusParcialmenteVendido, "norte"}, args)

	sql, _, err = consolidateQuery(repository.InventoryFilter{GroupByUnit: true}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "SELECT b.unit_id,")
	assert.Contains(t, sql, "c.name, b.unit_id")
}
