package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	app "github.com/jhoicas/semillas-api/internal/application/production"
)

var tracer = otel.Tracer("semillas-api/postgres")

var _ app.TxRunner = (*TxRunner)(nil)

// statementTimeout tope por sentencia dentro de una transacción; corta esperas de lock eternas.
const statementTimeout = 30 * time.Second

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción READ COMMITTED, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Los bloqueos de fila (FOR UPDATE) que tomen los repos duran hasta el fin de la tx.
func (r *TxRunner) Run(ctx context.Context, fn func(app.Repos) error) (err error) {
	ctx, span := tracer.Start(ctx, "transaction",
		trace.WithAttributes(attribute.String("tx.isolation", string(pgx.ReadCommitted))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", statementTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("set statement_timeout: %w", err)
	}

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Repos repositorios sobre el pool, para lecturas fuera de transacción.
func (r *TxRunner) Repos() app.Repos {
	return NewRepos(r.pool)
}

// NewRepos arma todos los repositorios sobre q (pool o tx).
func NewRepos(q Querier) app.Repos {
	return app.Repos{
		Orders:     NewIntakeOrderRepository(q),
		Batches:    NewProductionBatchRepository(q),
		Movements:  NewBatchMovementRepository(q),
		Outgoing:   NewOutgoingOrderRepository(q),
		Sequences:  NewSequenceRepository(q),
		Categories: NewCategoryRepository(q),
		Varieties:  NewVarietyRepository(q),
		Units:      NewUnitRepository(q),
		Inventory:  NewInventoryRepository(q),
	}
}
