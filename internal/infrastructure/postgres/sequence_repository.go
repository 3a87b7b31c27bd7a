package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/semillas-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo numerador sobre number_sequences. El UPSERT toma el lock de la fila de la clave,
// así dos transacciones nunca obtienen el mismo valor.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el repositorio.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

func (r *SequenceRepo) Next(ctx context.Context, key string) (int, error) {
	const q = `
		INSERT INTO number_sequences (key, value) VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET value = number_sequences.value + 1
		RETURNING value`
	var n int
	if err := r.q.QueryRow(ctx, q, key).Scan(&n); err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", key, err)
	}
	return n, nil
}
