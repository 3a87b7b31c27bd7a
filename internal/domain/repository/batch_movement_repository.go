package repository

import (
	"context"

	"github.com/jhoicas/semillas-api/internal/domain/entity"
)

// BatchMovementRepository puerto del libro de movimientos. Solo inserción y lectura:
// los asientos no se modifican ni se borran.
type BatchMovementRepository interface {
	Create(ctx context.Context, m *entity.BatchMovement) error
	// ListByBatch devuelve los movimientos del lote en orden de secuencia.
	ListByBatch(ctx context.Context, batchID string) ([]*entity.BatchMovement, error)
	CountByBatch(ctx context.Context, batchID string) (int, error)
	// LastSequence última secuencia usada en el lote (0 si el libro está vacío).
	LastSequence(ctx context.Context, batchID string) (int, error)
	// ListByOutgoingOrder movimientos que referencian la orden de salida, por lote y secuencia.
	ListByOutgoingOrder(ctx context.Context, outgoingOrderID string) ([]*entity.BatchMovement, error)
}
