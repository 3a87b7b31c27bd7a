package repository

import (
	"context"

	"github.com/jhoicas/semillas-api/internal/domain/entity"
)

// BatchFilter filtros de listado de lotes. Los campos vacíos no filtran.
type BatchFilter struct {
	UnitID        string
	VarietyID     string
	CategoryID    string
	IntakeOrderID string
	Statuses      []string
}

// ProductionBatchRepository define el puerto de persistencia para lotes de producción.
type ProductionBatchRepository interface {
	Create(ctx context.Context, b *entity.ProductionBatch) error
	GetByID(ctx context.Context, id string) (*entity.ProductionBatch, error)
	// GetForUpdate bloquea la fila del lote; serializa los movimientos sobre el lote.
	GetForUpdate(ctx context.Context, id string) (*entity.ProductionBatch, error)
	Update(ctx context.Context, b *entity.ProductionBatch) error
	Delete(ctx context.Context, id string) error
	// List ordena por fecha de creación y número de lote.
	List(ctx context.Context, f BatchFilter) ([]*entity.ProductionBatch, error)
}
