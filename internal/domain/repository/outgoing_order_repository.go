package repository

import (
	"context"

	"github.com/jhoicas/semillas-api/internal/domain/entity"
)

// OutgoingOrderRepository define el puerto de persistencia para órdenes de salida.
type OutgoingOrderRepository interface {
	// Create guarda la cabecera; las líneas se agregan con AddLine una vez registrada su salida.
	Create(ctx context.Context, o *entity.OutgoingOrder) error
	AddLine(ctx context.Context, line *entity.OutgoingOrderLine) error
	GetByID(ctx context.Context, id string) (*entity.OutgoingOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.OutgoingOrder, error)
	Update(ctx context.Context, o *entity.OutgoingOrder) error
	Delete(ctx context.Context, id string) error
}
