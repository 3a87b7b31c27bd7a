package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/semillas-api/internal/domain/entity"
)

// IntakeOrderRepository define el puerto de persistencia para órdenes de ingreso.
// GetByID y GetForUpdate devuelven domain.ErrNotFound si la orden no existe.
type IntakeOrderRepository interface {
	Create(ctx context.Context, o *entity.IntakeOrder) error
	GetByID(ctx context.Context, id string) (*entity.IntakeOrder, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) hasta el fin de la transacción.
	// Serializa las asignaciones contra una misma orden.
	GetForUpdate(ctx context.Context, id string) (*entity.IntakeOrder, error)
	Update(ctx context.Context, o *entity.IntakeOrder) error
	// AllocatedKg suma de original_kg de los lotes de la orden.
	AllocatedKg(ctx context.Context, orderID string) (decimal.Decimal, error)
	CountBatches(ctx context.Context, orderID string) (int, error)
}
