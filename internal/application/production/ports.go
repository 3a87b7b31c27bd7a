// Package production casos de uso del ciclo de vida de lotes: asignación contra órdenes de
// ingreso, cambios de estado, libro de movimientos, órdenes de salida e inventario consolidado.
package production

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/domain/repository"
)

// Repos repositorios atados a una misma conexión o transacción.
type Repos struct {
	Orders     repository.IntakeOrderRepository
	Batches    repository.ProductionBatchRepository
	Movements  repository.BatchMovementRepository
	Outgoing   repository.OutgoingOrderRepository
	Sequences  repository.SequenceRepository
	Categories repository.CategoryRepository
	Varieties  repository.VarietyRepository
	Units      repository.UnitRepository
	Inventory  repository.InventoryRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y nada de lo escrito queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// InventoryExporter genera el archivo descargable del inventario consolidado.
type InventoryExporter interface {
	Export(rows []*entity.InventorySnapshot) ([]byte, error)
}

// newID ids ordenables por tiempo.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func now() time.Time {
	return time.Now().UTC()
}
