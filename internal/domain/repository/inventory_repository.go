package repository

import (
	"context"

	"github.com/jhoicas/semillas-api/internal/domain/entity"
)

// InventoryFilter filtros de la consolidación de inventario.
type InventoryFilter struct {
	UnitID      string
	VarietyID   string
	CategoryID  string
	GroupByUnit bool
}

// InventoryRepository proyección de lectura del inventario vendible (read-only).
type InventoryRepository interface {
	// Consolidate agrupa por variedad × categoría (y sede si GroupByUnit) los lotes
	// disponibles o parcialmente vendidos.
	Consolidate(ctx context.Context, f InventoryFilter) ([]*entity.InventorySnapshot, error)
}
