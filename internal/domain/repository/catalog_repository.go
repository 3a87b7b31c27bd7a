package repository

import (
	"context"

	"github.com/jhoicas/semillas-api/internal/domain/entity"
)

// VarietyRepository puerto de lectura de variedades de semilla.
type VarietyRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Variety, error)
	List(ctx context.Context) ([]*entity.Variety, error)
}

// UnitRepository puerto de lectura de sedes.
type UnitRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Unit, error)
}
