package repository

import (
	"context"

	"github.com/jhoicas/semillas-api/internal/domain/entity"
)

// CategoryRepository define el puerto de lectura para Category (DIP).
// Las categorías se administran fuera de este servicio.
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}
