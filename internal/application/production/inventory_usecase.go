package production

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/semillas-api/internal/application/dto"
	"github.com/jhoicas/semillas-api/internal/domain"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/domain/repository"
	"github.com/jhoicas/semillas-api/pkg/logger"
)

// InventoryUseCase inventario consolidado (solo lectura).
type InventoryUseCase struct {
	repos    Repos
	exporter InventoryExporter
	log      *logger.Logger
}

// NewInventoryUseCase construye el caso de uso. exporter puede ser nil si no se expone la descarga.
func NewInventoryUseCase(repos Repos, exporter InventoryExporter, log *logger.Logger) *InventoryUseCase {
	return &InventoryUseCase{repos: repos, exporter: exporter, log: log.Named("inventario")}
}

// Consolidate agrupa el inventario vendible por variedad × categoría (y sede si se pide).
func (uc *InventoryUseCase) Consolidate(ctx context.Context, actor entity.Actor, q dto.ConsolidateQuery) (*dto.ConsolidatedInventoryResponse, error) {
	rows, err := uc.snapshot(ctx, actor, q)
	if err != nil {
		return nil, err
	}
	resp := &dto.ConsolidatedInventoryResponse{Rows: make([]dto.InventoryRowResponse, 0, len(rows))}
	total := decimal.Zero
	for _, s := range rows {
		resp.Rows = append(resp.Rows, toInventoryRow(s))
		resp.TotalUnits += s.TotalUnits
		total = total.Add(s.TotalKg)
	}
	resp.TotalKg = dto.Kg(total)
	return resp, nil
}

// Export consolidado como archivo (XLSX).
func (uc *InventoryUseCase) Export(ctx context.Context, actor entity.Actor, q dto.ConsolidateQuery) ([]byte, error) {
	if uc.exporter == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.snapshot(ctx, actor, q)
	if err != nil {
		return nil, err
	}
	data, err := uc.exporter.Export(rows)
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Int("rows", len(rows)).Int("bytes", len(data)).Msg("consolidado exportado")
	return data, nil
}

// snapshot aplica el alcance: sin rol admin solo se ve la sede propia.
func (uc *InventoryUseCase) snapshot(ctx context.Context, actor entity.Actor, q dto.ConsolidateQuery) ([]*entity.InventorySnapshot, error) {
	f := repository.InventoryFilter{
		UnitID:      q.UnitID,
		VarietyID:   q.VarietyID,
		CategoryID:  q.CategoryID,
		GroupByUnit: q.GroupByUnit,
	}
	if !actor.IsAdmin() {
		if actor.UnitID == "" || (q.UnitID != "" && q.UnitID != actor.UnitID) {
			return nil, domain.ErrForbidden
		}
		f.UnitID = actor.UnitID
	}
	return uc.repos.Inventory.Consolidate(ctx, f)
}
