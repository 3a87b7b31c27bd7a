package production

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/semillas-api/internal/domain/entity"
)

// IsSellable lotes que cuentan en el inventario consolidado.
func IsSellable(status string) bool {
	return status == entity.BatchStatusDisponible || status == entity.BatchStatusParcialmenteVendido
}

type snapshotKey struct {
	unit, variety, category string
}

// Consolidate agrupa los lotes vendibles por variedad × categoría (y sede si groupByUnit).
// Los lotes que no son vendibles se ignoran. El resultado sale ordenado por semilla,
// variedad, categoría y sede para que dos llamadas sobre el mismo estado coincidan.
func Consolidate(
	batches []*entity.ProductionBatch,
	varieties map[string]*entity.Variety,
	categories map[string]*entity.Category,
	groupByUnit bool,
) []*entity.InventorySnapshot {
	groups := make(map[snapshotKey]*entity.InventorySnapshot)
	for _, b := range batches {
		if !IsSellable(b.Status) {
			continue
		}
		k := snapshotKey{variety: b.VarietyID, category: b.CategoryID}
		if groupByUnit {
			k.unit = b.UnitID
		}
		s, ok := groups[k]
		if !ok {
			s = &entity.InventorySnapshot{
				UnitID:     k.unit,
				VarietyID:  b.VarietyID,
				CategoryID: b.CategoryID,
				TotalKg:    decimal.Zero,
			}
			if v := varieties[b.VarietyID]; v != nil {
				s.VarietyName = v.Name
				s.SeedName = v.SeedName
			}
			if c := categories[b.CategoryID]; c != nil {
				s.CategoryName = c.Name
			}
			groups[k] = s
		}
		s.TotalUnits += b.CurrentUnits
		s.TotalKg = s.TotalKg.Add(b.CurrentKg)
		s.BatchCount++
	}

	out := make([]*entity.InventorySnapshot, 0, len(groups))
	for _, s := range groups {
		out = append(out, s)
	}
	SortSnapshots(out)
	return out
}

// SortSnapshots orden estable del consolidado.
func SortSnapshots(rows []*entity.InventorySnapshot) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.SeedName != b.SeedName {
			return a.SeedName < b.SeedName
		}
		if a.VarietyName != b.VarietyName {
			return a.VarietyName < b.VarietyName
		}
		if a.VarietyID != b.VarietyID {
			return a.VarietyID < b.VarietyID
		}
		if a.CategoryName != b.CategoryName {
			return a.CategoryName < b.CategoryName
		}
		if a.CategoryID != b.CategoryID {
			return a.CategoryID < b.CategoryID
		}
		return a.UnitID < b.UnitID
	})
}
