package memory

import "github.com/jhoicas/semillas-api/internal/domain/entity"

// Datos maestros de demostración para APP_STORAGE=memory.
const (
	DemoUnitNorte = "norte"
	DemoUnitSur   = "sur"
	DemoSoja      = "soja-dm4612"
	DemoTrigo     = "trigo-bag750"
	DemoPrimera   = "primera"
	DemoSegunda   = "segunda"
	DemoOriginal  = "original"
)

// SeedDemo carga dos sedes, dos variedades y tres categorías (una inactiva).
func (s *Store) SeedDemo() {
	s.SeedUnit(entity.Unit{ID: DemoUnitNorte, Name: "Planta Norte", Address: "Ruta 8 km 412"})
	s.SeedUnit(entity.Unit{ID: DemoUnitSur, Name: "Planta Sur", Address: "Ruta 3 km 650"})
	s.SeedVariety(entity.Variety{ID: DemoSoja, Name: "DM 46i20", SeedName: "Soja"})
	s.SeedVariety(entity.Variety{ID: DemoTrigo, Name: "Baguette 750", SeedName: "Trigo"})
	s.SeedCategory(entity.Category{ID: DemoPrimera, Name: "Primera multiplicación", Code: "1M", Status: entity.CategoryStatusActive})
	s.SeedCategory(entity.Category{ID: DemoSegunda, Name: "Segunda multiplicación", Code: "2M", Status: entity.CategoryStatusActive})
	s.SeedCategory(entity.Category{ID: DemoOriginal, Name: "Original", Code: "OR", Status: entity.CategoryStatusInactive})
}
