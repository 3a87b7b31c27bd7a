package entity

import "github.com/shopspring/decimal"

// InventorySnapshot fila consolidada del inventario vendible. Se calcula a demanda sobre
// los lotes disponibles o parcialmente vendidos; nunca se persiste.
type InventorySnapshot struct {
	UnitID       string // vacío si no se agrupa por sede
	VarietyID    string
	VarietyName  string
	SeedName     string
	CategoryID   string
	CategoryName string
	TotalUnits   int
	TotalKg      decimal.Decimal
	BatchCount   int
}
