package dto

// ConsolidateQuery filtros de GET /api/inventory/consolidated.
type ConsolidateQuery struct {
	UnitID      string `query:"unit_id"`
	VarietyID   string `query:"variety_id"`
	CategoryID  string `query:"category_id"`
	GroupByUnit bool   `query:"group_by_unit"`
}

// InventoryRowResponse fila del inventario consolidado.
type InventoryRowResponse struct {
	UnitID       string `json:"unit_id,omitempty"`
	VarietyID    string `json:"variety_id"`
	VarietyName  string `json:"variety_name"`
	SeedName     string `json:"seed_name"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	TotalUnits   int    `json:"total_units"`
	TotalKg      string `json:"total_kg"`
	TotalKgLabel string `json:"total_kg_label"`
	BatchCount   int    `json:"batch_count"`
}

// ConsolidatedInventoryResponse respuesta del consolidado con totales generales.
type ConsolidatedInventoryResponse struct {
	Rows       []InventoryRowResponse `json:"rows"`
	TotalUnits int                    `json:"total_units"`
	TotalKg    string                 `json:"total_kg"`
}
