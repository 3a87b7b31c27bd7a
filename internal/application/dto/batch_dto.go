package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBatchRequest body para POST /api/intake-orders/:id/batches.
// VarietyID vacío toma la variedad de la orden.
type CreateBatchRequest struct {
	VarietyID    string          `json:"variety_id,omitempty"`
	CategoryID   string          `json:"category_id"`
	Presentation string          `json:"presentation"`
	Units        int             `json:"units"`
	KgPerUnit    decimal.Decimal `json:"kg_per_unit"`
}

// UpdateBatchRequest body para PUT /api/batches/:id (campos opcionales).
type UpdateBatchRequest struct {
	VarietyID    *string          `json:"variety_id,omitempty"`
	CategoryID   *string          `json:"category_id,omitempty"`
	Presentation *string          `json:"presentation,omitempty"`
	Units        *int             `json:"units,omitempty"`
	KgPerUnit    *decimal.Decimal `json:"kg_per_unit,omitempty"`
}

// BatchListQuery filtros de GET /api/batches.
type BatchListQuery struct {
	UnitID     string `query:"unit_id"`
	VarietyID  string `query:"variety_id"`
	CategoryID string `query:"category_id"`
	OrderID    string `query:"order_id"`
}

// BatchResponse respuesta de lote de producción.
type BatchResponse struct {
	ID                string    `json:"id"`
	IntakeOrderID     string    `json:"intake_order_id"`
	UnitID            string    `json:"unit_id"`
	VarietyID         string    `json:"variety_id"`
	CategoryID        string    `json:"category_id"`
	LotNumber         string    `json:"lot_number"`
	Presentation      string    `json:"presentation"`
	PresentationLabel string    `json:"presentation_label"`
	KgPerUnit         string    `json:"kg_per_unit"`
	OriginalUnits     int       `json:"original_units"`
	OriginalKg        string    `json:"original_kg"`
	CurrentUnits      int       `json:"current_units"`
	CurrentKg         string    `json:"current_kg"`
	Status            string    `json:"status"`
	StatusLabel       string    `json:"status_label"`
	CanEdit           bool      `json:"can_edit"`
	CanPost           bool      `json:"can_post"`
	CreatedAt         time.Time `json:"created_at"`
	CreatedBy         string    `json:"created_by"`
	UpdatedAt         time.Time `json:"updated_at"`
}
