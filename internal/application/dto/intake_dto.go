package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateIntakeOrderRequest body para POST /api/intake-orders.
// UnitID solo lo puede indicar un admin; el resto usa la sede del token.
type CreateIntakeOrderRequest struct {
	OrderNumber string          `json:"order_number"`
	UnitID      string          `json:"unit_id,omitempty"`
	VarietyID   string          `json:"variety_id"`
	CategoryID  string          `json:"category_id"`
	NetWeight   decimal.Decimal `json:"net_weight"`
}

// UpdateNetWeightRequest body para PUT /api/intake-orders/:id/weight.
type UpdateNetWeightRequest struct {
	NetWeight decimal.Decimal `json:"net_weight"`
}

// IntakeOrderResponse respuesta de orden de ingreso.
type IntakeOrderResponse struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"order_number"`
	UnitID      string    `json:"unit_id"`
	VarietyID   string    `json:"variety_id"`
	CategoryID  string    `json:"category_id"`
	NetWeight   string    `json:"net_weight"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AvailableWeightResponse peso disponible de una orden.
type AvailableWeightResponse struct {
	OrderID     string `json:"order_id"`
	NetWeight   string `json:"net_weight"`
	AllocatedKg string `json:"allocated_kg"`
	AvailableKg string `json:"available_kg"`
}

// ProductionProgressResponse avance de producción de una orden.
type ProductionProgressResponse struct {
	OrderID      string `json:"order_id"`
	OrderNumber  string `json:"order_number"`
	Status       string `json:"status"`
	NetWeight    string `json:"net_weight"`
	ProducedKg   string `json:"produced_kg"`
	AvailableKg  string `json:"available_kg"`
	PercentUsed  string `json:"percent_used"`
	BatchCount   int    `json:"batch_count"`
	ProducedText string `json:"produced_text"` // "1.234,50 kg"
}

// BatchDefaultsResponse propuesta para un lote nuevo: variedad y categoría de la orden
// (la categoría solo si está activa) y el peso que queda por asignar.
type BatchDefaultsResponse struct {
	OrderID      string `json:"order_id"`
	VarietyID    string `json:"variety_id"`
	CategoryID   string `json:"category_id,omitempty"`
	Presentation string `json:"presentation"`
	AvailableKg  string `json:"available_kg"`
}
