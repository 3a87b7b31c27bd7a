package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostMovementRequest body para POST /api/batches/:id/movements.
// entrada/salida/merma: cantidades positivas, el tipo define el signo.
// ajuste: unidades y kilos con signo. Kg vacío se deriva de unidades × kg por unidad.
type PostMovementRequest struct {
	Type  string          `json:"type"`
	Units int             `json:"units"`
	Kg    decimal.Decimal `json:"kg"`
	Note  string          `json:"note,omitempty"`
}

// MovementResponse asiento del libro de un lote.
type MovementResponse struct {
	ID              string    `json:"id"`
	BatchID         string    `json:"batch_id"`
	Sequence        int       `json:"sequence"`
	Type            string    `json:"type"`
	TypeLabel       string    `json:"type_label"`
	UnitsDelta      int       `json:"units_delta"`
	KgDelta         string    `json:"kg_delta"`
	BalanceUnits    int       `json:"balance_units"`
	BalanceKg       string    `json:"balance_kg"`
	OutgoingOrderID string    `json:"outgoing_order_id,omitempty"`
	Note            string    `json:"note,omitempty"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// MovementSummaryResponse totales del libro de un lote.
type MovementSummaryResponse struct {
	BatchID       string `json:"batch_id"`
	Count         int    `json:"count"`
	EntradasUnits int    `json:"entradas_units"`
	EntradasKg    string `json:"entradas_kg"`
	SalidasUnits  int    `json:"salidas_units"`
	SalidasKg     string `json:"salidas_kg"`
	BalanceUnits  int    `json:"balance_units"`
	BalanceKg     string `json:"balance_kg"`
	Consistent    bool   `json:"consistent"`
}
