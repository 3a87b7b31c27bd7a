package dto

import "time"

// OutgoingLineRequest línea de una orden de salida.
type OutgoingLineRequest struct {
	BatchID string `json:"batch_id"`
	Units   int    `json:"units"`
}

// CreateOutgoingOrderRequest body para POST /api/outgoing-orders.
// OrderNumber vacío genera uno correlativo; UnitID solo lo indica un admin.
type CreateOutgoingOrderRequest struct {
	OrderNumber string                `json:"order_number,omitempty"`
	UnitID      string                `json:"unit_id,omitempty"`
	Note        string                `json:"note,omitempty"`
	Lines       []OutgoingLineRequest `json:"lines"`
}

// OutgoingLineResponse línea con la salida que generó.
type OutgoingLineResponse struct {
	ID         string `json:"id"`
	BatchID    string `json:"batch_id"`
	Units      int    `json:"units"`
	MovementID string `json:"movement_id"`
}

// OutgoingOrderResponse respuesta de orden de salida.
type OutgoingOrderResponse struct {
	ID          string                 `json:"id"`
	OrderNumber string                 `json:"order_number"`
	UnitID      string                 `json:"unit_id"`
	Status      string                 `json:"status"`
	Note        string                 `json:"note,omitempty"`
	Lines       []OutgoingLineResponse `json:"lines"`
	CreatedAt   time.Time              `json:"created_at"`
	CreatedBy   string                 `json:"created_by"`
	CancelledAt *time.Time             `json:"cancelled_at,omitempty"`
}
