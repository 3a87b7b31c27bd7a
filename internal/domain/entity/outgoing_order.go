package entity

import "time"

// Estados de una orden de salida.
const (
	OutgoingStatusCompletada = "completada"
	OutgoingStatusCancelada  = "cancelada"
)

// OutgoingOrder orden de salida (venta). Cada línea genera una salida en el libro del lote.
type OutgoingOrder struct {
	ID          string
	OrderNumber string
	UnitID      string
	Status      string
	Note        string
	Lines       []OutgoingOrderLine
	CreatedAt   time.Time
	CreatedBy   string
	CancelledAt *time.Time
}

// OutgoingOrderLine línea de una orden de salida.
type OutgoingOrderLine struct {
	ID              string
	OutgoingOrderID string
	BatchID         string
	Units           int
	MovementID      string // salida generada por la línea
}
