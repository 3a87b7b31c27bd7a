package dto

import "github.com/shopspring/decimal"

// ErrorResponse cuerpo de error HTTP. Details lleva datos estructurados (ej. deficit_kg).
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// ChangeStatusRequest body para PATCH .../status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// Kg formatea kilos como string decimal con dos decimales ("25.00").
func Kg(d decimal.Decimal) string {
	return d.StringFixed(2)
}
