package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/semillas-api/internal/application/dto"
	"github.com/jhoicas/semillas-api/internal/domain"
)

// LocalError error interno guardado para el log de la petición.
const LocalError = "error"

// writeError traduce un error de los casos de uso a status + dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	var (
		ve *domain.ValidationError
		we *domain.InsufficientWeightError
		be *domain.LedgerBoundsError
		te *domain.TransitionError
	)
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: err.Error(), Details: map[string]string{ve.Field: ve.Reason},
		})
	case errors.As(err, &we):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_WEIGHT", Message: err.Error(),
			Details: map[string]string{
				"requested_kg": dto.Kg(we.Requested),
				"available_kg": dto.Kg(we.Available),
				"deficit_kg":   dto.Kg(we.Deficit()),
			},
		})
	case errors.As(err, &be):
		code := "LEDGER_OVERFLOW"
		if be.Underflow {
			code = "LEDGER_UNDERFLOW"
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: code, Message: err.Error(),
			Details: map[string]string{
				"batch_id":  be.BatchID,
				"dimension": be.Dimension,
				"result":    be.Result.String(),
				"limit":     be.Limit.String(),
			},
		})
	case errors.As(err, &te):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INVALID_TRANSITION", Message: err.Error(),
			Details: map[string]string{"from": te.From, "to": te.To},
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrBatchClosed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BATCH_CLOSED", Message: err.Error()})
	case errors.Is(err, domain.ErrOrderNotEditable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ORDER_NOT_EDITABLE", Message: err.Error()})
	case errors.Is(err, domain.ErrBatchHasMovements):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BATCH_HAS_MOVEMENTS", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		c.Locals(LocalError, err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
