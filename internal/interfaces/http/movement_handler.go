package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/semillas-api/internal/application/dto"
	"github.com/jhoicas/semillas-api/internal/application/production"
)

// MovementHandler libro de movimientos de un lote (protegido).
type MovementHandler struct {
	uc *production.LedgerUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *production.LedgerUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Post godoc
// @Summary      Registrar movimiento
// @Description  entrada/salida/merma con cantidades positivas; ajuste con signo. Un saldo fuera de rango
// @Description  responde 422 LEDGER_UNDERFLOW o LEDGER_OVERFLOW y no deja asiento.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "ID del lote"
// @Param        body  body      dto.PostMovementRequest  true  "type, units, kg, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/movements [post]
func (h *MovementHandler) Post(c *fiber.Ctx) error {
	var in dto.PostMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Post(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Movimientos del lote
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del lote"
// @Success      200  {array}   dto.MovementResponse
// @Router       /api/batches/{id}/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen del libro del lote
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del lote"
// @Success      200  {object}  dto.MovementSummaryResponse
// @Router       /api/batches/{id}/movements/summary [get]
func (h *MovementHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
