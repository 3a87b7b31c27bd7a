package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/semillas-api/internal/application/dto"
	"github.com/jhoicas/semillas-api/internal/application/production"
)

// OutgoingOrderHandler órdenes de salida (protegido).
type OutgoingOrderHandler struct {
	uc *production.OutgoingOrderUseCase
}

// NewOutgoingOrderHandler construye el handler.
func NewOutgoingOrderHandler(uc *production.OutgoingOrderUseCase) *OutgoingOrderHandler {
	return &OutgoingOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar orden de salida
// @Description  Cada línea registra una salida en su lote; si una falla no se aplica ninguna.
// @Tags         outgoing-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateOutgoingOrderRequest  true  "lines[{batch_id, units}]"
// @Success      201   {object}  dto.OutgoingOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/outgoing-orders [post]
func (h *OutgoingOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOutgoingOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de salida
// @Tags         outgoing-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.OutgoingOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/outgoing-orders/{id} [get]
func (h *OutgoingOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Anular orden de salida
// @Description  Registra una entrada compensatoria por cada salida de la orden.
// @Tags         outgoing-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.OutgoingOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/outgoing-orders/{id}/cancel [post]
func (h *OutgoingOrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden de salida
// @Description  Compensa sus salidas si sigue completada y borra la orden.
// @Tags         outgoing-orders
// @Security     Bearer
// @Param        id   path  string  true  "ID de la orden"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/outgoing-orders/{id} [delete]
func (h *OutgoingOrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actorFrom(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
