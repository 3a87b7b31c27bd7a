package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/semillas-api/internal/application/dto"
	"github.com/jhoicas/semillas-api/internal/application/production"
)

// IntakeOrderHandler maneja las órdenes de ingreso (protegido).
type IntakeOrderHandler struct {
	uc *production.IntakeOrderUseCase
}

// NewIntakeOrderHandler construye el handler.
func NewIntakeOrderHandler(uc *production.IntakeOrderUseCase) *IntakeOrderHandler {
	return &IntakeOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar orden de ingreso
// @Tags         intake-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateIntakeOrderRequest  true  "order_number, variety_id, category_id, net_weight (unit_id solo admin)"
// @Success      201   {object}  dto.IntakeOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/intake-orders [post]
func (h *IntakeOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIntakeOrderRequest
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
// @Summary      Obtener orden de ingreso
// @Tags         intake-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.IntakeOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/intake-orders/{id} [get]
func (h *IntakeOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateNetWeight godoc
// @Summary      Corregir peso neto
// @Description  Solo mientras la orden no tenga lotes y no esté completada o cancelada.
// @Tags         intake-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                      true  "ID de la orden"
// @Param        body  body      dto.UpdateNetWeightRequest  true  "net_weight"
// @Success      200   {object}  dto.IntakeOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/intake-orders/{id}/weight [put]
func (h *IntakeOrderHandler) UpdateNetWeight(c *fiber.Ctx) error {
	var in dto.UpdateNetWeightRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateNetWeight(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de la orden de ingreso
// @Tags         intake-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "ID de la orden"
// @Param        body  body      dto.ChangeStatusRequest  true  "en_proceso | completado | cancelado"
// @Success      200   {object}  dto.IntakeOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/intake-orders/{id}/status [patch]
func (h *IntakeOrderHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), actorFrom(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AvailableWeight godoc
// @Summary      Peso disponible para nuevos lotes
// @Tags         intake-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.AvailableWeightResponse
// @Router       /api/intake-orders/{id}/available-weight [get]
func (h *IntakeOrderHandler) AvailableWeight(c *fiber.Ctx) error {
	out, err := h.uc.AvailableWeight(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Progress godoc
// @Summary      Avance de producción de la orden
// @Tags         intake-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionProgressResponse
// @Router       /api/intake-orders/{id}/progress [get]
func (h *IntakeOrderHandler) Progress(c *fiber.Ctx) error {
	out, err := h.uc.Progress(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BatchDefaults godoc
// @Summary      Valores propuestos para un lote nuevo
// @Tags         intake-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.BatchDefaultsResponse
// @Router       /api/intake-orders/{id}/batch-defaults [get]
func (h *IntakeOrderHandler) BatchDefaults(c *fiber.Ctx) error {
	out, err := h.uc.BatchDefaults(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
