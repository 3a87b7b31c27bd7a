package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/semillas-api/internal/application/dto"
	"github.com/jhoicas/semillas-api/internal/application/production"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InventoryHandler inventario consolidado (protegido).
type InventoryHandler struct {
	uc *production.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *production.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Consolidated godoc
// @Summary      Inventario consolidado
// @Description  Lotes disponibles o parcialmente vendidos agrupados por variedad × categoría.
// @Description  Solo admin puede pedir otra sede o agrupar por sede.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        unit_id        query  string  false  "Sede"
// @Param        variety_id     query  string  false  "Variedad"
// @Param        category_id    query  string  false  "Categoría"
// @Param        group_by_unit  query  bool    false  "Agrupar también por sede"
// @Success      200  {object}  dto.ConsolidatedInventoryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/consolidated [get]
func (h *InventoryHandler) Consolidated(c *fiber.Ctx) error {
	var q dto.ConsolidateQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Consolidate(c.UserContext(), actorFrom(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Descargar inventario consolidado (.xlsx)
// @Tags         inventory
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        unit_id        query  string  false  "Sede"
// @Param        variety_id     query  string  false  "Variedad"
// @Param        category_id    query  string  false  "Categoría"
// @Param        group_by_unit  query  bool    false  "Agrupar también por sede"
// @Success      200  {file}    file
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/consolidated/export [get]
func (h *InventoryHandler) Export(c *fiber.Ctx) error {
	var q dto.ConsolidateQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	data, err := h.uc.Export(c.UserContext(), actorFrom(c), q)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventario.xlsx"`)
	return c.Send(data)
}
