package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/semillas-api/internal/application/production"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	IntakeUC    *production.IntakeOrderUseCase
	BatchUC     *production.BatchUseCase
	LedgerUC    *production.LedgerUseCase
	OutgoingUC  *production.OutgoingOrderUseCase
	InventoryUC *production.InventoryUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	protected := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	planta := RequireRole(entity.RoleAdmin, entity.RoleOperador)
	ventas := RequireRole(entity.RoleAdmin, entity.RoleOperador, entity.RoleVendedor)

	// Órdenes de ingreso
	intake := protected.Group("/intake-orders")
	intakeHandler := NewIntakeOrderHandler(deps.IntakeUC)
	batchHandler := NewBatchHandler(deps.BatchUC)
	intake.Post("/", planta, intakeHandler.Create)
	intake.Get("/:id", intakeHandler.GetByID)
	intake.Put("/:id/weight", planta, intakeHandler.UpdateNetWeight)
	intake.Patch("/:id/status", planta, intakeHandler.ChangeStatus)
	intake.Get("/:id/available-weight", intakeHandler.AvailableWeight)
	intake.Get("/:id/progress", intakeHandler.Progress)
	intake.Get("/:id/batch-defaults", intakeHandler.BatchDefaults)
	intake.Post("/:id/batches", planta, batchHandler.Create)

	// Lotes y su libro
	batches := protected.Group("/batches")
	movementHandler := NewMovementHandler(deps.LedgerUC)
	batches.Get("/", batchHandler.List)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Put("/:id", planta, batchHandler.Update)
	batches.Patch("/:id/status", ventas, batchHandler.ChangeStatus)
	batches.Delete("/:id", planta, batchHandler.Delete)
	batches.Get("/:id/movements/summary", movementHandler.Summary)
	batches.Get("/:id/movements", movementHandler.List)
	batches.Post("/:id/movements", planta, movementHandler.Post)

	// Inventario consolidado
	inventory := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventory.Get("/consolidated", inventoryHandler.Consolidated)
	inventory.Get("/consolidated/export", inventoryHandler.Export)

	// Órdenes de salida
	outgoing := protected.Group("/outgoing-orders")
	outgoingHandler := NewOutgoingOrderHandler(deps.OutgoingUC)
	outgoing.Post("/", ventas, outgoingHandler.Create)
	outgoing.Get("/:id", outgoingHandler.GetByID)
	outgoing.Post("/:id/cancel", ventas, outgoingHandler.Cancel)
	outgoing.Delete("/:id", ventas, outgoingHandler.Delete)
}
