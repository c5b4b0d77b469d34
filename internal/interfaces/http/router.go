package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orfebre/billgen-api/internal/application/billing"
	"github.com/orfebre/billgen-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	GenerateBill *billing.GenerateBillUseCase
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Bills (público: el servicio es stateless y de un solo endpoint)
	bills := api.Group("/bills")
	billHandler := NewBillHandler(deps.GenerateBill, deps.Log)
	bills.Post("/", billHandler.Generate)
}
