// handlers/trabalhos_routes.go
package handlers

import (
	"github.com/DjefferBP/sis-sistema-de-inclusao-social/middleware"
	"github.com/DjefferBP/sis-sistema-de-inclusao-social/services"

	"github.com/gofiber/fiber/v2"
)

// SetupTrabalhosRoutes registra a busca de vagas.
func SetupTrabalhosRoutes(app *fiber.App, trabalhosService *services.TrabalhosService) {
	trabalhos := app.Group("/trabalhos", middleware.AuthMiddleware())

	trabalhos.Post("/vagas", trabalhosService.ConsultarVagas)
}
