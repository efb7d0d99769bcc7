// handlers/course_routes.go
package handlers

import (
	"github.com/DjefferBP/sis-sistema-de-inclusao-social/middleware"
	"github.com/DjefferBP/sis-sistema-de-inclusao-social/services"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes registra o catálogo de cursos. Leitura é pública; escrita
// exige autenticação.
func SetupCourseRoutes(app *fiber.App, courseService *services.CourseService) {
	cursos := app.Group("/cursos")

	cursos.Get("/", courseService.ListarCursos)
	cursos.Get("/buscar", courseService.BuscarCursos)
	cursos.Get("/areas", courseService.AreasDisponiveis)
	cursos.Get("/estatisticas", courseService.EstatisticasCursos)
	cursos.Get("/:slug", courseService.ObterCurso)

	cursos.Post("/", middleware.AuthMiddleware(), courseService.CriarCurso)
	cursos.Delete("/:id", middleware.AuthMiddleware(), courseService.DeletarCurso)
}
