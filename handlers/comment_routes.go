// handlers/comment_routes.go
package handlers

import (
	"errors"

	"github.com/DjefferBP/sis-sistema-de-inclusao-social/middleware"
	"github.com/DjefferBP/sis-sistema-de-inclusao-social/services"

	"github.com/gofiber/fiber/v2"
)

// SetupCommentRoutes registra os comentários do feed.
func SetupCommentRoutes(app *fiber.App, commentService *services.CommentService) {
	comentarios := app.Group("/comentarios", middleware.AuthMiddleware())

	comentarios.Post("/", func(c *fiber.Ctx) error {
		var req services.NovoComentario
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
		}
		criado, err := commentService.CriarComentario(middleware.UsuarioID(c), req)
		if err != nil {
			return erroComentario(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(criado)
	})

	comentarios.Get("/post/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
		}
		lista, err := commentService.ListarPorPost(uint(id), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
		if err != nil {
			return erroComentario(c, err)
		}
		return c.JSON(lista)
	})

	comentarios.Get("/usuario/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
		}
		lista, err := commentService.ListarPorUsuario(uint(id), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
		if err != nil {
			return erroComentario(c, err)
		}
		return c.JSON(fiber.Map{"comentarios": lista, "total": len(lista)})
	})

	comentarios.Post("/:id/curtir", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
		}
		resultado, err := commentService.CurtirComentario(uint(id), middleware.UsuarioID(c))
		if err != nil {
			return erroComentario(c, err)
		}
		return c.JSON(resultado)
	})

	comentarios.Delete("/:id/curtir", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
		}
		resultado, err := commentService.DescurtirComentario(uint(id))
		if err != nil {
			return erroComentario(c, err)
		}
		return c.JSON(resultado)
	})

	comentarios.Delete("/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
		}
		if err := commentService.DeletarComentario(uint(id), middleware.UsuarioID(c)); err != nil {
			return erroComentario(c, err)
		}
		return c.JSON(fiber.Map{"mensagem": "Comentário removido com sucesso"})
	})
}

func erroComentario(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrComentarioNaoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Comentário não encontrado"})
	case errors.Is(err, services.ErrPostNaoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post não encontrado"})
	case errors.Is(err, services.ErrSemPermissao):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Você não tem permissão para esta operação"})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}
