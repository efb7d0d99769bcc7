// handlers/post_routes.go
package handlers

import (
	"errors"

	"github.com/DjefferBP/sis-sistema-de-inclusao-social/middleware"
	"github.com/DjefferBP/sis-sistema-de-inclusao-social/services"

	"github.com/gofiber/fiber/v2"
)

// SetupPostRoutes registra o feed da comunidade.
func SetupPostRoutes(app *fiber.App, postService *services.PostService) {
	posts := app.Group("/posts", middleware.AuthMiddleware())

	posts.Post("/", func(c *fiber.Ctx) error {
		var req services.NovoPost
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
		}
		criado, err := postService.CriarPost(middleware.UsuarioID(c), req)
		if err != nil {
			return erroPost(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(criado)
	})

	posts.Get("/", func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 20)
		offset := c.QueryInt("offset", 0)

		if categoria := c.Query("categoria"); categoria != "" {
			lista, err := postService.ListarPostsPorCategoria(categoria, limit, offset, middleware.UsuarioID(c))
			if err != nil {
				return erroPost(c, err)
			}
			return c.JSON(fiber.Map{"posts": lista, "total": len(lista)})
		}

		pagina, err := postService.ListarPosts(limit, offset, middleware.UsuarioID(c))
		if err != nil {
			return erroPost(c, err)
		}
		return c.JSON(pagina)
	})

	posts.Get("/usuario/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
		}
		lista, err := postService.ListarPostsUsuario(uint(id), c.QueryInt("limit", 20), c.QueryInt("offset", 0), middleware.UsuarioID(c))
		if err != nil {
			return erroPost(c, err)
		}
		return c.JSON(fiber.Map{"posts": lista, "total": len(lista)})
	})

	posts.Get("/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
		}
		post, err := postService.ObterPost(uint(id), middleware.UsuarioID(c))
		if err != nil {
			return erroPost(c, err)
		}
		return c.JSON(post)
	})

	posts.Get("/:id/estatisticas", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
		}
		stats, err := postService.EstatisticasPost(uint(id), middleware.UsuarioID(c))
		if err != nil {
			return erroPost(c, err)
		}
		return c.JSON(stats)
	})

	posts.Post("/:id/curtir", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
		}
		resultado, err := postService.CurtirPost(uint(id), middleware.UsuarioID(c))
		if err != nil {
			return erroPost(c, err)
		}
		return c.JSON(resultado)
	})

	posts.Delete("/:id/curtir", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
		}
		resultado, err := postService.DescurtirPost(uint(id), middleware.UsuarioID(c))
		if err != nil {
			return erroPost(c, err)
		}
		return c.JSON(resultado)
	})

	posts.Delete("/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
		}
		if err := postService.DeletarPost(uint(id), middleware.UsuarioID(c)); err != nil {
			return erroPost(c, err)
		}
		return c.JSON(fiber.Map{"mensagem": "Post removido com sucesso"})
	})
}

func erroPost(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrPostNaoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post não encontrado"})
	case errors.Is(err, services.ErrJaCurtiu):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Você já curtiu este post"})
	case errors.Is(err, services.ErrNaoCurtiu):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Você não curtiu este post"})
	case errors.Is(err, services.ErrSemPermissao):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Você não tem permissão para esta operação"})
	case errors.Is(err, services.ErrUsuarioNaoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Usuário não encontrado"})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}
