// handlers/user_routes.go
package handlers

import (
	"errors"

	"github.com/DjefferBP/sis-sistema-de-inclusao-social/middleware"
	"github.com/DjefferBP/sis-sistema-de-inclusao-social/services"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes registra perfil, diretório, grupos de vulnerabilidade e
// foto de perfil.
func SetupUserRoutes(app *fiber.App, userService *services.UserService) {
	// Catálogo de grupos é público (o cadastro precisa dele antes do login);
	// registrado antes do grupo para escapar do middleware de prefixo.
	app.Get("/usuarios/grupos-vulnerabilidade/disponiveis", func(c *fiber.Ctx) error {
		grupos, err := userService.ListarGruposVulnerabilidade()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao listar grupos"})
		}
		return c.JSON(grupos)
	})

	usuarios := app.Group("/usuarios", middleware.AuthMiddleware())

	usuarios.Get("/me", func(c *fiber.Ctx) error {
		perfil, err := userService.ObterPerfil(middleware.UsuarioID(c))
		if err != nil {
			return erroUsuario(c, err)
		}
		return c.JSON(perfil)
	})

	usuarios.Put("/me", func(c *fiber.Ctx) error {
		var req services.AtualizacaoUsuario
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
		}
		usuario, err := userService.AtualizarPerfil(middleware.UsuarioID(c), req)
		if err != nil {
			if errors.Is(err, services.ErrCEPInvalido) || errors.Is(err, services.ErrCEPNaoEncontrado) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return erroUsuario(c, err)
		}
		return c.JSON(usuario)
	})

	usuarios.Get("/", func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 100)
		offset := c.QueryInt("offset", 0)
		lista, err := userService.ListarUsuarios(limit, offset)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao listar usuários"})
		}
		return c.JSON(fiber.Map{"usuarios": lista, "total": len(lista)})
	})

	usuarios.Get("/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
		}
		perfil, err := userService.ObterPerfil(uint(id))
		if err != nil {
			return erroUsuario(c, err)
		}
		return c.JSON(perfil)
	})

	usuarios.Post("/me/foto", func(c *fiber.Ctx) error {
		arquivo, err := c.FormFile("foto")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Arquivo 'foto' é obrigatório"})
		}
		url, err := userService.AtualizarFotoPerfil(middleware.UsuarioID(c), arquivo)
		if err != nil {
			return erroUsuario(c, err)
		}
		return c.JSON(fiber.Map{
			"foto_perfil": url,
			"mensagem":    "Foto de perfil atualizada!",
		})
	})

	usuarios.Delete("/me/foto", func(c *fiber.Ctx) error {
		if err := userService.RemoverFotoPerfil(middleware.UsuarioID(c)); err != nil {
			return erroUsuario(c, err)
		}
		return c.JSON(fiber.Map{"mensagem": "Foto de perfil removida!"})
	})

	usuarios.Delete("/me", func(c *fiber.Ctx) error {
		if err := userService.DeletarUsuario(middleware.UsuarioID(c)); err != nil {
			return erroUsuario(c, err)
		}
		return c.JSON(fiber.Map{"mensagem": "Conta desativada com sucesso"})
	})
}

func erroUsuario(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrUsuarioNaoEncontrado) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Usuário não encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro interno"})
}
