// handlers/auth_routes.go
package handlers

import (
	"errors"
	"log"

	"github.com/DjefferBP/sis-sistema-de-inclusao-social/middleware"
	"github.com/DjefferBP/sis-sistema-de-inclusao-social/services"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes registra cadastro e login.
func SetupAuthRoutes(app *fiber.App, userService *services.UserService) {
	auth := app.Group("/auth")

	auth.Post("/registrar", func(c *fiber.Ctx) error {
		var req services.RegistroUsuario
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
		}

		usuario, xpResultado, err := userService.RegistrarUsuario(req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmailJaCadastrado):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email já cadastrado"})
			case errors.Is(err, services.ErrCEPInvalido), errors.Is(err, services.ErrCEPNaoEncontrado):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			log.Printf("❌ [AUTH] falha no cadastro: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		token, err := middleware.GerarTokenAcesso(usuario.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Falha ao gerar token"})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"usuario":      usuario,
			"xp":           xpResultado,
			"access_token": token,
			"token_type":   "bearer",
		})
	})

	auth.Post("/login", func(c *fiber.Ctx) error {
		var req struct {
			Email string `json:"email"`
			Senha string `json:"senha"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
		}

		usuario, err := userService.AutenticarUsuario(req.Email, req.Senha)
		if err != nil {
			if errors.Is(err, services.ErrCredenciaisInvalidas) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Email ou senha incorretos"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao autenticar"})
		}

		token, err := middleware.GerarTokenAcesso(usuario.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Falha ao gerar token"})
		}

		return c.JSON(fiber.Map{
			"usuario":      usuario,
			"access_token": token,
			"token_type":   "bearer",
		})
	})
}
