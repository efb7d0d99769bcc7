// handlers/chat_routes.go
package handlers

import (
	"errors"

	"github.com/DjefferBP/sis-sistema-de-inclusao-social/middleware"
	"github.com/DjefferBP/sis-sistema-de-inclusao-social/services"

	"github.com/gofiber/fiber/v2"
)

// SetupChatRoutes registra as conversas 1:1.
func SetupChatRoutes(app *fiber.App, chatService *services.ChatService) {
	chat := app.Group("/chat", middleware.AuthMiddleware())

	chat.Post("/conversas", func(c *fiber.Ctx) error {
		var req struct {
			UsuarioID uint `json:"usuario_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
		}
		resultado, err := chatService.IniciarConversa(middleware.UsuarioID(c), req.UsuarioID)
		if err != nil {
			return erroChat(c, err)
		}
		status := fiber.StatusOK
		if resultado.Criada {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(resultado)
	})

	chat.Get("/conversas", func(c *fiber.Ctx) error {
		conversas, err := chatService.ListarConversas(middleware.UsuarioID(c))
		if err != nil {
			return erroChat(c, err)
		}
		return c.JSON(fiber.Map{"conversas": conversas, "total": len(conversas)})
	})

	chat.Post("/conversas/:id/mensagens", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
		}
		var req struct {
			Conteudo string `json:"conteudo"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
		}
		enviada, err := chatService.EnviarMensagem(uint(id), middleware.UsuarioID(c), req.Conteudo)
		if err != nil {
			return erroChat(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(enviada)
	})

	chat.Get("/conversas/:id/mensagens", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
		}
		mensagens, err := chatService.ListarMensagens(uint(id), middleware.UsuarioID(c),
			c.QueryInt("limit", 50), c.QueryInt("offset", 0))
		if err != nil {
			return erroChat(c, err)
		}
		return c.JSON(fiber.Map{"mensagens": mensagens, "total": len(mensagens)})
	})

	chat.Get("/conversas/:id/completa", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
		}
		completa, err := chatService.ObterConversaCompleta(uint(id), middleware.UsuarioID(c))
		if err != nil {
			return erroChat(c, err)
		}
		return c.JSON(completa)
	})

	chat.Get("/buscar-conversa/:usuario_id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("usuario_id")
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
		}
		conversa, err := chatService.BuscarConversaPorUsuarios(middleware.UsuarioID(c), uint(id))
		if err != nil {
			return erroChat(c, err)
		}
		return c.JSON(fiber.Map{"conversa": conversa})
	})

	chat.Get("/nao-lidas", func(c *fiber.Ctx) error {
		total, err := chatService.ContarNaoLidas(middleware.UsuarioID(c))
		if err != nil {
			return erroChat(c, err)
		}
		return c.JSON(fiber.Map{"nao_lidas": total})
	})
}

func erroChat(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrConversaNaoEncontrada):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversa não encontrada"})
	case errors.Is(err, services.ErrUsuarioNaoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Usuário não encontrado"})
	case errors.Is(err, services.ErrConversaConsigoMesmo):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Não é possível iniciar conversa consigo mesmo"})
	case errors.Is(err, services.ErrNaoParticipante):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Você não participa desta conversa"})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}
