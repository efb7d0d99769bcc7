// handlers/xp_routes.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/DjefferBP/sis-sistema-de-inclusao-social/middleware"
	"github.com/DjefferBP/sis-sistema-de-inclusao-social/services"

	"github.com/gofiber/fiber/v2"
)

// SetupXPRoutes liga o motor de XP ao HTTP: progresso, histórico, níveis,
// ranking e títulos.
func SetupXPRoutes(app *fiber.App, xpService *services.XPService, rankingService *services.RankingService) {
	// Tabela de níveis e ranking são públicos. Registrados antes do grupo
	// porque o middleware do grupo casa por prefixo e pegaria /xp/* inteiro.
	app.Get("/xp/niveis", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"niveis": xpService.ListarNiveis()})
	})

	app.Get("/xp/ranking", func(c *fiber.Ctx) error {
		ranking, atualizadoEm := rankingService.Snapshot()
		return c.JSON(fiber.Map{
			"ranking":       ranking,
			"atualizado_em": atualizadoEm,
		})
	})

	xp := app.Group("/xp", middleware.AuthMiddleware())

	xp.Get("/progresso", func(c *fiber.Ctx) error {
		progresso, err := xpService.GetProgresso(middleware.UsuarioID(c))
		if err != nil {
			return erroXP(c, err)
		}
		return c.JSON(progresso)
	})

	xp.Get("/historico", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "50"))
		historico, err := xpService.GetHistorico(middleware.UsuarioID(c), limit)
		if err != nil {
			return erroXP(c, err)
		}
		return c.JSON(fiber.Map{
			"historico": historico,
			"total":     len(historico),
		})
	})

	xp.Get("/proximo-nivel", func(c *fiber.Ctx) error {
		resumo, err := xpService.CalcularProximoNivel(middleware.UsuarioID(c))
		if err != nil {
			return erroXP(c, err)
		}
		return c.JSON(resumo)
	})

	xp.Post("/titulos/equipar", func(c *fiber.Ctx) error {
		var req struct {
			TituloID uint `json:"titulo_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
		}
		resultado, err := xpService.EquiparTitulo(middleware.UsuarioID(c), req.TituloID)
		if err != nil {
			return erroXP(c, err)
		}
		return c.JSON(resultado)
	})

	xp.Delete("/titulos/equipar", func(c *fiber.Ctx) error {
		if err := xpService.RemoverTitulo(middleware.UsuarioID(c)); err != nil {
			return erroXP(c, err)
		}
		return c.JSON(fiber.Map{"mensagem": "Título removido com sucesso!"})
	})

}

// erroXP traduz os erros sentinela do motor de XP em status HTTP.
func erroXP(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUsuarioNaoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Usuário não encontrado"})
	case errors.Is(err, services.ErrTituloNaoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Título não encontrado"})
	case errors.Is(err, services.ErrNivelInsuficiente):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAcaoDesconhecida):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Ação de XP desconhecida"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro interno"})
}
