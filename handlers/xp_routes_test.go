package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/DjefferBP/sis-sistema-de-inclusao-social/models"
	"github.com/DjefferBP/sis-sistema-de-inclusao-social/services"

	"github.com/gofiber/fiber/v2"
)

func appXP(t *testing.T) *fiber.App {
	t.Helper()
	catalog, err := services.NewXPCatalog(models.AcoesXPPadrao, models.NiveisTitulosPadrao)
	if err != nil {
		t.Fatalf("catálogo padrão deveria ser válido: %v", err)
	}

	app := fiber.New()
	SetupXPRoutes(app, services.NewXPService(nil, catalog), services.NewRankingService(nil, catalog))
	return app
}

// Níveis e ranking não exigem login; o middleware do grupo /xp não pode
// interceptá-los.
func TestRotasXPPublicasSemToken(t *testing.T) {
	app := appXP(t)

	for _, rota := range []string{"/xp/niveis", "/xp/ranking"} {
		resp, err := app.Test(httptest.NewRequest("GET", rota, nil))
		if err != nil {
			t.Fatalf("falha na requisição %s: %v", rota, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("GET %s sem token deveria ser público (200), veio %d", rota, resp.StatusCode)
		}
	}
}

func TestRotasXPProtegidasExigemToken(t *testing.T) {
	app := appXP(t)

	for _, rota := range []string{"/xp/progresso", "/xp/historico", "/xp/proximo-nivel"} {
		resp, err := app.Test(httptest.NewRequest("GET", rota, nil))
		if err != nil {
			t.Fatalf("falha na requisição %s: %v", rota, err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("GET %s sem token deveria retornar 401, veio %d", rota, resp.StatusCode)
		}
	}
}
