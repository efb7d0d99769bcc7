package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func appProtegido() *fiber.App {
	app := fiber.New()
	app.Get("/protegido", AuthMiddleware(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": UsuarioID(c)})
	})
	return app
}

func TestAuthMiddlewareTokenValido(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	token, err := GerarTokenAcesso(42)
	if err != nil {
		t.Fatalf("falha ao gerar token: %v", err)
	}

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := appProtegido().Test(req)
	if err != nil {
		t.Fatalf("falha na requisição: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, esperado 200", resp.StatusCode)
	}
}

func TestAuthMiddlewareSemToken(t *testing.T) {
	resp, err := appProtegido().Test(httptest.NewRequest("GET", "/protegido", nil))
	if err != nil {
		t.Fatalf("falha na requisição: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, esperado 401", resp.StatusCode)
	}
}

func TestAuthMiddlewareTokenInvalido(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer nao-e-um-jwt")

	resp, err := appProtegido().Test(req)
	if err != nil {
		t.Fatalf("falha na requisição: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, esperado 401", resp.StatusCode)
	}
}

func TestAuthMiddlewareSegredoErrado(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	token, err := GerarTokenAcesso(42)
	if err != nil {
		t.Fatalf("falha ao gerar token: %v", err)
	}

	t.Setenv("JWT_SECRET", "outro-segredo")
	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := appProtegido().Test(req)
	if err != nil {
		t.Fatalf("falha na requisição: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, esperado 401", resp.StatusCode)
	}
}
