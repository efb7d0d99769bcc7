// middleware/auth.go
package middleware

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func segredoJWT() []byte {
	segredo := os.Getenv("JWT_SECRET")
	if segredo == "" {
		segredo = "troque-este-segredo-em-producao"
	}
	return []byte(segredo)
}

// GerarTokenAcesso emite o JWT de sessão do usuário, válido por 7 dias.
func GerarTokenAcesso(usuarioID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", usuarioID),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(7 * 24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(segredoJWT())
}

// AuthMiddleware valida o bearer token e injeta user_id no contexto.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cabecalho := c.Get("Authorization")
		if !strings.HasPrefix(cabecalho, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token de acesso ausente",
			})
		}

		bruto := strings.TrimPrefix(cabecalho, "Bearer ")
		token, err := jwt.Parse(bruto, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
			}
			return segredoJWT(), nil
		})
		if err != nil || !token.Valid {
			log.Printf("❌ [AUTH] token rejeitado em %s: %v", c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token inválido ou expirado",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token inválido ou expirado",
			})
		}
		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token inválido ou expirado",
			})
		}

		var usuarioID uint
		if _, err := fmt.Sscanf(sub, "%d", &usuarioID); err != nil || usuarioID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token inválido ou expirado",
			})
		}

		c.Locals("user_id", usuarioID)
		return c.Next()
	}
}

// UsuarioID lê o id injetado pelo AuthMiddleware.
func UsuarioID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("user_id").(uint); ok {
		return id
	}
	return 0
}
