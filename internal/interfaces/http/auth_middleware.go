package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/andea-legal/lawyers-api/internal/application/dto"
	"github.com/andea-legal/lawyers-api/pkg/jwt"
)

// Locals keys para la identidad verificada en Fiber.
const (
	LocalUID   = "uid"
	LocalEmail = "email"
)

// authCookieName cookie donde el frontend deja el token de identidad.
// Se consulta ANTES que el header Authorization; si ambas vienen, gana la cookie.
const authCookieName = "token"

// AuthMiddleware verifica el token de identidad (cookie o Bearer) y deja
// uid y email en c.Locals. Los handlers nunca ven el token en crudo.
func AuthMiddleware(jwtSecret string, clockSkew time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(authCookieName)
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
					return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
				}
				tokenString = strings.TrimSpace(parts[1])
			}
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "cookie o header Authorization requerido"})
		}
		id, err := jwt.Verify(jwtSecret, tokenString, clockSkew)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUID, id.UID)
		c.Locals(LocalEmail, id.Email)
		return c.Next()
	}
}

// GetUID devuelve el uid del contexto (después del middleware de auth).
func GetUID(c *fiber.Ctx) string {
	v := c.Locals(LocalUID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetEmail devuelve el email del contexto (después del middleware de auth).
func GetEmail(c *fiber.Ctx) string {
	v := c.Locals(LocalEmail)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
