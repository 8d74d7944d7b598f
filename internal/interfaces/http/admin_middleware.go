package http

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/andea-legal/lawyers-api/internal/application/dto"
)

// adminSecretHeader header que transporta el secreto compartido de las rutas
// internas de escritura.
const adminSecretHeader = "X-Admin-Secret"

// AdminMiddleware compara el secreto del header con el configurado.
//
// Con secreto vacío la puerta queda abierta: es el modo explícito
// "sin configurar" y quien arma el router lo registra con un warning.
// El secreto configurado puede ser el valor plano (comparación en tiempo
// constante) o un hash bcrypt con prefijo $2.
func AdminMiddleware(secret string) fiber.Handler {
	if secret == "" {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}
	return func(c *fiber.Ctx) error {
		presented := c.Get(adminSecretHeader)
		if presented == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_SECRET", Message: "header " + adminSecretHeader + " requerido"})
		}
		if !secretMatches(secret, presented) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SECRET", Message: "secreto incorrecto"})
		}
		return c.Next()
	}
}

func secretMatches(configured, presented string) bool {
	if strings.HasPrefix(configured, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(presented)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(presented)) == 1
}
