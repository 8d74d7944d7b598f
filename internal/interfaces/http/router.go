package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/andea-legal/lawyers-api/internal/application/dto"
	"github.com/andea-legal/lawyers-api/internal/application/usecase"
	"github.com/andea-legal/lawyers-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProfileUC   *usecase.ProfileUseCase
	AnalyticsUC *usecase.AnalyticsUseCase
	JWTSecret   string
	ClockSkew   time.Duration
	AdminSecret string // vacío = puerta interna ABIERTA (se registra warning)
	Log         *logger.Logger
}

// Router registra las rutas de la API.
//
// Clases de ruta:
//   - públicas: lecturas de perfiles y tracking de analytics
//   - internas: escrituras administrativas tras el secreto compartido
//   - autenticadas: rutas /auth con token de identidad
func Router(app *fiber.App, deps RouterDeps) {
	if deps.AdminSecret == "" && deps.Log != nil {
		deps.Log.Warn().Msg("ADMIN_SECRET sin configurar: las rutas internas de escritura quedan ABIERTAS")
	}

	handler := NewProfileHandler(deps.ProfileUC, deps.AnalyticsUC)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(dto.MessageResponse{Message: "Andea Legal API ✔️"})
	})

	// Lawyers: lecturas públicas, escrituras tras el secreto compartido
	lawyers := app.Group("/lawyers")
	lawyers.Get("/", handler.List)
	lawyers.Get("/:code", handler.GetByCode)
	lawyers.Post("/:code/track", handler.Track)

	admin := AdminMiddleware(deps.AdminSecret)
	lawyers.Post("/", admin, handler.Create)
	lawyers.Patch("/:code", admin, handler.Patch)

	// Rutas autenticadas (cookie de sesión o Bearer Token)
	auth := app.Group("/auth", AuthMiddleware(deps.JWTSecret, deps.ClockSkew))
	auth.Get("/me/profile", handler.Me)
	auth.Put("/me/profile", handler.UpsertMe)
	auth.Post("/lawyers/:code/claim", handler.Claim)
}
