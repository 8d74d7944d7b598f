package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/andea-legal/lawyers-api/internal/application/dto"
	"github.com/andea-legal/lawyers-api/internal/application/usecase"
	"github.com/andea-legal/lawyers-api/internal/domain"
)

// ProfileHandler maneja las peticiones HTTP para el recurso Profile.
type ProfileHandler struct {
	uc        *usecase.ProfileUseCase
	analytics *usecase.AnalyticsUseCase
}

// NewProfileHandler construye el handler inyectando los casos de uso.
func NewProfileHandler(uc *usecase.ProfileUseCase, analytics *usecase.AnalyticsUseCase) *ProfileHandler {
	return &ProfileHandler{uc: uc, analytics: analytics}
}

// Create godoc
// @Summary      Crear o reemplazar perfil (interno)
// @Tags         lawyers
// @Accept       json
// @Produce      json
// @Param        X-Admin-Secret  header  string  false  "Secreto compartido"
// @Param        body  body  dto.CreateProfileRequest  true  "Perfil completo"
// @Success      201   {object}  dto.ProfileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /lawyers [post]
func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code es requerido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return businessError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByCode godoc
// @Summary      Obtener perfil por código
// @Tags         lawyers
// @Produce      json
// @Param        code  path  string  true  "Código del perfil"
// @Success      200   {object}  dto.ProfileResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /lawyers/{code} [get]
func (h *ProfileHandler) GetByCode(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_CODE", Message: "code es requerido"})
	}
	out, err := h.uc.GetByCode(c.Context(), code)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar todos los perfiles
// @Tags         lawyers
// @Produce      json
// @Success      200  {object}  dto.ProfileListResponse
// @Router       /lawyers [get]
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(out)
}

// Patch godoc
// @Summary      Merge parcial de campos por código (interno)
// @Tags         lawyers
// @Accept       json
// @Produce      json
// @Param        X-Admin-Secret  header  string  false  "Secreto compartido"
// @Param        code  path  string  true  "Código del perfil"
// @Param        body  body  dto.UpsertProfileRequest  true  "Campos a fusionar"
// @Success      200   {object}  dto.ProfileResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /lawyers/{code} [patch]
func (h *ProfileHandler) Patch(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_CODE", Message: "code es requerido"})
	}
	var in dto.UpsertProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpsertByCode(c.Context(), code, in)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(out)
}

// Track godoc
// @Summary      Registrar evento de analytics
// @Tags         lawyers
// @Accept       json
// @Param        code  path  string  true  "Código del perfil"
// @Param        body  body  dto.TrackRequest  true  "Evento"
// @Success      204   "sin contenido"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /lawyers/{code}/track [post]
func (h *ProfileHandler) Track(c *fiber.Ctx) error {
	code := c.Params("code")
	var in dto.TrackRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.analytics.Track(c.Context(), code, in); err != nil {
		return businessError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Perfil del caller autenticado
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /auth/me/profile [get]
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.GetForCaller(c.Context(), GetUID(c))
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(out)
}

// UpsertMe godoc
// @Summary      Crear o actualizar el perfil del caller
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertMyProfileRequest  true  "Campos a fusionar"
// @Success      200   {object}  dto.ProfileResponse
// @Router       /auth/me/profile [put]
func (h *ProfileHandler) UpsertMe(c *fiber.Ctx) error {
	var in dto.UpsertMyProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpsertForCaller(c.Context(), GetUID(c), GetEmail(c), in.Data)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(out)
}

// Claim godoc
// @Summary      Reclamar un perfil sin dueño
// @Tags         auth
// @Produce      json
// @Param        code  path  string  true  "Código del perfil"
// @Success      200   {object}  dto.ProfileResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /auth/lawyers/{code}/claim [post]
func (h *ProfileHandler) Claim(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_CODE", Message: "code es requerido"})
	}
	out, err := h.uc.Claim(c.Context(), code, GetUID(c), GetEmail(c))
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(out)
}

// businessError mapea los errores de negocio a códigos HTTP estables.
// Todo lo demás sale como 500 opaco (fallo de almacén u otro upstream).
func businessError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "perfil no encontrado"})
	case errors.Is(err, domain.ErrOwnershipConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OWNERSHIP_CONFLICT", Message: "el perfil ya tiene otro propietario"})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
