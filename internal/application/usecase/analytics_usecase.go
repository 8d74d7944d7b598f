package usecase

import (
	"context"
	"fmt"

	"github.com/andea-legal/lawyers-api/internal/application/dto"
	"github.com/andea-legal/lawyers-api/internal/domain"
	"github.com/andea-legal/lawyers-api/internal/domain/entity"
	"github.com/andea-legal/lawyers-api/internal/domain/repository"
)

// Rutas de los contadores dentro del documento de perfil.
const (
	visitorCountField   = "data.analytics.visitorCount"
	pageClicksPrefix    = "data.analytics.pageClicks."
	contactClicksPrefix = "data.analytics.contactClicks."
)

// AnalyticsUseCase registra eventos del sitio publicado como incrementos de
// contador sobre el subárbol analytics del perfil. No hay agregación ni
// consulta aquí; los contadores viajan dentro del documento en las lecturas.
type AnalyticsUseCase struct {
	repo repository.ProfileRepository
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(repo repository.ProfileRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{repo: repo}
}

// Track incrementa el contador correspondiente al evento.
// ErrValidation si el evento o la clave no existen; ErrNotFound si el perfil
// no existe.
func (uc *AnalyticsUseCase) Track(ctx context.Context, code string, in dto.TrackRequest) error {
	var field string
	switch in.Event {
	case "visit":
		field = visitorCountField
	case "page":
		if !entity.PageClickKeys[in.Key] {
			return fmt.Errorf("%w: sección desconocida %q", domain.ErrValidation, in.Key)
		}
		field = pageClicksPrefix + in.Key
	case "contact":
		if !entity.ContactClickKeys[in.Key] {
			return fmt.Errorf("%w: canal desconocido %q", domain.ErrValidation, in.Key)
		}
		field = contactClicksPrefix + in.Key
	default:
		return fmt.Errorf("%w: evento desconocido %q", domain.ErrValidation, in.Event)
	}
	return uc.repo.IncrementCounter(ctx, code, field, 1)
}
