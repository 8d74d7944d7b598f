package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/andea-legal/lawyers-api/internal/application/dto"
	"github.com/andea-legal/lawyers-api/internal/domain"
	"github.com/andea-legal/lawyers-api/internal/domain/entity"
	"github.com/andea-legal/lawyers-api/internal/domain/repository"
	"github.com/andea-legal/lawyers-api/internal/domain/schema"
	"github.com/andea-legal/lawyers-api/pkg/logger"
	"github.com/andea-legal/lawyers-api/pkg/mediaurl"
)

// ProfileUseCase orquesta el flujo de propiedad de perfiles:
//   - upsert por code con comprobación de propietario
//   - find-or-create del perfil del caller autenticado (propietario forzado)
//   - claim de un perfil sin dueño
//   - lecturas con reescritura de imágenes y shaping best-effort
//
// La máquina de estados por code es: ausente → sin dueño → con dueño(U).
// Una vez asignado un dueño, cualquier intento de escribir otro distinto es
// ErrOwnershipConflict; la comprobación la hace el repositorio de forma atómica.
type ProfileUseCase struct {
	repo     repository.ProfileRepository
	rewriter *mediaurl.Rewriter
	log      *logger.Logger
}

// NewProfileUseCase construye el caso de uso con el puerto de persistencia y
// el rewriter de referencias de imagen.
func NewProfileUseCase(repo repository.ProfileRepository, rewriter *mediaurl.Rewriter, log *logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{repo: repo, rewriter: rewriter, log: log}
}

// Create alta o reemplazo completo de un perfil (ruta interna con secreto).
// El documento se valida estricto; a diferencia de los merges parciales, aquí
// no hay tolerancia con documentos incompletos.
func (uc *ProfileUseCase) Create(ctx context.Context, in dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	if err := schema.ValidateContent(&in.Data); err != nil {
		return nil, err
	}
	data, err := in.Data.ToDocument()
	if err != nil {
		return nil, err
	}
	p := &entity.Profile{
		Code:     in.Code,
		OwnerUID: in.OwnerUID,
		Data:     data,
	}
	if err := uc.repo.Replace(ctx, p); err != nil {
		return nil, err
	}
	stored, err := uc.repo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, domain.ErrNotFound // no debería pasar justo tras escribir
	}
	return uc.respond(stored), nil
}

// GetByCode devuelve un perfil por su código, reescrito y con shaping best-effort.
func (uc *ProfileUseCase) GetByCode(ctx context.Context, code string) (*dto.ProfileResponse, error) {
	p, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return uc.respond(p), nil
}

// List devuelve todos los perfiles, cada uno reescrito y shaped de forma
// independiente. El orden lo decide el almacén.
func (uc *ProfileUseCase) List(ctx context.Context) (*dto.ProfileListResponse, error) {
	profiles, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, *uc.respond(p))
	}
	return &dto.ProfileListResponse{Items: items, Count: len(items)}, nil
}

// UpsertByCode hace merge parcial sobre el perfil code, creándolo si no
// existe. Si in.OwnerUID viene informado y el perfil pertenece a otro uid la
// operación falla con ErrOwnershipConflict sin mutar nada.
func (uc *ProfileUseCase) UpsertByCode(ctx context.Context, code string, in dto.UpsertProfileRequest) (*dto.ProfileResponse, error) {
	patch := repository.ProfilePatch{OwnerUID: in.OwnerUID}
	if in.Data != nil {
		patch.Data = bson.M(in.Data)
	}
	p, err := uc.repo.Upsert(ctx, code, patch)
	if err != nil {
		return nil, err
	}
	return uc.respond(p), nil
}

// GetForCaller devuelve el (como mucho único) perfil cuyo ownerUid es el
// caller autenticado.
func (uc *ProfileUseCase) GetForCaller(ctx context.Context, callerUID string) (*dto.ProfileResponse, error) {
	p, err := uc.repo.GetByOwner(ctx, callerUID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return uc.respond(p), nil
}

// UpsertForCaller localiza el perfil del caller y hace merge sobre él; si no
// tiene, crea uno nuevo con código generado. El propietario se fuerza SIEMPRE
// al caller autenticado: esta ruta nunca puede asignar otro dueño.
func (uc *ProfileUseCase) UpsertForCaller(ctx context.Context, callerUID, callerEmail string, data map[string]interface{}) (*dto.ProfileResponse, error) {
	code := ""
	existing, err := uc.repo.GetByOwner(ctx, callerUID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		code = existing.Code
	} else {
		code = uuid.NewString()
		uc.log.Info().Str("code", code).Str("uid", callerUID).Msg("creando perfil nuevo para caller")
	}
	patch := repository.ProfilePatch{OwnerUID: callerUID, OwnerEmail: callerEmail}
	if data != nil {
		patch.Data = bson.M(data)
	}
	p, err := uc.repo.Upsert(ctx, code, patch)
	if err != nil {
		return nil, err
	}
	return uc.respond(p), nil
}

// Claim asocia un perfil sin dueño al caller. ErrNotFound si el código no
// existe; ErrOwnershipConflict si ya pertenece a otro uid. Reclamar el propio
// perfil otra vez es idempotente.
func (uc *ProfileUseCase) Claim(ctx context.Context, code, callerUID, callerEmail string) (*dto.ProfileResponse, error) {
	p, err := uc.repo.Claim(ctx, code, callerUID, callerEmail)
	if err != nil {
		return nil, err
	}
	return uc.respond(p), nil
}

// respond arma la respuesta de lectura: reescritura de referencias de imagen
// sobre el árbol crudo y después shaping best-effort. Si el documento no
// valida (merges parciales lo permiten) se devuelve el crudo reescrito; esa
// tolerancia es política explícita, no un error.
func (uc *ProfileUseCase) respond(p *entity.Profile) *dto.ProfileResponse {
	out := &dto.ProfileResponse{
		Code:       p.Code,
		OwnerUID:   p.OwnerUID,
		OwnerEmail: p.OwnerEmail,
	}
	if !p.CreatedAt.IsZero() {
		t := p.CreatedAt
		out.CreatedAt = &t
	}
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		out.UpdatedAt = &t
	}
	if p.Data == nil {
		return out
	}
	rewritten, _ := uc.rewriter.Rewrite(p.Data).(bson.M)
	if rewritten == nil {
		out.Data = p.Data
		return out
	}
	shaped, err := schema.ShapeContent(rewritten)
	if err != nil {
		uc.log.Debug().Str("code", p.Code).Err(err).Msg("documento parcial, se devuelve crudo")
		out.Data = rewritten
		return out
	}
	out.Data = shaped
	return out
}
