package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/andea-legal/lawyers-api/internal/domain/entity"
)

// ProfilePatch campos a fusionar en una escritura parcial. Los campos en cero
// no se tocan: el merge nunca pisa lo que no viene incluido.
type ProfilePatch struct {
	Data       bson.M // nil = conservar data actual
	OwnerUID   string // "" = conservar propietario actual
	OwnerEmail string
}

// ProfileRepository define el puerto de persistencia para Profile (DIP).
// La implementación vive en infrastructure.
//
// Convenciones:
//   - Las búsquedas devuelven (nil, nil) cuando no hay documento.
//   - Upsert y Claim aplican la comprobación de propietario de forma atómica
//     (compare-and-swap sobre ownerUid) y devuelven domain.ErrOwnershipConflict
//     si el perfil pertenece a otro uid; Claim devuelve domain.ErrNotFound si
//     el perfil no existe.
//   - createdAt se asigna una sola vez (primera escritura); updatedAt en cada
//     escritura.
type ProfileRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Profile, error)
	GetByOwner(ctx context.Context, ownerUID string) (*entity.Profile, error)
	List(ctx context.Context) ([]*entity.Profile, error)

	// Replace guarda el documento completo (alta o reemplazo administrativo).
	Replace(ctx context.Context, p *entity.Profile) error

	// Upsert hace merge de patch sobre el documento code, creándolo si no
	// existe. Si patch.OwnerUID viene informado y el documento ya tiene un
	// propietario distinto, falla con ErrOwnershipConflict sin mutar nada.
	Upsert(ctx context.Context, code string, patch ProfilePatch) (*entity.Profile, error)

	// Claim asigna propietario a un perfil existente sin tocar data ni createdAt.
	Claim(ctx context.Context, code, ownerUID, ownerEmail string) (*entity.Profile, error)

	// IncrementCounter suma delta a un contador bajo data.analytics.
	// field es la ruta con puntos relativa al documento (ej. "data.analytics.visitorCount").
	IncrementCounter(ctx context.Context, code, field string, delta int) error
}
