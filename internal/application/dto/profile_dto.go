package dto

import (
	"time"

	"github.com/andea-legal/lawyers-api/internal/domain/entity"
)

// CreateProfileRequest alta/reemplazo completo de un perfil (ruta interna).
// El documento se valida estricto contra el esquema antes de persistir.
type CreateProfileRequest struct {
	Code     string             `json:"code" validate:"required,min=1,max=64"`
	OwnerUID string             `json:"ownerUid"`
	Data     entity.ContentData `json:"data" validate:"required"`
}

// UpsertProfileRequest merge parcial por code (ruta interna). Los campos
// ausentes no se tocan. Si OwnerUID viene informado y el perfil ya pertenece
// a otro uid, la operación falla con conflicto.
type UpsertProfileRequest struct {
	OwnerUID string                 `json:"ownerUid"`
	Data     map[string]interface{} `json:"data"`
}

// UpsertMyProfileRequest merge parcial del perfil del caller autenticado.
// El propietario se fuerza siempre al uid del token; cualquier ownerUid del
// payload se ignora.
type UpsertMyProfileRequest struct {
	Data map[string]interface{} `json:"data"`
}

// TrackRequest evento de analytics sobre un perfil publicado.
//   - visit: incrementa visitorCount (key se ignora)
//   - page: incrementa pageClicks.<key>
//   - contact: incrementa contactClicks.<key>
type TrackRequest struct {
	Event string `json:"event" validate:"required,oneof=visit page contact"`
	Key   string `json:"key"`
}

// ProfileResponse salida de un perfil. Data puede venir tipado (documento que
// valida el esquema) o crudo (documento parcial, política de lectura tolerante);
// en ambos casos serializa a la misma forma JSON.
type ProfileResponse struct {
	Code       string      `json:"code"`
	OwnerUID   string      `json:"ownerUid,omitempty"`
	OwnerEmail string      `json:"ownerEmail,omitempty"`
	CreatedAt  *time.Time  `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time  `json:"updatedAt,omitempty"`
	Data       interface{} `json:"data,omitempty"`
}

// ProfileListResponse listado completo de perfiles (sin paginación; el orden
// lo decide el almacén).
type ProfileListResponse struct {
	Items []ProfileResponse `json:"items"`
	Count int               `json:"count"`
}
