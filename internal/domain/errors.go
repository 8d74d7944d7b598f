package domain

import "errors"

// Errores de negocio (sin dependencias externas). Los handlers los mapean a
// códigos HTTP estables; nunca se enmascaran como errores genéricos.
var (
	ErrNotFound          = errors.New("perfil no encontrado")
	ErrOwnershipConflict = errors.New("el perfil ya tiene otro propietario")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrValidation        = errors.New("documento inválido")
)
