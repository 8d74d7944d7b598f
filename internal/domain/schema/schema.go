// Package schema da forma tipada a los documentos de perfil y los valida.
//
// Hay dos modos de uso:
//   - Estricto (escritura completa): el payload debe cumplir el esquema entero;
//     cualquier violación (tipo incorrecto, campo requerido ausente, valor fuera
//     de enumeración) rechaza la petición.
//   - Best-effort (lecturas): un documento a medio escribir por merges parciales
//     puede no validar; en ese caso el caller se queda con el documento crudo.
package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/andea-legal/lawyers-api/internal/domain"
	"github.com/andea-legal/lawyers-api/internal/domain/entity"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ShapeContent decodifica un documento crudo a ContentData tipado y lo valida.
// Devuelve un error (envuelve domain.ErrValidation) en la primera de estas
// situaciones: tipo incompatible al decodificar o violación del esquema.
func ShapeContent(raw bson.M) (*entity.ContentData, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: data ausente", domain.ErrValidation)
	}
	var cd entity.ContentData
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      &cd,
		ErrorUnused: false, // claves extra se toleran; el merge parcial puede dejar restos
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(map[string]interface{}(raw)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := ValidateContent(&cd); err != nil {
		return nil, err
	}
	return &cd, nil
}

// ValidateContent aplica las reglas estructurales del esquema sobre un
// ContentData ya tipado (enumeraciones de theme/locale/entityType, colecciones
// requeridas). No hay reglas de negocio entre campos; es validación estructural.
func ValidateContent(cd *entity.ContentData) error {
	if err := validate.Struct(cd); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", domain.ErrValidation, describeAll(verrs))
		}
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// describeAll enumera todas las violaciones, no solo la primera, para que el
// cliente pueda corregir el payload de una vez.
func describeAll(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s: valor %q fuera de {%s}", fe.Namespace(), fe.Value(), fe.Param()))
		case "required":
			parts = append(parts, fmt.Sprintf("%s: campo requerido", fe.Namespace()))
		default:
			parts = append(parts, fmt.Sprintf("%s: no cumple %q", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
