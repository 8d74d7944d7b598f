// Package mediaurl convierte identificadores de imagen "pelados" almacenados en
// los documentos de perfil en URLs absolutas del CDN de assets.
//
// La política es estrictamente por clave, no por tipo ni por patrón: solo los
// valores string bajo las claves backgroundImage, photo, icon y logo son
// candidatos a reescritura. Una versión anterior reescribía cualquier clave
// terminada en "Image" y producía falsos positivos; de ahí la whitelist.
package mediaurl

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// imageKeys claves cuyo valor string puede ser un identificador de imagen.
var imageKeys = map[string]bool{
	"backgroundImage": true,
	"photo":           true,
	"icon":            true,
	"logo":            true,
}

// absolutePrefixes esquemas que indican que la referencia ya es absoluta.
var absolutePrefixes = []string{"http://", "https://", "data:", "blob:"}

// Rewriter reescribe referencias de imagen dentro de un árbol de documento.
type Rewriter struct {
	baseURL    string
	pathPrefix string
}

// New construye el Rewriter. Se normalizan las barras para que el resultado
// sea siempre {baseURL}{pathPrefix}/{id} sin barras dobles.
func New(baseURL, pathPrefix string) *Rewriter {
	baseURL = strings.TrimRight(baseURL, "/")
	pathPrefix = strings.TrimRight(pathPrefix, "/")
	if pathPrefix != "" && !strings.HasPrefix(pathPrefix, "/") {
		pathPrefix = "/" + pathPrefix
	}
	return &Rewriter{baseURL: baseURL, pathPrefix: pathPrefix}
}

// Rewrite desciende recursivamente por mapas y secuencias y devuelve una copia
// transformada del árbol. La entrada no se modifica. Los valores que no son
// contenedores ni strings bajo clave whitelisted se devuelven tal cual.
//
// Acepta los tipos de valor que produce el driver de Mongo al decodificar
// documentos sin esquema (bson.M, bson.D, bson.A) además de los tipos JSON
// planos de Go.
func (r *Rewriter) Rewrite(node interface{}) interface{} {
	switch n := node.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(n))
		for k, v := range n {
			out[k] = r.rewriteValue(k, v)
		}
		return out
	case bson.M:
		out := make(bson.M, len(n))
		for k, v := range n {
			out[k] = r.rewriteValue(k, v)
		}
		return out
	case bson.D:
		out := make(bson.D, 0, len(n))
		for _, e := range n {
			out = append(out, bson.E{Key: e.Key, Value: r.rewriteValue(e.Key, e.Value)})
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(n))
		for i, v := range n {
			out[i] = r.Rewrite(v)
		}
		return out
	case bson.A:
		out := make(bson.A, len(n))
		for i, v := range n {
			out[i] = r.Rewrite(v)
		}
		return out
	default:
		return node
	}
}

// rewriteValue aplica la política por clave: strings bajo clave whitelisted se
// reescriben si son identificadores pelados; los contenedores se recorren.
func (r *Rewriter) rewriteValue(key string, value interface{}) interface{} {
	if s, ok := value.(string); ok {
		if imageKeys[key] {
			return r.rewriteRef(s)
		}
		return s
	}
	return r.Rewrite(value)
}

// rewriteRef reescribe un identificador pelado a URL absoluta.
// Referencias ya absolutas (http, https, data, blob) y rutas con separador
// se dejan intactas, lo que además hace la operación idempotente.
func (r *Rewriter) rewriteRef(ref string) string {
	if ref == "" {
		return ref
	}
	for _, p := range absolutePrefixes {
		if strings.HasPrefix(ref, p) {
			return ref
		}
	}
	if strings.Contains(ref, "/") {
		return ref
	}
	return r.baseURL + r.pathPrefix + "/" + ref
}
