package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity es el resultado de verificar un token: el sujeto autenticado y su email.
// Los handlers reciben solo esto, nunca el token en crudo.
type Identity struct {
	UID   string
	Email string
}

// Claims incluye los claims estándar JWT más el email del titular.
// El UID viaja en el claim estándar Subject.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Generate emite un token HS256 firmado para el uid/email dados.
// La API no emite tokens en producción; esto existe para herramientas y tests.
func Generate(secret, uid, email, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Verify valida el token con tolerancia de desfase de reloj y devuelve la identidad.
// Retorna error si el token es inválido, expirado (más allá del leeway) o con firma incorrecta.
func Verify(secret, tokenString string, clockSkew time.Duration) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithLeeway(clockSkew))
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("claims inválidos")
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("token sin subject")
	}
	return Identity{UID: claims.Subject, Email: claims.Email}, nil
}
