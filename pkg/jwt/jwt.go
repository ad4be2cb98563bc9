package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Errores de verificación. Parse siempre devuelve uno de estos (envuelto) ante un token rechazado.
var (
	ErrMalformed        = errors.New("jwt: token mal formado")
	ErrInvalidSignature = errors.New("jwt: firma inválida")
	ErrExpired          = errors.New("jwt: token expirado")
	ErrEmptySecret      = errors.New("jwt: secret vacío")
)

// Claims incluye los claims estándar JWT más la identidad y el tenant del usuario.
// El tenant viaja firmado: es la única fuente de alcance que acepta el servidor.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64 `json:"user_id"`
	TenantID int64 `json:"tenant_id"`
}

// Generate genera un token HS256 firmado con userID y tenantID, válido expMinutes minutos.
func Generate(secret string, userID, tenantID int64, issuer string, expMinutes int) (string, error) {
	token, _, err := GenerateAt(time.Now(), secret, userID, tenantID, issuer, expMinutes)
	return token, err
}

// GenerateAt igual que Generate pero con instante de emisión explícito; devuelve también la expiración.
func GenerateAt(now time.Time, secret string, userID, tenantID int64, issuer string, expMinutes int) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrEmptySecret
	}
	exp := now.Add(time.Duration(expMinutes) * time.Minute)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID:   userID,
		TenantID: tenantID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("firmar token: %w", err)
	}
	return signed, exp, nil
}

// Parse valida firma y vigencia del token y devuelve sus claims.
// No valida que el tenant exista: eso corresponde al resolver de tenant.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, classify(err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return nil, ErrMalformed
	}
	return claims, nil
}

// classify reduce los errores de la librería a las tres causas que distingue la API.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
