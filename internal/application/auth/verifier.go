package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Multitenant-api/internal/domain"
	"github.com/jhoicas/Multitenant-api/pkg/jwt"
)

// Identity es lo que afirma un token verificado. TenantID todavía no fue validado contra el registro.
type Identity struct {
	UserID    int64
	TenantID  int64
	ExpiresAt time.Time
}

// Verifier valida tokens de sesión. Es puro: no toca almacenamiento.
type Verifier struct {
	secret string
}

// NewVerifier construye el verificador con el secreto de firma.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// Verify valida firma y vigencia de raw y devuelve la identidad embebida.
// Errores: ErrMissingCredential, ErrMalformedCredential, ErrInvalidSignature, ErrExpired.
func (v *Verifier) Verify(raw string) (Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identity{}, domain.ErrMissingCredential
	}
	claims, err := jwt.Parse(v.secret, raw)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrExpired):
			return Identity{}, domain.ErrExpired
		case errors.Is(err, jwt.ErrInvalidSignature):
			return Identity{}, domain.ErrInvalidSignature
		case errors.Is(err, jwt.ErrEmptySecret):
			return Identity{}, fmt.Errorf("%w: %w", domain.ErrInternal, err)
		default:
			return Identity{}, domain.ErrMalformedCredential
		}
	}
	id := Identity{UserID: claims.UserID, TenantID: claims.TenantID}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}
