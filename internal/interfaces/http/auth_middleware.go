package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Multitenant-api/internal/application/auth"
	"github.com/jhoicas/Multitenant-api/internal/domain"
)

// credentialVerifier lo implementa *auth.Verifier.
type credentialVerifier interface {
	Verify(raw string) (auth.Identity, error)
}

// AuthMiddleware valida el Bearer Token y deja la identidad en c.Locals.
// Un token rechazado corta el request aquí, antes de cualquier acceso a datos.
func AuthMiddleware(verifier credentialVerifier, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := bearerToken(c.Get(fiber.HeaderAuthorization))
		if err == nil {
			var id auth.Identity
			id, err = verifier.Verify(raw)
			if err == nil {
				c.Locals(LocalIdentity, id)
				return c.Next()
			}
		}
		metrics.authFailure(mapError(err).code)
		return err
	}
}

// bearerToken extrae el token de "Bearer <token>".
func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", domain.ErrMissingCredential
	}
	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", domain.ErrMalformedCredential
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrMissingCredential
	}
	return token, nil
}
