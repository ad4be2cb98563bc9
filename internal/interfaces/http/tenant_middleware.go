package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Multitenant-api/internal/domain"
	"github.com/jhoicas/Multitenant-api/internal/domain/tenancy"
)

// scopeResolver lo implementa *tenant.Resolver.
type scopeResolver interface {
	Resolve(ctx context.Context, tenantID int64) (tenancy.Scope, error)
}

// TenantMiddleware resuelve el alcance del request a partir del tenant del token.
// Debe usarse DESPUÉS de AuthMiddleware. El alcance vive en los Locals de este request y se
// descarta al terminar.
func TenantMiddleware(resolver scopeResolver, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := GetIdentity(c)
		if !ok {
			return domain.ErrMissingCredential
		}
		scope, err := resolver.Resolve(c.UserContext(), id.TenantID)
		if err != nil {
			metrics.authFailure(mapError(err).code)
			return err
		}
		c.Locals(LocalScope, scope)
		return c.Next()
	}
}
