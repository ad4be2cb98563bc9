package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Multitenant-api/internal/application/auth"
	"github.com/jhoicas/Multitenant-api/internal/domain/tenancy"
)

// Locals keys del request en Fiber.
const (
	LocalIdentity = "identity"
	LocalScope    = "scope"
)

// GetIdentity devuelve la identidad verificada (después de AuthMiddleware).
func GetIdentity(c *fiber.Ctx) (auth.Identity, bool) {
	id, ok := c.Locals(LocalIdentity).(auth.Identity)
	return id, ok
}

// GetUserID devuelve el UserID del token, 0 si no hay identidad.
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := GetIdentity(c)
	return id.UserID
}

// GetScope devuelve el alcance activo (después de TenantMiddleware). Sin alcance devuelve el
// valor cero, que el gate de datos rechaza.
func GetScope(c *fiber.Ctx) tenancy.Scope {
	scope, _ := c.Locals(LocalScope).(tenancy.Scope)
	return scope
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return id
}
