package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DefaultRequestTimeout límite de cada request cuando RouterDeps no indica otro.
const DefaultRequestTimeout = 10 * time.Second

// RequestContext reemplaza el UserContext de Fiber (context.Background por defecto) por uno
// propio del request con deadline. Se cancela al terminar el request, así ninguna sentencia
// en curso sobrevive a la respuesta ni pasa del timeout.
func RequestContext(timeout time.Duration) fiber.Handler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
