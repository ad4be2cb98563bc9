package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Multitenant-api/pkg/logger"
)

// AccessLog registra cada request (método, ruta, status, latencia, request id y tenant) y
// alimenta las métricas. Resuelve el error de la cadena con el ErrorHandler de la app antes de
// registrar, así el status logueado es el que recibe el cliente.
func AccessLog(log *logger.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()

		route := c.Route().Path
		metrics.observe(c.Method(), route, status, elapsed)

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev = ev.
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed)
		if scope := GetScope(c); scope.Valid() {
			ev = ev.Int64("tenant_id", scope.TenantID())
		}
		ev.Msg("request")
		return nil
	}
}
