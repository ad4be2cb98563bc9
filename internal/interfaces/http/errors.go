package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Multitenant-api/internal/application/dto"
	"github.com/jhoicas/Multitenant-api/internal/domain"
	"github.com/jhoicas/Multitenant-api/pkg/logger"
)

// apiError es la forma en que un error llega al cliente.
type apiError struct {
	status  int
	code    string
	message string
}

// Mensajes fijos: nunca se envía el texto del error original para estos casos.
var (
	errInternal = apiError{fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor"}
	errNotFound = apiError{fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"}
)

// mapError traduce un error de dominio a status + código.
// ErrInternal se evalúa primero: un fallo interno que envuelve otro sentinel sigue siendo 500.
func mapError(err error) apiError {
	var fe *fiber.Error
	switch {
	case errors.Is(err, domain.ErrInternal), errors.Is(err, domain.ErrNoScope):
		return errInternal
	case errors.Is(err, domain.ErrMissingCredential):
		return apiError{fiber.StatusUnauthorized, "MISSING_CREDENTIAL", "credencial requerida: Authorization: Bearer <token>"}
	case errors.Is(err, domain.ErrMalformedCredential):
		return apiError{fiber.StatusUnauthorized, "MALFORMED_CREDENTIAL", "credencial mal formada"}
	case errors.Is(err, domain.ErrInvalidSignature):
		return apiError{fiber.StatusUnauthorized, "INVALID_SIGNATURE", "firma de credencial inválida"}
	case errors.Is(err, domain.ErrExpired):
		return apiError{fiber.StatusUnauthorized, "EXPIRED", "credencial expirada"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apiError{fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "credenciales inválidas"}
	case errors.Is(err, domain.ErrInvalidTenantIDFormat):
		return apiError{fiber.StatusUnauthorized, "INVALID_TENANT_ID", "tenant de la credencial inválido"}
	case errors.Is(err, domain.ErrTenantNotFound):
		return apiError{fiber.StatusUnauthorized, "TENANT_NOT_FOUND", "tenant de la credencial no encontrado"}
	case errors.Is(err, domain.ErrTenantMismatch):
		return apiError{fiber.StatusBadRequest, "TENANT_MISMATCH", "tenant_id no coincide con el tenant autenticado"}
	case errors.Is(err, domain.ErrMissingField), errors.Is(err, domain.ErrNegativeQuantity):
		return apiError{fiber.StatusBadRequest, "VALIDATION", err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return apiError{fiber.StatusBadRequest, "INVALID_INPUT", err.Error()}
	case errors.Is(err, domain.ErrDuplicateEmail):
		return apiError{fiber.StatusBadRequest, "EMAIL_EXISTS", "el email ya está registrado"}
	case errors.Is(err, domain.ErrNotFound):
		return errNotFound
	case errors.As(err, &fe):
		return fiberError(fe)
	default:
		return errInternal
	}
}

func fiberError(fe *fiber.Error) apiError {
	switch {
	case fe.Code == fiber.StatusNotFound:
		return errNotFound
	case fe.Code >= fiber.StatusInternalServerError:
		return errInternal
	default:
		return apiError{fe.Code, "HTTP_ERROR", fe.Message}
	}
}

// ErrorHandler es el fiber.ErrorHandler de la aplicación: responde dto.ErrorResponse y registra
// con detalle los errores 500, que al cliente solo le llegan como mensaje genérico.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		ae := mapError(err)
		if ae.status >= fiber.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("request_id", requestID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error interno")
		}
		return c.Status(ae.status).JSON(dto.ErrorResponse{Code: ae.code, Message: ae.message})
	}
}
