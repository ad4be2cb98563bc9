package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce a código de estado + mensaje genérico con errors.Is.
var (
	// Autenticación: credencial del request y credenciales de login.
	ErrMissingCredential   = errors.New("credencial ausente")
	ErrMalformedCredential = errors.New("credencial mal formada")
	ErrInvalidSignature    = errors.New("firma de credencial inválida")
	ErrExpired             = errors.New("credencial expirada")
	ErrInvalidCredentials  = errors.New("credenciales inválidas")

	// Tenant: resolución del alcance activo.
	ErrInvalidTenantIDFormat = errors.New("tenant_id con formato inválido")
	ErrTenantNotFound        = errors.New("tenant no encontrado")
	ErrNoScope               = errors.New("operación de datos sin alcance de tenant")
	ErrTenantMismatch        = errors.New("tenant_id no coincide con el alcance activo")

	// Validación.
	ErrMissingField     = errors.New("campo requerido ausente")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicateEmail   = errors.New("el email ya está registrado")
	ErrNegativeQuantity = errors.New("la cantidad no puede ser negativa")

	// ErrNotFound se usa tanto para filas inexistentes como para filas de otro tenant.
	ErrNotFound = errors.New("recurso no encontrado")

	// ErrInternal envuelve fallos de almacenamiento o inesperados.
	ErrInternal = errors.New("error interno")
)
