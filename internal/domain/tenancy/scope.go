// Package tenancy define el alcance de tenant de un request.
package tenancy

import (
	"strconv"
	"strings"

	"github.com/jhoicas/Multitenant-api/internal/domain"
)

// Scope es el alcance activo de un request: el tenant al que quedan restringidas todas las
// lecturas y escrituras. Es un valor inmutable que se pasa explícitamente a cada operación
// de datos; nunca se guarda en estado compartido (conexión, sesión, variables globales).
type Scope struct {
	tenantID int64
}

// NewScope construye un alcance para tenantID. Falla con ErrInvalidTenantIDFormat si no es positivo.
// No consulta el registro de tenants; eso lo hace el Resolver.
func NewScope(tenantID int64) (Scope, error) {
	if tenantID <= 0 {
		return Scope{}, domain.ErrInvalidTenantIDFormat
	}
	return Scope{tenantID: tenantID}, nil
}

// TenantID devuelve el tenant del alcance.
func (s Scope) TenantID() int64 { return s.tenantID }

// Valid informa si el alcance fue construido con NewScope (el valor cero no es válido).
func (s Scope) Valid() bool { return s.tenantID > 0 }

// Owns informa si tenantID pertenece a este alcance.
func (s Scope) Owns(tenantID int64) bool {
	return s.Valid() && s.tenantID == tenantID
}

// ParseTenantID valida un tenant_id en texto: solo dígitos decimales y valor positivo.
func ParseTenantID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.ErrInvalidTenantIDFormat
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, domain.ErrInvalidTenantIDFormat
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidTenantIDFormat
	}
	return id, nil
}
