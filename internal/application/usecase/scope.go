package usecase

import (
	"github.com/jhoicas/Multitenant-api/internal/domain"
	"github.com/jhoicas/Multitenant-api/internal/domain/tenancy"
)

// checkBodyTenant rechaza un tenant_id de cuerpo que no coincide con el alcance.
// Ausente o igual se acepta; el gate estampa el tenant del alcance de todos modos.
func checkBodyTenant(scope tenancy.Scope, tenantID *int64) error {
	if tenantID == nil || scope.Owns(*tenantID) {
		return nil
	}
	return domain.ErrTenantMismatch
}
