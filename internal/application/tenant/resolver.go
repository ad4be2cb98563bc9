// Package tenant establece el alcance activo de un request a partir del tenant del token.
package tenant

import (
	"context"
	"fmt"

	"github.com/jhoicas/Multitenant-api/internal/domain"
	"github.com/jhoicas/Multitenant-api/internal/domain/repository"
	"github.com/jhoicas/Multitenant-api/internal/domain/tenancy"
)

// Resolver valida el tenant afirmado por la credencial y construye el alcance del request.
// El alcance devuelto es un valor: el llamador lo guarda en el contexto de su request y lo
// pasa a cada operación de datos. El Resolver no guarda nada entre llamadas.
type Resolver struct {
	tenants repository.TenantRepository
}

// NewResolver construye el resolver sobre el registro de tenants.
func NewResolver(tenants repository.TenantRepository) *Resolver {
	return &Resolver{tenants: tenants}
}

// Resolve valida formato y existencia del tenant en cada llamada.
// Errores: ErrInvalidTenantIDFormat, ErrTenantNotFound, o ErrInternal si el registro falla.
func (r *Resolver) Resolve(ctx context.Context, tenantID int64) (tenancy.Scope, error) {
	scope, err := tenancy.NewScope(tenantID)
	if err != nil {
		return tenancy.Scope{}, err
	}
	ok, err := r.tenants.Exists(ctx, tenantID)
	if err != nil {
		return tenancy.Scope{}, fmt.Errorf("%w: resolver tenant: %w", domain.ErrInternal, err)
	}
	if !ok {
		return tenancy.Scope{}, domain.ErrTenantNotFound
	}
	return scope, nil
}
