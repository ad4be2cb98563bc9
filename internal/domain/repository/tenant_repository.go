package repository

import (
	"context"

	"github.com/jhoicas/Multitenant-api/internal/domain/entity"
)

// TenantRepository define el puerto del registro de tenants (DIP).
// Es el único repositorio sin alcance: los tenants no pertenecen a otro tenant.
type TenantRepository interface {
	// Create persiste el tenant y completa ID y CreatedAt.
	Create(ctx context.Context, tenant *entity.Tenant) error
	// GetByID devuelve ErrNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Tenant, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
