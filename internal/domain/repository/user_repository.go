package repository

import (
	"context"

	"github.com/jhoicas/Multitenant-api/internal/domain/entity"
	"github.com/jhoicas/Multitenant-api/internal/domain/tenancy"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Toda operación exige el alcance activo: las lecturas filtran por su tenant, las inserciones
// lo estampan y las actualizaciones/borrados lo incluyen en el predicado.
// Una fila de otro tenant se reporta como domain.ErrNotFound.
type UserRepository interface {
	Create(ctx context.Context, scope tenancy.Scope, user *entity.User) error
	GetByID(ctx context.Context, scope tenancy.Scope, id int64) (*entity.User, error)
	List(ctx context.Context, scope tenancy.Scope, limit, offset int) ([]*entity.User, error)
	Update(ctx context.Context, scope tenancy.Scope, user *entity.User) error
	Delete(ctx context.Context, scope tenancy.Scope, id int64) error
}

// CredentialLookup búsqueda de usuarios por email sin alcance, solo para login y registro:
// el cliente todavía no conoce su tenant. No se expone a los handlers de datos.
type CredentialLookup interface {
	// FindByEmail devuelve (nil, nil) si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
