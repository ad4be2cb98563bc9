package postgres

import (
	"context"
	"strings"

	"github.com/jhoicas/Multitenant-api/internal/domain"
	"github.com/jhoicas/Multitenant-api/internal/domain/entity"
	"github.com/jhoicas/Multitenant-api/internal/domain/repository"
	"github.com/jhoicas/Multitenant-api/internal/domain/tenancy"
)

var _ repository.UserRepository = (*UserRepo)(nil)

var userColumns = []string{"id", "tenant_id", "username", "email", "password_hash", "created_at"}

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
// Todas las sentencias pasan por el gate scopedTable.
type UserRepo struct {
	gate scopedTable
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{gate: newScopedTable(q, "users", userColumns...)}
}

func scanUser(u *entity.User) func(rowScanner) error {
	return func(row rowScanner) error {
		return row.Scan(&u.ID, &u.TenantID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	}
}

// Create persiste un nuevo usuario en el tenant del alcance y completa ID, TenantID y CreatedAt.
func (r *UserRepo) Create(ctx context.Context, scope tenancy.Scope, user *entity.User) error {
	values := map[string]any{
		"username":      user.Username,
		"email":         strings.ToLower(user.Email),
		"password_hash": user.PasswordHash,
	}
	if !user.CreatedAt.IsZero() {
		values["created_at"] = user.CreatedAt
	}
	err := r.gate.insert(ctx, scope, values, scanUser(user))
	return mapUserWriteErr(err)
}

// GetByID obtiene un usuario del alcance por ID.
func (r *UserRepo) GetByID(ctx context.Context, scope tenancy.Scope, id int64) (*entity.User, error) {
	var u entity.User
	if err := r.gate.get(ctx, scope, id, scanUser(&u)); err != nil {
		return nil, err
	}
	return &u, nil
}

// List lista usuarios del alcance con paginación.
func (r *UserRepo) List(ctx context.Context, scope tenancy.Scope, limit, offset int) ([]*entity.User, error) {
	list := make([]*entity.User, 0)
	err := r.gate.list(ctx, scope, limit, offset, func(row rowScanner) error {
		var u entity.User
		if err := scanUser(&u)(row); err != nil {
			return err
		}
		list = append(list, &u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Update actualiza username, email y password_hash. tenant_id no se toca.
func (r *UserRepo) Update(ctx context.Context, scope tenancy.Scope, user *entity.User) error {
	set := map[string]any{
		"username":      user.Username,
		"email":         strings.ToLower(user.Email),
		"password_hash": user.PasswordHash,
	}
	err := r.gate.update(ctx, scope, user.ID, set, scanUser(user))
	return mapUserWriteErr(err)
}

// Delete elimina un usuario del alcance por ID.
func (r *UserRepo) Delete(ctx context.Context, scope tenancy.Scope, id int64) error {
	return r.gate.delete(ctx, scope, id)
}

func mapUserWriteErr(err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrDuplicateEmail
	case isForeignKeyViolation(err):
		return domain.ErrTenantNotFound
	default:
		return err
	}
}
