package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Multitenant-api/internal/domain/entity"
	"github.com/jhoicas/Multitenant-api/internal/domain/repository"
)

var _ repository.CredentialLookup = (*CredentialRepo)(nil)

// CredentialRepo búsqueda de usuarios por email en todos los tenants. Solo lectura y solo para
// login/registro, cuando todavía no hay alcance.
type CredentialRepo struct {
	q Querier
}

// NewCredentialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCredentialRepository(q Querier) *CredentialRepo {
	return &CredentialRepo{q: q}
}

// FindByEmail obtiene un usuario por email (cualquier tenant). (nil, nil) si no existe.
func (r *CredentialRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	const query = `
		SELECT id, tenant_id, username, email, password_hash, created_at
		FROM users WHERE email = $1 LIMIT 1`
	var u entity.User
	err := withRetry(ctx, func() error {
		return scanUser(&u)(r.q.QueryRow(ctx, query, strings.ToLower(email)))
	})
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// EmailExists informa si algún tenant ya tiene un usuario con ese email.
func (r *CredentialRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	var ok bool
	err := withRetry(ctx, func() error {
		return r.q.QueryRow(ctx, query, strings.ToLower(email)).Scan(&ok)
	})
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return ok, nil
}
