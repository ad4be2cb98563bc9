package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/Multitenant-api/internal/domain"
	"github.com/jhoicas/Multitenant-api/internal/domain/entity"
	"github.com/jhoicas/Multitenant-api/internal/domain/repository"
)

// Asegura que TenantRepo implementa repository.TenantRepository.
var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación del registro de tenants sobre PostgreSQL (usable con pool o tx).
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador de persistencia para tenants.
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// Create persiste un nuevo tenant y completa ID y CreatedAt.
func (r *TenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error {
	query, args, err := psql.Insert("tenants").
		Columns("name", "domain").
		Values(tenant.Name, strings.ToLower(tenant.Domain)).
		Suffix("RETURNING id, name, domain, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert tenant: %w", err)
	}
	err = withRetry(ctx, func() error {
		return r.q.QueryRow(ctx, query, args...).Scan(&tenant.ID, &tenant.Name, &tenant.Domain, &tenant.CreatedAt)
	})
	if err != nil {
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID obtiene un tenant por ID.
func (r *TenantRepo) GetByID(ctx context.Context, id int64) (*entity.Tenant, error) {
	query, args, err := psql.Select("id", "name", "domain", "created_at").
		From("tenants").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select tenant: %w", err)
	}
	var t entity.Tenant
	err = withRetry(ctx, func() error {
		return r.q.QueryRow(ctx, query, args...).Scan(&t.ID, &t.Name, &t.Domain, &t.CreatedAt)
	})
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}

// Exists informa si el tenant está en el registro.
func (r *TenantRepo) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM tenants WHERE id = $1)`
	var ok bool
	err := withRetry(ctx, func() error {
		return r.q.QueryRow(ctx, query, id).Scan(&ok)
	})
	if err != nil {
		return false, fmt.Errorf("check tenant %d: %w", id, err)
	}
	return ok, nil
}
