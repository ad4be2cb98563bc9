package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Multitenant-api/internal/application/dto"
	"github.com/jhoicas/Multitenant-api/internal/domain"
	"github.com/jhoicas/Multitenant-api/internal/domain/entity"
	"github.com/jhoicas/Multitenant-api/internal/domain/repository"
	"github.com/jhoicas/Multitenant-api/internal/domain/tenancy"
)

// TenantUseCase consultas y alta de tenants. Un llamador solo ve su propio tenant.
type TenantUseCase struct {
	repo         repository.TenantRepository
	domainSuffix string
}

// NewTenantUseCase construye el caso de uso.
func NewTenantUseCase(repo repository.TenantRepository, domainSuffix string) *TenantUseCase {
	return &TenantUseCase{repo: repo, domainSuffix: domainSuffix}
}

// List devuelve los tenants visibles para el alcance: solo el propio.
func (uc *TenantUseCase) List(ctx context.Context, scope tenancy.Scope) (*dto.TenantListResponse, error) {
	t, err := uc.GetByID(ctx, scope, scope.TenantID())
	if err != nil {
		return nil, err
	}
	return &dto.TenantListResponse{Items: []dto.TenantResponse{*t}}, nil
}

// GetByID obtiene un tenant. Cualquier id distinto del alcance es ErrNotFound.
func (uc *TenantUseCase) GetByID(ctx context.Context, scope tenancy.Scope, id int64) (*dto.TenantResponse, error) {
	if !scope.Valid() {
		return nil, domain.ErrNoScope
	}
	if !scope.Owns(id) {
		return nil, domain.ErrNotFound
	}
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

// Create da de alta un tenant. Si no se indica dominio se deriva del nombre.
func (uc *TenantUseCase) Create(ctx context.Context, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrMissingField)
	}
	dom := strings.ToLower(strings.TrimSpace(in.Domain))
	if dom == "" {
		dom = tenancy.DomainFor(name, uc.domainSuffix)
	}
	if strings.ContainsAny(dom, " /@") {
		return nil, fmt.Errorf("%w: dominio inválido", domain.ErrInvalidInput)
	}
	t := &entity.Tenant{Name: name, Domain: dom}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Domain:    t.Domain,
		CreatedAt: t.CreatedAt,
	}
}
