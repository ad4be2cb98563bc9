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

// StockUseCase casos de uso CRUD para items de stock del tenant activo.
type StockUseCase struct {
	repo repository.StockRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.StockRepository) *StockUseCase {
	return &StockUseCase{repo: repo}
}

// Create crea un item en el tenant del alcance.
func (uc *StockUseCase) Create(ctx context.Context, scope tenancy.Scope, in dto.CreateStockRequest) (*dto.StockResponse, error) {
	if err := checkBodyTenant(scope, in.TenantID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.ProductName)
	if name == "" || in.Quantity == nil {
		return nil, fmt.Errorf("%w: product_name y quantity son obligatorios", domain.ErrMissingField)
	}
	if *in.Quantity < 0 {
		return nil, domain.ErrNegativeQuantity
	}
	item := &entity.StockItem{ProductName: name, Quantity: *in.Quantity}
	if err := uc.repo.Create(ctx, scope, item); err != nil {
		return nil, err
	}
	return toStockResponse(item), nil
}

// GetByID obtiene un item del alcance. ErrNotFound si no existe o es de otro tenant.
func (uc *StockUseCase) GetByID(ctx context.Context, scope tenancy.Scope, id int64) (*dto.StockResponse, error) {
	item, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return toStockResponse(item), nil
}

// Update actualiza nombre y/o cantidad. El tenant del item no cambia.
func (uc *StockUseCase) Update(ctx context.Context, scope tenancy.Scope, id int64, in dto.UpdateStockRequest) (*dto.StockResponse, error) {
	if err := checkBodyTenant(scope, in.TenantID); err != nil {
		return nil, err
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, domain.ErrNegativeQuantity
	}
	item, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if in.ProductName != nil {
		name := strings.TrimSpace(*in.ProductName)
		if name == "" {
			return nil, fmt.Errorf("%w: product_name vacío", domain.ErrInvalidInput)
		}
		item.ProductName = name
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if err := uc.repo.Update(ctx, scope, item); err != nil {
		return nil, err
	}
	return toStockResponse(item), nil
}

// List lista items del alcance con paginación.
func (uc *StockUseCase) List(ctx context.Context, scope tenancy.Scope, page dto.PageRequest) (*dto.StockListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, scope, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toStockResponse(it))
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un item del alcance por ID.
func (uc *StockUseCase) Delete(ctx context.Context, scope tenancy.Scope, id int64) error {
	return uc.repo.Delete(ctx, scope, id)
}

func toStockResponse(it *entity.StockItem) *dto.StockResponse {
	return &dto.StockResponse{
		ID:          it.ID,
		TenantID:    it.TenantID,
		ProductName: it.ProductName,
		Quantity:    it.Quantity,
		UpdatedAt:   it.UpdatedAt,
	}
}
