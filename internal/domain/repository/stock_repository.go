package repository

import (
	"context"

	"github.com/jhoicas/Multitenant-api/internal/domain/entity"
	"github.com/jhoicas/Multitenant-api/internal/domain/tenancy"
)

// StockRepository define el puerto de persistencia para StockItem, con el mismo contrato de
// alcance que UserRepository.
type StockRepository interface {
	Create(ctx context.Context, scope tenancy.Scope, item *entity.StockItem) error
	GetByID(ctx context.Context, scope tenancy.Scope, id int64) (*entity.StockItem, error)
	List(ctx context.Context, scope tenancy.Scope, limit, offset int) ([]*entity.StockItem, error)
	Update(ctx context.Context, scope tenancy.Scope, item *entity.StockItem) error
	Delete(ctx context.Context, scope tenancy.Scope, id int64) error
}
