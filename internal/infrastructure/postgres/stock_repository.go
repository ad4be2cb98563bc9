package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/Multitenant-api/internal/domain"
	"github.com/jhoicas/Multitenant-api/internal/domain/entity"
	"github.com/jhoicas/Multitenant-api/internal/domain/repository"
	"github.com/jhoicas/Multitenant-api/internal/domain/tenancy"
)

var _ repository.StockRepository = (*StockRepo)(nil)

var stockColumns = []string{"id", "tenant_id", "product_name", "quantity", "updated_at"}

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	gate scopedTable
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{gate: newScopedTable(q, "stocks", stockColumns...)}
}

func scanStock(s *entity.StockItem) func(rowScanner) error {
	return func(row rowScanner) error {
		return row.Scan(&s.ID, &s.TenantID, &s.ProductName, &s.Quantity, &s.UpdatedAt)
	}
}

// Create inserta un producto en el tenant del alcance.
func (r *StockRepo) Create(ctx context.Context, scope tenancy.Scope, item *entity.StockItem) error {
	values := map[string]any{
		"product_name": item.ProductName,
		"quantity":     item.Quantity,
		"updated_at":   sq.Expr("now()"),
	}
	return mapStockWriteErr(r.gate.insert(ctx, scope, values, scanStock(item)))
}

// GetByID obtiene un producto del alcance por ID.
func (r *StockRepo) GetByID(ctx context.Context, scope tenancy.Scope, id int64) (*entity.StockItem, error) {
	var s entity.StockItem
	if err := r.gate.get(ctx, scope, id, scanStock(&s)); err != nil {
		return nil, err
	}
	return &s, nil
}

// List lista los productos del alcance.
func (r *StockRepo) List(ctx context.Context, scope tenancy.Scope, limit, offset int) ([]*entity.StockItem, error) {
	list := make([]*entity.StockItem, 0)
	err := r.gate.list(ctx, scope, limit, offset, func(row rowScanner) error {
		var s entity.StockItem
		if err := scanStock(&s)(row); err != nil {
			return err
		}
		list = append(list, &s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Update reemplaza nombre y cantidad; updated_at lo fija la base.
func (r *StockRepo) Update(ctx context.Context, scope tenancy.Scope, item *entity.StockItem) error {
	set := map[string]any{
		"product_name": item.ProductName,
		"quantity":     item.Quantity,
		"updated_at":   sq.Expr("now()"),
	}
	return mapStockWriteErr(r.gate.update(ctx, scope, item.ID, set, scanStock(item)))
}

// Delete elimina un producto del alcance.
func (r *StockRepo) Delete(ctx context.Context, scope tenancy.Scope, id int64) error {
	return r.gate.delete(ctx, scope, id)
}

func mapStockWriteErr(err error) error {
	switch {
	case err == nil:
		return nil
	case isCheckViolation(err):
		return domain.ErrNegativeQuantity
	case isForeignKeyViolation(err):
		return domain.ErrTenantNotFound
	default:
		return err
	}
}
