package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Multitenant-api/internal/domain"
	"github.com/jhoicas/Multitenant-api/internal/domain/tenancy"
)

// psql genera placeholders $1, $2... para pgx.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	tenantColumn = "tenant_id"
	idColumn     = "id"
)

// rowScanner lo cumplen pgx.Row y pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scopedTable es el gate de acceso a datos de una tabla con columna tenant_id.
// Los repositorios de datos de tenant solo hablan con la base a través de él:
//   - SELECT lleva siempre tenant_id = scope.
//   - INSERT estampa tenant_id = scope; cualquier valor del llamador se reemplaza.
//   - UPDATE/DELETE llevan id y tenant_id en el mismo statement, sin leer antes.
//
// Un alcance inválido (valor cero) se rechaza con domain.ErrNoScope antes de construir SQL.
type scopedTable struct {
	q       Querier
	table   string
	columns []string
}

func newScopedTable(q Querier, table string, columns ...string) scopedTable {
	return scopedTable{q: q, table: table, columns: columns}
}

func (t scopedTable) returning() string {
	return "RETURNING " + strings.Join(t.columns, ", ")
}

func (t scopedTable) selectBuilder(scope tenancy.Scope) (sq.SelectBuilder, error) {
	if !scope.Valid() {
		return sq.SelectBuilder{}, domain.ErrNoScope
	}
	return psql.Select(t.columns...).
		From(t.table).
		Where(sq.Eq{tenantColumn: scope.TenantID()}), nil
}

func (t scopedTable) insertBuilder(scope tenancy.Scope, values map[string]any) (sq.InsertBuilder, error) {
	if !scope.Valid() {
		return sq.InsertBuilder{}, domain.ErrNoScope
	}
	row := make(map[string]any, len(values)+1)
	for k, v := range values {
		if k == idColumn {
			continue
		}
		row[k] = v
	}
	row[tenantColumn] = scope.TenantID()
	return psql.Insert(t.table).SetMap(row).Suffix(t.returning()), nil
}

func (t scopedTable) updateBuilder(scope tenancy.Scope, id int64, set map[string]any) (sq.UpdateBuilder, error) {
	if !scope.Valid() {
		return sq.UpdateBuilder{}, domain.ErrNoScope
	}
	clean := make(map[string]any, len(set))
	for k, v := range set {
		// tenant_id e id son inmutables.
		if k == tenantColumn || k == idColumn {
			continue
		}
		clean[k] = v
	}
	if len(clean) == 0 {
		return sq.UpdateBuilder{}, domain.ErrInvalidInput
	}
	return psql.Update(t.table).
		SetMap(clean).
		Where(sq.Eq{idColumn: id, tenantColumn: scope.TenantID()}).
		Suffix(t.returning()), nil
}

func (t scopedTable) deleteBuilder(scope tenancy.Scope, id int64) (sq.DeleteBuilder, error) {
	if !scope.Valid() {
		return sq.DeleteBuilder{}, domain.ErrNoScope
	}
	return psql.Delete(t.table).
		Where(sq.Eq{idColumn: id, tenantColumn: scope.TenantID()}), nil
}

// get lee una fila por id dentro del alcance. domain.ErrNotFound si no existe o es de otro tenant.
func (t scopedTable) get(ctx context.Context, scope tenancy.Scope, id int64, scan func(rowScanner) error) error {
	b, err := t.selectBuilder(scope)
	if err != nil {
		return err
	}
	query, args, err := b.Where(sq.Eq{idColumn: id}).ToSql()
	if err != nil {
		return fmt.Errorf("build select %s: %w", t.table, err)
	}
	err = withRetry(ctx, func() error {
		return scan(t.q.QueryRow(ctx, query, args...))
	})
	if isNoRows(err) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", t.table, err)
	}
	return nil
}

// list recorre las filas del alcance ordenadas por id.
func (t scopedTable) list(ctx context.Context, scope tenancy.Scope, limit, offset int, scan func(rowScanner) error) error {
	if limit <= 0 || offset < 0 {
		return domain.ErrInvalidInput
	}
	b, err := t.selectBuilder(scope)
	if err != nil {
		return err
	}
	query, args, err := b.OrderBy(idColumn).Limit(uint64(limit)).Offset(uint64(offset)).ToSql()
	if err != nil {
		return fmt.Errorf("build list %s: %w", t.table, err)
	}

	var rows pgx.Rows
	err = withRetry(ctx, func() error {
		r, err := t.q.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		rows = r
		return nil
	})
	if err != nil {
		return fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scan %s: %w", t.table, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list %s: %w", t.table, err)
	}
	return nil
}

// insert crea una fila estampada con el tenant del alcance y escanea la fila resultante.
func (t scopedTable) insert(ctx context.Context, scope tenancy.Scope, values map[string]any, scan func(rowScanner) error) error {
	b, err := t.insertBuilder(scope, values)
	if err != nil {
		return err
	}
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", t.table, err)
	}
	err = withRetry(ctx, func() error {
		return scan(t.q.QueryRow(ctx, query, args...))
	})
	if err != nil {
		return fmt.Errorf("insert %s: %w", t.table, err)
	}
	return nil
}

// update modifica una fila del alcance. domain.ErrNotFound si ninguna fila coincide con id + tenant.
func (t scopedTable) update(ctx context.Context, scope tenancy.Scope, id int64, set map[string]any, scan func(rowScanner) error) error {
	b, err := t.updateBuilder(scope, id, set)
	if err != nil {
		return err
	}
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build update %s: %w", t.table, err)
	}
	err = withRetry(ctx, func() error {
		return scan(t.q.QueryRow(ctx, query, args...))
	})
	if isNoRows(err) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", t.table, err)
	}
	return nil
}

// delete borra una fila del alcance. domain.ErrNotFound si ninguna fila coincide con id + tenant.
func (t scopedTable) delete(ctx context.Context, scope tenancy.Scope, id int64) error {
	b, err := t.deleteBuilder(scope, id)
	if err != nil {
		return err
	}
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", t.table, err)
	}
	var affected int64
	err = withRetry(ctx, func() error {
		tag, err := t.q.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.table, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
