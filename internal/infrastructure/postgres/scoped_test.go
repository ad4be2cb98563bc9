package postgres

import (
	"context"
	"errors"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Multitenant-api/internal/domain"
	"github.com/jhoicas/Multitenant-api/internal/domain/tenancy"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// recordingQuerier registra las sentencias recibidas y falla si se le llama cuando no debe.
type recordingQuerier struct {
	calls int
}

func (r *recordingQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	r.calls++
	return pgconn.NewCommandTag("DELETE 0"), nil
}

func (r *recordingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	r.calls++
	return nil, errors.New("no implementado")
}

func (r *recordingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	r.calls++
	return errRow{err: pgx.ErrNoRows}
}

type errRow struct{ err error }

func (e errRow) Scan(...any) error { return e.err }

func mustScope(t *testing.T, id int64) tenancy.Scope {
	t.Helper()
	s, err := tenancy.NewScope(id)
	require.NoError(t, err)
	return s
}

func testTable(q Querier) scopedTable {
	return newScopedTable(q, "stocks", stockColumns...)
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructores de SQL: el filtro de tenant siempre está presente
// ──────────────────────────────────────────────────────────────────────────────

func TestSelectBuilder_FiltraPorTenant(t *testing.T) {
	b, err := testTable(nil).selectBuilder(mustScope(t, 7))
	require.NoError(t, err)

	query, args, err := b.Where(sq.Eq{"id": 3}).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, tenant_id, product_name, quantity, updated_at FROM stocks WHERE tenant_id = $1 AND id = $2",
		query)
	assert.Equal(t, []any{int64(7), 3}, args)
}

func TestInsertBuilder_EstampaTenantDelAlcance(t *testing.T) {
	// Un tenant_id del llamador se reemplaza por el del alcance; un id explícito se ignora.
	b, err := testTable(nil).insertBuilder(mustScope(t, 7), map[string]any{
		"product_name": "Widget",
		"quantity":     5,
		"tenant_id":    int64(99),
		"id":           int64(1234),
	})
	require.NoError(t, err)

	query, args, err := b.ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO stocks (product_name,quantity,tenant_id) VALUES ($1,$2,$3) RETURNING id, tenant_id, product_name, quantity, updated_at",
		query)
	assert.Equal(t, []any{"Widget", 5, int64(7)}, args)
}

func TestUpdateBuilder_PredicadoIncluyeTenant(t *testing.T) {
	b, err := testTable(nil).updateBuilder(mustScope(t, 7), 42, map[string]any{
		"quantity":  1,
		"tenant_id": int64(99),
	})
	require.NoError(t, err)

	query, args, err := b.ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"UPDATE stocks SET quantity = $1 WHERE id = $2 AND tenant_id = $3 RETURNING id, tenant_id, product_name, quantity, updated_at",
		query)
	assert.Equal(t, []any{1, int64(42), int64(7)}, args)
}

func TestUpdateBuilder_SoloTenantEsInvalido(t *testing.T) {
	_, err := testTable(nil).updateBuilder(mustScope(t, 7), 42, map[string]any{"tenant_id": int64(8)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteBuilder_PredicadoIncluyeTenant(t *testing.T) {
	b, err := testTable(nil).deleteBuilder(mustScope(t, 7), 42)
	require.NoError(t, err)

	query, args, err := b.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM stocks WHERE id = $1 AND tenant_id = $2", query)
	assert.Equal(t, []any{int64(42), int64(7)}, args)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sin alcance no se ejecuta nada
// ──────────────────────────────────────────────────────────────────────────────

func TestGate_AlcanceCeroNoTocaLaBase(t *testing.T) {
	q := &recordingQuerier{}
	gate := testTable(q)
	ctx := context.Background()
	var zero tenancy.Scope
	noop := func(rowScanner) error { return nil }

	assert.ErrorIs(t, gate.get(ctx, zero, 1, noop), domain.ErrNoScope)
	assert.ErrorIs(t, gate.list(ctx, zero, 10, 0, noop), domain.ErrNoScope)
	assert.ErrorIs(t, gate.insert(ctx, zero, map[string]any{"quantity": 1}, noop), domain.ErrNoScope)
	assert.ErrorIs(t, gate.update(ctx, zero, 1, map[string]any{"quantity": 1}, noop), domain.ErrNoScope)
	assert.ErrorIs(t, gate.delete(ctx, zero, 1), domain.ErrNoScope)
	assert.Zero(t, q.calls, "sin alcance no debe emitirse ninguna sentencia")
}

func TestGate_SinFilasEsNotFound(t *testing.T) {
	q := &recordingQuerier{}
	gate := testTable(q)
	ctx := context.Background()
	s := mustScope(t, 2)

	err := gate.get(ctx, s, 1, func(r rowScanner) error { return r.Scan() })
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = gate.update(ctx, s, 1, map[string]any{"quantity": 3}, func(r rowScanner) error { return r.Scan() })
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, gate.delete(ctx, s, 1), domain.ErrNotFound)
}

func TestRepos_UsanElGate(t *testing.T) {
	q := &recordingQuerier{}
	var zero tenancy.Scope
	ctx := context.Background()

	users := NewUserRepository(q)
	_, err := users.GetByID(ctx, zero, 1)
	assert.ErrorIs(t, err, domain.ErrNoScope)
	_, err = users.List(ctx, zero, 10, 0)
	assert.ErrorIs(t, err, domain.ErrNoScope)

	stocks := NewStockRepository(q)
	_, err = stocks.GetByID(ctx, zero, 1)
	assert.ErrorIs(t, err, domain.ErrNoScope)
	assert.ErrorIs(t, stocks.Delete(ctx, zero, 1), domain.ErrNoScope)

	assert.Zero(t, q.calls)
}

func TestList_PaginacionInvalida(t *testing.T) {
	q := &recordingQuerier{}
	err := testTable(q).list(context.Background(), mustScope(t, 1), 0, 0, func(rowScanner) error { return nil })
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, q.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintento
// ──────────────────────────────────────────────────────────────────────────────

type safeErr struct{}

func (safeErr) Error() string     { return "conexión cerrada antes de enviar" }
func (safeErr) SafeToRetry() bool { return true }

func TestWithRetry_ReintentaUnaVezSiEsSeguro(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), func() error {
		calls++
		if calls == 1 {
			return safeErr{}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	calls = 0
	err = withRetry(context.Background(), func() error {
		calls++
		return safeErr{}
	})
	assert.Error(t, err)
	assert.Equal(t, 2, calls, "solo un reintento")
}

func TestWithRetry_NoReintentaErroresDeDatos(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), func() error {
		calls++
		return &pgconn.PgError{Code: codeUniqueViolation}
	})
	assert.True(t, isUniqueViolation(err))
	assert.Equal(t, 1, calls)
}
