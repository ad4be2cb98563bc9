package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Multitenant-api/internal/domain"
	"github.com/jhoicas/Multitenant-api/internal/domain/entity"
	"github.com/jhoicas/Multitenant-api/internal/domain/repository"
	"github.com/jhoicas/Multitenant-api/pkg/config"
)

// setupTestDB levanta un PostgreSQL en contenedor, aplica el esquema y devuelve el pool.
// Se omite si Docker no está disponible o si SKIP_INTEGRATION=true.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("SKIP_INTEGRATION") == "true" || testing.Short() {
		t.Skip("omitiendo tests de integración con PostgreSQL")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := pgmodule.Run(ctx,
		"postgres:16-alpine",
		pgmodule.WithDatabase("multitenant_test"),
		pgmodule.WithUsername("test"),
		pgmodule.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("no se pudo iniciar PostgreSQL en contenedor: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 5, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, ApplySchema(ctx, pool))
	return pool
}

func createTenant(t *testing.T, pool *pgxpool.Pool, name, dom string) *entity.Tenant {
	t.Helper()
	tn := &entity.Tenant{Name: name, Domain: dom}
	require.NoError(t, NewTenantRepository(pool).Create(context.Background(), tn))
	require.Positive(t, tn.ID)
	return tn
}

func countRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n))
	return n
}

func TestIntegration_AislamientoEntreTenants(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	a := createTenant(t, pool, "A", "a.example.com")
	b := createTenant(t, pool, "B", "b.example.com")
	scopeA := mustScope(t, a.ID)
	scopeB := mustScope(t, b.ID)

	stocks := NewStockRepository(pool)
	widget := &entity.StockItem{ProductName: "Widget", Quantity: 5, TenantID: b.ID}
	require.NoError(t, stocks.Create(ctx, scopeA, widget))
	assert.Equal(t, a.ID, widget.TenantID, "el tenant lo estampa el alcance, no el llamador")
	assert.Equal(t, 5, widget.Quantity)

	// B no ve, no modifica y no borra la fila de A aunque conozca su id.
	_, err := stocks.GetByID(ctx, scopeB, widget.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = stocks.Update(ctx, scopeB, &entity.StockItem{ID: widget.ID, ProductName: "Robado", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, stocks.Delete(ctx, scopeB, widget.ID), domain.ErrNotFound)

	listB, err := stocks.List(ctx, scopeB, 100, 0)
	require.NoError(t, err)
	assert.Empty(t, listB)

	got, err := stocks.GetByID(ctx, scopeA, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.ProductName)
	assert.Equal(t, 5, got.Quantity)

	// Misma lectura dos veces sin escrituras intermedias: mismo resultado.
	first, err := stocks.List(ctx, scopeA, 100, 0)
	require.NoError(t, err)
	second, err := stocks.List(ctx, scopeA, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestIntegration_UsuariosConAlcance(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	a := createTenant(t, pool, "A", "a.example.com")
	b := createTenant(t, pool, "B", "b.example.com")
	scopeA := mustScope(t, a.ID)
	scopeB := mustScope(t, b.ID)

	users := NewUserRepository(pool)
	u := &entity.User{Username: "ana", Email: "Ana@A.com", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, scopeA, u))
	assert.Equal(t, a.ID, u.TenantID)
	assert.Equal(t, "ana@a.com", u.Email)

	_, err := users.GetByID(ctx, scopeB, u.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	dup := &entity.User{Username: "otra", Email: "ana@a.com", PasswordHash: "hash"}
	assert.ErrorIs(t, users.Create(ctx, scopeB, dup), domain.ErrDuplicateEmail)

	u.Username = "ana maria"
	require.NoError(t, users.Update(ctx, scopeA, u))
	assert.Equal(t, "ana maria", u.Username)

	found, err := NewCredentialRepository(pool).FindByEmail(ctx, "ANA@a.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, a.ID, found.TenantID)

	require.NoError(t, users.Delete(ctx, scopeA, u.ID))
	assert.ErrorIs(t, users.Delete(ctx, scopeA, u.ID), domain.ErrNotFound)
}

func TestIntegration_RegistroAtomico(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	runner := NewTxRunner(pool)

	existing := createTenant(t, pool, "Existente", "existente.example.com")
	require.NoError(t, NewUserRepository(pool).Create(ctx, mustScope(t, existing.ID),
		&entity.User{Username: "a", Email: "a@acme.com", PasswordHash: "hash"}))

	tenantsBefore := countRows(t, pool, "tenants")
	usersBefore := countRows(t, pool, "users")

	// El tenant se inserta y luego falla el usuario: la transacción completa se deshace.
	err := runner.RunRegistration(ctx, func(tenants repository.TenantRepository, users repository.UserRepository, _ repository.CredentialLookup) error {
		tn := &entity.Tenant{Name: "Acme", Domain: "acme.example.com"}
		if err := tenants.Create(ctx, tn); err != nil {
			return err
		}
		return users.Create(ctx, mustScope(t, tn.ID), &entity.User{Username: "a", Email: "a@acme.com", PasswordHash: "hash"})
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	assert.Equal(t, tenantsBefore, countRows(t, pool, "tenants"), "no debe quedar tenant huérfano")
	assert.Equal(t, usersBefore, countRows(t, pool, "users"))
}

func TestIntegration_Restricciones(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	a := createTenant(t, pool, "A", "a.example.com")
	scopeA := mustScope(t, a.ID)

	same := &entity.Tenant{Name: "A", Domain: "A.example.com"}
	require.NoError(t, NewTenantRepository(pool).Create(ctx, same), "el dominio no es único")
	assert.Equal(t, "a.example.com", same.Domain)
	assert.NotEqual(t, a.ID, same.ID)

	stocks := NewStockRepository(pool)
	err := stocks.Create(ctx, scopeA, &entity.StockItem{ProductName: "X", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrNegativeQuantity)

	// Un alcance de un tenant inexistente no puede crear filas (FK).
	err = stocks.Create(ctx, mustScope(t, a.ID+1000), &entity.StockItem{ProductName: "X", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)

	// El trigger impide mover una fila de tenant aunque se salte el gate.
	item := &entity.StockItem{ProductName: "Y", Quantity: 1}
	require.NoError(t, stocks.Create(ctx, scopeA, item))
	b := createTenant(t, pool, "B", "b.example.com")
	_, err = pool.Exec(ctx, "UPDATE stocks SET tenant_id = $1 WHERE id = $2", b.ID, item.ID)
	require.Error(t, err)

	ok, err := NewTenantRepository(pool).Exists(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = NewTenantRepository(pool).GetByID(ctx, a.ID+1000)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
