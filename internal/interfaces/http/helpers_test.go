package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Multitenant-api/internal/application/auth"
	"github.com/jhoicas/Multitenant-api/internal/application/tenant"
	"github.com/jhoicas/Multitenant-api/internal/application/usecase"
	"github.com/jhoicas/Multitenant-api/internal/domain/entity"
	"github.com/jhoicas/Multitenant-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Multitenant-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Multitenant-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "multitenant-api-test"
	testExpMin    = 60
)

type testEnv struct {
	app   *fiber.App
	store *memory.Store
}

// buildTestApp arma la aplicación completa sobre el store en memoria.
func buildTestApp(t *testing.T, rateLimit int) *testEnv {
	t.Helper()
	store := memory.New()
	deps := apphttp.RouterDeps{
		AppName: "multitenant-api-test",
		AuthUC: auth.NewAuthUseCase(store, store.Credentials(),
			auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
			"example.com",
			auth.WithBcryptCost(bcrypt.MinCost),
		),
		TenantUC:        usecase.NewTenantUseCase(store.Tenants(), "example.com"),
		UserUC:          usecase.NewUserUseCase(store.Users(), bcrypt.MinCost),
		StockUC:         usecase.NewStockUseCase(store.Stocks()),
		Verifier:        auth.NewVerifier(testJWTSecret),
		Resolver:        tenant.NewResolver(store.Tenants()),
		Metrics:         apphttp.NewMetrics(),
		RateLimitMax:    rateLimit,
		RateLimitWindow: time.Minute,
		CORSOrigins:     "*",
	}
	return &testEnv{app: apphttp.NewApp(deps), store: store}
}

// seedTenant crea un tenant con un usuario y devuelve el header Authorization para él.
func (e *testEnv) seedTenant(t *testing.T, name string) (tenantID int64, bearer string) {
	t.Helper()
	ctx := context.Background()
	tn := &entity.Tenant{Name: name, Domain: name + ".example.com"}
	require.NoError(t, e.store.Tenants().Create(ctx, tn))
	scope := mustScope(t, tn.ID)
	u := &entity.User{Username: name, Email: name + "@" + name + ".com", PasswordHash: "x"}
	require.NoError(t, e.store.Users().Create(ctx, scope, u))
	return tn.ID, tokenFor(t, u.ID, tn.ID)
}

func tokenFor(t *testing.T, userID, tenantID int64) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, tenantID, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición con cuerpo JSON opcional.
func (e *testEnv) doRequest(t *testing.T, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}
