package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/Multitenant-api/internal/application/auth"
	"github.com/jhoicas/Multitenant-api/internal/application/tenant"
	"github.com/jhoicas/Multitenant-api/internal/application/usecase"
	"github.com/jhoicas/Multitenant-api/internal/domain/repository"
	"github.com/jhoicas/Multitenant-api/internal/infrastructure/memory"
	"github.com/jhoicas/Multitenant-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Multitenant-api/internal/interfaces/http"
	"github.com/jhoicas/Multitenant-api/pkg/config"
	"github.com/jhoicas/Multitenant-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// stores agrupa los puertos de persistencia que necesita la API.
type stores struct {
	tenants repository.TenantRepository
	users   repository.UserRepository
	stocks  repository.StockRepository
	creds   repository.CredentialLookup
	regTx   auth.RegistrationTx
	close   func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a almacenamiento")
	}
	defer st.close()

	authUC := auth.NewAuthUseCase(st.regTx, st.creds, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Tenant.DomainSuffix)

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName:         cfg.App.Name,
		AuthUC:          authUC,
		TenantUC:        usecase.NewTenantUseCase(st.tenants, cfg.Tenant.DomainSuffix),
		UserUC:          usecase.NewUserUseCase(st.users, 0),
		StockUC:         usecase.NewStockUseCase(st.stocks),
		Verifier:        auth.NewVerifier(cfg.JWT.Secret),
		Resolver:        tenant.NewResolver(st.tenants),
		Metrics:         httpRouter.NewMetrics(),
		Logger:          log.Named("http"),
		RateLimitMax:    cfg.RateLimit.Max,
		RateLimitWindow: time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute,
		CORSOrigins:     cfg.HTTP.CORSOrigins,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Multitenant API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger no disponible")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.DB.Driver == config.DriverMemory {
		m := memory.New()
		return &stores{
			tenants: m.Tenants(),
			users:   m.Users(),
			stocks:  m.Stocks(),
			creds:   m.Credentials(),
			regTx:   m,
			close:   func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &stores{
		tenants: postgres.NewTenantRepository(pool),
		users:   postgres.NewUserRepository(pool),
		stocks:  postgres.NewStockRepository(pool),
		creds:   postgres.NewCredentialRepository(pool),
		regTx:   postgres.NewTxRunner(pool),
		close:   pool.Close,
	}, nil
}
