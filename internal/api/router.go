package api

import (
	gqlhandler "github.com/graphql-go/handler"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/storelane/customer-accounts/internal/api/graph"
	"github.com/storelane/customer-accounts/internal/api/handler"
	"github.com/storelane/customer-accounts/internal/api/middleware"
	"github.com/storelane/customer-accounts/internal/core/service"
	"github.com/storelane/customer-accounts/internal/infrastructure/config"
	"github.com/storelane/customer-accounts/internal/infrastructure/db/postgres"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	customerRepo := postgres.NewCustomerRepository(pool)
	hasher := service.NewBcryptHasher()
	tokenService := service.NewTokenService(cfg.JWTSecret, log)
	customerService := service.NewCustomerService(customerRepo, hasher, log)

	resolver := graph.NewResolver(customerService, tokenService, log)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		return nil, err
	}

	// Playground and pretty responses are development conveniences only.
	gql := gqlhandler.New(&gqlhandler.Config{
		Schema:     &schema,
		Pretty:     !cfg.IsProduction(),
		Playground: !cfg.IsProduction(),
	})

	e.Any("/graphql", echo.WrapHandler(gql), middleware.Auth(cfg.JWTSecret))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
