package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/spendwise/expense-ledger/internal/api/handler"
	"github.com/spendwise/expense-ledger/internal/api/middleware"
	"github.com/spendwise/expense-ledger/internal/core/ports"
	"github.com/spendwise/expense-ledger/internal/core/service"
	"github.com/spendwise/expense-ledger/internal/infrastructure/config"
	redisdb "github.com/spendwise/expense-ledger/internal/infrastructure/db/redis"
	sqlitedb "github.com/spendwise/expense-ledger/internal/infrastructure/db/sqlite"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the logout denylist is then disabled.
func NewRouter(db *sql.DB, gw *sqlitedb.Gateway, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("ledger"))

	// --- Dependencies ---
	var denylist ports.TokenDenylist
	if rdb != nil {
		denylist = redisdb.NewDenylist(rdb)
	}

	authRepo := sqlitedb.NewAuthRepository(gw)
	ledgerRepo := sqlitedb.NewLedgerRepository(gw)

	authService := service.NewAuthService(authRepo, cfg.BcryptCost, log)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, denylist, log)
	sessionService := service.NewSessionService(authService, tokenService, log)
	ledgerService := service.NewLedgerService(ledgerRepo, log)

	authHandler := handler.NewAuthHandler(authService, sessionService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	guard := middleware.SessionGuard(sessionService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/session", authHandler.Session, guard)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Ledger routes (authentication required) ---
	e.GET("/salary", ledgerHandler.GetSalary, guard)
	e.PUT("/salary", ledgerHandler.UpsertSalary, guard)
	e.GET("/categories", ledgerHandler.ListCategories, guard)
	e.POST("/categories", ledgerHandler.AddCategory, guard)
	e.DELETE("/categories/:name", ledgerHandler.RemoveCategory, guard)
	e.GET("/expenses", ledgerHandler.ListExpenses, guard)
	e.POST("/expenses", ledgerHandler.AddExpense, guard)
	e.DELETE("/expenses/:id", ledgerHandler.RemoveExpense, guard)
	e.GET("/summary", ledgerHandler.MonthSummary, guard)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
