package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"

	"github.com/finvo/invoice_ledger_app/cmd/docs"
	"github.com/finvo/invoice_ledger_app/internal/adapters/database/pgsql"
	"github.com/finvo/invoice_ledger_app/internal/core/services"
	"github.com/finvo/invoice_ledger_app/internal/handlers"
	"github.com/finvo/invoice_ledger_app/internal/middleware"
	"github.com/finvo/invoice_ledger_app/internal/platform/config"
	"github.com/finvo/invoice_ledger_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Invoice Ledger API
// @version 1.0
// @description Multi-tenant invoicing service posting balanced GL transactions.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(corsMiddleware(cfg))
	r.Use(middleware.ActorMiddleware())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	limiterInstance := limiter.New(limitermem.NewStore(), rate)

	r.GET("/health", handlers.GetHealth)

	setupAPIV1Routes(r, dbPool, limiterInstance)
	setupSwaggerRoutes(r, cfg)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations from the migrations
// directory using a temporary database/sql connection.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	if cfg.CORSAllowedOrigins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-Actor-ID")
	return cors.New(corsCfg)
}

func setupAPIV1Routes(r *gin.Engine, dbPool *pgxpool.Pool, limiterInstance *limiter.Limiter) {
	v1 := r.Group("/api/v1", middleware.RateLimit(limiterInstance))

	orgRepo := pgsql.NewPgxOrganizationRepository(dbPool)
	accountRepo := pgsql.NewPgxAccountRepository(dbPool)
	txnRepo := pgsql.NewPgxTransactionRepository(dbPool)

	accountService := services.NewAccountService(accountRepo)
	orgService := services.NewOrganizationService(orgRepo, accountService)
	invoiceService := services.NewInvoiceService(txnRepo, orgRepo)

	orgHandler := handlers.NewOrganizationHandler(orgService)
	accountHandler := handlers.NewAccountHandler(accountService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)

	orgs := v1.Group("/organizations")
	{
		orgs.POST("", orgHandler.CreateOrganization)
		orgs.GET("", orgHandler.ListOrganizations)
		orgs.GET("/:orgID", orgHandler.GetOrganization)

		orgs.GET("/:orgID/accounts", accountHandler.ListAccounts)
		orgs.GET("/:orgID/accounts/:accountCode", accountHandler.GetAccount)

		orgs.POST("/:orgID/invoices", invoiceHandler.CreateInvoice)
		orgs.GET("/:orgID/invoices", invoiceHandler.ListInvoices)
		// Registered before the :transactionID route so gin does not treat
		// "reports" as a transaction ID.
		orgs.GET("/:orgID/invoices/reports/aging", invoiceHandler.AgingReport)
		orgs.GET("/:orgID/invoices/:transactionID", invoiceHandler.GetTransaction)
		orgs.POST("/:orgID/invoices/:transactionID/payments", invoiceHandler.RecordPayment)
		orgs.POST("/:orgID/invoices/:transactionID/cancel", invoiceHandler.CancelInvoice)
	}
}

func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
