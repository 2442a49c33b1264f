package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/playware/game_lounge_app/internal/apperrors"
	portsrepo "github.com/playware/game_lounge_app/internal/core/ports/repositories"
	portssvc "github.com/playware/game_lounge_app/internal/core/ports/services"
	"github.com/playware/game_lounge_app/internal/core/services"
	"github.com/playware/game_lounge_app/internal/dto"
	"github.com/playware/game_lounge_app/internal/handlers"
	"github.com/playware/game_lounge_app/internal/middleware"
	"github.com/playware/game_lounge_app/internal/platform/config"
	"github.com/playware/game_lounge_app/internal/repositories/database/pgsql"
	"github.com/playware/game_lounge_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories and services
	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewContainer(&repos)

	if err := seedDefaultAdmin(context.Background(), logger, cfg, repos.UserRepo, serviceContainer.User); err != nil {
		logger.Error("Failed to seed default admin", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

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
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// seedDefaultAdmin creates the bootstrap admin account on first start so the
// application is usable before any operator exists. Skipped when the account
// is already present or no bootstrap password is configured.
func seedDefaultAdmin(ctx context.Context, logger *slog.Logger, cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, userSvc portssvc.UserSvcFacade) error {
	if cfg.DefaultAdminPassword == "" {
		logger.Info("DEFAULT_ADMIN_PASSWORD not set, skipping admin bootstrap.")
		return nil
	}

	_, err := userRepo.FindUserByUsername(ctx, cfg.DefaultAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	_, err = userSvc.CreateUser(ctx, dto.CreateUserRequest{
		Username: cfg.DefaultAdminUsername,
		Password: cfg.DefaultAdminPassword,
		Role:     "ADMIN",
	})
	if err != nil {
		return err
	}
	logger.Info("Bootstrap admin account created", slog.String("username", cfg.DefaultAdminUsername))
	return nil
}
