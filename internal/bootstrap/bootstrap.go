// Package bootstrap wires configuration, database, services and routes
// into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/emres/studentportal/internal/app/controllers"
	appMigrations "github.com/emres/studentportal/internal/app/migrations"
	appRepos "github.com/emres/studentportal/internal/app/repositories"
	appRoutes "github.com/emres/studentportal/internal/app/routes"
	appServices "github.com/emres/studentportal/internal/app/services"
	"github.com/emres/studentportal/internal/config"
	"github.com/emres/studentportal/internal/db"
	appMiddleware "github.com/emres/studentportal/internal/middleware"
	"github.com/emres/studentportal/internal/pkg/logger"
	"github.com/emres/studentportal/internal/pkg/session"
	"github.com/emres/studentportal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *appServices.AuthService
	EnrollmentService *appServices.EnrollmentService
	CatalogService    *appServices.CatalogService

	AuthController    *appControllers.AuthController
	ProfileController *appControllers.ProfileController
	CourseController  *appControllers.CourseController
	CatalogController *appControllers.CatalogController

	SessionMiddleware *appMiddleware.SessionMiddleware
	Sessions          *session.Manager
	Repos             *appRepos.Repositories
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")

	if cfg.SecretGenerated {
		lgr.Warn().Msg("SESSION_SECRET not set; using a generated secret. Sessions will not survive a restart.")
	}
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Seed data is a convenience; startup continues without it.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.Sessions = session.NewManager(session.Config{
		Secret:   cfg.Session.Secret,
		Lifetime: cfg.SessionLifetime(),
		Issuer:   cfg.Session.Issuer,
		Secure:   strings.ToLower(cfg.Server.Mode) == "production",
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.StudentRepository, lgr)
	deps.EnrollmentService = appServices.NewEnrollmentService(deps.Repos.RegistrationRepository, lgr)
	deps.CatalogService = appServices.NewCatalogService(
		deps.Repos.CourseRepository,
		deps.Repos.GradeRepository,
		deps.Repos.AnnouncementRepository,
		lgr,
	)

	deps.SessionMiddleware = appMiddleware.NewSessionMiddleware(deps.Sessions)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.EnrollmentService, deps.Sessions, lgr)
	deps.ProfileController = appControllers.NewProfileController(deps.AuthService, deps.Sessions, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CatalogService, deps.EnrollmentService, lgr)
	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService, lgr)

	if err := appControllers.RegisterValidations(); err != nil {
		return nil, fmt.Errorf("failed to register form validations: %w", err)
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with templates, middleware and
// routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()
	router.LoadHTMLGlob(filepath.Join("web", "templates", "*.html"))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProfileController,
		deps.CourseController,
		deps.CatalogController,
		deps.SessionMiddleware,
	)

	return router
}
