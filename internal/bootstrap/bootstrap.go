// Package bootstrap wires configuration, storage and the application layers
// together at startup.
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

	appControllers "github.com/emredk/scholaris/internal/app/controllers"
	appMigrations "github.com/emredk/scholaris/internal/app/migrations"
	appRepos "github.com/emredk/scholaris/internal/app/repositories"
	appRoutes "github.com/emredk/scholaris/internal/app/routes"
	appServices "github.com/emredk/scholaris/internal/app/services"
	"github.com/emredk/scholaris/internal/config"
	"github.com/emredk/scholaris/internal/db"
	appMiddleware "github.com/emredk/scholaris/internal/middleware"
	pkgAuth "github.com/emredk/scholaris/internal/pkg/auth"
	"github.com/emredk/scholaris/internal/pkg/helpers"
	"github.com/emredk/scholaris/internal/pkg/logger"
	"github.com/emredk/scholaris/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	UserService         *appServices.UserService
	ProfessorService    *appServices.ProfessorService
	StudentService      *appServices.StudentService
	CourseService       *appServices.CourseService
	RosterService       *appServices.RosterService
	AuthController      *appControllers.AuthController
	UserController      *appControllers.UserController
	ProfessorController *appControllers.ProfessorController
	StudentController   *appControllers.StudentController
	CourseController    *appControllers.CourseController
	InstallController   *appControllers.InstallController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	Logger              zerolog.Logger
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
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// creates the default admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.EnsureDefaultAdmin(ctx, dbPool, cfg, lgr); err != nil {
		database.Close()
		return nil, fmt.Errorf("default admin bootstrap failed: %w", err)
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services and
// controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	dbPool := database.Pool

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	rules := appServices.DefaultCascadeRules()
	if cfg.Relationships.Transactional {
		deps.RosterService = appServices.NewTransactionalRosterService(database, rules, lgr)
	} else {
		deps.RosterService = appServices.NewRosterService(
			deps.Repos.Courses,
			deps.Repos.Professors,
			deps.Repos.Students,
			rules,
			lgr,
		)
	}

	deps.AuthService = appServices.NewAuthService(deps.Repos.Users, deps.JWTService, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.Users, lgr)
	deps.ProfessorService = appServices.NewProfessorService(
		deps.Repos.Professors,
		deps.Repos.Users,
		deps.Repos.Courses,
		deps.RosterService,
		lgr,
	)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.Students,
		deps.Repos.Users,
		deps.Repos.Courses,
		deps.RosterService,
		lgr,
	)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.Courses,
		deps.Repos.Professors,
		deps.Repos.Students,
		deps.RosterService,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.UserController = appControllers.NewUserController(deps.UserService, lgr)
	deps.ProfessorController = appControllers.NewProfessorController(deps.ProfessorService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, lgr)
	deps.InstallController = appControllers.NewInstallController(dbPool, cfg, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.ProfessorController,
		deps.StudentController,
		deps.CourseController,
		deps.InstallController,
		deps.AuthMiddleware,
	)

	return router
}
