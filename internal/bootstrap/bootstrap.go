package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/axelstam/coursetalk/internal/app/controllers"
	appMigrations "github.com/axelstam/coursetalk/internal/app/migrations"
	appRepos "github.com/axelstam/coursetalk/internal/app/repositories"
	appRoutes "github.com/axelstam/coursetalk/internal/app/routes"
	appServices "github.com/axelstam/coursetalk/internal/app/services"
	"github.com/axelstam/coursetalk/internal/config"
	"github.com/axelstam/coursetalk/internal/db"
	appMiddleware "github.com/axelstam/coursetalk/internal/middleware"
	pkgAuth "github.com/axelstam/coursetalk/internal/pkg/auth"
	"github.com/axelstam/coursetalk/internal/pkg/logger"
	"github.com/axelstam/coursetalk/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        *appServices.AuthService
	UserService        *appServices.UserService
	FollowService      *appServices.FollowService
	QuestionService    *appServices.QuestionService
	CourseService      *appServices.CourseService
	AuthController     *appControllers.AuthController
	UserController     *appControllers.UserController
	FollowController   *appControllers.FollowController
	QuestionController *appControllers.QuestionController
	CourseController   *appControllers.CourseController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	Logger             zerolog.Logger
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
// seeds the default course rooms.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExp(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.Users, deps.Repos.Tokens, deps.JWTService, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.Users, deps.Repos.Follows)
	deps.FollowService = appServices.NewFollowService(deps.Repos.Users, deps.Repos.Follows)
	deps.QuestionService = appServices.NewQuestionService(deps.Repos.Questions, deps.Repos.Answers, deps.Repos.Courses, lgr)
	deps.CourseService = appServices.NewCourseService(deps.Repos.Courses)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.Tokens)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.FollowController = appControllers.NewFollowController(deps.FollowService)
	deps.QuestionController = appControllers.NewQuestionController(deps.QuestionService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)

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

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.FollowController,
		deps.QuestionController,
		deps.CourseController,
		deps.AuthMiddleware,
	)

	return router
}
