package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/campusclubs/internal/app/auth"
	appControllers "github.com/yigit/campusclubs/internal/app/controllers"
	appMigrations "github.com/yigit/campusclubs/internal/app/migrations"
	appRepos "github.com/yigit/campusclubs/internal/app/repositories"
	appRoutes "github.com/yigit/campusclubs/internal/app/routes"
	appServices "github.com/yigit/campusclubs/internal/app/services"
	"github.com/yigit/campusclubs/internal/cache"
	"github.com/yigit/campusclubs/internal/config"
	"github.com/yigit/campusclubs/internal/db"
	"github.com/yigit/campusclubs/internal/metrics"
	appMiddleware "github.com/yigit/campusclubs/internal/middleware"
	pkgAuth "github.com/yigit/campusclubs/internal/pkg/auth"
	"github.com/yigit/campusclubs/internal/pkg/helpers"
	"github.com/yigit/campusclubs/internal/pkg/logger"
	"github.com/yigit/campusclubs/internal/pkg/mail"
	"github.com/yigit/campusclubs/internal/pkg/weather"
	"github.com/yigit/campusclubs/internal/pkg/websocket"
	"github.com/yigit/campusclubs/internal/seed"
)

// DefaultConfigPath is used when no --config flag is given
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Cache          *cache.Client
	Metrics        *metrics.Metrics
	Hub            *websocket.Hub
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    *appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := logger.Logger()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection pool.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// RunMigrations applies every pending file in the configured migrations directory.
func RunMigrations(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, lgr zerolog.Logger) error {
	dir := cfg.Database.MigrationsDir
	if _, err := os.Stat(dir); err != nil {
		lgr.Error().Str("path", dir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", dir, err)
	}

	lgr.Info().Str("path", dir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(pool, lgr).MigrateFromDirectory(ctx, dir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// RunSeed creates the default admin and, when demo is set, the demo data.
func RunSeed(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, demo bool, lgr zerolog.Logger) error {
	seeder := seed.NewSeeder(appRepos.NewRepositories(pool), lgr)
	return seeder.Run(ctx, seed.Options{
		AdminEmail:         cfg.Seed.AdminEmail,
		AdminPassword:      cfg.Seed.AdminPassword,
		AdminStudentNumber: cfg.Seed.AdminStudentNumber,
		Demo:               demo,
	})
}

// SetupCache connects to redis. An unreachable redis is logged, not fatal:
// the cache and the rate limiter fail open.
func SetupCache(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) *cache.Client {
	client := cache.New(cache.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger.Component("cache"))

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, continuing without cache")
	} else {
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established.")
	}
	return client
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, pool *pgxpool.Pool, redisClient *cache.Client, lgr zerolog.Logger) (*Dependencies, error) {
	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	deps := &Dependencies{
		Logger:  lgr,
		Cache:   redisClient,
		Metrics: metrics.New(),
		Hub:     websocket.NewHub(logger.Component("websocket")),
		Repos:   appRepos.NewRepositories(pool),
	}
	deps.Metrics.TrackConnections(deps.Hub.ConnectionCount)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.ClubRepository, logger.Component("authz"))
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	var mailer mail.Mailer
	if cfg.Mail.Host != "" {
		mailer = mail.NewService(mail.SMTPConfig{
			Host:        cfg.Mail.Host,
			Port:        cfg.Mail.Port,
			Username:    cfg.Mail.Username,
			Password:    cfg.Mail.Password,
			From:        cfg.Mail.From,
			FrontendURL: cfg.Mail.FrontendURL,
		}, logger.Component("mail"))
	} else {
		lgr.Warn().Msg("Mail host not configured, outgoing mail disabled")
	}

	// a nil *cache.Client must not reach the services as a non-nil interface
	var responseCache appServices.Cache
	if redisClient != nil {
		responseCache = redisClient
	}

	notificationService := appServices.NewNotificationService(
		deps.Repos.NotificationRepository, deps.Hub, deps.Metrics, logger.Component("notifications"))

	authService := appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.PasswordResetTokenRepository,
		deps.JWTService,
		mailer,
		helpers.ParseDuration(cfg.Mail.ResetTokenTTL, appServices.DefaultResetTokenTTL),
		logger.Component("auth"),
	)
	clubService := appServices.NewClubService(
		deps.Repos.ClubRepository,
		deps.Repos.ClubFollowerRepository,
		deps.Repos.EventRepository,
		deps.AuthzService,
		notificationService,
		responseCache,
		deps.Metrics,
		helpers.ParseDuration(cfg.Cache.ClubListTTL, 5*time.Minute),
		logger.Component("clubs"),
	)
	eventService := appServices.NewEventService(
		deps.Repos.EventRepository,
		deps.Repos.EventParticipantRepository,
		deps.AuthzService,
		notificationService,
		responseCache,
		deps.Metrics,
		helpers.ParseDuration(cfg.Cache.EventListTTL, time.Minute),
		logger.Component("events"),
	)
	commentService := appServices.NewCommentService(
		deps.Repos.CommentRepository, deps.Repos.EventRepository, deps.Repos.UserRepository, logger.Component("comments"))
	userService := appServices.NewUserService(
		deps.Repos.UserRepository, deps.Repos.EventParticipantRepository, deps.Repos.ClubFollowerRepository, logger.Component("users"))
	adminService := appServices.NewAdminService(
		deps.Repos.UserRepository, deps.Repos.StatsRepository, notificationService, logger.Component("admin"))

	weatherClient := weather.NewClient(weather.Config{
		GeocodingURL: cfg.Weather.GeocodingURL,
		ForecastURL:  cfg.Weather.ForecastURL,
		Timeout:      helpers.ParseDuration(cfg.Weather.Timeout, 10*time.Second),
	})
	weatherService := appServices.NewWeatherService(
		weatherClient,
		responseCache,
		deps.Metrics,
		helpers.ParseDuration(cfg.Cache.WeatherTTL, 15*time.Minute),
		cfg.Weather.DefaultCity,
		logger.Component("weather"),
	)

	var redisPinger appControllers.Pinger
	if redisClient != nil {
		redisPinger = redisClient
	}

	deps.Controllers = &appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(authService, lgr),
		Club:         appControllers.NewClubController(clubService, lgr),
		Event:        appControllers.NewEventController(eventService, lgr),
		Comment:      appControllers.NewCommentController(commentService, lgr),
		Notification: appControllers.NewNotificationController(notificationService, lgr),
		User:         appControllers.NewUserController(userService, lgr),
		Admin:        appControllers.NewAdminController(adminService, lgr),
		Weather:      appControllers.NewWeatherController(weatherService, lgr),
		Health:       appControllers.NewHealthController(appControllers.PingFunc(pool.Ping), redisPinger),
		Socket:       websocket.NewHandler(deps.Hub, cfg.Server.AllowedOrigins, logger.Component("websocket")),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.Metrics(deps.Metrics),
		appMiddleware.CORS(cfg.Server.AllowedOrigins),
	)

	if cfg.RateLimit.Enabled && deps.Cache != nil {
		window := helpers.ParseDuration(cfg.RateLimit.Window, time.Minute)
		router.Use(appMiddleware.RateLimit(deps.Cache, cfg.RateLimit.Requests, window, logger.Component("ratelimit")))
		lgr.Info().Int("requests", cfg.RateLimit.Requests).Dur("window", window).Msg("Rate limiting enabled")
	}

	appRoutes.SetupSwagger(router)
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
