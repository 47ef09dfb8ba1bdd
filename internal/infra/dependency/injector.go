// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/carbon-tracker/backend/config"
	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/application/usecase/auth"
	"github.com/carbon-tracker/backend/internal/application/usecase/dashboard"
	"github.com/carbon-tracker/backend/internal/application/usecase/emission"
	"github.com/carbon-tracker/backend/internal/application/usecase/factor"
	"github.com/carbon-tracker/backend/internal/application/usecase/report"
	"github.com/carbon-tracker/backend/internal/domain/unit"
	"github.com/carbon-tracker/backend/internal/infra/server/router"
	"github.com/carbon-tracker/backend/internal/integration/adapters"
	"github.com/carbon-tracker/backend/internal/integration/email"
	"github.com/carbon-tracker/backend/internal/integration/email/templates"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/validation"
	"github.com/carbon-tracker/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	FactorRepo  adapter.EmissionFactorRepository
	SeedFactors *factor.SeedFactorsUseCase
	// EmailSender is the Resend client, or a recording mock when no API key is set.
	EmailSender adapter.EmailSender
	// EmailWorker is nil when the worker is disabled.
	EmailWorker *email.Worker
}

// NewInjector wires repositories, use cases and controllers. redisClient may be
// nil, in which case login attempts are counted in process memory.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	if err := validation.Register(); err != nil {
		return nil, err
	}

	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	factorRepo := persistence.NewEmissionFactorRepository(db)
	inputRepo := persistence.NewUserInputRepository(db)
	reportRepo := persistence.NewReportRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Services
	converter := unit.Default()
	passwordService := adapters.NewPasswordService(cfg.Security.BcryptCost)
	tokenService := adapters.NewTokenService(adapters.TokenConfig{
		Secret:        cfg.JWT.Secret,
		AccessExpiry:  cfg.JWT.AccessTokenExpiry,
		RefreshExpiry: cfg.JWT.RefreshTokenExpiry,
	}, tokenRepo)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	var sender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		client, err := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail, cfg.Email.ResendBaseURL)
		if err != nil {
			return nil, err
		}
		sender = client
	} else {
		slog.Warn("RESEND_API_KEY not set, emails will be recorded but not sent")
		sender = email.NewMockEmailSender()
	}

	var worker *email.Worker
	if cfg.Email.WorkerEnabled {
		renderer, err := templates.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to load email templates: %w", err)
		}
		worker = email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
			PollInterval:  cfg.Email.PollInterval,
			BatchSize:     cfg.Email.BatchSize,
			RetentionDays: cfg.Email.RetentionDays,
		})
	}

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Factor use cases
	listFactorsUseCase := factor.NewListFactorsUseCase(factorRepo)
	createFactorUseCase := factor.NewCreateFactorUseCase(factorRepo, converter)
	seedFactorsUseCase := factor.NewSeedFactorsUseCase(factorRepo, converter)

	// Calculation use cases
	calculateUseCase := emission.NewCalculateSingleInputUseCase(factorRepo, inputRepo, converter)
	listInputsUseCase := emission.NewListInputsUseCase(inputRepo)

	// Aggregation use cases
	summarizeScopesUseCase := dashboard.NewSummarizeScopesUseCase(inputRepo)
	monthlySeriesUseCase := dashboard.NewMonthlySeriesUseCase(inputRepo)
	dashboardSummaryUseCase := dashboard.NewGetDashboardSummaryUseCase(summarizeScopesUseCase, monthlySeriesUseCase)

	// Report use cases
	generateReportUseCase := report.NewGenerateReportUseCase(summarizeScopesUseCase, reportRepo)
	listReportsUseCase := report.NewListReportsUseCase(reportRepo)
	getReportUseCase := report.NewGetReportUseCase(reportRepo)

	// Controllers
	var redisPing controller.Pinger
	if redisClient != nil {
		redisPing = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	healthController := controller.NewHealthController(func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}, redisPing)

	authController := controller.NewAuthController(registerUseCase, loginUseCase, refreshTokenUseCase, logoutUseCase)
	factorController := controller.NewFactorController(listFactorsUseCase, createFactorUseCase)
	inputController := controller.NewInputController(calculateUseCase, listInputsUseCase)
	dashboardController := controller.NewDashboardController(dashboardSummaryUseCase, summarizeScopesUseCase, monthlySeriesUseCase)
	reportController := controller.NewReportController(generateReportUseCase, listReportsUseCase, getReportUseCase, userRepo, emailService)
	unitController := controller.NewUnitController(converter)

	// Middleware
	limitStore := middleware.NewMemoryLimitStore()
	if redisClient != nil {
		limitStore = middleware.NewRedisLimitStore(redisClient)
	}
	loginRateLimiter := middleware.NewRateLimiter(limitStore, middleware.RateLimiterConfig{
		Prefix:      "ratelimit:login",
		MaxAttempts: cfg.RateLimit.MaxAttempts,
		Window:      cfg.RateLimit.Window,
		Enabled:     cfg.RateLimit.Enabled,
	})
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		factorController,
		inputController,
		dashboardController,
		reportController,
		unitController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		FactorRepo:  factorRepo,
		SeedFactors: seedFactorsUseCase,
		EmailSender: sender,
		EmailWorker: worker,
	}, nil
}
