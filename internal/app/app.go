package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"destined_affinity/database"
	"destined_affinity/internal/auth"
	"destined_affinity/internal/config"
	"destined_affinity/internal/email"
	"destined_affinity/internal/events"
	"destined_affinity/internal/handlers"
	"destined_affinity/internal/logger"
	"destined_affinity/internal/metrics"
	"destined_affinity/internal/middleware"
	"destined_affinity/internal/repositories"
	"destined_affinity/internal/routes"
	"destined_affinity/internal/services"
	"destined_affinity/internal/storage"
	"destined_affinity/internal/validator"
	"destined_affinity/internal/workers"
	"destined_affinity/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies - внешние системы; nil-поля заменяются значениями по умолчанию
type Dependencies struct {
	Publisher     events.Publisher
	Storage       storage.Storage
	EmailProvider email.Provider
	Metrics       *metrics.Metrics
	Now           func() time.Time
}

// Application - собранное приложение
type Application struct {
	Router    *gin.Engine
	Services  *services.ServiceContainer
	Tokens    *auth.TokenService
	Worker    *workers.BacklogWorker
	Notifier  *email.Notifier
	Publisher events.Publisher
	Metrics   *metrics.Metrics
}

func Run() {
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(!cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(database.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	logger.Info("Database connected")

	deps, err := buildDependencies(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize dependencies", "error", err)
	}

	application := SetupRouter(cfg, gormDB, sqlDB, deps)
	defer application.Publisher.Close()

	if err := seedFirstAdmin(ctx, gormDB, cfg, application.Services.MemberService); err != nil {
		// без админа сервер не запускаем
		logger.Fatal("Failed to seed first admin", "error", err)
	}

	application.Worker.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(fmt.Sprintf("Server starting on %s", address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	application.Notifier.Wait()
	logger.Info("Server stopped")
}

// buildDependencies поднимает Redis, хранилище и SMTP по конфигу
func buildDependencies(ctx context.Context, cfg *config.Config) (Dependencies, error) {
	var deps Dependencies

	if cfg.Events.RedisURL != "" {
		publisher, err := events.NewRedisPublisher(ctx, cfg.Events.RedisURL, cfg.Events.Stream, cfg.Events.MaxLen)
		if err != nil {
			return deps, err
		}
		deps.Publisher = publisher
		logger.Info("Audit events enabled", "stream", cfg.Events.Stream)
	} else {
		logger.Warn("REDIS_URL is not set. Audit events are disabled.")
	}

	store, err := storage.NewStorage(ctx, storage.Config{
		Type:       cfg.Storage.Type,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PresignTTL: cfg.PresignTTL(),
	})
	if err != nil {
		return deps, err
	}
	deps.Storage = store
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	if cfg.Email.Enabled {
		provider := email.NewSMTPProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err := provider.Validate(); err != nil {
			return deps, err
		}
		deps.EmailProvider = provider
	} else {
		logger.Warn("SMTP is not configured. Emails go to the log.")
	}

	return deps, nil
}

// SetupRouter собирает репозитории, сервисы, хэндлеры и роутер
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, sqlDB *sql.DB, deps Dependencies) *Application {
	if deps.Publisher == nil {
		deps.Publisher = events.NoopPublisher{}
	}
	if deps.Storage == nil {
		deps.Storage = storage.NewLocalStorage(storage.Config{BaseURL: cfg.Storage.BaseURL, PresignTTL: cfg.PresignTTL()})
	}
	if deps.EmailProvider == nil {
		deps.EmailProvider = email.LogProvider{}
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}

	notifier := email.NewNotifier(deps.EmailProvider, email.NewTemplateManager())
	effects := &services.Effects{
		Publisher: deps.Publisher,
		Metrics:   deps.Metrics,
		Notifier:  notifier,
		Now:       deps.Now,
	}

	// 1. Репозитории
	memberRepo := repositories.NewMemberRepository()
	biodataRepo := repositories.NewBiodataRepository()
	accessRepo := repositories.NewAccessRequestRepository()
	favoriteRepo := repositories.NewFavoriteRepository()
	marriageRepo := repositories.NewMarriageRepository()
	paymentRepo := repositories.NewPaymentRepository()

	// 2. Сервисы
	serviceContainer := initializeServices(cfg, deps, effects, memberRepo, biodataRepo, accessRepo, favoriteRepo, marriageRepo, paymentRepo)

	// 3. Хэндлеры
	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.TokenTTL(), cfg.JWT.Issuer)
	appHandlers := initializeHandlers(cfg, serviceContainer, tokens, sqlDB)

	// 4. Gin
	ginRouter := initializeGinRouter(cfg, gormDB, deps.Metrics)
	routes.RegisterRoutes(ginRouter, appHandlers, routes.Auth{
		Optional: middleware.OptionalAuthMiddleware(tokens, cfg.JWT.CookieName),
		Required: middleware.AuthMiddleware(tokens, cfg.JWT.CookieName),
	}, gin.WrapH(deps.Metrics.Handler()))

	worker := workers.NewBacklogWorker(gormDB, accessRepo, memberRepo, deps.Metrics, cfg.BacklogInterval())

	return &Application{
		Router:    ginRouter,
		Services:  serviceContainer,
		Tokens:    tokens,
		Worker:    worker,
		Notifier:  notifier,
		Publisher: deps.Publisher,
		Metrics:   deps.Metrics,
	}
}

func initializeServices(
	cfg *config.Config,
	deps Dependencies,
	effects *services.Effects,
	memberRepo repositories.MemberRepository,
	biodataRepo repositories.BiodataRepository,
	accessRepo repositories.AccessRequestRepository,
	favoriteRepo repositories.FavoriteRepository,
	marriageRepo repositories.MarriageRepository,
	paymentRepo repositories.PaymentRepository,
) *services.ServiceContainer {
	guard := auth.NewGuard(memberRepo)

	memberService := services.NewMemberService(memberRepo, guard, effects)
	biodataService := services.NewBiodataService(biodataRepo, accessRepo, guard, effects)
	accessService := services.NewAccessRequestService(accessRepo, biodataRepo, memberRepo, guard, effects)
	favoriteService := services.NewFavoriteService(favoriteRepo, biodataRepo, guard)
	marriageService := services.NewMarriageService(marriageRepo, biodataRepo, effects)
	paymentService := services.NewPaymentService(paymentRepo, accessService, memberService, effects)
	statsService := services.NewStatsService(biodataRepo, marriageRepo, memberRepo, accessRepo, paymentRepo, guard)
	uploadService := services.NewUploadService(deps.Storage, cfg.Upload.AllowedTypes)

	return &services.ServiceContainer{
		MemberService:        memberService,
		BiodataService:       biodataService,
		AccessRequestService: accessService,
		FavoriteService:      favoriteService,
		MarriageService:      marriageService,
		PaymentService:       paymentService,
		StatsService:         statsService,
		UploadService:        uploadService,
	}
}

func initializeHandlers(cfg *config.Config, svc *services.ServiceContainer, tokens *auth.TokenService, sqlDB *sql.DB) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler: handlers.NewAuthHandler(baseHandler, svc.MemberService, tokens, handlers.CookieOptions{
			Name:   cfg.JWT.CookieName,
			Secure: cfg.IsProduction(),
		}),
		MemberHandler:        handlers.NewMemberHandler(baseHandler, svc.MemberService),
		BiodataHandler:       handlers.NewBiodataHandler(baseHandler, svc.BiodataService),
		AccessRequestHandler: handlers.NewAccessRequestHandler(baseHandler, svc.AccessRequestService),
		FavoriteHandler:      handlers.NewFavoriteHandler(baseHandler, svc.FavoriteService),
		MarriageHandler:      handlers.NewMarriageHandler(baseHandler, svc.MarriageService),
		PaymentHandler:       handlers.NewPaymentHandler(baseHandler, svc.PaymentService),
		StatsHandler:         handlers.NewStatsHandler(baseHandler, svc.StatsService),
		UploadHandler:        handlers.NewUploadHandler(baseHandler, svc.UploadService),
		HealthHandler:        handlers.NewHealthHandler(sqlDB, cfg.QueryTimeout()),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, m *metrics.Metrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.DBMiddleware(db, cfg.QueryTimeout()))
	return router
}

// seedFirstAdmin создает или повышает первого админа; повторный запуск ничего не меняет
func seedFirstAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config, memberService services.MemberService) error {
	adminEmail := cfg.Admin.FirstAdminEmail
	if adminEmail == "" {
		logger.Warn("FIRST_ADMIN_EMAIL is not set. Skipping admin seeding.")
		return nil
	}

	admin, err := memberService.EnsureAdmin(db.WithContext(ctx), adminEmail)
	if err != nil {
		return err
	}
	logger.Info("First admin ensured", "email", admin.Email)
	return nil
}
