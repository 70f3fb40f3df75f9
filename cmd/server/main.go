package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"byblos-atelier/config"
	"byblos-atelier/internal/auth"
	"byblos-atelier/internal/cache"
	"byblos-atelier/internal/database"
	"byblos-atelier/internal/handler"
	"byblos-atelier/internal/mailer"
	"byblos-atelier/internal/metrics"
	"byblos-atelier/internal/middleware"
	"byblos-atelier/internal/queue"
	"byblos-atelier/internal/repository"
	"byblos-atelier/internal/router"
	"byblos-atelier/internal/service"
	"byblos-atelier/internal/worker"
	"byblos-atelier/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.Server.Environment, cfg.Server.LogLevel)
	defer logger.Sync()

	log := logger.WithComponent("main")
	if cfg.Server.IsProduction() && cfg.Auth.JWTSecret == "change-me" {
		log.Fatal("JWT_SECRET must be set in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	metrics.RegisterPoolStats(pool)

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	defer rdb.Close()

	mailQueue, err := newMailQueue(ctx, cfg.Mail, rdb)
	if err != nil {
		log.Fatal("Failed to initialize mail queue", zap.Error(err))
	}
	renderer, err := mailer.NewRenderer()
	if err != nil {
		log.Fatal("Failed to load mail templates", zap.Error(err))
	}
	mailWorker := worker.NewMailWorker(mailQueue, renderer, mailer.New(cfg.Mail, logger.WithComponent("mail")))
	if err := mailWorker.Start(ctx); err != nil {
		log.Fatal("Failed to start mail worker", zap.Error(err))
	}

	// repositories
	txManager := database.NewTxManager(pool)
	eventRepo := repository.NewEventRepository(pool)
	ticketTypeRepo := repository.NewTicketTypeRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	statsRepo := repository.NewDashboardStatsRepository(pool)
	organizerRepo := repository.NewOrganizerRepository(pool)
	sellerRepo := repository.NewSellerRepository(pool)

	// auth
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	revocations := cache.NewRedisTokenRevocationStore(rdb)
	limiter := cache.NewRedisRateLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window)

	// services
	dashboardService := service.NewDashboardService(txManager, statsRepo)
	availabilityService := service.NewAvailabilityService(eventRepo, ticketTypeRepo, ticketRepo)
	eventService := service.NewEventService(txManager, eventRepo, availabilityService, dashboardService)
	ticketTypeService := service.NewTicketTypeService(txManager, ticketTypeRepo, eventRepo, dashboardService)
	ticketService := service.NewTicketService(txManager, ticketRepo, eventRepo, ticketTypeRepo, dashboardService)
	accountOpts := service.AccountServiceOptions{PublicURL: cfg.Server.PublicURL, ResetTTL: cfg.Auth.ResetTTL}
	organizerService := service.NewAccountService(organizerRepo, tokens, revocations, mailQueue, accountOpts)
	sellerService := service.NewAccountService(sellerRepo, tokens, revocations, mailQueue, accountOpts)
	adminService := service.NewAdminService(cfg.Admin.Email, cfg.Admin.PasswordHash, tokens, dashboardService, sellerRepo, organizerRepo)
	identityService := service.NewIdentityService(tokens, sellerRepo, organizerRepo, cfg.Admin.Email)

	cookie := handler.CookieOptions{Name: cfg.Auth.CookieName, Secure: cfg.Server.IsProduction()}
	engine := router.New(cfg, router.Handlers{
		PublicEvents: handler.NewPublicEventHandler(availabilityService),
		Events:       handler.NewEventHandler(eventService, ticketTypeService),
		Tickets:      handler.NewTicketHandler(ticketService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Organizers:   handler.NewAccountHandler(organizerService, cookie),
		Sellers:      handler.NewAccountHandler(sellerService, cookie),
		Admin:        handler.NewAdminHandler(adminService, eventService, cookie),
	},
		middleware.Authenticate(identityService, revocations, cfg.Auth),
		limiter,
		map[string]router.HealthCheck{
			"database": pool.Ping,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", server.Addr), zap.String("environment", cfg.Server.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	select {
	case <-mailWorker.Done():
	case <-shutdownCtx.Done():
		log.Warn("Mail worker did not stop in time")
	}
	log.Info("Server exited")
}

func newMailQueue(ctx context.Context, cfg config.MailConfig, rdb *redis.Client) (queue.MailQueue, error) {
	if cfg.Queue == "redis" {
		return queue.NewRedisStreamMailQueue(ctx, rdb, "mail-"+uuid.NewString(), nil)
	}
	return queue.NewMemoryMailQueue(256), nil
}
