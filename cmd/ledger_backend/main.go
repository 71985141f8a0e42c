package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portsrepo "github.com/SscSPs/retail_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/retail_ledger/internal/core/ports/services"
	"github.com/SscSPs/retail_ledger/internal/core/services"
	"github.com/SscSPs/retail_ledger/internal/handlers"
	"github.com/SscSPs/retail_ledger/internal/middleware"
	"github.com/SscSPs/retail_ledger/internal/platform/config"
	"github.com/SscSPs/retail_ledger/internal/platform/events"
	"github.com/SscSPs/retail_ledger/internal/platform/locking"
	"github.com/SscSPs/retail_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/retail_ledger/internal/repositories/ledgerhttp"
	"github.com/SscSPs/retail_ledger/internal/repositories/memory"
	"github.com/SscSPs/retail_ledger/internal/utils"
	"github.com/SscSPs/retail_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Retail Ledger API
// @version 1.0
// @description Accounts, balances and transfers of a retail-banking ledger.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openLedgerStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open ledger store", slog.String("backend", cfg.StoreBackend), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	var publisher events.Publisher
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Error("Failed to connect to AMQP broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		logger.Info("Publishing ledger events", slog.String("exchange", cfg.AMQPExchange))
	}

	var locker portssvc.AccountLocker
	if cfg.RedisURL != "" {
		redisClient, err := locking.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
		locker = locking.NewRedisLocker(redisClient, locking.LockOptions{Expiry: cfg.LockExpiry})
		logger.Info("Account mutations are serialised through Redis locks")
	} else {
		logger.Warn("REDIS_URL not set, concurrent transfers on one account are not serialised")
	}

	analytics := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer analytics.Close()

	container := services.NewServiceContainer(cfg, repos, publisher, locker)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.RateLimit != "" {
		limiter, err := middleware.NewLimiter(cfg.RateLimit)
		if err != nil {
			logger.Error("Invalid RATE_LIMIT", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
			os.Exit(1)
		}
		r.Use(middleware.RateLimit(limiter))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container, analytics)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("backend", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}
}

// openLedgerStore builds the repositories of the configured backend and a func releasing them.
func openLedgerStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}, nil

	case config.BackendHTTP:
		client, err := ledgerhttp.NewClient(cfg.LedgerStoreURL, cfg.LedgerStoreTimeout, ledgerhttp.WithLogger(logger))
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Using remote ledger store", slog.String("url", cfg.LedgerStoreURL))
		return ledgerhttp.NewRepositoryProvider(client), func() {}, nil

	default:
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(pool), pool.Close, nil
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
