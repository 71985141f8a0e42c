package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/retail_ledger/cmd/docs"
	portssvc "github.com/SscSPs/retail_ledger/internal/core/ports/services"
	"github.com/SscSPs/retail_ledger/internal/middleware"
	"github.com/SscSPs/retail_ledger/internal/platform/config"
	"github.com/SscSPs/retail_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes. analytics may be nil.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	analytics *utils.PosthogClientWrapper,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	var loginLimit gin.HandlerFunc
	if cfg.LoginRateLimit != "" {
		limiter, err := middleware.NewLimiter(cfg.LoginRateLimit)
		if err != nil {
			slog.Warn("Invalid login rate limit, login is not rate limited",
				slog.String("rate", cfg.LoginRateLimit), slog.String("error", err.Error()))
		} else {
			loginLimit = middleware.RateLimit(limiter)
		}
	}
	registerAuthRoutes(r, services.Customer, services.Token, loginLimit)

	setupAPIV1Routes(r, cfg, services, analytics)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the authenticated /api/v1 group
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	analytics *utils.PosthogClientWrapper,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret), middleware.PosthogMiddleware(analytics))

	registerCustomerRoutes(v1, services.Customer, services.Session)
	registerAccountRoutes(v1, services.Session)
	registerTransferRoutes(v1, services.Session, services.Transfer)
	registerTransactionRoutes(v1, services.Session, services.History)
}

func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
