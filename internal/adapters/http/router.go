// Package http composes the gin engine: middleware chain, route
// groups, and the 404 fallback. Composition root for the transport
// layer — everything here is wiring, no business logic.
package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prashant0321/wallet-service/internal/adapters/http/common"
	"github.com/prashant0321/wallet-service/internal/adapters/http/handlers"
	"github.com/prashant0321/wallet-service/internal/adapters/http/middleware"
)

// RouterConfig configures the router.
type RouterConfig struct {
	Logger         *slog.Logger
	Environment    string
	Version        string
	AllowedOrigins []string
	JWTSecret      string
	JWTIssuer      string
	Verifier       middleware.AccountVerifier
	Wallet         *handlers.WalletHandler
	Catalog        *handlers.CatalogHandler
}

// NewRouter builds the gin engine described by spec §6: health and
// metrics endpoints open to anyone, the wallet/catalog endpoints
// behind bearer auth, mutating endpoints under a stricter rate limit.
func NewRouter(config *RouterConfig) *gin.Engine {
	if config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupValidator()

	router.Use(middleware.Recovery(&middleware.RecoveryConfig{
		Logger:           config.Logger,
		EnableStackTrace: config.Environment != "production",
	}))
	router.Use(middleware.RequestID())
	corsConfig := middleware.DefaultCORSConfig()
	if len(config.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = config.AllowedOrigins
	}
	router.Use(middleware.CORS(corsConfig))
	router.Use(middleware.Logging(&middleware.LoggingConfig{Logger: config.Logger}))
	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
	router.Use(middleware.Metrics())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthHandler := handlers.NewHealthHandler("wallet-service", config.Version)
	router.GET("/health", healthHandler.Health)

	wallet := router.Group("/wallet")
	wallet.Use(middleware.Auth(&middleware.AuthConfig{
		Secret:   config.JWTSecret,
		Issuer:   config.JWTIssuer,
		Verifier: config.Verifier,
	}))
	{
		wallet.GET("/balance/:account_id/:asset_type_id", config.Wallet.GetBalance)
		wallet.GET("/transactions/:account_id/:asset_type_id", config.Wallet.GetTransactionHistory)
		wallet.GET("/asset-types", config.Catalog.ListAssetTypes)
		wallet.GET("/accounts", config.Catalog.ListAccounts)

		mutating := wallet.Group("")
		mutating.Use(middleware.TransactionRateLimit())
		{
			mutating.POST("/topup", config.Wallet.TopUp)
			mutating.POST("/bonus", config.Wallet.IssueBonus)
			mutating.POST("/spend", config.Wallet.Spend)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		common.Error(c, 404, "NOT_FOUND", "endpoint not found")
	})

	return router
}
