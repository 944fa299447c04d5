package handler

import (
	"ecommerce-transactions/internal/adapter/http/middleware"
	"ecommerce-transactions/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	TransactionSvc ports.TransactionService
	TokenSvc       ports.TokenService
	RateLimitStore ports.RateLimitStore // nil = rate limiting disabled
	RateLimit      middleware.RateLimitRule
	HealthCheckers []ports.HealthChecker
	Mode           string
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode != "" {
		gin.SetMode(deps.Mode)
	}
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rl := func(c *gin.Context) { c.Next() }
	if deps.RateLimitStore != nil && deps.RateLimit.Limit > 0 {
		rl = middleware.RateLimiter(deps.RateLimitStore, "transactions", deps.RateLimit, deps.Logger)
	}

	h := NewTransactionHandler(deps.TransactionSvc)
	txAuth := middleware.TransactionAuth(deps.TokenSvc, deps.Logger)

	transactions := r.Group("/transactions", rl)
	{
		transactions.POST("", h.NewTransaction)
		transactions.GET("/:id", txAuth, h.GetTransaction)
		transactions.DELETE("/:id", txAuth, h.CancelTransaction)
		transactions.POST("/:id/auth-requests", txAuth, h.RequestAuthorization)

		// Server-to-server callbacks from gateways and the hub.
		transactions.PATCH("/:id/auth-requests", h.UpdateAuthorization)
		transactions.POST("/:id/user-receipts", h.AddUserReceipt)
	}

	return r
}
