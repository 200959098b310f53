package routes

import (
	"os"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/core/container"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/middleware"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/rate_limiter"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/security"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const openapiFilePath = "./docs/index.html"

// NewRouter builds the engine with the shared middleware chain and every
// handler the container holds.
func NewRouter(c *container.Container, version string) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(c.Logger))
	router.Use(middleware.RequestLogger(c.Logger))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	RegisterUtilityRoutes(router, c, version)

	api := router.Group("/api")
	api.Use(middleware.TimeoutMiddleware(c.Config.Server.RequestTimeout))
	api.Use(security.IdentityMiddleware([]byte(c.Config.JWT.Secret)))
	RegisterAPIRoutes(api, c)

	return router
}

// RegisterAPIRoutes mounts the inventory handlers. Writes share one rate
// limiter keyed by client.
func RegisterAPIRoutes(api *gin.RouterGroup, c *container.Container) {
	submitGuard := rate_limiter.Middleware(c.RateLimiter)

	c.LedgerHandler.RegisterRoutes(api)
	c.ReceiptHandler.RegisterRoutes(api, submitGuard)
	c.ConsumptionHandler.RegisterRoutes(api, submitGuard)
	c.ReportHandler.RegisterRoutes(api)
	c.TransactionHandler.RegisterRoutes(api)

	if c.ImportHandler != nil {
		c.ImportHandler.RegisterRoutes(api, submitGuard)
	}
	if c.SnapshotHandler != nil {
		c.SnapshotHandler.RegisterRoutes(api)
	}
}

func RegisterUtilityRoutes(router *gin.Engine, c *container.Container, version string) {
	router.GET("/health", middleware.NewHealth(version, c.Checks).Handler())

	if _, err := os.Stat(openapiFilePath); err == nil {
		router.GET("/openapi.html", func(ctx *gin.Context) {
			ctx.File(openapiFilePath)
		})
		c.Logger.Info("Route /openapi.html registered")
	} else {
		c.Logger.Debug("API docs not found, /openapi.html not registered", zap.String("path", openapiFilePath))
	}
}
