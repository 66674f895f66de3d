package handlers

import (
	portssvc "github.com/goldify/goldify_backend/internal/core/ports/services"
	"github.com/goldify/goldify_backend/internal/middleware"
	"github.com/goldify/goldify_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	publicLimiter *limiter.Limiter,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// Public gold rate routes, rate limited per client IP
	setupPublicRoutes(r, services, publicLimiter)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupPublicRoutes configures the unauthenticated rate endpoints
func setupPublicRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	publicLimiter *limiter.Limiter,
) {
	public := r.Group("/api/v1/public", middleware.RateLimit(publicLimiter))
	registerGoldRateRoutes(public, services.GoldRate)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Delegate route registration to specific handlers, passing required services
	registerCustomRateRoutes(v1, services.CustomRate)
	registerShopRecordRoutes(v1, services.ShopRecord)
	registerSaleRoutes(v1, services.Sale)
}
