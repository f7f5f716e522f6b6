package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/SscSPs/ledgerbook/cmd/docs"
	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
	"github.com/SscSPs/ledgerbook/internal/middleware"
	"github.com/SscSPs/ledgerbook/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// userMiddleware authenticates the caller, or records an anonymous actor when auth is off.
func userMiddleware(cfg *config.Config) gin.HandlerFunc {
	if cfg.AuthEnabled {
		return middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer)
	}
	return middleware.AnonymousUserMiddleware()
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", userMiddleware(cfg))
	RegisterAPIRoutes(v1, service)
}

// RegisterAPIRoutes registers every ledger route on rg.
func RegisterAPIRoutes(rg *gin.RouterGroup, service *portssvc.ServiceContainer) {
	registerLedgerRoutes(rg, service.Chart, service.Ledger)
	registerJournalRoutes(rg, service.Journal)
	registerReportingRoutes(rg, service.Reporting, service.Ledger)
	registerBudgetRoutes(rg, service.Budget)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
