package routes

import (
	_ "destined_affinity/docs"
	"destined_affinity/internal/handlers"
	"destined_affinity/internal/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Auth - middleware для двух классов маршрутов
type Auth struct {
	Optional gin.HandlerFunc
	Required gin.HandlerFunc
}

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authMiddleware Auth,
	metricsHandler gin.HandlerFunc,
) {
	ginRouter.GET("/", appHandlers.HealthHandler.Root)
	ginRouter.GET("/health", appHandlers.HealthHandler.Health)
	if metricsHandler != nil {
		ginRouter.GET("/metrics", metricsHandler)
	}
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Регистрация HTTP API v1
	api := ginRouter.Group("/api/v1")
	public := api.Group("", authMiddleware.Optional)
	private := api.Group("", authMiddleware.Required)
	{
		for _, h := range appHandlers.Registrars() {
			h.RegisterRoutes(public, private)
		}
	}

	logger.Info("HTTP routes registered", "count", len(ginRouter.Routes()))
}
