package http

import (
	"github.com/gin-gonic/gin"
	"github.com/lanepos/register/config"
)

// SetupRouter creates and configures the Gin router for the lane API
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("/search", handler.SearchProducts)
			products.GET("/barcode/:code", handler.LookupBarcode)
		}

		v1.POST("/selection", handler.SelectProduct)
	}

	return router
}
