package http

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/carbontrackr/engine/internal/adapters/handler/http/middleware"
	"github.com/carbontrackr/engine/internal/core/domain"
)

type RouterDependencies struct {
	CalculationHandler *CalculationHandler
	StatsHandler       *StatsHandler
	TrendHandler       *TrendHandler
	AdvisorHandler     *AdvisorHandler
	Store              domain.BlobStore
	Redis              *redis.Client
	StartTime          time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	if deps.Redis != nil {
		router.Use(middleware.RateLimiter(deps.Redis, 100, 1*time.Minute))
	}

	router.GET("/health", func(c *gin.Context) {
		storageStatus := "connected"
		if _, err := deps.Store.Get(c.Request.Context(), "health_probe"); err != nil && !errors.Is(err, domain.ErrBlobNotFound) {
			storageStatus = "unreachable"
		}

		statusCode := 200
		if storageStatus == "unreachable" {
			statusCode = 503
		}

		c.JSON(statusCode, gin.H{
			"status":  "ok",
			"storage": storageStatus,
			"uptime":  time.Since(deps.StartTime).String(),
		})
	})

	apiV1 := router.Group("/api/v1")

	deps.CalculationHandler.RegisterRoutes(apiV1)
	deps.StatsHandler.RegisterRoutes(apiV1)
	deps.TrendHandler.RegisterRoutes(apiV1)
	deps.AdvisorHandler.RegisterRoutes(apiV1)

	return router
}
