package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/carbontrackr/engine/internal/core/services"
)

type TrendHandler struct {
	svc *services.TrendService
}

func NewTrendHandler(svc *services.TrendService) *TrendHandler {
	return &TrendHandler{svc: svc}
}

func (h *TrendHandler) RegisterRoutes(router *gin.RouterGroup) {
	trends := router.Group("/trends")
	{
		trends.GET("/summary", h.Summary)
		trends.GET("/series", h.Series)
	}
}

func (h *TrendHandler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Summarize(c.Request.Context()))
}

func (h *TrendHandler) Series(c *gin.Context) {
	window := services.SeriesWindowWeek
	if raw := c.Query("window"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window, expected 7 or 30"})
			return
		}
		window = parsed
	}

	if window != services.SeriesWindowWeek && window != services.SeriesWindowMonth {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window, expected 7 or 30"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"window": window,
		"points": h.svc.BuildSeries(c.Request.Context(), window),
	})
}
