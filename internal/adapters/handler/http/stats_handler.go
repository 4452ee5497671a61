package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carbontrackr/engine/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/stats", h.Get)
	router.GET("/badges", h.ListBadges)
}

// Get returns the current stats snapshot, or the cold-start default when
// nothing has been tracked yet.
func (h *StatsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Get(c.Request.Context()))
}

// ListBadges returns the badge list with unlock state, in catalog order.
func (h *StatsHandler) ListBadges(c *gin.Context) {
	stats := h.svc.Get(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"badges": stats.Badges})
}
