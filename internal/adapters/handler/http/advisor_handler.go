package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carbontrackr/engine/internal/core/domain"
	"github.com/carbontrackr/engine/internal/core/services"
)

// AdvisorHandler exposes the daily tip, the AI settings and the enrichment
// surface. Everything here degrades gracefully: enrichment being down never
// produces a 5xx beyond the explicit coach endpoint.
type AdvisorHandler struct {
	tips    *services.TipService
	advisor *services.AdvisorService
}

func NewAdvisorHandler(tips *services.TipService, advisor *services.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{
		tips:    tips,
		advisor: advisor,
	}
}

type aiSettingsRequest struct {
	APIKey           string `json:"api_key"`
	Enabled          bool   `json:"enabled"`
	PersonalizedTips bool   `json:"personalized_tips"`
}

type aiSettingsResponse struct {
	Enabled          bool `json:"enabled"`
	PersonalizedTips bool `json:"personalized_tips"`
	HasAPIKey        bool `json:"has_api_key"`
}

type coachRequest struct {
	Question string `json:"question" binding:"required"`
}

func (h *AdvisorHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tips/today", h.TodaysTip)
	router.GET("/recommendations/latest", h.LatestRecommendation)
	router.POST("/coach", h.AskCoach)

	settings := router.Group("/settings")
	{
		settings.GET("/ai", h.GetSettings)
		settings.PUT("/ai", h.UpdateSettings)
	}
}

func (h *AdvisorHandler) TodaysTip(c *gin.Context) {
	c.JSON(http.StatusOK, h.tips.TodaysTip(c.Request.Context()))
}

func (h *AdvisorHandler) LatestRecommendation(c *gin.Context) {
	recommendation := h.advisor.LatestRecommendation(c.Request.Context())
	if recommendation == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no recommendation generated yet"})
		return
	}
	c.JSON(http.StatusOK, recommendation)
}

// GetSettings returns the enrichment settings with the credential redacted.
func (h *AdvisorHandler) GetSettings(c *gin.Context) {
	settings := h.advisor.Settings(c.Request.Context())
	c.JSON(http.StatusOK, aiSettingsResponse{
		Enabled:          settings.Enabled,
		PersonalizedTips: settings.PersonalizedTips,
		HasAPIKey:        settings.APIKey != "",
	})
}

// UpdateSettings stores new enrichment settings. An empty api_key keeps the
// stored credential so flag toggles do not require resending the secret.
func (h *AdvisorHandler) UpdateSettings(c *gin.Context) {
	var req aiSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	saved, err := h.advisor.SaveSettings(c.Request.Context(), domain.AISettings{
		APIKey:           req.APIKey,
		Enabled:          req.Enabled,
		PersonalizedTips: req.PersonalizedTips,
	})
	if err != nil {
		log.Printf("[ERROR] Failed to save AI settings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, aiSettingsResponse{
		Enabled:          saved.Enabled,
		PersonalizedTips: saved.PersonalizedTips,
		HasAPIKey:        saved.APIKey != "",
	})
}

// AskCoach is the only endpoint that depends on the provider synchronously.
// A missing configuration or provider failure maps to 503, never a crash.
func (h *AdvisorHandler) AskCoach(c *gin.Context) {
	var req coachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	answer, err := h.advisor.AskCoach(c.Request.Context(), req.Question)
	if err != nil {
		if errors.Is(err, domain.ErrAINotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai coach is not configured"})
			return
		}
		log.Printf("[ERROR] Coach question failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai coach is unavailable right now"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
