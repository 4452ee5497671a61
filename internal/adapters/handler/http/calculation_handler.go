package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carbontrackr/engine/internal/core/domain"
	"github.com/carbontrackr/engine/internal/core/services"
)

type CalculationHandler struct {
	svc *services.CalculationService
}

func NewCalculationHandler(svc *services.CalculationService) *CalculationHandler {
	return &CalculationHandler{svc: svc}
}

// createCalculationRequest carries raw activity quantities. No field is
// required: absent quantities are zero, and out-of-range values are sanitized
// by the calculator rather than rejected here.
type createCalculationRequest struct {
	CarDistanceKm  float64 `json:"car_distance_km"`
	ElectricityKWh float64 `json:"electricity_kwh"`
	MeatGrams      float64 `json:"meat_grams"`
	PlasticItems   float64 `json:"plastic_items"`
}

func (h *CalculationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/calculations", h.Create)
}

func (h *CalculationHandler) Create(c *gin.Context) {
	var req createCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := domain.ActivityInput{
		CarDistanceKm:  req.CarDistanceKm,
		ElectricityKWh: req.ElectricityKWh,
		MeatGrams:      req.MeatGrams,
		PlasticItems:   req.PlasticItems,
	}

	outcome := h.svc.Run(c.Request.Context(), input)

	c.JSON(http.StatusCreated, outcome)
}
