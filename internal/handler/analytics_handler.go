package handler

import (
	"net/http"

	"classroom-env-monitoring/internal/service"
	"classroom-env-monitoring/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// GetAnalytics returns fleet totals plus the room status distribution
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	analytics, err := h.analyticsService.GetFleetAnalytics()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch analytics")
		return
	}

	utils.SuccessResponse(c, analytics)
}

// GetOccupancyStats returns the room occupancy summary
func (h *AnalyticsHandler) GetOccupancyStats(c *gin.Context) {
	stats, err := h.analyticsService.GetOccupancyStats()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch occupancy stats")
		return
	}

	utils.SuccessResponse(c, stats)
}
