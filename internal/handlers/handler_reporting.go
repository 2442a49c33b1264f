package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/playware/game_lounge_app/internal/core/ports/services"
	"github.com/playware/game_lounge_app/internal/dto"
	"github.com/playware/game_lounge_app/internal/middleware"
)

// reportingHandler handles HTTP requests for dashboard aggregates.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the admin dashboard routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports", middleware.RequireAdmin())
	{
		reports.GET("/dashboard", h.dashboardStats)
	}
}

// dashboardStats returns today's counters for the operator dashboard.
func (h *reportingHandler) dashboardStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stats, err := h.reportingService.DashboardStats(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute dashboard stats", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardStatsResponse(stats))
}
