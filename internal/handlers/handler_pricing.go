package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/playware/game_lounge_app/internal/core/domain"
	"github.com/playware/game_lounge_app/internal/dto"
	"github.com/playware/game_lounge_app/internal/middleware"
	"github.com/playware/game_lounge_app/internal/utils/pricing"
)

// pricingHandler serves standalone price quotes so the counter can tell a
// customer what a stay would cost without opening a session.
type pricingHandler struct{}

// registerPricingRoutes registers the price quote route.
func registerPricingRoutes(rg *gin.RouterGroup) {
	h := &pricingHandler{}

	rg.GET("/pricing/quote", h.quote)
}

// quote computes billable hours and price for the given elapsed minutes.
func (h *pricingHandler) quote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PriceQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for PriceQuote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	billableHours := pricing.RoundToBillableHours(req.Minutes)
	price, err := pricing.CalculatePrice(domain.StationType(req.StationType), req.ControllerCount, billableHours)
	if err != nil {
		if errors.Is(err, pricing.ErrUnsupportedCapacity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Controller count must be between 1 and 4"})
			return
		}
		logger.Error("Failed to compute price quote", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute quote"})
		return
	}

	c.JSON(http.StatusOK, dto.PriceQuoteResponse{
		BillableHours: billableHours,
		Price:         price,
	})
}
