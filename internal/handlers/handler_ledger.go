package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/playware/game_lounge_app/internal/apperrors"
	portssvc "github.com/playware/game_lounge_app/internal/core/ports/services"
	"github.com/playware/game_lounge_app/internal/dto"
	"github.com/playware/game_lounge_app/internal/middleware"
)

// ledgerHandler handles HTTP requests related to the cash ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers routes related to the cash ledger. Any
// operator can record a movement from the counter; the full listing is an
// admin view.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("", h.addEntry)
		ledger.GET("/balance", h.currentBalance)
		ledger.GET("", middleware.RequireAdmin(), h.listEntries)
	}
}

// addEntry records a manual cash movement.
func (h *ledgerHandler) addEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.ledgerService.AddEntry(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error adding ledger entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to add ledger entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add ledger entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// listEntries returns the full ledger, newest first, with the current balance.
func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entries, err := h.ledgerService.ListEntries(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list ledger entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ledger entries"})
		return
	}

	balance, err := h.ledgerService.CurrentBalance(c.Request.Context())
	if err != nil {
		logger.Error("Failed to read ledger balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read ledger balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ListLedgerEntriesResponse{
		Entries:        dto.ToLedgerEntryResponses(entries),
		CurrentBalance: balance,
	})
}

// currentBalance returns the ledger's running balance.
func (h *ledgerHandler) currentBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	balance, err := h.ledgerService.CurrentBalance(c.Request.Context())
	if err != nil {
		logger.Error("Failed to read ledger balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read ledger balance"})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{CurrentBalance: balance})
}
