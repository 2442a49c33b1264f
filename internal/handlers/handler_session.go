package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/playware/game_lounge_app/internal/apperrors"
	portssvc "github.com/playware/game_lounge_app/internal/core/ports/services"
	"github.com/playware/game_lounge_app/internal/dto"
	"github.com/playware/game_lounge_app/internal/middleware"
)

// sessionHandler handles HTTP requests related to game sessions.
type sessionHandler struct {
	sessionService portssvc.SessionSvcFacade
}

// newSessionHandler creates a new sessionHandler.
func newSessionHandler(ss portssvc.SessionSvcFacade) *sessionHandler {
	return &sessionHandler{sessionService: ss}
}

// registerSessionRoutes registers routes related to game sessions. Completed
// session history with date filtering is an admin view; the rest is available
// to any operator.
func registerSessionRoutes(rg *gin.RouterGroup, sessionService portssvc.SessionSvcFacade) {
	h := newSessionHandler(sessionService)

	sessions := rg.Group("/sessions")
	{
		sessions.POST("", h.startSession)
		sessions.GET("/:id", h.getSession)
		sessions.POST("/:id/close", h.closeSession)
		sessions.GET("/active", h.listActiveSessions)
		sessions.GET("/recent", h.listRecentSessions)
		sessions.GET("/completed", middleware.RequireAdmin(), h.listCompletedSessions)
	}
}

// startSession opens a new game session.
func (h *sessionHandler) startSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for StartSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	session, err := h.sessionService.StartSession(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error starting session", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to start session", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToSessionResponse(session))
}

// getSession retrieves a single session by ID.
func (h *sessionHandler) getSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("id")

	session, err := h.sessionService.GetSessionByID(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		} else {
			logger.Error("Failed to get session", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve session"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// closeSession completes an active session with its payment details.
func (h *sessionHandler) closeSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("id")

	var req dto.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CloseSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	session, err := h.sessionService.CloseSession(c.Request.Context(), sessionID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error closing session", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Session not found or already completed", slog.String("session_id", sessionID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found or already completed"})
		default:
			logger.Error("Failed to close session", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close session"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// listActiveSessions lists currently running sessions.
func (h *sessionHandler) listActiveSessions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	sessions, err := h.sessionService.ListActiveSessions(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list active sessions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list active sessions"})
		return
	}

	c.JSON(http.StatusOK, dto.ListSessionsResponse{Sessions: dto.ToSessionResponses(sessions)})
}

// listRecentSessions lists sessions that ended within the trailing 24 hours.
func (h *sessionHandler) listRecentSessions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	sessions, err := h.sessionService.ListRecentCompletedSessions(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list recent sessions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recent sessions"})
		return
	}

	c.JSON(http.StatusOK, dto.ListSessionsResponse{Sessions: dto.ToSessionResponses(sessions)})
}

// listCompletedSessions lists completed sessions, optionally filtered by
// creation date (from/to as RFC 3339 timestamps).
func (h *sessionHandler) listCompletedSessions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' timestamp"})
			return
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' timestamp"})
			return
		}
		to = &parsed
	}

	sessions, err := h.sessionService.ListCompletedSessions(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to list completed sessions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list completed sessions"})
		return
	}

	c.JSON(http.StatusOK, dto.ListSessionsResponse{Sessions: dto.ToSessionResponses(sessions)})
}
