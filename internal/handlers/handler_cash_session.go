package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sapataria/caixa_backend/internal/apperrors"
	portssvc "github.com/sapataria/caixa_backend/internal/core/ports/services"
	"github.com/sapataria/caixa_backend/internal/dto"
	"github.com/sapataria/caixa_backend/internal/middleware"
)

// cashSessionHandler handles HTTP requests for cash register sessions.
type cashSessionHandler struct {
	sessionService portssvc.CashSessionSvcFacade
}

// newCashSessionHandler creates a new cashSessionHandler.
func newCashSessionHandler(cs portssvc.CashSessionSvcFacade) *cashSessionHandler {
	return &cashSessionHandler{
		sessionService: cs,
	}
}

// registerCashSessionRoutes registers routes related to register sessions.
func registerCashSessionRoutes(rg *gin.RouterGroup, sessionService portssvc.CashSessionSvcFacade) {
	h := newCashSessionHandler(sessionService)

	sessions := rg.Group("/cash-sessions")
	{
		sessions.POST("/open", h.openSession)
		sessions.POST("/close", h.closeSession)
		sessions.GET("/current", h.getCurrentSession)
		sessions.GET("/:id", h.getSession)
		sessions.GET("", h.listSessions)
	}
}

// openSession godoc
// @Summary Open the cash register
// @Description Opens a new register session with a counted opening amount. Fails when a session is already open.
// @Tags cash-sessions
// @Accept  json
// @Produce  json
// @Param   session body dto.OpenCashSessionRequest true "Opening details"
// @Success 201 {object} dto.CashSessionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "A session is already open"
// @Failure 500 {object} map[string]string "Failed to open session"
// @Security BearerAuth
// @Router /cash-sessions/open [post]
func (h *cashSessionHandler) openSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenCashSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	session, err := h.sessionService.OpenSession(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to open cash session", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open session"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCashSessionResponse(session))
}

// closeSession godoc
// @Summary Close the cash register
// @Description Closes the open session. The expected amount is reconstructed from the ledger; a nonzero difference between counted and expected cash requires the manager role.
// @Tags cash-sessions
// @Accept  json
// @Produce  json
// @Param   session body dto.CloseCashSessionRequest true "Closing details"
// @Success 200 {object} dto.CashSessionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Difference requires manager role"
// @Failure 404 {object} map[string]string "No open session"
// @Failure 500 {object} map[string]string "Failed to close session"
// @Security BearerAuth
// @Router /cash-sessions/close [post]
func (h *cashSessionHandler) closeSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CloseCashSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CloseSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	session, err := h.sessionService.CloseSession(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to close cash session", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close session"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCashSessionResponse(session))
}

// getCurrentSession godoc
// @Summary Get the currently open session
// @Tags cash-sessions
// @Produce  json
// @Success 200 {object} dto.CashSessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No open session"
// @Failure 500 {object} map[string]string "Failed to retrieve session"
// @Security BearerAuth
// @Router /cash-sessions/current [get]
func (h *cashSessionHandler) getCurrentSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	session, err := h.sessionService.GetCurrentSession(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No open session"})
		} else {
			logger.Error("Failed to get current session", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve session"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCashSessionResponse(session))
}

// getSession godoc
// @Summary Get a session by ID
// @Tags cash-sessions
// @Produce  json
// @Param   id path string true "Session ID"
// @Success 200 {object} dto.CashSessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Failed to retrieve session"
// @Security BearerAuth
// @Router /cash-sessions/{id} [get]
func (h *cashSessionHandler) getSession(c *gin.Context) {
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

	c.JSON(http.StatusOK, dto.ToCashSessionResponse(session))
}

// listSessions godoc
// @Summary List register sessions
// @Description Retrieves a cursor-paginated session history, newest first
// @Tags cash-sessions
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Cursor token from the previous page"
// @Success 200 {object} dto.ListCashSessionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list sessions"
// @Security BearerAuth
// @Router /cash-sessions [get]
func (h *cashSessionHandler) listSessions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListCashSessionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	sessions, nextToken, err := h.sessionService.ListSessions(c.Request.Context(), params.Limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list sessions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sessions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ListCashSessionsResponse{
		Sessions:  dto.ToListCashSessionResponse(sessions),
		NextToken: nextToken,
	})
}
