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

// reportingHandler handles HTTP requests for ledger aggregates.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/daily-cash-flow", h.getDailyCashFlow)
		reports.GET("/cash-flow-series", h.getCashFlowSeries)
		reports.GET("/category-summary", h.getCategorySummary)
		reports.GET("/total-balance", h.getTotalBalance)
		reports.GET("/accounts/:id/statement", h.getAccountStatement)
	}
}

// getDailyCashFlow godoc
// @Summary Daily cash flow summary
// @Description Sums income and expenses for one business date. Transfers are excluded.
// @Tags reports
// @Produce  json
// @Param   date query string true "Business date (YYYY-MM-DD)"
// @Success 200 {object} dto.DailyCashFlowResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute report"
// @Security BearerAuth
// @Router /reports/daily-cash-flow [get]
func (h *reportingHandler) getDailyCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.DailyCashFlowParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	flow, err := h.reportingService.GetDailyCashFlow(c.Request.Context(), params.Date)
	if err != nil {
		logger.Error("Failed to compute daily cash flow", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyCashFlowResponse(flow))
}

// getCashFlowSeries godoc
// @Summary Day-by-day cash flow series
// @Description One point per calendar day over the inclusive range, including zero rows for idle days, with a running balance across the range
// @Tags reports
// @Produce  json
// @Param   from query string true "Range start (YYYY-MM-DD)"
// @Param   to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.CashFlowSeriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute report"
// @Security BearerAuth
// @Router /reports/cash-flow-series [get]
func (h *reportingHandler) getCashFlowSeries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.CashFlowSeriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	points, err := h.reportingService.GetCashFlowSeries(c.Request.Context(), params.From, params.To)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute cash flow series", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCashFlowSeriesResponse(points))
}

// getCategorySummary godoc
// @Summary Category breakdown
// @Description Aggregates absolute amounts per category and transaction type over the inclusive range, largest first
// @Tags reports
// @Produce  json
// @Param   from query string true "Range start (YYYY-MM-DD)"
// @Param   to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.CategorySummaryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute report"
// @Security BearerAuth
// @Router /reports/category-summary [get]
func (h *reportingHandler) getCategorySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.CategorySummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	rows, err := h.reportingService.GetCategorySummary(c.Request.Context(), params.From, params.To)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute category summary", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCategorySummaryResponse(rows))
}

// getTotalBalance godoc
// @Summary Total balance across active accounts
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.TotalBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute report"
// @Security BearerAuth
// @Router /reports/total-balance [get]
func (h *reportingHandler) getTotalBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	total, err := h.reportingService.GetTotalBalance(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute total balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
		return
	}

	c.JSON(http.StatusOK, dto.TotalBalanceResponse{TotalBalance: total})
}

// getAccountStatement godoc
// @Summary Account statement with running balance
// @Description Replays one account's entries in chronological order, pairing each with the running balance relative to the start of the range
// @Tags reports
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   from query string true "Range start (YYYY-MM-DD)"
// @Param   to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.RunningBalanceResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to compute report"
// @Security BearerAuth
// @Router /reports/accounts/{id}/statement [get]
func (h *reportingHandler) getAccountStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var params dto.CashFlowSeriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	rows, err := h.reportingService.GetAccountStatementWithRunningBalance(c.Request.Context(), accountID, params.From, params.To)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute account statement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRunningBalanceResponse(rows))
}
