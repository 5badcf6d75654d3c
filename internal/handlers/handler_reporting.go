package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/granaapp/grana_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles the dashboard and cash-flow report routes.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	rg.GET("/dashboard", h.getDashboard)
	reports := rg.Group("/reports")
	{
		reports.GET("/cash-flow", h.getCashFlow)
		reports.GET("/expenses-by-category", h.getExpensesByCategory)
	}
}

// bindPeriod reads year/month query parameters, defaulting to the
// current month.
func bindPeriod(c *gin.Context) (dto.CashFlowParams, bool) {
	var params dto.CashFlowParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return params, false
	}
	now := time.Now().UTC()
	if params.Year == 0 {
		params.Year = now.Year()
	}
	if params.Month == 0 {
		params.Month = int(now.Month())
	}
	return params, true
}

// getDashboard godoc
// @Summary Get the dashboard
// @Description Returns the month's cash-flow summary, per-account balances with their total, and the most recent entries.
// @Tags reports
// @Produce json
// @Param year query int false "Report year, defaults to the current one"
// @Param month query int false "Report month, defaults to the current one"
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	params, ok := bindPeriod(c)
	if !ok {
		return
	}

	dashboard, err := h.reportingService.GetDashboard(c.Request.Context(), userID, params.Year, params.Month)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(dashboard, params.Year, params.Month))
}

// getCashFlow godoc
// @Summary Get the monthly cash-flow report
// @Description Aggregates the month's income and expenses, split between settled and pending amounts. Transfers are excluded.
// @Tags reports
// @Produce json
// @Param year query int false "Report year, defaults to the current one"
// @Param month query int false "Report month, defaults to the current one"
// @Success 200 {object} dto.CashFlowResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	params, ok := bindPeriod(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.GetMonthlyCashFlow(c.Request.Context(), userID, params.Year, params.Month)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build cash-flow report")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashFlowResponse(*summary, params.Year, params.Month))
}

// getExpensesByCategory godoc
// @Summary Get the month's expenses grouped by category
// @Description Sums the month's expenses per category, with each category's share of the total.
// @Tags reports
// @Produce json
// @Param year query int false "Report year, defaults to the current one"
// @Param month query int false "Report month, defaults to the current one"
// @Success 200 {array} dto.CategoryExpenseResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /reports/expenses-by-category [get]
func (h *reportingHandler) getExpensesByCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	params, ok := bindPeriod(c)
	if !ok {
		return
	}

	rows, err := h.reportingService.GetExpensesByCategory(c.Request.Context(), userID, params.Year, params.Month)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build category report")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCategoryExpenseResponse(rows))
}
