package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/gjovanov/tickytack/internal/core/ports/services"
	"github.com/gjovanov/tickytack/internal/dto"
	"github.com/gjovanov/tickytack/internal/middleware"
	"github.com/gin-gonic/gin"
)

const queryDateLayout = "2006-01-02"

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// RegisterReportingRoutes registers report routes on an organization-scoped group.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/profit-and-loss", h.getProfitAndLoss)
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Without dates the stored account balances are reported. With both startDate and endDate the posted entries dated in range are replayed.
// @Tags reports
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /orgs/{org_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	start, err := optionalDateQuery(c, "startDate")
	if err != nil {
		logger.Warn("Invalid startDate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := optionalDateQuery(c, "endDate")
	if err != nil {
		logger.Warn("Invalid endDate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger = logger.With(slog.String("org_id", orgID))
	logger.Info("Received request to generate trial balance report")

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), orgID, start, end)
	if err != nil {
		respondError(c, logger, err, "Failed to generate trial balance report")
		return
	}

	// Echo the range only when it selected period mode.
	if start == nil || end == nil {
		start, end = nil, nil
	}

	logger.Info("Trial balance report generated successfully", slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(rows, start, end))
}

// getProfitAndLoss godoc
// @Summary Generate profit and loss report
// @Description Sums revenue and expense movements of posted entries dated within the inclusive range
// @Tags reports
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param startDate query string true "Start date (YYYY-MM-DD)"
// @Param endDate query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} map[string]string "Missing or invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /orgs/{org_id}/reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	start, err := optionalDateQuery(c, "startDate")
	if err == nil && start == nil {
		err = fmt.Errorf("startDate is required")
	}
	if err != nil {
		logger.Warn("Invalid startDate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := optionalDateQuery(c, "endDate")
	if err == nil && end == nil {
		err = fmt.Errorf("endDate is required")
	}
	if err != nil {
		logger.Warn("Invalid endDate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger = logger.With(
		slog.String("org_id", orgID),
		slog.String("start_date", start.Format(queryDateLayout)),
		slog.String("end_date", end.Format(queryDateLayout)),
	)
	logger.Info("Received request to generate profit and loss report")

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), orgID, *start, *end)
	if err != nil {
		respondError(c, logger, err, "Failed to generate profit and loss report")
		return
	}

	logger.Info("Profit and loss report generated successfully", slog.String("net_income", report.NetIncome.String()))
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report, *start, *end))
}

// optionalDateQuery parses a YYYY-MM-DD query parameter as a UTC date, returning nil when absent.
func optionalDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(queryDateLayout, raw, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: use YYYY-MM-DD", name, raw)
	}
	return &t, nil
}
