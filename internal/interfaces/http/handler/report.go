package handler

import (
	reportapp "github.com/crm/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles report-related API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// WeeklyReport godoc
// @ID           getWeeklyReport
// @Summary      Weekly aggregate report
// @Description  Returns customer count, order count and total revenue. The snapshot is cached for a short TTL.
// @Tags         report
// @Produce      json
// @Success      200 {object} APIResponse[reportapp.WeeklyReportResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /crm/report/weekly [get]
func (h *ReportHandler) WeeklyReport(c *gin.Context) {
	report, err := h.reportService.WeeklyReport(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
