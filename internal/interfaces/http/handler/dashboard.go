package handler

import (
	reportapp "github.com/freshmart/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves back-office counters
type DashboardHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(reportService *reportapp.ReportService) *DashboardHandler {
	return &DashboardHandler{reportService: reportService}
}

// Stats godoc
// @Summary      Dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response{data=reportapp.DashboardStatsResponse}
// @Security     BearerAuth
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.reportService.DashboardStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
