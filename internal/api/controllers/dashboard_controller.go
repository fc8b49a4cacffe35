package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"testimonial/internal/services"
	"testimonial/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardService
}

func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetStatistics godoc
// @Summary Submission statistics
// @Description Totals, today and this-month counts, plus service and consent breakdowns
// @Tags Dashboard
// @Produce json
// @Param includeArchived query bool false "Include archived records" default(false)
// @Success 200 {object} response_models.StatisticsReport
// @Failure 500 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/statistics [get]
func (d *DashboardController) GetStatistics(c *gin.Context) {
	includeArchived := c.DefaultQuery("includeArchived", "false") == "true"

	report, err := d.dashboardService.GetStatistics(c.Request.Context(), includeArchived)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
