package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fiscus/internal/services"
)

// ProjectionHandler handles monthly projection chart requests.
type ProjectionHandler struct {
	projectionService services.ProjectionServicer
}

// NewProjectionHandler creates a new ProjectionHandler.
func NewProjectionHandler(projectionService services.ProjectionServicer) *ProjectionHandler {
	return &ProjectionHandler{projectionService: projectionService}
}

// GetMonthlyChart handles building the month's income/expense chart.
// @Summary     Get monthly projection chart
// @Description Day-by-day actuals through today with projected remainder for future days
// @Tags        projections
// @Produce     json
// @Param       year path int true "Year"
// @Param       month path int true "Month (1-12)"
// @Success     200 {object} engine.MonthlyChart "Chart series and monthly totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projections/{year}/{month} [get]
func (h *ProjectionHandler) GetMonthlyChart(c *gin.Context) {
	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	chart, err := h.projectionService.GetMonthlyChart(year, month, time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, chart)
}
