package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fiscus/internal/errors"
	"fiscus/internal/models"
	"fiscus/internal/services"
)

// SystemBudgetHandler handles system budget and budget goal requests.
type SystemBudgetHandler struct {
	systemBudgetService services.SystemBudgetServicer
}

// NewSystemBudgetHandler creates a new SystemBudgetHandler.
func NewSystemBudgetHandler(systemBudgetService services.SystemBudgetServicer) *SystemBudgetHandler {
	return &SystemBudgetHandler{systemBudgetService: systemBudgetService}
}

// SyncRequest represents the request payload for a synchronization pass.
type SyncRequest struct {
	Year          int             `json:"year" binding:"required,min=1970,max=9999"`
	Month         int             `json:"month" binding:"required,min=1,max=12"`
	MonthlyIncome decimal.Decimal `json:"monthly_income" binding:"required"`
	Force         bool            `json:"force"`
}

// BudgetGoalRequest is one priority's target percentage.
type BudgetGoalRequest struct {
	Priority         models.Priority `json:"priority" binding:"required,financial_priority"`
	TargetPercentage decimal.Decimal `json:"target_percentage" binding:"required"`
}

// SetBudgetGoalsRequest represents the request payload for replacing the split.
type SetBudgetGoalsRequest struct {
	Goals []BudgetGoalRequest `json:"goals" binding:"required,min=1,dive"`
}

// Sync handles a system budget synchronization pass.
// @Summary     Synchronize system budgets
// @Description Materialize goal-derived budgets for the viewed month and rolling horizon
// @Tags        system-budgets
// @Accept      json
// @Produce     json
// @Param       request body SyncRequest true "Sync parameters"
// @Success     200 {object} services.SyncResult "Sync result"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Sync already running"
// @Router      /system-budgets/sync [post]
func (h *SystemBudgetHandler) Sync(c *gin.Context) {
	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.systemBudgetService.Sync(req.Year, time.Month(req.Month), req.MonthlyIncome, req.Force, time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMonthBudgets handles fetching a month's system budgets with stats.
// @Summary     Get system budgets for a month
// @Description The month's needs/wants/savings buckets with consumption stats
// @Tags        system-budgets
// @Produce     json
// @Param       year path int true "Year"
// @Param       month path int true "Month (1-12)"
// @Success     200 {array} services.SystemBudgetView "System budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not yet generated"
// @Router      /system-budgets/{year}/{month} [get]
func (h *SystemBudgetHandler) GetMonthBudgets(c *gin.Context) {
	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	views, err := h.systemBudgetService.GetMonthBudgets(year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// SetBudgetGoals handles replacing the percentage split.
// @Summary     Set budget goals
// @Description Replace the needs/wants/savings percentage split
// @Tags        system-budgets
// @Accept      json
// @Produce     json
// @Param       request body SetBudgetGoalsRequest true "Percentage split"
// @Success     200 {array} models.BudgetGoal "Active goals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /budget-goals [put]
func (h *SystemBudgetHandler) SetBudgetGoals(c *gin.Context) {
	var req SetBudgetGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	inputs := make([]services.BudgetGoalInput, 0, len(req.Goals))
	for _, goal := range req.Goals {
		inputs = append(inputs, services.BudgetGoalInput{
			Priority:         goal.Priority,
			TargetPercentage: goal.TargetPercentage,
		})
	}

	goals, err := h.systemBudgetService.SetBudgetGoals(inputs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, goals)
}

// GetBudgetGoals handles fetching the active percentage split.
// @Summary     Get budget goals
// @Description The active needs/wants/savings percentage split
// @Tags        system-budgets
// @Produce     json
// @Success     200 {array} models.BudgetGoal "Active goals"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget-goals [get]
func (h *SystemBudgetHandler) GetBudgetGoals(c *gin.Context) {
	goals, err := h.systemBudgetService.GetBudgetGoals()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, goals)
}
