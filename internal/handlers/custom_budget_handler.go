package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fiscus/internal/errors"
	"fiscus/internal/models"
	"fiscus/internal/pagination"
	"fiscus/internal/services"
)

// CustomBudgetHandler handles custom budget requests.
type CustomBudgetHandler struct {
	budgetService services.CustomBudgetServicer
}

// NewCustomBudgetHandler creates a new CustomBudgetHandler.
func NewCustomBudgetHandler(budgetService services.CustomBudgetServicer) *CustomBudgetHandler {
	return &CustomBudgetHandler{budgetService: budgetService}
}

// CashAllocationRequest declares one cash allocation for a new budget.
type CashAllocationRequest struct {
	CurrencyCode string          `json:"currency_code" binding:"required,iso4217"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
}

// CreateCustomBudgetRequest represents the request payload for creating a budget.
type CreateCustomBudgetRequest struct {
	Name            string                  `json:"name" binding:"required,min=1,max=100"`
	AllocatedAmount decimal.Decimal         `json:"allocated_amount" binding:"required"`
	StartDate       time.Time               `json:"start_date" binding:"required"`
	EndDate         time.Time               `json:"end_date" binding:"required"`
	CashAllocations []CashAllocationRequest `json:"cash_allocations" binding:"omitempty,dive"`
}

// ListCustomBudgetsQuery represents the query parameters for listing budgets.
type ListCustomBudgetsQuery struct {
	pagination.PageRequest
	Status *models.BudgetStatus `form:"status"`
}

// CreateCustomBudget handles the creation of a new custom budget.
// @Summary     Create a custom budget
// @Description Create a date-ranged spending bucket with optional cash allocations
// @Tags        custom-budgets
// @Accept      json
// @Produce     json
// @Param       request body CreateCustomBudgetRequest true "Budget details"
// @Success     201 {object} models.CustomBudget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /custom-budgets [post]
func (h *CustomBudgetHandler) CreateCustomBudget(c *gin.Context) {
	var req CreateCustomBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	allocations := make([]services.CashAllocationInput, 0, len(req.CashAllocations))
	for _, alloc := range req.CashAllocations {
		allocations = append(allocations, services.CashAllocationInput{
			CurrencyCode: alloc.CurrencyCode,
			Amount:       alloc.Amount,
		})
	}

	budget, err := h.budgetService.CreateCustomBudget(req.Name, req.AllocatedAmount, req.StartDate, req.EndDate, allocations)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, budget)
}

// GetCustomBudgets handles listing custom budgets.
// @Summary     List custom budgets
// @Description Get a paginated list of custom budgets with optional status filter
// @Tags        custom-budgets
// @Produce     json
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       status query string false "Budget status"
// @Success     200 {object} pagination.PageResponse[models.CustomBudget] "Budgets"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /custom-budgets [get]
func (h *CustomBudgetHandler) GetCustomBudgets(c *gin.Context) {
	var query ListCustomBudgetsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.budgetService.GetCustomBudgets(query.PageRequest, query.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCustomBudgetByID handles fetching a single budget.
// @Summary     Get a custom budget
// @Description Get a custom budget by ID with its cash allocations
// @Tags        custom-budgets
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {object} models.CustomBudget "Budget"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /custom-budgets/{id} [get]
func (h *CustomBudgetHandler) GetCustomBudgetByID(c *gin.Context) {
	budget, err := h.budgetService.GetCustomBudgetByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

// ActivateBudget handles the planned→active transition.
// @Summary     Activate a budget
// @Description Activate a planned budget on or after its start date
// @Tags        custom-budgets
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {object} models.CustomBudget "Budget activated"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Budget not started"
// @Router      /custom-budgets/{id}/activate [post]
func (h *CustomBudgetHandler) ActivateBudget(c *gin.Context) {
	budget, err := h.budgetService.ActivateBudget(c.Param("id"), time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

// CompleteBudget handles the active→completed transition.
// @Summary     Complete a budget
// @Description Mark a budget as completed
// @Tags        custom-budgets
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {object} models.CustomBudget "Budget completed"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /custom-budgets/{id}/complete [post]
func (h *CustomBudgetHandler) CompleteBudget(c *gin.Context) {
	budget, err := h.budgetService.CompleteBudget(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

// ReactivateBudget handles the completed→active transition.
// @Summary     Reactivate a budget
// @Description Return a completed budget to active
// @Tags        custom-budgets
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {object} models.CustomBudget "Budget reactivated"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Budget not completed"
// @Router      /custom-budgets/{id}/reactivate [post]
func (h *CustomBudgetHandler) ReactivateBudget(c *gin.Context) {
	budget, err := h.budgetService.ReactivateBudget(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

// DeleteCustomBudget handles deleting a budget.
// @Summary     Delete a custom budget
// @Description Delete a budget and detach its transactions
// @Tags        custom-budgets
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     204 "Budget deleted"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /custom-budgets/{id} [delete]
func (h *CustomBudgetHandler) DeleteCustomBudget(c *gin.Context) {
	if err := h.budgetService.DeleteCustomBudget(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetBudgetStats handles the consumption stats calculation for a budget.
// @Summary     Get budget stats
// @Description Compute allocated/paid/unpaid/remaining for a budget in a month
// @Tags        custom-budgets
// @Produce     json
// @Param       id path string true "Budget ID"
// @Param       year path int true "Year"
// @Param       month path int true "Month (1-12)"
// @Success     200 {object} engine.BudgetStats "Budget stats"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /custom-budgets/{id}/stats/{year}/{month} [get]
func (h *CustomBudgetHandler) GetBudgetStats(c *gin.Context) {
	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.budgetService.GetBudgetStats(c.Param("id"), year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetMonthOverview handles the per-month overview of all overlapping budgets.
// @Summary     Get month overview
// @Description Stats and cross-period annotations for every budget overlapping a month
// @Tags        custom-budgets
// @Produce     json
// @Param       year path int true "Year"
// @Param       month path int true "Month (1-12)"
// @Success     200 {array} services.BudgetOverview "Overview"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /custom-budgets/overview/{year}/{month} [get]
func (h *CustomBudgetHandler) GetMonthOverview(c *gin.Context) {
	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	overview, err := h.budgetService.GetMonthOverview(year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}
