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

// GoalHandler handles savings goal requests.
type GoalHandler struct {
	goalService services.GoalServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the request payload for creating a goal.
type CreateGoalRequest struct {
	Name              string                  `json:"name" binding:"required,min=1,max=100"`
	TargetAmount      decimal.Decimal         `json:"target_amount" binding:"required"`
	Deadline          time.Time               `json:"deadline" binding:"required"`
	FundingType       models.FundingType      `json:"funding_type" binding:"required,funding_type"`
	FundingAmount     decimal.Decimal         `json:"funding_amount"`
	FundingPercentage decimal.Decimal         `json:"funding_percentage"`
	Frequency         models.FundingFrequency `json:"frequency" binding:"required,funding_frequency"`
}

// UpdateGoalStatusRequest represents the request payload for a status change.
type UpdateGoalStatusRequest struct {
	Status models.GoalStatus `json:"status" binding:"required"`
}

// DepositRequest represents the request payload for a goal deposit.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Source string          `json:"source" binding:"omitempty,max=100"`
	Notes  string          `json:"notes" binding:"omitempty,max=500"`
}

// ListGoalsQuery represents the query parameters for listing goals.
type ListGoalsQuery struct {
	pagination.PageRequest
	Status *models.GoalStatus `form:"status"`
}

// CreateGoal handles the creation of a new savings goal.
// @Summary     Create a goal
// @Description Create a savings goal with a deadline and funding rule
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} models.Goal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.CreateGoal(
		req.Name, req.TargetAmount, req.Deadline,
		req.FundingType, req.FundingAmount, req.FundingPercentage,
		req.Frequency,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// GetGoals handles listing goals.
// @Summary     List goals
// @Description Get a paginated list of goals with an optional status filter
// @Tags        goals
// @Produce     json
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       status query string false "Goal status"
// @Success     200 {object} pagination.PageResponse[models.Goal] "Goals"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	var query ListGoalsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.goalService.GetGoals(query.PageRequest, query.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGoalByID handles fetching a single goal.
// @Summary     Get a goal
// @Description Get a goal by ID with its ledger history
// @Tags        goals
// @Produce     json
// @Param       id path string true "Goal ID"
// @Success     200 {object} models.Goal "Goal"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoalByID(c *gin.Context) {
	goal, err := h.goalService.GetGoalByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// UpdateGoalStatus handles pausing, resuming, and archiving a goal.
// @Summary     Update goal status
// @Description Transition a goal between active, paused, and archived
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id path string true "Goal ID"
// @Param       request body UpdateGoalStatusRequest true "Target status"
// @Success     200 {object} models.Goal "Goal updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/status [put]
func (h *GoalHandler) UpdateGoalStatus(c *gin.Context) {
	var req UpdateGoalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpdateGoalStatus(c.Param("id"), req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// Deposit handles a deposit toward a goal's virtual balance.
// @Summary     Deposit into a goal
// @Description Append a ledger entry and raise the goal's virtual balance
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id path string true "Goal ID"
// @Param       request body DepositRequest true "Deposit details"
// @Success     200 {object} models.Goal "Goal after deposit"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     409 {object} ErrorResponse "Goal not active"
// @Router      /goals/{id}/deposits [post]
func (h *GoalHandler) Deposit(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.Deposit(c.Param("id"), req.Amount, req.Source, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// AuditGoal handles the feasibility audit for a goal.
// @Summary     Audit goal feasibility
// @Description Compare required contribution rate against planned contribution and surplus
// @Tags        goals
// @Produce     json
// @Param       id path string true "Goal ID"
// @Param       year path int true "Year"
// @Param       month path int true "Month (1-12)"
// @Success     200 {object} engine.FeasibilityAudit "Audit result"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/audit/{year}/{month} [get]
func (h *GoalHandler) AuditGoal(c *gin.Context) {
	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	audit, err := h.goalService.AuditGoal(c.Param("id"), year, month, time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, audit)
}

// GetGoalProjection handles the progress/completion projection for a goal.
// @Summary     Get goal projection
// @Description Progress percentage and projected completion date
// @Tags        goals
// @Produce     json
// @Param       id path string true "Goal ID"
// @Success     200 {object} services.GoalProjection "Projection"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/projection [get]
func (h *GoalHandler) GetGoalProjection(c *gin.Context) {
	projection, err := h.goalService.GetGoalProjection(c.Param("id"), time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, projection)
}

// GetPendingSettlements handles listing goals due for a deposit.
// @Summary     List pending settlements
// @Description Active goals whose next scheduled deposit is due
// @Tags        goals
// @Produce     json
// @Success     200 {array} models.Goal "Goals due for deposit"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/pending-settlements [get]
func (h *GoalHandler) GetPendingSettlements(c *gin.Context) {
	goals, err := h.goalService.PendingSettlements(time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, goals)
}
