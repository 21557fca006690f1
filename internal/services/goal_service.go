package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fiscus/internal/engine"
	apperrors "fiscus/internal/errors"
	"fiscus/internal/models"
	"fiscus/internal/pagination"
	"fiscus/internal/period"
)

// goalService handles savings goal business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a new savings goal with its funding rule.
func (s *goalService) CreateGoal(
	name string,
	targetAmount decimal.Decimal,
	deadline time.Time,
	fundingType models.FundingType,
	fundingAmount, fundingPercentage decimal.Decimal,
	frequency models.FundingFrequency,
) (*models.Goal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if targetAmount.Sign() <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}

	goal := &models.Goal{
		Name:              name,
		TargetAmount:      targetAmount,
		VirtualBalance:    decimal.Zero,
		Deadline:          deadline,
		FundingType:       fundingType,
		FundingAmount:     fundingAmount,
		FundingPercentage: fundingPercentage,
		Frequency:         frequency,
		Status:            models.GoalStatusActive,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetGoals returns a paginated list of goals with an optional status filter.
func (s *goalService) GetGoals(page pagination.PageRequest, status *models.GoalStatus) (*pagination.PageResponse[models.Goal], error) {
	page.Defaults()

	base := s.db.Model(&models.Goal{})
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := base.Scopes(pagination.Paginate(page), pagination.NewestFirst("deadline")).
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGoalByID returns a goal by ID with its ledger history.
func (s *goalService) GetGoalByID(goalID string) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Preload("LedgerEntries").Where("id = ?", goalID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoalStatus transitions a goal between active, paused, and archived.
// Completed is reached only through deposits.
func (s *goalService) UpdateGoalStatus(goalID string, status models.GoalStatus) (*models.Goal, error) {
	switch status {
	case models.GoalStatusActive, models.GoalStatusPaused, models.GoalStatusArchived:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported goal status")
	}

	goal, err := s.GetGoalByID(goalID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(goal).Update("status", status).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	goal.Status = status
	return goal, nil
}

// Deposit appends one ledger entry and raises the virtual balance by
// exactly the deposited amount. Deposits are not idempotent; each call is
// a new ledger entry. The goal auto-completes when the balance reaches
// its target.
func (s *goalService) Deposit(goalID string, amount decimal.Decimal, source, notes string) (*models.Goal, error) {
	if amount.Sign() <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "deposit amount must be greater than zero")
	}

	goal, err := s.GetGoalByID(goalID)
	if err != nil {
		return nil, err
	}
	if goal.Status != models.GoalStatusActive {
		return nil, apperrors.ErrGoalNotActive
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		entry := models.GoalLedgerEntry{
			GoalID:    goal.ID,
			Timestamp: time.Now().UTC(),
			Amount:    amount,
			Source:    source,
			Notes:     notes,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		goal.VirtualBalance = goal.VirtualBalance.Add(amount)
		updates := map[string]interface{}{"virtual_balance": goal.VirtualBalance}
		if goal.VirtualBalance.GreaterThanOrEqual(goal.TargetAmount) {
			goal.Status = models.GoalStatusCompleted
			updates["status"] = models.GoalStatusCompleted
		}
		if err := tx.Model(&models.Goal{}).Where("id = ?", goal.ID).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetGoalByID(goalID)
}

// AuditGoal runs the feasibility audit for a goal against the given month's
// income and expense totals and the planned contributions of all other
// active goals.
func (s *goalService) AuditGoal(goalID string, year int, month time.Month, now time.Time) (*engine.FeasibilityAudit, error) {
	goal, err := s.GetGoalByID(goalID)
	if err != nil {
		return nil, err
	}

	income, expenses, err := s.monthTotals(year, month)
	if err != nil {
		return nil, err
	}

	var otherGoals []models.Goal
	if err := s.db.Where("status = ? AND id <> ?", models.GoalStatusActive, goalID).Find(&otherGoals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	commitment := decimal.Zero
	for _, other := range otherGoals {
		commitment = commitment.Add(engine.CalculatePlannedContribution(other, income))
	}

	audit := engine.AuditGoalFeasibility(*goal, engine.AuditContext{
		MonthlyIncome:      income,
		MonthlyExpenses:    expenses,
		ExistingCommitment: commitment,
	}, now)
	return &audit, nil
}

// GetGoalProjection returns the goal's progress percentage and projected
// completion date at its planned per-period contribution.
func (s *goalService) GetGoalProjection(goalID string, now time.Time) (*GoalProjection, error) {
	goal, err := s.GetGoalByID(goalID)
	if err != nil {
		return nil, err
	}

	income, _, err := s.monthTotals(now.Year(), now.Month())
	if err != nil {
		return nil, err
	}

	perPeriod := goal.FundingAmount
	if goal.FundingType == models.FundingTypePercentage {
		perPeriod = income.Mul(goal.FundingPercentage).Div(decimal.NewFromInt(100))
	}

	projection := &GoalProjection{
		Progress: engine.CalculateGoalProgress(goal.VirtualBalance, goal.TargetAmount),
	}
	if completion, ok := engine.ProjectCompletionDate(*goal, perPeriod, now); ok {
		projection.ProjectedCompletion = &completion
	}
	return projection, nil
}

// PendingSettlements returns the active goals due for their next scheduled
// deposit.
func (s *goalService) PendingSettlements(now time.Time) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Preload("LedgerEntries").
		Where("status = ?", models.GoalStatusActive).
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	due := make([]models.Goal, 0)
	for _, goal := range goals {
		if engine.NeedsSettlement(goal, now) {
			due = append(due, goal)
		}
	}
	return due, nil
}

// monthTotals sums income and expense transactions whose incurred date
// falls in the given month.
func (s *goalService) monthTotals(year int, month time.Month) (income, expenses decimal.Decimal, err error) {
	window := period.Month(year, month)

	var txs []models.Transaction
	if err := s.db.Where("date BETWEEN ? AND ?", window.Start, window.End).Find(&txs).Error; err != nil {
		return decimal.Zero, decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionTypeIncome:
			income = income.Add(tx.Amount)
		case models.TransactionTypeExpense:
			expenses = expenses.Add(tx.Amount)
		}
	}
	return income, expenses, nil
}
