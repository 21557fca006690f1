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

// customBudgetService handles custom budget business logic.
type customBudgetService struct {
	db *gorm.DB
}

// NewCustomBudgetService creates a new CustomBudgetServicer.
func NewCustomBudgetService(db *gorm.DB) CustomBudgetServicer {
	return &customBudgetService{db: db}
}

// CreateCustomBudget creates a new date-ranged spending bucket together
// with its declared per-currency cash allocations.
func (s *customBudgetService) CreateCustomBudget(
	name string,
	allocated decimal.Decimal,
	startDate, endDate time.Time,
	cashAllocations []CashAllocationInput,
) (*models.CustomBudget, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget name is required")
	}
	if allocated.Sign() < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "allocated amount cannot be negative")
	}
	if endDate.Before(startDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date must not precede start date")
	}

	budget := &models.CustomBudget{
		Name:            name,
		AllocatedAmount: allocated,
		StartDate:       startDate,
		EndDate:         endDate,
		Status:          models.BudgetStatusPlanned,
	}
	for _, alloc := range cashAllocations {
		budget.CashAllocations = append(budget.CashAllocations, models.CashAllocation{
			CurrencyCode: alloc.CurrencyCode,
			Amount:       alloc.Amount,
		})
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// GetCustomBudgets returns a paginated list of budgets with an optional
// status filter.
func (s *customBudgetService) GetCustomBudgets(page pagination.PageRequest, status *models.BudgetStatus) (*pagination.PageResponse[models.CustomBudget], error) {
	page.Defaults()

	base := s.db.Model(&models.CustomBudget{})
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.CustomBudget
	if err := base.Preload("CashAllocations").
		Scopes(pagination.Paginate(page), pagination.NewestFirst("start_date")).
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCustomBudgetByID returns a budget by ID with its cash allocations.
func (s *customBudgetService) GetCustomBudgetByID(budgetID string) (*models.CustomBudget, error) {
	var budget models.CustomBudget
	if err := s.db.Preload("CashAllocations").Where("id = ?", budgetID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// ActivateBudget transitions a planned budget to active. Activation before
// the budget's start date is rejected.
func (s *customBudgetService) ActivateBudget(budgetID string, now time.Time) (*models.CustomBudget, error) {
	budget, err := s.GetCustomBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}
	if now.Before(budget.StartDate) {
		return nil, apperrors.ErrBudgetNotStarted
	}
	return s.setStatus(budget, models.BudgetStatusActive)
}

// CompleteBudget transitions a budget to completed.
func (s *customBudgetService) CompleteBudget(budgetID string) (*models.CustomBudget, error) {
	budget, err := s.GetCustomBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}
	return s.setStatus(budget, models.BudgetStatusCompleted)
}

// ReactivateBudget returns a completed budget to active.
func (s *customBudgetService) ReactivateBudget(budgetID string) (*models.CustomBudget, error) {
	budget, err := s.GetCustomBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}
	if budget.Status != models.BudgetStatusCompleted {
		return nil, apperrors.ErrBudgetNotCompleted
	}
	return s.setStatus(budget, models.BudgetStatusActive)
}

func (s *customBudgetService) setStatus(budget *models.CustomBudget, status models.BudgetStatus) (*models.CustomBudget, error) {
	if err := s.db.Model(budget).Update("status", status).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	budget.Status = status
	return budget, nil
}

// DeleteCustomBudget soft-deletes a budget and detaches its transactions.
func (s *customBudgetService) DeleteCustomBudget(budgetID string) error {
	budget, err := s.GetCustomBudgetByID(budgetID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Transaction{}).
			Where("custom_budget_id = ?", budgetID).
			Update("custom_budget_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(budget).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// GetBudgetStats computes the budget's consumption stats for the given
// evaluation month.
func (s *customBudgetService) GetBudgetStats(budgetID string, year int, month time.Month) (*engine.BudgetStats, error) {
	budget, err := s.GetCustomBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}

	var txs []models.Transaction
	if err := s.db.Where("custom_budget_id = ?", budgetID).Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	stats := engine.CustomBudgetStats(*budget, txs, period.Month(year, month))
	return &stats, nil
}

// GetMonthOverview computes stats and cross-period settlement annotations
// for every budget whose window overlaps the viewed month.
func (s *customBudgetService) GetMonthOverview(year int, month time.Month) ([]BudgetOverview, error) {
	window := period.Month(year, month)

	var budgets []models.CustomBudget
	if err := s.db.Preload("CashAllocations").
		Where("start_date <= ? AND end_date >= ?", window.End, window.Start).
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	overview := make([]BudgetOverview, 0, len(budgets))
	for _, budget := range budgets {
		var txs []models.Transaction
		if err := s.db.Where("custom_budget_id = ?", budget.ID).Find(&txs).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		entry := BudgetOverview{
			Budget: budget,
			Stats:  engine.CustomBudgetStats(budget, txs, window),
		}
		for _, tx := range txs {
			if info := engine.DetectCrossPeriod(tx, window, budgets); info.IsCrossPeriod {
				entry.Settlements = append(entry.Settlements, TransactionSettlement{
					TransactionID: tx.ID,
					Info:          info,
				})
			}
		}
		overview = append(overview, entry)
	}
	return overview, nil
}
