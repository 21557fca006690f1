package services

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fiscus/internal/engine"
	apperrors "fiscus/internal/errors"
	"fiscus/internal/logger"
	"fiscus/internal/models"
	"fiscus/internal/period"
)

// syncHorizonMonths is the rolling window of future months the
// synchronizer keeps materialized, counting the viewed month.
const syncHorizonMonths = 12

// syncGuard is the synchronizer's re-entrancy state: an idle/running flag
// plus a last-completed-key memo. A key that already completed is not
// re-run until its derived inputs change, which breaks the
// invalidate→refetch→re-trigger loop caused by the synchronizer's own
// writes. The flag is a compare-and-swap so concurrent callers cannot
// both enter a pass.
type syncGuard struct {
	running       atomic.Bool
	mu            sync.Mutex
	lastCompleted string
}

// tryAcquire claims the guard for key. alreadyDone reports a key that
// completed previously and needs no new pass; force bypasses the memo but
// never the running flag.
func (g *syncGuard) tryAcquire(key string, force bool) (acquired, alreadyDone bool) {
	g.mu.Lock()
	done := g.lastCompleted == key
	g.mu.Unlock()
	if done && !force {
		return false, true
	}
	return g.running.CompareAndSwap(false, true), false
}

// release frees the guard. The memo is only advanced on success so a
// failed pass stays retryable on the next trigger.
func (g *syncGuard) release(key string, err error) {
	if err == nil {
		g.mu.Lock()
		g.lastCompleted = key
		g.mu.Unlock()
	}
	g.running.Store(false)
}

// systemBudgetService materializes goal-derived system budgets and serves
// their stats.
type systemBudgetService struct {
	db    *gorm.DB
	guard syncGuard
}

// NewSystemBudgetService creates a new SystemBudgetServicer.
func NewSystemBudgetService(db *gorm.DB) SystemBudgetServicer {
	return &systemBudgetService{db: db}
}

// syncKey derives the guard key from the pass's inputs.
func syncKey(year int, month time.Month, goalCount int, force bool) string {
	return fmt.Sprintf("%d-%02d:%d:force=%t", year, month, goalCount, force)
}

// Sync ensures one system budget exists per (priority, month) for the
// viewed month and the rolling horizon. Months already past when the pass
// runs keep their materialized amounts as historical record; the current
// and future months are recomputed from the active goals and income.
func (s *systemBudgetService) Sync(year int, month time.Month, monthlyIncome decimal.Decimal, force bool, now time.Time) (*SyncResult, error) {
	var goals []models.BudgetGoal
	if err := s.db.Where("is_active = ?", true).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	key := syncKey(year, month, len(goals), force)
	acquired, alreadyDone := s.guard.tryAcquire(key, force)
	if alreadyDone {
		return &SyncResult{Skipped: true}, nil
	}
	if !acquired {
		return nil, apperrors.ErrSyncInProgress
	}

	result := &SyncResult{}
	err := s.runPass(goals, year, month, monthlyIncome, now, result)
	s.guard.release(key, err)
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("system budget sync completed",
		"year", year,
		"month", int(month),
		"goals", len(goals),
		"created", result.Created,
		"updated", result.Updated,
	)
	return result, nil
}

// runPass writes the horizon's budgets inside one database transaction.
func (s *systemBudgetService) runPass(goals []models.BudgetGoal, year int, month time.Month, monthlyIncome decimal.Decimal, now time.Time, result *SyncResult) error {
	currentMonthStart := period.Month(now.Year(), now.Month()).Start

	return s.db.Transaction(func(tx *gorm.DB) error {
		cursor := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < syncHorizonMonths; i++ {
			window := period.Month(cursor.Year(), cursor.Month())
			for _, goal := range goals {
				amount := monthlyIncome.Mul(goal.TargetPercentage).Div(decimal.NewFromInt(100))

				var existing models.SystemBudget
				err := tx.Where("system_budget_type = ? AND year = ? AND month = ?",
					goal.Priority, cursor.Year(), int(cursor.Month())).First(&existing).Error
				switch {
				case errors.Is(err, gorm.ErrRecordNotFound):
					budget := models.SystemBudget{
						Type:         goal.Priority,
						BudgetAmount: amount,
						Year:         cursor.Year(),
						Month:        int(cursor.Month()),
						StartDate:    window.Start,
						EndDate:      window.End,
					}
					if err := tx.Create(&budget).Error; err != nil {
						return apperrors.Wrap(apperrors.ErrInternalServer, err)
					}
					result.Created++
				case err != nil:
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				default:
					// Materialized past months are historical record.
					if window.Start.Before(currentMonthStart) {
						continue
					}
					if existing.BudgetAmount.Equal(amount) {
						continue
					}
					if err := tx.Model(&existing).Update("budget_amount", amount).Error; err != nil {
						return apperrors.Wrap(apperrors.ErrInternalServer, err)
					}
					result.Updated++
				}
			}
			cursor = cursor.AddDate(0, 1, 0)
		}
		return nil
	})
}

// GetMonthBudgets returns the month's three system budgets with their
// consumption stats.
func (s *systemBudgetService) GetMonthBudgets(year int, month time.Month) ([]SystemBudgetView, error) {
	var budgets []models.SystemBudget
	if err := s.db.Where("year = ? AND month = ?", year, int(month)).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(budgets) == 0 {
		return nil, apperrors.ErrSystemBudgetMissing
	}

	window := period.Month(year, month)

	var expenses []models.Transaction
	if err := s.db.Preload("Category").
		Where("type = ?", models.TransactionTypeExpense).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var customBudgets []models.CustomBudget
	if err := s.db.Where("start_date <= ? AND end_date >= ?", window.End, window.Start).
		Find(&customBudgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := make([]SystemBudgetView, 0, len(budgets))
	for _, budget := range budgets {
		views = append(views, SystemBudgetView{
			Budget: budget,
			Stats:  engine.SystemBudgetStats(budget, expenses, customBudgets),
		})
	}
	return views, nil
}

// SetBudgetGoals replaces the active percentage split. Passing a priority
// that already has a goal updates it in place.
func (s *systemBudgetService) SetBudgetGoals(inputs []BudgetGoalInput) ([]models.BudgetGoal, error) {
	for _, input := range inputs {
		if !input.Priority.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown priority: "+string(input.Priority))
		}
		if input.TargetPercentage.Sign() < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target percentage cannot be negative")
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, input := range inputs {
			var existing models.BudgetGoal
			err := tx.Where("priority = ?", input.Priority).First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				goal := models.BudgetGoal{
					Priority:         input.Priority,
					TargetPercentage: input.TargetPercentage,
					IsActive:         true,
				}
				if err := tx.Create(&goal).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
			case err != nil:
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			default:
				updates := map[string]interface{}{
					"target_percentage": input.TargetPercentage,
					"is_active":         true,
				}
				if err := tx.Model(&existing).Updates(updates).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetBudgetGoals()
}

// GetBudgetGoals returns the active percentage split.
func (s *systemBudgetService) GetBudgetGoals() ([]models.BudgetGoal, error) {
	var goals []models.BudgetGoal
	if err := s.db.Where("is_active = ?", true).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}
