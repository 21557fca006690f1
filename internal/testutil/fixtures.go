package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fiscus/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCategory creates a category of the given type and priority.
func CreateTestCategory(t *testing.T, db *gorm.DB, categoryType models.CategoryType, priority models.Priority) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:     fmt.Sprintf("Test Category %d", nextID()),
		Type:     categoryType,
		Priority: priority,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates an unpaid transaction of the given type
// and amount on the given date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, txType models.TransactionType, amount decimal.Decimal, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Type:         txType,
		Amount:       amount,
		Description:  fmt.Sprintf("Test Transaction %d", nextID()),
		Date:         date,
		CurrencyCode: "USD",
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestPaidTransaction creates a transaction already settled on the
// given paid date.
func CreateTestPaidTransaction(t *testing.T, db *gorm.DB, txType models.TransactionType, amount decimal.Decimal, date, paidDate time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Type:         txType,
		Amount:       amount,
		Description:  fmt.Sprintf("Test Transaction %d", nextID()),
		Date:         date,
		PaidDate:     &paidDate,
		IsPaid:       true,
		CurrencyCode: "USD",
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestCustomBudget creates an active custom budget spanning the
// given date range.
func CreateTestCustomBudget(t *testing.T, db *gorm.DB, allocated decimal.Decimal, start, end time.Time) *models.CustomBudget {
	t.Helper()

	budget := &models.CustomBudget{
		Name:            fmt.Sprintf("Test Budget %d", nextID()),
		AllocatedAmount: allocated,
		StartDate:       start,
		EndDate:         end,
		Status:          models.BudgetStatusActive,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test custom budget: %v", err)
	}
	return budget
}

// CreateTestGoal creates an active fixed-funding goal.
func CreateTestGoal(t *testing.T, db *gorm.DB, target, perPeriod decimal.Decimal, frequency models.FundingFrequency, deadline time.Time) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		Name:          fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount:  target,
		Deadline:      deadline,
		FundingType:   models.FundingTypeFixed,
		FundingAmount: perPeriod,
		Frequency:     frequency,
		Status:        models.GoalStatusActive,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestBudgetGoal creates an active percentage target for a priority bucket.
func CreateTestBudgetGoal(t *testing.T, db *gorm.DB, priority models.Priority, percentage decimal.Decimal) *models.BudgetGoal {
	t.Helper()

	bg := &models.BudgetGoal{
		Priority:         priority,
		TargetPercentage: percentage,
		IsActive:         true,
	}
	if err := db.Create(bg).Error; err != nil {
		t.Fatalf("failed to create test budget goal: %v", err)
	}
	return bg
}
