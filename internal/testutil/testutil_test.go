package testutil_test

import (
	"testing"
	"time"

	"fiscus/internal/errors"
	"fiscus/internal/models"
	"fiscus/internal/testutil"

	"github.com/shopspring/decimal"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"categories", "transactions", "custom_budgets", "cash_allocations", "system_budgets", "budget_goals", "goals", "goal_ledger_entries"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	category := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense, models.PriorityNeeds)
	if category.ID == "" {
		t.Fatal("category should have a generated ID")
	}
	if category.Priority != models.PriorityNeeds {
		t.Errorf("expected needs priority, got %s", category.Priority)
	}

	tx := testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, decimal.NewFromInt(100), time.Now())
	if tx.IsPaid {
		t.Error("transaction fixture should start unpaid")
	}

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	budget := testutil.CreateTestCustomBudget(t, db, decimal.NewFromInt(500), start, end)
	if budget.Status != models.BudgetStatusActive {
		t.Errorf("expected active budget, got %s", budget.Status)
	}

	goal := testutil.CreateTestGoal(t, db, decimal.NewFromInt(6000), decimal.NewFromInt(500), models.FrequencyMonthly, time.Now().AddDate(1, 0, 0))
	if !goal.VirtualBalance.IsZero() {
		t.Errorf("expected zero virtual balance, got %s", goal.VirtualBalance)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrGoalNotFound, "custom message")
	testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
