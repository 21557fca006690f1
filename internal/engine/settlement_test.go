package engine

import (
	"testing"
	"time"

	"fiscus/internal/models"
	"fiscus/internal/period"
)

func TestDetectCrossPeriod(t *testing.T) {
	february := period.Month(2026, time.February)

	trip := models.CustomBudget{
		Base:      models.Base{ID: "trip-1"},
		Name:      "Ski Trip",
		StartDate: time.Date(2026, 1, 25, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	budgets := []models.CustomBudget{trip}

	t.Run("incurred_in_budget_settled_outside", func(t *testing.T) {
		tx := paidExpense("100",
			time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC))
		tx.CustomBudgetID = strPtr("trip-1")

		info := DetectCrossPeriod(tx, february, budgets)

		if !info.IsCrossPeriod {
			t.Fatal("expected cross-period settlement")
		}
		if info.BucketName != "Ski Trip" {
			t.Errorf("expected bucket Ski Trip, got %s", info.BucketName)
		}
		if info.OriginalPeriod != "January 2026" {
			t.Errorf("expected original period January 2026, got %s", info.OriginalPeriod)
		}
	})

	t.Run("unpaid_never_cross_period", func(t *testing.T) {
		tx := expense("100", time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC))
		tx.CustomBudgetID = strPtr("trip-1")

		if DetectCrossPeriod(tx, february, budgets).IsCrossPeriod {
			t.Error("unpaid transaction should never be cross-period")
		}
	})

	t.Run("same_month_never_cross_period", func(t *testing.T) {
		tx := paidExpense("100",
			time.Date(2026, 1, 26, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC))
		tx.CustomBudgetID = strPtr("trip-1")

		if DetectCrossPeriod(tx, february, budgets).IsCrossPeriod {
			t.Error("same-month settlement should not be cross-period")
		}
	})

	t.Run("no_custom_budget_never_cross_period", func(t *testing.T) {
		tx := paidExpense("100",
			time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC))

		if DetectCrossPeriod(tx, february, budgets).IsCrossPeriod {
			t.Error("unattributed transaction should not be cross-period")
		}
	})

	t.Run("budget_window_contains_both_dates", func(t *testing.T) {
		long := models.CustomBudget{
			Base:      models.Base{ID: "long-1"},
			Name:      "Quarter Project",
			StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		}
		tx := paidExpense("100",
			time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC))
		tx.CustomBudgetID = strPtr("long-1")

		// Both dates inside the budget window: nothing straddles.
		if DetectCrossPeriod(tx, february, []models.CustomBudget{long}).IsCrossPeriod {
			t.Error("settlement wholly inside the budget window should not be cross-period")
		}
	})
}
