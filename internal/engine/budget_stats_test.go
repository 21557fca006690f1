package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fiscus/internal/models"
	"fiscus/internal/period"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func datePtr(t time.Time) *time.Time { return &t }

func strPtr(s string) *string { return &s }

func priorityPtr(p models.Priority) *models.Priority { return &p }

func expense(amount string, date time.Time) models.Transaction {
	return models.Transaction{
		Type:   models.TransactionTypeExpense,
		Amount: d(amount),
		Date:   date,
	}
}

func paidExpense(amount string, date, paidDate time.Time) models.Transaction {
	tx := expense(amount, date)
	tx.IsPaid = true
	tx.PaidDate = datePtr(paidDate)
	return tx
}

func TestCustomBudgetStats(t *testing.T) {
	window := period.Month(2026, time.March)
	mid := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("over_budget", func(t *testing.T) {
		budget := models.CustomBudget{AllocatedAmount: d("1000")}
		txs := []models.Transaction{
			paidExpense("800", mid, mid),
			expense("300", mid),
		}

		stats := CustomBudgetStats(budget, txs, window)

		if !stats.Paid.Equal(d("800")) {
			t.Errorf("expected paid 800, got %s", stats.Paid)
		}
		if !stats.Unpaid.Equal(d("300")) {
			t.Errorf("expected unpaid 300, got %s", stats.Unpaid)
		}
		if !stats.Used.Equal(d("1100")) {
			t.Errorf("expected used 1100, got %s", stats.Used)
		}
		if !stats.Remaining.IsZero() {
			t.Errorf("expected remaining 0, got %s", stats.Remaining)
		}
		if !stats.OverAmount.Equal(d("100")) {
			t.Errorf("expected over amount 100, got %s", stats.OverAmount)
		}
		if !stats.Percentage.Equal(d("110")) {
			t.Errorf("expected percentage 110, got %s", stats.Percentage)
		}
		if !stats.IsOverBudget {
			t.Error("expected over-budget flag")
		}
	})

	t.Run("under_budget", func(t *testing.T) {
		budget := models.CustomBudget{AllocatedAmount: d("1000")}
		txs := []models.Transaction{paidExpense("400", mid, mid)}

		stats := CustomBudgetStats(budget, txs, window)

		if !stats.Remaining.Equal(d("600")) {
			t.Errorf("expected remaining 600, got %s", stats.Remaining)
		}
		if !stats.OverAmount.IsZero() {
			t.Errorf("expected over amount 0, got %s", stats.OverAmount)
		}
		if stats.IsOverBudget {
			t.Error("expected under-budget flag")
		}
	})

	t.Run("remaining_and_over_never_both_positive", func(t *testing.T) {
		budget := models.CustomBudget{AllocatedAmount: d("500")}
		for _, amount := range []string{"0", "250", "500", "750"} {
			stats := CustomBudgetStats(budget, []models.Transaction{expense(amount, mid)}, window)
			if stats.Remaining.Sign() > 0 && stats.OverAmount.Sign() > 0 {
				t.Errorf("used %s: remaining %s and over %s both positive", amount, stats.Remaining, stats.OverAmount)
			}
		}
	})

	t.Run("paid_outside_window_excluded", func(t *testing.T) {
		budget := models.CustomBudget{AllocatedAmount: d("1000")}
		incurred := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
		settled := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		txs := []models.Transaction{
			// Settled in March: counts for the March window.
			paidExpense("100", incurred, settled),
			// Settled in April: outside the window.
			paidExpense("50", mid, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)),
		}

		stats := CustomBudgetStats(budget, txs, window)
		if !stats.Paid.Equal(d("100")) {
			t.Errorf("expected paid 100, got %s", stats.Paid)
		}
	})

	t.Run("unpaid_counts_regardless_of_date", func(t *testing.T) {
		budget := models.CustomBudget{AllocatedAmount: d("1000")}
		txs := []models.Transaction{
			expense("200", time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)),
		}

		stats := CustomBudgetStats(budget, txs, window)
		if !stats.Unpaid.Equal(d("200")) {
			t.Errorf("expected unpaid 200, got %s", stats.Unpaid)
		}
	})

	t.Run("paid_without_paid_date_excluded", func(t *testing.T) {
		budget := models.CustomBudget{AllocatedAmount: d("1000")}
		tx := expense("100", mid)
		tx.IsPaid = true

		stats := CustomBudgetStats(budget, []models.Transaction{tx}, window)
		if !stats.Used.IsZero() {
			t.Errorf("expected used 0, got %s", stats.Used)
		}
	})

	t.Run("income_ignored", func(t *testing.T) {
		budget := models.CustomBudget{AllocatedAmount: d("1000")}
		txs := []models.Transaction{
			{Type: models.TransactionTypeIncome, Amount: d("5000"), Date: mid},
			expense("100", mid),
		}

		stats := CustomBudgetStats(budget, txs, window)
		if !stats.Used.Equal(d("100")) {
			t.Errorf("expected used 100, got %s", stats.Used)
		}
	})

	t.Run("cash_allocations_per_currency", func(t *testing.T) {
		budget := models.CustomBudget{
			AllocatedAmount: d("1000"),
			CashAllocations: []models.CashAllocation{
				{CurrencyCode: "EUR", Amount: d("300")},
				{CurrencyCode: "JPY", Amount: d("20000")},
			},
		}
		eurSpend := paidExpense("120", mid, mid)
		eurSpend.IsCashWallet = true
		eurSpend.CurrencyCode = "EUR"
		jpySpend := paidExpense("5000", mid, mid)
		jpySpend.IsCashWallet = true
		jpySpend.CurrencyCode = "JPY"

		stats := CustomBudgetStats(budget, []models.Transaction{eurSpend, jpySpend}, window)

		if len(stats.CashLines) != 2 {
			t.Fatalf("expected 2 cash lines, got %d", len(stats.CashLines))
		}
		if !stats.CashLines[0].Spent.Equal(d("120")) {
			t.Errorf("expected EUR spent 120, got %s", stats.CashLines[0].Spent)
		}
		if !stats.CashLines[0].Remaining.Equal(d("180")) {
			t.Errorf("expected EUR remaining 180, got %s", stats.CashLines[0].Remaining)
		}
		if !stats.CashLines[1].Remaining.Equal(d("15000")) {
			t.Errorf("expected JPY remaining 15000, got %s", stats.CashLines[1].Remaining)
		}
		// Cash allocations widen the total envelope.
		if !stats.Allocated.Equal(d("21300")) {
			t.Errorf("expected allocated 21300, got %s", stats.Allocated)
		}
		if !stats.Used.Equal(d("5120")) {
			t.Errorf("expected used 5120, got %s", stats.Used)
		}
	})

	t.Run("cash_spend_does_not_touch_digital_split", func(t *testing.T) {
		budget := models.CustomBudget{
			AllocatedAmount: d("1000"),
			CashAllocations: []models.CashAllocation{{CurrencyCode: "USD", Amount: d("200")}},
		}
		cash := paidExpense("50", mid, mid)
		cash.IsCashWallet = true
		cash.CurrencyCode = "USD"

		stats := CustomBudgetStats(budget, []models.Transaction{cash}, window)
		if !stats.Paid.IsZero() || !stats.Unpaid.IsZero() {
			t.Errorf("cash spend leaked into digital split: paid %s unpaid %s", stats.Paid, stats.Unpaid)
		}
	})
}

func TestSystemBudgetStats(t *testing.T) {
	march := period.Month(2026, time.March)
	mid := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	newSystemBudget := func(priority models.Priority, amount string) models.SystemBudget {
		return models.SystemBudget{
			Type:         priority,
			BudgetAmount: d(amount),
			Year:         2026,
			Month:        3,
			StartDate:    march.Start,
			EndDate:      march.End,
		}
	}

	t.Run("matches_priority_bucket", func(t *testing.T) {
		budget := newSystemBudget(models.PriorityNeeds, "2000")
		needs := expense("300", mid)
		needs.FinancialPriority = priorityPtr(models.PriorityNeeds)
		wants := expense("400", mid)
		wants.FinancialPriority = priorityPtr(models.PriorityWants)

		stats := SystemBudgetStats(budget, []models.Transaction{needs, wants}, nil)
		if !stats.Used.Equal(d("300")) {
			t.Errorf("expected used 300, got %s", stats.Used)
		}
	})

	t.Run("category_priority_fallback", func(t *testing.T) {
		budget := newSystemBudget(models.PriorityWants, "1000")
		tx := expense("250", mid)
		tx.Category = &models.Category{Priority: models.PriorityWants}

		stats := SystemBudgetStats(budget, []models.Transaction{tx}, nil)
		if !stats.Used.Equal(d("250")) {
			t.Errorf("expected used 250, got %s", stats.Used)
		}
	})

	t.Run("transaction_override_wins", func(t *testing.T) {
		budget := newSystemBudget(models.PriorityNeeds, "1000")
		tx := expense("250", mid)
		tx.Category = &models.Category{Priority: models.PriorityWants}
		tx.FinancialPriority = priorityPtr(models.PriorityNeeds)

		stats := SystemBudgetStats(budget, []models.Transaction{tx}, nil)
		if !stats.Used.Equal(d("250")) {
			t.Errorf("expected used 250, got %s", stats.Used)
		}
	})

	t.Run("excludes_overlapping_custom_budget_spend", func(t *testing.T) {
		budget := newSystemBudget(models.PriorityNeeds, "2000")
		trip := models.CustomBudget{
			Base: models.Base{ID: "trip-1"},
			Name: "Trip",
			StartDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		}

		inTrip := expense("500", mid)
		inTrip.FinancialPriority = priorityPtr(models.PriorityNeeds)
		inTrip.CustomBudgetID = strPtr("trip-1")

		free := expense("200", mid)
		free.FinancialPriority = priorityPtr(models.PriorityNeeds)

		stats := SystemBudgetStats(budget, []models.Transaction{inTrip, free}, []models.CustomBudget{trip})
		if !stats.Used.Equal(d("200")) {
			t.Errorf("expected used 200, got %s", stats.Used)
		}
	})

	t.Run("non_overlapping_custom_budget_not_excluded", func(t *testing.T) {
		budget := newSystemBudget(models.PriorityNeeds, "2000")
		past := models.CustomBudget{
			Base:      models.Base{ID: "past-1"},
			StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		}

		tx := expense("300", mid)
		tx.FinancialPriority = priorityPtr(models.PriorityNeeds)
		tx.CustomBudgetID = strPtr("past-1")

		stats := SystemBudgetStats(budget, []models.Transaction{tx}, []models.CustomBudget{past})
		if !stats.Used.Equal(d("300")) {
			t.Errorf("expected used 300, got %s", stats.Used)
		}
	})

	t.Run("exclusion_applies_before_paid_unpaid_split", func(t *testing.T) {
		// Regression: excluding custom-budget spend after splitting into
		// paid and unpaid subtracted unpaid amounts twice, deflating the
		// bucket below its true consumption.
		budget := newSystemBudget(models.PriorityNeeds, "1000")
		trip := models.CustomBudget{
			Base:      models.Base{ID: "trip-2"},
			StartDate: march.Start,
			EndDate:   march.End,
		}

		excludedUnpaid := expense("400", mid)
		excludedUnpaid.FinancialPriority = priorityPtr(models.PriorityNeeds)
		excludedUnpaid.CustomBudgetID = strPtr("trip-2")

		keptUnpaid := expense("150", mid)
		keptUnpaid.FinancialPriority = priorityPtr(models.PriorityNeeds)

		keptPaid := paidExpense("250", mid, mid)
		keptPaid.FinancialPriority = priorityPtr(models.PriorityNeeds)

		stats := SystemBudgetStats(budget, []models.Transaction{excludedUnpaid, keptUnpaid, keptPaid}, []models.CustomBudget{trip})

		if !stats.Paid.Equal(d("250")) {
			t.Errorf("expected paid 250, got %s", stats.Paid)
		}
		if !stats.Unpaid.Equal(d("150")) {
			t.Errorf("expected unpaid 150, got %s", stats.Unpaid)
		}
		if !stats.Used.Equal(d("400")) {
			t.Errorf("expected used 400, got %s", stats.Used)
		}
		if stats.Used.Sign() < 0 || stats.Unpaid.Sign() < 0 {
			t.Error("totals must never go negative")
		}
	})

	t.Run("effective_date_outside_window_excluded", func(t *testing.T) {
		budget := newSystemBudget(models.PriorityNeeds, "1000")
		// Incurred in March, settled in April: effective date is April.
		tx := paidExpense("100", mid, time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC))
		tx.FinancialPriority = priorityPtr(models.PriorityNeeds)

		stats := SystemBudgetStats(budget, []models.Transaction{tx}, nil)
		if !stats.Used.IsZero() {
			t.Errorf("expected used 0, got %s", stats.Used)
		}
	})

	t.Run("no_priority_excluded", func(t *testing.T) {
		budget := newSystemBudget(models.PriorityNeeds, "1000")
		tx := expense("100", mid)

		stats := SystemBudgetStats(budget, []models.Transaction{tx}, nil)
		if !stats.Used.IsZero() {
			t.Errorf("expected used 0, got %s", stats.Used)
		}
	})
}
