// Package engine holds the pure calculation routines of Fiscus: budget
// consumption stats, cross-period settlement detection, goal feasibility
// audits, and income/expense projections. Every function is deterministic
// and side-effect free; callers supply fully-materialized records and an
// explicit evaluation window or clock value. Records with unusable dates
// are excluded from the affected aggregate rather than failing the whole
// calculation.
package engine

import (
	"github.com/shopspring/decimal"

	"fiscus/internal/models"
	"fiscus/internal/money"
	"fiscus/internal/period"
)

// CashLine is the consumption of one declared cash allocation.
type CashLine struct {
	CurrencyCode string          `json:"currency_code"`
	Allocated    decimal.Decimal `json:"allocated"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
}

// BudgetStats is the derived consumption record for a single budget.
// Exactly one of Remaining and OverAmount is non-zero at any time.
type BudgetStats struct {
	Allocated    decimal.Decimal `json:"allocated"`
	Paid         decimal.Decimal `json:"paid"`
	Unpaid       decimal.Decimal `json:"unpaid"`
	Used         decimal.Decimal `json:"used"`
	Remaining    decimal.Decimal `json:"remaining"`
	OverAmount   decimal.Decimal `json:"over_amount"`
	Percentage   decimal.Decimal `json:"percentage"`
	IsOverBudget bool            `json:"is_over_budget"`
	CashLines    []CashLine      `json:"cash_lines,omitempty"`
}

// finalize derives the invariant-bound fields from allocated and used.
func finalize(stats BudgetStats) BudgetStats {
	stats.Remaining = money.ClampZero(stats.Allocated.Sub(stats.Used))
	stats.OverAmount = money.ClampZero(stats.Used.Sub(stats.Allocated))
	stats.Percentage = money.Percentage(stats.Used, stats.Allocated)
	stats.IsOverBudget = stats.Used.GreaterThan(stats.Allocated)
	return stats
}

// CustomBudgetStats computes consumption for a custom budget from its own
// transaction set, evaluated against the caller-supplied month window.
//
// Digital (non cash-wallet) expenses count as paid when settled inside the
// window; unpaid digital expenses count regardless of date. Cash-wallet
// expenses consume the budget's per-currency cash allocations.
func CustomBudgetStats(budget models.CustomBudget, txs []models.Transaction, window period.Window) BudgetStats {
	paid := decimal.Zero
	unpaid := decimal.Zero

	cashSpent := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		if tx.IsCashWallet {
			if tx.IsPaid && tx.PaidDate != nil && window.Contains(*tx.PaidDate) {
				cashSpent[tx.CurrencyCode] = cashSpent[tx.CurrencyCode].Add(tx.Amount)
			}
			continue
		}
		if tx.IsPaid {
			// A paid transaction without a settlement date is excluded
			// rather than guessed at.
			if tx.PaidDate != nil && window.Contains(*tx.PaidDate) {
				paid = paid.Add(tx.Amount)
			}
			continue
		}
		unpaid = unpaid.Add(tx.Amount)
	}

	allocated := budget.AllocatedAmount
	used := paid.Add(unpaid)

	var cashLines []CashLine
	for _, alloc := range budget.CashAllocations {
		spent := cashSpent[alloc.CurrencyCode]
		cashLines = append(cashLines, CashLine{
			CurrencyCode: alloc.CurrencyCode,
			Allocated:    alloc.Amount,
			Spent:        spent,
			Remaining:    alloc.Amount.Sub(spent),
		})
		allocated = allocated.Add(alloc.Amount)
		used = used.Add(spent)
	}

	return finalize(BudgetStats{
		Allocated: allocated,
		Paid:      paid,
		Unpaid:    unpaid,
		Used:      used,
		CashLines: cashLines,
	})
}

// SystemBudgetStats computes consumption for a needs/wants/savings system
// budget. The transaction set is every expense whose effective priority
// matches the budget's bucket and whose effective date falls in the
// budget's own window.
//
// Expenses already attributed to a custom budget overlapping the same
// window are excluded up front, before the paid/unpaid split. Excluding
// after the split would double-subtract unpaid amounts that were never
// added for this bucket in the first place.
func SystemBudgetStats(budget models.SystemBudget, expenses []models.Transaction, customBudgets []models.CustomBudget) BudgetStats {
	window := budget.Window()

	overlapping := make(map[string]bool)
	for _, cb := range customBudgets {
		if cb.Window().Overlaps(window) {
			overlapping[cb.ID] = true
		}
	}

	paid := decimal.Zero
	unpaid := decimal.Zero
	for _, tx := range expenses {
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		if tx.EffectivePriority() != budget.Type {
			continue
		}
		if !window.Contains(tx.EffectiveDate()) {
			continue
		}
		if tx.CustomBudgetID != nil && overlapping[*tx.CustomBudgetID] {
			continue
		}
		if tx.IsPaid {
			if tx.PaidDate != nil && window.Contains(*tx.PaidDate) {
				paid = paid.Add(tx.Amount)
			}
			continue
		}
		unpaid = unpaid.Add(tx.Amount)
	}

	return finalize(BudgetStats{
		Allocated: budget.BudgetAmount,
		Paid:      paid,
		Unpaid:    unpaid,
		Used:      paid.Add(unpaid),
	})
}
