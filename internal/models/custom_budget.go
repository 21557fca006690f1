package models

import (
	"time"

	"github.com/shopspring/decimal"

	"fiscus/internal/period"
)

// BudgetStatus represents a custom budget's lifecycle state.
type BudgetStatus string

const (
	BudgetStatusPlanned   BudgetStatus = "planned"
	BudgetStatusActive    BudgetStatus = "active"
	BudgetStatusCompleted BudgetStatus = "completed"
)

// CustomBudget is a user-authored, date-ranged spending bucket
// (e.g. "Trip to Lisbon"). It owns zero or more transactions and may
// declare per-currency cash allocations alongside its digital allocation.
type CustomBudget struct {
	Base
	Name            string          `gorm:"not null" json:"name"`
	AllocatedAmount decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"allocated_amount"`
	StartDate       time.Time       `gorm:"not null" json:"start_date"`
	EndDate         time.Time       `gorm:"not null" json:"end_date"`
	Status          BudgetStatus    `gorm:"default:planned" json:"status"`

	// Relationships
	CashAllocations []CashAllocation `gorm:"foreignKey:CustomBudgetID" json:"cash_allocations,omitempty"`
	Transactions    []Transaction    `gorm:"foreignKey:CustomBudgetID" json:"transactions,omitempty"`
}

// Window returns the budget's own date range.
func (b *CustomBudget) Window() period.Window {
	return period.Window{Start: b.StartDate, End: b.EndDate}
}

// CashAllocation declares an amount of physical cash, in one currency,
// set aside for a custom budget.
type CashAllocation struct {
	Base
	CustomBudgetID string          `gorm:"type:uuid;not null" json:"custom_budget_id"`
	CurrencyCode   string          `gorm:"size:3;not null" json:"currency_code"`
	Amount         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
}
