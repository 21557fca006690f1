package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a financial transaction. Amount is always positive;
// the sign of its effect is derived from Type. Once persisted a transaction
// is immutable except for the unpaid→paid transition (IsPaid + PaidDate).
type Transaction struct {
	Base
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `gorm:"not null" json:"date"`
	PaidDate    *time.Time      `json:"paid_date,omitempty"`
	IsPaid      bool            `gorm:"default:false" json:"is_paid"`

	CategoryID     *string `gorm:"type:uuid" json:"category_id,omitempty"`
	CustomBudgetID *string `gorm:"type:uuid" json:"custom_budget_id,omitempty"`

	// FinancialPriority overrides the category's priority bucket when set.
	FinancialPriority *Priority `json:"financial_priority,omitempty"`

	// Cash-wallet transactions are tracked per currency against a budget's
	// declared cash allocations rather than its digital allocation.
	IsCashWallet bool   `gorm:"default:false" json:"is_cash_wallet"`
	CurrencyCode string `gorm:"size:3;default:USD" json:"currency_code"`

	// Relationships
	Category     *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CustomBudget *CustomBudget `gorm:"foreignKey:CustomBudgetID" json:"custom_budget,omitempty"`
}

// EffectiveDate returns the settlement date for paid transactions and the
// incurred date otherwise.
func (t *Transaction) EffectiveDate() time.Time {
	if t.IsPaid && t.PaidDate != nil {
		return *t.PaidDate
	}
	return t.Date
}

// EffectivePriority resolves the priority bucket for an expense: the
// transaction-level override wins, then the category's priority. Returns
// the empty string when neither is set.
func (t *Transaction) EffectivePriority() Priority {
	if t.FinancialPriority != nil {
		return *t.FinancialPriority
	}
	if t.Category != nil {
		return t.Category.Priority
	}
	return ""
}
