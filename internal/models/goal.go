package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalStatus represents a savings goal's lifecycle state.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusArchived  GoalStatus = "archived"
)

// FundingType represents how a goal's expected contribution is derived.
type FundingType string

const (
	FundingTypeFixed      FundingType = "fixed"
	FundingTypePercentage FundingType = "percentage"
)

// FundingFrequency represents how often a goal expects a contribution.
type FundingFrequency string

const (
	FrequencyWeekly   FundingFrequency = "weekly"
	FrequencyBiweekly FundingFrequency = "biweekly"
	FrequencyMonthly  FundingFrequency = "monthly"
)

// Goal is a savings goal with a deadline and a funding rule. VirtualBalance
// is a ledger-accumulated total, independent of any real account balance,
// mutated only by deposits. Status transitions to completed when the
// balance reaches the target.
type Goal struct {
	Base
	Name           string          `gorm:"not null" json:"name"`
	TargetAmount   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"target_amount"`
	VirtualBalance decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"virtual_balance"`
	Deadline       time.Time       `gorm:"not null" json:"deadline"`

	FundingType       FundingType      `gorm:"not null" json:"funding_type"`
	FundingAmount     decimal.Decimal  `gorm:"type:decimal(20,4)" json:"funding_amount"`
	FundingPercentage decimal.Decimal  `gorm:"type:decimal(5,2)" json:"funding_percentage"`
	Frequency         FundingFrequency `gorm:"not null" json:"frequency"`

	Status GoalStatus `gorm:"default:active" json:"status"`

	// Relationships
	LedgerEntries []GoalLedgerEntry `gorm:"foreignKey:GoalID" json:"ledger_entries,omitempty"`
}

// GoalLedgerEntry records a single deposit toward a goal's virtual balance.
// Entries are append-only; the balance is their running total.
type GoalLedgerEntry struct {
	Base
	GoalID    string          `gorm:"type:uuid;not null;index" json:"goal_id"`
	Timestamp time.Time       `gorm:"not null" json:"timestamp"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Source    string          `json:"source"`
	Notes     string          `json:"notes"`
}
