package models

import (
	"time"

	"github.com/shopspring/decimal"

	"fiscus/internal/period"
)

// SystemBudget is an automatically-generated monthly budget bucket
// (needs/wants/savings) derived from a BudgetGoal and the user's income.
// It is written only by the synchronizer, never authored directly.
type SystemBudget struct {
	Base
	Type         Priority        `gorm:"column:system_budget_type;not null;uniqueIndex:idx_system_budget_period,priority:1" json:"system_budget_type"`
	BudgetAmount decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"budget_amount"`
	Year         int             `gorm:"not null;uniqueIndex:idx_system_budget_period,priority:2" json:"year"`
	Month        int             `gorm:"not null;uniqueIndex:idx_system_budget_period,priority:3" json:"month"`
	StartDate    time.Time       `gorm:"not null" json:"start_date"`
	EndDate      time.Time       `gorm:"not null" json:"end_date"`
}

// Window returns the calendar month this budget covers.
func (b *SystemBudget) Window() period.Window {
	return period.Window{Start: b.StartDate, End: b.EndDate}
}

// BudgetGoal is the percentage split (50/30/20 style) the synchronizer
// materializes into system budgets each month.
type BudgetGoal struct {
	Base
	Priority         Priority        `gorm:"not null;uniqueIndex" json:"priority"`
	TargetPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"target_percentage"`
	IsActive         bool            `gorm:"default:true" json:"is_active"`
}
