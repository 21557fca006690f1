package engine

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"fiscus/internal/models"
	"fiscus/internal/money"
	"fiscus/internal/period"
)

// Average number of funding periods per calendar month. These are empirical
// conversion constants for monthly-equivalent figures, fixed by the engine
// and deliberately not configurable.
var (
	weeklyPeriodsPerMonth   = decimal.NewFromFloat(4.33)
	biweeklyPeriodsPerMonth = decimal.NewFromFloat(2.16)
	monthlyPeriodsPerMonth  = decimal.NewFromInt(1)
)

// periodsPerMonth returns the monthly-equivalent conversion factor for a
// funding frequency.
func periodsPerMonth(freq models.FundingFrequency) decimal.Decimal {
	switch freq {
	case models.FrequencyWeekly:
		return weeklyPeriodsPerMonth
	case models.FrequencyBiweekly:
		return biweeklyPeriodsPerMonth
	default:
		return monthlyPeriodsPerMonth
	}
}

// FeasibilityStatus classifies a goal's funding outlook.
type FeasibilityStatus string

const (
	StatusOnTrack    FeasibilityStatus = "on_track"
	StatusFundingGap FeasibilityStatus = "funding_gap"
	StatusOverfunded FeasibilityStatus = "overfunded"
)

// RequiredContribution is the per-period amount needed to reach a goal's
// target by its deadline.
type RequiredContribution struct {
	Remaining        decimal.Decimal `json:"remaining"`
	PeriodsRemaining int             `json:"periods_remaining"`
	PerPeriod        decimal.Decimal `json:"per_period"`
	IsFeasible       bool            `json:"is_feasible"`
}

// FeasibilityAudit compares a goal's required contribution rate against the
// user's planned contribution and actual disposable surplus.
type FeasibilityAudit struct {
	IsFeasible          bool              `json:"is_feasible"`
	TimelineFeasible    bool              `json:"timeline_feasible"`
	FundingFeasible     bool              `json:"funding_feasible"`
	RequiredMonthly     decimal.Decimal   `json:"required_monthly"`
	PlannedContribution decimal.Decimal   `json:"planned_contribution"`
	Gap                 decimal.Decimal   `json:"gap"`
	Status              FeasibilityStatus `json:"status"`
}

// AuditContext carries the income picture a feasibility audit is made
// against. ExistingCommitment is the sum of planned monthly contributions
// to all other active goals.
type AuditContext struct {
	MonthlyIncome      decimal.Decimal
	MonthlyExpenses    decimal.Decimal
	ExistingCommitment decimal.Decimal
}

// CalculateRequiredContribution computes the per-period amount needed to
// close the gap between the current balance and the target by the deadline.
// An already-met target is feasible with zero required.
func CalculateRequiredContribution(target, balance decimal.Decimal, deadline, now time.Time, freq models.FundingFrequency) RequiredContribution {
	remaining := target.Sub(balance)
	if remaining.Sign() <= 0 {
		return RequiredContribution{IsFeasible: true}
	}

	var periods int
	switch freq {
	case models.FrequencyWeekly:
		periods = period.WholeWeeksBetween(now, deadline)
	case models.FrequencyBiweekly:
		periods = period.WholeWeeksBetween(now, deadline) / 2
	default:
		periods = period.WholeMonthsBetween(now, deadline)
	}
	if periods < 1 {
		periods = 1
	}

	return RequiredContribution{
		Remaining:        remaining,
		PeriodsRemaining: periods,
		PerPeriod:        remaining.Div(decimal.NewFromInt(int64(periods))),
		IsFeasible:       deadline.After(now),
	}
}

// CalculatePlannedContribution converts a goal's funding rule into its
// monthly-equivalent planned contribution. A fixed rule contributes its
// configured amount per period; a percentage rule contributes that share
// of the monthly income per period.
func CalculatePlannedContribution(goal models.Goal, monthlyIncome decimal.Decimal) decimal.Decimal {
	var perPeriod decimal.Decimal
	switch goal.FundingType {
	case models.FundingTypePercentage:
		perPeriod = monthlyIncome.Mul(goal.FundingPercentage).Div(decimal.NewFromInt(100))
	default:
		perPeriod = goal.FundingAmount
	}
	return perPeriod.Mul(periodsPerMonth(goal.Frequency))
}

// AuditGoalFeasibility runs the full feasibility audit for a goal.
func AuditGoalFeasibility(goal models.Goal, ctx AuditContext, now time.Time) FeasibilityAudit {
	required := CalculateRequiredContribution(goal.TargetAmount, goal.VirtualBalance, goal.Deadline, now, goal.Frequency)
	requiredMonthly := required.PerPeriod.Mul(periodsPerMonth(goal.Frequency))
	planned := CalculatePlannedContribution(goal, ctx.MonthlyIncome)

	actualSurplus := money.ClampZero(ctx.MonthlyIncome.Sub(ctx.MonthlyExpenses).Sub(ctx.ExistingCommitment))
	gap := requiredMonthly.Sub(planned)

	fundingFeasible := !planned.GreaterThan(actualSurplus) && !planned.LessThan(requiredMonthly)

	status := StatusOverfunded
	switch {
	case fundingFeasible:
		status = StatusOnTrack
	case gap.Sign() > 0:
		status = StatusFundingGap
	}

	return FeasibilityAudit{
		IsFeasible:          required.IsFeasible && fundingFeasible,
		TimelineFeasible:    required.IsFeasible,
		FundingFeasible:     fundingFeasible,
		RequiredMonthly:     requiredMonthly,
		PlannedContribution: planned,
		Gap:                 gap,
		Status:              status,
	}
}

// CalculateGoalProgress returns balance/target as a percentage clamped to
// [0, 100]. A non-positive target yields zero.
func CalculateGoalProgress(balance, target decimal.Decimal) decimal.Decimal {
	if target.Sign() <= 0 {
		return decimal.Zero
	}
	pct := balance.Div(target).Mul(decimal.NewFromInt(100))
	if pct.Sign() < 0 {
		return decimal.Zero
	}
	return money.Min(pct, decimal.NewFromInt(100))
}

// ProjectCompletionDate estimates when a goal reaches its target at the
// planned per-period contribution rate. The second return value is false
// when no projection is possible (nothing remaining or no contribution).
func ProjectCompletionDate(goal models.Goal, perPeriodContribution decimal.Decimal, now time.Time) (time.Time, bool) {
	remaining := goal.TargetAmount.Sub(goal.VirtualBalance)
	if remaining.Sign() <= 0 || perPeriodContribution.Sign() <= 0 {
		return time.Time{}, false
	}

	ratio, _ := remaining.Div(perPeriodContribution).Float64()
	periods := int(math.Ceil(ratio))

	return advancePeriods(now, goal.Frequency, periods), true
}

// NeedsSettlement reports whether an active goal is due for its next
// scheduled deposit: one funding period has elapsed since the last ledger
// entry (or since now, for a goal with no deposits yet).
func NeedsSettlement(goal models.Goal, now time.Time) bool {
	if goal.Status != models.GoalStatusActive {
		return false
	}

	last := now
	if n := len(goal.LedgerEntries); n > 0 {
		last = goal.LedgerEntries[0].Timestamp
		for _, entry := range goal.LedgerEntries[1:] {
			if entry.Timestamp.After(last) {
				last = entry.Timestamp
			}
		}
	}

	next := advancePeriods(last, goal.Frequency, 1)
	return !now.Before(next)
}

// advancePeriods moves t forward by n funding periods.
func advancePeriods(t time.Time, freq models.FundingFrequency, n int) time.Time {
	switch freq {
	case models.FrequencyWeekly:
		return t.AddDate(0, 0, 7*n)
	case models.FrequencyBiweekly:
		return t.AddDate(0, 0, 14*n)
	default:
		return t.AddDate(0, n, 0)
	}
}
