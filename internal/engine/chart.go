package engine

import (
	"github.com/shopspring/decimal"

	"fiscus/internal/models"
	"fiscus/internal/money"
)

// DayPoint is one day of the month chart series. Actuals are nil for days
// still in the future; projections are zero for days already past.
type DayPoint struct {
	Day              int              `json:"day"`
	ActualIncome     *decimal.Decimal `json:"actual_income"`
	ActualExpense    *decimal.Decimal `json:"actual_expense"`
	ProjectedIncome  decimal.Decimal  `json:"projected_income"`
	ProjectedExpense decimal.Decimal  `json:"projected_expense"`
}

// MonthlyTotals accumulates the chart series into month-level figures.
type MonthlyTotals struct {
	ActualIncome              decimal.Decimal `json:"actual_income"`
	ActualExpense             decimal.Decimal `json:"actual_expense"`
	ProjectedRemainingIncome  decimal.Decimal `json:"projected_remaining_income"`
	ProjectedRemainingExpense decimal.Decimal `json:"projected_remaining_expense"`
	FinalProjectedIncome      decimal.Decimal `json:"final_projected_income"`
	FinalProjectedExpense     decimal.Decimal `json:"final_projected_expense"`
}

// MonthlyChart is the day-by-day income/expense series for one month,
// combining actuals to date with the projected remainder.
type MonthlyChart struct {
	Days   []DayPoint    `json:"days"`
	Totals MonthlyTotals `json:"totals"`
}

// BuildMonthlyChart merges the current month's actual transactions with the
// income and expense projection maps into a chart series.
func BuildMonthlyChart(current []models.Transaction, incomeProj, expenseProj map[int]decimal.Decimal, daysInMonth, today int) MonthlyChart {
	incomeByDay := make(map[int]decimal.Decimal)
	expenseByDay := make(map[int]decimal.Decimal)
	for _, tx := range current {
		day := tx.EffectiveDate().Day()
		if day < 1 || day > daysInMonth {
			continue
		}
		switch tx.Type {
		case models.TransactionTypeIncome:
			incomeByDay[day] = incomeByDay[day].Add(tx.Amount)
		case models.TransactionTypeExpense:
			expenseByDay[day] = expenseByDay[day].Add(tx.Amount)
		}
	}

	chart := MonthlyChart{Days: make([]DayPoint, 0, daysInMonth)}
	for day := 1; day <= daysInMonth; day++ {
		point := DayPoint{
			Day:              day,
			ProjectedIncome:  incomeProj[day],
			ProjectedExpense: expenseProj[day],
		}
		if day <= today {
			income := incomeByDay[day]
			expense := expenseByDay[day]
			point.ActualIncome = &income
			point.ActualExpense = &expense
			chart.Totals.ActualIncome = chart.Totals.ActualIncome.Add(income)
			chart.Totals.ActualExpense = chart.Totals.ActualExpense.Add(expense)
		}
		chart.Totals.ProjectedRemainingIncome = chart.Totals.ProjectedRemainingIncome.Add(point.ProjectedIncome)
		chart.Totals.ProjectedRemainingExpense = chart.Totals.ProjectedRemainingExpense.Add(point.ProjectedExpense)
		chart.Days = append(chart.Days, point)
	}

	chart.Totals.FinalProjectedIncome = money.Sum(chart.Totals.ActualIncome, chart.Totals.ProjectedRemainingIncome)
	chart.Totals.FinalProjectedExpense = money.Sum(chart.Totals.ActualExpense, chart.Totals.ProjectedRemainingExpense)
	return chart
}
