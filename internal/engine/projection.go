package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"fiscus/internal/models"
	"fiscus/internal/money"
	"fiscus/internal/period"
)

// Projection heuristics. Empirical thresholds, tuned by observation rather
// than derived; adjust here, never inline in the algorithm bodies.
var (
	// secondaryIncomeFloor separates recurring secondary income from petty
	// amounts when partitioning a month's non-salary income.
	secondaryIncomeFloor = decimal.NewFromInt(100)

	// salaryShortfallRatio: a current month whose largest income is below
	// this share of the historical average salary is assumed to still be
	// waiting for its salary.
	salaryShortfallRatio = decimal.NewFromFloat(0.80)

	// secondaryShortfallRatio: same idea for the secondary income total.
	secondaryShortfallRatio = decimal.NewFromFloat(0.70)
)

const (
	// secondaryLikelihoodMin is the minimum fraction of historical months
	// with secondary income before the engine predicts it recurring.
	secondaryLikelihoodMin = 0.5

	// secondaryTargetDay is the default day-of-month a predicted secondary
	// income lands on, clamped between tomorrow and month end.
	secondaryTargetDay = 15

	// histogramSlots covers the longest possible month.
	histogramSlots = 31
)

// monthIncome is one historical month's partitioned income.
type monthIncome struct {
	salary    decimal.Decimal
	salaryDay int
	secondary decimal.Decimal
	petty     decimal.Decimal
}

// partitionIncome splits one month's income transactions into salary (the
// single largest), secondary (others at or above the floor), and petty.
func partitionIncome(txs []models.Transaction) monthIncome {
	var m monthIncome
	salaryIdx := -1
	for i, tx := range txs {
		if salaryIdx < 0 || tx.Amount.GreaterThan(txs[salaryIdx].Amount) {
			salaryIdx = i
		}
	}
	if salaryIdx < 0 {
		return m
	}
	m.salary = txs[salaryIdx].Amount
	m.salaryDay = txs[salaryIdx].Date.Day()
	for i, tx := range txs {
		if i == salaryIdx {
			continue
		}
		if tx.Amount.GreaterThanOrEqual(secondaryIncomeFloor) {
			m.secondary = m.secondary.Add(tx.Amount)
		} else {
			m.petty = m.petty.Add(tx.Amount)
		}
	}
	return m
}

// ProjectIncome predicts the remaining income of the current month from
// historical patterns: a salary anchor (largest transaction per month,
// injected on its median day when still outstanding), recurring secondary
// income, and a petty-income lump on the final day. Returns a sparse
// day-of-month → predicted amount map.
func ProjectIncome(historical, current []models.Transaction, daysInMonth, today int) map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal)

	byMonth := make(map[string][]models.Transaction)
	for _, tx := range historical {
		if tx.Type != models.TransactionTypeIncome || tx.Date.IsZero() {
			continue
		}
		key := period.MonthKey(tx.Date)
		byMonth[key] = append(byMonth[key], tx)
	}
	if len(byMonth) == 0 {
		return out
	}

	var salaries, pettyTotals, secondaryTotals []decimal.Decimal
	var salaryDays []int
	secondaryMonths := 0
	for _, txs := range byMonth {
		m := partitionIncome(txs)
		salaries = append(salaries, m.salary)
		salaryDays = append(salaryDays, m.salaryDay)
		pettyTotals = append(pettyTotals, m.petty)
		if m.secondary.Sign() > 0 {
			secondaryTotals = append(secondaryTotals, m.secondary)
			secondaryMonths++
		}
	}

	avgSalary := money.Average(salaries)
	medianSalaryDay := medianInt(salaryDays)
	medianSecondary := money.Median(secondaryTotals)
	secondaryLikelihood := float64(secondaryMonths) / float64(len(byMonth))
	avgPetty := money.Average(pettyTotals)

	var currentIncome []models.Transaction
	for _, tx := range current {
		if tx.Type == models.TransactionTypeIncome {
			currentIncome = append(currentIncome, tx)
		}
	}
	cur := partitionIncome(currentIncome)

	// Salary anchor still outstanding on its usual day.
	if avgSalary.Sign() > 0 &&
		cur.salary.LessThan(avgSalary.Mul(salaryShortfallRatio)) &&
		medianSalaryDay > today {
		day := medianSalaryDay
		if day > daysInMonth {
			day = daysInMonth
		}
		out[day] = out[day].Add(avgSalary)
	}

	// Recurring secondary income not seen yet this month.
	if medianSecondary.Sign() > 0 &&
		cur.secondary.LessThan(medianSecondary.Mul(secondaryShortfallRatio)) &&
		secondaryLikelihood > secondaryLikelihoodMin {
		day := secondaryTargetDay
		if day <= today {
			day = today + 1
		}
		if day > daysInMonth {
			day = daysInMonth
		}
		if day > today {
			out[day] = out[day].Add(medianSecondary)
		}
	}

	// Petty income as a lump on the final day.
	if avgPetty.Sign() > 0 && today < daysInMonth {
		out[daysInMonth] = out[daysInMonth].Add(avgPetty)
	}

	return out
}

// ProjectExpenses predicts the remaining expenses of the current month by
// redistributing the gap to the historical monthly average across the
// remaining days, weighted by an amount-weighted day-of-month histogram.
// Days are keyed on the paid date when settled, the incurred date
// otherwise. Falls back to a uniform spread when no remaining day carries
// historical weight. Returns a sparse day-of-month → predicted amount map.
func ProjectExpenses(historical, current []models.Transaction, daysInMonth, today int) map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal)

	var weights [histogramSlots + 1]decimal.Decimal
	total := decimal.Zero
	months := make(map[string]bool)
	for _, tx := range historical {
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		effective := tx.EffectiveDate()
		if effective.IsZero() {
			continue
		}
		day := effective.Day()
		weights[day] = weights[day].Add(tx.Amount)
		total = total.Add(tx.Amount)
		months[period.MonthKey(effective)] = true
	}

	avgMonthly := money.SafeDiv(total, decimal.NewFromInt(int64(len(months))))

	spentSoFar := decimal.Zero
	for _, tx := range current {
		if tx.Type == models.TransactionTypeExpense {
			spentSoFar = spentSoFar.Add(tx.Amount)
		}
	}

	gap := money.ClampZero(avgMonthly.Sub(spentSoFar))
	if gap.IsZero() || today >= daysInMonth {
		return out
	}

	futureWeight := decimal.Zero
	for day := today + 1; day <= daysInMonth; day++ {
		futureWeight = futureWeight.Add(weights[day])
	}

	if futureWeight.Sign() > 0 {
		for day := today + 1; day <= daysInMonth; day++ {
			if weights[day].Sign() > 0 {
				out[day] = gap.Mul(weights[day]).Div(futureWeight)
			}
		}
		return out
	}

	// No historical weight ahead: spread the gap uniformly.
	remainingDays := decimal.NewFromInt(int64(daysInMonth - today))
	share := gap.Div(remainingDays)
	for day := today + 1; day <= daysInMonth; day++ {
		out[day] = share
	}
	return out
}

// medianInt returns the median of an unsorted int series, lower-middle for
// even length. Returns zero for empty input.
func medianInt(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)
	return sorted[(len(sorted)-1)/2]
}
