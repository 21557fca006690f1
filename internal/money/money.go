// Package money wraps all monetary arithmetic behind shopspring/decimal.
// No calculation in the engine may sum currency values with native floats;
// cent-level drift over large transaction sets is the failure mode this
// package exists to prevent. Ratio helpers return zero on a zero
// denominator instead of propagating NaN or panicking.
package money

import "github.com/shopspring/decimal"

// Zero is the additive identity for monetary sums.
var Zero = decimal.Zero

// Sum adds a series of monetary values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// SafeDiv divides num by den, returning zero when den is zero.
func SafeDiv(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}

// Percentage returns part/whole expressed as a percentage.
// A zero or negative whole yields zero, never an error.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.Sign() <= 0 {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100))
}

// ClampZero returns d, or zero when d is negative.
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.Sign() < 0 {
		return decimal.Zero
	}
	return d
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Median returns the middle value of an unsorted series, averaging the two
// middle values for even-length input. Returns zero for an empty series.
func Median(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}

	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].LessThan(sorted[j-1]); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

// Average returns the arithmetic mean of a series, or zero for empty input.
func Average(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return Sum(values...).Div(decimal.NewFromInt(int64(len(values))))
}
