package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestSum(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if !Sum().IsZero() {
			t.Error("expected zero sum for no values")
		}
	})

	t.Run("mixed_signs", func(t *testing.T) {
		got := Sum(d("10.50"), d("-3.25"), d("0.75"))
		if !got.Equal(d("8")) {
			t.Errorf("expected 8, got %s", got)
		}
	})

	t.Run("no_float_drift", func(t *testing.T) {
		got := Sum(d("0.1"), d("0.2"))
		if !got.Equal(d("0.3")) {
			t.Errorf("expected exactly 0.3, got %s", got)
		}
	})
}

func TestSafeDiv(t *testing.T) {
	t.Run("zero_denominator", func(t *testing.T) {
		if !SafeDiv(d("100"), decimal.Zero).IsZero() {
			t.Error("expected zero for division by zero")
		}
	})

	t.Run("normal", func(t *testing.T) {
		got := SafeDiv(d("100"), d("4"))
		if !got.Equal(d("25")) {
			t.Errorf("expected 25, got %s", got)
		}
	})
}

func TestPercentage(t *testing.T) {
	t.Run("zero_whole", func(t *testing.T) {
		if !Percentage(d("50"), decimal.Zero).IsZero() {
			t.Error("expected zero percentage for zero whole")
		}
	})

	t.Run("negative_whole", func(t *testing.T) {
		if !Percentage(d("50"), d("-100")).IsZero() {
			t.Error("expected zero percentage for negative whole")
		}
	})

	t.Run("over_hundred", func(t *testing.T) {
		got := Percentage(d("1100"), d("1000"))
		if !got.Equal(d("110")) {
			t.Errorf("expected 110, got %s", got)
		}
	})
}

func TestClampZero(t *testing.T) {
	if !ClampZero(d("-5")).IsZero() {
		t.Error("expected negative clamped to zero")
	}
	if !ClampZero(d("5")).Equal(d("5")) {
		t.Error("expected positive unchanged")
	}
}

func TestMin(t *testing.T) {
	if !Min(d("3"), d("7")).Equal(d("3")) {
		t.Error("expected 3")
	}
	if !Min(d("7"), d("3")).Equal(d("3")) {
		t.Error("expected 3")
	}
}

func TestMedian(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if !Median(nil).IsZero() {
			t.Error("expected zero for empty series")
		}
	})

	t.Run("odd_length", func(t *testing.T) {
		got := Median([]decimal.Decimal{d("9"), d("1"), d("5")})
		if !got.Equal(d("5")) {
			t.Errorf("expected 5, got %s", got)
		}
	})

	t.Run("even_length_averages_middles", func(t *testing.T) {
		got := Median([]decimal.Decimal{d("1"), d("2"), d("3"), d("4")})
		if !got.Equal(d("2.5")) {
			t.Errorf("expected 2.5, got %s", got)
		}
	})

	t.Run("does_not_mutate_input", func(t *testing.T) {
		values := []decimal.Decimal{d("3"), d("1"), d("2")}
		Median(values)
		if !values[0].Equal(d("3")) {
			t.Error("input slice was reordered")
		}
	})
}

func TestAverage(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if !Average(nil).IsZero() {
			t.Error("expected zero for empty series")
		}
	})

	t.Run("mean", func(t *testing.T) {
		got := Average([]decimal.Decimal{d("2000"), d("3000"), d("4000")})
		if !got.Equal(d("3000")) {
			t.Errorf("expected 3000, got %s", got)
		}
	})
}
