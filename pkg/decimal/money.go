package decimal

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// WorkingScale is the number of decimal places carried from one month to the
// next. Every product with a monthly rate is rounded to it so values do not
// gain digits with each period.
const WorkingScale int32 = 10

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Money represents an HKD amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// String returns the amount with two decimals and no grouping
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as whole Hong Kong dollars with thousands separators.
func (m Money) Format() string {
	s := m.Decimal.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-HK$" + b.String()
	}
	return "HK$" + b.String()
}

// MonthlyRate converts an annual percentage (5.375) into a monthly fraction.
func MonthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.Div(hundred).Div(twelve)
}

// FromPercent converts a percentage into a fraction (1.5 -> 0.015).
func FromPercent(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(hundred)
}

// AnnuityPayment returns the level payment that amortizes balance over n
// months at monthly rate r. A zero rate falls back to straight-line and a
// non-positive n returns zero.
func AnnuityPayment(balance, r decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 || !balance.IsPositive() {
		return decimal.Zero
	}
	if r.IsZero() {
		return balance.Div(decimal.NewFromInt(int64(n)))
	}
	rf, _ := r.Float64()
	factor := decimal.NewFromFloat(math.Pow(1+rf, -float64(n)))
	return balance.Mul(r).Div(decimal.NewFromInt(1).Sub(factor))
}

// Working rounds d to WorkingScale.
func Working(d decimal.Decimal) decimal.Decimal {
	return d.Round(WorkingScale)
}

// ClampZero floors negative values at zero.
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// AlmostEqual reports whether a and b differ by no more than tolerance.
func AlmostEqual(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

// Min returns the smaller of two decimals
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

