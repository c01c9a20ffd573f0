package calculation

import (
	"testing"

	"github.com/fungccc/HKMortgage2026/internal/domain"
	mdec "github.com/fungccc/HKMortgage2026/pkg/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStressTest(t *testing.T) {
	cycle := []domain.MarketCondition{
		{Prime: d(5.0), Hibor: d(1.0), Label: "low"},
		{Prime: d(6.0), Hibor: d(4.0), Label: "peak"},
		{Prime: d(6.0), Hibor: d(4.5), Label: "second peak"},
	}
	baseline := mdec.AnnuityPayment(d(5_000_000), mdec.MonthlyRate(d(3.0)), 360)

	got := StressTest(d(5_000_000), 360, d(2.0), cycle, baseline)

	assertDecimal(t, d(6.0), got.PeakPrime)
	assert.Equal(t, "peak", got.PeakLabel)
	assertDecimal(t, d(4.0), got.StressRate)
	assertDecimal(t, mdec.AnnuityPayment(d(5_000_000), mdec.MonthlyRate(d(4.0)), 360), got.StressPayment)
	assertDecimal(t, got.StressPayment.Sub(baseline), got.PaymentIncrease)
	assert.True(t, got.PaymentIncrease.IsPositive())
}

func TestStressTest_DiscountAbovePeakClampsToZero(t *testing.T) {
	cycle := []domain.MarketCondition{{Prime: d(1.5), Hibor: d(0.5), Label: "flat"}}
	got := StressTest(d(360_000), 360, d(2.0), cycle, d(1_000))

	assert.True(t, got.StressRate.IsZero())
	assertDecimal(t, d(1_000), got.StressPayment)
	assert.True(t, got.PaymentIncrease.IsZero())
}
