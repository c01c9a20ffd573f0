package calculation

import (
	"testing"

	mdec "github.com/fungccc/HKMortgage2026/pkg/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAffordabilityCalculator(t *testing.T) {
	duty, err := NewStampDutyTable(DefaultStampDutySchedule())
	require.NoError(t, err)
	ac, err := NewAffordabilityCalculator(duty, *DefaultFeeSchedule())
	require.NoError(t, err)

	got := ac.Calculate(d(7_000_000), d(2_000_000), d(5_000_000), 360, d(3.5))

	assertDecimal(t, d(210_000), got.StampDuty)
	assertDecimal(t, d(70_000), got.AgencyFee)
	assertDecimal(t, d(15_000), got.LegalFee)
	assertDecimal(t, d(295_000), got.TransactionCosts)
	assertDecimal(t, d(2_295_000), got.TotalUpfrontCash)

	payment := mdec.AnnuityPayment(d(5_000_000), mdec.MonthlyRate(d(3.5)), 360)
	assertDecimal(t, payment.Mul(d(2)), got.MinMonthlyIncome)
}

func TestNewAffordabilityCalculator_Validation(t *testing.T) {
	duty, err := NewStampDutyTable(DefaultStampDutySchedule())
	require.NoError(t, err)

	_, err = NewAffordabilityCalculator(nil, *DefaultFeeSchedule())
	assert.ErrorContains(t, err, "stamp duty table")

	fees := *DefaultFeeSchedule()
	fees.DebtServiceRatio = d(0)
	_, err = NewAffordabilityCalculator(duty, fees)
	assert.ErrorContains(t, err, "debt service ratio")
}
