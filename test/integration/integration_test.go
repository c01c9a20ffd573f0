package integration

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fungccc/HKMortgage2026/internal/config"
	"github.com/fungccc/HKMortgage2026/internal/domain"
	"github.com/fungccc/HKMortgage2026/internal/output"
)

const exampleConfig = "../testdata/example_config.yaml"

var cent = decimal.NewFromFloat(0.01)

func loadAndSimulate(t *testing.T) (*domain.Configuration, *domain.SimulationResult) {
	t.Helper()
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(exampleConfig)
	require.NoError(t, err)
	require.NoError(t, parser.ValidateConfiguration(cfg))

	sim, err := config.NewSimulator(cfg)
	require.NoError(t, err)
	res, err := sim.Simulate(cfg.Parameters)
	require.NoError(t, err)
	return cfg, res
}

func TestEndToEndCalculation(t *testing.T) {
	cfg, res := loadAndSimulate(t)

	assert.True(t, res.LoanAmount.Equal(decimal.NewFromInt(5_000_000)))
	require.Len(t, res.Monthly, cfg.Parameters.TotalMonths())
	assert.Equal(t, 2026, res.Monthly[0].CalendarYear)
	assert.Equal(t, 2055, res.Monthly[len(res.Monthly)-1].CalendarYear)

	for _, pr := range res.PlanResults() {
		principal := decimal.Zero
		for _, m := range res.Monthly {
			pm := planMonth(m, pr.Plan)
			principal = principal.Add(pm.Principal).Add(pm.ExtraPrincipal)
		}
		assert.True(t, principal.Sub(res.LoanAmount).Abs().LessThanOrEqual(cent), "%s principal %s", pr.Plan, principal)
		assert.True(t, pr.TotalExtraPrincipal.Equal(decimal.NewFromInt(500_000)), pr.Plan)
		assert.True(t, pr.TotalMortgageLinkOffset.IsPositive() || pr.Plan == domain.PlanFixed, pr.Plan)
	}
	assert.True(t, res.Fixed.TotalMortgageLinkOffset.IsZero())
	assert.True(t, res.CashRebate.Equal(decimal.NewFromInt(75_000)))
	assert.NotEmpty(t, res.CheapestPlan)
}

func TestPartialRepaymentLandsAtMonth37(t *testing.T) {
	_, res := loadAndSimulate(t)
	m := res.Monthly[36]
	assert.Equal(t, 37, m.Month)
	assert.True(t, m.ExtraRepayment.Equal(decimal.NewFromInt(500_000)))
	for _, pm := range []domain.PlanMonth{m.H, m.P, m.Fixed} {
		assert.True(t, pm.ExtraPrincipal.Equal(decimal.NewFromInt(500_000)))
	}
}

func TestRefinanceEventsOnBiennialMonths(t *testing.T) {
	_, res := loadAndSimulate(t)
	require.True(t, res.Refinance.Enabled)
	total := decimal.Zero
	for _, e := range res.Refinance.Events {
		assert.Zero(t, e.Month%24)
		assert.Less(t, e.Month, res.TotalMonths)
		assert.True(t, e.NetGain.IsPositive())
		assert.True(t, e.LegalFee.Equal(decimal.NewFromInt(4500)))
		total = total.Add(e.NetGain)
	}
	assert.True(t, total.Equal(res.Refinance.TotalNetGain))
}

func TestRentVsBuySnapshots(t *testing.T) {
	cfg, res := loadAndSimulate(t)
	rvb := res.RentVsBuy
	require.True(t, rvb.Enabled)
	require.Len(t, rvb.Years, cfg.Parameters.TenureYears+1)

	y0 := rvb.Years[0]
	assert.True(t, y0.BuyNetWorth.Equal(decimal.NewFromInt(2_000_000)))
	assert.True(t, y0.RentNetWorth.Equal(res.Affordability.TotalUpfrontCash))
	if rvb.BreakEvenYear != nil {
		assert.GreaterOrEqual(t, *rvb.BreakEvenYear, 1)
	}
}

func TestOutputGeneration(t *testing.T) {
	_, res := loadAndSimulate(t)
	for _, format := range output.AvailableFormatterNames() {
		var buf bytes.Buffer
		require.NoError(t, output.GenerateReport(res, format, &buf), format)
		assert.NotZero(t, buf.Len(), format)
	}
}

func planMonth(m domain.MonthlyRecord, plan domain.Plan) domain.PlanMonth {
	switch plan {
	case domain.PlanP:
		return m.P
	case domain.PlanFixed:
		return m.Fixed
	default:
		return m.H
	}
}
