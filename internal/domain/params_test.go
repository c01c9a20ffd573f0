package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func validParams() SimulationParameters {
	return SimulationParameters{
		PropertyPrice: decimal.NewFromInt(7_000_000),
		DownPayment:   decimal.NewFromInt(2_000_000),
		TenureYears:   30,
		RateMode:      RateModeHistorical,
		PDiscount:     decimal.NewFromFloat(1.75),
		HSpread:       decimal.NewFromFloat(1.3),
		HCapDiscount:  decimal.NewFromFloat(1.75),
	}
}

func TestSimulationParameters_LoanAmount(t *testing.T) {
	p := validParams()
	assert.True(t, p.LoanAmount().Equal(decimal.NewFromInt(5_000_000)))

	p.DownPayment = decimal.NewFromInt(9_000_000)
	assert.True(t, p.LoanAmount().IsZero(), "loan is floored at zero")
	assert.Equal(t, 360, p.TotalMonths())
}

func TestSimulationParameters_PartialRepaymentMonth(t *testing.T) {
	p := validParams()
	assert.Equal(t, 0, p.PartialRepaymentMonth())

	p.PartialRepayment = PartialRepaymentOptions{Enabled: true, Amount: decimal.NewFromInt(500_000), Year: 3}
	assert.Equal(t, 37, p.PartialRepaymentMonth())

	p.PartialRepayment.Amount = decimal.Zero
	assert.Equal(t, 0, p.PartialRepaymentMonth())
}

func TestSimulationParameters_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SimulationParameters)
		wantErr string
	}{
		{"valid", func(*SimulationParameters) {}, ""},
		{"empty mode defaults later", func(p *SimulationParameters) { p.RateMode = "" }, ""},
		{"tenure zero", func(p *SimulationParameters) { p.TenureYears = 0 }, "tenure years"},
		{"tenure above max", func(p *SimulationParameters) { p.TenureYears = 60 }, "tenure years"},
		{"bad mode", func(p *SimulationParameters) { p.RateMode = "floating" }, "unknown rate mode"},
		{"negative down payment", func(p *SimulationParameters) { p.DownPayment = decimal.NewFromInt(-1) }, "down payment"},
		{"negative hibor", func(p *SimulationParameters) { p.CustomHibor = decimal.NewFromFloat(-0.1) }, "custom hibor"},
		{"negative fixed rate", func(p *SimulationParameters) {
			p.FixedPlan = FixedPlanOptions{Enabled: true, Rate: decimal.NewFromInt(-1)}
		}, "fixed rate"},
		{"disabled fixed plan is not checked", func(p *SimulationParameters) {
			p.FixedPlan = FixedPlanOptions{Rate: decimal.NewFromInt(-1)}
		}, ""},
		{"negative deposit", func(p *SimulationParameters) {
			p.MortgageLink = MortgageLinkOptions{Enabled: true, DepositAmount: decimal.NewFromInt(-5)}
		}, "mortgage link deposit"},
		{"negative rebate", func(p *SimulationParameters) {
			p.Refinance = RefinanceOptions{Enabled: true, RebatePercent: decimal.NewFromInt(-1)}
		}, "refinance rebate"},
		{"prepay year zero", func(p *SimulationParameters) {
			p.PartialRepayment = PartialRepaymentOptions{Enabled: true, Amount: decimal.NewFromInt(1), Year: 0}
		}, "partial repayment year"},
		{"prepay last year", func(p *SimulationParameters) {
			p.PartialRepayment = PartialRepaymentOptions{Enabled: true, Amount: decimal.NewFromInt(1), Year: 30}
		}, "partial repayment year"},
		{"negative rent", func(p *SimulationParameters) {
			p.RentVsBuy = RentVsBuyOptions{Enabled: true, InitialRent: decimal.NewFromInt(-1)}
		}, "initial rent"},
		{"appreciation at -100", func(p *SimulationParameters) {
			p.RentVsBuy = RentVsBuyOptions{Enabled: true, AppreciationPercent: decimal.NewFromInt(-100)}
		}, "appreciation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParameters))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfiguration_YAMLRoundTrip(t *testing.T) {
	doc := `
parameters:
  property_price: 7000000
  down_payment: 2000000
  tenure_years: 30
  rate_mode: custom
  custom_prime: 5.375
  custom_hibor: 3.5
  p_discount: 1.75
  h_spread: 1.3
  h_cap_discount: 1.75
  partial_repayment:
    enabled: true
    amount: 500000
    year: 3
tables:
  market_cycle:
    - prime: 5.0
      hibor: 1.0
      label: Flat
`
	var cfg Configuration
	require.NoError(t, yaml.Unmarshal([]byte(doc), &cfg))

	assert.Equal(t, RateModeCustom, cfg.Parameters.RateMode)
	assert.True(t, cfg.Parameters.CustomPrime.Equal(decimal.NewFromFloat(5.375)))
	assert.Equal(t, 37, cfg.Parameters.PartialRepaymentMonth())
	require.NotNil(t, cfg.Tables)
	require.Len(t, cfg.Tables.MarketCycle, 1)
	assert.Equal(t, "Flat", cfg.Tables.MarketCycle[0].Label)
	assert.Nil(t, cfg.Tables.StampDuty)
}
