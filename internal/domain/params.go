package domain

import (
	"github.com/shopspring/decimal"
)

// RateMode selects where the monthly Prime/HIBOR path comes from.
type RateMode string

const (
	// RateModeHistorical walks the synthetic 30-year market cycle table.
	RateModeHistorical RateMode = "historical"
	// RateModeCustom holds the user supplied Prime and HIBOR for the whole tenure.
	RateModeCustom RateMode = "custom"
)

// IsValid reports whether the mode is one the engine understands.
func (m RateMode) IsValid() bool {
	return m == RateModeHistorical || m == RateModeCustom
}

// SimulationParameters is the flat parameter set for one simulation run.
// All rates and spreads are expressed in percent (5.375 means 5.375%).
type SimulationParameters struct {
	PropertyPrice decimal.Decimal `yaml:"property_price" json:"property_price"`
	DownPayment   decimal.Decimal `yaml:"down_payment" json:"down_payment"`
	TenureYears   int             `yaml:"tenure_years" json:"tenure_years"`
	StartYear     int             `yaml:"start_year,omitempty" json:"start_year,omitempty"` // calendar label for year index 0

	RateMode    RateMode        `yaml:"rate_mode" json:"rate_mode"`
	CustomPrime decimal.Decimal `yaml:"custom_prime" json:"custom_prime"`
	CustomHibor decimal.Decimal `yaml:"custom_hibor" json:"custom_hibor"`

	// Bank offer
	PDiscount    decimal.Decimal `yaml:"p_discount" json:"p_discount"`         // P-Plan = Prime - PDiscount
	HSpread      decimal.Decimal `yaml:"h_spread" json:"h_spread"`             // H-Plan = HIBOR + HSpread
	HCapDiscount decimal.Decimal `yaml:"h_cap_discount" json:"h_cap_discount"` // H-Plan ceiling = Prime - HCapDiscount

	FixedPlan        FixedPlanOptions        `yaml:"fixed_plan" json:"fixed_plan"`
	MortgageLink     MortgageLinkOptions     `yaml:"mortgage_link" json:"mortgage_link"`
	Refinance        RefinanceOptions        `yaml:"refinance" json:"refinance"`
	PartialRepayment PartialRepaymentOptions `yaml:"partial_repayment" json:"partial_repayment"`
	RentVsBuy        RentVsBuyOptions        `yaml:"rent_vs_buy" json:"rent_vs_buy"`
}

// FixedPlanOptions configures the optional fixed-rate plan. After the lock
// period the plan reverts to the P-Plan rate.
type FixedPlanOptions struct {
	Enabled   bool            `yaml:"enabled" json:"enabled"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
	LockYears int             `yaml:"lock_years" json:"lock_years"`
}

// MortgageLinkOptions configures the deposit-offset account.
type MortgageLinkOptions struct {
	Enabled       bool            `yaml:"enabled" json:"enabled"`
	DepositAmount decimal.Decimal `yaml:"deposit_amount" json:"deposit_amount"`
}

// RefinanceOptions configures biennial cash-rebate harvesting on the H-Plan balance.
type RefinanceOptions struct {
	Enabled       bool            `yaml:"enabled" json:"enabled"`
	RebatePercent decimal.Decimal `yaml:"rebate_percent" json:"rebate_percent"`
}

// PartialRepaymentOptions configures a one-off prepayment made at the end of Year.
type PartialRepaymentOptions struct {
	Enabled bool            `yaml:"enabled" json:"enabled"`
	Amount  decimal.Decimal `yaml:"amount" json:"amount"`
	Year    int             `yaml:"year" json:"year"`
}

// RentVsBuyOptions holds the assumptions for the rent-vs-buy comparison.
type RentVsBuyOptions struct {
	Enabled                 bool            `yaml:"enabled" json:"enabled"`
	InitialRent             decimal.Decimal `yaml:"initial_rent" json:"initial_rent"`
	RentGrowthPercent       decimal.Decimal `yaml:"rent_growth_percent" json:"rent_growth_percent"`
	AppreciationPercent     decimal.Decimal `yaml:"appreciation_percent" json:"appreciation_percent"`
	InvestmentReturnPercent decimal.Decimal `yaml:"investment_return_percent" json:"investment_return_percent"`
	ManagementFee           decimal.Decimal `yaml:"management_fee" json:"management_fee"` // monthly
}

// LoanAmount is the property price less the down payment, floored at zero.
func (p *SimulationParameters) LoanAmount() decimal.Decimal {
	loan := p.PropertyPrice.Sub(p.DownPayment)
	if loan.IsNegative() {
		return decimal.Zero
	}
	return loan
}

// TotalMonths is the tenure expressed in months.
func (p *SimulationParameters) TotalMonths() int {
	return p.TenureYears * 12
}

// PartialRepaymentMonth returns the month in which the prepayment lands, or 0
// when the overlay is disabled. A repayment at the end of year Y is applied
// before interest accrues in month Y*12+1.
func (p *SimulationParameters) PartialRepaymentMonth() int {
	if !p.PartialRepayment.Enabled || p.PartialRepayment.Amount.IsZero() {
		return 0
	}
	return p.PartialRepayment.Year*12 + 1
}

// Configuration is the on-disk document: the parameters plus optional table overrides.
type Configuration struct {
	Parameters SimulationParameters `yaml:"parameters" json:"parameters"`
	Tables     *MarketTables        `yaml:"tables,omitempty" json:"tables,omitempty"`
}
