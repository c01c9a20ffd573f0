package domain

import (
	"github.com/shopspring/decimal"
)

// Plan identifies one of the mortgage products being compared.
type Plan string

const (
	PlanH     Plan = "H"
	PlanP     Plan = "P"
	PlanFixed Plan = "Fixed"
)

// PlanMonth is one plan's slice of a monthly record
type PlanMonth struct {
	EffectiveRate        decimal.Decimal `json:"effective_rate"`
	Payment              decimal.Decimal `json:"payment"`
	Interest             decimal.Decimal `json:"interest"`
	Principal            decimal.Decimal `json:"principal"`
	ExtraPrincipal       decimal.Decimal `json:"extra_principal"`
	EndingBalance        decimal.Decimal `json:"ending_balance"`
	MortgageLinkInterest decimal.Decimal `json:"mortgage_link_interest"`
}

// MonthlyRecord captures the market and all three plans for one month.
type MonthlyRecord struct {
	Month        int             `json:"month"`
	YearIndex    int             `json:"year_index"`
	CalendarYear int             `json:"calendar_year"`
	Prime        decimal.Decimal `json:"prime"`
	Hibor        decimal.Decimal `json:"hibor"`
	Label        string          `json:"label"`

	H     PlanMonth `json:"h"`
	P     PlanMonth `json:"p"`
	Fixed PlanMonth `json:"fixed"`

	CapTriggered   bool            `json:"cap_triggered"`
	ExtraRepayment decimal.Decimal `json:"extra_repayment"` // configured prepayment landing this month
}

// PlanResult aggregates one plan over the whole tenure.
type PlanResult struct {
	Plan                    Plan            `json:"plan"`
	TotalInterest           decimal.Decimal `json:"total_interest"`
	TotalPayment            decimal.Decimal `json:"total_payment"`
	TotalExtraPrincipal     decimal.Decimal `json:"total_extra_principal"`
	MinPayment              decimal.Decimal `json:"min_payment"`
	MaxPayment              decimal.Decimal `json:"max_payment"`
	TotalMortgageLinkOffset decimal.Decimal `json:"total_mortgage_link_offset"`
	NetInterest             decimal.Decimal `json:"net_interest"`
	NetTotalCost            decimal.Decimal `json:"net_total_cost"`
	PayoffMonth             int             `json:"payoff_month"` // 0 if never paid off
}

// RefinanceEvent is a profitable rebate harvest on the H-Plan balance.
type RefinanceEvent struct {
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	BalanceAtEvent decimal.Decimal `json:"balance_at_event"`
	RebateAmount   decimal.Decimal `json:"rebate_amount"`
	LegalFee       decimal.Decimal `json:"legal_fee"`
	NetGain        decimal.Decimal `json:"net_gain"`
}

// RefinanceSummary totals all harvested events.
type RefinanceSummary struct {
	Enabled           bool             `json:"enabled"`
	TotalNetGain      decimal.Decimal  `json:"total_net_gain"`
	TotalRebateAmount decimal.Decimal  `json:"total_rebate_amount"`
	TotalLegalFee     decimal.Decimal  `json:"total_legal_fee"`
	Events            []RefinanceEvent `json:"events"`
}

// StressTestResult is the level payment at the worst Prime in the cycle.
type StressTestResult struct {
	PeakPrime       decimal.Decimal `json:"peak_prime"`
	PeakLabel       string          `json:"peak_label"`
	StressRate      decimal.Decimal `json:"stress_rate"`
	StressPayment   decimal.Decimal `json:"stress_payment"`
	BaselinePayment decimal.Decimal `json:"baseline_payment"` // month-1 P-Plan payment
	PaymentIncrease decimal.Decimal `json:"payment_increase"`
}

// AffordabilityResult is the upfront cash picture and income requirement.
type AffordabilityResult struct {
	StampDuty        decimal.Decimal `json:"stamp_duty"`
	AgencyFee        decimal.Decimal `json:"agency_fee"`
	LegalFee         decimal.Decimal `json:"legal_fee"`
	TransactionCosts decimal.Decimal `json:"transaction_costs"`
	TotalUpfrontCash decimal.Decimal `json:"total_upfront_cash"`
	MinMonthlyIncome decimal.Decimal `json:"min_monthly_income"`
}

// RentVsBuyYear is one yearly snapshot of the two portfolios.
type RentVsBuyYear struct {
	Year               int             `json:"year"`
	BuyNetWorth        decimal.Decimal `json:"buy_net_worth"`
	RentNetWorth       decimal.Decimal `json:"rent_net_worth"`
	PropertyValue      decimal.Decimal `json:"property_value"`
	OutstandingLoan    decimal.Decimal `json:"outstanding_loan"`
	CumulativeRentPaid decimal.Decimal `json:"cumulative_rent_paid"`
	CumulativeBuyCost  decimal.Decimal `json:"cumulative_buy_cost"`
}

// RentVsBuyResult is the full comparison. BreakEvenYear is nil when buying
// never overtakes renting within the tenure.
type RentVsBuyResult struct {
	Enabled           bool            `json:"enabled"`
	RentalYield       decimal.Decimal `json:"rental_yield"`
	BreakEvenYear     *int            `json:"break_even_year"`
	FinalBuyNetWorth  decimal.Decimal `json:"final_buy_net_worth"`
	FinalRentNetWorth decimal.Decimal `json:"final_rent_net_worth"`
	Years             []RentVsBuyYear `json:"years"`
}

// SimulationResult is the root aggregate of one engine run.
type SimulationResult struct {
	Parameters  SimulationParameters `json:"parameters"`
	LoanAmount  decimal.Decimal      `json:"loan_amount"`
	TotalMonths int                  `json:"total_months"`
	Monthly     []MonthlyRecord      `json:"monthly"`

	H     PlanResult `json:"h_plan"`
	P     PlanResult `json:"p_plan"`
	Fixed PlanResult `json:"fixed_plan"`

	CashRebate   decimal.Decimal `json:"cash_rebate"`
	Savings      decimal.Decimal `json:"savings"`       // P total - H total; positive means H is cheaper
	FixedSavings decimal.Decimal `json:"fixed_savings"` // H total - Fixed total
	CheapestPlan Plan            `json:"cheapest_plan"`
	CapMonths    int             `json:"cap_months"`

	Refinance     RefinanceSummary    `json:"refinance"`
	StressTest    StressTestResult    `json:"stress_test"`
	Affordability AffordabilityResult `json:"affordability"`
	RentVsBuy     RentVsBuyResult     `json:"rent_vs_buy"`
}

// YearlySummary rolls twelve monthly records into one row.
type YearlySummary struct {
	YearIndex    int             `json:"year_index"`
	CalendarYear int             `json:"calendar_year"`
	Prime        decimal.Decimal `json:"prime"`
	Hibor        decimal.Decimal `json:"hibor"`
	Label        string          `json:"label"`
	CapMonths    int             `json:"cap_months"`

	HPayment      decimal.Decimal `json:"h_payment"`
	HInterest     decimal.Decimal `json:"h_interest"`
	HBalance      decimal.Decimal `json:"h_balance"`
	PPayment      decimal.Decimal `json:"p_payment"`
	PInterest     decimal.Decimal `json:"p_interest"`
	PBalance      decimal.Decimal `json:"p_balance"`
	FixedPayment  decimal.Decimal `json:"fixed_payment"`
	FixedInterest decimal.Decimal `json:"fixed_interest"`
	FixedBalance  decimal.Decimal `json:"fixed_balance"`
}

// YearlySchedule groups the monthly trajectory by year index. Balances are
// taken from the last month of each year.
func (r *SimulationResult) YearlySchedule() []YearlySummary {
	var out []YearlySummary
	for _, m := range r.Monthly {
		if len(out) == 0 || out[len(out)-1].YearIndex != m.YearIndex {
			out = append(out, YearlySummary{
				YearIndex:     m.YearIndex,
				CalendarYear:  m.CalendarYear,
				Prime:         m.Prime,
				Hibor:         m.Hibor,
				Label:         m.Label,
				HPayment:      decimal.Zero,
				HInterest:     decimal.Zero,
				PPayment:      decimal.Zero,
				PInterest:     decimal.Zero,
				FixedPayment:  decimal.Zero,
				FixedInterest: decimal.Zero,
			})
		}
		y := &out[len(out)-1]
		y.HPayment = y.HPayment.Add(m.H.Payment)
		y.HInterest = y.HInterest.Add(m.H.Interest)
		y.HBalance = m.H.EndingBalance
		y.PPayment = y.PPayment.Add(m.P.Payment)
		y.PInterest = y.PInterest.Add(m.P.Interest)
		y.PBalance = m.P.EndingBalance
		y.FixedPayment = y.FixedPayment.Add(m.Fixed.Payment)
		y.FixedInterest = y.FixedInterest.Add(m.Fixed.Interest)
		y.FixedBalance = m.Fixed.EndingBalance
		if m.CapTriggered {
			y.CapMonths++
		}
	}
	return out
}

// PlanResults returns the enabled plans in display order.
func (r *SimulationResult) PlanResults() []PlanResult {
	plans := []PlanResult{r.H, r.P}
	if r.Parameters.FixedPlan.Enabled {
		plans = append(plans, r.Fixed)
	}
	return plans
}
