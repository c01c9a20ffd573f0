package calculation

import (
	"github.com/fungccc/HKMortgage2026/internal/domain"
	mdec "github.com/fungccc/HKMortgage2026/pkg/decimal"
	"github.com/shopspring/decimal"
)

// MortgageLink describes the deposit-offset account attached to a plan.
// A zero Deposit disables it.
type MortgageLink struct {
	Deposit  decimal.Decimal
	CapRatio decimal.Decimal // fraction of the outstanding balance the deposit may offset
}

// Amortize computes one month of a level-payment loan. extra is applied to
// the balance before interest accrues and is clamped to the balance. The
// month with monthsRemaining <= 1 clears whatever is left. Interest and
// payment are held at mdec.WorkingScale and principal is derived from them,
// so payment == interest + principal exactly. Rates are not validated here.
func Amortize(balance, annualRate decimal.Decimal, monthsRemaining int, extra decimal.Decimal, link MortgageLink) domain.PlanMonth {
	month := domain.PlanMonth{EffectiveRate: annualRate}
	if !balance.IsPositive() {
		return month
	}

	if extra.IsPositive() {
		month.ExtraPrincipal = mdec.Min(extra, balance)
		balance = balance.Sub(month.ExtraPrincipal)
		if balance.IsZero() {
			return month
		}
	}

	r := mdec.MonthlyRate(annualRate)
	interest := mdec.Working(balance.Mul(r))

	var payment decimal.Decimal
	if monthsRemaining <= 1 {
		payment = balance.Add(interest)
	} else {
		payment = mdec.Working(mdec.AnnuityPayment(balance, r, monthsRemaining))
	}

	principal := payment.Sub(interest)
	if principal.GreaterThan(balance) {
		principal = balance
		payment = principal.Add(interest)
	}

	month.Payment = payment
	month.Interest = interest
	month.Principal = principal
	month.EndingBalance = mdec.ClampZero(balance.Sub(principal))

	if link.Deposit.IsPositive() {
		offsetBase := mdec.Min(link.Deposit, balance.Mul(link.CapRatio))
		month.MortgageLinkInterest = mdec.Working(offsetBase.Mul(r))
	}
	return month
}

// PlanAmortizer carries one plan's balance through the monthly loop and
// folds each month into the plan totals.
type PlanAmortizer struct {
	plan    domain.Plan
	balance decimal.Decimal
	link    MortgageLink

	totalInterest decimal.Decimal
	totalPayment  decimal.Decimal
	totalExtra    decimal.Decimal
	totalLink     decimal.Decimal
	minPayment    decimal.Decimal
	maxPayment    decimal.Decimal
	seenPayment   bool
	payoffMonth   int
}

// NewPlanAmortizer starts a plan at the full loan amount.
func NewPlanAmortizer(plan domain.Plan, loan decimal.Decimal, link MortgageLink) *PlanAmortizer {
	return &PlanAmortizer{
		plan:          plan,
		balance:       loan,
		link:          link,
		totalInterest: decimal.Zero,
		totalPayment:  decimal.Zero,
		totalExtra:    decimal.Zero,
		totalLink:     decimal.Zero,
		minPayment:    decimal.Zero,
		maxPayment:    decimal.Zero,
	}
}

// Balance is the balance carried into the next month.
func (pa *PlanAmortizer) Balance() decimal.Decimal { return pa.balance }

// Step advances the plan by one month.
func (pa *PlanAmortizer) Step(month int, annualRate decimal.Decimal, monthsRemaining int, extra decimal.Decimal) domain.PlanMonth {
	wasOpen := pa.balance.IsPositive()
	pm := Amortize(pa.balance, annualRate, monthsRemaining, extra, pa.link)
	pa.balance = pm.EndingBalance

	pa.totalInterest = pa.totalInterest.Add(pm.Interest)
	pa.totalPayment = pa.totalPayment.Add(pm.Payment)
	pa.totalExtra = pa.totalExtra.Add(pm.ExtraPrincipal)
	pa.totalLink = pa.totalLink.Add(pm.MortgageLinkInterest)

	if pm.Payment.IsPositive() {
		if !pa.seenPayment || pm.Payment.LessThan(pa.minPayment) {
			pa.minPayment = pm.Payment
		}
		if !pa.seenPayment || pm.Payment.GreaterThan(pa.maxPayment) {
			pa.maxPayment = pm.Payment
		}
		pa.seenPayment = true
	}
	if wasOpen && pa.balance.IsZero() && pa.payoffMonth == 0 {
		pa.payoffMonth = month
	}
	return pm
}

// Result summarises the plan. cashRebate is deducted from the net cost.
func (pa *PlanAmortizer) Result(cashRebate decimal.Decimal) domain.PlanResult {
	return domain.PlanResult{
		Plan:                    pa.plan,
		TotalInterest:           pa.totalInterest,
		TotalPayment:            pa.totalPayment,
		TotalExtraPrincipal:     pa.totalExtra,
		MinPayment:              pa.minPayment,
		MaxPayment:              pa.maxPayment,
		TotalMortgageLinkOffset: pa.totalLink,
		NetInterest:             pa.totalInterest.Sub(pa.totalLink),
		NetTotalCost:            pa.totalPayment.Sub(cashRebate).Sub(pa.totalLink),
		PayoffMonth:             pa.payoffMonth,
	}
}
