package output

import (
	"fmt"

	"github.com/fungccc/HKMortgage2026/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultAssumptions lists modelling conventions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Interest accrues monthly at the annual rate / 12; payments re-amortize every month",
	"Years beyond the market table hold the last year's Prime and HIBOR",
	"Cash rebate of 1.5% is paid once at drawdown",
	"Stamp duty follows the AVD Scale 2 schedule",
}

// GenerateAssumptions creates the assumptions list from the actual parameters.
func GenerateAssumptions(p domain.SimulationParameters) []string {
	out := []string{
		fmt.Sprintf("P-Plan rate: Prime - %s", FormatPercentage(p.PDiscount)),
		fmt.Sprintf("H-Plan rate: 1M HIBOR + %s, capped at Prime - %s", FormatPercentage(p.HSpread), FormatPercentage(p.HCapDiscount)),
	}
	if p.RateMode == domain.RateModeCustom {
		out = append(out, fmt.Sprintf("Custom rates held for the whole tenure: Prime %s, HIBOR %s", FormatRate(p.CustomPrime), FormatRate(p.CustomHibor)))
	} else {
		out = append(out, fmt.Sprintf("Historical market cycle replayed from %d", p.StartYear))
	}
	if p.FixedPlan.Enabled {
		out = append(out, fmt.Sprintf("Fixed plan: %s for %d years, then the P-Plan rate", FormatRate(p.FixedPlan.Rate), p.FixedPlan.LockYears))
	}
	if p.MortgageLink.Enabled {
		out = append(out, fmt.Sprintf("Mortgage link deposit %s earns the loan rate on up to half the balance", FormatCurrency(p.MortgageLink.DepositAmount)))
	}
	if m := p.PartialRepaymentMonth(); m > 0 {
		out = append(out, fmt.Sprintf("Partial repayment of %s at month %d", FormatCurrency(p.PartialRepayment.Amount), m))
	}
	if p.Refinance.Enabled {
		out = append(out, fmt.Sprintf("Refinance every 24 months when a %s rebate beats the legal fee", FormatPercentage(p.Refinance.RebatePercent)))
	}
	if p.RentVsBuy.Enabled {
		o := p.RentVsBuy
		out = append(out, fmt.Sprintf("Rent grows %s, property %s, investments return %s a year",
			FormatPercentage(o.RentGrowthPercent), FormatPercentage(o.AppreciationPercent), FormatPercentage(o.InvestmentReturnPercent)))
	}
	return append(out, DefaultAssumptions...)
}

var decimalHundred = decimal.NewFromInt(100)
