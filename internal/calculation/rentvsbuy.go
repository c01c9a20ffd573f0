package calculation

import (
	"github.com/fungccc/HKMortgage2026/internal/domain"
	mdec "github.com/fungccc/HKMortgage2026/pkg/decimal"
	"github.com/shopspring/decimal"
)

// RentVsBuyInputs is what the comparator needs beyond the H-Plan trajectory.
type RentVsBuyInputs struct {
	PropertyPrice    decimal.Decimal
	LoanAmount       decimal.Decimal
	TotalUpfrontCash decimal.Decimal
	TransactionCosts decimal.Decimal
	Options          domain.RentVsBuyOptions
}

// CompareRentVsBuy runs the buy and rent-and-invest portfolios side by side
// over the finished H-Plan trajectory.
//
// Each month the side with the smaller cash outflow invests the difference,
// then both portfolios compound at the investment return. Property value and
// rent step up once per year, before the year-end snapshot. The break-even
// year is the first year (from year 1) where buying is ahead; it is never
// overwritten.
func CompareRentVsBuy(monthly []domain.MonthlyRecord, in RentVsBuyInputs) domain.RentVsBuyResult {
	opts := in.Options
	result := domain.RentVsBuyResult{
		Enabled:     true,
		RentalYield: decimal.Zero,
		Years:       make([]domain.RentVsBuyYear, 0, len(monthly)/12+1),
	}
	if in.PropertyPrice.IsPositive() {
		result.RentalYield = opts.InitialRent.Mul(decimal.NewFromInt(12)).Div(in.PropertyPrice).Mul(decimal.NewFromInt(100))
	}

	one := decimal.NewFromInt(1)
	monthlyReturn := one.Add(mdec.MonthlyRate(opts.InvestmentReturnPercent))
	appreciation := one.Add(mdec.FromPercent(opts.AppreciationPercent))
	rentGrowth := one.Add(mdec.FromPercent(opts.RentGrowthPercent))

	propertyValue := in.PropertyPrice
	rent := opts.InitialRent
	buyPortfolio := decimal.Zero
	rentPortfolio := in.TotalUpfrontCash
	cumulativeRent := decimal.Zero
	cumulativeBuy := in.TransactionCosts

	result.Years = append(result.Years, domain.RentVsBuyYear{
		Year:               0,
		BuyNetWorth:        propertyValue.Sub(in.LoanAmount).Add(buyPortfolio),
		RentNetWorth:       rentPortfolio,
		PropertyValue:      propertyValue,
		OutstandingLoan:    in.LoanAmount,
		CumulativeRentPaid: cumulativeRent,
		CumulativeBuyCost:  cumulativeBuy,
	})

	for _, m := range monthly {
		buyOut := m.H.Payment.Add(opts.ManagementFee).Add(m.H.ExtraPrincipal)
		rentOut := rent

		if buyOut.LessThan(rentOut) {
			buyPortfolio = buyPortfolio.Add(rentOut.Sub(buyOut))
		} else {
			rentPortfolio = rentPortfolio.Add(buyOut.Sub(rentOut))
		}
		buyPortfolio = mdec.Working(buyPortfolio.Mul(monthlyReturn))
		rentPortfolio = mdec.Working(rentPortfolio.Mul(monthlyReturn))

		cumulativeRent = cumulativeRent.Add(rent)
		cumulativeBuy = cumulativeBuy.Add(m.H.Interest).Add(opts.ManagementFee)

		if m.Month%12 != 0 {
			continue
		}
		propertyValue = mdec.Working(propertyValue.Mul(appreciation))
		rent = mdec.Working(rent.Mul(rentGrowth))

		year := domain.RentVsBuyYear{
			Year:               m.Month / 12,
			BuyNetWorth:        propertyValue.Sub(m.H.EndingBalance).Add(buyPortfolio),
			RentNetWorth:       rentPortfolio,
			PropertyValue:      propertyValue,
			OutstandingLoan:    m.H.EndingBalance,
			CumulativeRentPaid: cumulativeRent,
			CumulativeBuyCost:  cumulativeBuy,
		}
		result.Years = append(result.Years, year)

		if result.BreakEvenYear == nil && year.BuyNetWorth.GreaterThan(year.RentNetWorth) {
			y := year.Year
			result.BreakEvenYear = &y
		}
	}

	last := result.Years[len(result.Years)-1]
	result.FinalBuyNetWorth = last.BuyNetWorth
	result.FinalRentNetWorth = last.RentNetWorth
	return result
}
