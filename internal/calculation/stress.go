package calculation

import (
	"github.com/fungccc/HKMortgage2026/internal/domain"
	mdec "github.com/fungccc/HKMortgage2026/pkg/decimal"
	"github.com/shopspring/decimal"
)

// StressTest answers "what if the worst Prime in the cycle held for the
// whole loan": the full loan is amortized over totalMonths at
// max(0, peakPrime - pDiscount). baseline is the month-1 P-Plan payment the
// increase is measured against.
func StressTest(loan decimal.Decimal, totalMonths int, pDiscount decimal.Decimal, cycle []domain.MarketCondition, baseline decimal.Decimal) domain.StressTestResult {
	peak, label := PeakPrime(cycle)
	rate := mdec.ClampZero(peak.Sub(pDiscount))
	payment := mdec.AnnuityPayment(loan, mdec.MonthlyRate(rate), totalMonths)
	return domain.StressTestResult{
		PeakPrime:       peak,
		PeakLabel:       label,
		StressRate:      rate,
		StressPayment:   payment,
		BaselinePayment: baseline,
		PaymentIncrease: payment.Sub(baseline),
	}
}
