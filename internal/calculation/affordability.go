package calculation

import (
	"fmt"

	"github.com/fungccc/HKMortgage2026/internal/domain"
	mdec "github.com/fungccc/HKMortgage2026/pkg/decimal"
	"github.com/shopspring/decimal"
)

// AffordabilityCalculator prices the upfront cash and income needed to buy.
type AffordabilityCalculator struct {
	StampDuty *StampDutyTable
	Fees      domain.FeeSchedule
}

// NewAffordabilityCalculator wires the duty table and fee constants.
func NewAffordabilityCalculator(stampDuty *StampDutyTable, fees domain.FeeSchedule) (*AffordabilityCalculator, error) {
	if stampDuty == nil {
		return nil, fmt.Errorf("stamp duty table is required")
	}
	if !fees.DebtServiceRatio.IsPositive() {
		return nil, fmt.Errorf("debt service ratio must be positive, got %s", fees.DebtServiceRatio)
	}
	return &AffordabilityCalculator{StampDuty: stampDuty, Fees: fees}, nil
}

// Calculate returns the affordability figures. approvalRate is the month-1
// P-Plan annual rate the bank would assess the loan at.
func (ac *AffordabilityCalculator) Calculate(price, downPayment, loan decimal.Decimal, totalMonths int, approvalRate decimal.Decimal) domain.AffordabilityResult {
	duty := ac.StampDuty.Duty(price)
	agency := price.Mul(mdec.FromPercent(ac.Fees.AgencyFeePercent))
	legal := ac.Fees.LegalFee
	transaction := duty.Add(agency).Add(legal)

	payment := mdec.AnnuityPayment(loan, mdec.MonthlyRate(approvalRate), totalMonths)

	return domain.AffordabilityResult{
		StampDuty:        duty,
		AgencyFee:        agency,
		LegalFee:         legal,
		TransactionCosts: transaction,
		TotalUpfrontCash: downPayment.Add(transaction),
		MinMonthlyIncome: payment.Div(ac.Fees.DebtServiceRatio),
	}
}
