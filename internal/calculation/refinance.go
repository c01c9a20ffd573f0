package calculation

import (
	"github.com/fungccc/HKMortgage2026/internal/domain"
	mdec "github.com/fungccc/HKMortgage2026/pkg/decimal"
	"github.com/shopspring/decimal"
)

// RefinanceInterval is the number of months between rebate checkpoints.
const RefinanceInterval = 24

// RefinanceHarvester records a rebate-minus-fee event each time switching
// banks on the H-Plan balance would pay for itself.
type RefinanceHarvester struct {
	enabled       bool
	rebatePercent decimal.Decimal
	legalFee      decimal.Decimal

	summary domain.RefinanceSummary
}

// NewRefinanceHarvester builds a harvester; a disabled one never emits events.
func NewRefinanceHarvester(enabled bool, rebatePercent, legalFee decimal.Decimal) *RefinanceHarvester {
	return &RefinanceHarvester{
		enabled:       enabled,
		rebatePercent: rebatePercent,
		legalFee:      legalFee,
		summary: domain.RefinanceSummary{
			Enabled:           enabled,
			TotalNetGain:      decimal.Zero,
			TotalRebateAmount: decimal.Zero,
			TotalLegalFee:     decimal.Zero,
			Events:            []domain.RefinanceEvent{},
		},
	}
}

// Observe inspects the H-Plan balance at the end of month. It returns the
// event and true when one was recorded.
func (rh *RefinanceHarvester) Observe(month, totalMonths int, hBalance decimal.Decimal) (domain.RefinanceEvent, bool) {
	if !rh.enabled || month%RefinanceInterval != 0 || month >= totalMonths {
		return domain.RefinanceEvent{}, false
	}
	rebate := hBalance.Mul(mdec.FromPercent(rh.rebatePercent))
	if !rebate.GreaterThan(rh.legalFee) {
		return domain.RefinanceEvent{}, false
	}

	event := domain.RefinanceEvent{
		Month:          month,
		Year:           month / 12,
		BalanceAtEvent: hBalance,
		RebateAmount:   rebate,
		LegalFee:       rh.legalFee,
		NetGain:        rebate.Sub(rh.legalFee),
	}
	rh.summary.Events = append(rh.summary.Events, event)
	rh.summary.TotalRebateAmount = rh.summary.TotalRebateAmount.Add(rebate)
	rh.summary.TotalLegalFee = rh.summary.TotalLegalFee.Add(rh.legalFee)
	rh.summary.TotalNetGain = rh.summary.TotalNetGain.Add(event.NetGain)
	return event, true
}

// Summary returns the accumulated totals.
func (rh *RefinanceHarvester) Summary() domain.RefinanceSummary {
	return rh.summary
}
