package calculation

import (
	"fmt"

	"github.com/fungccc/HKMortgage2026/internal/domain"
	mdec "github.com/fungccc/HKMortgage2026/pkg/decimal"
	"github.com/shopspring/decimal"
)

// StampDutyTable converts a property price into ad valorem stamp duty.
type StampDutyTable struct {
	tiers   []domain.StampDutyTier
	topRate decimal.Decimal
}

// NewStampDutyTable validates that thresholds are strictly ascending.
func NewStampDutyTable(schedule *domain.StampDutySchedule) (*StampDutyTable, error) {
	if schedule == nil {
		return nil, fmt.Errorf("stamp duty schedule is required")
	}
	for i, t := range schedule.Tiers {
		if t.UpTo.IsNegative() || t.Flat.IsNegative() || t.RatePercent.IsNegative() {
			return nil, fmt.Errorf("stamp duty tier %d has negative values", i)
		}
		switch t.Kind {
		case "", domain.TierFlat, domain.TierPercent:
		default:
			return nil, fmt.Errorf("stamp duty tier %d has unknown kind %q", i, t.Kind)
		}
		if i > 0 && !t.UpTo.GreaterThan(schedule.Tiers[i-1].UpTo) {
			return nil, fmt.Errorf("stamp duty tier %d threshold %s is not above %s", i, t.UpTo, schedule.Tiers[i-1].UpTo)
		}
	}
	if schedule.TopRatePercent.IsNegative() {
		return nil, fmt.Errorf("stamp duty top rate cannot be negative")
	}
	return &StampDutyTable{
		tiers:   append([]domain.StampDutyTier(nil), schedule.Tiers...),
		topRate: schedule.TopRatePercent,
	}, nil
}

// Duty returns the duty for price. The first tier whose threshold is at or
// above the price applies, so a zero price still pays the first tier's flat
// fee; above every threshold the top rate applies.
func (t *StampDutyTable) Duty(price decimal.Decimal) decimal.Decimal {
	for _, tier := range t.tiers {
		if price.LessThanOrEqual(tier.UpTo) {
			if tier.IsFlat() {
				return tier.Flat
			}
			return price.Mul(mdec.FromPercent(tier.RatePercent))
		}
	}
	return price.Mul(mdec.FromPercent(t.topRate))
}
