package calculation

import (
	"fmt"

	"github.com/fungccc/HKMortgage2026/internal/domain"
	"github.com/shopspring/decimal"
)

// RateEnvironment resolves the Prime/HIBOR pair for an elapsed year.
type RateEnvironment struct {
	mode   domain.RateMode
	cycle  []domain.MarketCondition
	custom domain.MarketCondition
}

// NewHistoricalRateEnvironment walks the given cycle table. The table must
// contain at least one entry.
func NewHistoricalRateEnvironment(cycle []domain.MarketCondition) (*RateEnvironment, error) {
	if len(cycle) == 0 {
		return nil, fmt.Errorf("market cycle table is empty")
	}
	return &RateEnvironment{mode: domain.RateModeHistorical, cycle: cycle}, nil
}

// NewCustomRateEnvironment returns the same pair for every year.
func NewCustomRateEnvironment(prime, hibor decimal.Decimal) *RateEnvironment {
	return &RateEnvironment{
		mode:   domain.RateModeCustom,
		custom: domain.MarketCondition{Prime: prime, Hibor: hibor, Label: CustomRateLabel},
	}
}

// NewRateEnvironment picks the environment for a parameter set.
func NewRateEnvironment(params *domain.SimulationParameters, cycle []domain.MarketCondition) (*RateEnvironment, error) {
	switch params.RateMode {
	case domain.RateModeCustom:
		return NewCustomRateEnvironment(params.CustomPrime, params.CustomHibor), nil
	case domain.RateModeHistorical, "":
		return NewHistoricalRateEnvironment(cycle)
	default:
		return nil, fmt.Errorf("unknown rate mode %q", params.RateMode)
	}
}

// Mode reports the active rate mode.
func (re *RateEnvironment) Mode() domain.RateMode { return re.mode }

// Resolve returns the market condition for yearIndex. Indices past the end
// of the cycle hold the last entry flat; negative indices clamp to 0.
func (re *RateEnvironment) Resolve(yearIndex int) domain.MarketCondition {
	if re.mode == domain.RateModeCustom {
		return re.custom
	}
	if yearIndex < 0 {
		yearIndex = 0
	}
	if yearIndex >= len(re.cycle) {
		yearIndex = len(re.cycle) - 1
	}
	return re.cycle[yearIndex]
}

// PeakPrime returns the highest Prime in the cycle and its label. The first
// occurrence wins on ties.
func PeakPrime(cycle []domain.MarketCondition) (decimal.Decimal, string) {
	peak := decimal.Zero
	label := ""
	for i, c := range cycle {
		if i == 0 || c.Prime.GreaterThan(peak) {
			peak = c.Prime
			label = c.Label
		}
	}
	return peak, label
}
