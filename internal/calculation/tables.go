package calculation

import (
	"github.com/fungccc/HKMortgage2026/internal/domain"
	"github.com/shopspring/decimal"
)

// REFERENCE DATA ASSUMPTIONS:
//
// 1. Market cycle: a synthetic 21-year Prime/1M-HIBOR path loosely shaped on
//    Hong Kong 1996-2026 (easing, QE lows, normalisation, a crisis spike).
//    Years beyond the table hold the last entry.
//
// 2. Stamp duty: AVD Scale 2 as of the 2024 budget. The marginal relief band
//    above HK$3,000,000 is simplified to the 1.5% standard bracket.
//
// 3. Fees: 1% agency, HK$15,000 purchase legal fee, HK$4,500 per refinance,
//    1.5% drawdown cash rebate, 50% DSR, mortgage link capped at 50% of balance.

// DefaultStartYear labels year index 0.
const DefaultStartYear = 2026

// CustomRateLabel is the regime label reported in custom rate mode.
const CustomRateLabel = "Custom fixed rates"

func cycle(prime, hibor float64, label string) domain.MarketCondition {
	return domain.MarketCondition{
		Prime: decimal.NewFromFloat(prime),
		Hibor: decimal.NewFromFloat(hibor),
		Label: label,
	}
}

// DefaultMarketCycle returns a fresh copy of the built-in historical cycle.
func DefaultMarketCycle() []domain.MarketCondition {
	return []domain.MarketCondition{
		cycle(5.25, 2.5, "Rates easing"),
		cycle(5.00, 1.8, "Mild recovery"),
		cycle(5.00, 1.2, "Ample liquidity"),
		cycle(5.00, 1.0, "Ample liquidity"),
		cycle(5.00, 0.8, "Low-rate environment"),
		cycle(5.00, 0.25, "Quantitative easing"),
		cycle(5.00, 0.3, "Quantitative easing"),
		cycle(5.00, 0.4, "Quantitative easing"),
		cycle(5.125, 0.8, "Minor adjustment"),
		cycle(5.25, 1.5, "Moderate inflation"),
		cycle(5.50, 2.8, "Early hiking"),
		cycle(6.00, 3.8, "Significant hikes"),
		cycle(7.50, 5.5, "High-inflation squeeze"),
		cycle(7.00, 4.8, "Elevated plateau"),
		cycle(6.25, 3.5, "Easing from highs"),
		cycle(8.00, 6.5, "Financial turbulence"),
		cycle(9.00, 8.0, "Liquidity crunch"),
		cycle(7.00, 5.0, "Crisis easing"),
		cycle(6.00, 3.0, "Economic repair"),
		cycle(5.50, 2.0, "Stabilising"),
		cycle(5.25, 1.5, "New normal"),
	}
}

// DefaultStampDutySchedule returns the built-in AVD Scale 2 tiers.
func DefaultStampDutySchedule() *domain.StampDutySchedule {
	return &domain.StampDutySchedule{
		Tiers: []domain.StampDutyTier{
			{UpTo: decimal.NewFromInt(3_000_000), Kind: domain.TierFlat, Flat: decimal.NewFromInt(100)},
			{UpTo: decimal.NewFromInt(3_528_240), Kind: domain.TierPercent, RatePercent: decimal.NewFromFloat(1.5)},
			{UpTo: decimal.NewFromInt(4_500_000), Kind: domain.TierPercent, RatePercent: decimal.NewFromFloat(1.5)},
			{UpTo: decimal.NewFromInt(6_000_000), Kind: domain.TierPercent, RatePercent: decimal.NewFromFloat(2.25)},
			{UpTo: decimal.NewFromInt(9_000_000), Kind: domain.TierPercent, RatePercent: decimal.NewFromFloat(3.0)},
			{UpTo: decimal.NewFromInt(20_000_000), Kind: domain.TierPercent, RatePercent: decimal.NewFromFloat(3.75)},
		},
		TopRatePercent: decimal.NewFromFloat(4.25),
	}
}

// DefaultFeeSchedule returns the built-in transaction constants.
func DefaultFeeSchedule() *domain.FeeSchedule {
	return &domain.FeeSchedule{
		AgencyFeePercent:     decimal.NewFromFloat(1.0),
		LegalFee:             decimal.NewFromInt(15_000),
		RefinanceLegalFee:    decimal.NewFromInt(4_500),
		CashRebatePercent:    decimal.NewFromFloat(1.5),
		DebtServiceRatio:     decimal.NewFromFloat(0.5),
		MortgageLinkCapRatio: decimal.NewFromFloat(0.5),
	}
}

// DefaultMarketTables bundles every built-in table.
func DefaultMarketTables() domain.MarketTables {
	return domain.MarketTables{
		MarketCycle: DefaultMarketCycle(),
		StampDuty:   DefaultStampDutySchedule(),
		Fees:        DefaultFeeSchedule(),
	}
}

// ResolveTables overlays user supplied tables on the defaults. Missing
// sections fall back to the built-in values; supplied sections replace the
// default section wholesale.
func ResolveTables(override *domain.MarketTables) domain.MarketTables {
	tables := DefaultMarketTables()
	if override == nil {
		return tables
	}
	if len(override.MarketCycle) > 0 {
		tables.MarketCycle = append([]domain.MarketCondition(nil), override.MarketCycle...)
	}
	if override.StampDuty != nil && len(override.StampDuty.Tiers) > 0 {
		sd := *override.StampDuty
		sd.Tiers = append([]domain.StampDutyTier(nil), override.StampDuty.Tiers...)
		tables.StampDuty = &sd
	}
	if override.Fees != nil {
		fees := *override.Fees
		tables.Fees = &fees
	}
	return tables
}
