package domain

import (
	"github.com/shopspring/decimal"
)

// MarketCondition is the rate pair in force for one elapsed year.
type MarketCondition struct {
	Prime decimal.Decimal `yaml:"prime" json:"prime"`
	Hibor decimal.Decimal `yaml:"hibor" json:"hibor"`
	Label string          `yaml:"label" json:"label"`
}

// StampDutyTierKind selects how a tier charges duty.
type StampDutyTierKind string

const (
	TierFlat    StampDutyTierKind = "flat"    // Flat is charged as is
	TierPercent StampDutyTierKind = "percent" // RatePercent of the whole price
)

// StampDutyTier applies to prices up to and including UpTo. Kind picks Flat
// or RatePercent; when Kind is empty a non-zero Flat means a flat tier.
type StampDutyTier struct {
	UpTo        decimal.Decimal   `yaml:"up_to" json:"up_to"`
	Kind        StampDutyTierKind `yaml:"kind,omitempty" json:"kind,omitempty"`
	Flat        decimal.Decimal   `yaml:"flat,omitempty" json:"flat,omitempty"`
	RatePercent decimal.Decimal   `yaml:"rate_percent,omitempty" json:"rate_percent,omitempty"`
}

// IsFlat reports whether the tier charges a fixed amount.
func (t StampDutyTier) IsFlat() bool {
	switch t.Kind {
	case TierFlat:
		return true
	case TierPercent:
		return false
	default:
		return !t.Flat.IsZero()
	}
}

// StampDutySchedule is the ordered tier list plus the marginal rate charged
// above the last finite threshold.
type StampDutySchedule struct {
	Tiers          []StampDutyTier `yaml:"tiers" json:"tiers"`
	TopRatePercent decimal.Decimal `yaml:"top_rate_percent" json:"top_rate_percent"`
}

// FeeSchedule holds the fixed transaction and product constants.
type FeeSchedule struct {
	AgencyFeePercent     decimal.Decimal `yaml:"agency_fee_percent" json:"agency_fee_percent"`
	LegalFee             decimal.Decimal `yaml:"legal_fee" json:"legal_fee"`
	RefinanceLegalFee    decimal.Decimal `yaml:"refinance_legal_fee" json:"refinance_legal_fee"`
	CashRebatePercent    decimal.Decimal `yaml:"cash_rebate_percent" json:"cash_rebate_percent"`
	DebtServiceRatio     decimal.Decimal `yaml:"debt_service_ratio" json:"debt_service_ratio"`
	MortgageLinkCapRatio decimal.Decimal `yaml:"mortgage_link_cap_ratio" json:"mortgage_link_cap_ratio"`
}

// MarketTables is the immutable reference data the engine is built with.
// Any nil or empty section is filled from the defaults when loaded.
type MarketTables struct {
	MarketCycle []MarketCondition  `yaml:"market_cycle,omitempty" json:"market_cycle,omitempty"`
	StampDuty   *StampDutySchedule `yaml:"stamp_duty,omitempty" json:"stamp_duty,omitempty"`
	Fees        *FeeSchedule       `yaml:"fees,omitempty" json:"fees,omitempty"`
}
