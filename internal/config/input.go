package config

import (
	"fmt"
	"os"

	"github.com/fungccc/HKMortgage2026/internal/calculation"
	"github.com/fungccc/HKMortgage2026/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a configuration document. JSON is accepted
// since it is a subset of YAML.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the parameters and any table overrides
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := config.Parameters.Validate(); err != nil {
		return err
	}
	if config.Tables != nil {
		if err := ip.validateTables(config.Tables); err != nil {
			return fmt.Errorf("tables validation failed: %w", err)
		}
	}
	return nil
}

// validateTables checks overrides by building a simulator from them
func (ip *InputParser) validateTables(tables *domain.MarketTables) error {
	for i, mc := range tables.MarketCycle {
		if mc.Prime.IsNegative() || mc.Hibor.IsNegative() {
			return fmt.Errorf("market cycle year %d has negative rates", i)
		}
	}
	if tables.Fees != nil {
		f := tables.Fees
		if f.AgencyFeePercent.IsNegative() || f.LegalFee.IsNegative() || f.RefinanceLegalFee.IsNegative() || f.CashRebatePercent.IsNegative() {
			return fmt.Errorf("fees cannot be negative")
		}
		if f.MortgageLinkCapRatio.IsNegative() || f.MortgageLinkCapRatio.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("mortgage link cap ratio must be between 0 and 1")
		}
	}
	_, err := calculation.NewMortgageSimulatorWithTables(tables)
	return err
}

// NewSimulator builds a simulator for a loaded configuration.
func NewSimulator(config *domain.Configuration) (*calculation.MortgageSimulator, error) {
	return calculation.NewMortgageSimulatorWithTables(config.Tables)
}

// CreateExampleConfiguration creates an example configuration with the
// application defaults. Every overlay is switched on so the example shows
// all of its settings.
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	params := DefaultParameters()
	params.FixedPlan.Enabled = true
	params.MortgageLink.Enabled = true
	params.Refinance.Enabled = true
	params.PartialRepayment.Enabled = true
	return &domain.Configuration{Parameters: params}
}

// DefaultParameters is the parameter set a new user starts from. The
// optional overlays carry sensible values but start switched off; the
// rent-vs-buy comparison is on.
func DefaultParameters() domain.SimulationParameters {
	return domain.SimulationParameters{
		PropertyPrice: decimal.NewFromInt(7_000_000),
		DownPayment:   decimal.NewFromInt(2_000_000),
		TenureYears:   30,
		StartYear:     calculation.DefaultStartYear,
		RateMode:      domain.RateModeHistorical,
		CustomPrime:   decimal.NewFromFloat(5.375),
		CustomHibor:   decimal.NewFromFloat(3.5),
		PDiscount:     decimal.NewFromFloat(1.75),
		HSpread:       decimal.NewFromFloat(1.3),
		HCapDiscount:  decimal.NewFromFloat(1.75),
		FixedPlan: domain.FixedPlanOptions{
			Rate:      decimal.NewFromFloat(4.5),
			LockYears: 3,
		},
		MortgageLink: domain.MortgageLinkOptions{
			DepositAmount: decimal.NewFromInt(500_000),
		},
		Refinance: domain.RefinanceOptions{
			RebatePercent: decimal.NewFromFloat(1.5),
		},
		PartialRepayment: domain.PartialRepaymentOptions{
			Amount: decimal.NewFromInt(500_000),
			Year:   3,
		},
		RentVsBuy: domain.RentVsBuyOptions{
			Enabled:                 true,
			InitialRent:             decimal.NewFromInt(18_000),
			RentGrowthPercent:       decimal.NewFromFloat(2),
			AppreciationPercent:     decimal.NewFromFloat(3),
			InvestmentReturnPercent: decimal.NewFromFloat(5),
			ManagementFee:           decimal.NewFromInt(1_500),
		},
	}
}
