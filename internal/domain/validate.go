package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidParameters marks every boundary validation failure.
var ErrInvalidParameters = errors.New("invalid simulation parameters")

// MaxTenureYears bounds the loop length.
const MaxTenureYears = 50

var minusHundred = decimal.NewFromInt(-100)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameters, fmt.Sprintf(format, args...))
}

func nonNegative(name string, d decimal.Decimal) error {
	if d.IsNegative() {
		return invalid("%s cannot be negative, got %s", name, d)
	}
	return nil
}

// Validate rejects parameter sets the engine cannot simulate safely.
func (p *SimulationParameters) Validate() error {
	if p.TenureYears < 1 || p.TenureYears > MaxTenureYears {
		return invalid("tenure years must be between 1 and %d, got %d", MaxTenureYears, p.TenureYears)
	}
	if p.RateMode != "" && !p.RateMode.IsValid() {
		return invalid("unknown rate mode %q", p.RateMode)
	}

	checks := []struct {
		name  string
		value decimal.Decimal
	}{
		{"property price", p.PropertyPrice},
		{"down payment", p.DownPayment},
		{"custom prime", p.CustomPrime},
		{"custom hibor", p.CustomHibor},
		{"p discount", p.PDiscount},
		{"h spread", p.HSpread},
		{"h cap discount", p.HCapDiscount},
	}
	for _, c := range checks {
		if err := nonNegative(c.name, c.value); err != nil {
			return err
		}
	}

	if p.FixedPlan.Enabled {
		if err := nonNegative("fixed rate", p.FixedPlan.Rate); err != nil {
			return err
		}
		if p.FixedPlan.LockYears < 0 {
			return invalid("fixed lock years cannot be negative, got %d", p.FixedPlan.LockYears)
		}
	}
	if p.MortgageLink.Enabled {
		if err := nonNegative("mortgage link deposit", p.MortgageLink.DepositAmount); err != nil {
			return err
		}
	}
	if p.Refinance.Enabled {
		if err := nonNegative("refinance rebate percent", p.Refinance.RebatePercent); err != nil {
			return err
		}
	}
	if p.PartialRepayment.Enabled {
		if err := nonNegative("partial repayment amount", p.PartialRepayment.Amount); err != nil {
			return err
		}
		if p.PartialRepayment.Year < 1 || p.PartialRepayment.Year > p.TenureYears-1 {
			return invalid("partial repayment year must be between 1 and %d, got %d", p.TenureYears-1, p.PartialRepayment.Year)
		}
	}
	if p.RentVsBuy.Enabled {
		if err := p.RentVsBuy.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (o *RentVsBuyOptions) validate() error {
	if err := nonNegative("initial rent", o.InitialRent); err != nil {
		return err
	}
	if err := nonNegative("management fee", o.ManagementFee); err != nil {
		return err
	}
	growth := []struct {
		name  string
		value decimal.Decimal
	}{
		{"rent growth", o.RentGrowthPercent},
		{"appreciation", o.AppreciationPercent},
		{"investment return", o.InvestmentReturnPercent},
	}
	for _, g := range growth {
		if g.value.LessThanOrEqual(minusHundred) {
			return invalid("%s must be above -100%%, got %s%%", g.name, g.value)
		}
	}
	return nil
}
