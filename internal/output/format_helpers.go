package output

import (
	"strconv"

	mdec "github.com/fungccc/HKMortgage2026/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as whole Hong Kong dollars with separators.
func FormatCurrency(amount decimal.Decimal) string { return mdec.NewMoneyFromDecimal(amount).Format() }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate keeps the third decimal that Prime-based quotes use (3.625%).
func FormatRate(rate decimal.Decimal) string { return rate.StringFixed(3) + "%" }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

func money(d decimal.Decimal) string { return mdec.NewMoneyFromDecimal(d).String() }
