package output

import (
	"bytes"
	"fmt"

	"github.com/fungccc/HKMortgage2026/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "MORTGAGE PLAN SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Loan: %s over %d months\n", FormatCurrency(result.LoanAmount), result.TotalMonths)
	fmt.Fprintln(&buf)
	for _, pr := range result.PlanResults() {
		fmt.Fprintf(&buf, "%s: Total=%s Interest=%s NetCost=%s\n",
			pr.Plan,
			FormatCurrency(pr.TotalPayment),
			FormatCurrency(pr.TotalInterest),
			FormatCurrency(pr.NetTotalCost),
		)
		fmt.Fprintf(&buf, "  Payment range %s - %s\n", FormatCurrency(pr.MinPayment), FormatCurrency(pr.MaxPayment))
	}
	fmt.Fprintf(&buf, "H cap triggered %d/%d months\n", result.CapMonths, result.TotalMonths)
	rec := AnalyzePlans(result)
	if rec.Plan != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (saves %s / %s vs %s)\n", rec.Plan, FormatCurrency(rec.Margin), FormatPercentage(rec.MarginPercent), rec.RunnerUp)
	}
	return buf.Bytes(), nil
}
