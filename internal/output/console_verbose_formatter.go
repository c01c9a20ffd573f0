package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fungccc/HKMortgage2026/internal/domain"
)

// ConsoleVerboseFormatter renders the full comparison report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	p := result.Parameters

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "HONG KONG MORTGAGE PLAN COMPARISON")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(p) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "LOAN")
	fmt.Fprintln(&buf, "====")
	fmt.Fprintf(&buf, "Property price:   %s\n", FormatCurrency(p.PropertyPrice))
	fmt.Fprintf(&buf, "Down payment:     %s\n", FormatCurrency(p.DownPayment))
	fmt.Fprintf(&buf, "Loan amount:      %s\n", FormatCurrency(result.LoanAmount))
	fmt.Fprintf(&buf, "Tenure:           %d years (%d months) from %d\n", p.TenureYears, result.TotalMonths, p.StartYear)
	fmt.Fprintf(&buf, "Cash rebate:      %s\n", FormatCurrency(result.CashRebate))
	fmt.Fprintln(&buf)

	writePlanTable(&buf, result)
	writeAffordability(&buf, result)
	writeStressTest(&buf, result)
	if result.Refinance.Enabled {
		writeRefinance(&buf, result)
	}
	if result.RentVsBuy.Enabled {
		writeRentVsBuy(&buf, result)
	}
	writeYearlySchedule(&buf, result)

	rec := AnalyzePlans(result)
	fmt.Fprintf(&buf, "RECOMMENDATION: %s\n", PlanLabel(rec.Plan))
	if rec.RunnerUp != "" {
		fmt.Fprintf(&buf, "Net cost %s, %s (%s) less than %s\n",
			FormatCurrency(rec.NetTotalCost), FormatCurrency(rec.Margin), FormatPercentage(rec.MarginPercent), PlanLabel(rec.RunnerUp))
	}
	return buf.Bytes(), nil
}

func writePlanTable(buf *bytes.Buffer, result *domain.SimulationResult) {
	fmt.Fprintln(buf, "PLAN TOTALS")
	fmt.Fprintln(buf, "===========")
	fmt.Fprintf(buf, "%-8s %16s %16s %14s %16s %12s %12s\n", "Plan", "Total Payment", "Total Interest", "Link Offset", "Net Cost", "Min Pmt", "Max Pmt")
	fmt.Fprintln(buf, strings.Repeat("-", 100))
	for _, pr := range result.PlanResults() {
		fmt.Fprintf(buf, "%-8s %16s %16s %14s %16s %12s %12s\n",
			pr.Plan,
			FormatCurrency(pr.TotalPayment),
			FormatCurrency(pr.TotalInterest),
			FormatCurrency(pr.TotalMortgageLinkOffset),
			FormatCurrency(pr.NetTotalCost),
			FormatCurrency(pr.MinPayment),
			FormatCurrency(pr.MaxPayment),
		)
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "H-Plan cap triggered in %d of %d months\n", result.CapMonths, result.TotalMonths)
	fmt.Fprintf(buf, "Savings choosing H over P: %s\n", FormatCurrency(result.Savings))
	if result.Parameters.FixedPlan.Enabled {
		fmt.Fprintf(buf, "Savings choosing Fixed over H: %s\n", FormatCurrency(result.FixedSavings))
	}
	if extra := result.H.TotalExtraPrincipal; extra.IsPositive() {
		fmt.Fprintf(buf, "Partial repayment: %s (paid off: H month %d, P month %d)\n", FormatCurrency(extra), result.H.PayoffMonth, result.P.PayoffMonth)
	}
	fmt.Fprintln(buf)
}

func writeAffordability(buf *bytes.Buffer, result *domain.SimulationResult) {
	a := result.Affordability
	fmt.Fprintln(buf, "UPFRONT CASH & AFFORDABILITY")
	fmt.Fprintln(buf, "============================")
	fmt.Fprintf(buf, "Stamp duty:          %s\n", FormatCurrency(a.StampDuty))
	fmt.Fprintf(buf, "Agency fee:          %s\n", FormatCurrency(a.AgencyFee))
	fmt.Fprintf(buf, "Legal fee:           %s\n", FormatCurrency(a.LegalFee))
	fmt.Fprintf(buf, "Total upfront cash:  %s\n", FormatCurrency(a.TotalUpfrontCash))
	fmt.Fprintf(buf, "Min monthly income:  %s\n", FormatCurrency(a.MinMonthlyIncome))
	fmt.Fprintln(buf)
}

func writeStressTest(buf *bytes.Buffer, result *domain.SimulationResult) {
	s := result.StressTest
	fmt.Fprintln(buf, "STRESS TEST")
	fmt.Fprintln(buf, "===========")
	fmt.Fprintf(buf, "Peak Prime %s (%s) -> P-Plan rate %s\n", FormatRate(s.PeakPrime), s.PeakLabel, FormatRate(s.StressRate))
	fmt.Fprintf(buf, "Payment %s vs %s today (+%s)\n", FormatCurrency(s.StressPayment), FormatCurrency(s.BaselinePayment), FormatCurrency(s.PaymentIncrease))
	fmt.Fprintln(buf)
}

func writeRefinance(buf *bytes.Buffer, result *domain.SimulationResult) {
	r := result.Refinance
	fmt.Fprintln(buf, "REFINANCE REBATES")
	fmt.Fprintln(buf, "=================")
	if len(r.Events) == 0 {
		fmt.Fprintln(buf, "No profitable refinance point.")
	}
	for _, e := range r.Events {
		fmt.Fprintf(buf, "Month %3d (year %2d): balance %s rebate %s fee %s net %s\n",
			e.Month, e.Year, FormatCurrency(e.BalanceAtEvent), FormatCurrency(e.RebateAmount), FormatCurrency(e.LegalFee), FormatCurrency(e.NetGain))
	}
	fmt.Fprintf(buf, "Total net gain: %s\n", FormatCurrency(r.TotalNetGain))
	fmt.Fprintln(buf)
}

func writeRentVsBuy(buf *bytes.Buffer, result *domain.SimulationResult) {
	r := result.RentVsBuy
	fmt.Fprintln(buf, "RENT VS BUY")
	fmt.Fprintln(buf, "===========")
	fmt.Fprintf(buf, "Rental yield: %s\n", FormatPercentage(r.RentalYield))
	if r.BreakEvenYear != nil {
		fmt.Fprintf(buf, "Buying overtakes renting in year %d\n", *r.BreakEvenYear)
	} else {
		fmt.Fprintln(buf, "Buying never overtakes renting within the tenure")
	}
	fmt.Fprintf(buf, "%-6s %16s %16s %16s %16s\n", "Year", "Buy Net Worth", "Rent Net Worth", "Property", "Loan")
	for _, y := range r.Years {
		if y.Year%5 != 0 && y.Year != len(r.Years)-1 {
			continue
		}
		fmt.Fprintf(buf, "%-6d %16s %16s %16s %16s\n", y.Year,
			FormatCurrency(y.BuyNetWorth), FormatCurrency(y.RentNetWorth), FormatCurrency(y.PropertyValue), FormatCurrency(y.OutstandingLoan))
	}
	fmt.Fprintln(buf)
}

func writeYearlySchedule(buf *bytes.Buffer, result *domain.SimulationResult) {
	fixed := result.Parameters.FixedPlan.Enabled
	fmt.Fprintln(buf, "YEARLY SCHEDULE")
	fmt.Fprintln(buf, "===============")
	header := fmt.Sprintf("%-6s %-22s %7s %7s %4s %12s %12s", "Year", "Market", "Prime", "HIBOR", "Cap", "H Paid", "P Paid")
	if fixed {
		header += fmt.Sprintf(" %12s", "Fixed Paid")
	}
	header += fmt.Sprintf(" %14s %14s", "H Balance", "P Balance")
	fmt.Fprintln(buf, header)
	fmt.Fprintln(buf, strings.Repeat("-", len(header)))
	for _, y := range result.YearlySchedule() {
		line := fmt.Sprintf("%-6d %-22s %7s %7s %4d %12s %12s", y.CalendarYear, truncateLabel(y.Label, 22),
			FormatRate(y.Prime), FormatRate(y.Hibor), y.CapMonths, FormatCurrency(y.HPayment), FormatCurrency(y.PPayment))
		if fixed {
			line += fmt.Sprintf(" %12s", FormatCurrency(y.FixedPayment))
		}
		line += fmt.Sprintf(" %14s %14s", FormatCurrency(y.HBalance), FormatCurrency(y.PBalance))
		fmt.Fprintln(buf, line)
	}
	fmt.Fprintln(buf)
}

func truncateLabel(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}
