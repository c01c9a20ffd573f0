package output

import (
	"bytes"
	"fmt"

	"github.com/fungccc/HKMortgage2026/internal/domain"
	"github.com/jung-kurt/gofpdf"
)

// PDFFormatter renders a printable A4 summary with the yearly schedule.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Hong Kong Mortgage Plan Comparison", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Hong Kong Mortgage Plan Comparison")
	pdf.Ln(10)

	params := result.Parameters
	pdf.SetFont("Arial", "", 10)
	lines := []string{
		fmt.Sprintf("Property price: %s   Down payment: %s", FormatCurrency(params.PropertyPrice), FormatCurrency(params.DownPayment)),
		fmt.Sprintf("Loan amount: %s over %d years from %d", FormatCurrency(result.LoanAmount), params.TenureYears, params.StartYear),
		fmt.Sprintf("Upfront cash: %s (stamp duty %s)", FormatCurrency(result.Affordability.TotalUpfrontCash), FormatCurrency(result.Affordability.StampDuty)),
		fmt.Sprintf("Minimum monthly income: %s", FormatCurrency(result.Affordability.MinMonthlyIncome)),
		fmt.Sprintf("Stress test: Prime %s (%s) -> payment %s", FormatRate(result.StressTest.PeakPrime), result.StressTest.PeakLabel, FormatCurrency(result.StressTest.StressPayment)),
		fmt.Sprintf("H cap triggered %d of %d months; H saves %s vs P", result.CapMonths, result.TotalMonths, FormatCurrency(result.Savings)),
	}
	if result.RentVsBuy.Enabled {
		if y := result.RentVsBuy.BreakEvenYear; y != nil {
			lines = append(lines, fmt.Sprintf("Rent vs buy: buying overtakes renting in year %d", *y))
		} else {
			lines = append(lines, "Rent vs buy: buying never overtakes renting")
		}
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{35, 38, 38, 38, 38}
	for i, h := range []string{"Plan", "Total Payment", "Total Interest", "Net Cost", "Max Payment"} {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, pr := range result.PlanResults() {
		pdf.CellFormat(widths[0], 6, string(pr.Plan), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, FormatCurrency(pr.TotalPayment), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, FormatCurrency(pr.TotalInterest), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, FormatCurrency(pr.NetTotalCost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, FormatCurrency(pr.MaxPayment), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	rec := AnalyzePlans(result)
	pdf.Ln(3)
	pdf.Cell(0, 6, fmt.Sprintf("Recommended: %s", PlanLabel(rec.Plan)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	cols := []float64{16, 18, 18, 14, 31, 31, 31, 31}
	for i, h := range []string{"Year", "Prime", "HIBOR", "Cap", "H Paid", "P Paid", "H Balance", "P Balance"} {
		pdf.CellFormat(cols[i], 5, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, y := range result.YearlySchedule() {
		pdf.CellFormat(cols[0], 5, intToString(y.CalendarYear), "1", 0, "C", false, 0, "")
		pdf.CellFormat(cols[1], 5, FormatRate(y.Prime), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[2], 5, FormatRate(y.Hibor), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[3], 5, intToString(y.CapMonths), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[4], 5, FormatCurrency(y.HPayment), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[5], 5, FormatCurrency(y.PPayment), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[6], 5, FormatCurrency(y.HBalance), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[7], 5, FormatCurrency(y.PBalance), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
