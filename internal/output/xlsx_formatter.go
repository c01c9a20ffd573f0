package output

import (
	"bytes"
	"fmt"

	"github.com/fungccc/HKMortgage2026/internal/domain"
	"github.com/xuri/excelize/v2"
)

// XLSXFormatter renders the result as a workbook with one sheet per section.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string { return "xlsx" }

const (
	summarySheet   = "summary"
	scheduleSheet  = "schedule"
	refinanceSheet = "refinance"
	rentBuySheet   = "rent-vs-buy"
)

func (x XLSXFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", summarySheet)
	writeSummarySheet(f, result)

	if _, err := f.NewSheet(scheduleSheet); err != nil {
		return nil, err
	}
	writeScheduleSheet(f, result)

	if result.Refinance.Enabled {
		if _, err := f.NewSheet(refinanceSheet); err != nil {
			return nil, err
		}
		writeRefinanceSheet(f, result.Refinance)
	}
	if result.RentVsBuy.Enabled {
		if _, err := f.NewSheet(rentBuySheet); err != nil {
			return nil, err
		}
		writeRentBuySheet(f, result.RentVsBuy)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cell(col string, row int) string { return fmt.Sprintf("%s%d", col, row) }

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for i, v := range values {
		name, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, name, v)
	}
}

func writeSummarySheet(f *excelize.File, result *domain.SimulationResult) {
	p := result.Parameters
	_ = f.SetCellValue(summarySheet, "A1", "Hong Kong Mortgage Plan Comparison")

	rows := []struct {
		label string
		value interface{}
	}{
		{"Property price", p.PropertyPrice.InexactFloat64()},
		{"Down payment", p.DownPayment.InexactFloat64()},
		{"Loan amount", result.LoanAmount.InexactFloat64()},
		{"Tenure (years)", p.TenureYears},
		{"Rate mode", string(p.RateMode)},
		{"Cash rebate", result.CashRebate.InexactFloat64()},
		{"H cap months", result.CapMonths},
		{"Savings H vs P", result.Savings.InexactFloat64()},
		{"Cheapest plan", string(result.CheapestPlan)},
		{"Stamp duty", result.Affordability.StampDuty.InexactFloat64()},
		{"Total upfront cash", result.Affordability.TotalUpfrontCash.InexactFloat64()},
		{"Min monthly income", result.Affordability.MinMonthlyIncome.InexactFloat64()},
		{"Stress payment", result.StressTest.StressPayment.InexactFloat64()},
	}
	for i, r := range rows {
		_ = f.SetCellValue(summarySheet, cell("A", i+3), r.label)
		_ = f.SetCellValue(summarySheet, cell("B", i+3), r.value)
	}

	start := len(rows) + 5
	writeRow(f, summarySheet, start, "Plan", "Total Payment", "Total Interest", "Link Offset", "Net Cost", "Min Payment", "Max Payment")
	for i, pr := range result.PlanResults() {
		writeRow(f, summarySheet, start+1+i, string(pr.Plan),
			pr.TotalPayment.InexactFloat64(), pr.TotalInterest.InexactFloat64(), pr.TotalMortgageLinkOffset.InexactFloat64(),
			pr.NetTotalCost.InexactFloat64(), pr.MinPayment.InexactFloat64(), pr.MaxPayment.InexactFloat64())
	}
}

func writeScheduleSheet(f *excelize.File, result *domain.SimulationResult) {
	writeRow(f, scheduleSheet, 1, "Month", "Year", "Prime", "HIBOR", "Cap",
		"H Rate", "H Payment", "H Interest", "H Balance",
		"P Rate", "P Payment", "P Interest", "P Balance",
		"Fixed Rate", "Fixed Payment", "Fixed Interest", "Fixed Balance")
	for i, m := range result.Monthly {
		writeRow(f, scheduleSheet, i+2, m.Month, m.CalendarYear, m.Prime.InexactFloat64(), m.Hibor.InexactFloat64(), m.CapTriggered,
			m.H.EffectiveRate.InexactFloat64(), m.H.Payment.InexactFloat64(), m.H.Interest.InexactFloat64(), m.H.EndingBalance.InexactFloat64(),
			m.P.EffectiveRate.InexactFloat64(), m.P.Payment.InexactFloat64(), m.P.Interest.InexactFloat64(), m.P.EndingBalance.InexactFloat64(),
			m.Fixed.EffectiveRate.InexactFloat64(), m.Fixed.Payment.InexactFloat64(), m.Fixed.Interest.InexactFloat64(), m.Fixed.EndingBalance.InexactFloat64())
	}
}

func writeRefinanceSheet(f *excelize.File, r domain.RefinanceSummary) {
	writeRow(f, refinanceSheet, 1, "Month", "Year", "Balance", "Rebate", "Legal Fee", "Net Gain")
	for i, e := range r.Events {
		writeRow(f, refinanceSheet, i+2, e.Month, e.Year, e.BalanceAtEvent.InexactFloat64(),
			e.RebateAmount.InexactFloat64(), e.LegalFee.InexactFloat64(), e.NetGain.InexactFloat64())
	}
	writeRow(f, refinanceSheet, len(r.Events)+3, "Total", "", "",
		r.TotalRebateAmount.InexactFloat64(), r.TotalLegalFee.InexactFloat64(), r.TotalNetGain.InexactFloat64())
}

func writeRentBuySheet(f *excelize.File, r domain.RentVsBuyResult) {
	writeRow(f, rentBuySheet, 1, "Year", "Buy Net Worth", "Rent Net Worth", "Property Value", "Outstanding Loan", "Rent Paid", "Buy Cost")
	for i, y := range r.Years {
		writeRow(f, rentBuySheet, i+2, y.Year, y.BuyNetWorth.InexactFloat64(), y.RentNetWorth.InexactFloat64(),
			y.PropertyValue.InexactFloat64(), y.OutstandingLoan.InexactFloat64(),
			y.CumulativeRentPaid.InexactFloat64(), y.CumulativeBuyCost.InexactFloat64())
	}
}
