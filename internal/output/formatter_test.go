package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fungccc/HKMortgage2026/internal/calculation"
	"github.com/fungccc/HKMortgage2026/internal/config"
	"github.com/fungccc/HKMortgage2026/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildTestResult(t *testing.T) *domain.SimulationResult {
	t.Helper()
	cfg := config.NewInputParser().CreateExampleConfiguration()
	res, err := calculation.NewMortgageSimulator().Simulate(cfg.Parameters)
	require.NoError(t, err)
	return res
}

func buildPlainResult(t *testing.T) *domain.SimulationResult {
	t.Helper()
	params := config.DefaultParameters()
	params.RentVsBuy.Enabled = false
	params.TenureYears = 10
	res, err := calculation.NewMortgageSimulator().Simulate(params)
	require.NoError(t, err)
	return res
}

func TestAllFormattersRender(t *testing.T) {
	res := buildTestResult(t)
	for _, name := range AvailableFormatterNames() {
		t.Run(name, func(t *testing.T) {
			f := GetFormatterByName(name)
			require.NotNil(t, f)
			out, err := f.Format(res)
			require.NoError(t, err)
			assert.NotEmpty(t, out)
		})
	}
}

func TestConsoleLiteFormatter(t *testing.T) {
	res := buildTestResult(t)
	out, err := ConsoleFormatter{}.Format(res)
	require.NoError(t, err)
	content := string(out)
	assert.True(t, strings.HasPrefix(content, "MORTGAGE PLAN SUMMARY"))
	assert.Contains(t, content, "Recommended: "+string(res.CheapestPlan))
	assert.Contains(t, content, "Fixed: Total=")
}

func TestConsoleVerboseFormatter(t *testing.T) {
	res := buildTestResult(t)
	out, err := ConsoleVerboseFormatter{}.Format(res)
	require.NoError(t, err)
	content := string(out)
	for _, section := range []string{
		"HONG KONG MORTGAGE PLAN COMPARISON", "KEY ASSUMPTIONS:", "PLAN TOTALS",
		"UPFRONT CASH & AFFORDABILITY", "STRESS TEST", "REFINANCE REBATES", "RENT VS BUY", "YEARLY SCHEDULE",
	} {
		assert.Contains(t, content, section)
	}
	assert.Contains(t, content, "RECOMMENDATION: "+PlanLabel(res.CheapestPlan))

	plain, err := ConsoleVerboseFormatter{}.Format(buildPlainResult(t))
	require.NoError(t, err)
	assert.NotContains(t, string(plain), "REFINANCE REBATES")
	assert.NotContains(t, string(plain), "RENT VS BUY")
	assert.NotContains(t, string(plain), "Fixed Paid")
}

func TestCSVSummarizerOneRowPerYear(t *testing.T) {
	res := buildTestResult(t)
	out, err := CSVSummarizer{}.Format(res)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, res.Parameters.TenureYears+1)
	assert.Equal(t, "Year", records[0][0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "2026", records[1][1])
	assert.Equal(t, "0.00", records[len(records)-1][8], "H balance is cleared by the last year")
}

func TestCSVScheduleExporter(t *testing.T) {
	res := buildTestResult(t)
	out, err := CSVScheduleExporter{}.Format(res)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, res.TotalMonths+1)
	assert.Len(t, records[0], 6+3*7)

	month := res.Parameters.PartialRepaymentMonth()
	assert.Equal(t, "500000.00", records[month][5])
}

func TestJSONFormatter(t *testing.T) {
	res := buildTestResult(t)
	out, err := JSONFormatter{}.Format(res)
	require.NoError(t, err)

	var decoded domain.SimulationResult
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, res.CheapestPlan, decoded.CheapestPlan)
	assert.True(t, decoded.H.TotalInterest.Equal(res.H.TotalInterest))
	assert.Contains(t, string(out), `"h_plan"`)
}

func TestHTMLFormatter(t *testing.T) {
	res := buildTestResult(t)
	out, err := HTMLFormatter{}.Format(res)
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "<h2>Key Assumptions</h2>")
	assert.Contains(t, content, "<h2>Plan Summary</h2>")
	assert.Contains(t, content, FormatCurrency(res.LoanAmount))
	assert.Contains(t, content, "Refinance Rebates")
	assert.Contains(t, content, "Rent vs Buy")
	assert.Contains(t, content, `"years":[2026`)
}

func TestXLSXFormatter(t *testing.T) {
	res := buildTestResult(t)
	out, err := XLSXFormatter{}.Format(res)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{summarySheet, scheduleSheet, refinanceSheet, rentBuySheet}, f.GetSheetList())

	title, err := f.GetCellValue(summarySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Hong Kong Mortgage Plan Comparison", title)

	rows, err := f.GetRows(scheduleSheet)
	require.NoError(t, err)
	assert.Len(t, rows, res.TotalMonths+1)

	plain, err := XLSXFormatter{}.Format(buildPlainResult(t))
	require.NoError(t, err)
	pf, err := excelize.OpenReader(bytes.NewReader(plain))
	require.NoError(t, err)
	defer pf.Close()
	assert.Equal(t, []string{summarySheet, scheduleSheet}, pf.GetSheetList())
}

func TestPDFFormatter(t *testing.T) {
	out, err := PDFFormatter{}.Format(buildTestResult(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestFormatterAliasResolution(t *testing.T) {
	tests := map[string]string{
		"console-verbose": "console",
		"EXCEL":           "xlsx",
		" monthly-csv ":   "schedule-csv",
		"pdf":             "pdf",
		"summary":         "console-lite",
	}
	for alias, want := range tests {
		f := GetFormatterByName(alias)
		require.NotNil(t, f, alias)
		assert.Equal(t, want, f.Name(), alias)
	}
	assert.Nil(t, GetFormatterByName("docx"))
}

func TestExtensionAndContentType(t *testing.T) {
	assert.Equal(t, "xlsx", Extension("excel"))
	assert.Equal(t, "csv", Extension("schedule-csv"))
	assert.Equal(t, "txt", Extension("console"))
	assert.Equal(t, "application/pdf", ContentType("pdf"))
	assert.Equal(t, "application/octet-stream", ContentType("nope"))
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	var buf bytes.Buffer
	err := GenerateReport(buildPlainResult(t), "definitely-not-a-format", &buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.Contains(t, err.Error(), "Try one of:")
	assert.Zero(t, buf.Len())
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "plan", F: func(r *domain.SimulationResult) ([]byte, error) {
		return []byte(r.CheapestPlan), nil
	}}
	out, err := f.Format(&domain.SimulationResult{CheapestPlan: domain.PlanP})
	require.NoError(t, err)
	assert.Equal(t, "P", string(out))
	assert.Equal(t, "plan", f.Name())
}
