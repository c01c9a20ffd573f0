package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/fungccc/HKMortgage2026/internal/domain"
)

// HTMLFormatter produces a self-contained HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"pct":   FormatPercentage,
	"rate":  FormatRate,
	"label": PlanLabel,
	"add":   func(i, j int) int { return i + j },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

type chartSeries struct {
	Years []int     `json:"years"`
	H     []float64 `json:"h"`
	P     []float64 `json:"p"`
	Fixed []float64 `json:"fixed,omitempty"`
}

func (h HTMLFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	yearly := result.YearlySchedule()

	var chart chartSeries
	for _, y := range yearly {
		chart.Years = append(chart.Years, y.CalendarYear)
		chart.H = append(chart.H, y.HBalance.InexactFloat64())
		chart.P = append(chart.P, y.PBalance.InexactFloat64())
		if result.Parameters.FixedPlan.Enabled {
			chart.Fixed = append(chart.Fixed, y.FixedBalance.InexactFloat64())
		}
	}

	data := struct {
		*domain.SimulationResult
		Plans          []domain.PlanResult
		Yearly         []domain.YearlySummary
		Recommendation Recommendation
		Assumptions    []string
		Chart          chartSeries
	}{result, result.PlanResults(), yearly, AnalyzePlans(result), GenerateAssumptions(result.Parameters), chart}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
