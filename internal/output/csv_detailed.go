package output

import (
	"bytes"
	"encoding/csv"

	"github.com/fungccc/HKMortgage2026/internal/domain"
)

// CSVScheduleExporter writes the full month-by-month amortization of every plan.
type CSVScheduleExporter struct{}

func (c CSVScheduleExporter) Name() string { return "schedule-csv" }

func (c CSVScheduleExporter) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Month", "CalendarYear", "Prime", "Hibor", "CapTriggered", "ExtraRepayment"}
	for _, plan := range []string{"H", "P", "Fixed"} {
		header = append(header,
			plan+"Rate", plan+"Payment", plan+"Interest", plan+"Principal", plan+"Extra", plan+"Balance", plan+"LinkInterest")
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, m := range result.Monthly {
		row := []string{
			intToString(m.Month),
			intToString(m.CalendarYear),
			m.Prime.String(),
			m.Hibor.String(),
			boolToString(m.CapTriggered),
			money(m.ExtraRepayment),
		}
		for _, pm := range []domain.PlanMonth{m.H, m.P, m.Fixed} {
			row = append(row,
				pm.EffectiveRate.StringFixed(3),
				money(pm.Payment),
				money(pm.Interest),
				money(pm.Principal),
				money(pm.ExtraPrincipal),
				money(pm.EndingBalance),
				money(pm.MortgageLinkInterest),
			)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
