package output

import (
	"bytes"
	"encoding/csv"

	"github.com/fungccc/HKMortgage2026/internal/domain"
)

// CSVSummarizer implements the yearly summary CSV output (one row per year).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "CalendarYear", "Market", "Prime", "Hibor", "CapMonths",
		"HPayment", "HInterest", "HBalance", "PPayment", "PInterest", "PBalance",
		"FixedPayment", "FixedInterest", "FixedBalance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, y := range result.YearlySchedule() {
		row := []string{
			intToString(y.YearIndex + 1),
			intToString(y.CalendarYear),
			y.Label,
			y.Prime.String(),
			y.Hibor.String(),
			intToString(y.CapMonths),
			money(y.HPayment),
			money(y.HInterest),
			money(y.HBalance),
			money(y.PPayment),
			money(y.PInterest),
			money(y.PBalance),
			money(y.FixedPayment),
			money(y.FixedInterest),
			money(y.FixedBalance),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
