package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fungccc/HKMortgage2026/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport renders result with the named formatter and writes it to w.
func GenerateReport(result *domain.SimulationResult, format string, w io.Writer) error {
	f := GetFormatterByName(format)
	if f == nil {
		return UnsupportedFormatError(format)
	}
	data, err := f.Format(result)
	if err != nil {
		return fmt.Errorf("failed to render %s report: %w", f.Name(), err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s report: %w", f.Name(), err)
	}
	return nil
}

// SaveConfiguration writes a configuration back to YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
