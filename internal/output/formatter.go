package output

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fungccc/HKMortgage2026/internal/domain"
)

// ErrUnsupportedFormat is returned when no formatter matches a requested name.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(result *domain.SimulationResult) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.SimulationResult) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.SimulationResult) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                      { return ff.ID }

// WriteFormatted runs a formatter and writes output to a timestamped file in dir.
func WriteFormatted(f Formatter, result *domain.SimulationResult, dir string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("mortgage_report_%s.%s", time.Now().Format("20060102_150405"), Extension(f.Name()))
	if dir != "" {
		filename = strings.TrimRight(dir, "/") + "/" + filename
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleVerboseFormatter{},
	ConsoleFormatter{},
	CSVSummarizer{},
	CSVScheduleExporter{},
	HTMLFormatter{},
	JSONFormatter{},
	XLSXFormatter{},
	PDFFormatter{},
}

type fileKind struct {
	ext         string
	contentType string
}

var fileKinds = map[string]fileKind{
	"console":      {"txt", "text/plain; charset=utf-8"},
	"console-lite": {"txt", "text/plain; charset=utf-8"},
	"csv":          {"csv", "text/csv"},
	"schedule-csv": {"csv", "text/csv"},
	"html":         {"html", "text/html; charset=utf-8"},
	"json":         {"json", "application/json"},
	"xlsx":         {"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	"pdf":          {"pdf", "application/pdf"},
}

// Extension returns the file extension for a formatter name.
func Extension(name string) string {
	if k, ok := fileKinds[NormalizeFormatName(name)]; ok {
		return k.ext
	}
	return "txt"
}

// ContentType returns the MIME type for a formatter name.
func ContentType(name string) string {
	if k, ok := fileKinds[NormalizeFormatName(name)]; ok {
		return k.contentType
	}
	return "application/octet-stream"
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"console-verbose": "console",
	"verbose":         "console",
	"text":            "console",
	"summary":         "console-lite",
	"csv-summary":     "csv",
	"yearly-csv":      "csv",
	"csv-schedule":    "schedule-csv",
	"monthly-csv":     "schedule-csv",
	"html-report":     "html",
	"json-pretty":     "json",
	"excel":           "xlsx",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnsupportedFormatError wraps ErrUnsupportedFormat with the list of valid names.
func UnsupportedFormatError(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
