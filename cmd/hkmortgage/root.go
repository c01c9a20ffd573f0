package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fungccc/HKMortgage2026/internal/calculation"
	"github.com/fungccc/HKMortgage2026/internal/config"
	"github.com/fungccc/HKMortgage2026/internal/domain"
	"github.com/fungccc/HKMortgage2026/internal/logging"
	"github.com/fungccc/HKMortgage2026/internal/output"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hkmortgage",
		Short:         "Compare HIBOR, Prime and fixed-rate Hong Kong mortgage plans",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newSimulateCmd(),
		newServeCmd(),
		newExampleConfigCmd(),
		newMarketCycleCmd(),
		newFormatsCmd(),
	)
	return root
}

func newSimulateCmd() *cobra.Command {
	var (
		configFile string
		format     string
		outputFile string
		mode       string
		tenure     int
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a simulation and print or save a report",
		Example: `  hkmortgage simulate --config mortgage.yaml
  hkmortgage simulate --mode custom --tenure 20 --format csv --output plan.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.NewConsole(verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			cfg := &domain.Configuration{Parameters: config.DefaultParameters()}
			if configFile != "" {
				cfg, err = config.NewInputParser().LoadFromFile(configFile)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("mode") {
				cfg.Parameters.RateMode = domain.RateMode(mode)
			}
			if cmd.Flags().Changed("tenure") {
				cfg.Parameters.TenureYears = tenure
			}

			f := output.GetFormatterByName(format)
			if f == nil {
				return output.UnsupportedFormatError(format)
			}

			sim, err := config.NewSimulator(cfg)
			if err != nil {
				return err
			}
			sim.SetLogger(logger.Sugar())
			result, err := sim.Simulate(cfg.Parameters)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if outputFile != "" && outputFile != "-" {
				file, err := os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outputFile, err)
				}
				defer file.Close()
				w = file
			}
			if err := output.GenerateReport(result, f.Name(), w); err != nil {
				return err
			}
			if outputFile != "" && outputFile != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s report to %s\n", f.Name(), outputFile)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML configuration file (defaults are used when omitted)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "report format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().StringVar(&mode, "mode", string(domain.RateModeHistorical), "rate mode: historical or custom")
	cmd.Flags().IntVar(&tenure, "tenure", 30, "loan tenure in years")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log simulation events to stderr")
	return cmd
}

func newExampleConfigCmd() *cobra.Command {
	var outputFile string
	cmd := &cobra.Command{
		Use:   "example-config",
		Short: "Print an example configuration with every overlay enabled",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if outputFile != "" {
				if err := output.SaveConfiguration(cfg, outputFile); err != nil {
					return fmt.Errorf("failed to save configuration: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote example configuration to %s\n", outputFile)
				return nil
			}
			return writeYAML(cmd.OutOrStdout(), cfg)
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

func newMarketCycleCmd() *cobra.Command {
	var startYear int
	cmd := &cobra.Command{
		Use:   "market-cycle",
		Short: "Show the built-in Prime/HIBOR cycle and reference tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-6s %-6s %8s %8s  %s\n", "Index", "Year", "Prime", "HIBOR", "Market")
			for i, c := range calculation.DefaultMarketCycle() {
				fmt.Fprintf(w, "%-6d %-6d %8s %8s  %s\n", i, startYear+i, output.FormatRate(c.Prime), output.FormatRate(c.Hibor), c.Label)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Stamp duty (AVD Scale 2):")
			duty := calculation.DefaultStampDutySchedule()
			for _, t := range duty.Tiers {
				charge := output.FormatPercentage(t.RatePercent)
				if t.IsFlat() {
					charge = output.FormatCurrency(t.Flat)
				}
				fmt.Fprintf(w, "  up to %-14s %s\n", output.FormatCurrency(t.UpTo), charge)
			}
			fmt.Fprintf(w, "  above            %s\n", output.FormatPercentage(duty.TopRatePercent))
			return nil
		},
	}
	cmd.Flags().IntVar(&startYear, "start-year", calculation.DefaultStartYear, "calendar year of index 0")
	return cmd
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List report formats and their aliases",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Formats:")
			for _, name := range output.AvailableFormatterNames() {
				fmt.Fprintf(w, "  %-14s .%s\n", name, output.Extension(name))
			}
			fmt.Fprintln(w, "Aliases:")
			for _, alias := range output.AvailableFormatAliases() {
				fmt.Fprintf(w, "  %-16s -> %s\n", alias, output.NormalizeFormatName(alias))
			}
		},
	}
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
