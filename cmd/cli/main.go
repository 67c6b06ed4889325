package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/watamovie/CoconalaSummary/pkg/analytics"
	"github.com/watamovie/CoconalaSummary/pkg/config"
	"github.com/watamovie/CoconalaSummary/pkg/export"
	"github.com/watamovie/CoconalaSummary/pkg/models"
	"github.com/watamovie/CoconalaSummary/pkg/parser"
	"github.com/watamovie/CoconalaSummary/pkg/plan"
	"github.com/watamovie/CoconalaSummary/pkg/service"
)

var (
	cliFilters filters
	cfgFile    string
	debugDump  bool
)

var rootCmd = &cobra.Command{
	Use:   "sales-cli",
	Short: "Coconala sales analytics command-line interface",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary [flags] <sales_file>",
	Short: "Aggregate a sales CSV and print totals and grouped tables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		records, err := parseFile(logger, args[0])
		if err != nil {
			return err
		}

		filter, err := cliFilters.toFilter()
		if err != nil {
			return err
		}

		subset := filter.Apply(records)
		view := analytics.BuildView(subset, cliFilters.toGranularity(), cliFilters.serviceTop, cliFilters.customerTop)

		if debugDump {
			pp.Println(view)
			return nil
		}

		printView(view, len(records))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [flags] <sales_file>",
	Short: "Export a sales CSV in an accounting-import format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		records, err := parseFile(logger, args[0])
		if err != nil {
			return err
		}

		filter, err := cliFilters.toFilter()
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			ext := filepath.Ext(args[0])
			outPath = fmt.Sprintf("%s-%s.csv", args[0][:len(args[0])-len(ext)], format)
		}

		subset := filter.Apply(records)
		text, err := export.Render(export.Format(format), subset)
		if err != nil {
			return err
		}

		encoded, err := export.EncodeShiftJIS(text)
		if err != nil {
			return err
		}

		if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}

		logger.Info("export written", "file", outPath, "format", format, "records", len(subset))
		return nil
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch <plan_file>",
	Short: "Run a YAML plan of export jobs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, nil)
		if err != nil {
			return err
		}

		p, err := plan.Load(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Plan for %s\n", args[0])
		p.Print()

		processor := service.NewProcessor(cfg, logger)
		return processor.RunPlan(p)
	},
}

func newLogger() *log.Logger {
	level := log.InfoLevel
	if debugDump {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "sales-cli",
		Level:           level,
	})
}

func parseFile(logger *log.Logger, path string) ([]models.SalesRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return parser.New(logger).ProcessBytes(data, filepath.Base(path))
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugDump, "debug", false, "Dump raw aggregation data")

	// Filter flags (global)
	rootCmd.PersistentFlags().StringVar(&cliFilters.startDate, "start", "", "Start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&cliFilters.endDate, "end", "", "End date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&cliFilters.service, "service", "", "Filter by exact service name")
	rootCmd.PersistentFlags().StringVar(&cliFilters.breakdown, "breakdown", "", "Filter by exact breakdown category")
	rootCmd.PersistentFlags().StringVar(&cliFilters.granularity, "granularity", "month", "Trend granularity (month or day)")
	rootCmd.PersistentFlags().IntVar(&cliFilters.serviceTop, "service-top", 10, "Top N services")
	rootCmd.PersistentFlags().IntVar(&cliFilters.customerTop, "customer-top", 10, "Top N customers")

	// Flags specific to the export subcommand
	exportCmd.Flags().String("format", "generic", "Export format (generic, yayoi or freee)")
	exportCmd.Flags().String("out", "", "Output file path")

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(batchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
