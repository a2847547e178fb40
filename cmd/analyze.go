// =============================================================================
// Sales Analytics - Analyze Command
// =============================================================================
//
// This file defines the 'analyze' command, which recomputes and prints the
// aggregate tables for an already-cleaned pipe-delimited file, without
// touching the network or writing any output files. It is the quick way to
// re-run the analytics over a previous run's cleaned snapshot
// (data/cleaned_sales_data.txt), which is written in the 8-column input
// format for exactly this purpose.
//
// COMMAND USAGE:
//   sales-analytics analyze [file]
//
// With no argument the configured input file is analyzed.
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/salesworks/sales-analytics/internal/config"
	"github.com/salesworks/sales-analytics/internal/parser"
	"github.com/salesworks/sales-analytics/internal/reader"
	"github.com/salesworks/sales-analytics/internal/report"
	"github.com/salesworks/sales-analytics/internal/validation"
)

// analyzeCmd represents the 'analyze' command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Print the aggregate analytics for a cleaned sales file",
	Args:  cobra.MaximumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

// runAnalyze reads, parses and validates the file, then prints the report
// sections to stdout. No filters, no enrichment, no files written.
func runAnalyze(args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	path := cfg.InputFile
	if len(args) == 1 {
		path = args[0]
	}

	lines, err := reader.ReadSalesLines(path)
	if err != nil {
		return err
	}

	transactions, _ := parser.ParseTransactions(lines)
	valid, _, _ := validation.ValidateAndFilter(transactions, validation.Filters{})

	fmt.Print(report.Render(valid, nil, report.Options{
		TopN:                  cfg.Report.TopN,
		CurrencySymbol:        cfg.Report.CurrencySymbol,
		LowPerformerThreshold: cfg.Report.LowPerformerThreshold,
		RunID:                 uuid.NewString(),
		GeneratedAt:           time.Now(),
	}))
	return nil
}
