// =============================================================================
// Sales Analytics - Process Command
// =============================================================================
//
// This file defines the 'process' command, the main entry into the pipeline.
//
// COMMAND USAGE:
//   sales-analytics process [flags]
//
// FLAGS:
//   --input       : Override the configured input file
//   --region      : Keep only transactions from this region
//   --min-amount  : Keep only transactions worth at least this amount
//   --max-amount  : Keep only transactions worth at most this amount
//   --skip-api    : Skip the catalog fetch (offline run, no enrichment)
//   --dry-run     : Compute everything but write no files
//   --no-xlsx     : Suppress the analytics workbook
//
// Blank filter flags mean "no filter", matching the legacy interactive
// prompts where pressing Enter skipped a filter.
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/salesworks/sales-analytics/internal/catalog"
	"github.com/salesworks/sales-analytics/internal/config"
	"github.com/salesworks/sales-analytics/internal/logger"
	"github.com/salesworks/sales-analytics/internal/pipeline"
	"github.com/salesworks/sales-analytics/internal/validation"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inputFile overrides the configured input file.
var inputFile string

// regionFilter keeps only transactions from one region.
var regionFilter string

// minAmount / maxAmount bound the transaction amount (inclusive).
var minAmount float64
var maxAmount float64

// skipAPI skips the catalog fetch.
var skipAPI bool

// dryRun computes everything but writes nothing.
var dryRun bool

// noXLSX suppresses the analytics workbook.
var noXLSX bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the full sales analytics pipeline",
	Long: `The process command reads the pipe-delimited sales file, validates and
filters the records, enriches them with product metadata from the catalog
API, and writes three outputs: the enriched data snapshot, the text report
and the analytics workbook.

Malformed and invalid records are counted, never fatal. A failed catalog
fetch degrades to an unenriched run rather than aborting.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&inputFile, "input", "", "Override the configured input file")
	processCmd.Flags().StringVar(&regionFilter, "region", "", "Keep only transactions from this region")
	processCmd.Flags().Float64Var(&minAmount, "min-amount", 0, "Keep only transactions worth at least this amount")
	processCmd.Flags().Float64Var(&maxAmount, "max-amount", 0, "Keep only transactions worth at most this amount")
	processCmd.Flags().BoolVar(&skipAPI, "skip-api", false, "Skip the catalog fetch")
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute everything but write no files")
	processCmd.Flags().BoolVar(&noXLSX, "no-xlsx", false, "Suppress the analytics workbook")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess wires the pipeline from configuration and flags and runs it.
func runProcess(cmd *cobra.Command) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if inputFile != "" {
		cfg.InputFile = inputFile
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log := logger.New(level)

	filters := validation.Filters{Region: regionFilter}
	// A flag left at its default means "no bound", not "bound at zero".
	if cmd.Flags().Changed("min-amount") {
		filters.MinAmount = &minAmount
	}
	if cmd.Flags().Changed("max-amount") {
		filters.MaxAmount = &maxAmount
	}

	fetcher := catalog.NewClient(cfg.API.URL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, log)

	fmt.Println("========================================")
	fmt.Println("        SALES ANALYTICS SYSTEM")
	fmt.Println("========================================")

	p := pipeline.New(cfg, fetcher, log)
	result, err := p.Run(cmd.Context(), pipeline.Options{
		Filters:    filters,
		SkipFetch:  skipAPI,
		DryRun:     dryRun,
		NoWorkbook: noXLSX,
	})
	if err != nil {
		return err
	}

	fmt.Println("\n========================================")
	fmt.Println("Process Complete!")
	fmt.Printf("Records in:      %d\n", result.RawLines)
	fmt.Printf("Valid records:   %d\n", result.Summary.FinalCount)
	fmt.Printf("Rejected:        %d\n", result.Rejects.Total())
	fmt.Printf("Catalog matches: %d\n", result.Matched)
	fmt.Printf("Time elapsed:    %s\n", result.Elapsed.Round(time.Millisecond))
	fmt.Println("========================================")
	return nil
}
