// =============================================================================
// Sales Analytics - Pipeline Orchestrator
// =============================================================================
//
// This module runs the end-to-end pipeline for one input file:
//
//   1. Read raw lines (encoding fallback)
//   2. Parse into transactions
//   3. Validate and filter
//   4. Fetch the product catalog
//   5. Enrich transactions with catalog metadata
//   6. Write the cleaned and enriched snapshots
//   7. Generate the text report
//   8. Write the analytics workbook
//   9. Archive the input file
//
// The pipeline is a single sequential pass. Every stage hands an immutable
// record set to the next; the catalog fetch is the only blocking network
// call and its failure degrades to an empty catalog.
//
// =============================================================================

package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/salesworks/sales-analytics/internal/catalog"
	"github.com/salesworks/sales-analytics/internal/config"
	"github.com/salesworks/sales-analytics/internal/export"
	"github.com/salesworks/sales-analytics/internal/parser"
	"github.com/salesworks/sales-analytics/internal/reader"
	"github.com/salesworks/sales-analytics/internal/report"
	"github.com/salesworks/sales-analytics/internal/types"
	"github.com/salesworks/sales-analytics/internal/validation"
	"github.com/salesworks/sales-analytics/pkg/utils"
)

// totalSteps is the number of progress steps printed during a run.
const totalSteps = 9

// =============================================================================
// OPTIONS AND RESULT
// =============================================================================

// Options are the per-run knobs on top of the static configuration.
type Options struct {
	// Filters are the optional region/amount filters.
	Filters validation.Filters

	// SkipFetch skips the catalog call and enriches against an empty
	// catalog. Used for offline runs.
	SkipFetch bool

	// DryRun computes everything but writes no files and archives nothing.
	DryRun bool

	// NoWorkbook suppresses the XLSX workbook.
	NoWorkbook bool
}

// Result is the outcome of one pipeline run.
type Result struct {
	// RunID uniquely identifies the run; it appears in the report header.
	RunID string

	// RawLines is the number of data lines read from the input file.
	RawLines int

	// Parsed is the number of lines that parsed into transactions.
	Parsed int

	// Summary is the validation/filter summary.
	Summary validation.Summary

	// Rejects is the combined parse+validation rejection histogram.
	Rejects types.RejectStats

	// CatalogSize is the number of products fetched.
	CatalogSize int

	// Matched is the number of transactions matched to a catalog product.
	Matched int

	// CleanedPath, EnrichedPath, ReportPath and WorkbookPath are the written
	// outputs (empty on dry runs or when suppressed). The cleaned snapshot is
	// in the 8-column input format and is what the analyze command re-reads.
	CleanedPath  string
	EnrichedPath string
	ReportPath   string
	WorkbookPath string

	// ArchivedPath is where the input file was moved, when archival is on.
	ArchivedPath string

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline runs the sales analytics flow for one input file.
type Pipeline struct {
	cfg     *config.Config
	fetcher catalog.Fetcher
	files   *utils.FileManager
	log     zerolog.Logger

	// progress receives the step-by-step console output.
	progress io.Writer
}

// New creates a pipeline over the given configuration and catalog fetcher.
func New(cfg *config.Config, fetcher catalog.Fetcher, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		fetcher:  fetcher,
		files:    utils.NewFileManager(cfg.DataDir, cfg.OutputDir, cfg.InputArchiveDir),
		log:      log,
		progress: os.Stdout,
	}
}

// SetProgressWriter redirects the step output. Used by tests.
func (p *Pipeline) SetProgressWriter(w io.Writer) {
	p.progress = w
}

// Run executes the pipeline.
func (p *Pipeline) Run(ctx context.Context, opts Options) (Result, error) {
	start := time.Now()
	result := Result{
		RunID:   uuid.NewString(),
		Rejects: types.RejectStats{},
	}

	// Step 1: read
	p.step(1, "Reading sales data...")
	lines, err := reader.ReadSalesLines(p.cfg.InputFile)
	if err != nil {
		return result, err
	}
	result.RawLines = len(lines)
	p.ok("Read %d line(s) from %s", len(lines), p.cfg.InputFile)

	// Step 2: parse
	p.step(2, "Parsing and cleaning data...")
	transactions, parseRejects := parser.ParseTransactions(lines)
	result.Parsed = len(transactions)
	result.Rejects.Merge(parseRejects)
	p.ok("Parsed %d record(s), skipped %d malformed line(s)", len(transactions), parseRejects.Total())

	// Step 3: validate and filter
	p.step(3, "Validating transactions...")
	p.log.Debug().Strs("regions", validation.Regions(transactions)).Msg("regions present in input")
	if min, max, ok := validation.AmountRange(transactions); ok {
		p.log.Debug().Float64("min", min).Float64("max", max).Msg("transaction amount range")
	}
	valid, summary, validationRejects := validation.ValidateAndFilter(transactions, opts.Filters)
	result.Summary = summary
	result.Rejects.Merge(validationRejects)
	p.ok("Valid: %d | Invalid: %d", summary.FinalCount, summary.Invalid)
	if !opts.Filters.None() {
		p.ok("Filtered out: %d by region, %d by amount",
			summary.FilteredByRegion, summary.FilteredByAmount)
	}
	for reason, n := range result.Rejects {
		p.log.Debug().Str("reason", string(reason)).Int("count", n).Msg("records rejected")
	}

	// Step 4: fetch catalog
	p.step(4, "Fetching product catalog...")
	var products []catalog.Product
	if opts.SkipFetch {
		p.ok("Catalog fetch skipped")
	} else {
		products = p.fetcher.FetchProducts(ctx)
		p.ok("Fetched %d product(s)", len(products))
	}
	result.CatalogSize = len(products)

	// Step 5: enrich
	p.step(5, "Enriching sales data...")
	enricher := catalog.NewEnricher(catalog.NewMapping(products), p.cfg.API)
	enriched, matched := enricher.Enrich(valid)
	result.Matched = matched
	p.ok("Matched %d/%d transaction(s) (%s)", matched, len(enriched), matchRate(matched, len(enriched)))

	if !opts.DryRun {
		if err := p.files.EnsureDirectories(); err != nil {
			return result, err
		}
	}

	// Step 6: cleaned and enriched snapshots
	p.step(6, "Saving cleaned and enriched data...")
	if opts.DryRun {
		p.ok("Dry run, nothing written")
	} else {
		cleanedPath := filepath.Join(p.cfg.DataDir, "cleaned_sales_data.txt")
		if err := export.WriteCleaned(cleanedPath, valid); err != nil {
			return result, err
		}
		result.CleanedPath = cleanedPath
		p.ok("Cleaned data saved to %s", cleanedPath)

		enrichedPath := filepath.Join(p.cfg.DataDir, "enriched_sales_data.txt")
		if err := export.WriteEnriched(enrichedPath, enriched); err != nil {
			return result, err
		}
		result.EnrichedPath = enrichedPath
		p.ok("Enriched data saved to %s", enrichedPath)
	}

	// Step 7: report
	p.step(7, "Generating report...")
	reportOpts := report.Options{
		TopN:                  p.cfg.Report.TopN,
		CurrencySymbol:        p.cfg.Report.CurrencySymbol,
		LowPerformerThreshold: p.cfg.Report.LowPerformerThreshold,
		RunID:                 result.RunID,
		GeneratedAt:           time.Now(),
	}
	if opts.DryRun {
		p.ok("Dry run, nothing written")
	} else {
		filename := utils.GenerateOutputFileName(p.cfg.ReportFileFormat, "sales_report", result.RunID)
		path, err := report.WriteFile(p.cfg.OutputDir, filename, valid, enriched, reportOpts)
		if err != nil {
			return result, err
		}
		result.ReportPath = path
		p.ok("Report saved to %s", path)
	}

	// Step 8: workbook
	p.step(8, "Exporting analytics workbook...")
	if opts.DryRun || opts.NoWorkbook {
		p.ok("Skipped")
	} else {
		path := filepath.Join(p.cfg.OutputDir, "sales_analytics.xlsx")
		if err := export.WriteWorkbook(path, valid); err != nil {
			return result, err
		}
		result.WorkbookPath = path
		p.ok("Workbook saved to %s", path)
	}

	// Step 9: archive
	p.step(9, "Archiving input...")
	if p.cfg.ArchiveInputs && !opts.DryRun {
		archived, err := p.files.ArchiveInputFile(p.cfg.InputFile)
		if err != nil {
			return result, err
		}
		result.ArchivedPath = archived
		p.ok("Input archived to %s", archived)
	} else {
		p.ok("Archival disabled")
	}

	result.Elapsed = time.Since(start)
	p.log.Info().
		Str("run_id", result.RunID).
		Int("valid", result.Summary.FinalCount).
		Int("matched", result.Matched).
		Dur("elapsed", result.Elapsed).
		Msg("pipeline complete")

	return result, nil
}

// step prints a numbered progress line.
func (p *Pipeline) step(n int, msg string) {
	fmt.Fprintf(p.progress, "\n[%d/%d] %s\n", n, totalSteps, msg)
}

// ok prints a check-marked progress detail.
func (p *Pipeline) ok(format string, args ...interface{}) {
	fmt.Fprintf(p.progress, "  ✓ "+format+"\n", args...)
}

// matchRate formats matched/total as a percentage, "0.0%" for an empty set.
func matchRate(matched, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(matched)/float64(total)*100)
}
