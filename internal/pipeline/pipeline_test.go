package pipeline

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesworks/sales-analytics/internal/catalog"
	"github.com/salesworks/sales-analytics/internal/config"
	"github.com/salesworks/sales-analytics/internal/logger"
	"github.com/salesworks/sales-analytics/internal/parser"
	"github.com/salesworks/sales-analytics/internal/reader"
	"github.com/salesworks/sales-analytics/internal/validation"
)

// stubFetcher serves a fixed catalog without touching the network.
type stubFetcher struct {
	products []catalog.Product
}

func (s stubFetcher) FetchProducts(ctx context.Context) []catalog.Product {
	return s.products
}

func strptr(s string) *string { return &s }

const sampleInput = "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region\n" +
	"T001|2024-12-01|P101|Wireless Mouse|2|499.99|C001|North\n" +
	"T002|2024-12-02|P102|Laptop|1|45000|C002|South\n" +
	"X003|2024-12-03|P103|Keyboard|1|999|C003|East\n" +
	"T004|2024-12-03|P104|Monitor|abc|5000|C004|West\n"

func testPipeline(t *testing.T) (*Pipeline, *config.Config) {
	t.Helper()

	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.InputFile = filepath.Join(root, "sales_data.txt")
	cfg.DataDir = filepath.Join(root, "data")
	cfg.OutputDir = filepath.Join(root, "output")
	cfg.InputArchiveDir = filepath.Join(root, "input_archive")
	require.NoError(t, os.WriteFile(cfg.InputFile, []byte(sampleInput), 0644))

	fetcher := stubFetcher{products: []catalog.Product{
		{ID: 101, Title: "Wireless Mouse", Category: strptr("electronics"), Brand: strptr("Logitech")},
	}}

	p := New(cfg, fetcher, logger.NewWithWriter(io.Discard, "error"))
	p.SetProgressWriter(io.Discard)
	return p, cfg
}

func TestRun_FullPipeline(t *testing.T) {
	p, cfg := testPipeline(t)

	result, err := p.Run(context.Background(), Options{})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 4, result.RawLines)
	assert.Equal(t, 3, result.Parsed, "non-numeric quantity dropped at parse")
	assert.Equal(t, 2, result.Summary.FinalCount, "bad transaction prefix dropped at validation")
	assert.Equal(t, 2, result.Rejects.Total())
	assert.Equal(t, 1, result.CatalogSize)
	assert.Equal(t, 1, result.Matched, "mouse matches by numeric product id")
	assert.Positive(t, result.Elapsed)

	// Outputs on disk.
	assert.Equal(t, filepath.Join(cfg.DataDir, "cleaned_sales_data.txt"), result.CleanedPath)
	assert.FileExists(t, result.CleanedPath)
	assert.Equal(t, filepath.Join(cfg.DataDir, "enriched_sales_data.txt"), result.EnrichedPath)
	assert.FileExists(t, result.EnrichedPath)
	assert.FileExists(t, result.ReportPath)
	assert.FileExists(t, result.WorkbookPath)

	// Archival is off by default.
	assert.Empty(t, result.ArchivedPath)
	assert.FileExists(t, cfg.InputFile)

	data, err := os.ReadFile(result.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SALES ANALYTICS REPORT")
	assert.Contains(t, string(data), result.RunID)
}

func TestRun_CleanedSnapshotFeedsReanalysis(t *testing.T) {
	p, _ := testPipeline(t)

	result, err := p.Run(context.Background(), Options{SkipFetch: true, NoWorkbook: true})
	require.NoError(t, err)
	require.FileExists(t, result.CleanedPath)

	// A second run over the cleaned snapshot sees every record again.
	lines, err := reader.ReadSalesLines(result.CleanedPath)
	require.NoError(t, err)
	parsed, rejects := parser.ParseTransactions(lines)
	assert.Equal(t, 0, rejects.Total())
	assert.Len(t, parsed, result.Summary.FinalCount)
}

func TestRun_ReportNameCarriesRunID(t *testing.T) {
	p, cfg := testPipeline(t)
	cfg.ReportFileFormat = "sales_report_{uuid}.txt"

	result, err := p.Run(context.Background(), Options{SkipFetch: true, NoWorkbook: true})
	require.NoError(t, err)

	assert.Equal(t, "sales_report_"+result.RunID+".txt", filepath.Base(result.ReportPath))
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	p, cfg := testPipeline(t)

	result, err := p.Run(context.Background(), Options{DryRun: true})
	require.NoError(t, err)

	assert.Empty(t, result.CleanedPath)
	assert.Empty(t, result.EnrichedPath)
	assert.Empty(t, result.ReportPath)
	assert.Empty(t, result.WorkbookPath)
	assert.NoDirExists(t, cfg.DataDir)
	assert.NoDirExists(t, cfg.OutputDir)
}

func TestRun_SkipFetchUsesEmptyCatalog(t *testing.T) {
	p, _ := testPipeline(t)

	result, err := p.Run(context.Background(), Options{SkipFetch: true, NoWorkbook: true})
	require.NoError(t, err)

	assert.Equal(t, 0, result.CatalogSize)
	assert.Equal(t, 0, result.Matched)
	assert.Empty(t, result.WorkbookPath)
	assert.FileExists(t, result.EnrichedPath)
}

func TestRun_RegionFilter(t *testing.T) {
	p, _ := testPipeline(t)

	result, err := p.Run(context.Background(), Options{
		Filters: validation.Filters{Region: "North"},
		DryRun:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Summary.FinalCount)
	assert.Equal(t, 1, result.Summary.FilteredByRegion)
}

func TestRun_ArchivesInput(t *testing.T) {
	p, cfg := testPipeline(t)
	cfg.ArchiveInputs = true

	result, err := p.Run(context.Background(), Options{NoWorkbook: true})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ArchivedPath)
	assert.FileExists(t, result.ArchivedPath)
	assert.NoFileExists(t, cfg.InputFile)
}

func TestRun_MissingInputFile(t *testing.T) {
	p, cfg := testPipeline(t)
	cfg.InputFile = filepath.Join(t.TempDir(), "absent.txt")

	var buf bytes.Buffer
	p.SetProgressWriter(&buf)

	_, err := p.Run(context.Background(), Options{})
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "[1/9] Reading sales data...")
}
