package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesworks/sales-analytics/internal/types"
)

func testOptions() Options {
	return Options{
		TopN:                  5,
		CurrencySymbol:        "₹",
		LowPerformerThreshold: 10,
		RunID:                 "test-run",
		GeneratedAt:           time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC),
	}
}

func sampleTransactions() []types.Transaction {
	return []types.Transaction{
		{TransactionID: "T001", Date: "2024-12-01", ProductID: "P101", ProductName: "Mouse",
			Quantity: 2, UnitPrice: 499.99, CustomerID: "C001", Region: "North"},
		{TransactionID: "T002", Date: "2024-12-02", ProductID: "P102", ProductName: "Laptop",
			Quantity: 1, UnitPrice: 45000, CustomerID: "C002", Region: "South"},
	}
}

func TestRender_Sections(t *testing.T) {
	transactions := sampleTransactions()
	enriched := []types.EnrichedTransaction{
		{Transaction: transactions[0], APIMatch: true},
		{Transaction: transactions[1], APIMatch: false},
	}

	text := Render(transactions, enriched, testOptions())

	for _, section := range []string{
		"SALES ANALYTICS REPORT",
		"OVERALL SUMMARY",
		"REGION-WISE PERFORMANCE",
		"TOP 5 PRODUCTS",
		"TOP 5 CUSTOMERS",
		"DAILY SALES TREND",
		"PEAK SALES DAY",
		"LOW PERFORMING PRODUCTS",
		"API ENRICHMENT SUMMARY",
	} {
		assert.Contains(t, text, section)
	}

	assert.Contains(t, text, "Run ID:    test-run")
	assert.Contains(t, text, "Records Processed: 2")
	assert.Contains(t, text, "Date Range:           2024-12-01 to 2024-12-02")

	// Currency formatting: thousands separators, two decimals.
	assert.Contains(t, text, "₹45,999.98", "total revenue")
	assert.Contains(t, text, "₹45,000.00", "laptop revenue")

	// Enrichment section.
	assert.Contains(t, text, "Total Transactions Checked: 2")
	assert.Contains(t, text, "Successfully Enriched:      1")
	assert.Contains(t, text, "Success Rate:               50.00%")
	assert.Contains(t, text, " - Laptop")
}

func TestRender_EmptyInput(t *testing.T) {
	// Must not divide by zero anywhere.
	text := Render(nil, nil, testOptions())

	assert.Contains(t, text, "Records Processed: 0")
	assert.Contains(t, text, "Average Order Value:  ₹0.00")
	assert.Contains(t, text, "Date Range:           n/a")
	assert.Contains(t, text, "Success Rate:               0.00%")
	assert.NotContains(t, text, "PEAK SALES DAY", "no peak section for an empty set")
}

func TestSummarizeEnrichment(t *testing.T) {
	base := types.Transaction{ProductName: "Desk Lamp"}
	enriched := []types.EnrichedTransaction{
		{Transaction: base, APIMatch: false},
		{Transaction: base, APIMatch: false},
		{Transaction: types.Transaction{ProductName: "Chair"}, APIMatch: true},
	}

	got := SummarizeEnrichment(enriched)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 1, got.Matched)
	assert.Equal(t, 2, got.Failed)
	assert.InDelta(t, 33.33, got.SuccessRate, 0.01)
	assert.Equal(t, []string{"Desk Lamp"}, got.FailedProducts, "distinct failed names")
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")

	path, err := WriteFile(dir, "report.txt", sampleTransactions(), nil, testOptions())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "SALES ANALYTICS REPORT"))
}
