// =============================================================================
// Sales Analytics - Report Formatter
// =============================================================================
//
// This module renders the fixed-width plain-text sales report. It has no
// decision logic beyond formatting: every number it prints was computed by
// the analytics package or the catalog matcher and arrives here as a value.
//
// SECTIONS:
//   1. Header (generation time, run ID, records processed)
//   2. Overall summary (revenue, count, average order value, date range)
//   3. Region-wise performance
//   4. Top-N products
//   5. Top-N customers
//   6. Daily sales trend
//   7. API enrichment summary
//
// Currency values carry thousands separators and two decimals; percentages
// two decimals.
//
// =============================================================================

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/salesworks/sales-analytics/internal/analytics"
	"github.com/salesworks/sales-analytics/internal/types"
)

const separatorWidth = 60

// Options controls report rendering.
type Options struct {
	// TopN is the number of rows in the product and customer tables.
	TopN int

	// CurrencySymbol prefixes every currency value.
	CurrencySymbol string

	// LowPerformerThreshold feeds the low-performer section.
	LowPerformerThreshold int

	// RunID identifies the pipeline run that produced the report.
	RunID string

	// GeneratedAt is the report generation time.
	GeneratedAt time.Time
}

// EnrichmentSummary is the API enrichment section of the report.
type EnrichmentSummary struct {
	Total          int
	Matched        int
	Failed         int
	SuccessRate    float64
	FailedProducts []string
}

// =============================================================================
// ENRICHMENT SUMMARY
// =============================================================================

// SummarizeEnrichment derives the enrichment statistics from the enriched
// record set. An empty set yields a 0 success rate, not a division by zero.
func SummarizeEnrichment(enriched []types.EnrichedTransaction) EnrichmentSummary {
	summary := EnrichmentSummary{Total: len(enriched)}

	failedSet := make(map[string]bool)
	for _, tx := range enriched {
		if tx.APIMatch {
			summary.Matched++
		} else {
			summary.Failed++
			failedSet[tx.ProductName] = true
		}
	}

	for name := range failedSet {
		summary.FailedProducts = append(summary.FailedProducts, name)
	}
	sort.Strings(summary.FailedProducts)

	if summary.Total > 0 {
		summary.SuccessRate = float64(summary.Matched) / float64(summary.Total) * 100
	}
	return summary
}

// =============================================================================
// RENDERING
// =============================================================================

// Render produces the full report text.
func Render(transactions []types.Transaction, enriched []types.EnrichedTransaction, opts Options) string {
	var b strings.Builder
	f := newFormatter(opts.CurrencySymbol)

	totalRevenue := analytics.TotalRevenue(transactions)
	avgOrder := 0.0
	if len(transactions) > 0 {
		avgOrder = totalRevenue / float64(len(transactions))
	}

	// Header
	rule(&b, "=")
	b.WriteString("               SALES ANALYTICS REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n", opts.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Run ID:    %s\n", opts.RunID)
	fmt.Fprintf(&b, "Records Processed: %d\n", len(transactions))
	rule(&b, "=")
	b.WriteString("\n")

	// Overall summary
	b.WriteString("OVERALL SUMMARY\n")
	rule(&b, "-")
	fmt.Fprintf(&b, "Total Revenue:        %s\n", f.money(totalRevenue))
	fmt.Fprintf(&b, "Total Transactions:   %d\n", len(transactions))
	fmt.Fprintf(&b, "Average Order Value:  %s\n", f.money(avgOrder))
	if first, last, ok := analytics.DateRange(transactions); ok {
		fmt.Fprintf(&b, "Date Range:           %s to %s\n", first, last)
	} else {
		b.WriteString("Date Range:           n/a\n")
	}
	b.WriteString("\n")

	// Region performance
	b.WriteString("REGION-WISE PERFORMANCE\n")
	rule(&b, "-")
	fmt.Fprintf(&b, "%-10s%18s%10s%8s\n", "Region", "Sales", "%Total", "Txns")
	for _, r := range analytics.RegionSummary(transactions) {
		fmt.Fprintf(&b, "%-10s%18s%9.2f%%%8d\n", r.Region, f.money(r.TotalSales), r.Percentage, r.Count)
	}
	b.WriteString("\n")

	// Top products
	fmt.Fprintf(&b, "TOP %d PRODUCTS\n", opts.TopN)
	rule(&b, "-")
	fmt.Fprintf(&b, "%-6s%-22s%8s%18s\n", "Rank", "Product", "Qty", "Revenue")
	for i, p := range analytics.TopProducts(transactions, opts.TopN) {
		fmt.Fprintf(&b, "%-6d%-22s%8d%18s\n", i+1, p.Name, p.Quantity, f.money(p.Revenue))
	}
	b.WriteString("\n")

	// Top customers
	fmt.Fprintf(&b, "TOP %d CUSTOMERS\n", opts.TopN)
	rule(&b, "-")
	fmt.Fprintf(&b, "%-6s%-15s%18s%8s\n", "Rank", "Customer", "Spent", "Orders")
	customers := analytics.CustomerSummary(transactions)
	if len(customers) > opts.TopN {
		customers = customers[:opts.TopN]
	}
	for i, c := range customers {
		fmt.Fprintf(&b, "%-6d%-15s%18s%8d\n", i+1, c.CustomerID, f.money(c.TotalSpent), c.PurchaseCount)
	}
	b.WriteString("\n")

	// Daily trend
	b.WriteString("DAILY SALES TREND\n")
	rule(&b, "-")
	fmt.Fprintf(&b, "%-12s%18s%8s%12s\n", "Date", "Revenue", "Txns", "Customers")
	for _, d := range analytics.DailyTrend(transactions) {
		fmt.Fprintf(&b, "%-12s%18s%8d%12d\n", d.Date, f.money(d.Revenue), d.Count, d.UniqueCustomers)
	}
	b.WriteString("\n")

	// Peak day
	if peak, ok := analytics.FindPeakDay(transactions); ok {
		b.WriteString("PEAK SALES DAY\n")
		rule(&b, "-")
		fmt.Fprintf(&b, "%s with %s across %d transaction(s)\n\n", peak.Date, f.money(peak.Revenue), peak.Count)
	}

	// Low performers
	low := analytics.LowPerformers(transactions, opts.LowPerformerThreshold)
	fmt.Fprintf(&b, "LOW PERFORMING PRODUCTS (quantity below %d)\n", opts.LowPerformerThreshold)
	rule(&b, "-")
	if len(low) == 0 {
		b.WriteString(" None\n")
	}
	for _, p := range low {
		fmt.Fprintf(&b, "%-22s%8d%18s\n", p.Name, p.Quantity, f.money(p.Revenue))
	}
	b.WriteString("\n")

	// Enrichment summary
	summary := SummarizeEnrichment(enriched)
	b.WriteString("API ENRICHMENT SUMMARY\n")
	rule(&b, "-")
	fmt.Fprintf(&b, "Total Transactions Checked: %d\n", summary.Total)
	fmt.Fprintf(&b, "Successfully Enriched:      %d\n", summary.Matched)
	fmt.Fprintf(&b, "Failed Enrichments:         %d\n", summary.Failed)
	fmt.Fprintf(&b, "Success Rate:               %.2f%%\n\n", summary.SuccessRate)

	b.WriteString("Products Without API Match:\n")
	if len(summary.FailedProducts) == 0 {
		b.WriteString(" None\n")
	}
	for _, name := range summary.FailedProducts {
		fmt.Fprintf(&b, " - %s\n", name)
	}

	return b.String()
}

// WriteFile renders the report and writes it under dir.
func WriteFile(dir, filename string, transactions []types.Transaction, enriched []types.EnrichedTransaction, opts Options) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(Render(transactions, enriched, opts)), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

type formatter struct {
	printer *message.Printer
	symbol  string
}

func newFormatter(symbol string) formatter {
	return formatter{printer: message.NewPrinter(language.English), symbol: symbol}
}

// money renders a currency value with thousands separators and exactly two
// decimals: 1234567.8 -> "₹1,234,567.80".
func (f formatter) money(v float64) string {
	return f.symbol + f.printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// rule writes a horizontal separator line.
func rule(b *strings.Builder, ch string) {
	b.WriteString(strings.Repeat(ch, separatorWidth))
	b.WriteString("\n")
}
