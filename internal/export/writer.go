// =============================================================================
// Sales Analytics - Snapshot Writers
// =============================================================================
//
// This module writes the two pipe-delimited snapshots of a run:
//
//   Cleaned  - the validated transactions in the 8-column input format, so
//              the analyze command can re-read a previous run's output.
//   Enriched - the same records plus catalog metadata, with the fixed
//              12-column header:
//
//   TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|
//   Region|API_Category|API_Brand|API_Rating|API_Match
//
// Absent optional values serialize as the literal token "None". Booleans and
// numbers use Go formatting ("true"/"false", trimmed decimals); the column
// structure matches the legacy snapshots, the value spelling does not.
//
// =============================================================================

package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/salesworks/sales-analytics/internal/types"
)

// noneToken is written for every absent optional value.
const noneToken = "None"

// CleanedHeader is the column order of the cleaned snapshot. It is the raw
// input format, so the file feeds straight back through the reader and
// parser.
var CleanedHeader = []string{
	"TransactionID", "Date", "ProductID", "ProductName",
	"Quantity", "UnitPrice", "CustomerID", "Region",
}

// EnrichedHeader is the fixed column order of the enriched snapshot.
var EnrichedHeader = []string{
	"TransactionID", "Date", "ProductID", "ProductName",
	"Quantity", "UnitPrice", "CustomerID", "Region",
	"API_Category", "API_Brand", "API_Rating", "API_Match",
}

// WriteCleaned writes the validated transactions to path in the 8-column
// input format. The analyze command consumes this file.
func WriteCleaned(path string, transactions []types.Transaction) error {
	rows := make([][]string, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, CleanedRow(tx))
	}
	return writeSnapshot(path, CleanedHeader, rows)
}

// WriteEnriched writes the enriched snapshot to path, creating parent
// directories as needed.
func WriteEnriched(path string, enriched []types.EnrichedTransaction) error {
	rows := make([][]string, 0, len(enriched))
	for _, tx := range enriched {
		rows = append(rows, EnrichedRow(tx))
	}
	return writeSnapshot(path, EnrichedHeader, rows)
}

// writeSnapshot writes a header plus rows as pipe-delimited lines.
func writeSnapshot(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintln(w, strings.Join(header, "|"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "|"))
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return nil
}

// CleanedRow serializes one record in input-format order.
func CleanedRow(tx types.Transaction) []string {
	return []string{
		tx.TransactionID,
		tx.Date,
		tx.ProductID,
		tx.ProductName,
		strconv.Itoa(tx.Quantity),
		formatPrice(tx.UnitPrice),
		tx.CustomerID,
		tx.Region,
	}
}

// EnrichedRow serializes one record in header order.
func EnrichedRow(tx types.EnrichedTransaction) []string {
	return append(CleanedRow(tx.Transaction),
		stringOrNone(tx.APICategory),
		stringOrNone(tx.APIBrand),
		ratingOrNone(tx.APIRating),
		strconv.FormatBool(tx.APIMatch),
	)
}

// formatPrice keeps prices compact: two decimals, trailing zeros trimmed,
// so "499.99" stays "499.99" and "45000.00" becomes "45000".
func formatPrice(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func stringOrNone(v *string) string {
	if v == nil {
		return noneToken
	}
	return *v
}

func ratingOrNone(v *float64) string {
	if v == nil {
		return noneToken
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
