// =============================================================================
// Sales Analytics - Transaction Parser Module
// =============================================================================
//
// This module turns raw pipe-delimited lines into typed Transaction records.
//
// LINE FORMAT (8 fields, fixed order):
//   TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region
//
// A malformed line is never an error: it is rejected with a classified
// reason and counted, so a run can report exactly what it dropped and why.
// Output order always matches input order.
//
// =============================================================================

package parser

import (
	"strconv"
	"strings"

	"github.com/salesworks/sales-analytics/internal/types"
)

// fieldCount is the exact number of pipe-separated fields per line.
const fieldCount = 8

// ParseTransactions parses raw lines into Transaction records.
//
// PARAMETERS:
//   - lines: raw data lines (header already stripped by the reader).
//
// RETURNS:
//   - The parsed transactions, preserving input order.
//   - A histogram of rejected lines by reason. Rejections are silent by
//     contract; only the counts are visible to the caller.
func ParseTransactions(lines []string) ([]types.Transaction, types.RejectStats) {
	transactions := make([]types.Transaction, 0, len(lines))
	rejects := types.RejectStats{}

	for _, line := range lines {
		tx, reason, ok := parseLine(line)
		if !ok {
			rejects.Add(reason)
			continue
		}
		transactions = append(transactions, tx)
	}

	return transactions, rejects
}

// parseLine parses a single line. On failure the returned reason classifies
// the rejection.
func parseLine(line string) (types.Transaction, types.RejectReason, bool) {
	fields := strings.Split(line, "|")
	if len(fields) != fieldCount {
		return types.Transaction{}, types.ReasonFieldCount, false
	}

	quantity, err := strconv.Atoi(stripNumeric(fields[4]))
	if err != nil {
		return types.Transaction{}, types.ReasonBadQuantity, false
	}

	unitPrice, err := strconv.ParseFloat(stripNumeric(fields[5]), 64)
	if err != nil {
		return types.Transaction{}, types.ReasonBadPrice, false
	}

	tx := types.Transaction{
		TransactionID: strings.TrimSpace(fields[0]),
		Date:          strings.TrimSpace(fields[1]),
		ProductID:     strings.TrimSpace(fields[2]),
		ProductName:   NormalizeProductName(fields[3]),
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CustomerID:    strings.TrimSpace(fields[6]),
		Region:        strings.TrimSpace(fields[7]),
	}
	return tx, "", true
}

// stripNumeric prepares a numeric field for parsing: surrounding whitespace
// and thousands-separator commas are removed ("1,200" -> "1200").
func stripNumeric(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}

// NormalizeProductName collapses the legacy "noun, modifier" comma form into
// a single space-separated name: parts are split on commas, trimmed, empty
// parts dropped, and joined in their original order.
//
//	"Mouse,Wireless"  -> "Mouse Wireless"
//	" Laptop "        -> "Laptop"
//	",,Keyboard"      -> "Keyboard"
//
// Joining keeps input order. The legacy system documented a reversed join
// ("Wireless Mouse") but always produced the original order; downstream
// consumers depend on the produced order, so that is the contract here.
func NormalizeProductName(name string) string {
	parts := strings.Split(name, ",")
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}
