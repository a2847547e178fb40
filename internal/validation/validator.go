// =============================================================================
// Sales Analytics - Validation and Filtering Module
// =============================================================================
//
// This module enforces the business rules on parsed transactions and applies
// the optional runtime filters.
//
// VALIDATION RULES:
//   - TransactionID, ProductID, CustomerID and Region must be non-empty
//   - TransactionID starts with "T", ProductID with "P", CustomerID with "C"
//   - Quantity and UnitPrice must be strictly positive
//
// FILTERS (applied in order, each on the previous stage's output):
//   1. Region: exact string equality
//   2. Minimum amount: Quantity*UnitPrice >= min (inclusive)
//   3. Maximum amount: Quantity*UnitPrice <= max (inclusive)
//
// ERROR HANDLING:
//   Invalid business data is never an error. Each rejected record is
//   classified and counted; the caller sees a Summary, not exceptions.
//
// =============================================================================

package validation

import (
	"sort"
	"strings"

	"github.com/salesworks/sales-analytics/internal/types"
)

// =============================================================================
// FILTERS AND SUMMARY
// =============================================================================

// Filters holds the optional runtime filters. Zero values mean "no filter":
// an empty Region skips the region filter, nil amounts skip the amount
// bounds.
type Filters struct {
	// Region keeps only transactions whose Region matches exactly.
	Region string

	// MinAmount keeps only transactions with amount >= MinAmount.
	MinAmount *float64

	// MaxAmount keeps only transactions with amount <= MaxAmount.
	MaxAmount *float64
}

// None reports whether no filter is active.
func (f Filters) None() bool {
	return f.Region == "" && f.MinAmount == nil && f.MaxAmount == nil
}

// Summary reports what validation and filtering did to the input set.
type Summary struct {
	// TotalInput is the number of records handed to the validator.
	TotalInput int

	// Invalid is the number of records rejected by the business rules.
	Invalid int

	// FilteredByRegion is the number of valid records removed by the region
	// filter.
	FilteredByRegion int

	// FilteredByAmount is the number of valid records removed by the min and
	// max amount filters combined.
	FilteredByAmount int

	// FinalCount is the number of records that survived all stages.
	FinalCount int
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidateAndFilter applies the business rules and then the filters.
//
// PARAMETERS:
//   - transactions: parsed records, in input order.
//   - filters: the optional runtime filters.
//
// RETURNS:
//   - The surviving records, order preserved.
//   - A Summary of the run.
//   - A histogram of rejection reasons for the invalid records.
//
// The operation is idempotent: feeding the output back through the same
// filters yields the same records.
func ValidateAndFilter(transactions []types.Transaction, filters Filters) ([]types.Transaction, Summary, types.RejectStats) {
	rejects := types.RejectStats{}
	valid := make([]types.Transaction, 0, len(transactions))

	for _, tx := range transactions {
		if reason, ok := check(tx); !ok {
			rejects.Add(reason)
			continue
		}
		valid = append(valid, tx)
	}

	summary := Summary{
		TotalInput: len(transactions),
		Invalid:    rejects.Total(),
	}

	filtered := valid
	if filters.Region != "" {
		before := len(filtered)
		filtered = keep(filtered, func(tx types.Transaction) bool {
			return tx.Region == filters.Region
		})
		summary.FilteredByRegion = before - len(filtered)
	}

	if filters.MinAmount != nil {
		before := len(filtered)
		filtered = keep(filtered, func(tx types.Transaction) bool {
			return tx.Amount() >= *filters.MinAmount
		})
		summary.FilteredByAmount += before - len(filtered)
	}

	if filters.MaxAmount != nil {
		before := len(filtered)
		filtered = keep(filtered, func(tx types.Transaction) bool {
			return tx.Amount() <= *filters.MaxAmount
		})
		summary.FilteredByAmount += before - len(filtered)
	}

	summary.FinalCount = len(filtered)
	return filtered, summary, rejects
}

// check applies the business rules to a single record.
func check(tx types.Transaction) (types.RejectReason, bool) {
	if tx.TransactionID == "" || tx.ProductID == "" || tx.CustomerID == "" || tx.Region == "" {
		return types.ReasonMissingField, false
	}

	if !strings.HasPrefix(tx.TransactionID, "T") ||
		!strings.HasPrefix(tx.ProductID, "P") ||
		!strings.HasPrefix(tx.CustomerID, "C") {
		return types.ReasonBadPrefix, false
	}

	if tx.Quantity <= 0 || tx.UnitPrice <= 0 {
		return types.ReasonBadValue, false
	}

	return "", true
}

// keep returns the records matching the predicate, preserving order.
func keep(transactions []types.Transaction, pred func(types.Transaction) bool) []types.Transaction {
	kept := make([]types.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if pred(tx) {
			kept = append(kept, tx)
		}
	}
	return kept
}

// =============================================================================
// FILTER CHOICES
// =============================================================================

// Regions returns the sorted set of distinct regions in the record set.
// The pipeline logs this before filtering so an operator can see the
// available filter choices.
func Regions(transactions []types.Transaction) []string {
	seen := make(map[string]bool)
	var regions []string
	for _, tx := range transactions {
		if !seen[tx.Region] {
			seen[tx.Region] = true
			regions = append(regions, tx.Region)
		}
	}
	sort.Strings(regions)
	return regions
}

// AmountRange returns the minimum and maximum transaction amount in the
// record set, and false when the set is empty.
func AmountRange(transactions []types.Transaction) (min, max float64, ok bool) {
	if len(transactions) == 0 {
		return 0, 0, false
	}
	min, max = transactions[0].Amount(), transactions[0].Amount()
	for _, tx := range transactions[1:] {
		amount := tx.Amount()
		if amount < min {
			min = amount
		}
		if amount > max {
			max = amount
		}
	}
	return min, max, true
}
