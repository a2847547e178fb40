// =============================================================================
// Sales Analytics - Shared Types
// =============================================================================
//
// This package contains the domain records shared across the pipeline to
// avoid import cycles. Types defined here are used by:
//   - parser
//   - validation
//   - catalog
//   - analytics
//   - report / export
//
// =============================================================================

package types

// =============================================================================
// TRANSACTION TYPES
// =============================================================================

// Transaction represents a single parsed sales record. A Transaction is
// immutable once it leaves the parser: downstream stages copy, they never
// mutate.
type Transaction struct {
	// TransactionID is the record identifier. Valid IDs start with "T".
	TransactionID string

	// Date is the transaction date in "YYYY-MM-DD" form. It is kept as a
	// string because it is a grouping key, not a point in time.
	Date string

	// ProductID is the product identifier. Valid IDs start with "P".
	ProductID string

	// ProductName is the normalized product name (comma forms collapsed,
	// e.g. "Mouse,Wireless" becomes "Mouse Wireless").
	ProductName string

	// Quantity is the number of units sold. Validation requires > 0.
	Quantity int

	// UnitPrice is the per-unit price. Validation requires > 0.
	UnitPrice float64

	// CustomerID is the customer identifier. Valid IDs start with "C".
	CustomerID string

	// Region is the sales region. Must be non-empty.
	Region string
}

// Amount returns the transaction value. It is always derived, never stored,
// so revenue, region, customer and daily aggregates cannot drift apart.
func (t Transaction) Amount() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// EnrichedTransaction is a Transaction plus the catalog metadata attached by
// the matcher. Optional fields are nil when the catalog had no value for
// them; APIMatch records whether a catalog product was found at all.
type EnrichedTransaction struct {
	Transaction

	// APICategory is the catalog category, nil when unavailable.
	APICategory *string

	// APIBrand is the catalog brand, nil when unavailable.
	APIBrand *string

	// APIRating is the catalog rating, nil when unavailable.
	APIRating *float64

	// APIMatch reports whether a catalog product was matched.
	APIMatch bool
}

// =============================================================================
// REJECTION TRACKING
// =============================================================================

// RejectReason classifies why a record was dropped by the parser or the
// validator. Dropped records are never errors; they are counted so a run is
// auditable after the fact.
type RejectReason string

const (
	// ReasonFieldCount: the raw line did not split into exactly 8 fields.
	ReasonFieldCount RejectReason = "field_count"

	// ReasonBadQuantity: the quantity field did not parse as an integer.
	ReasonBadQuantity RejectReason = "bad_quantity"

	// ReasonBadPrice: the unit price field did not parse as a decimal.
	ReasonBadPrice RejectReason = "bad_price"

	// ReasonMissingField: a required field was empty after trimming.
	ReasonMissingField RejectReason = "missing_field"

	// ReasonBadPrefix: an ID field failed its "T"/"P"/"C" prefix rule.
	ReasonBadPrefix RejectReason = "bad_prefix"

	// ReasonBadValue: quantity or price was zero or negative.
	ReasonBadValue RejectReason = "bad_value"
)

// RejectStats is a histogram of rejection reasons.
type RejectStats map[RejectReason]int

// Add records one rejection.
func (s RejectStats) Add(reason RejectReason) {
	s[reason]++
}

// Total returns the number of rejected records across all reasons.
func (s RejectStats) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// Merge folds other into s.
func (s RejectStats) Merge(other RejectStats) {
	for reason, n := range other {
		s[reason] += n
	}
}
