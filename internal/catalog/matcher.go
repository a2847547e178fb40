// =============================================================================
// Sales Analytics - Catalog Matcher
// =============================================================================
//
// This module joins validated transactions against the fetched catalog.
//
// MATCHING ALGORITHM (per transaction, first hit wins):
//   1. Numeric ID: the digits of the ProductID ("P101" -> 101) looked up in
//      the by-ID map. A ProductID with no digits simply has no ID match.
//   2. Fuzzy title: the normalized ProductName (lowercased, spaces
//      stripped) tested for substring containment in either direction
//      against every catalog title, in catalog order.
//   3. No match: the configured MatchPolicy decides. Strict leaves the
//      fields nil with APIMatch=false; placeholder substitutes the
//      configured category/brand and reports APIMatch=true. The two
//      policies are never blended.
//
// =============================================================================

package catalog

import (
	"strconv"
	"strings"

	"github.com/salesworks/sales-analytics/internal/config"
	"github.com/salesworks/sales-analytics/internal/types"
)

// =============================================================================
// MAPPING
// =============================================================================

// Mapping is the lookup structure built from the fetched catalog.
type Mapping struct {
	byID map[int]Product

	// titles keeps normalized titles in catalog order so fuzzy matching is
	// deterministic.
	titles []titleEntry
}

type titleEntry struct {
	normalized string
	product    Product
}

// NewMapping builds the lookup structure. An empty or nil product list is
// valid and yields a mapping that matches nothing.
func NewMapping(products []Product) *Mapping {
	m := &Mapping{
		byID:   make(map[int]Product, len(products)),
		titles: make([]titleEntry, 0, len(products)),
	}

	for _, p := range products {
		m.byID[p.ID] = p
		m.titles = append(m.titles, titleEntry{
			normalized: normalizeTitle(p.Title),
			product:    p,
		})
	}

	return m
}

// Size returns the number of catalog products in the mapping.
func (m *Mapping) Size() int {
	return len(m.titles)
}

// Lookup finds the catalog product for a transaction, trying the numeric ID
// first and the fuzzy title second.
func (m *Mapping) Lookup(tx types.Transaction) (Product, bool) {
	if id, ok := NumericID(tx.ProductID); ok {
		if p, found := m.byID[id]; found {
			return p, true
		}
	}

	name := normalizeTitle(tx.ProductName)
	if name == "" {
		return Product{}, false
	}

	for _, entry := range m.titles {
		if entry.normalized == "" {
			continue
		}
		if strings.Contains(entry.normalized, name) || strings.Contains(name, entry.normalized) {
			return entry.product, true
		}
	}

	return Product{}, false
}

// NumericID extracts the digits of a prefixed product ID and parses them as
// an integer: "P101" -> 101. An ID with no digits returns ok=false, which is
// "no ID match", not an error.
func NumericID(productID string) (int, bool) {
	var digits strings.Builder
	for _, r := range productID {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}

	id, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return id, true
}

// normalizeTitle lowercases and strips all spaces.
func normalizeTitle(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "")
}

// =============================================================================
// ENRICHMENT
// =============================================================================

// Enricher attaches catalog metadata to transactions under a fixed policy.
type Enricher struct {
	mapping *Mapping
	policy  config.MatchPolicy

	placeholderCategory string
	placeholderBrand    string
}

// NewEnricher creates an enricher over the given mapping.
func NewEnricher(mapping *Mapping, api config.APIConfig) *Enricher {
	return &Enricher{
		mapping:             mapping,
		policy:              api.MatchPolicy,
		placeholderCategory: api.PlaceholderCategory,
		placeholderBrand:    api.PlaceholderBrand,
	}
}

// Enrich produces one EnrichedTransaction per input transaction, order
// preserved, and reports how many were matched against the catalog. Under
// the placeholder policy substituted records still count as unmatched here:
// matched means a real catalog product was found.
func (e *Enricher) Enrich(transactions []types.Transaction) ([]types.EnrichedTransaction, int) {
	enriched := make([]types.EnrichedTransaction, 0, len(transactions))
	matched := 0

	for _, tx := range transactions {
		record := types.EnrichedTransaction{Transaction: tx}

		if p, ok := e.mapping.Lookup(tx); ok {
			record.APICategory = p.Category
			record.APIBrand = p.Brand
			record.APIRating = p.Rating
			record.APIMatch = true
			matched++
		} else if e.policy == config.MatchPolicyPlaceholder {
			category := e.placeholderCategory
			brand := e.placeholderBrand
			record.APICategory = &category
			record.APIBrand = &brand
			record.APIMatch = true
		}

		enriched = append(enriched, record)
	}

	return enriched, matched
}
