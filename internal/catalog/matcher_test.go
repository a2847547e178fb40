package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesworks/sales-analytics/internal/config"
	"github.com/salesworks/sales-analytics/internal/types"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestNumericID(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"P101", 101, true},
		{"P001", 1, true},
		{"12", 12, true},
		{"PX9Y9", 99, true},
		{"PROD", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NumericID(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapping_Lookup(t *testing.T) {
	products := []Product{
		{ID: 101, Title: "Wireless Mouse", Category: strPtr("electronics"), Brand: strPtr("Logi"), Rating: floatPtr(4.5)},
		{ID: 102, Title: "Gaming Keyboard", Category: strPtr("electronics")},
		{ID: 103, Title: "Mouse Pad XL"},
	}
	m := NewMapping(products)
	require.Equal(t, 3, m.Size())

	t.Run("numeric id match wins", func(t *testing.T) {
		p, ok := m.Lookup(types.Transaction{ProductID: "P102", ProductName: "Wireless Mouse"})
		require.True(t, ok)
		assert.Equal(t, 102, p.ID)
	})

	t.Run("fuzzy title when id misses", func(t *testing.T) {
		p, ok := m.Lookup(types.Transaction{ProductID: "P999", ProductName: "Gaming Keyboard"})
		require.True(t, ok)
		assert.Equal(t, 102, p.ID)
	})

	t.Run("containment in either direction", func(t *testing.T) {
		// Transaction name contained in a catalog title.
		p, ok := m.Lookup(types.Transaction{ProductID: "PX", ProductName: "Keyboard"})
		require.True(t, ok)
		assert.Equal(t, 102, p.ID)

		// Catalog title contained in the transaction name.
		p, ok = m.Lookup(types.Transaction{ProductID: "PX", ProductName: "Ultra Wireless Mouse Pro"})
		require.True(t, ok)
		assert.Equal(t, 101, p.ID)
	})

	t.Run("first catalog entry wins on multiple fuzzy hits", func(t *testing.T) {
		p, ok := m.Lookup(types.Transaction{ProductID: "PX", ProductName: "Mouse"})
		require.True(t, ok)
		assert.Equal(t, 101, p.ID, "catalog iteration order decides")
	})

	t.Run("no digits and no title hit means no match", func(t *testing.T) {
		_, ok := m.Lookup(types.Transaction{ProductID: "PROD", ProductName: "Standing Desk"})
		assert.False(t, ok)
	})
}

func TestEnricher_StrictPolicy(t *testing.T) {
	products := []Product{
		{ID: 101, Title: "Wireless Mouse", Category: strPtr("electronics"), Brand: strPtr("Logi"), Rating: floatPtr(4.5)},
	}
	api := config.DefaultConfig().API

	enricher := NewEnricher(NewMapping(products), api)
	enriched, matched := enricher.Enrich([]types.Transaction{
		{TransactionID: "T001", ProductID: "P101", ProductName: "Mouse"},
		{TransactionID: "T002", ProductID: "P999", ProductName: "Standing Desk"},
	})

	require.Len(t, enriched, 2)
	assert.Equal(t, 1, matched)

	// Matched: catalog values copied verbatim.
	assert.True(t, enriched[0].APIMatch)
	require.NotNil(t, enriched[0].APICategory)
	assert.Equal(t, "electronics", *enriched[0].APICategory)
	require.NotNil(t, enriched[0].APIBrand)
	assert.Equal(t, "Logi", *enriched[0].APIBrand)
	require.NotNil(t, enriched[0].APIRating)
	assert.Equal(t, 4.5, *enriched[0].APIRating)

	// Unmatched under strict: false and nil, no placeholders.
	assert.False(t, enriched[1].APIMatch)
	assert.Nil(t, enriched[1].APICategory)
	assert.Nil(t, enriched[1].APIBrand)
	assert.Nil(t, enriched[1].APIRating)
}

func TestEnricher_PlaceholderPolicy(t *testing.T) {
	api := config.DefaultConfig().API
	api.MatchPolicy = config.MatchPolicyPlaceholder

	enricher := NewEnricher(NewMapping(nil), api)
	enriched, matched := enricher.Enrich([]types.Transaction{
		{TransactionID: "T001", ProductID: "P101", ProductName: "Mouse"},
	})

	require.Len(t, enriched, 1)
	assert.Equal(t, 0, matched, "placeholder substitution is not a real match")

	assert.True(t, enriched[0].APIMatch)
	require.NotNil(t, enriched[0].APICategory)
	assert.Equal(t, "general", *enriched[0].APICategory)
	require.NotNil(t, enriched[0].APIBrand)
	assert.Equal(t, "Generic", *enriched[0].APIBrand)
	assert.Nil(t, enriched[0].APIRating)
}

func TestEnricher_EmptyCatalogIsValid(t *testing.T) {
	api := config.DefaultConfig().API
	enricher := NewEnricher(NewMapping(nil), api)

	enriched, matched := enricher.Enrich([]types.Transaction{
		{TransactionID: "T001", ProductID: "P101", ProductName: "Mouse"},
	})

	require.Len(t, enriched, 1)
	assert.Equal(t, 0, matched)
	assert.False(t, enriched[0].APIMatch)
}
