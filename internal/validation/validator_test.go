package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesworks/sales-analytics/internal/types"
)

func tx(id, productID, customerID, region string, qty int, price float64) types.Transaction {
	return types.Transaction{
		TransactionID: id,
		Date:          "2024-12-01",
		ProductID:     productID,
		ProductName:   "Widget",
		Quantity:      qty,
		UnitPrice:     price,
		CustomerID:    customerID,
		Region:        region,
	}
}

func TestValidateAndFilter_BusinessRules(t *testing.T) {
	tests := []struct {
		name       string
		input      []types.Transaction
		wantKept   int
		wantReason types.RejectReason
	}{
		{
			name:     "valid record passes",
			input:    []types.Transaction{tx("T001", "P101", "C001", "North", 2, 100)},
			wantKept: 1,
		},
		{
			name:       "transaction id without T prefix always excluded",
			input:      []types.Transaction{tx("X001", "P101", "C001", "North", 2, 100)},
			wantKept:   0,
			wantReason: types.ReasonBadPrefix,
		},
		{
			name:       "product id without P prefix excluded",
			input:      []types.Transaction{tx("T001", "Q101", "C001", "North", 2, 100)},
			wantKept:   0,
			wantReason: types.ReasonBadPrefix,
		},
		{
			name:       "customer id without C prefix excluded",
			input:      []types.Transaction{tx("T001", "P101", "D001", "North", 2, 100)},
			wantKept:   0,
			wantReason: types.ReasonBadPrefix,
		},
		{
			name:       "empty region excluded",
			input:      []types.Transaction{tx("T001", "P101", "C001", "", 2, 100)},
			wantKept:   0,
			wantReason: types.ReasonMissingField,
		},
		{
			name:       "zero quantity excluded",
			input:      []types.Transaction{tx("T001", "P101", "C001", "North", 0, 100)},
			wantKept:   0,
			wantReason: types.ReasonBadValue,
		},
		{
			name:       "negative price excluded",
			input:      []types.Transaction{tx("T001", "P101", "C001", "North", 2, -1)},
			wantKept:   0,
			wantReason: types.ReasonBadValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, summary, rejects := ValidateAndFilter(tt.input, Filters{})
			assert.Len(t, kept, tt.wantKept)
			assert.Equal(t, len(tt.input), summary.TotalInput)
			assert.Equal(t, len(tt.input)-tt.wantKept, summary.Invalid)
			if tt.wantReason != "" {
				assert.Equal(t, 1, rejects[tt.wantReason])
			}
		})
	}
}

func TestValidateAndFilter_Filters(t *testing.T) {
	input := []types.Transaction{
		tx("T001", "P101", "C001", "North", 2, 100), // amount 200
		tx("T002", "P102", "C002", "South", 1, 100), // amount 100
		tx("T003", "P103", "C003", "North", 5, 100), // amount 500
		tx("T004", "P104", "C004", "North", 1, 50),  // amount 50
	}

	min := 100.0
	max := 400.0

	kept, summary, _ := ValidateAndFilter(input, Filters{
		Region:    "North",
		MinAmount: &min,
		MaxAmount: &max,
	})

	// Region drops T002; min drops T004; max drops T003.
	require.Len(t, kept, 1)
	assert.Equal(t, "T001", kept[0].TransactionID)
	assert.Equal(t, 1, summary.FilteredByRegion)
	assert.Equal(t, 2, summary.FilteredByAmount)
	assert.Equal(t, 1, summary.FinalCount)
	assert.Equal(t, 0, summary.Invalid)
}

func TestValidateAndFilter_InclusiveBounds(t *testing.T) {
	input := []types.Transaction{tx("T001", "P101", "C001", "North", 2, 100)} // amount 200

	min := 200.0
	max := 200.0
	kept, _, _ := ValidateAndFilter(input, Filters{MinAmount: &min, MaxAmount: &max})
	assert.Len(t, kept, 1, "bounds are inclusive")
}

func TestValidateAndFilter_Idempotent(t *testing.T) {
	input := []types.Transaction{
		tx("T001", "P101", "C001", "North", 2, 100),
		tx("T002", "P102", "C002", "South", 1, 100),
		tx("T003", "P103", "C003", "North", 5, 100),
	}

	min := 150.0
	filters := Filters{Region: "North", MinAmount: &min}

	once, _, _ := ValidateAndFilter(input, filters)
	twice, summary, _ := ValidateAndFilter(once, filters)

	assert.Equal(t, once, twice)
	assert.Equal(t, 0, summary.FilteredByRegion)
	assert.Equal(t, 0, summary.FilteredByAmount)
}

func TestRegions(t *testing.T) {
	input := []types.Transaction{
		tx("T001", "P101", "C001", "West", 1, 1),
		tx("T002", "P102", "C002", "East", 1, 1),
		tx("T003", "P103", "C003", "West", 1, 1),
	}
	assert.Equal(t, []string{"East", "West"}, Regions(input))
}

func TestAmountRange(t *testing.T) {
	_, _, ok := AmountRange(nil)
	assert.False(t, ok)

	input := []types.Transaction{
		tx("T001", "P101", "C001", "North", 2, 100), // 200
		tx("T002", "P102", "C002", "South", 1, 50),  // 50
		tx("T003", "P103", "C003", "East", 3, 300),  // 900
	}
	min, max, ok := AmountRange(input)
	require.True(t, ok)
	assert.Equal(t, 50.0, min)
	assert.Equal(t, 900.0, max)
}
