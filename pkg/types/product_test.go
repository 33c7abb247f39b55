package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestProductFilterMatch(t *testing.T) {
	aspirin := Product{
		Name:                 "Aspirin 500mg",
		Description:          "Pain relief tablets",
		SKU:                  "ASP-500",
		Category:             "analgesic",
		Tags:                 []string{"otc", "headache"},
		Stock:                5,
		MinimumStock:         10,
		Status:               ProductActive,
		RequiresPrescription: false,
	}
	amoxicillin := Product{
		Name:                 "Amoxicillin",
		SKU:                  "AMX-250",
		Category:             "antibiotic",
		Stock:                20,
		MinimumStock:         10,
		Status:               ProductActive,
		RequiresPrescription: true,
	}

	tests := []struct {
		name    string
		filter  ProductFilter
		product Product
		want    bool
	}{
		{name: "zero filter matches", filter: ProductFilter{}, product: aspirin, want: true},
		{name: "search is case insensitive on name", filter: ProductFilter{Search: "ASPIRIN"}, product: aspirin, want: true},
		{name: "search covers sku", filter: ProductFilter{Search: "amx"}, product: amoxicillin, want: true},
		{name: "search covers tags", filter: ProductFilter{Search: "headache"}, product: aspirin, want: true},
		{name: "search covers description", filter: ProductFilter{Search: "relief"}, product: aspirin, want: true},
		{name: "search misses", filter: ProductFilter{Search: "ibuprofen"}, product: aspirin, want: false},
		{name: "blank search is inactive", filter: ProductFilter{Search: "   "}, product: aspirin, want: true},
		{name: "category exact", filter: ProductFilter{Category: "antibiotic"}, product: amoxicillin, want: true},
		{name: "category mismatch", filter: ProductFilter{Category: "antibiotic"}, product: aspirin, want: false},
		{name: "status mismatch", filter: ProductFilter{Status: ProductDiscontinued}, product: aspirin, want: false},
		{name: "prescription true", filter: ProductFilter{RequiresPrescription: boolPtr(true)}, product: amoxicillin, want: true},
		{name: "prescription false excludes rx", filter: ProductFilter{RequiresPrescription: boolPtr(false)}, product: amoxicillin, want: false},
		{name: "low stock includes stock below minimum", filter: ProductFilter{LowStock: true}, product: aspirin, want: true},
		{name: "low stock excludes stock above minimum", filter: ProductFilter{LowStock: true}, product: amoxicillin, want: false},
		{name: "low stock includes stock equal to minimum", filter: ProductFilter{LowStock: true}, product: Product{Stock: 10, MinimumStock: 10}, want: true},
		{name: "predicates are anded", filter: ProductFilter{Search: "aspirin", Category: "antibiotic"}, product: aspirin, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(tt.product))
		})
	}
}

func TestProductFilterIsZero(t *testing.T) {
	assert.True(t, ProductFilter{}.IsZero())
	assert.True(t, ProductFilter{Search: " "}.IsZero())
	assert.False(t, ProductFilter{LowStock: true}.IsZero())
	assert.False(t, ProductFilter{RequiresPrescription: boolPtr(false)}.IsZero())
}

func TestProductPatchApply(t *testing.T) {
	orig := Product{ID: "p1", Name: "Aspirin", Stock: 5, Tags: []string{"otc"}}
	stock := 12
	name := "Aspirin Forte"

	got := ProductPatch{Stock: &stock, Name: &name, Tags: []string{"otc", "forte"}}.Apply(orig)

	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, "Aspirin Forte", got.Name)
	assert.Equal(t, 12, got.Stock)
	assert.Equal(t, []string{"otc", "forte"}, got.Tags)
	assert.Equal(t, 5, orig.Stock, "original must not be mutated")
	assert.Equal(t, []string{"otc"}, orig.Tags)
}

func TestProductValidate(t *testing.T) {
	assert.ErrorIs(t, Product{}.Validate(), ErrInvalidName)
	assert.ErrorIs(t, Product{Name: "x", Status: "gone"}.Validate(), ErrInvalidStatus)
	assert.ErrorIs(t, Product{Name: "x", Stock: -1}.Validate(), ErrInvalidData)
	assert.NoError(t, Product{Name: "x", Status: ProductActive}.Validate())
}

func TestParseStatuses(t *testing.T) {
	s, err := ParseWishlistStatus(" Ordered ")
	require.NoError(t, err)
	assert.Equal(t, WishlistOrdered, s)

	_, err = ParseOrderStatus("shipped")
	assert.True(t, errors.Is(err, ErrInvalidStatus))

	q, err := ParseQuotationStatus("accepted")
	require.NoError(t, err)
	assert.Equal(t, QuotationAccepted, q)

	p, err := ParseProductStatus("discontinued")
	require.NoError(t, err)
	assert.Equal(t, ProductDiscontinued, p)
}
