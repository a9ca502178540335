package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padhusmiler/mstex/internal/domain"
)

func sampleProducts() []domain.Product {
	return []domain.Product{
		{
			ID: "p1", Name: "Classic Crew Tee", Description: "Everyday cotton t-shirt",
			Category: "men", Price: 25,
			Sizes: []string{"S", "M", "L"}, Colors: []string{"Black", "White"},
		},
		{
			ID: "p2", Name: "Relaxed Fit Top", Description: "Lightweight knit top",
			Category: "women", Price: 45,
			Sizes: []string{"XS", "S"}, Colors: []string{"Pink"},
		},
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter_DefaultsReturnEverything(t *testing.T) {
	products := sampleProducts()
	got := NewFilter().Apply(products)
	assert.Equal(t, ids(products), ids(got))
}

func TestFilter_Criteria(t *testing.T) {
	products := sampleProducts()

	tests := []struct {
		name   string
		mutate func(*Filter)
		want   []string
	}{
		{"category men", func(f *Filter) { f.Category = "men" }, []string{"p1"}},
		{"category women", func(f *Filter) { f.Category = "women" }, []string{"p2"}},
		{"price 20-30", func(f *Filter) { f.PriceRange = "20-30" }, []string{"p1"}},
		{"price 50-999 matches nothing here", func(f *Filter) { f.PriceRange = "50-999" }, nil},
		{"price bracket bounds are inclusive", func(f *Filter) { f.PriceRange = "25-45" }, []string{"p1", "p2"}},
		{"open upper bound matches everything above min", func(f *Filter) { f.PriceRange = "30" }, []string{"p2"}},
		{"search matches name", func(f *Filter) { f.Search = "crew" }, []string{"p1"}},
		{"search matches description", func(f *Filter) { f.Search = "KNIT" }, []string{"p2"}},
		{"search misses", func(f *Filter) { f.Search = "hoodie" }, nil},
		{"garbage bracket matches nothing", func(f *Filter) { f.PriceRange = "garbage" }, nil},
		{"size membership", func(f *Filter) { f.Size = "M" }, []string{"p1"}},
		{"size shared by both", func(f *Filter) { f.Size = "S" }, []string{"p1", "p2"}},
		{"color membership", func(f *Filter) { f.Color = "Pink" }, []string{"p2"}},
		{
			"filters are conjunctive",
			func(f *Filter) { f.Size = "S"; f.Category = "men" },
			[]string{"p1"},
		},
		{
			"conjunction can be empty",
			func(f *Filter) { f.Category = "men"; f.Color = "Pink" },
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter()
			tt.mutate(&f)
			got := ids(f.Apply(products))
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParsePriceRange(t *testing.T) {
	min, max, ok := parsePriceRange("20-30")
	require.True(t, ok)
	assert.Equal(t, 20.0, min)
	assert.Equal(t, 30.0, max)

	min, max, ok = parsePriceRange("50")
	require.True(t, ok)
	assert.Equal(t, 50.0, min)
	assert.Zero(t, max)

	_, _, ok = parsePriceRange("cheap")
	assert.False(t, ok)

	_, _, ok = parsePriceRange("10-lots")
	assert.False(t, ok)
}

func TestCatalog_DistinctSizesAndColors(t *testing.T) {
	c := &Catalog{products: sampleProducts(), filter: NewFilter()}

	assert.Equal(t, []string{"L", "M", "S", "XS"}, c.AllSizes())
	assert.Equal(t, []string{"Black", "Pink", "White"}, c.AllColors())
}

func TestCatalog_ClearFilters(t *testing.T) {
	c := &Catalog{products: sampleProducts(), filter: NewFilter()}
	c.SetSearch("crew")
	c.SetCategory("men")
	c.SetPriceRange("20-30")
	require.Len(t, c.Filtered(), 1)

	c.ClearFilters()
	assert.Len(t, c.Filtered(), 2)
	assert.Equal(t, NewFilter(), c.Filter())
}
