// Package view contains one controller per storefront page. Each controller
// fetches its own data on load, mutates server state through point requests
// and re-fetches to resync; none of them share a cache.
package view

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/padhusmiler/mstex/internal/api"
	"github.com/padhusmiler/mstex/internal/domain"
)

// FilterAll is the inactive value for every criterion.
const FilterAll = "all"

// PriceRanges are the brackets the storefront offers. The last one is
// effectively open-ended.
var PriceRanges = []string{FilterAll, "0-20", "20-30", "30-50", "50-999"}

// Filter holds the five conjunctive catalog criteria.
type Filter struct {
	Search     string
	Category   string
	Size       string
	Color      string
	PriceRange string
}

func NewFilter() Filter {
	return Filter{
		Category:   FilterAll,
		Size:       FilterAll,
		Color:      FilterAll,
		PriceRange: FilterAll,
	}
}

// Apply derives the filtered subset from the full list. Every active
// criterion must match; with all criteria inactive the input comes back
// whole.
func (f Filter) Apply(products []domain.Product) []domain.Product {
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (f Filter) matches(p domain.Product) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	if f.Category != FilterAll && p.Category != f.Category {
		return false
	}
	if f.Size != FilterAll && !contains(p.Sizes, f.Size) {
		return false
	}
	if f.Color != FilterAll && !contains(p.Colors, f.Color) {
		return false
	}
	if f.PriceRange != FilterAll {
		min, max, ok := parsePriceRange(f.PriceRange)
		if !ok {
			return false
		}
		if p.Price < min {
			return false
		}
		if max > 0 && p.Price > max {
			return false
		}
	}
	return true
}

// parsePriceRange reads "min-max". A missing upper bound yields max 0,
// which Apply treats as unbounded. A bracket that does not parse as numbers
// matches nothing.
func parsePriceRange(s string) (min, max float64, ok bool) {
	parts := strings.SplitN(s, "-", 2)
	min, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, false
	}
	if len(parts) == 2 && parts[1] != "" {
		if max, err = strconv.ParseFloat(parts[1], 64); err != nil {
			return 0, 0, false
		}
	}
	return min, max, true
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Catalog is the product browsing view: the full list is fetched once and
// every filter change recomputes the subset from it.
type Catalog struct {
	client *api.Client
	log    *zap.Logger

	products []domain.Product
	filter   Filter
}

func NewCatalog(client *api.Client, log *zap.Logger) *Catalog {
	return &Catalog{client: client, log: log, filter: NewFilter()}
}

// Load fetches the full product collection. On failure the view keeps an
// empty list, as the page does.
func (c *Catalog) Load(ctx context.Context) error {
	products, err := c.client.Products(ctx)
	if err != nil {
		c.log.Error("failed to load products", zap.Error(err))
		c.products = nil
		return err
	}
	c.products = products
	return nil
}

func (c *Catalog) Products() []domain.Product { return c.products }

func (c *Catalog) Filter() Filter { return c.filter }

func (c *Catalog) SetFilter(f Filter) { c.filter = f }

func (c *Catalog) SetSearch(s string)     { c.filter.Search = s }
func (c *Catalog) SetCategory(s string)   { c.filter.Category = s }
func (c *Catalog) SetSize(s string)       { c.filter.Size = s }
func (c *Catalog) SetColor(s string)      { c.filter.Color = s }
func (c *Catalog) SetPriceRange(s string) { c.filter.PriceRange = s }

func (c *Catalog) ClearFilters() { c.filter = NewFilter() }

// Filtered recomputes the visible subset from the unfiltered source.
func (c *Catalog) Filtered() []domain.Product {
	return c.filter.Apply(c.products)
}

// AllSizes returns the distinct sizes across the full list, sorted, for the
// size filter menu.
func (c *Catalog) AllSizes() []string {
	return distinct(c.products, func(p domain.Product) []string { return p.Sizes })
}

// AllColors returns the distinct colors across the full list, sorted.
func (c *Catalog) AllColors() []string {
	return distinct(c.products, func(p domain.Product) []string { return p.Colors })
}

func distinct(products []domain.Product, field func(domain.Product) []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		for _, v := range field(p) {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
	}
	sort.Strings(out)
	return out
}
