package catalog

import (
	"sort"
	"strings"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortName      SortKey = "name"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
)

// Filter describes one shop query. Zero-value fields pass everything through;
// nil price bounds are unbounded. Query text matches case-insensitively as a
// substring of the name, description, brand or any feature.
type Filter struct {
	Query    string
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	Sort     SortKey
}

// Apply returns the matching products in sorted order. The input slice is not
// modified. Ties keep their original relative order.
func (f Filter) Apply(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.matches(p) {
			out = append(out, p)
		}
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].createdTime().After(out[j].createdTime()) })
	default:
		// name ascending is the shop page default
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	}
	return out
}

func (f Filter) matches(p Product) bool {
	if f.Query != "" && !matchesQuery(p, f.Query) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Brand != "" && p.Brand != f.Brand {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}

func matchesQuery(p Product, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) {
		return true
	}
	for _, feature := range p.Features {
		if strings.Contains(strings.ToLower(feature), q) {
			return true
		}
	}
	return false
}
