package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

type SortMode string

const (
	SortNewest     SortMode = "newest"
	SortPriceLow   SortMode = "price-low"
	SortPriceHigh  SortMode = "price-high"
	SortRating     SortMode = "rating"
	SortPopular    SortMode = "popular"
	SortBestseller SortMode = "bestseller"
)

// ParseSortMode maps unknown or empty values to SortNewest.
func ParseSortMode(s string) SortMode {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case SortNewest, SortPriceLow, SortPriceHigh, SortRating, SortPopular, SortBestseller:
		return m
	}
	return SortNewest
}

type ProductType string

const (
	TypeAny          ProductType = ""
	TypeDownloadable ProductType = "downloadable"
	TypeStreaming    ProductType = "streaming"
	TypeLicense      ProductType = "license"
)

const (
	CategoryAll = "all"
	SegmentAll  = "all"
)

// Query parameters of the catalog page. The first three are the public,
// bookmarkable contract.
const (
	ParamCategory = "category"
	ParamSearch   = "search"
	ParamSort     = "sort"
	ParamMaxPrice = "maxPrice"
	ParamRating   = "rating"
	ParamType     = "type"
	ParamSegment  = "segment"
)

var trackedParams = []string{ParamCategory, ParamSearch, ParamSort}

// PriceBounds is the configured range of the price control. A MaxPrice facet
// equal to Max means no price filter.
type PriceBounds struct {
	Min float64
	Max float64
}

type Facets struct {
	Search   string      `json:"search"`
	Category string      `json:"category"`
	MaxPrice float64     `json:"maxPrice"`
	Rating   float64     `json:"rating"`
	Type     ProductType `json:"type"`
	Segment  string      `json:"segment"`
	Sort     SortMode    `json:"sort"`
}

func DefaultFacets(bounds PriceBounds) Facets {
	return Facets{
		Category: CategoryAll,
		MaxPrice: bounds.Max,
		Type:     TypeAny,
		Segment:  SegmentAll,
		Sort:     SortNewest,
	}
}

// ParseFacets builds facets from URL query parameters. Missing or malformed
// values keep their defaults.
func ParseFacets(q url.Values, bounds PriceBounds) Facets {
	f := DefaultFacets(bounds)
	if v := strings.TrimSpace(q.Get(ParamCategory)); v != "" {
		f.Category = v
	}
	f.Search = q.Get(ParamSearch)
	if v := q.Get(ParamSort); v != "" {
		f.Sort = ParseSortMode(v)
	}
	if v, ok := parseFinite(q.Get(ParamMaxPrice)); ok {
		f.MaxPrice = v
	}
	if v, ok := parseFinite(q.Get(ParamRating)); ok {
		f.Rating = v
	}
	if v := q.Get(ParamType); v != "" {
		f.Type = ProductType(strings.ToLower(v))
	}
	if v := strings.TrimSpace(q.Get(ParamSegment)); v != "" {
		f.Segment = v
	}
	return f
}

// parseFinite rejects NaN and infinities, which would make every price or
// rating comparison false.
func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Encode writes the tracked parameters into q, deleting those at their
// default value. Untracked parameters in q are left alone.
func (f Facets) Encode(q url.Values) url.Values {
	if q == nil {
		q = url.Values{}
	}
	for _, p := range trackedParams {
		q.Del(p)
	}
	if f.Category != "" && f.Category != CategoryAll {
		q.Set(ParamCategory, f.Category)
	}
	if f.Search != "" {
		q.Set(ParamSearch, f.Search)
	}
	if f.Sort != "" && f.Sort != SortNewest {
		q.Set(ParamSort, string(f.Sort))
	}
	return q
}

// EncodeAll is Encode plus the client-side facets, for API clients that
// want a fully reproducible request.
func (f Facets) EncodeAll(q url.Values, bounds PriceBounds) url.Values {
	q = f.Encode(q)
	for _, p := range []string{ParamMaxPrice, ParamRating, ParamType, ParamSegment} {
		q.Del(p)
	}
	if f.MaxPrice != bounds.Max {
		q.Set(ParamMaxPrice, strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.Rating > 0 {
		q.Set(ParamRating, strconv.FormatFloat(f.Rating, 'f', -1, 64))
	}
	if f.Type != TypeAny {
		q.Set(ParamType, string(f.Type))
	}
	if f.Segment != "" && f.Segment != SegmentAll {
		q.Set(ParamSegment, f.Segment)
	}
	return q
}

// NeedsRefetch reports whether moving from prev to next changes a facet the
// remote catalog request depends on. Search and segment are applied to the
// held list only.
func NeedsRefetch(prev, next Facets) bool {
	return prev.Category != next.Category ||
		prev.MaxPrice != next.MaxPrice ||
		prev.Rating != next.Rating ||
		prev.Type != next.Type ||
		prev.Sort != next.Sort
}
