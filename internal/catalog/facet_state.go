package catalog

import (
	"net/url"
	"sync"
)

// FacetState holds the seven independent facets of one listing view.
// Setters touch exactly one facet. It is safe for concurrent use.
type FacetState struct {
	mu     sync.RWMutex
	bounds PriceBounds
	f      Facets
}

func NewFacetState(bounds PriceBounds) *FacetState {
	return &FacetState{bounds: bounds, f: DefaultFacets(bounds)}
}

// NewFacetStateFromQuery initialises the state from a page URL query.
func NewFacetStateFromQuery(q url.Values, bounds PriceBounds) *FacetState {
	return &FacetState{bounds: bounds, f: ParseFacets(q, bounds)}
}

func (s *FacetState) Bounds() PriceBounds {
	return s.bounds
}

func (s *FacetState) Snapshot() Facets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f
}

func (s *FacetState) update(fn func(f *Facets)) {
	s.mu.Lock()
	fn(&s.f)
	s.mu.Unlock()
}

func (s *FacetState) SetSearch(v string) {
	s.update(func(f *Facets) { f.Search = v })
}

func (s *FacetState) SetCategory(v string) {
	s.update(func(f *Facets) { f.Category = v })
}

func (s *FacetState) SetMaxPrice(v float64) {
	s.update(func(f *Facets) { f.MaxPrice = v })
}

func (s *FacetState) SetRating(v float64) {
	s.update(func(f *Facets) { f.Rating = v })
}

func (s *FacetState) SetType(v ProductType) {
	s.update(func(f *Facets) { f.Type = v })
}

func (s *FacetState) SetSegment(v string) {
	s.update(func(f *Facets) { f.Segment = v })
}

func (s *FacetState) SetSort(v SortMode) {
	s.update(func(f *Facets) { f.Sort = ParseSortMode(string(v)) })
}

// Replace swaps in a whole facet set, e.g. one parsed from a request.
func (s *FacetState) Replace(f Facets) {
	s.update(func(cur *Facets) { *cur = f })
}

// Clear resets all facets to their defaults in one step.
func (s *FacetState) Clear() {
	s.update(func(f *Facets) { *f = DefaultFacets(s.bounds) })
}

// SyncQuery reflects the tracked facets into q and returns it. After Clear
// the tracked parameters are removed.
func (s *FacetState) SyncQuery(q url.Values) url.Values {
	return s.Snapshot().Encode(q)
}
