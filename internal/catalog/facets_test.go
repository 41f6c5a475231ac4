package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFacets_DefaultsAndTrackedParams(t *testing.T) {
	f := ParseFacets(url.Values{}, testBounds)
	assert.Equal(t, DefaultFacets(testBounds), f)
	assert.Equal(t, CategoryAll, f.Category)
	assert.Equal(t, 1000.0, f.MaxPrice)
	assert.Equal(t, SortNewest, f.Sort)
	assert.Equal(t, SegmentAll, f.Segment)

	q, _ := url.ParseQuery("category=design&search=figma&sort=price-low&maxPrice=300&rating=4.5&type=license&segment=startups")
	f = ParseFacets(q, testBounds)
	assert.Equal(t, "design", f.Category)
	assert.Equal(t, "figma", f.Search)
	assert.Equal(t, SortPriceLow, f.Sort)
	assert.Equal(t, 300.0, f.MaxPrice)
	assert.Equal(t, 4.5, f.Rating)
	assert.Equal(t, TypeLicense, f.Type)
	assert.Equal(t, "startups", f.Segment)
}

func TestParseFacets_UnknownSortFallsBackToNewest(t *testing.T) {
	f := ParseFacets(url.Values{"sort": {"alphabetical"}, "maxPrice": {"cheap"}}, testBounds)
	assert.Equal(t, SortNewest, f.Sort)
	assert.Equal(t, testBounds.Max, f.MaxPrice)
}

func TestParseFacets_NonFiniteNumbersKeepDefaults(t *testing.T) {
	for _, raw := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "infinity"} {
		t.Run(raw, func(t *testing.T) {
			f := ParseFacets(url.Values{"maxPrice": {raw}, "rating": {raw}}, testBounds)
			assert.Equal(t, testBounds.Max, f.MaxPrice)
			assert.Zero(t, f.Rating)
			assert.Len(t, Apply(FallbackProducts(), f, testBounds), len(FallbackProducts()))
		})
	}
}

func TestFacetState_SettersAreIndependent(t *testing.T) {
	s := NewFacetState(testBounds)
	s.SetCategory("courses")
	s.SetSearch("flutter")
	s.SetRating(4)
	s.SetMaxPrice(400)
	s.SetType(TypeStreaming)
	s.SetSegment("education")
	s.SetSort(SortRating)

	f := s.Snapshot()
	assert.Equal(t, Facets{
		Search:   "flutter",
		Category: "courses",
		MaxPrice: 400,
		Rating:   4,
		Type:     TypeStreaming,
		Segment:  "education",
		Sort:     SortRating,
	}, f)

	s.SetSearch("")
	assert.Equal(t, "courses", s.Snapshot().Category)
	assert.Equal(t, SortRating, s.Snapshot().Sort)
}

func TestFacetState_ClearResetsEverythingAndRemovesTrackedParams(t *testing.T) {
	s := NewFacetState(testBounds)
	s.SetCategory("courses")
	s.SetSearch("flutter")
	s.SetSort(SortPopular)
	s.SetSegment("education")

	q := s.SyncQuery(url.Values{"utm_source": {"newsletter"}})
	assert.Equal(t, "courses", q.Get(ParamCategory))
	assert.Equal(t, "flutter", q.Get(ParamSearch))
	assert.Equal(t, "popular", q.Get(ParamSort))
	assert.False(t, q.Has(ParamSegment))

	s.Clear()
	assert.Equal(t, DefaultFacets(testBounds), s.Snapshot())

	q = s.SyncQuery(q)
	assert.False(t, q.Has(ParamCategory))
	assert.False(t, q.Has(ParamSearch))
	assert.False(t, q.Has(ParamSort))
	assert.Equal(t, "newsletter", q.Get("utm_source"))
}

func TestFacetState_URLRoundTrip(t *testing.T) {
	s := NewFacetState(testBounds)
	s.SetCategory("cybersecurity")
	s.SetSearch("firewall")
	s.SetSort(SortBestseller)

	q := s.SyncQuery(nil)
	restored := NewFacetStateFromQuery(q, testBounds).Snapshot()

	assert.Equal(t, "cybersecurity", restored.Category)
	assert.Equal(t, "firewall", restored.Search)
	assert.Equal(t, SortBestseller, restored.Sort)

	before := Apply(FallbackProducts(), s.Snapshot(), testBounds)
	after := Apply(FallbackProducts(), restored, testBounds)
	assert.Equal(t, ids(before), ids(after))
}

func TestFacets_EncodeAllRoundTrip(t *testing.T) {
	f := facetsWith(func(f *Facets) {
		f.MaxPrice = 450
		f.Rating = 4.7
		f.Type = TypeDownloadable
		f.Segment = "trending"
	})
	q := f.EncodeAll(nil, testBounds)
	assert.Equal(t, f, ParseFacets(q, testBounds))
}

func TestNeedsRefetch(t *testing.T) {
	base := DefaultFacets(testBounds)

	tests := []struct {
		name   string
		mutate func(f *Facets)
		want   bool
	}{
		{"category", func(f *Facets) { f.Category = "design" }, true},
		{"max price", func(f *Facets) { f.MaxPrice = 10 }, true},
		{"rating", func(f *Facets) { f.Rating = 3 }, true},
		{"type", func(f *Facets) { f.Type = TypeLicense }, true},
		{"sort", func(f *Facets) { f.Sort = SortRating }, true},
		{"search is client side", func(f *Facets) { f.Search = "cloud" }, false},
		{"segment is client side", func(f *Facets) { f.Segment = "cloud" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := base
			tt.mutate(&next)
			assert.Equal(t, tt.want, NeedsRefetch(base, next))
		})
	}
}
