package catalog

import (
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBounds = PriceBounds{Min: 0, Max: 1000}

func ids(products []entity.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func facetsWith(mutate func(f *Facets)) Facets {
	f := DefaultFacets(testBounds)
	mutate(&f)
	return f
}

func TestApply_SampleCatalogScenarios(t *testing.T) {
	catalog := FallbackProducts()

	tests := []struct {
		name string
		f    Facets
		want []string
	}{
		{
			name: "category through derived name slug",
			f:    facetsWith(func(f *Facets) { f.Category = "cybersecurity" }),
			want: []string{"2005", "2002"},
		},
		{
			name: "segment lookup",
			f:    facetsWith(func(f *Facets) { f.Segment = "finance" }),
			want: []string{"2009", "2007"},
		},
		{
			name: "rating below every sample rating",
			f:    facetsWith(func(f *Facets) { f.Rating = 4 }),
			want: []string{"2010", "2009", "2008", "2007", "2006", "2005", "2004", "2003", "2002", "2001"},
		},
		{
			name: "price ceiling",
			f:    facetsWith(func(f *Facets) { f.MaxPrice = 300 }),
			want: []string{"2009", "2004"},
		},
		{
			name: "search matches tags case-insensitively",
			f:    facetsWith(func(f *Facets) { f.Search = "PYTHON" }),
			want: []string{"2007", "2006"},
		},
		{
			name: "downloadable type rule",
			f:    facetsWith(func(f *Facets) { f.Type = TypeDownloadable }),
			want: []string{"2010", "2009", "2007", "2004", "2002"},
		},
		{
			name: "streaming type rule",
			f:    facetsWith(func(f *Facets) { f.Type = TypeStreaming }),
			want: []string{"2008", "2001"},
		},
		{
			name: "license type rule",
			f:    facetsWith(func(f *Facets) { f.Type = TypeLicense }),
			want: []string{"2009", "2005", "2004"},
		},
		{
			name: "unknown segment is empty",
			f:    facetsWith(func(f *Facets) { f.Segment = "gaming" }),
			want: []string{},
		},
		{
			name: "facets combine with AND",
			f: facetsWith(func(f *Facets) {
				f.Segment = "security"
				f.Type = TypeLicense
			}),
			want: []string{"2005"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(catalog, tt.f, testBounds)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_PriceLowOrdering(t *testing.T) {
	got := Apply(FallbackProducts(), facetsWith(func(f *Facets) { f.Sort = SortPriceLow }), testBounds)
	require.Len(t, got, 10)
	assert.Equal(t, "2004", got[0].ID)
	assert.Equal(t, "259.00", got[0].Price)
	assert.Equal(t, "2007", got[9].ID)
	assert.Equal(t, "549.00", got[9].Price)

	got = Apply(FallbackProducts(), facetsWith(func(f *Facets) { f.Sort = SortPriceHigh }), testBounds)
	assert.Equal(t, "2007", got[0].ID)
	assert.Equal(t, "2004", got[9].ID)
}

func TestApply_OutputIsSubsetOfInput(t *testing.T) {
	catalog := FallbackProducts()
	input := make(map[string]bool, len(catalog))
	for _, p := range catalog {
		input[p.ID] = true
	}

	categories := []string{CategoryAll, "courses", "design", "nope"}
	types := []ProductType{TypeAny, TypeDownloadable, TypeStreaming, TypeLicense}
	segments := []string{SegmentAll, "trending", "design"}
	sorts := []SortMode{SortNewest, SortPriceLow, SortPriceHigh, SortRating, SortPopular, SortBestseller}

	for _, c := range categories {
		for _, ty := range types {
			for _, s := range segments {
				for _, so := range sorts {
					f := facetsWith(func(f *Facets) {
						f.Category, f.Type, f.Segment, f.Sort = c, ty, s, so
					})
					got := Apply(catalog, f, testBounds)
					assert.LessOrEqual(t, len(got), len(catalog))
					for _, p := range got {
						assert.True(t, input[p.ID], "pipeline invented product %s", p.ID)
					}
					if s != SegmentAll {
						members := DefaultSegmentTable()
						for _, p := range got {
							assert.True(t, members.Contains(s, p.ID))
						}
					}
					assert.Equal(t, ids(got), ids(Apply(catalog, f, testBounds)), "pipeline must be idempotent")
				}
			}
		}
	}
}

func TestApply_MaxPriceAtBoundIsNoFilter(t *testing.T) {
	catalog := append(FallbackProducts(), entity.Product{ID: "9001", Price: "1500.00", CreatedAt: time.Unix(0, 0)})

	atMax := Apply(catalog, facetsWith(func(f *Facets) { f.MaxPrice = testBounds.Max }), testBounds)
	assert.Len(t, atMax, len(catalog))

	belowMax := Apply(catalog, facetsWith(func(f *Facets) { f.MaxPrice = testBounds.Max - 1 }), testBounds)
	assert.Len(t, belowMax, len(catalog)-1)
}

func TestApply_ClearedFacetsReturnFullListNewestFirst(t *testing.T) {
	state := NewFacetState(testBounds)
	state.SetCategory("design")
	state.SetRating(4.9)
	state.SetSort(SortPriceHigh)
	state.Clear()

	got := Apply(FallbackProducts(), state.Snapshot(), testBounds)
	require.Len(t, got, 10)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt))
	}
}

func TestApply_MalformedNumbersAreKeptAndSortAsZero(t *testing.T) {
	products := []entity.Product{
		{ID: "a", Price: "10.00", AverageRating: "4.5"},
		{ID: "b", Price: "not-a-price", AverageRating: "??"},
		{ID: "c", Price: "5.00", AverageRating: "3"},
	}

	got := Apply(products, facetsWith(func(f *Facets) { f.Sort = SortPriceLow }), testBounds)
	assert.Equal(t, []string{"b", "c", "a"}, ids(got))

	got = Apply(products, facetsWith(func(f *Facets) { f.Sort = SortRating }), testBounds)
	assert.Equal(t, []string{"a", "c", "b"}, ids(got))

	got = Apply(products, facetsWith(func(f *Facets) { f.Rating = 1 }), testBounds)
	assert.Equal(t, []string{"a", "c"}, ids(got))
}

func TestApply_DoesNotMutateInputAndIsStable(t *testing.T) {
	products := []entity.Product{
		{ID: "x", Price: "20.00", TotalReviews: 3},
		{ID: "y", Price: "10.00", TotalReviews: 3},
		{ID: "z", Price: "20.00", TotalReviews: 3},
	}
	before := ids(products)

	got := Apply(products, facetsWith(func(f *Facets) { f.Sort = SortPriceHigh }), testBounds)
	assert.Equal(t, []string{"x", "z", "y"}, ids(got))
	assert.Equal(t, before, ids(products))

	got = Apply(products, facetsWith(func(f *Facets) { f.Sort = SortPopular }), testBounds)
	assert.Equal(t, []string{"x", "y", "z"}, ids(got))
}

func TestApply_BestsellerPrefersTotalSales(t *testing.T) {
	sales := func(n int) *int { return &n }
	products := []entity.Product{
		{ID: "reviews-only", TotalReviews: 50},
		{ID: "big-seller", TotalReviews: 1, TotalSales: sales(100)},
		{ID: "small-seller", TotalReviews: 90, TotalSales: sales(10)},
	}
	got := Apply(products, facetsWith(func(f *Facets) { f.Sort = SortBestseller }), testBounds)
	assert.Equal(t, []string{"big-seller", "reviews-only", "small-seller"}, ids(got))
}

func TestApply_ExplicitProductTypeWins(t *testing.T) {
	products := []entity.Product{
		{ID: "meta-license", Metadata: map[string]interface{}{entity.MetaProductType: "license"}},
		{ID: "zip-but-streaming", Metadata: map[string]interface{}{
			entity.MetaFileType:    "ZIP",
			entity.MetaProductType: "streaming",
		}},
	}

	got := Apply(products, facetsWith(func(f *Facets) { f.Type = TypeLicense }), testBounds)
	assert.Equal(t, []string{"meta-license"}, ids(got))

	got = Apply(products, facetsWith(func(f *Facets) { f.Type = TypeDownloadable }), testBounds)
	assert.Empty(t, got)

	got = Apply(products, facetsWith(func(f *Facets) { f.Type = TypeStreaming }), testBounds)
	assert.Equal(t, []string{"zip-but-streaming"}, ids(got))
}

func TestApply_CategoryMatchesSlugOrDerivedName(t *testing.T) {
	products := []entity.Product{
		{ID: "api", Category: &entity.Category{Name: "Cloud", Slug: "cloud-computing"}},
		{ID: "static", Category: &entity.Category{Name: "Cloud Computing"}},
		{ID: "other", Category: &entity.Category{Name: "Design", Slug: "design"}},
	}
	got := Apply(products, facetsWith(func(f *Facets) { f.Category = "cloud-computing" }), testBounds)
	assert.ElementsMatch(t, []string{"api", "static"}, ids(got))
}

func TestPipeline_CustomSegments(t *testing.T) {
	pl := Pipeline{Bounds: testBounds, Segments: NewSegmentTable(map[string][]string{"picks": {"2003"}})}
	got := pl.Run(FallbackProducts(), facetsWith(func(f *Facets) { f.Segment = "picks" }))
	assert.Equal(t, []string{"2003"}, ids(got))

	pl.Segments = nil
	assert.Empty(t, pl.Run(FallbackProducts(), facetsWith(func(f *Facets) { f.Segment = "picks" })))
}
