package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// scriptedFetcher returns per-category results and can hold a category's
// response until released.
type scriptedFetcher struct {
	mu      sync.Mutex
	queries []Query
	results map[string]FetchResult
	gates   map[string]chan struct{}
}

func (f *scriptedFetcher) Fetch(ctx context.Context, q Query) FetchResult {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	gate := f.gates[q.Category]
	res := f.results[q.Category]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return res
}

func (f *scriptedFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func resultOf(products ...entity.Product) FetchResult {
	return FetchResult{Products: products, Source: "scripted"}
}

func TestBrowser_RefetchOnlyOnTriggers(t *testing.T) {
	fetcher := &scriptedFetcher{results: map[string]FetchResult{
		CategoryAll: {Products: FallbackProducts(), Source: "scripted"},
		"courses":   resultOf(FallbackProducts()[0], FallbackProducts()[7]),
	}}
	state := NewFacetState(testBounds)
	b := NewBrowser(fetcher, Pipeline{Bounds: testBounds, Segments: DefaultSegmentTable()}, state, 100, nil)

	view := b.Refresh(context.Background())
	assert.Len(t, view.Products, 10)
	assert.Equal(t, 1, fetcher.calls())

	state.SetSearch("python")
	view = b.Refresh(context.Background())
	assert.Equal(t, []string{"2007", "2006"}, ids(view.Products))
	assert.Equal(t, 1, fetcher.calls(), "search is applied to the held list")

	state.SetSegment("finance")
	b.Refresh(context.Background())
	assert.Equal(t, 1, fetcher.calls(), "segment is applied to the held list")

	state.Clear()
	state.SetCategory("courses")
	view = b.Refresh(context.Background())
	assert.Equal(t, 2, fetcher.calls())
	assert.Equal(t, []string{"2008", "2001"}, ids(view.Products))

	state.SetSort(SortPriceLow)
	view = b.Refresh(context.Background())
	assert.Equal(t, 3, fetcher.calls())
	assert.Equal(t, []string{"2008", "2001"}, ids(view.Products))
}

func TestBrowser_DiscardsStaleResponse(t *testing.T) {
	defer goleak.VerifyNone(t)

	slow := make(chan struct{})
	fetcher := &scriptedFetcher{
		results: map[string]FetchResult{
			"design":        resultOf(entity.Product{ID: "stale", Category: &entity.Category{Slug: "design"}}),
			"cybersecurity": resultOf(entity.Product{ID: "fresh", Category: &entity.Category{Slug: "cybersecurity"}}),
		},
		gates: map[string]chan struct{}{"design": slow},
	}
	state := NewFacetState(testBounds)
	b := NewBrowser(fetcher, Pipeline{Bounds: testBounds}, state, 100, nil)

	state.SetCategory("design")
	done := make(chan View)
	go func() {
		done <- b.Refresh(context.Background())
	}()

	require.Eventually(t, func() bool { return fetcher.calls() == 1 }, time.Second, 5*time.Millisecond)

	state.SetCategory("cybersecurity")
	fresh := b.Refresh(context.Background())
	assert.Equal(t, []string{"fresh"}, ids(fresh.Products))

	close(slow)
	staleView := <-done
	assert.Equal(t, []string{"fresh"}, ids(staleView.Products), "late response must not replace the newer list")

	view := b.Refresh(context.Background())
	assert.Equal(t, []string{"fresh"}, ids(view.Products))
	assert.Equal(t, 2, fetcher.calls())
}

func TestBrowser_AcceptOrdering(t *testing.T) {
	b := NewBrowser(&scriptedFetcher{}, Pipeline{Bounds: testBounds}, NewFacetState(testBounds), 10, nil)
	f := DefaultFacets(testBounds)

	assert.True(t, b.accept(2, f, resultOf(entity.Product{ID: "two"})))
	assert.False(t, b.accept(1, f, resultOf(entity.Product{ID: "one"})))
	assert.True(t, b.accept(3, f, resultOf(entity.Product{ID: "three"})))
	assert.Equal(t, "three", b.held.Products[0].ID)
}
