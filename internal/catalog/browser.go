package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
)

// ProductFetcher is satisfied by *Fetcher.
type ProductFetcher interface {
	Fetch(ctx context.Context, q Query) FetchResult
}

type View struct {
	Facets   Facets
	Products []entity.Product
	Source   string
	Fallback bool
	// Fetched is the size of the held list; SourceTotal is how many products
	// the source matched server-side. Fetched < SourceTotal means the list
	// was capped by the fetch limit.
	Fetched     int
	SourceTotal int
}

// Browser drives one listing view: it holds the facet state and the last
// fetched list, refetches on trigger changes and filters client-side.
//
// Every fetch is numbered. A response is applied only if no newer fetch has
// been applied already, so a slow stale response cannot overwrite the list
// of a later facet change.
type Browser struct {
	fetcher  ProductFetcher
	pipeline Pipeline
	state    *FacetState
	limit    int
	rec      Recorder

	seq atomic.Uint64

	mu          sync.Mutex
	applied     uint64
	held        FetchResult
	fetchedWith *Facets
}

func NewBrowser(fetcher ProductFetcher, pipeline Pipeline, state *FacetState, limit int, rec Recorder) *Browser {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Browser{fetcher: fetcher, pipeline: pipeline, state: state, limit: limit, rec: rec}
}

func (b *Browser) State() *FacetState {
	return b.state
}

// Refresh fetches when needed and returns the filtered, sorted view of the
// held list under the current facets.
func (b *Browser) Refresh(ctx context.Context) View {
	facets := b.state.Snapshot()

	b.mu.Lock()
	stale := b.fetchedWith == nil || NeedsRefetch(*b.fetchedWith, facets)
	b.mu.Unlock()

	if stale {
		seq := b.seq.Add(1)
		res := b.fetcher.Fetch(ctx, QueryFromFacets(facets, b.limit))
		b.accept(seq, facets, res)
	}
	return b.view(b.state.Snapshot())
}

// accept stores res unless a newer fetch was applied first. It reports
// whether res was kept.
func (b *Browser) accept(seq uint64, facets Facets, res FetchResult) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if seq < b.applied {
		return false
	}
	b.applied = seq
	b.held = res
	b.fetchedWith = &facets
	return true
}

func (b *Browser) view(facets Facets) View {
	b.mu.Lock()
	held := b.held
	b.mu.Unlock()

	start := time.Now()
	products := b.pipeline.Run(held.Products, facets)
	b.rec.ObservePipeline(time.Since(start))

	return View{
		Facets:      facets,
		Products:    products,
		Source:      held.Source,
		Fallback:    held.Fallback,
		Fetched:     len(held.Products),
		SourceTotal: held.Pagination.Total,
	}
}
