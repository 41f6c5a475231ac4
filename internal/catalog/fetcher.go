package catalog

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
)

var ErrEmptyCatalog = errors.New("catalog source returned no products")

// Fetch outcomes reported to the Recorder.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeEmpty   = "empty"
)

// Query is the server-side part of a catalog request.
type Query struct {
	Category string
	Search   string
	Sort     SortMode
	Page     int
	Limit    int
}

func QueryFromFacets(f Facets, limit int) Query {
	return Query{Category: f.Category, Search: f.Search, Sort: f.Sort, Page: 1, Limit: limit}
}

// Values renders the query in the catalog API's parameter format.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Category != "" && q.Category != CategoryAll {
		v.Set(ParamCategory, q.Category)
	}
	if q.Search != "" {
		v.Set(ParamSearch, q.Search)
	}
	if q.Sort != "" {
		v.Set(ParamSort, string(q.Sort))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// CacheKey is stable for equal queries.
func (q Query) CacheKey() string {
	return "catalog:products:" + q.Values().Encode()
}

type SourcePage struct {
	Products   []entity.Product `json:"products"`
	Pagination *Pagination      `json:"pagination,omitempty"`
}

// Source is a remote product list.
type Source interface {
	Name() string
	Fetch(ctx context.Context, q Query) (*SourcePage, error)
}

// Recorder receives catalog instrumentation events.
type Recorder interface {
	ObserveFetch(source, outcome string)
	ObserveFallback(reason string)
	ObservePipeline(d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveFetch(string, string)   {}
func (nopRecorder) ObserveFallback(string)        {}
func (nopRecorder) ObservePipeline(time.Duration) {}

type FetchResult struct {
	Products   []entity.Product
	Pagination Pagination
	Source     string
	Fallback   bool
}

// Fetcher wraps a Source so that callers always get a product list.
type Fetcher struct {
	source Source
	log    logger.Logger
	rec    Recorder
}

func NewFetcher(source Source, log logger.Logger, rec Recorder) *Fetcher {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Fetcher{source: source, log: log, rec: rec}
}

// Fetch never fails: errors and empty results are replaced by the static
// fallback catalog.
func (f *Fetcher) Fetch(ctx context.Context, q Query) FetchResult {
	page, err := f.source.Fetch(ctx, q)
	switch {
	case err != nil:
		f.rec.ObserveFetch(f.source.Name(), OutcomeError)
		f.log.Warnw("Catalog source failed, serving fallback catalog",
			"source", f.source.Name(), "category", q.Category, "search", q.Search, "error", err)
		return f.fallback(OutcomeError)
	case page == nil || len(page.Products) == 0:
		f.rec.ObserveFetch(f.source.Name(), OutcomeEmpty)
		f.log.Warnw("Catalog source returned no products, serving fallback catalog",
			"source", f.source.Name(), "category", q.Category, "search", q.Search)
		return f.fallback(OutcomeEmpty)
	}

	f.rec.ObserveFetch(f.source.Name(), OutcomeSuccess)
	res := FetchResult{Products: page.Products, Source: f.source.Name()}
	if page.Pagination != nil {
		res.Pagination = *page.Pagination
	} else {
		res.Pagination = Pagination{Page: 1, Limit: len(page.Products), Total: len(page.Products), TotalPages: 1}
	}
	return res
}

func (f *Fetcher) fallback(reason string) FetchResult {
	f.rec.ObserveFallback(reason)
	products := FallbackProducts()
	return FetchResult{
		Products:   products,
		Pagination: Pagination{Page: 1, Limit: len(products), Total: len(products), TotalPages: 1},
		Source:     "fallback",
		Fallback:   true,
	}
}

// RepositorySource serves the catalog from the product repository.
type RepositorySource struct {
	repo repository.ProductRepository
}

func NewRepositorySource(repo repository.ProductRepository) *RepositorySource {
	return &RepositorySource{repo: repo}
}

func (s *RepositorySource) Name() string { return "mongo" }

func (s *RepositorySource) Fetch(ctx context.Context, q Query) (*SourcePage, error) {
	res, err := s.repo.List(ctx, repository.ListProductsParams{
		Category: q.Category,
		Search:   q.Search,
		SortBy:   string(ParseSortMode(string(q.Sort))),
		Page:     q.Page,
		PageSize: q.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &SourcePage{
		Products: res.Products,
		Pagination: &Pagination{
			Page:       res.Page,
			Limit:      res.PageSize,
			Total:      int(res.TotalCount),
			TotalPages: res.TotalPages,
		},
	}, nil
}
