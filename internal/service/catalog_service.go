package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/catalog"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/tracer"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"go.opentelemetry.io/otel/attribute"
)

const relatedLimit = 4

// BrowseResult pages the facet-matched products. CatalogTotal is the
// server-side match count of the category and search; Truncated reports
// that only the first fetch-limit products of it, in the requested sort
// order, were filtered.
type BrowseResult struct {
	Products     []entity.Product   `json:"products"`
	Pagination   catalog.Pagination `json:"pagination"`
	Facets       catalog.Facets     `json:"facets"`
	Source       string             `json:"source"`
	Fallback     bool               `json:"fallback"`
	CatalogTotal int                `json:"catalogTotal"`
	Truncated    bool               `json:"truncated"`
}

// PricedProduct is a product with its best live deal applied.
type PricedProduct struct {
	entity.Product
	FinalPrice      string       `json:"finalPrice"`
	DiscountPercent int          `json:"discountPercent"`
	Deal            *entity.Deal `json:"deal,omitempty"`
}

type ProductDetail struct {
	Product PricedProduct    `json:"product"`
	Related []entity.Product `json:"related"`
}

type CatalogService interface {
	Bounds() catalog.PriceBounds
	Browse(ctx context.Context, facets catalog.Facets, page, perPage int) (*BrowseResult, error)
	GetProduct(ctx context.Context, slugOrID string) (*ProductDetail, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
	FacetMetadata(ctx context.Context, facets catalog.Facets) (*catalog.FacetMetadata, error)
	ActiveDeals(ctx context.Context) ([]entity.Deal, error)
	ActiveAnnouncements(ctx context.Context) ([]entity.Announcement, error)
	PriceWithDeals(ctx context.Context, product entity.Product) PricedProduct
}

type CatalogServiceDeps struct {
	Fetcher       catalog.ProductFetcher
	Segments      *catalog.SegmentTable
	Bounds        catalog.PriceBounds
	FetchLimit    int
	Recorder      catalog.Recorder
	Products      repository.ProductRepository
	Categories    repository.CategoryRepository
	Deals         repository.DealRepository
	Announcements repository.AnnouncementRepository
	Log           logger.Logger
	Now           func() time.Time
}

type catalogService struct {
	fetcher       catalog.ProductFetcher
	segments      *catalog.SegmentTable
	pipeline      catalog.Pipeline
	limit         int
	rec           catalog.Recorder
	products      repository.ProductRepository
	categories    repository.CategoryRepository
	deals         repository.DealRepository
	announcements repository.AnnouncementRepository
	pricer        *dealPricer
	log           logger.Logger
	now           func() time.Time
}

func NewCatalogService(deps CatalogServiceDeps) CatalogService {
	segments := deps.Segments
	if segments == nil {
		segments = catalog.DefaultSegmentTable()
	}
	limit := deps.FetchLimit
	if limit <= 0 {
		limit = catalog.MaxPerPage
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &catalogService{
		fetcher:       deps.Fetcher,
		segments:      segments,
		pipeline:      catalog.Pipeline{Bounds: deps.Bounds, Segments: segments},
		limit:         limit,
		rec:           deps.Recorder,
		products:      deps.Products,
		categories:    deps.Categories,
		deals:         deps.Deals,
		announcements: deps.Announcements,
		pricer:        newDealPricer(deps.Deals, now, deps.Log),
		log:           deps.Log,
		now:           now,
	}
}

func (s *catalogService) Bounds() catalog.PriceBounds {
	return s.pipeline.Bounds
}

// Browse fetches the category page, applies every facet and returns the
// requested page of the result. Each call is stateless and runs a single
// fetch through a fresh Browser; stale-response sequencing only comes into
// play for a Browser kept across refreshes.
func (s *catalogService) Browse(ctx context.Context, facets catalog.Facets, page, perPage int) (*BrowseResult, error) {
	ctx, span := tracer.Tracer().Start(ctx, "CatalogService.Browse")
	defer span.End()
	span.SetAttributes(
		attribute.String("catalog.category", facets.Category),
		attribute.String("catalog.sort", string(facets.Sort)),
		attribute.String("catalog.segment", facets.Segment),
	)

	state := catalog.NewFacetState(s.pipeline.Bounds)
	state.Replace(facets)
	view := catalog.NewBrowser(s.fetcher, s.pipeline, state, s.limit, s.rec).Refresh(ctx)

	paged, info := catalog.Paginate(view.Products, page, perPage)
	span.SetAttributes(
		attribute.Int("catalog.matched", len(view.Products)),
		attribute.Bool("catalog.fallback", view.Fallback),
	)
	return &BrowseResult{
		Products:     paged,
		Pagination:   info,
		Facets:       view.Facets,
		Source:       view.Source,
		Fallback:     view.Fallback,
		CatalogTotal: view.SourceTotal,
		Truncated:    view.SourceTotal > view.Fetched,
	}, nil
}

// GetProduct resolves a product by slug, then by id. Products of the
// fallback catalog resolve when the repository does not know them.
func (s *catalogService) GetProduct(ctx context.Context, slugOrID string) (*ProductDetail, error) {
	product, err := s.products.GetBySlug(ctx, slugOrID)
	if errors.Is(err, repository.ErrNotFound) {
		product, err = s.products.GetByID(ctx, slugOrID)
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.Warnf("Product lookup for %s failed, trying fallback catalog: %v", slugOrID, err)
	}
	if err != nil {
		if p, ok := findFallback(slugOrID); ok {
			return &ProductDetail{
				Product: s.PriceWithDeals(ctx, p),
				Related: fallbackRelated(p, relatedLimit),
			}, nil
		}
		return nil, fmt.Errorf("product %s: %w", slugOrID, repository.ErrNotFound)
	}

	categoryKey := product.CategoryID
	if categoryKey == "" {
		categoryKey = product.CategoryKey()
	}
	related, err := s.products.ListByCategory(ctx, categoryKey, product.ID, relatedLimit)
	if err != nil {
		s.log.Warnf("Failed to load related products for %s: %v", product.ID, err)
		related = []entity.Product{}
	}
	return &ProductDetail{Product: s.PriceWithDeals(ctx, *product), Related: related}, nil
}

func findFallback(slugOrID string) (entity.Product, bool) {
	for _, p := range catalog.FallbackProducts() {
		if p.ID == slugOrID || (p.Slug != "" && p.Slug == slugOrID) {
			return p, true
		}
	}
	return entity.Product{}, false
}

func fallbackRelated(product entity.Product, limit int) []entity.Product {
	related := make([]entity.Product, 0, limit)
	for _, p := range catalog.FallbackProducts() {
		if p.ID != product.ID && p.CategoryKey() == product.CategoryKey() && len(related) < limit {
			related = append(related, p)
		}
	}
	return related
}

func (s *catalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.categories.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// FacetMetadata describes the option space for the current category.
func (s *catalogService) FacetMetadata(ctx context.Context, facets catalog.Facets) (*catalog.FacetMetadata, error) {
	res := s.fetcher.Fetch(ctx, catalog.QueryFromFacets(facets, s.limit))
	meta := catalog.PriceRange(res.Products)
	meta.Segments = s.segments.Names()
	return &meta, nil
}

func (s *catalogService) ActiveDeals(ctx context.Context) ([]entity.Deal, error) {
	all, err := s.deals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	now := s.now()
	live := make([]entity.Deal, 0, len(all))
	for _, d := range all {
		if d.IsLive(now) {
			live = append(live, d)
		}
	}
	return live, nil
}

func (s *catalogService) ActiveAnnouncements(ctx context.Context) ([]entity.Announcement, error) {
	all, err := s.announcements.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	now := s.now()
	live := make([]entity.Announcement, 0, len(all))
	for _, a := range all {
		if a.IsLive(now) {
			live = append(live, a)
		}
	}
	return live, nil
}

// PriceWithDeals applies the best live deal. The discount percent is taken
// against comparePrice when no deal applies.
func (s *catalogService) PriceWithDeals(ctx context.Context, product entity.Product) PricedProduct {
	final, deal := s.pricer.price(product, s.pricer.live(ctx))
	priced := PricedProduct{
		Product:         product,
		FinalPrice:      final.StringFixed(2),
		DiscountPercent: product.DiscountPercent(),
		Deal:            deal,
	}
	if deal != nil {
		list := product.PriceDecimal()
		if list.IsPositive() {
			pct := list.Sub(final).Mul(decimalHundred).Div(list).Round(0).IntPart()
			priced.DiscountPercent = int(pct)
		}
	}
	return priced
}
