package catalog

import (
	"strings"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
)

const streamingCategory = "courses"

// SegmentLookup answers segment membership for the segment facet.
type SegmentLookup interface {
	Contains(segment, productID string) bool
}

// Pipeline filters and orders a product list by a facet set.
type Pipeline struct {
	Bounds   PriceBounds
	Segments SegmentLookup
}

// Apply runs the pipeline with the built-in segment table.
func Apply(products []entity.Product, f Facets, bounds PriceBounds) []entity.Product {
	return Pipeline{Bounds: bounds, Segments: DefaultSegmentTable()}.Run(products, f)
}

// Run returns a new slice holding the products that satisfy every active
// facet, stably sorted by f.Sort. The input slice is not modified.
func (pl Pipeline) Run(products []entity.Product, f Facets) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if pl.Match(p, f) {
			out = append(out, p)
		}
	}
	SortProducts(out, f.Sort)
	return out
}

// Match reports whether p passes all facet predicates.
func (pl Pipeline) Match(p entity.Product, f Facets) bool {
	return matchCategory(p, f.Category) &&
		matchSearch(p, f.Search) &&
		matchRating(p, f.Rating) &&
		matchPrice(p, f.MaxPrice, pl.Bounds) &&
		matchType(p, f.Type) &&
		pl.matchSegment(p, f.Segment)
}

// matchCategory compares against both the category slug and the slug
// derived from the category name, since sources disagree on which they fill.
func matchCategory(p entity.Product, category string) bool {
	if category == "" || category == CategoryAll {
		return true
	}
	return inCategory(p, category)
}

func inCategory(p entity.Product, key string) bool {
	if p.Category == nil {
		return p.CategoryID == key
	}
	return p.Category.Slug == key || p.Category.DerivedSlug() == key
}

func matchSearch(p entity.Product, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.ShortDescription), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func matchRating(p entity.Product, min float64) bool {
	return min <= 0 || p.RatingValue() >= min
}

func matchPrice(p entity.Product, max float64, bounds PriceBounds) bool {
	if max == bounds.Max {
		return true
	}
	price := p.PriceValue()
	return price >= bounds.Min && price <= max
}

type typeRule func(p entity.Product) bool

// typeRules is the fallback classification for products without an explicit
// productType. The rules overlap: a product can satisfy several.
var typeRules = map[ProductType]typeRule{
	TypeDownloadable: func(p entity.Product) bool {
		instant, _ := p.MetaBool(entity.MetaInstantDownload)
		return instant || p.HasMeta(entity.MetaFileType)
	},
	TypeStreaming: func(p entity.Product) bool {
		instant, set := p.MetaBool(entity.MetaInstantDownload)
		return set && !instant && inCategory(p, streamingCategory)
	},
	TypeLicense: func(p entity.Product) bool {
		return p.HasMeta(entity.MetaLicense)
	},
}

func matchType(p entity.Product, t ProductType) bool {
	if t == TypeAny {
		return true
	}
	rule, known := typeRules[t]
	if !known {
		return true
	}
	if explicit := p.MetaString(entity.MetaProductType); explicit != "" {
		return strings.EqualFold(explicit, string(t))
	}
	return rule(p)
}

func (pl Pipeline) matchSegment(p entity.Product, segment string) bool {
	if segment == "" || segment == SegmentAll {
		return true
	}
	if pl.Segments == nil {
		return false
	}
	return pl.Segments.Contains(segment, p.ID)
}
