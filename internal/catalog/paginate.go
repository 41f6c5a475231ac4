package catalog

import (
	"sort"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
)

const (
	DefaultPerPage = 12
	MaxPerPage     = 100
)

// Pagination mirrors the metadata returned by the catalog API.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Paginate returns the requested page. Out-of-range pages are empty; page
// and perPage are normalised to at least 1 and at most MaxPerPage.
func Paginate(products []entity.Product, page, perPage int) ([]entity.Product, Pagination) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if page <= 0 {
		page = 1
	}
	total := len(products)
	info := Pagination{
		Page:       page,
		Limit:      perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	start := (page - 1) * perPage
	if start >= total {
		return []entity.Product{}, info
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return products[start:end], info
}

type CategoryCount struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FacetMetadata describes the option space of a product list.
type FacetMetadata struct {
	MinPrice   float64         `json:"minPrice"`
	MaxPrice   float64         `json:"maxPrice"`
	Categories []CategoryCount `json:"categories"`
	Segments   []string        `json:"segments"`
	Sorts      []SortMode      `json:"sorts"`
	Types      []ProductType   `json:"types"`
}

var allSorts = []SortMode{SortNewest, SortPriceLow, SortPriceHigh, SortRating, SortPopular, SortBestseller}

var allTypes = []ProductType{TypeDownloadable, TypeStreaming, TypeLicense}

// PriceRange computes price extremes and per-category counts. An empty list
// yields zero prices.
func PriceRange(products []entity.Product) FacetMetadata {
	meta := FacetMetadata{Sorts: allSorts, Types: allTypes, Categories: []CategoryCount{}}
	counts := make(map[string]*CategoryCount)
	for i, p := range products {
		price := p.PriceValue()
		if i == 0 || price < meta.MinPrice {
			meta.MinPrice = price
		}
		if i == 0 || price > meta.MaxPrice {
			meta.MaxPrice = price
		}
		key := p.CategoryKey()
		if key == "" {
			continue
		}
		c, ok := counts[key]
		if !ok {
			name := key
			if p.Category != nil && p.Category.Name != "" {
				name = p.Category.Name
			}
			c = &CategoryCount{Key: key, Name: name}
			counts[key] = c
		}
		c.Count++
	}
	for _, c := range counts {
		meta.Categories = append(meta.Categories, *c)
	}
	sort.Slice(meta.Categories, func(i, j int) bool {
		return meta.Categories[i].Key < meta.Categories[j].Key
	})
	return meta
}
