package catalog

import (
	"sort"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
)

// SortProducts orders products in place. Ties keep their relative order.
func SortProducts(products []entity.Product, mode SortMode) {
	var less func(a, b entity.Product) bool
	switch ParseSortMode(string(mode)) {
	case SortPriceLow:
		less = func(a, b entity.Product) bool { return a.PriceValue() < b.PriceValue() }
	case SortPriceHigh:
		less = func(a, b entity.Product) bool { return a.PriceValue() > b.PriceValue() }
	case SortRating:
		less = func(a, b entity.Product) bool { return a.RatingValue() > b.RatingValue() }
	case SortPopular:
		less = func(a, b entity.Product) bool { return a.TotalReviews > b.TotalReviews }
	case SortBestseller:
		less = func(a, b entity.Product) bool { return a.SalesRank() > b.SalesRank() }
	default:
		less = func(a, b entity.Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}
