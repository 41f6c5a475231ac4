package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPrice        = errors.New("price must be a non-negative decimal")
	ErrInvalidComparePrice = errors.New("compare price must be greater than price")
	ErrInvalidRating       = errors.New("average rating must be between 0 and 5")
	ErrInvalidStock        = errors.New("stock cannot be negative")
)

// Well-known keys of Product.Metadata.
const (
	MetaFileType        = "fileType"
	MetaLicense         = "license"
	MetaInstantDownload = "instantDownload"
	MetaProductType     = "productType"
)

type Category struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Slug        string    `json:"slug" bson:"slug"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	ParentID    string    `json:"parentId,omitempty" bson:"parent_id,omitempty"`
	IsActive    bool      `json:"isActive" bson:"is_active"`
	SortOrder   int       `json:"sortOrder" bson:"sort_order"`
	CreatedAt   time.Time `json:"createdAt,omitempty" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" bson:"updated_at"`
}

// DerivedSlug builds a slug from the display name: lowercased, spaces
// replaced by hyphens. Catalog sources that only carry a category name are
// matched through it.
func (c Category) DerivedSlug() string {
	return strings.ReplaceAll(strings.ToLower(c.Name), " ", "-")
}

// Key returns the slug when present, otherwise the derived slug.
func (c Category) Key() string {
	if c.Slug != "" {
		return c.Slug
	}
	return c.DerivedSlug()
}

type Product struct {
	ID               string                 `json:"id" bson:"_id,omitempty"`
	Slug             string                 `json:"slug" bson:"slug"`
	Name             string                 `json:"name" bson:"name"`
	Description      string                 `json:"description,omitempty" bson:"description,omitempty"`
	ShortDescription string                 `json:"shortDescription,omitempty" bson:"short_description,omitempty"`
	Price            string                 `json:"price" bson:"price"`
	ComparePrice     string                 `json:"comparePrice,omitempty" bson:"compare_price,omitempty"`
	CategoryID       string                 `json:"categoryId,omitempty" bson:"category_id,omitempty"`
	Category         *Category              `json:"category,omitempty" bson:"category,omitempty"`
	Images           []string               `json:"images,omitempty" bson:"images,omitempty"`
	Stock            int                    `json:"stock" bson:"stock"`
	Featured         bool                   `json:"featured" bson:"featured"`
	Tags             []string               `json:"tags,omitempty" bson:"tags,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	AverageRating    string                 `json:"averageRating,omitempty" bson:"average_rating,omitempty"`
	TotalReviews     int                    `json:"totalReviews" bson:"total_reviews"`
	TotalSales       *int                   `json:"totalSales,omitempty" bson:"total_sales,omitempty"`
	CreatedAt        time.Time              `json:"createdAt" bson:"created_at"`
	UpdatedAt        time.Time              `json:"updatedAt" bson:"updated_at"`
}

// parseDecimal never fails: malformed or empty input is zero.
func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (p Product) PriceDecimal() decimal.Decimal {
	return parseDecimal(p.Price)
}

func (p Product) PriceValue() float64 {
	return p.PriceDecimal().InexactFloat64()
}

func (p Product) ComparePriceValue() float64 {
	return parseDecimal(p.ComparePrice).InexactFloat64()
}

func (p Product) RatingValue() float64 {
	return parseDecimal(p.AverageRating).InexactFloat64()
}

// SalesRank is totalSales when the source reports it, else totalReviews.
func (p Product) SalesRank() int {
	if p.TotalSales != nil {
		return *p.TotalSales
	}
	return p.TotalReviews
}

func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

// CategoryKey is the category identity used for peer lookups.
func (p Product) CategoryKey() string {
	if p.Category == nil {
		return p.CategoryID
	}
	return p.Category.Key()
}

// DiscountPercent is the whole-percent saving against ComparePrice. A missing,
// malformed or non-greater compare price yields 0.
func (p Product) DiscountPercent() int {
	price := p.PriceDecimal()
	compare := parseDecimal(p.ComparePrice)
	if !compare.GreaterThan(price) || !compare.IsPositive() {
		return 0
	}
	pct := compare.Sub(price).Div(compare).Mul(decimal.NewFromInt(100)).Round(0)
	return int(pct.IntPart())
}

// MetaString returns a metadata value as a string, "" when absent.
func (p Product) MetaString(key string) string {
	v, ok := p.Metadata[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// MetaBool reports the metadata flag and whether it was set as a boolean.
func (p Product) MetaBool(key string) (value bool, present bool) {
	v, ok := p.Metadata[key]
	if !ok {
		return false, false
	}
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(b) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

func (p Product) HasMeta(key string) bool {
	return p.MetaString(key) != ""
}

// Validate checks the invariants enforced on admin writes.
func (p Product) Validate() error {
	if p.Name == "" || p.Slug == "" {
		return errors.New("product name and slug are required")
	}
	price, err := decimal.NewFromString(p.Price)
	if err != nil || price.IsNegative() {
		return ErrInvalidPrice
	}
	if p.ComparePrice != "" {
		compare, err := decimal.NewFromString(p.ComparePrice)
		if err != nil || !compare.GreaterThan(price) {
			return ErrInvalidComparePrice
		}
	}
	if p.AverageRating != "" {
		r := parseDecimal(p.AverageRating)
		if r.IsNegative() || r.GreaterThan(decimal.NewFromInt(5)) {
			return ErrInvalidRating
		}
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}
