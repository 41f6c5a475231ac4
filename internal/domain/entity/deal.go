package entity

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

var ErrInvalidDeal = errors.New("invalid deal")

type Deal struct {
	ID           string       `json:"id" bson:"_id,omitempty"`
	Title        string       `json:"title" bson:"title"`
	Description  string       `json:"description,omitempty" bson:"description,omitempty"`
	DiscountType DiscountType `json:"discountType" bson:"discount_type"`
	Value        string       `json:"value" bson:"value"`
	Code         string       `json:"code,omitempty" bson:"code,omitempty"`
	StartDate    time.Time    `json:"startDate" bson:"start_date"`
	EndDate      time.Time    `json:"endDate" bson:"end_date"`
	ProductID    string       `json:"productId,omitempty" bson:"product_id,omitempty"`
	CategoryID   string       `json:"categoryId,omitempty" bson:"category_id,omitempty"`
	IsActive     bool         `json:"isActive" bson:"is_active"`
	CreatedAt    time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" bson:"updated_at"`
}

func (d Deal) Validate() error {
	if d.Title == "" {
		return errors.Join(ErrInvalidDeal, errors.New("title is required"))
	}
	v, err := decimal.NewFromString(d.Value)
	if err != nil || !v.IsPositive() {
		return errors.Join(ErrInvalidDeal, errors.New("value must be a positive decimal"))
	}
	switch d.DiscountType {
	case DiscountPercentage:
		if v.GreaterThan(decimal.NewFromInt(100)) {
			return errors.Join(ErrInvalidDeal, errors.New("percentage cannot exceed 100"))
		}
	case DiscountFixed:
	default:
		return errors.Join(ErrInvalidDeal, errors.New("unknown discount type"))
	}
	if !d.EndDate.IsZero() && d.EndDate.Before(d.StartDate) {
		return errors.Join(ErrInvalidDeal, errors.New("end date precedes start date"))
	}
	if d.ProductID != "" && d.CategoryID != "" {
		return errors.Join(ErrInvalidDeal, errors.New("a deal targets a product or a category, not both"))
	}
	return nil
}

// IsLive reports whether the deal is enabled and inside its validity window.
// A zero EndDate means open-ended.
func (d Deal) IsLive(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if !d.StartDate.IsZero() && now.Before(d.StartDate) {
		return false
	}
	if !d.EndDate.IsZero() && now.After(d.EndDate) {
		return false
	}
	return true
}

// AppliesTo reports whether the deal targets the product. Deals without a
// product or category apply store-wide.
func (d Deal) AppliesTo(p Product) bool {
	switch {
	case d.ProductID != "":
		return d.ProductID == p.ID
	case d.CategoryID != "":
		if p.CategoryID == d.CategoryID {
			return true
		}
		return p.Category != nil && (p.Category.ID == d.CategoryID || p.Category.Key() == d.CategoryID)
	default:
		return true
	}
}

// Apply returns the discounted price, never below zero.
func (d Deal) Apply(price decimal.Decimal) decimal.Decimal {
	v := parseDecimal(d.Value)
	var out decimal.Decimal
	switch d.DiscountType {
	case DiscountPercentage:
		out = price.Sub(price.Mul(v).Div(decimal.NewFromInt(100)))
	case DiscountFixed:
		out = price.Sub(v)
	default:
		out = price
	}
	if out.IsNegative() {
		return decimal.Zero
	}
	return out.Round(2)
}

// BestPrice applies the live deal giving the lowest price for the product.
func BestPrice(p Product, deals []Deal, now time.Time) (decimal.Decimal, *Deal) {
	best := p.PriceDecimal()
	var applied *Deal
	for i := range deals {
		d := deals[i]
		if !d.IsLive(now) || !d.AppliesTo(p) {
			continue
		}
		if candidate := d.Apply(p.PriceDecimal()); candidate.LessThan(best) {
			best = candidate
			applied = &deals[i]
		}
	}
	return best, applied
}

type Announcement struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Message   string    `json:"message" bson:"message"`
	IsActive  bool      `json:"isActive" bson:"is_active"`
	StartsAt  time.Time `json:"startsAt,omitempty" bson:"starts_at,omitempty"`
	EndsAt    time.Time `json:"endsAt,omitempty" bson:"ends_at,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

func (a Announcement) IsLive(now time.Time) bool {
	if !a.IsActive {
		return false
	}
	if !a.StartsAt.IsZero() && now.Before(a.StartsAt) {
		return false
	}
	if !a.EndsAt.IsZero() && now.After(a.EndsAt) {
		return false
	}
	return true
}
