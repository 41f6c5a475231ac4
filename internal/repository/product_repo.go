package repository

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
)

type ListProductsParams struct {
	// Category matches a category id, slug or name-derived slug; empty or
	// "all" means any.
	Category string
	Search   string
	Featured *bool
	// SortBy takes the storefront sort names (newest, price-low, price-high,
	// rating, popular, bestseller). Anything else sorts newest first.
	SortBy   string
	Page     int
	PageSize int
}

type ListProductsResult struct {
	Products   []entity.Product
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	List(ctx context.Context, params ListProductsParams) (*ListProductsResult, error)
	ListByCategory(ctx context.Context, categoryID string, excludeID string, limit int) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	List(ctx context.Context, activeOnly bool) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type DealRepository interface {
	Create(ctx context.Context, deal *entity.Deal) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Deal, error)
	List(ctx context.Context) ([]entity.Deal, error)
	Update(ctx context.Context, deal *entity.Deal) error
	Delete(ctx context.Context, id string) error
}

type AnnouncementRepository interface {
	Create(ctx context.Context, a *entity.Announcement) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Announcement, error)
	List(ctx context.Context) ([]entity.Announcement, error)
	Update(ctx context.Context, a *entity.Announcement) error
	Delete(ctx context.Context, id string) error
}
