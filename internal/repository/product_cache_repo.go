package repository

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
)

// ProductDetailCache holds single product documents keyed by id for the
// cart, wishlist and checkout lookups.
type ProductDetailCache interface {
	Get(ctx context.Context, productID string) (*entity.Product, error)
	Set(ctx context.Context, product *entity.Product, ttl time.Duration) error
	Delete(ctx context.Context, productID string) error
}

// CacheRepository is a raw byte cache. Get returns ErrNotFound on a miss.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
