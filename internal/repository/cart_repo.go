package repository

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
)

// CartRepository stores one cart per shopper. A missing cart is returned
// empty, not as ErrNotFound.
type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Cart, error)
	Save(ctx context.Context, cart *entity.Cart, ttl time.Duration) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// WishlistRepository keeps a set of product ids per shopper. Remove of an
// absent id is ErrNotFound; List is sorted.
type WishlistRepository interface {
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]string, error)
	Contains(ctx context.Context, userID, productID string) (bool, error)
}
