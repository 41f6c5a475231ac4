package redis

import (
	"context"
	"fmt"
	"sort"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/redis/go-redis/v9"
)

const wishlistKeyPrefix = "wishlist:"

type wishlistRepository struct {
	client *redis.Client
}

func NewWishlistRepository(client *redis.Client) repository.WishlistRepository {
	return &wishlistRepository{client: client}
}

func (r *wishlistRepository) key(userID string) string {
	return wishlistKeyPrefix + userID
}

func (r *wishlistRepository) Add(ctx context.Context, userID, productID string) error {
	if err := r.client.SAdd(ctx, r.key(userID), productID).Err(); err != nil {
		return fmt.Errorf("failed to add product %s to wishlist of user %s: %w", productID, userID, err)
	}
	return nil
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	removed, err := r.client.SRem(ctx, r.key(userID), productID).Result()
	if err != nil {
		return fmt.Errorf("failed to remove product %s from wishlist of user %s: %w", productID, userID, err)
	}
	if removed == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *wishlistRepository) List(ctx context.Context, userID string) ([]string, error) {
	ids, err := r.client.SMembers(ctx, r.key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist of user %s: %w", userID, err)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *wishlistRepository) Contains(ctx context.Context, userID, productID string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, r.key(userID), productID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist of user %s: %w", userID, err)
	}
	return ok, nil
}
