package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/redis/go-redis/v9"
)

const (
	productDetailCacheKeyPrefix = "product_detail:"
)

type productDetailCacheRepository struct {
	client *redis.Client
}

func NewProductDetailCacheRepository(client *redis.Client) repository.ProductDetailCache {
	return &productDetailCacheRepository{
		client: client,
	}
}

func (r *productDetailCacheRepository) key(productID string) string {
	return productDetailCacheKeyPrefix + productID
}

func (r *productDetailCacheRepository) Get(ctx context.Context, productID string) (*entity.Product, error) {
	val, err := r.client.Get(ctx, r.key(productID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product detail for productID %s from redis: %w", productID, err)
	}

	var product entity.Product
	if err := json.Unmarshal(val, &product); err != nil {
		_ = r.Delete(ctx, productID)
		return nil, fmt.Errorf("failed to unmarshal product detail data for productID %s: %w", productID, err)
	}
	return &product, nil
}

func (r *productDetailCacheRepository) Set(ctx context.Context, product *entity.Product, ttl time.Duration) error {
	if product == nil || product.ID == "" {
		return errors.New("cannot cache nil product or product with empty ID")
	}

	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product %s: %w", product.ID, err)
	}
	if err := r.client.Set(ctx, r.key(product.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set product detail for productID %s to redis: %w", product.ID, err)
	}
	return nil
}

func (r *productDetailCacheRepository) Delete(ctx context.Context, productID string) error {
	if err := r.client.Del(ctx, r.key(productID)).Err(); err != nil {
		return fmt.Errorf("failed to delete product detail for productID %s from redis: %w", productID, err)
	}
	return nil
}
