package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/redis/go-redis/v9"
)

type cacheRepository struct {
	client *redis.Client
	log    logger.Logger
}

func NewCacheRepository(client *redis.Client, log logger.Logger) repository.CacheRepository {
	return &cacheRepository{client: client, log: log}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("cacheRepository.Get for key '%s': %w", key, err)
	}
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cacheRepository.Set for key '%s': %w", key, err)
	}
	r.log.Debugf("Redis cache set: key=%s ttl=%s", key, ttl)
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cacheRepository.Delete for key '%s': %w", key, err)
	}
	return nil
}
