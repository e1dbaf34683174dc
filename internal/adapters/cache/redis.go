package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pelyams/product_store/internal/domain"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache stores entries for ttl; zero keeps them until evicted.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func createKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id)
}

func (r *RedisCache) SetProduct(ctx context.Context, product *domain.Product) error {
	key := createKey(product.Id)
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("%w: error marshalling product: %s", domain.ErrInternalCache, err.Error())
	}
	err = r.client.Set(ctx, key, data, r.ttl).Err()
	if err != nil {
		return fmt.Errorf("%w: failed to store product to cache: %s", domain.ErrInternalCache, err.Error())
	}
	return nil
}

func (r *RedisCache) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	key := createKey(id)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: failed to find product %s in cache", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to get product %s from cache: %s", domain.ErrInternalCache, id, err.Error())
	}
	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("%w: malformed cache entry for product %s: %s", domain.ErrInternalCache, id, err.Error())
	}
	return &product, nil
}

func (r *RedisCache) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	key := createKey(id)
	result, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: failed to delete product %s from cache: %s", domain.ErrInternalCache, id, err)
	}
	if result == 0 {
		return fmt.Errorf("%w: product with id=%s not found in cache", domain.ErrNotFound, id)
	}
	return nil
}

func (r *RedisCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: redis ping failed: %s", domain.ErrInternalCache, err.Error())
	}
	return nil
}

// NopCache never holds anything; it is used when Redis is not configured.
type NopCache struct{}

func (NopCache) SetProduct(context.Context, *domain.Product) error {
	return nil
}

func (NopCache) GetProduct(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	return nil, fmt.Errorf("%w: cache disabled, product %s", domain.ErrNotFound, id)
}

func (NopCache) DeleteProduct(_ context.Context, id uuid.UUID) error {
	return fmt.Errorf("%w: cache disabled, product %s", domain.ErrNotFound, id)
}
