package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"freshcart/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores products as JSON strings with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to addr and verifies the connection with PING.
func NewRedisCache(ctx context.Context, addr, password string, ttl time.Duration) (*RedisCache, error) {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
		Protocol: 2,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, id string) (*models.Product, bool) {
	data, err := c.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Error reading product %s from cache: %v", id, err)
		}
		return nil, false
	}
	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		log.Printf("Error decoding cached product %s: %v", id, err)
		return nil, false
	}
	return &product, true
}

func (c *RedisCache) Set(ctx context.Context, product *models.Product) {
	data, err := json.Marshal(product)
	if err != nil {
		log.Printf("Error encoding product %s for cache: %v", product.ID, err)
		return
	}
	if err := c.client.Set(ctx, productKey(product.ID), data, c.ttl).Err(); err != nil {
		log.Printf("Error caching product %s: %v", product.ID, err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, productKey(id)).Err(); err != nil {
		log.Printf("Error invalidating cached product %s: %v", id, err)
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
