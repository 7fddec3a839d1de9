package cache

import (
	"context"
	"fmt"
	"time"

	"freshcart/internal/models"
)

// Supported cache drivers.
const (
	DriverNone   = "none"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// ProductCache holds product documents by ID. Cache failures never fail a
// request: a miss or error on Get means "load from the repository".
type ProductCache interface {
	Get(ctx context.Context, id string) (*models.Product, bool)
	Set(ctx context.Context, product *models.Product)
	Invalidate(ctx context.Context, id string)
	Close() error
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

// Config selects and addresses a cache backend.
type Config struct {
	Driver        string
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
}

// New builds the cache named by cfg.Driver.
func New(ctx context.Context, cfg Config) (ProductCache, error) {
	switch cfg.Driver {
	case "", DriverNone:
		return Noop{}, nil
	case DriverMemory:
		return NewMemoryCache(cfg.TTL), nil
	case DriverRedis:
		return NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.TTL)
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

// Noop is a ProductCache that never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) (*models.Product, bool) { return nil, false }
func (Noop) Set(context.Context, *models.Product)                {}
func (Noop) Invalidate(context.Context, string)                  {}
func (Noop) Close() error                                         { return nil }
