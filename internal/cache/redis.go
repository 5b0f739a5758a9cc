package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	models "github.com/dariofm/flightdeck/internal"
	"github.com/dariofm/flightdeck/pkg/config"
	"github.com/redis/go-redis/v9"
)

// RedisCache caches airport listings and flight-search results. Entries are
// JSON blobs with a TTL; a cache miss is (nil, nil).
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		ttl: cfg.TTL,
	}
}

func (c *RedisCache) GetAirports(ctx context.Context) ([]models.Airport, error) {
	var airports []models.Airport
	if err := c.get(ctx, airportsKey(), &airports); err != nil {
		return nil, err
	}
	return airports, nil
}

func (c *RedisCache) SetAirports(ctx context.Context, airports []models.Airport) error {
	return c.set(ctx, airportsKey(), airports)
}

func (c *RedisCache) GetFlightSearch(ctx context.Context, origin, destination string, day time.Time) ([]models.Flight, error) {
	var flights []models.Flight
	if err := c.get(ctx, searchKey(origin, destination, day), &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlightSearch(ctx context.Context, origin, destination string, day time.Time, flights []models.Flight) error {
	return c.set(ctx, searchKey(origin, destination, day), flights)
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) get(ctx context.Context, key string, dst interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, dst)
}

func (c *RedisCache) set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

func airportsKey() string {
	return "cache:airports"
}

func searchKey(origin, destination string, day time.Time) string {
	return fmt.Sprintf("cache:search:%s:%s:%s", origin, destination, day.UTC().Format("2006-01-02"))
}
