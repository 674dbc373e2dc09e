package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned when a key does not exist.
var ErrCacheMiss = errors.New("key not found")

const connectTimeout = 5 * time.Second

// Cache holds conversation state, rate-limit counters and the paging state
// of the last job search.
type Cache struct {
	client *redis.Client
	logger *zap.Logger
}

func New(addr, password string, db int, logger *zap.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  connectTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	logger.Info("connected to Redis", zap.String("addr", addr), zap.Int("db", db))

	return &Cache{client: client, logger: logger}, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// fail logs a failed command and wraps err with op.
func (c *Cache) fail(op, key string, err error) error {
	c.logger.Error("redis command failed",
		zap.String("op", op),
		zap.String("key", key),
		zap.Error(err),
	)
	return fmt.Errorf("redis %s %s: %w", op, key, err)
}

// read runs cmd and maps a missing key to ErrCacheMiss.
func (c *Cache) read(op, key string, cmd *redis.StringCmd) ([]byte, error) {
	data, err := cmd.Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, ErrCacheMiss
	case err != nil:
		return nil, c.fail(op, key, err)
	}
	return data, nil
}

// Set stores value as JSON with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return c.fail("set", key, err)
	}
	return nil
}

// Get decodes the JSON value at key into dest. A missing key returns
// ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.read("get", key, c.client.Get(ctx, key))
	if err != nil {
		return err
	}
	return decode(key, data, dest)
}

// Take is Get followed by removal of the key, done atomically.
func (c *Cache) Take(ctx context.Context, key string, dest any) error {
	data, err := c.read("getdel", key, c.client.GetDel(ctx, key))
	if err != nil {
		return err
	}
	return decode(key, data, dest)
}

func decode(key string, data []byte, dest any) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return c.fail("del", key, err)
	}
	return nil
}

// SetString stores a plain string value.
func (c *Cache) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return c.fail("set", key, err)
	}
	return nil
}

func (c *Cache) GetString(ctx context.Context, key string) (string, error) {
	data, err := c.read("get", key, c.client.Get(ctx, key))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// IncrementWithExpiry increments a counter and sets its TTL only when the
// key has none, so the window starts at the first hit.
func (c *Cache) IncrementWithExpiry(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, c.fail("incr", key, err)
	}
	return incr.Val(), nil
}
