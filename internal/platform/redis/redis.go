package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"messenger-client/internal/common/config"
)

// KV — минимальный набор команд, нужный хранилищам ключ-значение.
// Ему удовлетворяют *redis.Client и *Client.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Client wraps go-redis client to allow future extensions.
type Client struct {
	*redis.Client
}

// Open creates a new Redis client and pings it to validate the connection.
func Open(ctx context.Context, addr, password string, db int) (*Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("empty redis addr")
	}
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return &Client{Client: c}, nil
}

// OpenFromConfig открывает клиент по настройкам REDIS_*
func OpenFromConfig(ctx context.Context, cfg *config.Config) (*Client, error) {
	return Open(ctx, cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
}
