package characters

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/KirkDiggler/dado-bot/internal/clock"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// OpenConfig selects the store backend
type OpenConfig struct {
	RedisURL     string // Optional, Redis is used when it is set and reachable
	DataFile     string // Required for the file store
	TimeProvider clock.TimeProvider
	Logger       *slog.Logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns a Redis store when RedisURL is set and answers a ping, and the
// JSON file store otherwise. The closer releases the Redis client, if any.
func Open(ctx context.Context, cfg *OpenConfig) (Repository, io.Closer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.RedisURL != "" {
		repo, client, err := openRedis(ctx, cfg.RedisURL, cfg.TimeProvider)
		if err == nil {
			logger.Info("using redis for character sheets")
			return repo, client, nil
		}
		logger.Warn("redis unavailable, falling back to file store", "error", err)
	}

	repo, err := NewFile(cfg.DataFile)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("using file for character sheets", "path", cfg.DataFile)
	return repo, nopCloser{}, nil
}

func openRedis(ctx context.Context, url string, timeProvider clock.TimeProvider) (Repository, *redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, err
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	return NewRedis(client, timeProvider), client, nil
}
