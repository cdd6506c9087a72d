package cache

//go:generate go run go.uber.org/mock/mockgen -source=./counter.go -destination=./mocks/counter_mock.go -package=mocks

import (
	"context"
	"fmt"
	"roomify/infras/otel"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	otelWindowAttribute   = "cache.window"
)

// Counter keeps fixed window counters shared by every instance of the app.
type Counter interface {
	Increment(ctx context.Context, key string, window time.Duration) (count int64, err error)
}

type redisCounter struct {
	client *redis.Client
	otel   otel.Otel
}

func NewCounter(client *redis.Client, ot otel.Otel) Counter {
	return &redisCounter{
		client: client,
		otel:   ot,
	}
}

// Increment bumps the counter at key and returns the new value. The expiry is
// only set when the window opens, so the count resets once it elapses.
func (c *redisCounter) Increment(ctx context.Context, key string, window time.Duration) (count int64, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Increment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		otelCacheKeyAttribute: key,
		otelWindowAttribute:   window,
	})

	var incr *redis.IntCmd

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)

		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("key", key).Dur("window", window).Msg("failed to increment counter")

		return 0, fmt.Errorf("increment %s: %w", key, err)
	}

	return incr.Val(), nil
}
