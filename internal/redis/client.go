// Package redis wraps the go-redis client used for short-lived preview
// sessions
package redis

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

// DefaultDialTimeout bounds the first connection attempt
const DefaultDialTimeout = 2 * time.Second

// Options configures Redis client behavior
type Options struct {
	Password     string
	DB           int
	DialTimeout  time.Duration
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	UseTLS       bool
}

// NewClient creates a Redis client for a single instance. The client is lazy;
// call Ping to check the server is reachable.
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.InvalidArgument("redis endpoint is required")
	}

	if opts == nil {
		opts = &Options{}
	}
	if opts.DB < 0 {
		return nil, errors.InvalidArgumentf("redis db %d must not be negative", opts.DB)
	}

	dialTimeout := opts.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = DefaultDialTimeout
	}

	redisOpts := &redis.Options{
		Addr:         endpoint,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  dialTimeout,
		MinIdleConns: opts.MinIdleConns,
		PoolSize:     opts.PoolSize,
		MaxRetries:   opts.MaxRetries,
	}

	if opts.UseTLS {
		redisOpts.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402 // For self-signed certs
		}
	}

	return redis.NewClient(redisOpts), nil
}

// Ping checks the server answers within timeout
func Ping(ctx context.Context, client Client, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable").
			WithReason(errors.ReasonConnection)
	}
	return nil
}
