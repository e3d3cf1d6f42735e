package preview

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-tabletop/internal/redis"
)

const (
	// Key pattern: preview:{player_id}:{class}
	previewKeyPrefix = "preview:"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for previews
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) buildKey(playerID int64, class string) string {
	return fmt.Sprintf("%s%d:%s", previewKeyPrefix, playerID, class)
}

func unavailable(err error, message string) error {
	return errors.WrapWithCode(err, errors.CodeUnavailable, message).WithReason(errors.ReasonConnection)
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateKey(input.PlayerID, input.Class); err != nil {
		return nil, err
	}

	p := newPreview(input, r.clock.Now())

	data, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal preview")
	}

	key := r.buildKey(input.PlayerID, string(input.Class))
	if err := r.client.Set(ctx, key, data, p.ExpiresAt.Sub(p.CreatedAt)).Err(); err != nil {
		return nil, unavailable(err, "failed to store preview in Redis")
	}

	return &SaveOutput{Preview: p}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.PlayerID, input.Class); err != nil {
		return nil, err
	}

	key := r.buildKey(input.PlayerID, string(input.Class))
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("preview not found")
		}
		return nil, unavailable(err, "failed to get preview from Redis")
	}

	var p Preview
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal preview")
	}

	// ExpiresAt is checked against the injected clock as well as the key TTL
	if r.clock.Now().After(p.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFound("preview has expired")
	}

	return &GetOutput{Preview: &p}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateKey(input.PlayerID, input.Class); err != nil {
		return nil, err
	}

	n, err := r.client.Del(ctx, r.buildKey(input.PlayerID, string(input.Class))).Result()
	if err != nil {
		return nil, unavailable(err, "failed to delete preview from Redis")
	}

	return &DeleteOutput{Deleted: n > 0}, nil
}
