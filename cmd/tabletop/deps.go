package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/attributes"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/random"
	"github.com/KirkDiggler/rpg-tabletop/internal/redis"
	characterrepo "github.com/KirkDiggler/rpg-tabletop/internal/repositories/character"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/preview"
	"github.com/KirkDiggler/rpg-tabletop/internal/sqlite"
)

func newRoller() (*random.Seeded, error) {
	s := seed
	if s == 0 {
		generated, err := random.NewSeed()
		if err != nil {
			return nil, err
		}
		s = generated
	}
	slog.Info("Dice seeded", "seed", s)
	return random.NewSeeded(s), nil
}

func openStore(ctx context.Context) (*sql.DB, error) {
	db, err := sqlite.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open game database")
	}
	return db, nil
}

func newCharacterRepo(db *sql.DB, roller *random.Seeded) (characterrepo.Repository, attributes.Service, error) {
	attrs, err := attributes.NewOrchestrator(&attributes.Config{Roller: roller})
	if err != nil {
		return nil, nil, err
	}
	repo, err := characterrepo.NewSQLite(&characterrepo.SQLiteConfig{
		DB:     db,
		Roller: attrs,
		Clock:  clock.New(),
	})
	if err != nil {
		return nil, nil, err
	}
	return repo, attrs, nil
}

// newPreviewRepo uses Redis when configured and reachable, memory otherwise.
// The returned func releases the Redis connection.
func newPreviewRepo(ctx context.Context) (preview.Repository, func(), error) {
	noop := func() {}
	if !cfg.Redis.Enabled() {
		return preview.NewInMemory(clock.New()), noop, nil
	}

	client, err := redis.NewClient(cfg.Redis.Addr, &redis.Options{
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, noop, err
	}
	if err := redis.Ping(ctx, client, cfg.Storage.ConnectTimeout); err != nil {
		slog.Warn("Redis unavailable, keeping previews in memory",
			"addr", cfg.Redis.Addr,
			"error", err,
		)
		_ = client.Close()
		return preview.NewInMemory(clock.New()), noop, nil
	}

	repo, err := preview.NewRedisRepository(&preview.Config{
		Client: client,
		Clock:  clock.New(),
	})
	if err != nil {
		_ = client.Close()
		return nil, noop, err
	}
	return repo, func() { _ = client.Close() }, nil
}
