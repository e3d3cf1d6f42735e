package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-tabletop/internal/config"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) clearEnv() {
	for _, key := range []string{
		"TABLETOP_DB_PATH", "TABLETOP_DB_CONNECT_TIMEOUT", "REDIS_ADDR", "REDIS_PASSWORD",
		"REDIS_DB", "TABLETOP_PREVIEW_TTL", "TABLETOP_HANDOFF_PATH", "TABLETOP_ENEMY_TURN_DELAY",
		"TABLETOP_DIALOGUE_RUNE_DELAY", "LOG_LEVEL", "LOG_FORMAT",
	} {
		s.T().Setenv(key, "")
	}
}

func (s *ConfigTestSuite) TestDefaults() {
	s.clearEnv()

	cfg, err := config.Load()
	s.Require().NoError(err)

	s.Equal(config.DefaultDatabasePath, cfg.Storage.Path)
	s.Equal(3*time.Second, cfg.Storage.ConnectTimeout)
	s.Equal("temp_player_id.txt", cfg.Handoff)
	s.Equal(1200*time.Millisecond, cfg.Game.EnemyTurnDelay)
	s.Equal(20*time.Millisecond, cfg.Game.DialogueRuneDelay)
	s.False(cfg.Redis.Enabled())
	s.Equal("info", cfg.Log.Level)
	s.Equal("text", cfg.Log.Format)
}

func (s *ConfigTestSuite) TestOverrides() {
	s.clearEnv()
	s.T().Setenv("TABLETOP_DB_PATH", "/tmp/game.db")
	s.T().Setenv("TABLETOP_DB_CONNECT_TIMEOUT", "500ms")
	s.T().Setenv("TABLETOP_ENEMY_TURN_DELAY", "800")
	s.T().Setenv("REDIS_ADDR", "localhost:6379")
	s.T().Setenv("REDIS_DB", "2")
	s.T().Setenv("LOG_FORMAT", "json")

	cfg, err := config.Load()
	s.Require().NoError(err)

	s.Equal("/tmp/game.db", cfg.Storage.Path)
	s.Equal(500*time.Millisecond, cfg.Storage.ConnectTimeout)
	s.Equal(800*time.Millisecond, cfg.Game.EnemyTurnDelay)
	s.True(cfg.Redis.Enabled())
	s.Equal(2, cfg.Redis.DB)
	s.Equal(config.DefaultPreviewTTL, cfg.Redis.PreviewTTL)
	s.Equal("json", cfg.Log.Format)
}

func (s *ConfigTestSuite) TestInvalid() {
	s.clearEnv()
	s.T().Setenv("LOG_FORMAT", "xml")
	s.T().Setenv("TABLETOP_DIALOGUE_RUNE_DELAY", "0s")

	cfg, err := config.Load()
	s.Nil(cfg)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "LOG_FORMAT")
	s.Contains(err.Error(), "TABLETOP_DIALOGUE_RUNE_DELAY")
}
