package testutils

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-tabletop/internal/config"
	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/sqlite"
)

// Fixture defaults
const (
	TestUsername      = "aldric"
	TestEmail         = "aldric@example.com"
	TestCharacterName = "Thorin Oakenshield"
)

// CreateTestDB opens a migrated and seeded database in a temp dir
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(context.Background(), config.StorageConfig{
		Path:           filepath.Join(t.TempDir(), "rpg.db"),
		ConnectTimeout: time.Second,
	})
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// CreateTestPlayer inserts a player row and returns its ID
func CreateTestPlayer(t *testing.T, db *sql.DB, username string) int64 {
	t.Helper()

	res, err := db.ExecContext(context.Background(),
		`INSERT INTO players (username, email, password_hash, created_at) VALUES (?, ?, 'x', 0)`,
		username, username+"@example.com",
	)
	require.NoError(t, err, "failed to insert player")

	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// CountRows returns the number of rows in table
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

// WarriorStats is a stat block inside the Warrior roll ranges
func WarriorStats() *entities.StatBlock {
	return &entities.StatBlock{
		Strength:     20,
		Dexterity:    12,
		Constitution: 16,
		Intelligence: 9,
		Health:       140,
		MaxHealth:    140,
		Mana:         30,
		MaxMana:      30,
		Weakness:     entities.WeaknessFire,
	}
}

// MageStats is a stat block inside the Mage roll ranges
func MageStats() *entities.StatBlock {
	return &entities.StatBlock{
		Strength:     10,
		Dexterity:    14,
		Constitution: 12,
		Intelligence: 22,
		Health:       100,
		MaxHealth:    100,
		Mana:         110,
		MaxMana:      110,
		Weakness:     entities.WeaknessShadow,
	}
}
