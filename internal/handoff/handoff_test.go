package handoff_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/handoff"
)

func TestWriteThenConsume(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session", "temp_player_id.txt")

	require.NoError(t, handoff.Write(path, 42))

	id, fromFile, err := handoff.Consume(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.True(t, fromFile)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "file is deleted on read")

	id, fromFile, err = handoff.Consume(path)
	require.NoError(t, err)
	assert.Equal(t, handoff.DefaultPlayerID, id)
	assert.False(t, fromFile)
}

func TestConsumeFallsBack(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"garbage", "not-a-number"},
		{"zero", "0"},
		{"negative", "-4"},
		{"empty", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "handoff.txt")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			id, fromFile, err := handoff.Consume(path)
			require.NoError(t, err)
			assert.Equal(t, handoff.DefaultPlayerID, id)
			assert.False(t, fromFile)

			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestConsumeTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handoff.txt")
	require.NoError(t, os.WriteFile(path, []byte(" 17\n"), 0o600))

	id, fromFile, err := handoff.Consume(path)
	require.NoError(t, err)
	assert.Equal(t, int64(17), id)
	assert.True(t, fromFile)
}

func TestWriteValidation(t *testing.T) {
	assert.True(t, errors.IsInvalidArgument(handoff.Write("", 1)))
	assert.True(t, errors.IsInvalidArgument(handoff.Write(filepath.Join(t.TempDir(), "h.txt"), 0)))
}
