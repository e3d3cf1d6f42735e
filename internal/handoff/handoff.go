// Package handoff passes the logged-in player ID from the login process to
// the next screen through a small file
package handoff

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

// DefaultPlayerID is used when no usable handoff file exists
const DefaultPlayerID int64 = 1

// Write stores playerID at path, replacing any earlier handoff
func Write(path string, playerID int64) error {
	if strings.TrimSpace(path) == "" {
		return errors.InvalidArgument("handoff path is required")
	}
	if playerID <= 0 {
		return errors.InvalidArgumentf("player ID %d must be positive", playerID)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "failed to create handoff directory")
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strconv.FormatInt(playerID, 10)), 0o600); err != nil {
		return errors.Wrap(err, "failed to write handoff file")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "failed to move handoff file into place")
	}

	slog.Debug("Handoff written", "path", path, "player_id", playerID)
	return nil
}

// Consume reads and deletes the handoff file. A missing or unreadable file
// falls back to DefaultPlayerID with fromFile false. The error is only set
// when the file was read but could not be removed.
func Consume(path string) (playerID int64, fromFile bool, err error) {
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		if !os.IsNotExist(readErr) {
			slog.Warn("Handoff file unreadable, using default player",
				"path", path,
				"error", readErr,
			)
		}
		return DefaultPlayerID, false, nil
	}

	if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
		err = errors.Wrap(rmErr, "failed to remove handoff file")
	}

	id, parseErr := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if parseErr != nil || id <= 0 {
		slog.Warn("Handoff file invalid, using default player",
			"path", path,
			"content", strings.TrimSpace(string(data)),
		)
		return DefaultPlayerID, false, err
	}

	return id, true, err
}
