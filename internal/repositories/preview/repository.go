// Package preview stores the stat block shown on the selection screen while
// a player makes up their mind. It is never the persisted roll.
package preview

//go:generate mockgen -destination=mock/mock_repository.go -package=previewmock github.com/KirkDiggler/rpg-tabletop/internal/repositories/preview Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

// DefaultTTL is how long a preview lives when SaveInput.TTL is zero
const DefaultTTL = 15 * time.Minute

// Preview is a rolled stat block waiting on the player's decision
type Preview struct {
	PlayerID  int64              `json:"player_id"`
	Class     entities.Class     `json:"class"`
	Name      string             `json:"name,omitempty"`
	Stats     entities.StatBlock `json:"stats"`
	CreatedAt time.Time          `json:"created_at"`
	ExpiresAt time.Time          `json:"expires_at"`
}

// SaveInput contains parameters for saving a preview
type SaveInput struct {
	PlayerID int64
	Class    entities.Class
	Name     string
	Stats    entities.StatBlock
	TTL      time.Duration
}

// SaveOutput contains the stored preview
type SaveOutput struct {
	Preview *Preview
}

// GetInput contains parameters for loading a preview
type GetInput struct {
	PlayerID int64
	Class    entities.Class
}

// GetOutput contains the loaded preview
type GetOutput struct {
	Preview *Preview
}

// DeleteInput contains parameters for dropping a preview
type DeleteInput struct {
	PlayerID int64
	Class    entities.Class
}

// DeleteOutput reports whether a preview was removed
type DeleteOutput struct {
	Deleted bool
}

// Repository defines the interface for preview storage
type Repository interface {
	// Save stores the preview, replacing any earlier one for the same player and class
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get returns errors.NotFound when the preview is missing or expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes the preview if present
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

var (
	errInvalidPlayer = errors.InvalidArgument("player ID must be positive")
	errEmptyClass    = errors.InvalidArgument("class cannot be empty")
)

func validateKey(playerID int64, class entities.Class) error {
	if playerID <= 0 {
		return errInvalidPlayer
	}
	if class == "" {
		return errEmptyClass
	}
	return nil
}

func newPreview(input SaveInput, now time.Time) *Preview {
	ttl := input.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Preview{
		PlayerID:  input.PlayerID,
		Class:     input.Class,
		Name:      input.Name,
		Stats:     input.Stats,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}
