// Package character provides durable character storage
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/KirkDiggler/rpg-tabletop/internal/repositories/character Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
)

// Repository defines the interface for character persistence
type Repository interface {
	// CreateCharacter rolls and stores a new character with its inventory,
	// class abilities and starting items in a single transaction
	// Returns errors.InvalidArgument with EMPTY_NAME or INVALID_CLASS before any statement runs
	// Returns errors.AlreadyExists with DUPLICATE_NAME if the player already owns the name
	// Returns errors.Aborted with INTEGRITY_ERROR for constraint failures
	// Returns errors.Internal with STORAGE_ERROR for any other storage failure
	CreateCharacter(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get loads a character with its abilities and inventory
	// Returns errors.NotFound if the character doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// ListByPlayer returns the player's characters without abilities or inventory
	ListByPlayer(ctx context.Context, input ListByPlayerInput) (*ListByPlayerOutput, error)
}

// CreateInput defines the input for creating a character
type CreateInput struct {
	PlayerID int64
	Name     string
	Class    entities.Class
}

// CreateOutput defines the output for creating a character
type CreateOutput struct {
	CharacterID int64
	// Stats is the server-side roll that was stored
	Stats entities.StatBlock
}

// GetInput defines the input for getting a character
type GetInput struct {
	ID int64
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *entities.Character
}

// ListByPlayerInput defines the input for listing a player's characters
type ListByPlayerInput struct {
	PlayerID int64
}

// ListByPlayerOutput defines the output for listing a player's characters
type ListByPlayerOutput struct {
	Characters []*entities.Character
}
