// Package player provides account storage for the login screen
package player

//go:generate mockgen -destination=mock/mock_repository.go -package=playermock github.com/KirkDiggler/rpg-tabletop/internal/repositories/player Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 6

// System log actions
const (
	ActionRegister = "REGISTER"
	ActionLogin    = "LOGIN"
)

// Repository defines the interface for player accounts
type Repository interface {
	// Register creates an account with a bcrypt password hash
	// Returns errors.InvalidArgument for missing fields or a short password
	// Returns errors.AlreadyExists if the username or email is taken
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)

	// Login checks credentials
	// Returns errors.Unauthenticated for an unknown user or a wrong password
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// Get loads a player by ID
	// Returns errors.NotFound if the player doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
}

// RegisterInput defines the input for registering a player
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// RegisterOutput defines the output for registering a player
type RegisterOutput struct {
	Player *entities.Player
}

// LoginInput defines the input for logging in
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput defines the output for logging in
type LoginOutput struct {
	Player *entities.Player
}

// GetInput defines the input for getting a player
type GetInput struct {
	ID int64
}

// GetOutput defines the output for getting a player
type GetOutput struct {
	Player *entities.Player
}
