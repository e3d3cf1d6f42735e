package entities

import (
	"fmt"
	"time"
)

// Player is an account that owns characters
type Player struct {
	ID        int64
	Username  string
	Email     string
	CreatedAt time.Time
}

// GetID implements core.Entity
func (p *Player) GetID() string {
	return fmt.Sprintf("player_%d", p.ID)
}

// GetType implements core.Entity
func (p *Player) GetType() string {
	return "player"
}
