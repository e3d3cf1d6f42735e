package entities

import "strings"

// Enemy is the opponent of a single encounter
type Enemy struct {
	Name        string
	Description string
	MaxHealth   int
	Health      int
	Attack      int
	Type        string
	Weakness    string
}

// NewEnemy creates an enemy at full health
func NewEnemy(name string, maxHealth, attack int, enemyType, weakness string) *Enemy {
	return &Enemy{
		Name:      name,
		MaxHealth: maxHealth,
		Health:    maxHealth,
		Attack:    attack,
		Type:      enemyType,
		Weakness:  weakness,
	}
}

// GetID implements core.Entity
func (e *Enemy) GetID() string {
	return "enemy_" + strings.ToLower(strings.ReplaceAll(e.Name, " ", "_"))
}

// GetType implements core.Entity
func (e *Enemy) GetType() string {
	return "enemy"
}

// Alive reports whether the enemy has health left
func (e *Enemy) Alive() bool {
	return e.Health > 0
}

// TakeDamage lowers health, floored at zero. It returns the amount applied.
func (e *Enemy) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	if amount > e.Health {
		amount = e.Health
	}
	e.Health -= amount
	return amount
}

// Clone returns a copy safe to hand to a renderer
func (e *Enemy) Clone() *Enemy {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

// Roster returns fresh copies of the village encounter enemies
func Roster() []*Enemy {
	return []*Enemy{
		{Name: "Bandit Leader", Description: "Chief of the local bandits", MaxHealth: 60, Health: 60, Attack: 12, Type: "Humanoid", Weakness: "Light"},
		{Name: "Council Spy", Description: "Infiltrated the high council", MaxHealth: 45, Health: 45, Attack: 10, Type: "Humanoid", Weakness: "Truth"},
		{Name: "Corrupted Guard", Description: "Former member of the royal guard", MaxHealth: 55, Health: 55, Attack: 14, Type: "Humanoid", Weakness: "Honor"},
	}
}
