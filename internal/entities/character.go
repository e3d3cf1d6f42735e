package entities

import (
	"fmt"
)

// Weakness vocabulary
const (
	WeaknessMagic    = "Magic"
	WeaknessPoison   = "Poison"
	WeaknessFire     = "Fire"
	WeaknessPhysical = "Physical"
	WeaknessShadow   = "Shadow"
	WeaknessIce      = "Ice"
)

// Progression constants
const (
	StartingLevel            = 1
	StartingExperienceToNext = 100
	LevelUpHealth            = 20
	LevelUpMana              = 10
	LevelUpStrength          = 2
)

// StatBlock holds the rolled attributes of a character
type StatBlock struct {
	Strength     int
	Dexterity    int
	Constitution int
	Intelligence int
	Health       int
	MaxHealth    int
	Mana         int
	MaxMana      int
	Weakness     string
}

// Character is a player-owned hero. Health and mana only change through the
// methods below so they stay within [0, max].
type Character struct {
	ID               int64
	PlayerID         int64
	Name             string
	Class            Class
	Level            int
	Experience       int
	ExperienceToNext int
	Gold             int
	Stats            StatBlock
	PrimaryAbility   string
	Abilities        []*Ability
	Inventory        *Inventory
}

// NewCharacter builds a level 1 character from a rolled stat block
func NewCharacter(name string, class Class, stats StatBlock) *Character {
	c := &Character{
		Name:             name,
		Class:            class,
		Level:            StartingLevel,
		ExperienceToNext: StartingExperienceToNext,
		Stats:            stats,
		Abilities:        ClassAbilities(class),
		Inventory:        NewInventory(DefaultInventoryCapacity),
	}
	if spec, ok := LookupClass(class); ok {
		c.PrimaryAbility = spec.PrimaryAbility
	}
	return c
}

// GetID implements core.Entity
func (c *Character) GetID() string {
	return fmt.Sprintf("character_%d", c.ID)
}

// GetType implements core.Entity
func (c *Character) GetType() string {
	return "character"
}

// Alive reports whether the character has health left
func (c *Character) Alive() bool {
	return c.Stats.Health > 0
}

// TakeDamage lowers health, floored at zero. It returns the amount applied.
func (c *Character) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	if amount > c.Stats.Health {
		amount = c.Stats.Health
	}
	c.Stats.Health -= amount
	return amount
}

// Heal raises health, capped at max. It returns the amount applied.
func (c *Character) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	if room := c.Stats.MaxHealth - c.Stats.Health; amount > room {
		amount = room
	}
	c.Stats.Health += amount
	return amount
}

// SpendMana deducts mana if enough is available
func (c *Character) SpendMana(amount int) bool {
	if amount < 0 || c.Stats.Mana < amount {
		return false
	}
	c.Stats.Mana -= amount
	return true
}

// RestoreMana raises mana, capped at max. It returns the amount applied.
func (c *Character) RestoreMana(amount int) int {
	if amount <= 0 {
		return 0
	}
	if room := c.Stats.MaxMana - c.Stats.Mana; amount > room {
		amount = room
	}
	c.Stats.Mana += amount
	return amount
}

// GainExperience adds experience and applies every level up it earns. It
// returns the number of levels gained.
func (c *Character) GainExperience(amount int) int {
	if amount <= 0 {
		return 0
	}
	c.Experience += amount

	levels := 0
	for c.ExperienceToNext > 0 && c.Experience >= c.ExperienceToNext {
		c.Experience -= c.ExperienceToNext
		c.ExperienceToNext = c.ExperienceToNext * 3 / 2
		c.Level++
		c.Stats.MaxHealth += LevelUpHealth
		c.Stats.Health = c.Stats.MaxHealth
		c.Stats.MaxMana += LevelUpMana
		c.Stats.Mana = c.Stats.MaxMana
		c.Stats.Strength += LevelUpStrength
		levels++
	}
	return levels
}
