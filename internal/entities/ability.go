package entities

import "time"

// AbilityKind classifies an ability for display and for the resolver
type AbilityKind string

// Ability kinds
const (
	KindPhysical AbilityKind = "Physical"
	KindMagic    AbilityKind = "Magic"
	KindDefense  AbilityKind = "Defense"
	KindHeal     AbilityKind = "Heal"
)

// Ability is a usable skill with its own cooldown. Power is signed: positive
// is damage, negative is healing magnitude, zero is a utility effect.
type Ability struct {
	Name        string
	Description string
	Kind        AbilityKind
	Power       int
	Cooldown    time.Duration
	Remaining   time.Duration
	ManaCost    int
}

// Ready reports whether the cooldown has run out
func (a *Ability) Ready() bool {
	return a.Remaining <= 0
}

// IsHeal reports whether the ability restores health
func (a *Ability) IsHeal() bool {
	return a.Power < 0
}

// IsDamage reports whether the ability deals damage
func (a *Ability) IsDamage() bool {
	return a.Power > 0
}

var warriorAbilities = []Ability{
	{
		Name:        "Precise Cut",
		Description: "A fast, accurate strike.",
		Kind:        KindPhysical,
		Power:       15,
		Cooldown:    2 * time.Second,
	},
	{
		Name:        "Charge",
		Description: "Rush the enemy and strike with momentum.",
		Kind:        KindPhysical,
		Power:       12,
		Cooldown:    4 * time.Second,
		ManaCost:    5,
	},
	{
		Name:        "Barrier",
		Description: "Raise a defensive stance.",
		Kind:        KindDefense,
		Cooldown:    8 * time.Second,
		ManaCost:    10,
	},
	{
		Name:        "Fury",
		Description: "An all-out devastating blow.",
		Kind:        KindPhysical,
		Power:       25,
		Cooldown:    6 * time.Second,
		ManaCost:    15,
	},
}

var mageAbilities = []Ability{
	{
		Name:        "Fireball",
		Description: "Hurl a ball of flame.",
		Kind:        KindMagic,
		Power:       22,
		Cooldown:    3 * time.Second,
		ManaCost:    12,
	},
	{
		Name:        "Ice Blade",
		Description: "A shard of ice that cuts deep.",
		Kind:        KindMagic,
		Power:       18,
		Cooldown:    2500 * time.Millisecond,
		ManaCost:    8,
	},
	{
		Name:        "Celestial Heal",
		Description: "Restore 35 health.",
		Kind:        KindHeal,
		Power:       -35,
		Cooldown:    5 * time.Second,
		ManaCost:    15,
	},
	{
		Name:        "Arcane Mist",
		Description: "Shroud yourself in concealing mist.",
		Kind:        KindDefense,
		Cooldown:    6 * time.Second,
		ManaCost:    10,
	},
}
