// Package abilities tracks a character's abilities and their cooldowns
package abilities

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

// Effect is the outcome of a successful use. Magnitude is signed: positive is
// damage for the caller to apply, negative is healing for the caster, zero is
// a utility effect.
type Effect struct {
	Ability   string
	Kind      entities.AbilityKind
	Magnitude int
	ManaSpent int
}

// IsHeal reports whether the effect heals the caster
func (e *Effect) IsHeal() bool {
	return e.Magnitude < 0
}

// IsDamage reports whether the effect damages a target
func (e *Effect) IsDamage() bool {
	return e.Magnitude > 0
}

// Status is a read-only view of one ability for the renderer
type Status struct {
	Name       string
	Kind       entities.AbilityKind
	ManaCost   int
	Cooldown   time.Duration
	Remaining  time.Duration
	Ready      bool
	Affordable bool
}

// Registry owns the cooldown timers of one caster's abilities. It is driven
// by a single control loop and is not safe for concurrent use.
type Registry struct {
	caster *entities.Character
}

// NewRegistry wraps the caster's ability list
func NewRegistry(caster *entities.Character) (*Registry, error) {
	if caster == nil {
		return nil, errors.InvalidArgument("caster is required")
	}
	return &Registry{caster: caster}, nil
}

// Len returns the number of abilities
func (r *Registry) Len() int {
	return len(r.caster.Abilities)
}

func (r *Registry) ability(idx int) (*entities.Ability, error) {
	if idx < 0 || idx >= len(r.caster.Abilities) {
		return nil, errors.OutOfRangef("ability index %d out of range [0, %d)", idx, len(r.caster.Abilities)).
			WithReason(errors.ReasonIndexOutOfRange)
	}
	return r.caster.Abilities[idx], nil
}

// Check reports why the ability at idx cannot be used right now, or nil
func (r *Registry) Check(idx int) error {
	a, err := r.ability(idx)
	if err != nil {
		return err
	}
	if !a.Ready() {
		return errors.FailedPreconditionf("%s is on cooldown for %s", a.Name, a.Remaining.Round(100*time.Millisecond)).
			WithReason(errors.ReasonOnCooldown).
			WithMeta("remaining", a.Remaining)
	}
	if r.caster.Stats.Mana < a.ManaCost {
		return errors.FailedPreconditionf("%s needs %d mana, have %d", a.Name, a.ManaCost, r.caster.Stats.Mana).
			WithReason(errors.ReasonInsufficientMana)
	}
	return nil
}

// Use spends the ability: cooldown restarts and mana is deducted. On any
// failure nothing changes.
func (r *Registry) Use(idx int) (*Effect, error) {
	if err := r.Check(idx); err != nil {
		return nil, err
	}

	a := r.caster.Abilities[idx]
	if !r.caster.SpendMana(a.ManaCost) {
		return nil, errors.FailedPreconditionf("%s needs %d mana", a.Name, a.ManaCost).
			WithReason(errors.ReasonInsufficientMana)
	}
	a.Remaining = a.Cooldown

	slog.Debug("Ability used",
		"ability", a.Name,
		"mana_spent", a.ManaCost,
		"cooldown_ms", a.Cooldown.Milliseconds(),
	)

	return &Effect{
		Ability:   a.Name,
		Kind:      a.Kind,
		Magnitude: a.Power,
		ManaSpent: a.ManaCost,
	}, nil
}

// Tick advances every cooldown by elapsed, floored at zero
func (r *Registry) Tick(elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}
	for _, a := range r.caster.Abilities {
		a.Remaining -= elapsed
		if a.Remaining < 0 {
			a.Remaining = 0
		}
	}
}

// Ready reports whether the ability at idx is off cooldown. Out of range
// indexes are never ready.
func (r *Registry) Ready(idx int) bool {
	a, err := r.ability(idx)
	if err != nil {
		return false
	}
	return a.Ready()
}

// Get returns a copy of the ability at idx
func (r *Registry) Get(idx int) (entities.Ability, error) {
	a, err := r.ability(idx)
	if err != nil {
		return entities.Ability{}, err
	}
	return *a, nil
}

// Snapshot returns the state of every ability in order
func (r *Registry) Snapshot() []Status {
	out := make([]Status, len(r.caster.Abilities))
	for i, a := range r.caster.Abilities {
		out[i] = Status{
			Name:       a.Name,
			Kind:       a.Kind,
			ManaCost:   a.ManaCost,
			Cooldown:   a.Cooldown,
			Remaining:  a.Remaining,
			Ready:      a.Ready(),
			Affordable: r.caster.Stats.Mana >= a.ManaCost,
		}
	}
	return out
}
