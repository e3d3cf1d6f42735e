// Package attributes rolls class-based stat blocks for new characters
package attributes

//go:generate mockgen -destination=mock/mock_service.go -package=attributesmock github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/attributes Service

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/random"
)

// Service rolls stat blocks
type Service interface {
	// Roll draws every attribute uniformly from the class ranges
	Roll(class entities.Class) (*entities.StatBlock, error)

	// FinalRoll re-draws strength and health from the final-roll ranges and
	// resets max health to the new health
	FinalRoll(class entities.Class, stats *entities.StatBlock) error
}

// Config holds the dependencies for the attribute roller
type Config struct {
	Roller dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

type orchestrator struct {
	roller dice.Roller
}

// NewOrchestrator creates a new attribute roller
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		roller: cfg.Roller,
	}, nil
}

func lookupClass(class entities.Class) (*entities.ClassSpec, error) {
	spec, ok := entities.LookupClass(class)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown class %q", class).
			WithReason(errors.ReasonInvalidClass).
			WithMeta("class", string(class))
	}
	return spec, nil
}

// Roll draws a fresh stat block for the class
func (o *orchestrator) Roll(class entities.Class) (*entities.StatBlock, error) {
	spec, err := lookupClass(class)
	if err != nil {
		return nil, err
	}

	stats := &entities.StatBlock{}
	draws := []struct {
		r   entities.Range
		dst *int
	}{
		{spec.Strength, &stats.Strength},
		{spec.Dexterity, &stats.Dexterity},
		{spec.Constitution, &stats.Constitution},
		{spec.Intelligence, &stats.Intelligence},
		{spec.Health, &stats.Health},
		{spec.Mana, &stats.Mana},
	}
	for _, d := range draws {
		v, err := random.Between(o.roller, d.r.Min, d.r.Max)
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll attribute")
		}
		*d.dst = v
	}

	weakness, err := random.Pick(o.roller, spec.Weaknesses)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll weakness")
	}
	stats.Weakness = weakness
	stats.MaxHealth = stats.Health
	stats.MaxMana = stats.Mana

	slog.Debug("Attributes rolled",
		"class", string(class),
		"strength", stats.Strength,
		"health", stats.Health,
		"mana", stats.Mana,
	)

	return stats, nil
}

// FinalRoll re-randomises strength and health in place
func (o *orchestrator) FinalRoll(class entities.Class, stats *entities.StatBlock) error {
	if stats == nil {
		return errors.InvalidArgument("stat block is required")
	}
	spec, err := lookupClass(class)
	if err != nil {
		return err
	}

	strength, err := random.Between(o.roller, spec.FinalStrength.Min, spec.FinalStrength.Max)
	if err != nil {
		return errors.Wrap(err, "failed to roll strength")
	}
	health, err := random.Between(o.roller, spec.FinalHealth.Min, spec.FinalHealth.Max)
	if err != nil {
		return errors.Wrap(err, "failed to roll health")
	}

	stats.Strength = strength
	stats.Health = health
	stats.MaxHealth = health

	return nil
}
