// Package character implements the character selection screen flow:
// pick a class, name the hero, take the final roll and save.
package character

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/attributes"
	characterrepo "github.com/KirkDiggler/rpg-tabletop/internal/repositories/character"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/preview"
)

// Config holds the dependencies for the selection flow
type Config struct {
	PlayerID      int64
	Attributes    attributes.Service
	CharacterRepo characterrepo.Repository

	// PreviewRepo is optional; when set every rolled candidate is stored
	PreviewRepo preview.Repository
	PreviewTTL  time.Duration

	// Classes defaults to every registered class
	Classes []entities.Class
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidatePositive("PlayerID", c.PlayerID, vb)
	if c.Attributes == nil {
		vb.RequiredField("Attributes")
	}
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}

	return vb.Build()
}

// Flow drives one selection screen. It is not safe for concurrent use.
type Flow struct {
	playerID      int64
	attributes    attributes.Service
	characterRepo characterrepo.Repository
	previewRepo   preview.Repository
	previewTTL    time.Duration

	phase      Phase
	classes    []entities.Class
	candidates map[entities.Class]*Candidate
	chosen     *Candidate
	result     *SaveResult
}

// NewFlow rolls a candidate for every class and starts in PhaseSelect
func NewFlow(ctx context.Context, cfg *Config) (*Flow, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	classes := cfg.Classes
	if len(classes) == 0 {
		classes = entities.Classes()
	}

	f := &Flow{
		playerID:      cfg.PlayerID,
		attributes:    cfg.Attributes,
		characterRepo: cfg.CharacterRepo,
		previewRepo:   cfg.PreviewRepo,
		previewTTL:    cfg.PreviewTTL,
		phase:         PhaseSelect,
		classes:       classes,
		candidates:    make(map[entities.Class]*Candidate, len(classes)),
	}

	for _, class := range classes {
		stats, err := f.attributes.Roll(class)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll %s", class)
		}
		c := &Candidate{Class: class, Stats: *stats}
		f.candidates[class] = c
		f.savePreview(ctx, c)
	}

	return f, nil
}

func (f *Flow) wrongPhase(op string) error {
	return errors.FailedPreconditionf("cannot %s during %s", op, f.phase).
		WithReason(errors.ReasonWrongPhase).
		WithMeta("phase", string(f.phase))
}

// savePreview is best effort; the selection screen works without it
func (f *Flow) savePreview(ctx context.Context, c *Candidate) {
	if f.previewRepo == nil {
		return
	}
	_, err := f.previewRepo.Save(ctx, preview.SaveInput{
		PlayerID: f.playerID,
		Class:    c.Class,
		Name:     c.Name,
		Stats:    c.Stats,
		TTL:      f.previewTTL,
	})
	if err != nil {
		slog.Warn("Failed to store preview",
			"player_id", f.playerID,
			"class", string(c.Class),
			"error", err,
		)
	}
}

func (f *Flow) dropPreviews(ctx context.Context) {
	if f.previewRepo == nil {
		return
	}
	for _, class := range f.classes {
		if _, err := f.previewRepo.Delete(ctx, preview.DeleteInput{PlayerID: f.playerID, Class: class}); err != nil {
			slog.Warn("Failed to drop preview",
				"player_id", f.playerID,
				"class", string(class),
				"error", err,
			)
		}
	}
}

// SelectClass picks a candidate and moves to name input
func (f *Flow) SelectClass(class entities.Class) error {
	if f.phase != PhaseSelect {
		return f.wrongPhase("select a class")
	}
	c, ok := f.candidates[class]
	if !ok {
		return errors.InvalidArgumentf("unknown class %q", class).WithReason(errors.ReasonInvalidClass)
	}

	f.chosen = c
	f.phase = PhaseNameInput
	slog.Debug("Class selected", "player_id", f.playerID, "class", string(class))
	return nil
}

// EnterName names the chosen candidate and performs the final roll
func (f *Flow) EnterName(ctx context.Context, name string) error {
	if f.phase != PhaseNameInput {
		return f.wrongPhase("enter a name")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return errors.InvalidArgument("name is required").WithReason(errors.ReasonEmptyName)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errors.InvalidArgumentf("name must be at most %d characters", MaxNameLength)
	}

	stats := f.chosen.Stats
	if err := f.attributes.FinalRoll(f.chosen.Class, &stats); err != nil {
		return errors.Wrap(err, "failed to take final roll")
	}

	f.chosen.Name = name
	f.chosen.Stats = stats
	f.phase = PhaseFinal
	f.savePreview(ctx, f.chosen)
	return nil
}

// Back steps out of the current phase. From name input and the final screen
// it returns to class selection; after a failed save it returns to the final
// screen.
func (f *Flow) Back() error {
	switch f.phase {
	case PhaseNameInput, PhaseFinal:
		f.chosen = nil
		f.phase = PhaseSelect
	case PhaseSaving:
		if f.result != nil && f.result.Success {
			return f.wrongPhase("go back")
		}
		f.result = nil
		f.phase = PhaseFinal
	default:
		return f.wrongPhase("go back")
	}
	return nil
}

// Confirm persists the chosen character. Storage failures are reported in
// the returned SaveResult, not as an error; the error is only set when the
// flow is in the wrong phase.
func (f *Flow) Confirm(ctx context.Context) (*SaveResult, error) {
	if f.phase != PhaseFinal {
		return nil, f.wrongPhase("confirm")
	}

	f.phase = PhaseSaving
	out, err := f.characterRepo.CreateCharacter(ctx, characterrepo.CreateInput{
		PlayerID: f.playerID,
		Name:     f.chosen.Name,
		Class:    f.chosen.Class,
	})
	if err != nil {
		slog.Warn("Character save failed",
			"player_id", f.playerID,
			"error", err,
		)
		f.result = &SaveResult{Message: saveFailureMessage(err), Err: err}
		return f.result, nil
	}

	// The durable roll replaces the one on screen
	f.chosen.Stats = out.Stats
	f.result = &SaveResult{
		CharacterID: out.CharacterID,
		Success:     true,
		Message:     fmt.Sprintf("%s the %s has been created!", f.chosen.Name, f.chosen.Class),
	}
	f.dropPreviews(ctx)
	return f.result, nil
}

func saveFailureMessage(err error) string {
	switch errors.GetCategory(err) {
	case errors.CategoryConflict:
		return "You already have a character with that name."
	case errors.CategoryValidation:
		return errors.GetMessage(err)
	default:
		return "The character could not be saved. Please try again."
	}
}

// Acknowledge dismisses the save message. A success moves to PhaseSaved; a
// failure returns to the final screen. In PhaseSaved it reports done.
func (f *Flow) Acknowledge() (done bool, err error) {
	switch f.phase {
	case PhaseSaving:
		if f.result != nil && f.result.Success {
			f.phase = PhaseSaved
		} else {
			f.result = nil
			f.phase = PhaseFinal
		}
		return false, nil
	case PhaseSaved:
		return true, nil
	default:
		return false, f.wrongPhase("acknowledge")
	}
}

// Phase returns the current phase
func (f *Flow) Phase() Phase {
	return f.phase
}

// Classes returns the classes on offer in display order
func (f *Flow) Classes() []entities.Class {
	out := make([]entities.Class, len(f.classes))
	copy(out, f.classes)
	return out
}

// Candidate returns a copy of the rolled candidate for class
func (f *Flow) Candidate(class entities.Class) (Candidate, bool) {
	c, ok := f.candidates[class]
	if !ok {
		return Candidate{}, false
	}
	return *c, true
}

// Chosen returns a copy of the selected candidate, if any
func (f *Flow) Chosen() (Candidate, bool) {
	if f.chosen == nil {
		return Candidate{}, false
	}
	return *f.chosen, true
}

// Result returns the last save outcome, if any
func (f *Flow) Result() *SaveResult {
	return f.result
}

// StatList returns the stat panel rows for class in display order
func (f *Flow) StatList(class entities.Class) ([]Stat, error) {
	c, ok := f.candidates[class]
	if !ok {
		return nil, errors.InvalidArgumentf("unknown class %q", class).WithReason(errors.ReasonInvalidClass)
	}

	name := c.Name
	if name == "" {
		name = "-"
	}
	primary := ""
	if spec, ok := entities.LookupClass(class); ok {
		primary = spec.PrimaryAbility
	}

	s := c.Stats
	return []Stat{
		{"Name", name},
		{"Class", string(c.Class)},
		{"Level", fmt.Sprint(entities.StartingLevel)},
		{"Strength", fmt.Sprint(s.Strength)},
		{"Dexterity", fmt.Sprint(s.Dexterity)},
		{"Constitution", fmt.Sprint(s.Constitution)},
		{"Intelligence", fmt.Sprint(s.Intelligence)},
		{"Health", fmt.Sprintf("%d/%d", s.Health, s.MaxHealth)},
		{"Mana", fmt.Sprintf("%d/%d", s.Mana, s.MaxMana)},
		{"Weakness", s.Weakness},
		{"Ability", primary},
	}, nil
}
