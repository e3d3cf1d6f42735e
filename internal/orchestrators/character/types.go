package character

import "github.com/KirkDiggler/rpg-tabletop/internal/entities"

// Phase is a step of the selection screen
type Phase string

// Phases in order. Back and Acknowledge move between them.
const (
	PhaseSelect    Phase = "select"
	PhaseNameInput Phase = "name_input"
	PhaseFinal     Phase = "final"
	PhaseSaving    Phase = "saving"
	PhaseSaved     Phase = "saved"
)

// MaxNameLength is the longest name the input box accepts, in runes
const MaxNameLength = 18

// Stat is one labelled row of the stat panel
type Stat struct {
	Label string
	Value string
}

// Candidate is a rolled character shown on the selection screen
type Candidate struct {
	Class entities.Class
	Name  string
	Stats entities.StatBlock
}

// SaveResult is the outcome of Confirm, shown until acknowledged
type SaveResult struct {
	CharacterID int64
	Success     bool
	Message     string
	Err         error
}
