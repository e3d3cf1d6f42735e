// Package dialogue implements the FIFO dialogue box with a timed text reveal
package dialogue

import (
	"time"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

// DefaultRuneDelay is the reveal rate of the dialogue box
const DefaultRuneDelay = 20 * time.Millisecond

// DefaultSpeaker labels lines pushed without a speaker
const DefaultSpeaker = "Conclave Master"

// Snapshot is what the renderer draws
type Snapshot struct {
	Text     string
	Speaker  string
	Revealed string
	Cursor   int
	Visible  bool
	Complete bool
	Pending  int
}

// Queue is a single-producer single-consumer FIFO driven by one control loop.
// Entries are immutable once pushed.
type Queue struct {
	pending   []entities.DialogueEntry
	current   entities.DialogueEntry
	runes     []rune
	cursor    int
	timer     time.Duration
	visible   bool
	runeDelay time.Duration
}

// NewQueue creates an empty, hidden queue. A non-positive delay uses the default.
func NewQueue(runeDelay time.Duration) *Queue {
	if runeDelay <= 0 {
		runeDelay = DefaultRuneDelay
	}
	return &Queue{runeDelay: runeDelay}
}

// Push appends a line to the tail
func (q *Queue) Push(text, speaker string) {
	if speaker == "" {
		speaker = DefaultSpeaker
	}
	q.pending = append(q.pending, entities.DialogueEntry{Text: text, Speaker: speaker})
}

// Advance makes the head entry current. With nothing left the box is hidden
// and an EMPTY_QUEUE error is returned.
func (q *Queue) Advance() error {
	if len(q.pending) == 0 {
		q.visible = false
		q.current = entities.DialogueEntry{}
		q.runes = nil
		q.cursor = 0
		return errors.FailedPrecondition("no dialogue left").WithReason(errors.ReasonEmptyQueue)
	}

	q.current = q.pending[0]
	q.pending[0] = entities.DialogueEntry{}
	q.pending = q.pending[1:]
	q.runes = []rune(q.current.Text)
	q.cursor = 0
	q.timer = 0
	q.visible = true
	return nil
}

// Skip reveals the whole current entry
func (q *Queue) Skip() {
	q.cursor = len(q.runes)
}

// Continue is the click handler: it finishes a partial reveal, or advances
// once the current entry is fully shown
func (q *Queue) Continue() error {
	if q.visible && q.cursor < len(q.runes) {
		q.Skip()
		return nil
	}
	return q.Advance()
}

// Tick advances the reveal cursor and starts the next entry when the box is hidden
func (q *Queue) Tick(elapsed time.Duration) {
	if !q.visible && len(q.pending) > 0 {
		_ = q.Advance()
	}
	if !q.visible || q.cursor >= len(q.runes) || elapsed <= 0 {
		return
	}

	q.timer += elapsed
	for q.timer >= q.runeDelay && q.cursor < len(q.runes) {
		q.cursor++
		q.timer -= q.runeDelay
	}
	if q.cursor >= len(q.runes) {
		q.timer = 0
	}
}

// Visible reports whether the box is showing an entry
func (q *Queue) Visible() bool {
	return q.visible
}

// Len returns the number of entries waiting behind the current one
func (q *Queue) Len() int {
	return len(q.pending)
}

// Current returns the renderer view
func (q *Queue) Current() Snapshot {
	return Snapshot{
		Text:     q.current.Text,
		Speaker:  q.current.Speaker,
		Revealed: string(q.runes[:q.cursor]),
		Cursor:   q.cursor,
		Visible:  q.visible,
		Complete: q.cursor >= len(q.runes),
		Pending:  len(q.pending),
	}
}
