// Package quest tracks multi-step quests and the active quest pointer
package quest

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

// JournalSpeaker labels the lines the tracker pushes
const JournalSpeaker = "Adventure Journal"

// Journal receives narration lines. *dialogue.Queue satisfies it.
type Journal interface {
	Push(text, speaker string)
}

// StepResult is returned by CompleteStep. Reward is only set on the call that
// completes the quest.
type StepResult struct {
	Title     string
	Reward    string
	Completed bool
	Progress  string
}

// Tracker holds quests in the order they were added. Titles are unique.
type Tracker struct {
	quests  []*entities.Quest
	byTitle map[string]*entities.Quest
	active  *entities.Quest
	journal Journal
}

// NewTracker creates an empty tracker. journal may be nil.
func NewTracker(journal Journal) *Tracker {
	return &Tracker{
		byTitle: make(map[string]*entities.Quest),
		journal: journal,
	}
}

func (t *Tracker) push(text string) {
	if t.journal != nil && text != "" {
		t.journal.Push(text, JournalSpeaker)
	}
}

// Add offers a new quest. The first quest added becomes active.
func (t *Tracker) Add(q *entities.Quest) error {
	if q == nil {
		return errors.InvalidArgument("quest is required")
	}
	title := strings.TrimSpace(q.Title)
	if title == "" {
		return errors.InvalidArgument("quest title is required")
	}
	if q.TotalSteps < 1 {
		return errors.InvalidArgumentf("quest %q needs at least one step, got %d", title, q.TotalSteps)
	}
	if _, exists := t.byTitle[title]; exists {
		return errors.AlreadyExistsf("quest %q already in the journal", title).
			WithReason(errors.ReasonDuplicateTitle)
	}

	stored := q.Clone()
	stored.Title = title
	if stored.StepsCompleted > stored.TotalSteps {
		stored.StepsCompleted = stored.TotalSteps
	}
	stored.Completed = stored.StepsCompleted == stored.TotalSteps

	t.quests = append(t.quests, stored)
	t.byTitle[title] = stored
	if t.active == nil && !stored.Completed {
		t.active = stored
	}

	slog.Info("Quest added", "title", title, "total_steps", stored.TotalSteps)
	t.push(fmt.Sprintf("New quest: %s", title))
	t.push(stored.StoryHook)

	return nil
}

// CompleteStep records progress on a quest
func (t *Tracker) CompleteStep(title string) (*StepResult, error) {
	q, ok := t.byTitle[title]
	if !ok {
		return nil, errors.NotFoundf("quest %q not found", title).
			WithReason(errors.ReasonQuestNotFound)
	}
	if q.Completed {
		return nil, errors.FailedPreconditionf("quest %q already complete", title).
			WithReason(errors.ReasonAlreadyComplete)
	}

	q.StepsCompleted++
	result := &StepResult{
		Title:    q.Title,
		Progress: q.Progress(),
	}

	if q.StepsCompleted >= q.TotalSteps {
		q.Completed = true
		result.Completed = true
		result.Reward = q.Reward
		if t.active == q {
			t.active = t.firstIncomplete()
		}

		slog.Info("Quest completed", "title", q.Title, "reward", q.Reward)
		t.push(fmt.Sprintf("Quest complete: %s!", q.Title))
		t.push(fmt.Sprintf("Reward: %s", q.Reward))
		return result, nil
	}

	t.push(fmt.Sprintf("Progress on %s: %s", q.Title, result.Progress))
	return result, nil
}

func (t *Tracker) firstIncomplete() *entities.Quest {
	for _, q := range t.quests {
		if !q.Completed {
			return q
		}
	}
	return nil
}

// Current returns a copy of the active quest, or nil
func (t *Tracker) Current() *entities.Quest {
	return t.active.Clone()
}

// Active returns copies of every incomplete quest in insertion order
func (t *Tracker) Active() []*entities.Quest {
	return t.filter(false)
}

// Completed returns copies of every completed quest in insertion order
func (t *Tracker) Completed() []*entities.Quest {
	return t.filter(true)
}

// Get returns a copy of a quest by title
func (t *Tracker) Get(title string) (*entities.Quest, error) {
	q, ok := t.byTitle[title]
	if !ok {
		return nil, errors.NotFoundf("quest %q not found", title).
			WithReason(errors.ReasonQuestNotFound)
	}
	return q.Clone(), nil
}

func (t *Tracker) filter(completed bool) []*entities.Quest {
	var out []*entities.Quest
	for _, q := range t.quests {
		if q.Completed == completed {
			out = append(out, q.Clone())
		}
	}
	return out
}

// Summarize pushes the journal overview: active quests with progress, then
// completed quests with rewards
func (t *Tracker) Summarize() {
	active, completed := t.Active(), t.Completed()
	if len(active) == 0 && len(completed) == 0 {
		t.push("Your journal is empty. Accept quests to fill it!")
		return
	}
	if len(active) > 0 {
		t.push("ACTIVE QUESTS:")
		for _, q := range active {
			t.push(fmt.Sprintf("- %s [%s]", q.Title, q.Progress()))
			t.push("  " + q.Description)
		}
	}
	if len(completed) > 0 {
		t.push("COMPLETED QUESTS:")
		for _, q := range completed {
			t.push(fmt.Sprintf("- %s - Reward: %s", q.Title, q.Reward))
		}
	}
}
