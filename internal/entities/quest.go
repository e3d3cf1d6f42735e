package entities

import "fmt"

// Quest is a multi-step objective. Title is its identity within a tracker.
type Quest struct {
	Title          string
	Description    string
	Location       string
	Reward         string
	StoryHook      string
	TotalSteps     int
	StepsCompleted int
	Completed      bool
}

// Progress renders "completed/total"
func (q *Quest) Progress() string {
	return fmt.Sprintf("%d/%d", q.StepsCompleted, q.TotalSteps)
}

// Clone returns a copy
func (q *Quest) Clone() *Quest {
	if q == nil {
		return nil
	}
	cp := *q
	return &cp
}
