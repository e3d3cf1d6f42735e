package random

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// Scripted implements dice.Roller with predetermined results for tests.
// Each call to Roll consumes the next value regardless of die size.
type Scripted struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewScripted creates a roller that returns rolls in order
func NewScripted(rolls ...int) *Scripted {
	return &Scripted{rolls: rolls}
}

// Push appends more predetermined rolls
func (s *Scripted) Push(rolls ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rolls = append(s.rolls, rolls...)
}

// Remaining returns how many predetermined rolls have not been used
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rolls) - s.rollIndex
}

// Roll implements dice.Roller.Roll
func (s *Scripted) Roll(size int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rollIndex >= len(s.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", s.rollIndex, len(s.rolls))
	}
	roll := s.rolls[s.rollIndex]
	if roll < 1 || roll > size {
		return 0, fmt.Errorf("invalid roll %d for d%d", roll, size)
	}
	s.rollIndex++
	return roll, nil
}

// RollN implements dice.Roller.RollN
func (s *Scripted) RollN(count, size int) ([]int, error) {
	rolls := make([]int, count)
	for i := range rolls {
		r, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		rolls[i] = r
	}
	return rolls, nil
}

var _ dice.Roller = (*Scripted)(nil)
