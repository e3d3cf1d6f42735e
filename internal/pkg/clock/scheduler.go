package clock

import (
	"sort"
	"time"
)

// TimerID identifies a scheduled callback
type TimerID uint64

type timer struct {
	id  TimerID
	due time.Duration
	fn  func()
}

// Scheduler queues single-shot callbacks against simulated time. Time only
// moves when the owner calls Advance, so firing happens on the caller's
// goroutine in due order. Not safe for concurrent use.
type Scheduler struct {
	elapsed time.Duration
	nextID  TimerID
	timers  []timer
}

// NewScheduler returns an empty scheduler at time zero
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After queues fn to run once delay has elapsed
func (s *Scheduler) After(delay time.Duration, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.timers = append(s.timers, timer{
		id:  s.nextID,
		due: s.elapsed + delay,
		fn:  fn,
	})
	return s.nextID
}

// Cancel removes a pending timer. It reports whether the timer was pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves simulated time forward and fires every timer that became due.
// Callbacks may schedule new timers; those fire in the same call if already due.
func (s *Scheduler) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		s.elapsed += elapsed
	}

	fired := 0
	for {
		due := s.popDue()
		if due == nil {
			return fired
		}
		due.fn()
		fired++
	}
}

// Pending returns the number of queued timers
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Elapsed returns the total simulated time
func (s *Scheduler) Elapsed() time.Duration {
	return s.elapsed
}

func (s *Scheduler) popDue() *timer {
	if len(s.timers) == 0 {
		return nil
	}
	sort.SliceStable(s.timers, func(i, j int) bool {
		return s.timers[i].due < s.timers[j].due
	})
	if s.timers[0].due > s.elapsed {
		return nil
	}
	t := s.timers[0]
	s.timers = s.timers[1:]
	return &t
}
