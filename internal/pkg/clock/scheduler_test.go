package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock"
)

func TestSchedulerFiresOnceWhenDue(t *testing.T) {
	s := clock.NewScheduler()
	calls := 0
	s.After(1200*time.Millisecond, func() { calls++ })

	assert.Equal(t, 0, s.Advance(1199*time.Millisecond))
	assert.Equal(t, 0, calls)

	assert.Equal(t, 1, s.Advance(time.Millisecond))
	assert.Equal(t, 1, calls)

	assert.Equal(t, 0, s.Advance(time.Hour))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Pending())
}

func TestSchedulerOrdersByDueTime(t *testing.T) {
	s := clock.NewScheduler()
	var order []string
	s.After(300*time.Millisecond, func() { order = append(order, "late") })
	s.After(100*time.Millisecond, func() { order = append(order, "early") })

	s.Advance(time.Second)
	assert.Equal(t, []string{"early", "late"}, order)
}

func TestSchedulerCancel(t *testing.T) {
	s := clock.NewScheduler()
	fired := false
	id := s.After(time.Second, func() { fired = true })

	require.True(t, s.Cancel(id))
	assert.False(t, s.Cancel(id))
	s.Advance(2 * time.Second)
	assert.False(t, fired)
}

func TestSchedulerChainedTimer(t *testing.T) {
	s := clock.NewScheduler()
	count := 0
	s.After(10*time.Millisecond, func() {
		count++
		s.After(0, func() { count++ })
	})

	assert.Equal(t, 2, s.Advance(10*time.Millisecond))
	assert.Equal(t, 2, count)
	assert.Equal(t, 10*time.Millisecond, s.Elapsed())
}
