package bulk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManualClockFiresInDeadlineOrder(t *testing.T) {
	clock := NewManualClock()
	var got []string
	clock.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	clock.AfterFunc(10*time.Millisecond, func() {
		got = append(got, "a")
		clock.AfterFunc(5*time.Millisecond, func() { got = append(got, "b") })
	})
	clock.AfterFunc(30*time.Millisecond, func() { got = append(got, "d") })

	clock.Advance(20 * time.Millisecond)
	require.Equal(t, []string{"a", "b"}, got)
	require.Equal(t, 20*time.Millisecond, clock.Now())

	clock.Advance(20 * time.Millisecond)
	require.Equal(t, []string{"a", "b", "c", "d"}, got, "ties fire in scheduling order")
	require.Zero(t, clock.Pending())
}

func TestTimerSetReplacesAndStops(t *testing.T) {
	clock := NewManualClock()
	set := NewTimerSet(clock)
	fired := map[string]int{}

	set.Schedule(RoleSettle, 10*time.Millisecond, func() { fired["old"]++ })
	set.Schedule(RoleSettle, 20*time.Millisecond, func() { fired["new"]++ })
	set.Schedule(RoleLidClose, 10*time.Millisecond, func() { fired["lid"]++ })
	require.Equal(t, 2, set.Len())
	require.True(t, set.Pending(RoleSettle))

	set.Stop(RoleLidClose)
	clock.Advance(time.Second)

	require.Equal(t, map[string]int{"new": 1}, fired, "replaced and stopped timers must not fire")
	require.Zero(t, set.Len())
}

func TestTimerSetStopAll(t *testing.T) {
	clock := NewManualClock()
	set := NewTimerSet(clock)
	fired := 0
	for _, role := range []Role{RoleCountdownTick, RoleSettle, RoleLidClose, RoleProcessingEnd} {
		set.Schedule(role, time.Millisecond, func() { fired++ })
	}
	set.StopAll()
	clock.Advance(time.Second)
	require.Zero(t, fired)
	require.Zero(t, clock.Pending())
}
