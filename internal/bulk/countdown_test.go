package bulk

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func runCountdown(t *testing.T, easing Easing, total, target int) ([]int, *Countdown) {
	t.Helper()
	clock := NewManualClock()
	timers := NewTimerSet(clock)
	var values []int
	settled := 0
	c := NewCountdown(timers, CountdownConfig{
		Duration: time.Second,
		Interval: 40 * time.Millisecond,
		Settle:   time.Second,
		Cap:      999,
		Easing:   easing,
	}, func(v int) { values = append(values, v) }, func() { settled++ })

	c.Start(total, target)
	clock.Advance(3 * time.Second)

	require.Equal(t, 1, settled, "countdown should settle exactly once")
	require.False(t, c.Active(), "countdown should be inactive after settling")
	require.Zero(t, timers.Len(), "no timers should be left behind")
	return values, c
}

func TestCountdownLandsOnTarget(t *testing.T) {
	easings := map[string]Easing{"linear": Linear, "ease-out-cubic": EaseOutCubic, "ease-in-out-quad": EaseInOutQuad}
	totals := []int{1, 2, 5, 7, 20, 99, 100, 101, 150, 333, 998, 999}

	for name, easing := range easings {
		for _, total := range totals {
			for _, processed := range []int{1, total / 2, min(total, 100), total} {
				if processed < 1 || processed > total {
					continue
				}
				target := total - processed
				t.Run(fmt.Sprintf("%s/%d-%d", name, total, target), func(t *testing.T) {
					values, c := runCountdown(t, easing, total, target)

					require.NotEmpty(t, values)
					require.Equal(t, target, values[len(values)-1], "final value must be the target")
					require.Equal(t, target, c.Value())
					for i, v := range values {
						require.GreaterOrEqual(t, v, target, "value %d dropped below the target", i)
						require.GreaterOrEqual(t, v, 0)
						if i > 0 {
							require.Less(t, v, values[i-1], "values must strictly decrease without repeats")
						}
					}
				})
			}
		}
	}
}

func TestCountdownStartsAtCap(t *testing.T) {
	values, _ := runCountdown(t, Linear, 1500, 400)
	require.Equal(t, 999, values[0], "counts above the cap start from the cap")
	require.Equal(t, 400, values[len(values)-1])
}

func TestCountdownAboveCapJumps(t *testing.T) {
	values, _ := runCountdown(t, EaseOutCubic, 1500, 1400)
	require.Equal(t, []int{1500, 1400}, values, "targets above the cap are shown without stepping")
}

func TestCountdownZeroWork(t *testing.T) {
	values, _ := runCountdown(t, Linear, 10, 10)
	require.Equal(t, []int{10}, values)
}

func TestCountdownStopKeepsValue(t *testing.T) {
	clock := NewManualClock()
	timers := NewTimerSet(clock)
	var values []int
	c := NewCountdown(timers, CountdownConfig{
		Duration: time.Second,
		Interval: 40 * time.Millisecond,
		Settle:   time.Second,
		Cap:      999,
		Easing:   Linear,
	}, func(v int) { values = append(values, v) }, nil)

	c.Start(100, 0)
	clock.Advance(200 * time.Millisecond)
	seen := len(values)
	last := c.Value()

	c.Stop()
	clock.Advance(5 * time.Second)
	require.Len(t, values, seen, "no values after Stop")
	require.Equal(t, last, c.Value())
	require.False(t, c.Active())

	c.Reset()
	require.Zero(t, c.Value())
}

func TestEasingByName(t *testing.T) {
	for _, name := range []string{"linear", "ease-out-cubic", "ease-in-out-quad"} {
		e, ok := EasingByName(name)
		require.True(t, ok, name)
		require.InDelta(t, 0, e(0), 1e-9)
		require.InDelta(t, 1, e(1), 1e-9)
	}
	_, ok := EasingByName("bounce")
	require.False(t, ok)
}
