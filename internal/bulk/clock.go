package bulk

import (
	"sort"
	"time"
)

// ManualClock is a Scheduler driven by Advance, for deterministic tests and
// for replaying a batch without a terminal
type ManualClock struct {
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewManualClock returns a clock at time zero
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Now returns the elapsed virtual time
func (c *ManualClock) Now() time.Duration {
	return c.now
}

func (c *ManualClock) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &manualTimer{at: c.now + d, seq: c.seq, fn: fn}
	c.pending = append(c.pending, t)
	return t
}

// Advance moves time forward by d, firing due callbacks in deadline order.
// Callbacks scheduled while advancing fire too if they fall inside the window.
func (c *ManualClock) Advance(d time.Duration) {
	end := c.now + d
	for {
		next := c.nextDue(end)
		if next == nil {
			break
		}
		c.now = next.at
		next.fired = true
		next.fn()
	}
	c.now = end
}

// Pending returns the number of live timers
func (c *ManualClock) Pending() int {
	c.compact()
	return len(c.pending)
}

func (c *ManualClock) nextDue(end time.Duration) *manualTimer {
	c.compact()
	sort.SliceStable(c.pending, func(i, j int) bool {
		if c.pending[i].at != c.pending[j].at {
			return c.pending[i].at < c.pending[j].at
		}
		return c.pending[i].seq < c.pending[j].seq
	})
	if len(c.pending) == 0 || c.pending[0].at > end {
		return nil
	}
	t := c.pending[0]
	c.pending = c.pending[1:]
	return t
}

func (c *ManualClock) compact() {
	live := c.pending[:0]
	for _, t := range c.pending {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	c.pending = live
}
