package bulk

import (
	"math"
	"time"
)

// Easing maps linear progress in [0,1] to eased progress in [0,1]
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

var easings = map[string]Easing{
	"linear":           Linear,
	"ease-out-cubic":   EaseOutCubic,
	"ease-in-out-quad": EaseInOutQuad,
}

// EasingByName resolves a configured easing name
func EasingByName(name string) (Easing, bool) {
	e, ok := easings[name]
	return e, ok
}

// CountdownConfig controls one countdown run
type CountdownConfig struct {
	Duration time.Duration
	Interval time.Duration
	Settle   time.Duration
	// Cap is the largest value counted in steps; larger targets are shown raw
	Cap    int
	Easing Easing
}

// Countdown steps an integer from a start count to a target count on the
// timer set it is given. Values only move toward the target and the last
// stepped value is exactly the target.
type Countdown struct {
	timers    *TimerSet
	cfg       CountdownConfig
	onValue   func(int)
	onSettled func()

	start, target int
	value         int
	emitted       bool
	tick, steps   int
	active        bool
}

// NewCountdown creates an idle countdown. onValue receives every new value;
// onSettled runs once the final value has been held for the settle delay.
func NewCountdown(timers *TimerSet, cfg CountdownConfig, onValue func(int), onSettled func()) *Countdown {
	if cfg.Easing == nil {
		cfg.Easing = Linear
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 16 * time.Millisecond
	}
	return &Countdown{timers: timers, cfg: cfg, onValue: onValue, onSettled: onSettled}
}

// Start begins counting from total toward target, replacing any run in progress
func (c *Countdown) Start(total, target int) {
	c.Stop()
	c.emitted = false
	c.active = true
	total = max(total, 0)
	target = max(target, 0)

	if target > c.cfg.Cap {
		c.emit(total)
		c.timers.Schedule(RoleSettle, c.cfg.Duration+c.cfg.Settle, func() {
			c.emit(target)
			c.settle()
		})
		return
	}

	c.start = min(total, c.cfg.Cap)
	c.target = target
	c.tick = 0
	c.steps = max(int(c.cfg.Duration/c.cfg.Interval), 1)

	c.emit(c.start)
	if c.start == c.target {
		c.land()
		return
	}
	c.timers.Schedule(RoleCountdownTick, c.cfg.Interval, c.step)
}

func (c *Countdown) step() {
	c.tick++
	if c.tick >= c.steps {
		c.emit(c.target)
		c.land()
		return
	}

	progress := c.cfg.Easing(float64(c.tick) / float64(c.steps))
	progress = math.Min(math.Max(progress, 0), 1)
	delta := c.target - c.start
	v := c.start + int(math.Round(float64(delta)*progress))

	// Clamp between the previous value and the target
	if delta < 0 {
		v = min(max(v, c.target), c.value)
	} else {
		v = max(min(v, c.target), c.value)
	}
	c.emit(v)

	if v == c.target {
		c.land()
		return
	}
	c.timers.Schedule(RoleCountdownTick, c.cfg.Interval, c.step)
}

func (c *Countdown) land() {
	c.timers.Stop(RoleCountdownTick)
	c.timers.Schedule(RoleSettle, c.cfg.Settle, c.settle)
}

func (c *Countdown) settle() {
	c.active = false
	if c.onSettled != nil {
		c.onSettled()
	}
}

func (c *Countdown) emit(v int) {
	v = max(v, 0)
	if c.emitted && v == c.value {
		return
	}
	c.value = v
	c.emitted = true
	if c.onValue != nil {
		c.onValue(v)
	}
}

// Stop cancels pending ticks and the settle hold. The last value is kept.
func (c *Countdown) Stop() {
	c.timers.Stop(RoleCountdownTick)
	c.timers.Stop(RoleSettle)
	c.active = false
}

// Reset stops the countdown and zeroes its value without emitting
func (c *Countdown) Reset() {
	c.Stop()
	c.value = 0
	c.emitted = false
}

// Value returns the last emitted value
func (c *Countdown) Value() int { return c.value }

// Active reports whether the countdown is stepping or holding its final value
func (c *Countdown) Active() bool { return c.active }
