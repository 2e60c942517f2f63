package bulk

import (
	"time"

	"memodeck/internal/domain"
)

// Anchor is the on-screen control items converge on
type Anchor string

const (
	AnchorBin  Anchor = "bin"
	AnchorList Anchor = "list"
)

// AnchorFor picks where items of op travel to
func AnchorFor(op domain.Operation) Anchor {
	if op == domain.OpRestore {
		return AnchorList
	}
	return AnchorBin
}

// Animator plays a convergence of ids toward anchor and calls onComplete
// once, unless the returned Timer is stopped first
type Animator interface {
	Play(ids []int, anchor Anchor, onComplete func()) Timer
}

// Frame is one step of a convergence. The first Landed ids (in play order)
// have reached the anchor.
type Frame struct {
	IDs      []int
	Anchor   Anchor
	Landed   int
	Progress float64
	Done     bool
}

// Convergence animates ids in order: they land one after another, spread
// evenly across Duration
type Convergence struct {
	sched    Scheduler
	duration time.Duration
	interval time.Duration
	onFrame  func(Frame)
}

// NewConvergence creates an animator ticking every interval for duration
func NewConvergence(s Scheduler, duration, interval time.Duration, onFrame func(Frame)) *Convergence {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &Convergence{sched: s, duration: duration, interval: interval, onFrame: onFrame}
}

type convergenceRun struct {
	c          *Convergence
	ids        []int
	anchor     Anchor
	onComplete func()
	tick       int
	steps      int
	delay      time.Duration
	pending    Timer
	stopped    bool
	done       bool
}

func (c *Convergence) Play(ids []int, anchor Anchor, onComplete func()) Timer {
	r := &convergenceRun{
		c:          c,
		ids:        append([]int(nil), ids...),
		anchor:     anchor,
		onComplete: onComplete,
		steps:      max(int(c.duration/c.interval), 1),
	}
	if c.duration > 0 {
		r.delay = c.duration / time.Duration(r.steps)
	}
	r.emit()
	r.pending = c.sched.AfterFunc(r.delay, r.advance)
	return r
}

func (r *convergenceRun) advance() {
	if r.stopped || r.done {
		return
	}
	r.tick++
	if r.tick >= r.steps {
		r.done = true
		r.emit()
		if r.onComplete != nil {
			r.onComplete()
		}
		return
	}
	r.emit()
	r.pending = r.c.sched.AfterFunc(r.delay, r.advance)
}

func (r *convergenceRun) emit() {
	if r.c.onFrame == nil {
		return
	}
	progress := float64(r.tick) / float64(r.steps)
	landed := int(progress * float64(len(r.ids)))
	if r.done {
		progress, landed = 1, len(r.ids)
	}
	r.c.onFrame(Frame{IDs: r.ids, Anchor: r.anchor, Landed: landed, Progress: progress, Done: r.done})
}

func (r *convergenceRun) Stop() bool {
	if r.stopped || r.done {
		return false
	}
	r.stopped = true
	if r.pending != nil {
		r.pending.Stop()
	}
	return true
}
