package bulk

import "time"

// Timer is a pending callback that can be stopped
type Timer interface {
	// Stop prevents the callback from running; it reports false if the
	// callback already ran or was already stopped
	Stop() bool
}

// Scheduler runs fn once after d. Implementations must deliver the callback
// on the goroutine that owns the orchestrator.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Role names one kind of timer a batch owns
type Role string

const (
	RoleCountdownTick Role = "countdown-tick"
	RoleSettle        Role = "settle"
	RoleAnimation     Role = "animation"
	RoleLidClose      Role = "lid-close"
	RoleProcessingEnd Role = "processing-end"
)

type timerEntry struct {
	timer Timer
}

// TimerSet holds at most one timer per role so everything scheduled for a
// batch can be cancelled as a unit. Not safe for concurrent use.
type TimerSet struct {
	sched  Scheduler
	timers map[Role]*timerEntry
}

// NewTimerSet creates an empty set scheduling on s
func NewTimerSet(s Scheduler) *TimerSet {
	return &TimerSet{sched: s, timers: make(map[Role]*timerEntry)}
}

// Schedule runs fn after d, replacing any pending timer of the same role
func (s *TimerSet) Schedule(role Role, d time.Duration, fn func()) {
	s.Stop(role)
	entry := &timerEntry{}
	s.timers[role] = entry
	entry.timer = s.sched.AfterFunc(d, func() {
		// A stale entry means the role was stopped or rescheduled
		if s.timers[role] != entry {
			return
		}
		delete(s.timers, role)
		fn()
	})
}

// Track adopts an externally created timer under role
func (s *TimerSet) Track(role Role, t Timer) {
	s.Stop(role)
	if t != nil {
		s.timers[role] = &timerEntry{timer: t}
	}
}

// Stop cancels the timer for role, if any
func (s *TimerSet) Stop(role Role) {
	if entry, ok := s.timers[role]; ok {
		delete(s.timers, role)
		if entry.timer != nil {
			entry.timer.Stop()
		}
	}
}

// StopAll cancels every pending timer
func (s *TimerSet) StopAll() {
	for role := range s.timers {
		s.Stop(role)
	}
}

// Pending reports whether a timer for role is scheduled
func (s *TimerSet) Pending(role Role) bool {
	_, ok := s.timers[role]
	return ok
}

// Len returns the number of pending timers
func (s *TimerSet) Len() int {
	return len(s.timers)
}
