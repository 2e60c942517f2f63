package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"memodeck/internal/bulk"
)

// timerFiredMsg is delivered when a LoopScheduler timer is due
type timerFiredMsg struct {
	id int
}

// LoopScheduler runs bulk timers on the Bubble Tea update loop. AfterFunc
// queues a tea.Tick; the model drains the queue after every update and
// feeds timerFiredMsg back through Fire.
type LoopScheduler struct {
	nextID int
	timers map[int]*loopTimer
	queued []tea.Cmd
}

type loopTimer struct {
	s    *LoopScheduler
	id   int
	fn   func()
	done bool
}

func (t *loopTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	delete(t.s.timers, t.id)
	return true
}

// NewLoopScheduler creates an empty scheduler
func NewLoopScheduler() *LoopScheduler {
	return &LoopScheduler{timers: make(map[int]*loopTimer)}
}

func (s *LoopScheduler) AfterFunc(d time.Duration, fn func()) bulk.Timer {
	s.nextID++
	id := s.nextID
	t := &loopTimer{s: s, id: id, fn: fn}
	s.timers[id] = t
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
	return t
}

// Fire runs the callback of timer id. Stopped or unknown timers are ignored.
func (s *LoopScheduler) Fire(id int) {
	t, ok := s.timers[id]
	if !ok {
		return
	}
	delete(s.timers, id)
	t.done = true
	t.fn()
}

// Drain returns the ticks queued since the last call
func (s *LoopScheduler) Drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// Pending returns the number of live timers
func (s *LoopScheduler) Pending() int {
	return len(s.timers)
}
