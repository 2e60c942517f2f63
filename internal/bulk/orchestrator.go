package bulk

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"memodeck/internal/domain"
	"memodeck/internal/eventbus"
)

var (
	ErrBatchInProgress = errors.New("a batch is already in progress")
	ErrEmptySelection  = errors.New("nothing selected")
	ErrNotConfirming   = errors.New("no batch is awaiting confirmation")
	ErrUnsupported     = errors.New("operation not available on this tab")
)

// State of the orchestrator
type State int

const (
	Idle State = iota
	Confirming
	Animating
	Finalizing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Confirming:
		return "confirming"
	case Animating:
		return "animating"
	case Finalizing:
		return "finalizing"
	}
	return "unknown"
}

// Descriptor is what a batch processes. It is fixed when the batch begins.
type Descriptor struct {
	ID            string
	Key           TabKey
	Operation     domain.Operation
	ItemType      domain.ItemType
	Targets       []int
	TotalSelected int
	Partial       bool
}

// Session is the visible state of the running batch. It is the zero value
// whenever the orchestrator is idle.
type Session struct {
	DisplayCount      int
	CountingActive    bool
	PartialProcessing bool
	LidOpen           bool
	Processing        bool
}

// Presenter receives the visual side of a batch
type Presenter interface {
	ShowConfirmation(ids []int, message string)
	SetLidOpen(open bool)
	SetProcessing(active bool)
	SetDisplayCount(n int)
}

// ListSink keeps the caller's item lists in step with a finished batch.
// It is called once per processed identifier.
type ListSink interface {
	ItemRemoved(itemType domain.ItemType, id int)
	ItemRestored(itemType domain.ItemType, id int)
}

// Settings are the timings and limits of a batch
type Settings struct {
	Cap                int
	CountCap           int
	AnimationDuration  time.Duration
	Interval           time.Duration
	SettleDelay        time.Duration
	LidCloseDelay      time.Duration
	ProcessingEndDelay time.Duration
	Easing             Easing
}

// DefaultSettings returns the stock limits and timings
func DefaultSettings() Settings {
	return Settings{
		Cap:                100,
		CountCap:           999,
		AnimationDuration:  time.Second,
		Interval:           40 * time.Millisecond,
		SettleDelay:        time.Second,
		LidCloseDelay:      500 * time.Millisecond,
		ProcessingEndDelay: 600 * time.Millisecond,
		Easing:             EaseOutCubic,
	}
}

// Deps are the collaborators of an Orchestrator. Animator and Bus may be nil.
type Deps struct {
	Order     OrderReader
	Selection *SelectionStore
	Mutations *MutationTable
	Animator  Animator
	Presenter Presenter
	Sink      ListSink
	Scheduler Scheduler
	Bus       eventbus.EventBus
	// Context is handed to mutations. Cancelling a batch does not cancel it.
	Context context.Context
}

// Orchestrator runs one bulk delete, purge or restore at a time:
// Idle -> Confirming -> Animating -> Finalizing -> Idle, with Cancel
// returning to Idle from anywhere. All methods must be called from the
// goroutine the Scheduler delivers callbacks on.
type Orchestrator struct {
	deps      Deps
	settings  Settings
	timers    *TimerSet
	countdown *Countdown

	state           State
	desc            *Descriptor
	session         Session
	processingEnded bool
	flight          *Flight
}

// New wires an orchestrator
func New(deps Deps, settings Settings) *Orchestrator {
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	if deps.Animator == nil {
		deps.Animator = NewConvergence(deps.Scheduler, settings.AnimationDuration, settings.Interval, nil)
	}

	o := &Orchestrator{
		deps:     deps,
		settings: settings,
		timers:   NewTimerSet(deps.Scheduler),
	}
	o.countdown = NewCountdown(o.timers, CountdownConfig{
		Duration: settings.AnimationDuration,
		Interval: settings.Interval,
		Settle:   settings.SettleDelay,
		Cap:      settings.CountCap,
		Easing:   settings.Easing,
	}, o.onCount, o.onCountSettled)
	return o
}

// Allowed reports whether op can run on tab
func Allowed(tab domain.Tab, op domain.Operation) bool {
	if op == domain.OpDelete {
		return tab != domain.TabDeleted
	}
	return tab == domain.TabDeleted
}

// SelectAll selects every item of key in display order, or in dataOrder
// when nothing has been rendered
func (o *Orchestrator) SelectAll(key TabKey, dataOrder []int) {
	ids, ok := o.deps.Order.ReadOrder(key.ItemType)
	if !ok {
		ids = dataOrder
	}
	o.deps.Selection.SelectAll(key, ids)
}

// IsAllSelected checks the selection against the same order SelectAll uses
func (o *Orchestrator) IsAllSelected(key TabKey, dataOrder []int) bool {
	ids, ok := o.deps.Order.ReadOrder(key.ItemType)
	if !ok {
		ids = dataOrder
	}
	return o.deps.Selection.IsAllSelected(key, ids)
}

// PruneSelection drops identifiers no longer listed. It does nothing while
// a partial batch is running, since that batch still relies on them.
func (o *Orchestrator) PruneSelection(key TabKey, present []int) int {
	if o.session.PartialProcessing {
		return 0
	}
	return o.deps.Selection.Prune(key, present)
}

// Begin captures the selection of key in display order and asks for confirmation
func (o *Orchestrator) Begin(key TabKey, op domain.Operation) (Descriptor, error) {
	if o.state != Idle {
		return Descriptor{}, ErrBatchInProgress
	}
	if !Allowed(key.Tab, op) {
		return Descriptor{}, ErrUnsupported
	}

	selected := o.deps.Selection.Selected(key)
	if len(selected) == 0 {
		return Descriptor{}, ErrEmptySelection
	}

	ordered := selected
	if order, ok := o.deps.Order.ReadOrder(key.ItemType); ok {
		ordered = OrderBy(selected, order)
	} else {
		log.Printf("bulk: no display order for %s, using selection order", key)
	}

	n := min(len(ordered), o.settings.Cap)
	d := &Descriptor{
		ID:            uuid.NewString(),
		Key:           key,
		Operation:     op,
		ItemType:      key.ItemType,
		Targets:       append([]int(nil), ordered[:n]...),
		TotalSelected: len(ordered),
		Partial:       len(ordered) > o.settings.Cap,
	}
	o.desc = d
	o.state = Confirming

	o.deps.Presenter.ShowConfirmation(append([]int(nil), d.Targets...), ConfirmationMessage(*d))
	return *d, nil
}

// Decline drops the pending batch and keeps the selection
func (o *Orchestrator) Decline() {
	if o.state != Confirming {
		return
	}
	o.desc = nil
	o.state = Idle
}

// Confirm starts the pending batch: lid, countdown, mutations and animation
func (o *Orchestrator) Confirm() error {
	if o.state != Confirming || o.desc == nil {
		return ErrNotConfirming
	}
	d := *o.desc
	o.state = Animating
	o.processingEnded = false

	o.session = Session{
		LidOpen:           true,
		Processing:        true,
		PartialProcessing: d.Partial,
		CountingActive:    true,
	}
	o.deps.Presenter.SetLidOpen(true)
	o.deps.Presenter.SetProcessing(true)

	o.countdown.Start(d.TotalSelected, d.TotalSelected-len(d.Targets))

	o.flight = o.deps.Mutations.Execute(o.deps.Context, d)

	o.timers.Track(RoleAnimation, o.deps.Animator.Play(d.Targets, AnchorFor(d.Operation), func() {
		o.finalize(d.ID)
	}))

	log.Printf("bulk: batch %s started: %s %d/%d %s", d.ID, d.Operation, len(d.Targets), d.TotalSelected, d.ItemType.Plural())
	o.publish(eventbus.BatchStartedEvent{
		BatchID:   d.ID,
		Operation: d.Operation,
		ItemType:  d.ItemType,
		Count:     len(d.Targets),
		Total:     d.TotalSelected,
		Partial:   d.Partial,
	})
	return nil
}

func (o *Orchestrator) finalize(batchID string) {
	if o.state != Animating || o.desc == nil || o.desc.ID != batchID {
		return
	}
	o.state = Finalizing
	o.timers.Stop(RoleAnimation)
	d := *o.desc

	if d.Partial {
		o.deps.Selection.Remove(d.Key, d.Targets)
	} else {
		o.deps.Selection.Clear(d.Key)
	}

	for _, id := range d.Targets {
		if d.Operation == domain.OpRestore {
			o.deps.Sink.ItemRestored(d.ItemType, id)
		} else {
			o.deps.Sink.ItemRemoved(d.ItemType, id)
		}
	}

	o.timers.Schedule(RoleLidClose, o.settings.LidCloseDelay, func() {
		o.session.LidOpen = false
		o.deps.Presenter.SetLidOpen(false)
		o.timers.Schedule(RoleProcessingEnd, o.settings.ProcessingEndDelay, func() {
			o.processingEnded = true
			o.finishIfDone()
		})
	})
}

// finishIfDone returns to Idle once the processing delay ran out and the
// countdown let go of its final value
func (o *Orchestrator) finishIfDone() {
	if o.state != Finalizing || !o.processingEnded || o.countdown.Active() {
		return
	}
	d := *o.desc

	o.timers.StopAll()
	o.countdown.Reset()
	o.session = Session{}
	o.processingEnded = false
	o.deps.Presenter.SetProcessing(false)
	o.deps.Presenter.SetDisplayCount(0)
	o.desc = nil
	o.state = Idle

	remaining := o.deps.Selection.Count(d.Key)
	log.Printf("bulk: batch %s finalized, %d still selected", d.ID, remaining)
	o.publish(eventbus.BatchFinalizedEvent{
		BatchID:   d.ID,
		Operation: d.Operation,
		ItemType:  d.ItemType,
		Processed: len(d.Targets),
		Remaining: remaining,
	})
}

// Cancel stops whatever is running and resets to Idle in one pass. No
// callback of the cancelled batch runs afterwards. Safe to call when idle.
// Mutations already issued are left to finish.
func (o *Orchestrator) Cancel(reason string) {
	d := o.desc

	o.timers.StopAll()
	o.countdown.Reset()
	o.session = Session{}
	o.processingEnded = false
	o.desc = nil
	o.state = Idle

	o.deps.Presenter.SetLidOpen(false)
	o.deps.Presenter.SetProcessing(false)
	o.deps.Presenter.SetDisplayCount(0)

	if d != nil {
		log.Printf("bulk: batch %s cancelled: %s", d.ID, reason)
		o.publish(eventbus.BatchCancelledEvent{BatchID: d.ID, Reason: reason})
	}
}

func (o *Orchestrator) onCount(v int) {
	o.session.DisplayCount = v
	o.deps.Presenter.SetDisplayCount(v)
}

func (o *Orchestrator) onCountSettled() {
	o.session.CountingActive = false
	o.finishIfDone()
}

// State returns the current state
func (o *Orchestrator) State() State { return o.state }

// Busy reports whether a batch is pending or running
func (o *Orchestrator) Busy() bool { return o.state != Idle }

// Session returns a snapshot of the visible batch state
func (o *Orchestrator) Session() Session { return o.session }

// Descriptor returns the pending or running batch
func (o *Orchestrator) Descriptor() (Descriptor, bool) {
	if o.desc == nil {
		return Descriptor{}, false
	}
	return *o.desc, true
}

// Flight returns the mutations of the most recently confirmed batch
func (o *Orchestrator) Flight() *Flight { return o.flight }

// PendingTimers returns how many timers the current batch owns
func (o *Orchestrator) PendingTimers() int { return o.timers.Len() }

func (o *Orchestrator) publish(e eventbus.DomainEvent) {
	if o.deps.Bus != nil {
		o.deps.Bus.Publish(e)
	}
}
