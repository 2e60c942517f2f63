package bulk

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"memodeck/internal/domain"
	"memodeck/internal/eventbus"
	"memodeck/internal/logic"
)

// ErrNoMutation is the failure recorded for every identifier of a batch whose
// (operation, item type) pair has nothing registered
var ErrNoMutation = errors.New("no mutation registered")

// MutateFunc performs one mutation for one identifier
type MutateFunc func(ctx context.Context, id int) error

// RestoreFunc restores one deleted item by its original identifier
type RestoreFunc func(ctx context.Context, originalID string) error

// Resolver maps a deleted row to the original identifier it restores to
type Resolver interface {
	OriginalID(ctx context.Context, itemType domain.ItemType, id int) (string, bool)
}

type mutationKey struct {
	op       domain.Operation
	itemType domain.ItemType
}

// MutationTable holds one callable per (operation, item type) and runs a
// batch of them concurrently
type MutationTable struct {
	funcs       map[mutationKey]MutateFunc
	resolver    Resolver
	concurrency int
	bus         eventbus.EventBus
}

// NewMutationTable creates an empty table. resolver may be nil, in which case
// every restore uses the stringified identifier.
func NewMutationTable(resolver Resolver, concurrency int, bus eventbus.EventBus) *MutationTable {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &MutationTable{
		funcs:       make(map[mutationKey]MutateFunc),
		resolver:    resolver,
		concurrency: concurrency,
		bus:         bus,
	}
}

// NewStoreMutations wires all six lifecycle mutations to store
func NewStoreMutations(store logic.ItemStore, concurrency int, bus eventbus.EventBus) *MutationTable {
	t := NewMutationTable(logic.DeletedResolver{Store: store}, concurrency, bus)
	for _, it := range []domain.ItemType{domain.ItemMemo, domain.ItemTask} {
		t.Register(domain.OpDelete, it, func(ctx context.Context, id int) error {
			return store.Delete(ctx, it, id)
		})
		t.Register(domain.OpPurge, it, func(ctx context.Context, id int) error {
			return store.Purge(ctx, it, id)
		})
		t.RegisterRestore(it, func(ctx context.Context, originalID string) error {
			return store.Restore(ctx, it, originalID)
		})
	}
	return t
}

// Register installs fn for op on itemType
func (t *MutationTable) Register(op domain.Operation, itemType domain.ItemType, fn MutateFunc) {
	t.funcs[mutationKey{op, itemType}] = fn
}

// RegisterRestore installs the restore call for itemType. Identifiers are
// resolved to original identifiers before restore is called.
func (t *MutationTable) RegisterRestore(itemType domain.ItemType, restore RestoreFunc) {
	t.Register(domain.OpRestore, itemType, func(ctx context.Context, id int) error {
		return restore(ctx, t.originalID(ctx, itemType, id))
	})
}

// Lookup returns the callable for op on itemType
func (t *MutationTable) Lookup(op domain.Operation, itemType domain.ItemType) (MutateFunc, bool) {
	fn, ok := t.funcs[mutationKey{op, itemType}]
	return fn, ok
}

func (t *MutationTable) originalID(ctx context.Context, itemType domain.ItemType, id int) string {
	if t.resolver != nil {
		if orig, ok := t.resolver.OriginalID(ctx, itemType, id); ok {
			return orig
		}
	}
	log.Printf("bulk: no original identifier for deleted %s %d, restoring by row key", itemType, id)
	t.publish(eventbus.RestoreFallbackEvent{ItemType: itemType, ID: id})
	return strconv.Itoa(id)
}

// Failure is one rejected mutation
type Failure struct {
	ID  int
	Err error
}

// Summary is the outcome of every mutation in a batch. Failed identifiers
// still count as processed.
type Summary struct {
	Processed int
	Succeeded int
	Failures  []Failure
}

// Flight is a batch of mutations running in the background
type Flight struct {
	done    chan struct{}
	summary Summary
}

// Wait blocks until every mutation returned. It never fails.
func (f *Flight) Wait() Summary {
	<-f.done
	return f.summary
}

// Done is closed once the flight has settled
func (f *Flight) Done() <-chan struct{} {
	return f.done
}

// Execute starts one mutation per target and returns immediately. A failing
// or panicking call never stops the others.
func (t *MutationTable) Execute(ctx context.Context, d Descriptor) *Flight {
	fn, ok := t.Lookup(d.Operation, d.ItemType)
	f := &Flight{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		var mu sync.Mutex
		index := make(map[int]int, len(d.Targets))
		p := pool.New().WithMaxGoroutines(t.concurrency)
		for i, id := range d.Targets {
			index[id] = i
			p.Go(func() {
				var err error
				if !ok {
					err = fmt.Errorf("%s %s: %w", d.Operation, d.ItemType, ErrNoMutation)
				} else {
					err = call(ctx, fn, id)
				}

				mu.Lock()
				defer mu.Unlock()
				f.summary.Processed++
				if err != nil {
					log.Printf("bulk: %s %s %d failed: %v", d.Operation, d.ItemType, id, err)
					f.summary.Failures = append(f.summary.Failures, Failure{ID: id, Err: err})
					t.publish(eventbus.MutationFailedEvent{
						BatchID:   d.ID,
						Operation: d.Operation,
						ItemType:  d.ItemType,
						ID:        id,
						Err:       err,
					})
					return
				}
				f.summary.Succeeded++
			})
		}
		p.Wait()

		sort.Slice(f.summary.Failures, func(i, j int) bool {
			return index[f.summary.Failures[i].ID] < index[f.summary.Failures[j].ID]
		})
		log.Printf("bulk: batch %s settled: %d ok, %d failed", d.ID, f.summary.Succeeded, len(f.summary.Failures))
		t.publish(eventbus.BatchSettledEvent{
			BatchID:   d.ID,
			Operation: d.Operation,
			ItemType:  d.ItemType,
			Succeeded: f.summary.Succeeded,
			Failed:    len(f.summary.Failures),
		})
	}()

	return f
}

func call(ctx context.Context, fn MutateFunc, id int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mutation panicked: %v", r)
		}
	}()
	return fn(ctx, id)
}

func (t *MutationTable) publish(e eventbus.DomainEvent) {
	if t.bus != nil {
		t.bus.Publish(e)
	}
}
