package bulk

import (
	"sync"

	"memodeck/internal/domain"
)

// Row is one rendered list line: the item type marker plus its identifier
type Row struct {
	ItemType domain.ItemType
	ID       int
}

// OrderReader returns identifiers of one item type in on-screen order.
// ok is false when nothing has been rendered yet.
type OrderReader interface {
	ReadOrder(itemType domain.ItemType) (ids []int, ok bool)
}

// DisplayOrder keeps the rows of itemType in first-seen order, dropping duplicates
func DisplayOrder(rows []Row, itemType domain.ItemType) []int {
	seen := make(map[int]struct{}, len(rows))
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		if r.ItemType != itemType {
			continue
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r.ID)
	}
	return out
}

// RenderedRows records the rows of the last rendered frame. The renderer
// writes it, the orchestrator reads it through ReadOrder.
type RenderedRows struct {
	mu       sync.RWMutex
	rows     []Row
	rendered bool
}

// Set replaces the recorded frame
func (r *RenderedRows) Set(rows []Row) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows[:0], rows...)
	r.rendered = true
}

// Reset forgets the last frame, e.g. while the list is reloading
func (r *RenderedRows) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = r.rows[:0]
	r.rendered = false
}

func (r *RenderedRows) ReadOrder(itemType domain.ItemType) ([]int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.rendered {
		return nil, false
	}
	return DisplayOrder(r.rows, itemType), true
}

// OrderBy arranges ids by their position in order. Identifiers missing from
// order keep their relative order and go last.
func OrderBy(ids []int, order []int) []int {
	want := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	out := make([]int, 0, len(ids))
	placed := make(map[int]struct{}, len(ids))
	for _, id := range order {
		if _, ok := want[id]; !ok {
			continue
		}
		if _, dup := placed[id]; dup {
			continue
		}
		placed[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range ids {
		if _, ok := placed[id]; ok {
			continue
		}
		placed[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
