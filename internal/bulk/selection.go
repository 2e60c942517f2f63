package bulk

import "memodeck/internal/domain"

// TabKey scopes a selection to one tab of one item type
type TabKey struct {
	ItemType domain.ItemType
	Tab      domain.Tab
}

func (k TabKey) String() string {
	return string(k.ItemType) + ":" + string(k.Tab)
}

// selectionSet is a membership set. order only remembers insertion order
// for the fallback path when no display order exists.
type selectionSet struct {
	members map[int]struct{}
	order   []int
}

func newSelectionSet() *selectionSet {
	return &selectionSet{members: make(map[int]struct{})}
}

func (s *selectionSet) add(id int) {
	if _, ok := s.members[id]; ok {
		return
	}
	s.members[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *selectionSet) remove(id int) {
	if _, ok := s.members[id]; !ok {
		return
	}
	delete(s.members, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// SelectionStore keeps one selection per TabKey. It is owned by the UI loop
// and is not safe for concurrent use.
type SelectionStore struct {
	sets map[TabKey]*selectionSet
}

// NewSelectionStore creates an empty store
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{sets: make(map[TabKey]*selectionSet)}
}

func (s *SelectionStore) set(key TabKey) *selectionSet {
	set, ok := s.sets[key]
	if !ok {
		set = newSelectionSet()
		s.sets[key] = set
	}
	return set
}

// Toggle flips membership of id and reports whether it is now selected
func (s *SelectionStore) Toggle(key TabKey, id int) bool {
	set := s.set(key)
	if _, ok := set.members[id]; ok {
		set.remove(id)
		return false
	}
	set.add(id)
	return true
}

// SelectAll makes the selection exactly ids, in that order
func (s *SelectionStore) SelectAll(key TabKey, ids []int) {
	set := newSelectionSet()
	for _, id := range ids {
		set.add(id)
	}
	s.sets[key] = set
}

// Clear empties the selection for key
func (s *SelectionStore) Clear(key TabKey) {
	delete(s.sets, key)
}

// IsSelected reports membership of id
func (s *SelectionStore) IsSelected(key TabKey, id int) bool {
	set, ok := s.sets[key]
	if !ok {
		return false
	}
	_, selected := set.members[id]
	return selected
}

// IsAllSelected reports whether every id in ids is selected. An empty list
// is never "all selected".
func (s *SelectionStore) IsAllSelected(key TabKey, ids []int) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if !s.IsSelected(key, id) {
			return false
		}
	}
	return true
}

// Count returns the number of selected identifiers
func (s *SelectionStore) Count(key TabKey) int {
	if set, ok := s.sets[key]; ok {
		return len(set.members)
	}
	return 0
}

// Selected returns the selection in insertion order
func (s *SelectionStore) Selected(key TabKey) []int {
	set, ok := s.sets[key]
	if !ok {
		return nil
	}
	return append([]int(nil), set.order...)
}

// Remove drops ids from the selection
func (s *SelectionStore) Remove(key TabKey, ids []int) {
	set, ok := s.sets[key]
	if !ok {
		return
	}
	for _, id := range ids {
		set.remove(id)
	}
}

// Prune drops identifiers not in present and returns how many were dropped
func (s *SelectionStore) Prune(key TabKey, present []int) int {
	set, ok := s.sets[key]
	if !ok {
		return 0
	}
	keep := make(map[int]struct{}, len(present))
	for _, id := range present {
		keep[id] = struct{}{}
	}
	var gone []int
	for _, id := range set.order {
		if _, ok := keep[id]; !ok {
			gone = append(gone, id)
		}
	}
	for _, id := range gone {
		set.remove(id)
	}
	return len(gone)
}
