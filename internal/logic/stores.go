package logic

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"memodeck/internal/domain"
)

// MemoryItemStore is an in-memory implementation of ItemStore
type MemoryItemStore struct {
	mu      sync.RWMutex
	memos   map[int]domain.Memo
	tasks   map[int]domain.Task
	deleted map[int]domain.DeletedItem

	nextMemo    int
	nextTask    int
	nextDeleted int

	now func() time.Time
}

// NewMemoryItemStore creates a new memory-based item store
func NewMemoryItemStore() *MemoryItemStore {
	return &MemoryItemStore{
		memos:   make(map[int]domain.Memo),
		tasks:   make(map[int]domain.Task),
		deleted: make(map[int]domain.DeletedItem),
		now:     time.Now,
	}
}

func (s *MemoryItemStore) ListMemos(ctx context.Context) ([]domain.Memo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Memo, 0, len(s.memos))
	for _, m := range s.memos {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryItemStore) ListTasks(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if status == "" || t.Status == status {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryItemStore) ListDeleted(ctx context.Context, itemType domain.ItemType) ([]domain.DeletedItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.DeletedItem, 0)
	for _, d := range s.deleted {
		if d.ItemType == itemType {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryItemStore) GetDeleted(ctx context.Context, itemType domain.ItemType, id int) (domain.DeletedItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.deleted[id]
	if !ok || d.ItemType != itemType {
		return domain.DeletedItem{}, fmt.Errorf("deleted %s %d: %w", itemType, id, ErrNotFound)
	}
	return d, nil
}

func (s *MemoryItemStore) CreateMemo(ctx context.Context, title, body string) (domain.Memo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextMemo++
	now := s.now()
	m := domain.Memo{
		ID:        s.nextMemo,
		UID:       uuid.NewString(),
		Title:     title,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.memos[m.ID] = m
	return m, nil
}

func (s *MemoryItemStore) CreateTask(ctx context.Context, title string, status domain.TaskStatus) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status == "" {
		status = domain.StatusTodo
	}
	s.nextTask++
	now := s.now()
	t := domain.Task{
		ID:        s.nextTask,
		UID:       uuid.NewString(),
		Title:     title,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tasks[t.ID] = t
	return t, nil
}

func (s *MemoryItemStore) SetTaskStatus(ctx context.Context, id int, status domain.TaskStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	t.Status = status
	t.UpdatedAt = s.now()
	s.tasks[id] = t
	return nil
}

func (s *MemoryItemStore) Delete(ctx context.Context, itemType domain.ItemType, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var d domain.DeletedItem
	switch itemType {
	case domain.ItemMemo:
		m, ok := s.memos[id]
		if !ok {
			return fmt.Errorf("memo %d: %w", id, ErrNotFound)
		}
		delete(s.memos, id)
		d = domain.DeletedItem{OriginalID: m.UID, SourceID: m.ID, Title: m.Title, Body: m.Body, CreatedAt: m.CreatedAt}
	case domain.ItemTask:
		t, ok := s.tasks[id]
		if !ok {
			return fmt.Errorf("task %d: %w", id, ErrNotFound)
		}
		delete(s.tasks, id)
		d = domain.DeletedItem{OriginalID: t.UID, SourceID: t.ID, Title: t.Title, Status: t.Status, CreatedAt: t.CreatedAt}
	default:
		return fmt.Errorf("unknown item type %q", itemType)
	}

	s.nextDeleted++
	d.ID = s.nextDeleted
	d.ItemType = itemType
	d.DeletedAt = s.now()
	s.deleted[d.ID] = d
	return nil
}

func (s *MemoryItemStore) Purge(ctx context.Context, itemType domain.ItemType, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.deleted[id]
	if !ok || d.ItemType != itemType {
		return fmt.Errorf("deleted %s %d: %w", itemType, id, ErrNotFound)
	}
	delete(s.deleted, id)
	return nil
}

func (s *MemoryItemStore) Restore(ctx context.Context, itemType domain.ItemType, originalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.findDeleted(itemType, originalID)
	if !ok {
		return fmt.Errorf("restore %s %q: %w", itemType, originalID, ErrNotFound)
	}
	delete(s.deleted, d.ID)

	switch itemType {
	case domain.ItemMemo:
		id := d.SourceID
		if _, taken := s.memos[id]; taken || id == 0 {
			s.nextMemo++
			id = s.nextMemo
		}
		s.memos[id] = domain.Memo{ID: id, UID: d.OriginalID, Title: d.Title, Body: d.Body, CreatedAt: d.CreatedAt, UpdatedAt: s.now()}
	case domain.ItemTask:
		id := d.SourceID
		if _, taken := s.tasks[id]; taken || id == 0 {
			s.nextTask++
			id = s.nextTask
		}
		status := d.Status
		if status == "" {
			status = domain.StatusTodo
		}
		s.tasks[id] = domain.Task{ID: id, UID: d.OriginalID, Title: d.Title, Status: status, CreatedAt: d.CreatedAt, UpdatedAt: s.now()}
	}
	return nil
}

// findDeleted prefers the original identifier and falls back to the row key in string form
func (s *MemoryItemStore) findDeleted(itemType domain.ItemType, key string) (domain.DeletedItem, bool) {
	for _, d := range s.deleted {
		if d.ItemType == itemType && d.OriginalID != "" && d.OriginalID == key {
			return d, true
		}
	}
	for _, d := range s.deleted {
		if d.ItemType == itemType && strconv.Itoa(d.ID) == key {
			return d, true
		}
	}
	return domain.DeletedItem{}, false
}

func (s *MemoryItemStore) Close() error { return nil }

// AddDeleted inserts a deleted row directly, used to model rows that
// predate original identifiers
func (s *MemoryItemStore) AddDeleted(d domain.DeletedItem) domain.DeletedItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextDeleted++
	d.ID = s.nextDeleted
	if d.DeletedAt.IsZero() {
		d.DeletedAt = s.now()
	}
	s.deleted[d.ID] = d
	return d
}
