package logic

import (
	"context"
	"errors"

	"memodeck/internal/domain"
)

// ErrNotFound is returned when a memo, task or deleted row does not exist
var ErrNotFound = errors.New("not found")

// ItemStore provides access to memos, tasks and their deleted copies
type ItemStore interface {
	ListMemos(ctx context.Context) ([]domain.Memo, error)
	ListTasks(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error)
	ListDeleted(ctx context.Context, itemType domain.ItemType) ([]domain.DeletedItem, error)
	GetDeleted(ctx context.Context, itemType domain.ItemType, id int) (domain.DeletedItem, error)

	CreateMemo(ctx context.Context, title, body string) (domain.Memo, error)
	CreateTask(ctx context.Context, title string, status domain.TaskStatus) (domain.Task, error)
	SetTaskStatus(ctx context.Context, id int, status domain.TaskStatus) error

	// Delete moves a live item into the deleted collection
	Delete(ctx context.Context, itemType domain.ItemType, id int) error
	// Purge removes a deleted row for good; id is the deleted row's key
	Purge(ctx context.Context, itemType domain.ItemType, id int) error
	// Restore moves a deleted item back. originalID is matched against the
	// recorded original identifier first and the deleted row key second.
	Restore(ctx context.Context, itemType domain.ItemType, originalID string) error

	Close() error
}
