package domain

import (
	"strings"
	"time"
)

// ItemType names an identifier namespace
type ItemType string

const (
	ItemMemo ItemType = "memo"
	ItemTask ItemType = "task"
)

// Plural returns the item type name for counts other than one
func (t ItemType) Plural() string {
	return string(t) + "s"
}

// Noun returns "memo"/"memos" depending on n
func (t ItemType) Noun(n int) string {
	if n == 1 {
		return string(t)
	}
	return t.Plural()
}

// Tab is one filtered view of an item type
type Tab string

const (
	TabActive  Tab = "active"
	TabDeleted Tab = "deleted"
	TabTodo    Tab = "todo"
	TabDoing   Tab = "doing"
	TabDone    Tab = "done"
)

// TaskStatus is the workflow column of a task
type TaskStatus string

const (
	StatusTodo  TaskStatus = "todo"
	StatusDoing TaskStatus = "doing"
	StatusDone  TaskStatus = "done"
)

// ParseTaskStatus accepts the status name in any case
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch st := TaskStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusTodo, StatusDoing, StatusDone:
		return st, true
	}
	return "", false
}

// Operation is a bulk lifecycle operation
type Operation string

const (
	OpDelete  Operation = "delete"
	OpPurge   Operation = "purge"
	OpRestore Operation = "restore"
)

// Memo is a free-form note
type Memo struct {
	ID        int
	UID       string // stable identifier kept across delete/restore
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Task is a to-do entry
type Task struct {
	ID        int
	UID       string
	Title     string
	Status    TaskStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeletedItem is a soft-deleted memo or task.
// ID is the key of the deleted row itself; OriginalID is the UID of the
// item it was created from and is what a restore is addressed by.
type DeletedItem struct {
	ID         int
	ItemType   ItemType
	OriginalID string
	SourceID   int
	Title      string
	Body       string
	Status     TaskStatus
	CreatedAt  time.Time
	DeletedAt  time.Time
}
