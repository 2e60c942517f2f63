package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"memodeck/internal/domain"
	"memodeck/internal/logic"
)

// ItemRepository implements logic.ItemStore on SQLite
type ItemRepository struct {
	db  *DB
	now func() time.Time
}

var _ logic.ItemStore = (*ItemRepository)(nil)

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db, now: time.Now}
}

// Open opens (and migrates) the database at path and returns a repository over it
func Open(path string) (*ItemRepository, error) {
	db, err := New(path)
	if err != nil {
		return nil, err
	}
	return NewItemRepository(db), nil
}

func (r *ItemRepository) Close() error {
	return r.db.Close()
}

func (r *ItemRepository) ListMemos(ctx context.Context) ([]domain.Memo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, uid, title, body, created_at, updated_at
		FROM memos
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list memos: %w", err)
	}
	defer rows.Close()

	var memos []domain.Memo
	for rows.Next() {
		var m domain.Memo
		if err := rows.Scan(&m.ID, &m.UID, &m.Title, &m.Body, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan memo: %w", err)
		}
		memos = append(memos, m)
	}
	return memos, rows.Err()
}

func (r *ItemRepository) ListTasks(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	query := `
		SELECT id, uid, title, status, created_at, updated_at
		FROM tasks
		WHERE (? = '' OR status = ?)
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, string(status), string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		var st string
		if err := rows.Scan(&t.ID, &t.UID, &t.Title, &st, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.Status = domain.TaskStatus(st)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

const deletedColumns = `id, item_type, original_id, source_id, title, body, status, created_at, deleted_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanDeleted(s scanner) (domain.DeletedItem, error) {
	var d domain.DeletedItem
	var itemType, status string
	err := s.Scan(&d.ID, &itemType, &d.OriginalID, &d.SourceID, &d.Title, &d.Body, &status, &d.CreatedAt, &d.DeletedAt)
	d.ItemType = domain.ItemType(itemType)
	d.Status = domain.TaskStatus(status)
	return d, err
}

func (r *ItemRepository) ListDeleted(ctx context.Context, itemType domain.ItemType) ([]domain.DeletedItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+deletedColumns+`
		FROM deleted_items
		WHERE item_type = ?
		ORDER BY id ASC
	`, string(itemType))
	if err != nil {
		return nil, fmt.Errorf("failed to list deleted %s: %w", itemType.Plural(), err)
	}
	defer rows.Close()

	var items []domain.DeletedItem
	for rows.Next() {
		d, err := scanDeleted(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deleted item: %w", err)
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *ItemRepository) GetDeleted(ctx context.Context, itemType domain.ItemType, id int) (domain.DeletedItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+deletedColumns+`
		FROM deleted_items
		WHERE id = ? AND item_type = ?
	`, id, string(itemType))

	d, err := scanDeleted(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DeletedItem{}, fmt.Errorf("deleted %s %d: %w", itemType, id, logic.ErrNotFound)
	}
	if err != nil {
		return domain.DeletedItem{}, fmt.Errorf("failed to get deleted item: %w", err)
	}
	return d, nil
}

func (r *ItemRepository) CreateMemo(ctx context.Context, title, body string) (domain.Memo, error) {
	now := r.now()
	m := domain.Memo{UID: uuid.NewString(), Title: title, Body: body, CreatedAt: now, UpdatedAt: now}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO memos (uid, title, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.UID, m.Title, m.Body, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return domain.Memo{}, fmt.Errorf("failed to create memo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Memo{}, fmt.Errorf("failed to read memo id: %w", err)
	}
	m.ID = int(id)
	return m, nil
}

func (r *ItemRepository) CreateTask(ctx context.Context, title string, status domain.TaskStatus) (domain.Task, error) {
	if status == "" {
		status = domain.StatusTodo
	}
	now := r.now()
	t := domain.Task{UID: uuid.NewString(), Title: title, Status: status, CreatedAt: now, UpdatedAt: now}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (uid, title, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, t.UID, t.Title, string(t.Status), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to read task id: %w", err)
	}
	t.ID = int(id)
	return t, nil
}

func (r *ItemRepository) SetTaskStatus(ctx context.Context, id int, status domain.TaskStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?
	`, string(status), r.now(), id)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("task %d", id))
}

func (r *ItemRepository) Delete(ctx context.Context, itemType domain.ItemType, id int) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		var d domain.DeletedItem
		var err error
		switch itemType {
		case domain.ItemMemo:
			err = tx.QueryRowContext(ctx, `
				SELECT uid, id, title, body, created_at FROM memos WHERE id = ?
			`, id).Scan(&d.OriginalID, &d.SourceID, &d.Title, &d.Body, &d.CreatedAt)
		case domain.ItemTask:
			var status string
			err = tx.QueryRowContext(ctx, `
				SELECT uid, id, title, status, created_at FROM tasks WHERE id = ?
			`, id).Scan(&d.OriginalID, &d.SourceID, &d.Title, &status, &d.CreatedAt)
			d.Status = domain.TaskStatus(status)
		default:
			return fmt.Errorf("unknown item type %q", itemType)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s %d: %w", itemType, id, logic.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load %s %d: %w", itemType, id, err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO deleted_items (item_type, original_id, source_id, title, body, status, created_at, deleted_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, string(itemType), d.OriginalID, d.SourceID, d.Title, d.Body, string(d.Status), d.CreatedAt, r.now()); err != nil {
			return fmt.Errorf("failed to record deleted %s: %w", itemType, err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table(itemType)+" WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete %s %d: %w", itemType, id, err)
		}
		return nil
	})
}

func (r *ItemRepository) Purge(ctx context.Context, itemType domain.ItemType, id int) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM deleted_items WHERE id = ? AND item_type = ?
	`, id, string(itemType))
	if err != nil {
		return fmt.Errorf("failed to purge %s %d: %w", itemType, id, err)
	}
	return requireAffected(res, fmt.Sprintf("deleted %s %d", itemType, id))
}

func (r *ItemRepository) Restore(ctx context.Context, itemType domain.ItemType, originalID string) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		// Original identifier wins over a row key that happens to look the same
		row := tx.QueryRowContext(ctx, `
			SELECT `+deletedColumns+`
			FROM deleted_items
			WHERE item_type = ?
			  AND ((original_id <> '' AND original_id = ?) OR CAST(id AS TEXT) = ?)
			ORDER BY CASE WHEN original_id = ? THEN 0 ELSE 1 END, id
			LIMIT 1
		`, string(itemType), originalID, originalID, originalID)

		d, err := scanDeleted(row)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("restore %s %q: %w", itemType, originalID, logic.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to find deleted %s: %w", itemType, err)
		}

		uid := d.OriginalID
		if uid == "" {
			uid = uuid.NewString()
		}

		var taken int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table(itemType)+" WHERE id = ?", d.SourceID).Scan(&taken); err != nil {
			return fmt.Errorf("failed to check %s key: %w", itemType, err)
		}
		var id any
		if d.SourceID > 0 && taken == 0 {
			id = d.SourceID
		}

		now := r.now()
		switch itemType {
		case domain.ItemMemo:
			_, err = tx.ExecContext(ctx, `
				INSERT INTO memos (id, uid, title, body, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)
			`, id, uid, d.Title, d.Body, d.CreatedAt, now)
		case domain.ItemTask:
			status := d.Status
			if status == "" {
				status = domain.StatusTodo
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO tasks (id, uid, title, status, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)
			`, id, uid, d.Title, string(status), d.CreatedAt, now)
		}
		if err != nil {
			return fmt.Errorf("failed to restore %s: %w", itemType, err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM deleted_items WHERE id = ?", d.ID); err != nil {
			return fmt.Errorf("failed to clear deleted %s %d: %w", itemType, d.ID, err)
		}
		return nil
	})
}

func (r *ItemRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func table(itemType domain.ItemType) string {
	if itemType == domain.ItemTask {
		return "tasks"
	}
	return "memos"
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, logic.ErrNotFound)
	}
	return nil
}
