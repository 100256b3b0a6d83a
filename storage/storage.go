package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"tasktrack-api/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS task (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	due_date TEXT,
	is_done INTEGER NOT NULL DEFAULT 0
);`

// Storage persists tasks in a single-table SQLite database file. The handle
// is safe for concurrent use; SQLite serializes writers at the engine level.
type Storage struct {
	db   *sql.DB
	path string
}

// New opens (or creates) the SQLite database at path. The schema is not
// touched here; call EnsureSchema once at startup.
func New(path string) (*Storage, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Storage{db: db, path: path}, nil
}

// Path returns the location of the backing database file.
func (s *Storage) Path() string {
	return s.path
}

// Close releases the underlying database handle.
func (s *Storage) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the task table when it does not yet exist. The
// statement is idempotent, so repeated calls are harmless.
func (s *Storage) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// InsertTask persists a new task and returns it with the assigned id.
func (s *Storage) InsertTask(ctx context.Context, t domain.Task) (domain.Task, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO task (title, description, due_date, is_done) VALUES (?, ?, ?, ?)`,
		t.Title, t.Description, dueDateValue(t.DueDate), t.IsDone)
	if err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Task{}, fmt.Errorf("insert task id: %w", err)
	}
	t.ID = id
	return t, nil
}

// GetTask returns the task for the given id, or domain.ErrTaskNotFound.
func (s *Storage) GetTask(ctx context.Context, id int64) (domain.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, due_date, is_done FROM task WHERE id = ?`, id)
	return scanTask(row)
}

// ListTasks returns every task in insertion order. An empty table yields an
// empty, non-nil slice.
func (s *Storage) ListTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, due_date, is_done FROM task ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// UpdateTask applies the supplied fields to an existing task inside a
// transaction and returns the updated record. The transaction is rolled back
// on any failure; an absent id yields domain.ErrTaskNotFound.
func (s *Storage) UpdateTask(ctx context.Context, id int64, upd domain.TaskUpdate) (domain.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Task{}, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT id, title, description, due_date, is_done FROM task WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		return domain.Task{}, err
	}

	upd.Apply(&task)

	if _, err := tx.ExecContext(ctx,
		`UPDATE task SET title = ?, description = ?, due_date = ?, is_done = ? WHERE id = ?`,
		task.Title, task.Description, dueDateValue(task.DueDate), task.IsDone, task.ID); err != nil {
		return domain.Task{}, fmt.Errorf("update task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Task{}, fmt.Errorf("commit update: %w", err)
	}
	return task, nil
}

// DeleteTask removes the task for the given id, or reports
// domain.ErrTaskNotFound when no row matched.
func (s *Storage) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM task WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// DropAndRecreate drops the task table, recreates it and inserts the seed
// records, all in one transaction.
func (s *Storage) DropAndRecreate(ctx context.Context, seed []domain.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS task`); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("recreate table: %w", err)
	}
	for _, t := range seed {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO task (title, description, due_date, is_done) VALUES (?, ?, ?, ?)`,
			t.Title, t.Description, dueDateValue(t.DueDate), t.IsDone); err != nil {
			return fmt.Errorf("seed task %q: %w", t.Title, err)
		}
	}
	return tx.Commit()
}

// DeleteFile removes the database file at path. A missing file is reported
// via os.ErrNotExist so callers can treat it as a no-op.
func DeleteFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	return os.Remove(path)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (domain.Task, error) {
	var (
		t   domain.Task
		due sql.NullString
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &due, &t.IsDone)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("scan task: %w", err)
	}
	if due.Valid {
		t.DueDate = &due.String
	}
	return t, nil
}

func dueDateValue(due *string) any {
	if due == nil || *due == "" {
		return nil
	}
	return *due
}
