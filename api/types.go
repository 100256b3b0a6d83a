package api

import (
	"context"

	"tasktrack-api/domain"
)

// TaskStore abstracts persistence for handlers.
type TaskStore interface {
	InsertTask(ctx context.Context, t domain.Task) (domain.Task, error)
	GetTask(ctx context.Context, id int64) (domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	UpdateTask(ctx context.Context, id int64, upd domain.TaskUpdate) (domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}
