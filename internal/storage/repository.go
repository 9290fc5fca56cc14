package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is the durable source of truth for tasks across restarts.
type Repository interface {
	LoadAllTasks(ctx context.Context) ([]Task, error)
	GetTask(ctx context.Context, id string) (Task, error)
	CreateTask(ctx context.Context, in Task) error
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, id string) error
}
