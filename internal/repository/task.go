package repository

import (
	"context"

	"github.com/jaekwang-park/taskboard/internal/model"
)

// TaskRepository stores tasks. Every lookup is scoped to the owning user, and
// ListByUser returns tasks in no particular order. GetByID, Update and Delete
// report a missing task as sql.ErrNoRows.
type TaskRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.Task, error)
	GetByID(ctx context.Context, userID, taskID string) (model.Task, error)
	Create(ctx context.Context, task model.Task) (model.Task, error)
	Update(ctx context.Context, task model.Task) (model.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}
