package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/repository"
	"github.com/jaekwang-park/taskboard/internal/tasklist"
)

// TaskService is the only path from callers to task storage. Every call is
// scoped to userID and every successful mutation is durable on return.
type TaskService struct {
	repo    repository.TaskRepository
	deriver tasklist.Deriver
}

func NewTaskService(repo repository.TaskRepository, deriver tasklist.Deriver) *TaskService {
	return &TaskService{repo: repo, deriver: deriver}
}

// Now is the clock that defines "today" for this service.
func (s *TaskService) Now() time.Time {
	if s.deriver.Now == nil {
		return time.Now()
	}
	return s.deriver.Now()
}

// Fetch returns every task owned by userID in no particular order.
func (s *TaskService) Fetch(ctx context.Context, userID string) ([]model.Task, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError("fetch tasks", err)
	}
	return tasks, nil
}

// List fetches and derives the render-ready view for q.
func (s *TaskService) List(ctx context.Context, userID string, q tasklist.Query) (tasklist.View, error) {
	tasks, err := s.Fetch(ctx, userID)
	if err != nil {
		return tasklist.View{}, err
	}
	return s.deriver.Derive(tasks, q), nil
}

func (s *TaskService) Get(ctx context.Context, userID, taskID string) (model.Task, error) {
	if userID == "" {
		return model.Task{}, ErrUnauthenticated
	}
	task, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, storeError("get task", err)
	}
	return task, nil
}

func (s *TaskService) Create(ctx context.Context, userID string, input model.NewTask) (model.Task, error) {
	if userID == "" {
		return model.Task{}, ErrUnauthenticated
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return model.Task{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.IsValid() {
		return model.Task{}, fmt.Errorf("%w: invalid priority %q", ErrInvalidInput, priority)
	}

	created, err := s.repo.Create(ctx, model.Task{
		UserID:      userID,
		Title:       title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    priority,
	})
	if err != nil {
		return model.Task{}, storeError("create task", err)
	}
	return created, nil
}

func (s *TaskService) Update(ctx context.Context, userID, taskID string, patch model.TaskPatch) (model.Task, error) {
	if userID == "" {
		return model.Task{}, ErrUnauthenticated
	}
	if err := validatePatch(&patch); err != nil {
		return model.Task{}, err
	}

	existing, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, storeError("get task for update", err)
	}

	updated, err := s.repo.Update(ctx, patch.Apply(existing))
	if err != nil {
		return model.Task{}, storeError("update task", err)
	}
	return updated, nil
}

// Toggle flips the completion flag of a task.
func (s *TaskService) Toggle(ctx context.Context, userID, taskID string) (model.Task, error) {
	existing, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}
	done := !existing.Completed
	return s.Update(ctx, userID, taskID, model.TaskPatch{Completed: &done})
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if err := s.repo.Delete(ctx, userID, taskID); err != nil {
		return storeError("delete task", err)
	}
	return nil
}

func validatePatch(p *model.TaskPatch) error {
	if p.IsEmpty() {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		p.Title = &title
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return fmt.Errorf("%w: invalid priority %q", ErrInvalidInput, *p.Priority)
	}
	return nil
}

// storeError maps a repository error: missing rows become ErrNotFound and
// everything else is reported as ErrStoreUnavailable around the cause.
func storeError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w: %w", op, ErrStoreUnavailable, err)
}
