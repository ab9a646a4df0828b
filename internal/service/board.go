package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/session"
	"github.com/jaekwang-park/taskboard/internal/tasklist"
)

type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is a user-facing message about the outcome of a Board operation.
type Notice struct {
	Kind    NoticeKind
	Message string
	Err     error
}

type Notifier interface {
	Notify(Notice)
}

type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

type BoardOption func(*Board)

func WithNotifier(n Notifier) BoardOption {
	return func(b *Board) { b.notifier = n }
}

func WithQuery(q tasklist.Query) BoardOption {
	return func(b *Board) { b.query = q }
}

// Board holds one client's render state and coordinates its mutations. Each
// mutation is a single write followed by a full re-fetch. Store calls run
// outside the lock, so overlapping loads race and the last to finish wins.
type Board struct {
	tasks    *TaskService
	session  *session.Session
	notifier Notifier

	mu    sync.Mutex
	query tasklist.Query
	all   []model.Task
	view  tasklist.View
}

func NewBoard(tasks *TaskService, sess *session.Session, opts ...BoardOption) *Board {
	b := &Board{
		tasks:   tasks,
		session: sess,
		query:   tasklist.Query{Filter: tasklist.FilterAll, Sort: tasklist.SortDueDate},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// View returns the most recently stored render state.
func (b *Board) View() tasklist.View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view
}

func (b *Board) Query() tasklist.Query {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query
}

// Load fetches the principal's tasks and derives the view for the current
// query. A failed fetch is reported to the notifier and leaves the view as is.
func (b *Board) Load(ctx context.Context) (tasklist.View, error) {
	userID, err := b.principal()
	if err != nil {
		return tasklist.View{}, err
	}

	view, err := b.load(ctx, userID)
	if err != nil {
		b.fail("Could not load tasks", err)
		return tasklist.View{}, err
	}
	return view, nil
}

func (b *Board) load(ctx context.Context, userID string) (tasklist.View, error) {
	all, err := b.tasks.Fetch(ctx, userID)
	if err != nil {
		return tasklist.View{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = all
	b.view = b.tasks.deriver.Derive(all, b.query)
	return b.view, nil
}

// SetQuery replaces the query and reloads.
func (b *Board) SetQuery(ctx context.Context, q tasklist.Query) (tasklist.View, error) {
	b.mu.Lock()
	b.query = q
	b.mu.Unlock()
	return b.Load(ctx)
}

func (b *Board) AddTask(ctx context.Context, input model.NewTask) (model.Task, error) {
	userID, err := b.principal()
	if err != nil {
		return model.Task{}, err
	}

	created, err := b.tasks.Create(ctx, userID, input)
	if err != nil {
		b.fail("Could not add task", err)
		return model.Task{}, err
	}
	b.succeed(ctx, fmt.Sprintf("Added %q", created.Title))
	return created, nil
}

// ToggleComplete flips a task between active and completed.
func (b *Board) ToggleComplete(ctx context.Context, taskID string) (model.Task, error) {
	userID, err := b.principal()
	if err != nil {
		return model.Task{}, err
	}

	var updated model.Task
	if current, ok := b.cached(taskID); ok {
		done := !current.Completed
		updated, err = b.tasks.Update(ctx, userID, taskID, model.TaskPatch{Completed: &done})
	} else {
		updated, err = b.tasks.Toggle(ctx, userID, taskID)
	}
	if err != nil {
		b.fail("Could not update task", err)
		return model.Task{}, err
	}

	msg := fmt.Sprintf("Reopened %q", updated.Title)
	if updated.Completed {
		msg = fmt.Sprintf("Completed %q", updated.Title)
	}
	b.succeed(ctx, msg)
	return updated, nil
}

func (b *Board) DeleteTask(ctx context.Context, taskID string) error {
	userID, err := b.principal()
	if err != nil {
		return err
	}

	if err := b.tasks.Delete(ctx, userID, taskID); err != nil {
		b.fail("Could not delete task", err)
		return err
	}
	b.succeed(ctx, "Task deleted")
	return nil
}

func (b *Board) principal() (string, error) {
	if b.session == nil {
		return "", ErrUnauthenticated
	}
	p, ok := b.session.Principal()
	if !ok {
		return "", ErrUnauthenticated
	}
	return p.ID, nil
}

func (b *Board) cached(taskID string) (model.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range b.all {
		if t.ID == taskID {
			return t, true
		}
	}
	return model.Task{}, false
}

// succeed reports a completed mutation and refreshes the view. A failed
// refresh leaves the previous view in place.
func (b *Board) succeed(ctx context.Context, msg string) {
	b.notify(Notice{Kind: NoticeSuccess, Message: msg})
	userID, err := b.principal()
	if err == nil {
		_, err = b.load(ctx, userID)
	}
	if err != nil {
		slog.Warn("refresh after mutation failed", "error", err)
		b.notify(Notice{Kind: NoticeError, Message: "Saved, but the list could not be refreshed", Err: err})
	}
}

func (b *Board) fail(msg string, err error) {
	if errors.Is(err, ErrInvalidInput) {
		msg = "Invalid task"
	}
	b.notify(Notice{Kind: NoticeError, Message: msg, Err: err})
}

func (b *Board) notify(n Notice) {
	if b.notifier != nil {
		b.notifier.Notify(n)
	}
}
