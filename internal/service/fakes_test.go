package service_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/repository"
)

var now = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func clock() time.Time { return now }

// memTaskRepo is an in-memory TaskRepository. Setting failErr makes every
// call fail with it.
type memTaskRepo struct {
	mu      sync.Mutex
	tasks   map[string]model.Task
	nextID  int
	writes  int
	failErr error
	listFn  func(ctx context.Context, userID string) ([]model.Task, error)
}

func newMemTaskRepo(tasks ...model.Task) *memTaskRepo {
	r := &memTaskRepo{tasks: make(map[string]model.Task)}
	for _, t := range tasks {
		r.tasks[t.ID] = t
	}
	return r
}

func (r *memTaskRepo) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	if r.listFn != nil {
		return r.listFn(ctx, userID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return nil, r.failErr
	}
	out := []model.Task{}
	for _, t := range r.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) GetByID(_ context.Context, userID, taskID string) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return model.Task{}, r.failErr
	}
	t, ok := r.tasks[taskID]
	if !ok || t.UserID != userID {
		return model.Task{}, sql.ErrNoRows
	}
	return t, nil
}

func (r *memTaskRepo) Create(_ context.Context, task model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return model.Task{}, r.failErr
	}
	r.nextID++
	r.writes++
	task.ID = fmt.Sprintf("task-%d", r.nextID)
	task.CreatedAt = now.Add(time.Duration(r.nextID) * time.Minute)
	task.UpdatedAt = task.CreatedAt
	r.tasks[task.ID] = task
	return task, nil
}

func (r *memTaskRepo) Update(_ context.Context, task model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return model.Task{}, r.failErr
	}
	existing, ok := r.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return model.Task{}, sql.ErrNoRows
	}
	r.writes++
	r.tasks[task.ID] = task
	return task, nil
}

func (r *memTaskRepo) Delete(_ context.Context, userID, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	t, ok := r.tasks[taskID]
	if !ok || t.UserID != userID {
		return sql.ErrNoRows
	}
	r.writes++
	delete(r.tasks, taskID)
	return nil
}

var _ repository.TaskRepository = (*memTaskRepo)(nil)

type mockPrefsRepo struct {
	getFn    func(ctx context.Context, userID string) (model.UserPreferences, error)
	createFn func(ctx context.Context, prefs model.UserPreferences) (model.UserPreferences, error)
	updateFn func(ctx context.Context, prefs model.UserPreferences) (model.UserPreferences, error)
}

func (m *mockPrefsRepo) Get(ctx context.Context, userID string) (model.UserPreferences, error) {
	return m.getFn(ctx, userID)
}
func (m *mockPrefsRepo) Create(ctx context.Context, prefs model.UserPreferences) (model.UserPreferences, error) {
	return m.createFn(ctx, prefs)
}
func (m *mockPrefsRepo) Update(ctx context.Context, prefs model.UserPreferences) (model.UserPreferences, error) {
	return m.updateFn(ctx, prefs)
}

type mockCategoryRepo struct {
	listFn    func(ctx context.Context, userID string) ([]model.Category, error)
	getByIDFn func(ctx context.Context, userID, categoryID string) (model.Category, error)
	createFn  func(ctx context.Context, c model.Category) (model.Category, error)
	updateFn  func(ctx context.Context, c model.Category) (model.Category, error)
	deleteFn  func(ctx context.Context, userID, categoryID string) error
}

func (m *mockCategoryRepo) ListByUser(ctx context.Context, userID string) ([]model.Category, error) {
	return m.listFn(ctx, userID)
}
func (m *mockCategoryRepo) GetByID(ctx context.Context, userID, categoryID string) (model.Category, error) {
	return m.getByIDFn(ctx, userID, categoryID)
}
func (m *mockCategoryRepo) Create(ctx context.Context, c model.Category) (model.Category, error) {
	return m.createFn(ctx, c)
}
func (m *mockCategoryRepo) Update(ctx context.Context, c model.Category) (model.Category, error) {
	return m.updateFn(ctx, c)
}
func (m *mockCategoryRepo) Delete(ctx context.Context, userID, categoryID string) error {
	return m.deleteFn(ctx, userID, categoryID)
}
