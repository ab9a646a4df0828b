package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/service"
	"github.com/jaekwang-park/taskboard/internal/tasklist"
)

func newTaskService(repo *memTaskRepo) *service.TaskService {
	return service.NewTaskService(repo, tasklist.Deriver{Now: clock, Language: "en"})
}

func TestTaskServiceCreate(t *testing.T) {
	tests := []struct {
		name         string
		input        model.NewTask
		wantErr      error
		wantPriority model.Priority
	}{
		{"defaults priority to medium", model.NewTask{Title: "Buy milk"}, nil, model.PriorityMedium},
		{"keeps explicit priority", model.NewTask{Title: "Ship", Priority: model.PriorityHigh}, nil, model.PriorityHigh},
		{"empty title", model.NewTask{Title: ""}, service.ErrInvalidInput, ""},
		{"whitespace title", model.NewTask{Title: "   "}, service.ErrInvalidInput, ""},
		{"unknown priority", model.NewTask{Title: "x", Priority: "urgent"}, service.ErrInvalidInput, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemTaskRepo()
			svc := newTaskService(repo)

			got, err := svc.Create(context.Background(), "user-1", tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if repo.writes != 0 {
					t.Errorf("expected no store write, got %d", repo.writes)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Priority != tt.wantPriority || got.Completed || got.UserID != "user-1" {
				t.Errorf("unexpected task: %+v", got)
			}
		})
	}
}

func TestTaskServiceRequiresUser(t *testing.T) {
	repo := newMemTaskRepo()
	svc := newTaskService(repo)
	ctx := context.Background()

	if _, err := svc.Fetch(ctx, ""); !errors.Is(err, service.ErrUnauthenticated) {
		t.Errorf("Fetch: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.Create(ctx, "", model.NewTask{Title: "x"}); !errors.Is(err, service.ErrUnauthenticated) {
		t.Errorf("Create: expected ErrUnauthenticated, got %v", err)
	}
	if err := svc.Delete(ctx, "", "task-1"); !errors.Is(err, service.ErrUnauthenticated) {
		t.Errorf("Delete: expected ErrUnauthenticated, got %v", err)
	}
	if repo.writes != 0 {
		t.Errorf("expected no writes, got %d", repo.writes)
	}
}

func TestTaskServiceStoreFailure(t *testing.T) {
	repo := newMemTaskRepo()
	repo.failErr = errors.New("connection refused")
	svc := newTaskService(repo)

	_, err := svc.Fetch(context.Background(), "user-1")
	if !errors.Is(err, service.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected cause in message, got %q", err)
	}
}

func TestTaskServiceUpdate(t *testing.T) {
	due := now.Add(48 * time.Hour)
	seed := model.Task{ID: "t1", UserID: "user-1", Title: "Draft", Priority: model.PriorityLow, DueDate: &due}

	title := "  Final  "
	empty := " "
	bad := model.Priority("urgent")
	high := model.PriorityHigh

	tests := []struct {
		name    string
		userID  string
		patch   model.TaskPatch
		wantErr error
		check   func(t *testing.T, got model.Task)
	}{
		{
			name:  "trims title",
			patch: model.TaskPatch{Title: &title, Priority: &high},
			check: func(t *testing.T, got model.Task) {
				if got.Title != "Final" || got.Priority != model.PriorityHigh {
					t.Errorf("unexpected task: %+v", got)
				}
			},
		},
		{
			name:  "clears due date",
			patch: model.TaskPatch{ClearDueDate: true},
			check: func(t *testing.T, got model.Task) {
				if got.DueDate != nil {
					t.Errorf("expected due date cleared, got %v", got.DueDate)
				}
			},
		},
		{name: "empty patch", patch: model.TaskPatch{}, wantErr: service.ErrInvalidInput},
		{name: "blank title", patch: model.TaskPatch{Title: &empty}, wantErr: service.ErrInvalidInput},
		{name: "bad priority", patch: model.TaskPatch{Priority: &bad}, wantErr: service.ErrInvalidInput},
		{name: "other user's task", userID: "user-2", patch: model.TaskPatch{Priority: &high}, wantErr: service.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTaskService(newMemTaskRepo(seed))
			userID := tt.userID
			if userID == "" {
				userID = "user-1"
			}

			got, err := svc.Update(context.Background(), userID, "t1", tt.patch)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestTaskServiceToggleAndDelete(t *testing.T) {
	repo := newMemTaskRepo(model.Task{ID: "t1", UserID: "user-1", Title: "Walk", Priority: model.PriorityLow})
	svc := newTaskService(repo)
	ctx := context.Background()

	got, err := svc.Toggle(ctx, "user-1", "t1")
	if err != nil || !got.Completed {
		t.Fatalf("toggle on: %+v, %v", got, err)
	}
	got, err = svc.Toggle(ctx, "user-1", "t1")
	if err != nil || got.Completed {
		t.Fatalf("toggle off: %+v, %v", got, err)
	}

	if err := svc.Delete(ctx, "user-1", "t1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, "user-1", "t1"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, "user-1", "t1"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("get deleted: expected ErrNotFound, got %v", err)
	}
}

func TestTaskServiceList(t *testing.T) {
	today := now
	repo := newMemTaskRepo(
		model.Task{ID: "a", UserID: "user-1", Title: "A", Priority: model.PriorityHigh, DueDate: &today},
		model.Task{ID: "b", UserID: "user-1", Title: "B", Priority: model.PriorityLow, Completed: true},
		model.Task{ID: "c", UserID: "user-2", Title: "C", Priority: model.PriorityHigh},
	)
	svc := newTaskService(repo)

	view, err := svc.List(context.Background(), "user-1", tasklist.Query{Filter: tasklist.FilterToday, Sort: tasklist.SortDueDate})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if view.Total != 2 || view.Shown != 1 || view.Items[0].ID != "a" {
		t.Errorf("unexpected view: %+v", view)
	}
	want := tasklist.Counts{Important: 1, InProgress: 1, Completed: 1}
	if view.Counts != want {
		t.Errorf("counts = %+v, want %+v", view.Counts, want)
	}
}
