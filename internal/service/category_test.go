package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/service"
)

func TestCategoryCreate(t *testing.T) {
	tests := []struct {
		name    string
		input   model.NewCategory
		wantErr error
	}{
		{"valid", model.NewCategory{Name: " Work ", Color: "#3b82f6"}, nil},
		{"missing name", model.NewCategory{Name: "  ", Color: "#3B82F6"}, service.ErrInvalidInput},
		{"short color", model.NewCategory{Name: "Work", Color: "#fff"}, service.ErrInvalidInput},
		{"named color", model.NewCategory{Name: "Work", Color: "blue"}, service.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var writes int
			svc := service.NewCategoryService(&mockCategoryRepo{
				createFn: func(ctx context.Context, c model.Category) (model.Category, error) {
					writes++
					c.ID = "cat-1"
					return c, nil
				},
			})

			got, err := svc.Create(context.Background(), "user-1", tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if writes != 0 {
					t.Error("expected no store write")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Name != "Work" || got.UserID != "user-1" {
				t.Errorf("unexpected category: %+v", got)
			}
		})
	}
}

func TestCategoryUpdate(t *testing.T) {
	existing := model.Category{ID: "cat-1", UserID: "user-1", Name: "Work", Color: "#3B82F6"}
	repo := &mockCategoryRepo{
		getByIDFn: func(ctx context.Context, userID, id string) (model.Category, error) {
			if id != existing.ID || userID != existing.UserID {
				return model.Category{}, sql.ErrNoRows
			}
			return existing, nil
		},
		updateFn: func(ctx context.Context, c model.Category) (model.Category, error) {
			return c, nil
		},
	}
	svc := service.NewCategoryService(repo)
	ctx := context.Background()

	color := "#10B981"
	got, err := svc.Update(ctx, "user-1", "cat-1", model.CategoryPatch{Color: &color})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Color != color || got.Name != "Work" {
		t.Errorf("unexpected category: %+v", got)
	}

	bad := "green"
	if _, err := svc.Update(ctx, "user-1", "cat-1", model.CategoryPatch{Color: &bad}); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Update(ctx, "user-2", "cat-1", model.CategoryPatch{Color: &color}); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCategoryDelete(t *testing.T) {
	svc := service.NewCategoryService(&mockCategoryRepo{
		deleteFn: func(ctx context.Context, userID, id string) error {
			if id == "cat-1" {
				return nil
			}
			return sql.ErrNoRows
		},
	})
	ctx := context.Background()

	if err := svc.Delete(ctx, "user-1", "cat-1"); err != nil {
		t.Errorf("delete: %v", err)
	}
	if err := svc.Delete(ctx, "user-1", "nope"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "", "cat-1"); !errors.Is(err, service.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}
