package model_test

import (
	"testing"
	"time"

	"github.com/jaekwang-park/taskboard/internal/model"
)

func TestPriority_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		priority model.Priority
		want     bool
	}{
		{"low", model.PriorityLow, true},
		{"medium", model.PriorityMedium, true},
		{"high", model.PriorityHigh, true},
		{"empty", model.Priority(""), false},
		{"urgent", model.Priority("urgent"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.priority.IsValid(); got != tt.want {
				t.Errorf("Priority(%q).IsValid() = %v, want %v", tt.priority, got, tt.want)
			}
		})
	}
}

func TestPriority_Rank(t *testing.T) {
	if !(model.PriorityHigh.Rank() < model.PriorityMedium.Rank() && model.PriorityMedium.Rank() < model.PriorityLow.Rank()) {
		t.Fatal("expected high < medium < low")
	}
	if model.Priority("urgent").Rank() != model.Priority("").Rank() {
		t.Error("expected unknown priorities to share a rank")
	}
	if model.Priority("urgent").Rank() <= model.PriorityLow.Rank() {
		t.Error("expected unknown priorities to rank after low")
	}
}

func TestPriority_Label(t *testing.T) {
	if got := model.PriorityHigh.Label(); got != "High" {
		t.Errorf("got %q, want High", got)
	}
	if got := model.Priority("").Label(); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestTaskPatch_Apply(t *testing.T) {
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	base := model.Task{ID: "t1", Title: "Old", Description: "desc", DueDate: &due, Priority: model.PriorityLow}

	title := "New"
	high := model.PriorityHigh
	done := true

	t.Run("fields", func(t *testing.T) {
		got := model.TaskPatch{Title: &title, Priority: &high, Completed: &done}.Apply(base)
		if got.Title != "New" || got.Priority != model.PriorityHigh || !got.Completed {
			t.Errorf("unexpected result: %+v", got)
		}
		if got.Description != "desc" {
			t.Errorf("description changed: %q", got.Description)
		}
		if base.Title != "Old" {
			t.Error("input task was mutated")
		}
	})

	t.Run("clear due date", func(t *testing.T) {
		later := due.AddDate(0, 0, 1)
		got := model.TaskPatch{DueDate: &later, ClearDueDate: true}.Apply(base)
		if got.DueDate != nil {
			t.Errorf("expected due date cleared, got %v", got.DueDate)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if !(model.TaskPatch{}).IsEmpty() {
			t.Error("expected zero patch to be empty")
		}
		if (model.TaskPatch{ClearDueDate: true}).IsEmpty() {
			t.Error("expected clear patch to be non-empty")
		}
	})
}

func TestValidColor(t *testing.T) {
	tests := []struct {
		color string
		want  bool
	}{
		{"#3B82F6", true},
		{"#abcdef", true},
		{"3B82F6", false},
		{"#3B82F", false},
		{"#GGGGGG", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := model.ValidColor(tt.color); got != tt.want {
			t.Errorf("ValidColor(%q) = %v, want %v", tt.color, got, tt.want)
		}
	}
}

func TestDefaultPreferences(t *testing.T) {
	p := model.DefaultPreferences("user-1")
	if p.UserID != "user-1" || p.Theme != model.ThemeLight {
		t.Errorf("unexpected defaults: %+v", p)
	}
	want := model.Notifications{TaskReminders: true}
	if p.Notifications != want {
		t.Errorf("notifications: got %+v, want %+v", p.Notifications, want)
	}
	if model.Theme("blue").IsValid() {
		t.Error("expected unknown theme to be invalid")
	}
}
