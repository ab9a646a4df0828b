package tasklist_test

import (
	"testing"

	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/tasklist"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name  string
		tasks []model.Task
		want  tasklist.Counts
	}{
		{
			name: "one high open, one low done",
			tasks: []model.Task{
				{Title: "A", Priority: model.PriorityHigh, Completed: false},
				{Title: "B", Priority: model.PriorityLow, Completed: true},
			},
			want: tasklist.Counts{Important: 1, InProgress: 1, Completed: 1},
		},
		{
			name:  "empty",
			tasks: nil,
			want:  tasklist.Counts{},
		},
		{
			name: "high priority counted regardless of completion",
			tasks: []model.Task{
				{Priority: model.PriorityHigh, Completed: true},
				{Priority: model.PriorityHigh},
				{Priority: model.PriorityMedium},
			},
			want: tasklist.Counts{Important: 2, InProgress: 2, Completed: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tasklist.Aggregate(tt.tasks); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	tasks := sampleTasks()
	if first, second := tasklist.Aggregate(tasks), tasklist.Aggregate(tasks); first != second {
		t.Errorf("counts differ: %+v vs %+v", first, second)
	}
}

func TestCategories(t *testing.T) {
	cats := tasklist.Categories(tasklist.Counts{Important: 3, InProgress: 5, Completed: 2})
	if len(cats) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(cats))
	}

	want := []struct {
		id    string
		color string
		count int
	}{
		{"important", "#3B82F6", 3},
		{"in-progress", "#8B5CF6", 5},
		{"completed", "#10B981", 2},
	}
	for i, w := range want {
		if cats[i].ID != w.id || cats[i].Color != w.color || cats[i].Count != w.count {
			t.Errorf("category %d: got %+v, want %+v", i, cats[i], w)
		}
	}
}
