package tasklist_test

import (
	"errors"
	"testing"

	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/tasklist"
)

func TestSort_DueDate(t *testing.T) {
	tasks := []model.Task{
		{ID: "none-1"},
		{ID: "july", DueDate: at(2025, 7, 1, 0)},
		{ID: "none-2"},
		{ID: "june", DueDate: at(2025, 6, 1, 0)},
		{ID: "june-late", DueDate: at(2025, 6, 1, 18)},
	}

	got := ids(tasklist.Sort(tasks, tasklist.SortDueDate, nil))
	want := []string{"june", "june-late", "july", "none-1", "none-2"}
	if !equalIDs(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSort_DueDateNilsAfterAllDated(t *testing.T) {
	sorted := tasklist.Sort(sampleTasks(), tasklist.SortDueDate, nil)
	seenNil := false
	for i, task := range sorted {
		if task.DueDate == nil {
			seenNil = true
			continue
		}
		if seenNil {
			t.Fatalf("dated task %s appears after an undated task", task.ID)
		}
		if i > 0 && sorted[i-1].DueDate != nil && sorted[i-1].DueDate.After(*task.DueDate) {
			t.Fatalf("task %s out of order", task.ID)
		}
	}
}

func TestSort_Priority(t *testing.T) {
	tasks := []model.Task{
		{ID: "low-1", Priority: model.PriorityLow},
		{ID: "odd", Priority: model.Priority("urgent")},
		{ID: "high-1", Priority: model.PriorityHigh},
		{ID: "medium", Priority: model.PriorityMedium},
		{ID: "high-2", Priority: model.PriorityHigh},
		{ID: "low-2", Priority: model.PriorityLow},
	}

	got := ids(tasklist.Sort(tasks, tasklist.SortPriority, nil))
	want := []string{"high-1", "high-2", "medium", "low-1", "low-2", "odd"}
	if !equalIDs(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSort_PriorityNeverInverts(t *testing.T) {
	sorted := tasklist.Sort(sampleTasks(), tasklist.SortPriority, nil)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Priority.Rank() > sorted[i].Priority.Rank() {
			t.Errorf("%s (%s) precedes %s (%s)", sorted[i-1].ID, sorted[i-1].Priority, sorted[i].ID, sorted[i].Priority)
		}
	}
}

func TestSort_NameIsLocaleAware(t *testing.T) {
	tasks := []model.Task{
		{ID: "c", Title: "cherry"},
		{ID: "B", Title: "Banana"},
		{ID: "a", Title: "apple"},
	}

	got := ids(tasklist.Sort(tasks, tasklist.SortName, tasklist.NewCollator("en")))
	want := []string{"a", "B", "c"}
	if !equalIDs(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	before := ids(tasks)
	tasklist.Sort(tasks, tasklist.SortName, nil)
	tasklist.Sort(tasks, tasklist.SortPriority, nil)
	if !equalIDs(ids(tasks), before) {
		t.Errorf("input reordered: %v", ids(tasks))
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in      string
		want    tasklist.SortKey
		wantErr bool
	}{
		{"", tasklist.SortDueDate, false},
		{"dueDate", tasklist.SortDueDate, false},
		{"priority", tasklist.SortPriority, false},
		{"NAME", tasklist.SortName, false},
		{"created", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := tasklist.ParseSortKey(tt.in)
			if tt.wantErr {
				if !errors.Is(err, tasklist.ErrUnknownSort) {
					t.Fatalf("expected ErrUnknownSort, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
