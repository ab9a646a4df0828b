package tasklist_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/tasklist"
)

var now = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func at(year int, month time.Month, day, hour int) *time.Time {
	t := time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
	return &t
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "today-open", Title: "Pay rent", DueDate: at(2025, 6, 15, 9), Priority: model.PriorityHigh},
		{ID: "today-done", Title: "Call mom", DueDate: at(2025, 6, 15, 23), Completed: true, Priority: model.PriorityLow},
		{ID: "tomorrow", Title: "Dentist", Description: "Bring insurance card", DueDate: at(2025, 6, 16, 8), Priority: model.PriorityMedium},
		{ID: "yesterday", Title: "Groceries", DueDate: at(2025, 6, 14, 12), Priority: model.PriorityMedium},
		{ID: "future-done", Title: "Book flights", DueDate: at(2025, 7, 1, 0), Completed: true, Priority: model.PriorityHigh},
		{ID: "no-date", Title: "Read a book", Priority: model.PriorityLow},
	}
}

func TestFilter_Modes(t *testing.T) {
	tests := []struct {
		mode tasklist.FilterMode
		want []string
	}{
		{tasklist.FilterAll, []string{"today-open", "today-done", "tomorrow", "yesterday", "future-done", "no-date"}},
		{tasklist.FilterToday, []string{"today-open", "today-done"}},
		{tasklist.FilterUpcoming, []string{"today-open", "tomorrow"}},
		{tasklist.FilterCompleted, []string{"today-done", "future-done"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := ids(tasklist.Filter(sampleTasks(), tt.mode, "", now))
			if !equalIDs(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_CompletedIsExactlyCompletedSubset(t *testing.T) {
	tasks := sampleTasks()
	got := tasklist.Filter(tasks, tasklist.FilterCompleted, "", now)
	want := 0
	for _, task := range tasks {
		if task.Completed {
			want++
		}
	}
	if len(got) != want {
		t.Fatalf("got %d tasks, want %d", len(got), want)
	}
	for _, task := range got {
		if !task.Completed {
			t.Errorf("task %s is not completed", task.ID)
		}
	}
}

func TestFilter_NilDueDateNeverTodayOrUpcoming(t *testing.T) {
	tasks := []model.Task{{ID: "x", Title: "Anything", Priority: model.PriorityHigh}}
	for _, mode := range []tasklist.FilterMode{tasklist.FilterToday, tasklist.FilterUpcoming} {
		if got := tasklist.Filter(tasks, mode, "", now); len(got) != 0 {
			t.Errorf("%s: expected no tasks, got %v", mode, ids(got))
		}
	}
}

func TestFilter_TodayUsesClockLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2025-06-15 20:00 UTC is already the 16th in Tokyo.
	tasks := []model.Task{{ID: "late", Title: "Late", DueDate: at(2025, 6, 15, 20)}}

	if got := tasklist.Filter(tasks, tasklist.FilterToday, "", now); len(got) != 1 {
		t.Errorf("UTC clock: expected match, got %v", ids(got))
	}
	if got := tasklist.Filter(tasks, tasklist.FilterToday, "", now.In(tokyo)); len(got) != 0 {
		t.Errorf("JST clock: expected no match, got %v", ids(got))
	}
}

func TestFilter_Search(t *testing.T) {
	tests := []struct {
		name   string
		mode   tasklist.FilterMode
		search string
		want   []string
	}{
		{"title case-insensitive", tasklist.FilterAll, "RENT", []string{"today-open"}},
		{"description", tasklist.FilterAll, "insurance", []string{"tomorrow"}},
		{"trimmed", tasklist.FilterAll, "  book ", []string{"future-done", "no-date"}},
		{"combined with mode", tasklist.FilterCompleted, "book", []string{"future-done"}},
		{"no match", tasklist.FilterAll, "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tasklist.Filter(sampleTasks(), tt.mode, tt.search, now))
			if !equalIDs(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_WhitespaceSearchIsNoSearch(t *testing.T) {
	without := ids(tasklist.Filter(sampleTasks(), tasklist.FilterAll, "", now))
	with := ids(tasklist.Filter(sampleTasks(), tasklist.FilterAll, "  ", now))
	if !equalIDs(without, with) {
		t.Errorf("whitespace search changed result: %v vs %v", with, without)
	}
}

func TestParseFilterMode(t *testing.T) {
	tests := []struct {
		in      string
		want    tasklist.FilterMode
		wantErr bool
	}{
		{"", tasklist.FilterAll, false},
		{"all", tasklist.FilterAll, false},
		{"Today", tasklist.FilterToday, false},
		{"upcoming", tasklist.FilterUpcoming, false},
		{"completed", tasklist.FilterCompleted, false},
		{"overdue", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := tasklist.ParseFilterMode(tt.in)
			if tt.wantErr {
				if !errors.Is(err, tasklist.ErrUnknownFilter) {
					t.Fatalf("expected ErrUnknownFilter, got %v", err)
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
