// Package tasklist turns a user's fetched task set into the ordered, render-ready
// view shown by clients: filter, then sort, then project, with category counts
// computed over the full set.
package tasklist

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jaekwang-park/taskboard/internal/model"
)

var ErrUnknownFilter = errors.New("unknown filter mode")

type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterToday     FilterMode = "today"
	FilterUpcoming  FilterMode = "upcoming"
	FilterCompleted FilterMode = "completed"
)

// ParseFilterMode maps an empty string to FilterAll.
func ParseFilterMode(s string) (FilterMode, error) {
	switch m := FilterMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return FilterAll, nil
	case FilterAll, FilterToday, FilterUpcoming, FilterCompleted:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
}

// Filter returns the tasks matching mode and search, in input order. The mode
// predicate is applied first; a blank search term matches everything.
func Filter(tasks []model.Task, mode FilterMode, search string, now time.Time) []model.Task {
	match := modePredicate(mode, now)
	term := strings.ToLower(strings.TrimSpace(search))

	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !match(t) {
			continue
		}
		if term != "" && !matchesSearch(t, term) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func modePredicate(mode FilterMode, now time.Time) func(model.Task) bool {
	today := startOfDay(now)
	switch mode {
	case FilterToday:
		return func(t model.Task) bool {
			return t.DueDate != nil && startOfDay(t.DueDate.In(now.Location())).Equal(today)
		}
	case FilterUpcoming:
		return func(t model.Task) bool {
			if t.DueDate == nil || t.Completed {
				return false
			}
			return !startOfDay(t.DueDate.In(now.Location())).Before(today)
		}
	case FilterCompleted:
		return func(t model.Task) bool { return t.Completed }
	default:
		return func(model.Task) bool { return true }
	}
}

func matchesSearch(t model.Task, term string) bool {
	return strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Description), term)
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
