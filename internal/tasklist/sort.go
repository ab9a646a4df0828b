package tasklist

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jaekwang-park/taskboard/internal/model"
)

var ErrUnknownSort = errors.New("unknown sort key")

type SortKey string

const (
	SortDueDate  SortKey = "dueDate"
	SortPriority SortKey = "priority"
	SortName     SortKey = "name"
)

// ParseSortKey maps an empty string to SortDueDate. Matching is case-insensitive.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "duedate", "due":
		return SortDueDate, nil
	case "priority":
		return SortPriority, nil
	case "name", "title":
		return SortName, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
	}
}

// NewCollator returns a collator for tag, falling back to English when the tag
// cannot be parsed. Collators are not safe for concurrent use.
func NewCollator(tag string) *collate.Collator {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.English
	}
	return collate.New(t)
}

// Sort returns a stably sorted copy of tasks. c is only consulted for SortName
// and may be nil, in which case an English collator is used.
func Sort(tasks []model.Task, key SortKey, c *collate.Collator) []model.Task {
	out := slices.Clone(tasks)
	switch key {
	case SortPriority:
		slices.SortStableFunc(out, func(a, b model.Task) int {
			return a.Priority.Rank() - b.Priority.Rank()
		})
	case SortName:
		if c == nil {
			c = collate.New(language.English)
		}
		slices.SortStableFunc(out, func(a, b model.Task) int {
			return c.CompareString(a.Title, b.Title)
		})
	default:
		slices.SortStableFunc(out, compareDueDate)
	}
	return out
}

// compareDueDate orders earlier due dates first and tasks without one last.
func compareDueDate(a, b model.Task) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	default:
		return a.DueDate.Compare(*b.DueDate)
	}
}

// newestFirst orders by creation time, most recent first.
func newestFirst(tasks []model.Task) []model.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b model.Task) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}
