package tasklist

import (
	"time"

	"github.com/jaekwang-park/taskboard/internal/model"
)

const dueLabelLayout = "Jan 2, 2006"

type Query struct {
	Filter FilterMode `json:"filter"`
	Search string     `json:"search,omitempty"`
	Sort   SortKey    `json:"sort"`
}

// ParseQuery validates raw filter and sort values; empty values take their defaults.
func ParseQuery(filter, search, sort string) (Query, error) {
	mode, err := ParseFilterMode(filter)
	if err != nil {
		return Query{}, err
	}
	key, err := ParseSortKey(sort)
	if err != nil {
		return Query{}, err
	}
	return Query{Filter: mode, Search: search, Sort: key}, nil
}

// Item is a task prepared for display.
type Item struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	DueDate       *time.Time     `json:"dueDate"`
	DueLabel      string         `json:"dueLabel"`
	Priority      model.Priority `json:"priority"`
	PriorityLabel string         `json:"priorityLabel"`
	Completed     bool           `json:"completed"`
	Overdue       bool           `json:"overdue"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// View is everything a client needs to render the task list.
type View struct {
	Query      Query           `json:"query"`
	Items      []Item          `json:"items"`
	Shown      int             `json:"shown"`
	Total      int             `json:"total"`
	Counts     Counts          `json:"counts"`
	Categories []CategoryCount `json:"categories"`
}

// Deriver runs the pipeline. Now defines "today"; Language selects the collation
// used by the name sort.
type Deriver struct {
	Now      func() time.Time
	Language string
}

func (d Deriver) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// Derive filters and sorts all according to q. Counts always cover all.
func (d Deriver) Derive(all []model.Task, q Query) View {
	now := d.now()

	ordered := newestFirst(all)
	filtered := Filter(ordered, q.Filter, q.Search, now)
	sorted := Sort(filtered, q.Sort, NewCollator(d.Language))

	items := make([]Item, 0, len(sorted))
	for _, t := range sorted {
		items = append(items, project(t, now))
	}

	counts := Aggregate(all)
	return View{
		Query:      q,
		Items:      items,
		Shown:      len(items),
		Total:      len(all),
		Counts:     counts,
		Categories: Categories(counts),
	}
}

func project(t model.Task, now time.Time) Item {
	item := Item{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		DueDate:       t.DueDate,
		Priority:      t.Priority,
		PriorityLabel: t.Priority.Label(),
		Completed:     t.Completed,
		CreatedAt:     t.CreatedAt,
	}
	if t.Completed {
		item.PriorityLabel = "Completed"
	}
	if t.DueDate != nil {
		local := t.DueDate.In(now.Location())
		item.DueLabel = local.Format(dueLabelLayout)
		item.Overdue = !t.Completed && startOfDay(local).Before(startOfDay(now))
	}
	return item
}
