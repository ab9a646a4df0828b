package tasklist

import "github.com/jaekwang-park/taskboard/internal/model"

// Counts are computed over a user's full task set. The three views overlap:
// an incomplete high-priority task counts as both important and in progress.
type Counts struct {
	Important  int `json:"important"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

type CategoryCount struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

func Aggregate(tasks []model.Task) Counts {
	var c Counts
	for _, t := range tasks {
		if t.Priority == model.PriorityHigh {
			c.Important++
		}
		if t.Completed {
			c.Completed++
		} else {
			c.InProgress++
		}
	}
	return c
}

// Categories labels counts for display, always in the same order.
func Categories(c Counts) []CategoryCount {
	return []CategoryCount{
		{
			ID:          "important",
			Name:        "Important",
			Color:       "#3B82F6",
			Description: "High priority tasks that need attention",
			Count:       c.Important,
		},
		{
			ID:          "in-progress",
			Name:        "In Progress",
			Color:       "#8B5CF6",
			Description: "Tasks you're currently working on",
			Count:       c.InProgress,
		},
		{
			ID:          "completed",
			Name:        "Completed",
			Color:       "#10B981",
			Description: "Tasks you've successfully completed",
			Count:       c.Completed,
		},
	}
}
