package tasklist

import (
	"math"
	"time"

	"github.com/jaekwang-park/taskboard/internal/model"
)

const statsWindowDays = 7

type PriorityBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

type DailyCount struct {
	Date      time.Time `json:"date"`
	Label     string    `json:"label"`
	Total     int       `json:"total"`
	Completed int       `json:"completed"`
}

type Stats struct {
	Total          int               `json:"total"`
	Completed      int               `json:"completed"`
	Pending        int               `json:"pending"`
	CompletionRate int               `json:"completionRate"`
	ByPriority     PriorityBreakdown `json:"byPriority"`
	Daily          []DailyCount      `json:"daily"`
}

// ComputeStats summarises tasks. Daily covers the last seven calendar days ending
// today, bucketed by creation date.
func ComputeStats(tasks []model.Task, now time.Time) Stats {
	var s Stats
	s.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
		switch t.Priority {
		case model.PriorityHigh:
			s.ByPriority.High++
		case model.PriorityMedium:
			s.ByPriority.Medium++
		case model.PriorityLow:
			s.ByPriority.Low++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}

	today := startOfDay(now)
	s.Daily = make([]DailyCount, 0, statsWindowDays)
	for i := statsWindowDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		dc := DailyCount{Date: day, Label: day.Format("Mon")}
		for _, t := range tasks {
			if t.CreatedAt.IsZero() || !sameDay(t.CreatedAt.In(now.Location()), day) {
				continue
			}
			dc.Total++
			if t.Completed {
				dc.Completed++
			}
		}
		s.Daily = append(s.Daily, dc)
	}
	return s
}

// TasksOn returns the tasks due on day's calendar date, in input order.
func TasksOn(tasks []model.Task, day time.Time) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if t.DueDate != nil && sameDay(t.DueDate.In(day.Location()), day) {
			out = append(out, t)
		}
	}
	return out
}

// CountsByDay maps day-of-month to the number of tasks due that day.
func CountsByDay(tasks []model.Task, year int, month time.Month, loc *time.Location) map[int]int {
	counts := make(map[int]int)
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		d := t.DueDate.In(loc)
		if d.Year() == year && d.Month() == month {
			counts[d.Day()]++
		}
	}
	return counts
}
