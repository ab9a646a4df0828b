package service

import (
	"context"
	"time"

	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/tasklist"
)

// AnalyticsService computes summaries over a user's full task set.
type AnalyticsService struct {
	tasks *TaskService
}

func NewAnalyticsService(tasks *TaskService) *AnalyticsService {
	return &AnalyticsService{tasks: tasks}
}

func (s *AnalyticsService) Stats(ctx context.Context, userID string) (tasklist.Stats, error) {
	all, err := s.tasks.Fetch(ctx, userID)
	if err != nil {
		return tasklist.Stats{}, err
	}
	return tasklist.ComputeStats(all, s.tasks.Now()), nil
}

// Day returns the tasks due on day, ordered by priority.
func (s *AnalyticsService) Day(ctx context.Context, userID string, day time.Time) ([]model.Task, error) {
	all, err := s.tasks.Fetch(ctx, userID)
	if err != nil {
		return nil, err
	}
	return tasklist.Sort(tasklist.TasksOn(all, day), tasklist.SortPriority, nil), nil
}

// Month returns the number of tasks due on each day of the month.
func (s *AnalyticsService) Month(ctx context.Context, userID string, year int, month time.Month) (map[int]int, error) {
	all, err := s.tasks.Fetch(ctx, userID)
	if err != nil {
		return nil, err
	}
	return tasklist.CountsByDay(all, year, month, s.tasks.Now().Location()), nil
}
