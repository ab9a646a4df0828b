package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jaekwang-park/taskboard/internal/middleware"
	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/service"
)

const monthLayout = "2006-01"

type AnalyticsHandler struct {
	svc *service.AnalyticsService
	now func() time.Time
}

// NewAnalyticsHandler serves analytics and calendar views. now defines the
// default day and month for the calendar.
func NewAnalyticsHandler(svc *service.AnalyticsService, now func() time.Time) *AnalyticsHandler {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsHandler{svc: svc, now: now}
}

// Stats serves GET /api/analytics.
func (h *AnalyticsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context(), middleware.UserID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

type dayResponse struct {
	Date  string       `json:"date"`
	Tasks []model.Task `json:"tasks"`
}

type monthResponse struct {
	Month string         `json:"month"`
	Days  map[string]int `json:"days"`
}

// Calendar serves GET /api/calendar?date=YYYY-MM-DD or ?month=YYYY-MM.
// Without parameters it reports today.
func (h *AnalyticsHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	qs := r.URL.Query()

	if m := qs.Get("month"); m != "" {
		month, err := time.ParseInLocation(monthLayout, m, now.Location())
		if err != nil {
			writeServiceError(w, r, fmt.Errorf("%w: invalid month %q, expected YYYY-MM", service.ErrInvalidInput, m))
			return
		}
		counts, err := h.svc.Month(r.Context(), middleware.UserID(r), month.Year(), month.Month())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		days := make(map[string]int, len(counts))
		for day, n := range counts {
			days[strconv.Itoa(day)] = n
		}
		WriteJSON(w, http.StatusOK, monthResponse{Month: month.Format(monthLayout), Days: days})
		return
	}

	day := now
	if d := qs.Get("date"); d != "" {
		parsed, err := time.ParseInLocation(dateLayout, d, now.Location())
		if err != nil {
			writeServiceError(w, r, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", service.ErrInvalidInput, d))
			return
		}
		day = parsed
	}
	tasks, err := h.svc.Day(r.Context(), middleware.UserID(r), day)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	WriteJSON(w, http.StatusOK, dayResponse{Date: day.Format(dateLayout), Tasks: tasks})
}
