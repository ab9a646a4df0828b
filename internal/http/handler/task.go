package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jaekwang-park/taskboard/internal/middleware"
	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/service"
	"github.com/jaekwang-park/taskboard/internal/tasklist"
)

const dateLayout = "2006-01-02"

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Routes serves /api/tasks.
func (h *TaskHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Patch("/", h.update)
		r.Delete("/", h.delete)
		r.Post("/toggle", h.toggle)
	})
	return r
}

func (h *TaskHandler) list(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	q, err := tasklist.ParseQuery(qs.Get("filter"), qs.Get("search"), qs.Get("sort"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	view, err := h.svc.List(r.Context(), middleware.UserID(r), q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, view)
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"dueDate"`
	Priority    string  `json:"priority"`
}

func (h *TaskHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := model.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.Priority(req.Priority),
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := parseDate(*req.DueDate, h.svc.Now().Location())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		input.DueDate = &due
	}

	task, err := h.svc.Create(r.Context(), middleware.UserID(r), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) get(w http.ResponseWriter, r *http.Request) {
	task, err := h.svc.Get(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, task)
}

// updateTaskRequest distinguishes an absent dueDate (unchanged) from an
// explicit null (cleared).
type updateTaskRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	DueDate     json.RawMessage `json:"dueDate"`
	Priority    *string         `json:"priority"`
	Completed   *bool           `json:"completed"`
}

func (req updateTaskRequest) patch(loc *time.Location) (model.TaskPatch, error) {
	patch := model.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
	if req.Priority != nil {
		p := model.Priority(*req.Priority)
		patch.Priority = &p
	}

	if len(req.DueDate) == 0 {
		return patch, nil
	}
	var raw *string
	if err := json.Unmarshal(req.DueDate, &raw); err != nil {
		return model.TaskPatch{}, fmt.Errorf("%w: dueDate must be a date string or null", service.ErrInvalidInput)
	}
	if raw == nil || *raw == "" {
		patch.ClearDueDate = true
		return patch, nil
	}
	due, err := parseDate(*raw, loc)
	if err != nil {
		return model.TaskPatch{}, err
	}
	patch.DueDate = &due
	return patch, nil
}

func (h *TaskHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	patch, err := req.patch(h.svc.Now().Location())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	task, err := h.svc.Update(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) toggle(w http.ResponseWriter, r *http.Request) {
	task, err := h.svc.Toggle(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), middleware.UserID(r), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseDate accepts a calendar date (YYYY-MM-DD, midnight in loc) or an
// RFC 3339 timestamp.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", service.ErrInvalidInput, s)
}
