package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaekwang-park/taskboard/internal/middleware"
	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/service"
)

type PreferencesHandler struct {
	svc *service.PreferencesService
}

func NewPreferencesHandler(svc *service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{svc: svc}
}

// Routes serves /api/user-preferences/{userId}. Callers may only address
// their own record.
func (h *PreferencesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/{userId}", func(r chi.Router) {
		r.Use(h.ownerOnly)
		r.Get("/", h.get)
		r.Post("/", h.create)
		r.Patch("/", h.update)
	})
	return r
}

func (h *PreferencesHandler) ownerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := middleware.UserID(r)
		if caller == "" {
			writeServiceError(w, r, service.ErrUnauthenticated)
			return
		}
		if chi.URLParam(r, "userId") != caller {
			writeServiceError(w, r, service.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type preferencesRequest struct {
	Theme         *string `json:"theme"`
	Notifications *struct {
		Email         *bool `json:"email"`
		Push          *bool `json:"push"`
		TaskReminders *bool `json:"taskReminders"`
		DailySummary  *bool `json:"dailySummary"`
	} `json:"notifications"`
}

func (req preferencesRequest) patch() model.PreferencesPatch {
	var p model.PreferencesPatch
	if req.Theme != nil {
		theme := model.Theme(*req.Theme)
		p.Theme = &theme
	}
	if n := req.Notifications; n != nil {
		p.Email = n.Email
		p.Push = n.Push
		p.TaskReminders = n.TaskReminders
		p.DailySummary = n.DailySummary
	}
	return p
}

func (h *PreferencesHandler) get(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.svc.Get(r.Context(), middleware.UserID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, prefs)
}

func (h *PreferencesHandler) create(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	prefs, err := h.svc.Create(r.Context(), middleware.UserID(r), req.patch())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, prefs)
}

func (h *PreferencesHandler) update(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	prefs, err := h.svc.Update(r.Context(), middleware.UserID(r), req.patch())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, prefs)
}
