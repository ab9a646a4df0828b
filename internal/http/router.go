package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/jaekwang-park/taskboard/internal/http/handler"
	"github.com/jaekwang-park/taskboard/internal/middleware"
	"github.com/jaekwang-park/taskboard/internal/service"
)

// Services are the application services exposed over HTTP. Auth may be nil,
// which leaves only /api/auth/me mounted.
type Services struct {
	Tasks       *service.TaskService
	Categories  *service.CategoryService
	Preferences *service.PreferencesService
	Analytics   *service.AnalyticsService
	Auth        *service.AuthService

	// Store is probed by /health when set.
	Store handler.Pinger
	Now   func() time.Time
}

func NewRouter(logger *slog.Logger, auth *middleware.Auth, svcs Services) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, http.StatusNotFound, "NOT_FOUND", "endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	// Health check stays outside /api for load balancer probes.
	r.Method(http.MethodGet, "/health", handler.NewHealthHandler(svcs.Store))

	r.Mount("/api/auth", handler.NewAuthHandler(svcs.Auth).Routes(auth.Middleware))

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Mount("/api/tasks", handler.NewTaskHandler(svcs.Tasks).Routes())
		r.Mount("/api/categories", handler.NewCategoryHandler(svcs.Categories).Routes())
		r.Mount("/api/user-preferences", handler.NewPreferencesHandler(svcs.Preferences).Routes())

		analytics := handler.NewAnalyticsHandler(svcs.Analytics, svcs.Now)
		r.Get("/api/analytics", analytics.Stats)
		r.Get("/api/calendar", analytics.Calendar)
	})

	return r
}
