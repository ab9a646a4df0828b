package handler_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jaekwang-park/taskboard/internal/http/handler"
	"github.com/jaekwang-park/taskboard/internal/middleware"
	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/repository"
	"github.com/jaekwang-park/taskboard/internal/service"
	"github.com/jaekwang-park/taskboard/internal/tasklist"
)

var now = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func clock() time.Time { return now }

type env struct {
	db          *sql.DB
	tasks       *service.TaskService
	categories  *service.CategoryService
	preferences *service.PreferencesService
	analytics   *service.AnalyticsService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := repository.OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tasks := service.NewTaskService(repository.NewSQLiteTask(db), tasklist.Deriver{Now: clock, Language: "en"})
	return &env{
		db:          db,
		tasks:       tasks,
		categories:  service.NewCategoryService(repository.NewSQLiteCategory(db)),
		preferences: service.NewPreferencesService(repository.NewSQLitePreferences(db)),
		analytics:   service.NewAnalyticsService(tasks),
	}
}

// do sends a request to h as userID; an empty userID sends it anonymously.
func do(t *testing.T, h http.Handler, method, path, body, userID string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if userID != "" {
		req = req.WithContext(middleware.WithPrincipal(req.Context(), model.Principal{ID: userID}))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return v
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected status %d, got %d (body: %s)", status, w.Code, w.Body.String())
	}
	if got := decode[handler.ErrorResponse](t, w).Error.Code; got != code {
		t.Errorf("expected code %s, got %s", code, got)
	}
}

func seedTask(t *testing.T, e *env, userID string, input model.NewTask) model.Task {
	t.Helper()
	task, err := e.tasks.Create(context.Background(), userID, input)
	if err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
