package repository

import (
	"context"

	"github.com/jaekwang-park/taskboard/internal/model"
)

// PreferencesRepository stores one preferences record per user. Get and Update
// report a missing record as sql.ErrNoRows; Create reports an existing one as
// ErrConflict.
type PreferencesRepository interface {
	Get(ctx context.Context, userID string) (model.UserPreferences, error)
	Create(ctx context.Context, prefs model.UserPreferences) (model.UserPreferences, error)
	Update(ctx context.Context, prefs model.UserPreferences) (model.UserPreferences, error)
}
