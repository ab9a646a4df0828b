package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jaekwang-park/taskboard/internal/model"
)

type SQLitePreferencesRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLitePreferences(db *sql.DB) *SQLitePreferencesRepository {
	return &SQLitePreferencesRepository{db: db, now: time.Now}
}

func (r *SQLitePreferencesRepository) Get(ctx context.Context, userID string) (model.UserPreferences, error) {
	query := `SELECT ` + preferencesColumns + ` FROM user_preferences WHERE user_id = ?`
	return scanSQLitePreferences(r.db.QueryRowContext(ctx, query, userID))
}

func (r *SQLitePreferencesRepository) Create(ctx context.Context, p model.UserPreferences) (model.UserPreferences, error) {
	query := `
		INSERT INTO user_preferences (user_id, theme, email_notifications, push_notifications, task_reminders, daily_summary, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING ` + preferencesColumns

	row := r.db.QueryRowContext(ctx, query,
		p.UserID, string(p.Theme), boolToInt(p.Notifications.Email), boolToInt(p.Notifications.Push),
		boolToInt(p.Notifications.TaskReminders), boolToInt(p.Notifications.DailySummary), formatTime(r.now()),
	)
	created, err := scanSQLitePreferences(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.UserPreferences{}, ErrConflict
	}
	return created, err
}

func (r *SQLitePreferencesRepository) Update(ctx context.Context, p model.UserPreferences) (model.UserPreferences, error) {
	query := `
		UPDATE user_preferences
		SET theme = ?, email_notifications = ?, push_notifications = ?,
		    task_reminders = ?, daily_summary = ?, updated_at = ?
		WHERE user_id = ?
		RETURNING ` + preferencesColumns

	row := r.db.QueryRowContext(ctx, query,
		string(p.Theme), boolToInt(p.Notifications.Email), boolToInt(p.Notifications.Push),
		boolToInt(p.Notifications.TaskReminders), boolToInt(p.Notifications.DailySummary),
		formatTime(r.now()), p.UserID,
	)
	return scanSQLitePreferences(row)
}

func scanSQLitePreferences(row scannable) (model.UserPreferences, error) {
	var p model.UserPreferences
	var email, push, reminders, summary int
	var updated string
	err := row.Scan(&p.UserID, &p.Theme, &email, &push, &reminders, &summary, &updated)
	if err != nil {
		return model.UserPreferences{}, fmt.Errorf("failed to scan preferences: %w", err)
	}
	p.Notifications = model.Notifications{
		Email:         email != 0,
		Push:          push != 0,
		TaskReminders: reminders != 0,
		DailySummary:  summary != 0,
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return model.UserPreferences{}, err
	}
	return p, nil
}

var _ PreferencesRepository = (*SQLitePreferencesRepository)(nil)
