package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jaekwang-park/taskboard/internal/model"
)

const preferencesColumns = `user_id, theme, email_notifications, push_notifications, task_reminders, daily_summary, updated_at`

type PostgresPreferencesRepository struct {
	db *sql.DB
}

func NewPostgresPreferences(db *sql.DB) *PostgresPreferencesRepository {
	return &PostgresPreferencesRepository{db: db}
}

func (r *PostgresPreferencesRepository) Get(ctx context.Context, userID string) (model.UserPreferences, error) {
	query := `SELECT ` + preferencesColumns + ` FROM user_preferences WHERE user_id = $1`
	return scanPostgresPreferences(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresPreferencesRepository) Create(ctx context.Context, p model.UserPreferences) (model.UserPreferences, error) {
	query := `
		INSERT INTO user_preferences (user_id, theme, email_notifications, push_notifications, task_reminders, daily_summary)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING ` + preferencesColumns

	row := r.db.QueryRowContext(ctx, query,
		p.UserID, p.Theme, p.Notifications.Email, p.Notifications.Push,
		p.Notifications.TaskReminders, p.Notifications.DailySummary,
	)
	created, err := scanPostgresPreferences(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.UserPreferences{}, ErrConflict
	}
	return created, err
}

func (r *PostgresPreferencesRepository) Update(ctx context.Context, p model.UserPreferences) (model.UserPreferences, error) {
	query := `
		UPDATE user_preferences
		SET theme = $1, email_notifications = $2, push_notifications = $3,
		    task_reminders = $4, daily_summary = $5, updated_at = now()
		WHERE user_id = $6
		RETURNING ` + preferencesColumns

	row := r.db.QueryRowContext(ctx, query,
		p.Theme, p.Notifications.Email, p.Notifications.Push,
		p.Notifications.TaskReminders, p.Notifications.DailySummary, p.UserID,
	)
	return scanPostgresPreferences(row)
}

func scanPostgresPreferences(row scannable) (model.UserPreferences, error) {
	var p model.UserPreferences
	err := row.Scan(
		&p.UserID, &p.Theme, &p.Notifications.Email, &p.Notifications.Push,
		&p.Notifications.TaskReminders, &p.Notifications.DailySummary, &p.UpdatedAt,
	)
	if err != nil {
		return model.UserPreferences{}, fmt.Errorf("failed to scan preferences: %w", err)
	}
	return p, nil
}

var _ PreferencesRepository = (*PostgresPreferencesRepository)(nil)
