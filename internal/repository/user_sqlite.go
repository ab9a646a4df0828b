package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jaekwang-park/taskboard/internal/model"
)

type SQLiteUserRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteUser(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db, now: time.Now}
}

func (r *SQLiteUserRepository) GetOrCreate(ctx context.Context, cognitoSub, email, displayName string) (model.User, error) {
	now := formatTime(r.now())
	query := `
		INSERT INTO users (id, cognito_sub, email, display_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (cognito_sub) DO UPDATE
		SET email = excluded.email,
		    display_name = COALESCE(NULLIF(excluded.display_name, ''), users.display_name),
		    updated_at = excluded.updated_at
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query, uuid.NewString(), cognitoSub, email, displayName, now, now)
	return scanSQLiteUser(row)
}

func (r *SQLiteUserRepository) GetByCognitoSub(ctx context.Context, cognitoSub string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE cognito_sub = ?`
	return scanSQLiteUser(r.db.QueryRowContext(ctx, query, cognitoSub))
}

func scanSQLiteUser(row scannable) (model.User, error) {
	var u model.User
	var created, updated string
	if err := row.Scan(&u.ID, &u.CognitoSub, &u.Email, &u.DisplayName, &created, &updated); err != nil {
		return model.User{}, fmt.Errorf("failed to scan user: %w", err)
	}
	var err error
	if u.CreatedAt, err = parseTime(created); err != nil {
		return model.User{}, err
	}
	if u.UpdatedAt, err = parseTime(updated); err != nil {
		return model.User{}, err
	}
	return u, nil
}

var _ UserRepository = (*SQLiteUserRepository)(nil)
