package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jaekwang-park/taskboard/internal/model"
)

const userColumns = `id, cognito_sub, email, display_name, created_at, updated_at`

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUser(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetOrCreate(ctx context.Context, cognitoSub, email, displayName string) (model.User, error) {
	query := `
		INSERT INTO users (id, cognito_sub, email, display_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cognito_sub) DO UPDATE
		SET email = EXCLUDED.email,
		    display_name = COALESCE(NULLIF(EXCLUDED.display_name, ''), users.display_name),
		    updated_at = now()
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query, uuid.NewString(), cognitoSub, email, displayName)
	return scanPostgresUser(row)
}

func (r *PostgresUserRepository) GetByCognitoSub(ctx context.Context, cognitoSub string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE cognito_sub = $1`
	return scanPostgresUser(r.db.QueryRowContext(ctx, query, cognitoSub))
}

func scanPostgresUser(row scannable) (model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.CognitoSub, &u.Email, &u.DisplayName, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return model.User{}, fmt.Errorf("failed to scan user: %w", err)
	}
	return u, nil
}

var _ UserRepository = (*PostgresUserRepository)(nil)
