package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jaekwang-park/taskboard/internal/model"
)

const categoryColumns = `id, user_id, name, color, description, created_at`

type PostgresCategoryRepository struct {
	db *sql.DB
}

func NewPostgresCategory(db *sql.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (r *PostgresCategoryRepository) ListByUser(ctx context.Context, userID string) ([]model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		c, err := scanPostgresCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, userID, categoryID string) (model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND user_id = $2`
	return scanPostgresCategory(r.db.QueryRowContext(ctx, query, categoryID, userID))
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	query := `
		INSERT INTO categories (id, user_id, name, color, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + categoryColumns

	row := r.db.QueryRowContext(ctx, query, uuid.NewString(), c.UserID, c.Name, c.Color, c.Description)
	return scanPostgresCategory(row)
}

func (r *PostgresCategoryRepository) Update(ctx context.Context, c model.Category) (model.Category, error) {
	query := `
		UPDATE categories SET name = $1, color = $2, description = $3
		WHERE id = $4 AND user_id = $5
		RETURNING ` + categoryColumns

	row := r.db.QueryRowContext(ctx, query, c.Name, c.Color, c.Description, c.ID, c.UserID)
	return scanPostgresCategory(row)
}

func (r *PostgresCategoryRepository) Delete(ctx context.Context, userID, categoryID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, categoryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return expectOneRow(result)
}

func scanPostgresCategory(row scannable) (model.Category, error) {
	var c model.Category
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.Description, &c.CreatedAt); err != nil {
		return model.Category{}, fmt.Errorf("failed to scan category: %w", err)
	}
	return c, nil
}

var _ CategoryRepository = (*PostgresCategoryRepository)(nil)
