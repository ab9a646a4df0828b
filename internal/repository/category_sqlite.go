package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jaekwang-park/taskboard/internal/model"
)

type SQLiteCategoryRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteCategory(db *sql.DB) *SQLiteCategoryRepository {
	return &SQLiteCategoryRepository{db: db, now: time.Now}
}

func (r *SQLiteCategoryRepository) ListByUser(ctx context.Context, userID string) ([]model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = ? ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		c, err := scanSQLiteCategory(rows)
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

func (r *SQLiteCategoryRepository) GetByID(ctx context.Context, userID, categoryID string) (model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = ? AND user_id = ?`
	return scanSQLiteCategory(r.db.QueryRowContext(ctx, query, categoryID, userID))
}

func (r *SQLiteCategoryRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	query := `
		INSERT INTO categories (id, user_id, name, color, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING ` + categoryColumns

	row := r.db.QueryRowContext(ctx, query,
		uuid.NewString(), c.UserID, c.Name, c.Color, c.Description, formatTime(r.now()),
	)
	return scanSQLiteCategory(row)
}

func (r *SQLiteCategoryRepository) Update(ctx context.Context, c model.Category) (model.Category, error) {
	query := `
		UPDATE categories SET name = ?, color = ?, description = ?
		WHERE id = ? AND user_id = ?
		RETURNING ` + categoryColumns

	row := r.db.QueryRowContext(ctx, query, c.Name, c.Color, c.Description, c.ID, c.UserID)
	return scanSQLiteCategory(row)
}

func (r *SQLiteCategoryRepository) Delete(ctx context.Context, userID, categoryID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ? AND user_id = ?`, categoryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return expectOneRow(result)
}

func scanSQLiteCategory(row scannable) (model.Category, error) {
	var c model.Category
	var created string
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.Description, &created); err != nil {
		return model.Category{}, fmt.Errorf("failed to scan category: %w", err)
	}
	var err error
	if c.CreatedAt, err = parseTime(created); err != nil {
		return model.Category{}, err
	}
	return c, nil
}

var _ CategoryRepository = (*SQLiteCategoryRepository)(nil)
