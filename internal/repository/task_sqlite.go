package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jaekwang-park/taskboard/internal/model"
)

type SQLiteTaskRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteTask(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db, now: time.Now}
}

func (r *SQLiteTaskRepository) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanSQLiteTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepository) GetByID(ctx context.Context, userID, taskID string) (model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_id = ?`
	return scanSQLiteTask(r.db.QueryRowContext(ctx, query, taskID, userID))
}

func (r *SQLiteTaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	now := formatTime(r.now())
	query := `
		INSERT INTO tasks (id, user_id, title, description, due_date, priority, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + taskColumns

	row := r.db.QueryRowContext(ctx, query,
		uuid.NewString(), task.UserID, task.Title, task.Description, nullableTime(task.DueDate),
		string(task.Priority), boolToInt(task.Completed), now, now,
	)
	return scanSQLiteTask(row)
}

func (r *SQLiteTaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, due_date = ?, priority = ?, completed = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
		RETURNING ` + taskColumns

	row := r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, nullableTime(task.DueDate), string(task.Priority),
		boolToInt(task.Completed), formatTime(r.now()), task.ID, task.UserID,
	)
	return scanSQLiteTask(row)
}

func (r *SQLiteTaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return expectOneRow(result)
}

func scanSQLiteTask(row scannable) (model.Task, error) {
	var t model.Task
	var due sql.NullString
	var completed int
	var created, updated string
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &due,
		&t.Priority, &completed, &created, &updated,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to scan task: %w", err)
	}
	t.Completed = completed != 0
	if due.Valid {
		d, err := parseTime(due.String)
		if err != nil {
			return model.Task{}, err
		}
		t.DueDate = &d
	}
	if t.CreatedAt, err = parseTime(created); err != nil {
		return model.Task{}, err
	}
	if t.UpdatedAt, err = parseTime(updated); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

var _ TaskRepository = (*SQLiteTaskRepository)(nil)
