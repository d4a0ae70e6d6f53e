package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

const taskColumns = "id, title, description, due_date, priority, status, user_id, created_at, updated_at"

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	const query = `
		INSERT INTO tasks (id, title, description, due_date, priority, status, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		t.DueDate,
		t.Priority,
		t.Status,
		t.UserID,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string, ownerID string) (*domain.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE id = $1"
	args := []any{id}
	if ownerID != "" {
		query += " AND user_id = $2"
		args = append(args, ownerID)
	}
	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// List builds the WHERE clause from the optional filter fields and returns a
// page of tasks plus the unpaginated total.
func (r *TaskRepository) List(ctx context.Context, filter ports.TaskFilter) ([]*domain.Task, int64, error) {
	where, args := buildTaskFilter(filter)

	countQuery := "SELECT COUNT(*) FROM tasks" + where
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	listQuery := fmt.Sprintf(
		"SELECT %s FROM tasks%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		taskColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, offset)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, total, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	const query = `
		UPDATE tasks
		SET title = $2, description = $3, due_date = $4, priority = $5, status = $6, updated_at = $7
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		t.DueDate,
		t.Priority,
		t.Status,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string, ownerID string) error {
	query := "DELETE FROM tasks WHERE id = $1"
	args := []any{id}
	if ownerID != "" {
		query += " AND user_id = $2"
		args = append(args, ownerID)
	}
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func buildTaskFilter(filter ports.TaskFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.UserID != "" {
		add("user_id = $%d", filter.UserID)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.Priority != "" {
		add("priority = $%d", filter.Priority)
	}
	if filter.Search != "" {
		add("title ILIKE $%d", "%"+filter.Search+"%")
	}
	if !filter.DueFrom.IsZero() {
		add("due_date >= $%d", filter.DueFrom)
	}
	if !filter.DueTo.IsZero() {
		add("due_date <= $%d", filter.DueTo)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	t := &domain.Task{}
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.DueDate,
		&t.Priority,
		&t.Status,
		&t.UserID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return t, nil
}
