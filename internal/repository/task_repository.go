package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plazen/telegram/internal/model"
	"github.com/plazen/telegram/internal/repository/base"
)

type TaskRepository struct {
	*base.Repository
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{Repository: base.NewRepository(pool)}
}

const taskColumns = `id, user_id, title, scheduled_time, duration_minutes, is_completed, tz_offset_at, created_at`

// Create создаёт новую задачу. Заголовок к этому моменту уже зашифрован,
// scheduled_time - naive локальное время пользователя.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `
		INSERT INTO tasks (user_id, title, scheduled_time, duration_minutes, is_completed, tz_offset_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		task.UserID,
		task.Title,
		task.ScheduledTime,
		task.DurationMinutes,
		task.IsCompleted,
		task.TzOffsetAt,
	).Scan(&task.ID, &task.CreatedAt)

	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

// ListInRange получает задачи пользователя со стартом в [from, to).
// Границы - naive timestamps, как и scheduled_time в таблице.
func (r *TaskRepository) ListInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*model.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		  AND scheduled_time >= $2
		  AND scheduled_time < $3
		ORDER BY scheduled_time
	`

	rows, err := r.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list tasks in range: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

// ListPendingInRange как ListInRange, но только незавершённые задачи
// (для напоминаний и занятых интервалов)
func (r *TaskRepository) ListPendingInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*model.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		  AND is_completed = false
		  AND scheduled_time >= $2
		  AND scheduled_time < $3
		ORDER BY scheduled_time
	`

	rows, err := r.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list pending tasks in range: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

func scanTasks(rows pgx.Rows) ([]*model.Task, error) {
	var tasks []*model.Task
	for rows.Next() {
		var t model.Task
		err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Title,
			&t.ScheduledTime,
			&t.DurationMinutes,
			&t.IsCompleted,
			&t.TzOffsetAt,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return tasks, nil
}
