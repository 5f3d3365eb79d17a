package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/repository"
)

const taskColumns = `id, title, description, category, priority, scheduled_at, completed, completed_at,
	recurring, recurring_type, reminder_minutes_before, created_at, updated_at`

// taskWhere is shared by List and Count; see taskFilterArgs for the
// parameter order.
const taskWhere = `
	WHERE ($1 = '' OR completed = ($1 = 'completed'))
	  AND ($2 = '' OR category = $2)
	  AND ($3::timestamptz IS NULL OR (scheduled_at >= $3 AND scheduled_at < $4))
	  AND ($5::timestamptz IS NULL OR (completed AND completed_at >= $5 AND completed_at < $6))
	  AND ($7::timestamptz IS NULL OR (NOT completed AND scheduled_at <= $7))
`

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	order := ` ORDER BY scheduled_at ASC NULLS LAST, created_at ASC`
	if filter.Status == repository.TaskStatusCompleted || filter.Completed != nil {
		order = ` ORDER BY completed_at DESC`
	}
	query := `SELECT ` + taskColumns + ` FROM tasks` + taskWhere + order + ` LIMIT $8 OFFSET $9`

	args := append(taskFilterArgs(filter), limitArg(filter.Limit), filter.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Count(ctx context.Context, filter repository.TaskFilter) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM tasks` + taskWhere
	if err := r.pool.QueryRow(ctx, query, taskFilterArgs(filter)...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.Touch(time.Now())
	}

	const query = `
	INSERT INTO tasks (id, title, description, category, priority, scheduled_at, completed, completed_at,
		recurring, recurring_type, reminder_minutes_before, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	if _, err := r.pool.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Category),
		int(task.Priority),
		nullTime(task.ScheduledAt),
		task.Completed,
		nullTime(task.CompletedAt),
		task.Recurring,
		recurringArg(task.RecurringType),
		task.ReminderMinutesBefore,
		task.CreatedAt.UTC(),
		task.UpdatedAt.UTC(),
	); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	if task.UpdatedAt.IsZero() {
		task.Touch(time.Now())
	}

	const query = `
	UPDATE tasks
	SET title = $2,
		description = $3,
		category = $4,
		priority = $5,
		scheduled_at = $6,
		completed = $7,
		completed_at = $8,
		recurring = $9,
		recurring_type = $10,
		reminder_minutes_before = $11,
		updated_at = $12
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Category),
		int(task.Priority),
		nullTime(task.ScheduledAt),
		task.Completed,
		nullTime(task.CompletedAt),
		task.Recurring,
		recurringArg(task.RecurringType),
		task.ReminderMinutesBefore,
		task.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) DeleteCompleted(ctx context.Context) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE completed`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func taskFilterArgs(filter repository.TaskFilter) []interface{} {
	scheduledFrom, scheduledTo := rangeArgs(filter.Scheduled)
	completedFrom, completedTo := rangeArgs(filter.Completed)
	return []interface{}{
		string(filter.Status),
		string(filter.Category),
		scheduledFrom,
		scheduledTo,
		completedFrom,
		completedTo,
		nullTime(filter.OverdueAt),
	}
}

func recurringArg(rt *domain.RecurringType) interface{} {
	if rt == nil {
		return nil
	}
	return string(*rt)
}

func scanTask(row scanner) (*domain.Task, error) {
	var (
		task          domain.Task
		category      string
		priority      int
		recurringType *string
	)

	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&category,
		&priority,
		&task.ScheduledAt,
		&task.Completed,
		&task.CompletedAt,
		&task.Recurring,
		&recurringType,
		&task.ReminderMinutesBefore,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Category = domain.TaskCategory(category)
	task.Priority = domain.TaskPriority(priority)
	if recurringType != nil {
		rt := domain.RecurringType(*recurringType)
		task.RecurringType = &rt
	}
	return &task, nil
}
