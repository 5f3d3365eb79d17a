package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/repository"
)

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository returns a SQLite-backed implementation of TaskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var row taskRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find task", domain.ErrTaskNotFound)
	}
	task := row.toDomain()
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	q := applyTaskFilter(r.db.WithContext(ctx).Model(&taskRow{}), filter)
	if filter.Status == repository.TaskStatusCompleted || filter.Completed != nil {
		q = q.Order("completed_at DESC")
	} else {
		q = q.Order("scheduled_at IS NULL").Order("scheduled_at ASC").Order("created_at ASC")
	}

	var rows []taskRow
	if err := paginate(q, filter.Limit, filter.Offset).Find(&rows).Error; err != nil {
		return nil, translate(err, "list tasks", nil)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toDomain())
	}
	return tasks, nil
}

func (r *taskRepository) Count(ctx context.Context, filter repository.TaskFilter) (int, error) {
	var count int64
	q := applyTaskFilter(r.db.WithContext(ctx).Model(&taskRow{}), filter)
	if err := q.Count(&count).Error; err != nil {
		return 0, translate(err, "count tasks", nil)
	}
	return int(count), nil
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

	row := newTaskRow(task)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, translate(err, "create task", nil)
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

	row := newTaskRow(task)
	result := r.db.WithContext(ctx).Model(&taskRow{}).
		Where("id = ?", task.ID).
		Select("*").Omit("id", "created_at").
		Updates(&row)
	if err := result.Error; err != nil {
		return translate(err, "update task", nil)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&taskRow{}, "id = ?", id)
	if err := result.Error; err != nil {
		return translate(err, "delete task", nil)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) DeleteCompleted(ctx context.Context) (int, error) {
	result := r.db.WithContext(ctx).Where("completed = ?", true).Delete(&taskRow{})
	if err := result.Error; err != nil {
		return 0, translate(err, "delete completed tasks", nil)
	}
	return int(result.RowsAffected), nil
}

func applyTaskFilter(q *gorm.DB, filter repository.TaskFilter) *gorm.DB {
	switch filter.Status {
	case repository.TaskStatusIncomplete:
		q = q.Where("completed = ?", false)
	case repository.TaskStatusCompleted:
		q = q.Where("completed = ?", true)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", string(filter.Category))
	}
	if rng := filter.Scheduled; rng != nil {
		q = q.Where("scheduled_at >= ? AND scheduled_at < ?", rng.From.UTC(), rng.To.UTC())
	}
	if rng := filter.Completed; rng != nil {
		q = q.Where("completed = ? AND completed_at >= ? AND completed_at < ?", true, rng.From.UTC(), rng.To.UTC())
	}
	if filter.OverdueAt != nil {
		q = q.Where("completed = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?", false, filter.OverdueAt.UTC())
	}
	return q
}
