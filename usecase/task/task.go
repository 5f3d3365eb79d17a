package task

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/repository"
	"github.com/fastygo/spideplan/usecase"
)

// Input carries the editable fields of a task. Zero values fall back to
// the planner defaults (MEDIUM priority, PERSONAL category).
type Input struct {
	Title                 string                `json:"title" validate:"max=200"`
	Description           string                `json:"description" validate:"max=2000"`
	Category              domain.TaskCategory   `json:"category"`
	Priority              domain.TaskPriority   `json:"priority"`
	ScheduledAt           *time.Time            `json:"scheduled_at"`
	Recurring             bool                  `json:"recurring"`
	RecurringType         *domain.RecurringType `json:"recurring_type"`
	ReminderMinutesBefore *int                  `json:"reminder_minutes_before" validate:"omitempty,min=0,max=10080"`
}

// Query selects tasks for listing; Date, Today and Overdue are resolved in
// the planner's time zone.
type Query struct {
	Status   repository.TaskStatus
	Category domain.TaskCategory
	Date     *domain.Date
	Today    bool
	Overdue  bool
	Limit    int
	Offset   int
}

// Counts feeds the progress widgets.
type Counts struct {
	Incomplete     int `json:"incomplete"`
	CompletedToday int `json:"completed_today"`
	TotalToday     int `json:"total_today"`
	Overdue        int `json:"overdue"`
}

type UseCase struct {
	tasks  repository.TaskRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
	clock  usecase.Clock
}

func New(tasks repository.TaskRepository, buffer usecase.OperationBuffer, logger *zap.Logger, clock usecase.Clock) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		buffer: buffer,
		logger: logger,
		clock:  clock.OrDefault(),
	}
}

func (uc *UseCase) ListTasks(ctx context.Context, q Query) ([]domain.Task, error) {
	filter, err := uc.filter(q)
	if err != nil {
		return nil, err
	}
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

// TodaysTasks lists tasks scheduled on the local calendar day.
func (uc *UseCase) TodaysTasks(ctx context.Context) ([]domain.Task, error) {
	return uc.ListTasks(ctx, Query{Today: true})
}

// OverdueTasks lists incomplete tasks scheduled at or before now.
func (uc *UseCase) OverdueTasks(ctx context.Context) ([]domain.Task, error) {
	return uc.ListTasks(ctx, Query{Overdue: true})
}

// CompletedTodayCount counts tasks whose completion falls on the local day.
func (uc *UseCase) CompletedTodayCount(ctx context.Context) (int, error) {
	today := repository.DayRange(uc.clock.Today(), uc.clock.Location)
	return uc.tasks.Count(ctx, repository.TaskFilter{Completed: &today})
}

func (uc *UseCase) Counts(ctx context.Context) (Counts, error) {
	var (
		counts Counts
		err    error
	)
	now := uc.clock.Now()
	today := repository.DayRange(uc.clock.Today(), uc.clock.Location)

	if counts.Incomplete, err = uc.tasks.Count(ctx, repository.TaskFilter{Status: repository.TaskStatusIncomplete}); err != nil {
		return Counts{}, err
	}
	if counts.CompletedToday, err = uc.tasks.Count(ctx, repository.TaskFilter{Completed: &today}); err != nil {
		return Counts{}, err
	}
	if counts.TotalToday, err = uc.tasks.Count(ctx, repository.TaskFilter{Scheduled: &today}); err != nil {
		return Counts{}, err
	}
	if counts.Overdue, err = uc.tasks.Count(ctx, repository.TaskFilter{OverdueAt: &now}); err != nil {
		return Counts{}, err
	}
	return counts, nil
}

// CreateTask validates the input before anything is persisted.
func (uc *UseCase) CreateTask(ctx context.Context, in Input) (*domain.Task, error) {
	task := &domain.Task{ID: uuid.NewString()}
	if err := apply(task, in); err != nil {
		return nil, err
	}
	task.Touch(uc.clock.Now())

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, task, err) {
			return task, nil
		}
		return nil, err
	}
	return created, nil
}

// UpdateTask replaces the editable fields; completion state is kept.
func (uc *UseCase) UpdateTask(ctx context.Context, id string, in Input) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(task, in); err != nil {
		return nil, err
	}
	task.Touch(uc.clock.Now())
	return uc.save(ctx, task)
}

// CompleteTask marks the task done now; repeating it refreshes the timestamp.
func (uc *UseCase) CompleteTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	done := task.MarkComplete(now)
	done.Touch(now)
	return uc.save(ctx, &done)
}

func (uc *UseCase) UncompleteTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reopened := task.MarkIncomplete()
	reopened.Touch(uc.clock.Now())
	return uc.save(ctx, &reopened)
}

func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationDelete, &domain.Task{ID: id}, err) {
			return nil
		}
		return err
	}
	return nil
}

// PurgeCompleted deletes every completed task and reports how many went.
func (uc *UseCase) PurgeCompleted(ctx context.Context) (int, error) {
	removed, err := uc.tasks.DeleteCompleted(ctx)
	if err != nil {
		return 0, err
	}
	uc.logger.Info("completed tasks purged", zap.Int("count", removed))
	return removed, nil
}

func (uc *UseCase) save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := uc.tasks.Update(ctx, task); err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, task, err) {
			return task, nil
		}
		return nil, err
	}
	return task, nil
}

func (uc *UseCase) filter(q Query) (repository.TaskFilter, error) {
	if !q.Status.Valid() {
		return repository.TaskFilter{}, domain.Invalid("status must be one of incomplete, completed")
	}
	if q.Category != "" && !q.Category.Valid() {
		return repository.TaskFilter{}, domain.Invalid("unknown task category " + string(q.Category))
	}
	filter := repository.TaskFilter{
		Status:   q.Status,
		Category: q.Category,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if q.Today {
		today := uc.clock.Today()
		q.Date = &today
	}
	if q.Date != nil {
		day := repository.DayRange(*q.Date, uc.clock.Location)
		filter.Scheduled = &day
	}
	if q.Overdue {
		now := uc.clock.Now()
		filter.OverdueAt = &now
	}
	return filter, nil
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, task *domain.Task, cause error) bool {
	if uc.buffer == nil || !usecase.Bufferable(cause) {
		return false
	}
	if err := uc.buffer.BufferTask(ctx, operation, task); err != nil {
		uc.logger.Error("failed to buffer task operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("task operation buffered",
		zap.String("operation", operation),
		zap.String("task_id", task.ID),
		zap.NamedError("cause", cause))
	return true
}

func apply(task *domain.Task, in Input) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.ErrEmptyTaskTitle
	}
	if err := usecase.Validate(in); err != nil {
		return err
	}

	category := in.Category
	if category == "" {
		category = domain.CategoryPersonal
	}
	if !category.Valid() {
		return domain.Invalid("unknown task category " + string(in.Category))
	}

	priority := in.Priority
	if priority == 0 {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return domain.Invalid("priority must be 1 (low), 2 (medium) or 3 (high)")
	}

	var recurringType *domain.RecurringType
	if in.Recurring && in.RecurringType != nil {
		if !in.RecurringType.Valid() {
			return domain.Invalid("recurring type must be DAILY, WEEKLY or MONTHLY")
		}
		rt := *in.RecurringType
		recurringType = &rt
	}

	task.Title = title
	task.Description = strings.TrimSpace(in.Description)
	task.Category = category
	task.Priority = priority
	task.ScheduledAt = in.ScheduledAt
	task.Recurring = in.Recurring
	task.RecurringType = recurringType
	task.ReminderMinutesBefore = in.ReminderMinutesBefore
	return nil
}
