package repository

import (
	"context"
	"time"

	"github.com/fastygo/spideplan/domain"
)

// TaskStatus selects tasks by completion.
type TaskStatus string

const (
	TaskStatusAll        TaskStatus = ""
	TaskStatusIncomplete TaskStatus = "incomplete"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusAll, TaskStatusIncomplete, TaskStatusCompleted:
		return true
	}
	return false
}

// TimeRange is the half-open interval [From, To).
type TimeRange struct {
	From time.Time
	To   time.Time
}

// DayRange returns the 24h range covering d in loc.
func DayRange(d domain.Date, loc *time.Location) TimeRange {
	start := d.Start(loc)
	return TimeRange{From: start, To: d.AddDays(1).Start(loc)}
}

type TaskFilter struct {
	Status    TaskStatus
	Category  domain.TaskCategory
	Scheduled *TimeRange
	Completed *TimeRange
	// OverdueAt keeps incomplete tasks scheduled at or before the instant.
	OverdueAt *time.Time
	Limit     int
	Offset    int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Count(ctx context.Context, filter TaskFilter) (int, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
	DeleteCompleted(ctx context.Context) (int, error)
}
