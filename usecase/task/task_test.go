package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/repository"
	sqliterepo "github.com/fastygo/spideplan/repository/sqlite"
	"github.com/fastygo/spideplan/repository/sqlite/sqlitetest"
	"github.com/fastygo/spideplan/usecase"
)

var (
	ctx = context.Background()
	loc = time.FixedZone("EST", -5*3600)
	now = time.Date(2024, time.October, 3, 14, 0, 0, 0, loc)
)

func newUseCase(t *testing.T) (*UseCase, repository.TaskRepository) {
	t.Helper()
	repo := sqliterepo.NewTaskRepository(sqlitetest.NewDB(t))
	return New(repo, nil, nil, usecase.FixedClock(now)), repo
}

func at(hour int, dayOffset int) *time.Time {
	v := time.Date(2024, time.October, 3+dayOffset, hour, 0, 0, 0, loc)
	return &v
}

func TestCreateTask_Defaults(t *testing.T) {
	uc, _ := newUseCase(t)
	weekly := domain.RecurWeekly

	task, err := uc.CreateTask(ctx, Input{Title: "  Study chemistry  ", RecurringType: &weekly})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Study chemistry", task.Title)
	assert.Equal(t, domain.CategoryPersonal, task.Category)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Nil(t, task.RecurringType, "recurring type is dropped for one-off tasks")
	assert.True(t, now.Equal(task.CreatedAt))

	stored, err := uc.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Title, stored.Title)
}

func TestCreateTask_RejectsBeforePersisting(t *testing.T) {
	uc, repo := newUseCase(t)

	_, err := uc.CreateTask(ctx, Input{Title: "   "})
	assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)
	assert.Equal(t, "task title cannot be empty", err.Error())

	_, err = uc.CreateTask(ctx, Input{Title: "x", Priority: 7})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.CreateTask(ctx, Input{Title: "x", Category: "HOBBY"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	bad := domain.RecurringType("YEARLY")
	_, err = uc.CreateTask(ctx, Input{Title: "x", Recurring: true, RecurringType: &bad})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	total, err := repo.Count(ctx, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCompleteAndUncomplete(t *testing.T) {
	uc, _ := newUseCase(t)
	task, err := uc.CreateTask(ctx, Input{Title: "Deliver pizza", ScheduledAt: at(9, 0)})
	require.NoError(t, err)

	done, err := uc.CompleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.True(t, now.Equal(*done.CompletedAt))

	stored, err := uc.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)
	require.NotNil(t, stored.CompletedAt)

	reopened, err := uc.UncompleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, reopened.Completed)
	assert.Nil(t, reopened.CompletedAt)

	_, err = uc.CompleteTask(ctx, "missing")
	assert.True(t, domain.IsNotFound(err))
}

func TestTodayOverdueAndCounts(t *testing.T) {
	uc, _ := newUseCase(t)
	mk := func(title string, when *time.Time) *domain.Task {
		task, err := uc.CreateTask(ctx, Input{Title: title, ScheduledAt: when})
		require.NoError(t, err)
		return task
	}
	mk("yesterday", at(10, -1))
	morning := mk("morning", at(9, 0))
	mk("evening", at(20, 0))
	mk("tomorrow", at(9, 1))
	mk("someday", nil)

	today, err := uc.TodaysTasks(ctx)
	require.NoError(t, err)
	require.Len(t, today, 2)
	assert.Equal(t, "morning", today[0].Title)
	assert.Equal(t, "evening", today[1].Title)

	overdue, err := uc.OverdueTasks(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 2)
	assert.Equal(t, "yesterday", overdue[0].Title)

	_, err = uc.CompleteTask(ctx, morning.ID)
	require.NoError(t, err)

	counts, err := uc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Incomplete: 4, CompletedToday: 1, TotalToday: 2, Overdue: 1}, counts)

	completedToday, err := uc.CompletedTodayCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, completedToday)
}

func TestUpdateKeepsCompletion(t *testing.T) {
	uc, _ := newUseCase(t)
	task, err := uc.CreateTask(ctx, Input{Title: "draft"})
	require.NoError(t, err)
	_, err = uc.CompleteTask(ctx, task.ID)
	require.NoError(t, err)

	updated, err := uc.UpdateTask(ctx, task.ID, Input{Title: "final", Category: domain.CategoryWork, Priority: domain.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.True(t, updated.Completed)

	_, err = uc.UpdateTask(ctx, task.ID, Input{Title: ""})
	assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)
}

func TestListFiltersAndPurge(t *testing.T) {
	uc, _ := newUseCase(t)
	a, err := uc.CreateTask(ctx, Input{Title: "a", Category: domain.CategoryWork})
	require.NoError(t, err)
	_, err = uc.CreateTask(ctx, Input{Title: "b", Category: domain.CategoryHealth})
	require.NoError(t, err)
	_, err = uc.CompleteTask(ctx, a.ID)
	require.NoError(t, err)

	work, err := uc.ListTasks(ctx, Query{Category: domain.CategoryWork})
	require.NoError(t, err)
	require.Len(t, work, 1)

	completed, err := uc.ListTasks(ctx, Query{Status: repository.TaskStatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)

	_, err = uc.ListTasks(ctx, Query{Status: "archived"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	removed, err := uc.PurgeCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	require.Error(t, uc.DeleteTask(ctx, a.ID))
}

type failingTasks struct {
	repository.TaskRepository
}

func (failingTasks) Create(context.Context, *domain.Task) (*domain.Task, error) {
	return nil, errors.New("disk I/O error")
}

func (failingTasks) Delete(context.Context, string) error {
	return errors.New("disk I/O error")
}

type recordingBuffer struct {
	ops   []string
	tasks []*domain.Task
}

func (r *recordingBuffer) BufferTask(_ context.Context, op string, task *domain.Task) error {
	r.ops = append(r.ops, op)
	r.tasks = append(r.tasks, task)
	return nil
}
func (r *recordingBuffer) BufferSleep(context.Context, string, *domain.SleepEntry) error { return nil }
func (r *recordingBuffer) BufferNote(context.Context, string, *domain.Note) error         { return nil }

func TestStoreFailuresAreBuffered(t *testing.T) {
	buf := &recordingBuffer{}
	uc := New(failingTasks{}, buf, nil, usecase.FixedClock(now))

	task, err := uc.CreateTask(ctx, Input{Title: "Swing by"})
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID, "id is assigned before the write so replay keeps it")
	require.NoError(t, uc.DeleteTask(ctx, task.ID))

	assert.Equal(t, []string{usecase.OperationCreate, usecase.OperationDelete}, buf.ops)
	assert.Equal(t, task.ID, buf.tasks[1].ID)
}

func TestStoreFailuresSurfaceWithoutBuffer(t *testing.T) {
	uc := New(failingTasks{}, nil, nil, usecase.FixedClock(now))
	_, err := uc.CreateTask(ctx, Input{Title: "Swing by"})
	assert.EqualError(t, err, "disk I/O error")
}
