package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/repository"
)

func seedTask(t *testing.T, repo repository.TaskRepository, title string, scheduled *time.Time) *domain.Task {
	t.Helper()
	task := &domain.Task{
		Title:       title,
		Category:    domain.CategoryPersonal,
		Priority:    domain.PriorityMedium,
		ScheduledAt: scheduled,
	}
	task.Touch(at(6, 0))
	created, err := repo.Create(bg, task)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	return created
}

func TestTaskRepository_CreateAndGet(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	rt := domain.RecurWeekly
	task := &domain.Task{
		Title:                 "Patrol Queens",
		Description:           "evening round",
		Category:              domain.CategoryHealth,
		Priority:              domain.PriorityHigh,
		ScheduledAt:           ptr(at(18, 30)),
		Recurring:             true,
		RecurringType:         &rt,
		ReminderMinutesBefore: ptr(15),
	}
	task.Touch(at(8, 0))

	created, err := repo.Create(bg, task)
	require.NoError(t, err)

	found, err := repo.GetByID(bg, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Patrol Queens", found.Title)
	assert.Equal(t, domain.CategoryHealth, found.Category)
	assert.Equal(t, domain.PriorityHigh, found.Priority)
	require.NotNil(t, found.ScheduledAt)
	assert.True(t, at(18, 30).Equal(*found.ScheduledAt))
	require.NotNil(t, found.RecurringType)
	assert.Equal(t, domain.RecurWeekly, *found.RecurringType)
	assert.Equal(t, 15, *found.ReminderMinutesBefore)
	assert.False(t, found.Completed)
	assert.Nil(t, found.CompletedAt)

	_, err = repo.GetByID(bg, "missing")
	assert.True(t, domain.IsNotFound(err))
}

func TestTaskRepository_ListOrdering(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	seedTask(t, repo, "unscheduled", nil)
	seedTask(t, repo, "late", ptr(at(20, 0)))
	seedTask(t, repo, "early", ptr(at(7, 0)))

	tasks, err := repo.List(bg, repository.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "early", tasks[0].Title)
	assert.Equal(t, "late", tasks[1].Title)
	assert.Equal(t, "unscheduled", tasks[2].Title)
}

func TestTaskRepository_CompletionRoundTrip(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	first := seedTask(t, repo, "first", ptr(at(9, 0)))
	second := seedTask(t, repo, "second", ptr(at(10, 0)))

	for i, task := range []*domain.Task{first, second} {
		done := task.MarkComplete(at(11, i))
		done.Touch(at(11, i))
		require.NoError(t, repo.Update(bg, &done))
	}

	completed, err := repo.List(bg, repository.TaskFilter{Status: repository.TaskStatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 2)
	assert.Equal(t, "second", completed[0].Title, "newest completion first")
	require.NotNil(t, completed[0].CompletedAt)
	assert.True(t, at(11, 1).Equal(*completed[0].CompletedAt))

	reopened := completed[0].MarkIncomplete()
	require.NoError(t, repo.Update(bg, &reopened))
	found, err := repo.GetByID(bg, reopened.ID)
	require.NoError(t, err)
	assert.False(t, found.Completed)
	assert.Nil(t, found.CompletedAt)

	open, err := repo.Count(bg, repository.TaskFilter{Status: repository.TaskStatusIncomplete})
	require.NoError(t, err)
	assert.Equal(t, 1, open)
}

func TestTaskRepository_DayAndOverdueFilters(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	day := domain.DateOf(at(0, 0))
	yesterday := at(9, 0).AddDate(0, 0, -1)

	seedTask(t, repo, "yesterday", &yesterday)
	morning := seedTask(t, repo, "morning", ptr(at(9, 0)))
	seedTask(t, repo, "evening", ptr(at(21, 0)))
	seedTask(t, repo, "tomorrow", ptr(at(9, 0).AddDate(0, 0, 1)))

	today := repository.DayRange(day, time.UTC)
	todays, err := repo.List(bg, repository.TaskFilter{Scheduled: &today})
	require.NoError(t, err)
	require.Len(t, todays, 2)
	assert.Equal(t, "morning", todays[0].Title)

	now := at(12, 0)
	overdue, err := repo.List(bg, repository.TaskFilter{OverdueAt: &now})
	require.NoError(t, err)
	require.Len(t, overdue, 2)
	assert.Equal(t, "yesterday", overdue[0].Title)

	done := morning.MarkComplete(at(10, 0))
	require.NoError(t, repo.Update(bg, &done))

	completedToday, err := repo.Count(bg, repository.TaskFilter{Completed: &today})
	require.NoError(t, err)
	assert.Equal(t, 1, completedToday)

	overdueCount, err := repo.Count(bg, repository.TaskFilter{OverdueAt: &now})
	require.NoError(t, err)
	assert.Equal(t, 1, overdueCount)
}

func TestTaskRepository_UpdateDelete(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	task := seedTask(t, repo, "draft", nil)

	task.Title = "final"
	task.Category = domain.CategoryWork
	require.NoError(t, repo.Update(bg, task))

	found, err := repo.GetByID(bg, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", found.Title)
	assert.Equal(t, domain.CategoryWork, found.Category)

	missing := domain.Task{ID: "missing", Title: "x"}
	assert.True(t, domain.IsNotFound(repo.Update(bg, &missing)))

	require.NoError(t, repo.Delete(bg, task.ID))
	assert.True(t, domain.IsNotFound(repo.Delete(bg, task.ID)))
}

func TestTaskRepository_DeleteCompleted(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	keep := seedTask(t, repo, "keep", nil)
	gone := seedTask(t, repo, "gone", nil)
	done := gone.MarkComplete(at(10, 0))
	require.NoError(t, repo.Update(bg, &done))

	removed, err := repo.DeleteCompleted(bg)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	left, err := repo.List(bg, repository.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, keep.ID, left[0].ID)
}
