package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/spideplan/domain"
)

func night(date domain.Date, bed, wake int, q domain.SleepQuality) *domain.SleepEntry {
	return &domain.SleepEntry{
		Date:     date,
		BedTime:  domain.TimeOfDay{Hour: bed},
		WakeTime: domain.TimeOfDay{Hour: wake},
		Quality:  q,
	}
}

func TestSleepRepository_SaveReplacesSameDate(t *testing.T) {
	repo := NewSleepRepository(setupTestDB(t))
	date := domain.NewDate(2024, time.March, 14)

	first, err := repo.Save(bg, night(date, 22, 6, domain.SleepFair))
	require.NoError(t, err)

	second, err := repo.Save(bg, night(date, 23, 8, domain.SleepExcellent))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	count, err := repo.Count(bg)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	found, err := repo.GetByDate(bg, date)
	require.NoError(t, err)
	assert.Equal(t, domain.SleepExcellent, found.Quality)
	assert.Equal(t, 540, found.DurationMinutes())
}

func TestSleepRepository_RangeAndRecent(t *testing.T) {
	repo := NewSleepRepository(setupTestDB(t))
	today := domain.NewDate(2024, time.March, 14)
	for i := 0; i < 10; i++ {
		_, err := repo.Save(bg, night(today.AddDays(-i), 22, 6, domain.SleepGood))
		require.NoError(t, err)
	}

	from, to := domain.WeeklyWindow(today)
	week, err := repo.ListRange(bg, from, to)
	require.NoError(t, err)
	require.Len(t, week, 8)
	assert.Equal(t, from, week[0].Date)
	assert.Equal(t, today, week[7].Date)

	recent, err := repo.ListRecent(bg, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, today, recent[0].Date)
	assert.Equal(t, today.AddDays(-2), recent[2].Date)
}

func TestSleepRepository_NotFoundAndDelete(t *testing.T) {
	repo := NewSleepRepository(setupTestDB(t))
	date := domain.NewDate(2024, time.March, 14)

	_, err := repo.GetByDate(bg, date)
	assert.True(t, domain.IsNotFound(err))

	entry, err := repo.Save(bg, night(date, 1, 9, domain.SleepPoor))
	require.NoError(t, err)

	entry.Notes = "woke up twice"
	require.NoError(t, repo.Update(bg, entry))
	found, err := repo.GetByID(bg, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "woke up twice", found.Notes)

	require.NoError(t, repo.Delete(bg, entry.ID))
	assert.True(t, domain.IsNotFound(repo.Delete(bg, entry.ID)))
	_, err = repo.GetByID(bg, entry.ID)
	assert.True(t, domain.IsNotFound(err))
}
