package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskCompletion(t *testing.T) {
	now := time.Date(2024, time.January, 5, 9, 30, 0, 0, time.UTC)
	task := Task{ID: "t1", Title: "Water plants"}

	done := task.MarkComplete(now)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, now, *done.CompletedAt)
	assert.False(t, task.Completed, "original value is untouched")

	reopened := done.MarkIncomplete()
	assert.False(t, reopened.Completed)
	assert.Nil(t, reopened.CompletedAt)
}

func TestTaskCompletionRefreshesTimestamp(t *testing.T) {
	first := time.Date(2024, time.January, 5, 9, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	task := Task{}.MarkComplete(first).MarkComplete(second)
	assert.Equal(t, second, *task.CompletedAt)
}

func TestParseTaskCategory(t *testing.T) {
	c, err := ParseTaskCategory("health")
	require.NoError(t, err)
	assert.Equal(t, CategoryHealth, c)
	assert.Equal(t, "#4CAF50", c.Color())

	_, err = ParseTaskCategory("hobbies")
	assert.True(t, IsDomainError(err, ErrCodeInvalid))
}
