package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func entryOn(d Date, bed, wake TimeOfDay, q SleepQuality) SleepEntry {
	return SleepEntry{Date: d, BedTime: bed, WakeTime: wake, Quality: q}
}

func TestAverageDurationEmpty(t *testing.T) {
	today := NewDate(2024, time.April, 10)
	_, ok := AverageDuration(nil, today.AddDays(-7), today)
	assert.False(t, ok)
	_, ok = AverageQuality(nil, today.AddDays(-7), today)
	assert.False(t, ok)
}

func TestAverageDurationSingleEntry(t *testing.T) {
	today := NewDate(2024, time.April, 10)
	entries := []SleepEntry{entryOn(today, TimeOfDay{Hour: 23}, TimeOfDay{Hour: 7}, SleepGood)}
	avg, ok := AverageDuration(entries, today, today)
	assert.True(t, ok)
	assert.Equal(t, 480.0, avg)
}

func TestAveragesRespectInclusiveRange(t *testing.T) {
	today := NewDate(2024, time.April, 10)
	from, to := WeeklyWindow(today)
	assert.Equal(t, NewDate(2024, time.April, 3), from)

	entries := []SleepEntry{
		entryOn(from, TimeOfDay{Hour: 22}, TimeOfDay{Hour: 6}, SleepExcellent),  // 480, edge
		entryOn(to, TimeOfDay{Hour: 0}, TimeOfDay{Hour: 6}, SleepGood),           // 360, edge
		entryOn(from.AddDays(-1), TimeOfDay{Hour: 20}, TimeOfDay{Hour: 9}, SleepTerrible),
		entryOn(to.AddDays(1), TimeOfDay{Hour: 20}, TimeOfDay{Hour: 9}, SleepTerrible),
	}
	dur, ok := AverageDuration(entries, from, to)
	assert.True(t, ok)
	assert.Equal(t, 420.0, dur)

	q, ok := AverageQuality(entries, from, to)
	assert.True(t, ok)
	assert.Equal(t, 4.5, q)
}

func TestWeeklySummaryQuality(t *testing.T) {
	today := NewDate(2024, time.April, 10)
	from, to := WeeklyWindow(today)
	entries := []SleepEntry{
		entryOn(today, TimeOfDay{Hour: 22}, TimeOfDay{Hour: 7}, SleepExcellent),
		entryOn(today.AddDays(-2), TimeOfDay{Hour: 22}, TimeOfDay{Hour: 7}, SleepGood),
		entryOn(today.AddDays(-5), TimeOfDay{Hour: 22}, TimeOfDay{Hour: 7}, SleepFair),
	}
	stats := SummarizeSleep(entries, from, to, WeeklyPeriodLabel)
	assert.Equal(t, 4.0, stats.AverageQuality)
	assert.Equal(t, 9.0, stats.AverageDurationHours)
	assert.Equal(t, 3, stats.Entries)
	assert.Equal(t, "Last 7 days", stats.Period)
}

func TestSummaryDefaultsToZeroWithoutData(t *testing.T) {
	today := NewDate(2024, time.April, 10)
	stats := SummarizeSleep(nil, today, today, WeeklyPeriodLabel)
	assert.Zero(t, stats.AverageDurationHours)
	assert.Zero(t, stats.AverageQuality)
	assert.Zero(t, stats.Entries)
}
