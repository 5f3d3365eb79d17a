package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tod(t *testing.T, value string) TimeOfDay {
	t.Helper()
	parsed, err := ParseTimeOfDay(value)
	require.NoError(t, err)
	return parsed
}

func TestSleepDuration(t *testing.T) {
	cases := []struct {
		name string
		bed  string
		wake string
		want int
	}{
		{"overnight", "22:00", "07:00", 540},
		{"same day", "07:00", "22:00", 900},
		{"equal times", "23:15", "23:15", 0},
		{"one minute past midnight", "23:59", "00:00", 1},
		{"nap", "13:30", "14:10", 40},
		{"almost a full day", "00:01", "00:00", 1439},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SleepDuration(tod(t, tc.bed), tod(t, tc.wake)))
		})
	}
}

func TestSleepDurationAlwaysWithinADay(t *testing.T) {
	for b := 0; b < MinutesPerDay; b += 7 {
		for w := 0; w < MinutesPerDay; w += 11 {
			bed := TimeOfDay{Hour: b / 60, Minute: b % 60}
			wake := TimeOfDay{Hour: w / 60, Minute: w % 60}
			d := SleepDuration(bed, wake)
			if d < 0 || d >= MinutesPerDay {
				t.Fatalf("duration(%s, %s) = %d out of range", bed, wake, d)
			}
		}
	}
	for m := 0; m < MinutesPerDay; m++ {
		at := TimeOfDay{Hour: m / 60, Minute: m % 60}
		assert.Zero(t, SleepDuration(at, at))
	}
}

func TestSleepEntryDurationHours(t *testing.T) {
	e := SleepEntry{BedTime: tod(t, "23:30"), WakeTime: tod(t, "07:00")}
	assert.Equal(t, 450, e.DurationMinutes())
	assert.InDelta(t, 7.5, e.DurationHours(), 1e-9)
}

func TestParseSleepQuality(t *testing.T) {
	q, err := ParseSleepQuality("4")
	require.NoError(t, err)
	assert.Equal(t, SleepGood, q)

	q, err = ParseSleepQuality("excellent")
	require.NoError(t, err)
	assert.Equal(t, SleepExcellent, q)

	_, err = ParseSleepQuality("9")
	assert.True(t, IsDomainError(err, ErrCodeInvalid))
	assert.Equal(t, "Fair", SleepFair.DisplayName())
}

func TestParseSleepQualityRejectsMalformed(t *testing.T) {
	for _, value := range []string{"", "0", "6", "4abc", "3.9", "+3", " 3", "good!", "-2"} {
		t.Run(value, func(t *testing.T) {
			_, err := ParseSleepQuality(value)
			assert.True(t, IsDomainError(err, ErrCodeInvalid), "%q should be rejected", value)
		})
	}
}
