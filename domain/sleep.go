package domain

import (
	"fmt"
	"strings"
	"time"
)

// SleepQuality is the 1..5 ordinal rating of a night.
type SleepQuality int

const (
	SleepTerrible  SleepQuality = 1
	SleepPoor      SleepQuality = 2
	SleepFair      SleepQuality = 3
	SleepGood      SleepQuality = 4
	SleepExcellent SleepQuality = 5
)

var sleepQualityNames = map[SleepQuality]string{
	SleepTerrible:  "Terrible",
	SleepPoor:      "Poor",
	SleepFair:      "Fair",
	SleepGood:      "Good",
	SleepExcellent: "Excellent",
}

func (q SleepQuality) Valid() bool {
	return q >= SleepTerrible && q <= SleepExcellent
}

func (q SleepQuality) DisplayName() string {
	if name, ok := sleepQualityNames[q]; ok {
		return name
	}
	return "Unknown"
}

// ParseSleepQuality accepts either the numeric rank or the name.
func ParseSleepQuality(value string) (SleepQuality, error) {
	if rank, ok := parseDigits(value); ok && SleepQuality(rank).Valid() {
		return SleepQuality(rank), nil
	}
	for q, name := range sleepQualityNames {
		if strings.EqualFold(name, value) {
			return q, nil
		}
	}
	return 0, NewError(ErrCodeInvalid, fmt.Sprintf("invalid sleep quality %q", value))
}

// Default values used by the sleep form when nothing was logged yet.
var (
	DefaultBedTime      = TimeOfDay{Hour: 22}
	DefaultWakeTime     = TimeOfDay{Hour: 7}
	DefaultSleepQuality = SleepGood
)

// SleepEntry is one logged night, keyed by the calendar date it belongs to.
type SleepEntry struct {
	ID        string       `json:"id"`
	BedTime   TimeOfDay    `json:"bed_time"`
	WakeTime  TimeOfDay    `json:"wake_time"`
	Quality   SleepQuality `json:"quality"`
	Notes     string       `json:"notes,omitempty"`
	Date      Date         `json:"date"`
	CreatedAt time.Time    `json:"created_at"`
}

// DurationMinutes is always in [0, MinutesPerDay).
func (e SleepEntry) DurationMinutes() int {
	return SleepDuration(e.BedTime, e.WakeTime)
}

func (e SleepEntry) DurationHours() float64 {
	return float64(e.DurationMinutes()) / 60.0
}

// SleepDuration returns the minutes slept between bed and wake time. A wake
// time earlier than the bed time means the night crossed midnight. Equal
// times yield 0, never a full day.
func SleepDuration(bed, wake TimeOfDay) int {
	b, w := bed.Minutes(), wake.Minutes()
	if w >= b {
		return w - b
	}
	return MinutesPerDay - b + w
}
