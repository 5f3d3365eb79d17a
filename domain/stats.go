package domain

// WeeklyPeriodLabel names the fixed weekly stats window.
const WeeklyPeriodLabel = "Last 7 days"

// SleepStats is the derived, non-persisted summary shown to the user.
type SleepStats struct {
	AverageDurationHours float64 `json:"average_duration_hours"`
	AverageQuality       float64 `json:"average_quality"`
	Period               string  `json:"period"`
	From                 Date    `json:"from"`
	To                   Date    `json:"to"`
	Entries              int     `json:"entries"`
}

// WeeklyWindow returns [today-7, today].
func WeeklyWindow(today Date) (Date, Date) {
	return today.AddDays(-7), today
}

// AverageDuration is the mean duration in minutes of entries dated within
// [from, to]. ok is false when no entry falls in the range.
func AverageDuration(entries []SleepEntry, from, to Date) (avg float64, ok bool) {
	total, count := 0, 0
	for _, e := range entries {
		if !e.Date.Between(from, to) {
			continue
		}
		total += e.DurationMinutes()
		count++
	}
	if count == 0 {
		return 0, false
	}
	return float64(total) / float64(count), true
}

// AverageQuality is the mean quality rank of entries dated within [from, to].
func AverageQuality(entries []SleepEntry, from, to Date) (avg float64, ok bool) {
	total, count := 0, 0
	for _, e := range entries {
		if !e.Date.Between(from, to) {
			continue
		}
		total += int(e.Quality)
		count++
	}
	if count == 0 {
		return 0, false
	}
	return float64(total) / float64(count), true
}

// SummarizeSleep builds the display summary; missing averages show as 0.
func SummarizeSleep(entries []SleepEntry, from, to Date, period string) SleepStats {
	stats := SleepStats{Period: period, From: from, To: to}
	for _, e := range entries {
		if e.Date.Between(from, to) {
			stats.Entries++
		}
	}
	if minutes, ok := AverageDuration(entries, from, to); ok {
		stats.AverageDurationHours = minutes / 60.0
	}
	if quality, ok := AverageQuality(entries, from, to); ok {
		stats.AverageQuality = quality
	}
	return stats
}
