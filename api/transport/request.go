package transport

// TaskRequest is the body of POST /tasks and PUT /tasks/{id}. Category and
// recurring type are case-insensitive; scheduled_at is RFC 3339.
type TaskRequest struct {
	Title                 string  `json:"title"`
	Description           string  `json:"description"`
	Category              string  `json:"category"`
	Priority              int     `json:"priority"`
	ScheduledAt           *string `json:"scheduled_at"`
	Recurring             bool    `json:"recurring"`
	RecurringType         *string `json:"recurring_type"`
	ReminderMinutesBefore *int    `json:"reminder_minutes_before"`
}

// SleepRequest logs a night. Times are "HH:MM", date is YYYY-MM-DD and
// quality is either the 1..5 rank or its name.
type SleepRequest struct {
	Date     string `json:"date"`
	BedTime  string `json:"bed_time"`
	WakeTime string `json:"wake_time"`
	Quality  string `json:"quality"`
	Notes    string `json:"notes"`
}

type QuoteRequest struct {
	Text     string `json:"text"`
	Author   string `json:"author"`
	Source   string `json:"source"`
	Category string `json:"category"`
}

type FavoriteRequest struct {
	Favorite bool `json:"favorite"`
}

type NoteRequest struct {
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}
