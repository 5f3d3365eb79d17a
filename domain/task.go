package domain

import (
	"fmt"
	"strings"
	"time"
)

type TaskCategory string

const (
	CategoryWork     TaskCategory = "WORK"
	CategoryPersonal TaskCategory = "PERSONAL"
	CategoryHealth   TaskCategory = "HEALTH"
	CategoryLearning TaskCategory = "LEARNING"
	CategorySocial   TaskCategory = "SOCIAL"
	CategoryChores   TaskCategory = "CHORES"
	CategoryOther    TaskCategory = "OTHER"
)

type categoryInfo struct {
	name  string
	color string
}

var taskCategories = map[TaskCategory]categoryInfo{
	CategoryWork:     {"Work", "#FF5722"},
	CategoryPersonal: {"Personal", "#2196F3"},
	CategoryHealth:   {"Health", "#4CAF50"},
	CategoryLearning: {"Learning", "#FF9800"},
	CategorySocial:   {"Social", "#9C27B0"},
	CategoryChores:   {"Chores", "#795548"},
	CategoryOther:    {"Other", "#607D8B"},
}

func (c TaskCategory) Valid() bool {
	_, ok := taskCategories[c]
	return ok
}

func (c TaskCategory) DisplayName() string { return taskCategories[c].name }
func (c TaskCategory) Color() string       { return taskCategories[c].color }

// ParseTaskCategory is case-insensitive.
func ParseTaskCategory(value string) (TaskCategory, error) {
	c := TaskCategory(strings.ToUpper(strings.TrimSpace(value)))
	if !c.Valid() {
		return "", NewError(ErrCodeInvalid, fmt.Sprintf("invalid task category %q", value))
	}
	return c, nil
}

// TaskPriority ranks LOW(1) < MEDIUM(2) < HIGH(3).
type TaskPriority int

const (
	PriorityLow    TaskPriority = 1
	PriorityMedium TaskPriority = 2
	PriorityHigh   TaskPriority = 3
)

func (p TaskPriority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

func (p TaskPriority) DisplayName() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "Unknown"
	}
}

type RecurringType string

const (
	RecurDaily   RecurringType = "DAILY"
	RecurWeekly  RecurringType = "WEEKLY"
	RecurMonthly RecurringType = "MONTHLY"
)

func (r RecurringType) Valid() bool {
	return r == RecurDaily || r == RecurWeekly || r == RecurMonthly
}

// Task represents a planned activity.
type Task struct {
	ID                    string         `json:"id"`
	Title                 string         `json:"title"`
	Description           string         `json:"description,omitempty"`
	Category              TaskCategory   `json:"category"`
	Priority              TaskPriority   `json:"priority"`
	ScheduledAt           *time.Time     `json:"scheduled_at,omitempty"`
	Completed             bool           `json:"completed"`
	CompletedAt           *time.Time     `json:"completed_at,omitempty"`
	Recurring             bool           `json:"recurring"`
	RecurringType         *RecurringType `json:"recurring_type,omitempty"`
	ReminderMinutesBefore *int           `json:"reminder_minutes_before,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

// MarkComplete returns the task completed at now. Repeated calls refresh
// CompletedAt.
func (t Task) MarkComplete(now time.Time) Task {
	t.Completed = true
	t.CompletedAt = &now
	return t
}

// MarkIncomplete returns the task reopened with no completion time.
func (t Task) MarkIncomplete() Task {
	t.Completed = false
	t.CompletedAt = nil
	return t
}

func (t *Task) Touch(now time.Time) {
	if t == nil {
		return
	}
	t.UpdatedAt = now
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
}
