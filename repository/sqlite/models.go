package sqlite

import (
	"time"

	"gorm.io/gorm"

	"github.com/fastygo/spideplan/domain"
)

// Row types keep gorm tags out of the domain package. Calendar values are
// stored as text so lexical order equals calendar order; instants are
// stored in UTC.

type taskRow struct {
	ID                    string     `gorm:"primarykey;size:36"`
	Title                 string     `gorm:"size:200;not null"`
	Description           string     `gorm:"size:2000"`
	Category              string     `gorm:"size:16;not null;index"`
	Priority              int        `gorm:"not null;default:2"`
	ScheduledAt           *time.Time `gorm:"index"`
	Completed             bool       `gorm:"not null;default:false;index"`
	CompletedAt           *time.Time
	Recurring             bool    `gorm:"not null;default:false"`
	RecurringType         *string `gorm:"size:16"`
	ReminderMinutesBefore *int
	CreatedAt             time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime:false"`
}

func (taskRow) TableName() string { return "tasks" }

type sleepRow struct {
	ID        string    `gorm:"primarykey;size:36"`
	Date      string    `gorm:"size:10;not null;uniqueIndex"`
	BedTime   string    `gorm:"size:5;not null"`
	WakeTime  string    `gorm:"size:5;not null"`
	Quality   int       `gorm:"not null"`
	Notes     string    `gorm:"size:2000"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

func (sleepRow) TableName() string { return "sleep_entries" }

type quoteRow struct {
	ID       string `gorm:"primarykey;size:36"`
	Text     string `gorm:"size:1000;not null"`
	Author   string `gorm:"size:200;not null"`
	Source   string `gorm:"size:200"`
	Category string `gorm:"size:16;not null;index"`
	Favorite bool   `gorm:"not null;default:false"`
}

func (quoteRow) TableName() string { return "quotes" }

type noteRow struct {
	ID        string    `gorm:"primarykey;size:36"`
	Content   string    `gorm:"not null"`
	Tags      []string  `gorm:"serializer:json"`
	Archived  bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"index;autoUpdateTime:false"`
}

func (noteRow) TableName() string { return "notes" }

// AutoMigrate creates or updates the planner tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&taskRow{}, &sleepRow{}, &quoteRow{}, &noteRow{})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func newTaskRow(t *domain.Task) taskRow {
	row := taskRow{
		ID:                    t.ID,
		Title:                 t.Title,
		Description:           t.Description,
		Category:              string(t.Category),
		Priority:              int(t.Priority),
		ScheduledAt:           utc(t.ScheduledAt),
		Completed:             t.Completed,
		CompletedAt:           utc(t.CompletedAt),
		Recurring:             t.Recurring,
		ReminderMinutesBefore: t.ReminderMinutesBefore,
		CreatedAt:             t.CreatedAt.UTC(),
		UpdatedAt:             t.UpdatedAt.UTC(),
	}
	if t.RecurringType != nil {
		rt := string(*t.RecurringType)
		row.RecurringType = &rt
	}
	return row
}

func (r taskRow) toDomain() domain.Task {
	task := domain.Task{
		ID:                    r.ID,
		Title:                 r.Title,
		Description:           r.Description,
		Category:              domain.TaskCategory(r.Category),
		Priority:              domain.TaskPriority(r.Priority),
		ScheduledAt:           r.ScheduledAt,
		Completed:             r.Completed,
		CompletedAt:           r.CompletedAt,
		Recurring:             r.Recurring,
		ReminderMinutesBefore: r.ReminderMinutesBefore,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
	if r.RecurringType != nil {
		rt := domain.RecurringType(*r.RecurringType)
		task.RecurringType = &rt
	}
	return task
}

func newSleepRow(e *domain.SleepEntry) sleepRow {
	return sleepRow{
		ID:        e.ID,
		Date:      e.Date.String(),
		BedTime:   e.BedTime.String(),
		WakeTime:  e.WakeTime.String(),
		Quality:   int(e.Quality),
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt.UTC(),
	}
}

func (r sleepRow) toDomain() (domain.SleepEntry, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.SleepEntry{}, err
	}
	bed, err := domain.ParseTimeOfDay(r.BedTime)
	if err != nil {
		return domain.SleepEntry{}, err
	}
	wake, err := domain.ParseTimeOfDay(r.WakeTime)
	if err != nil {
		return domain.SleepEntry{}, err
	}
	return domain.SleepEntry{
		ID:        r.ID,
		Date:      date,
		BedTime:   bed,
		WakeTime:  wake,
		Quality:   domain.SleepQuality(r.Quality),
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
	}, nil
}

func newQuoteRow(q *domain.Quote) quoteRow {
	return quoteRow{
		ID:       q.ID,
		Text:     q.Text,
		Author:   q.Author,
		Source:   q.Source,
		Category: string(q.Category),
		Favorite: q.Favorite,
	}
}

func (r quoteRow) toDomain() domain.Quote {
	return domain.Quote{
		ID:       r.ID,
		Text:     r.Text,
		Author:   r.Author,
		Source:   r.Source,
		Category: domain.QuoteCategory(r.Category),
		Favorite: r.Favorite,
	}
}

func newNoteRow(n *domain.Note) noteRow {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return noteRow{
		ID:        n.ID,
		Content:   n.Content,
		Tags:      tags,
		Archived:  n.Archived,
		CreatedAt: n.CreatedAt.UTC(),
		UpdatedAt: n.UpdatedAt.UTC(),
	}
}

func (r noteRow) toDomain() domain.Note {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.Note{
		ID:        r.ID,
		Content:   r.Content,
		Tags:      tags,
		Archived:  r.Archived,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
