package repository

import (
	"context"

	"github.com/fastygo/spideplan/domain"
)

// SleepRepository persists one entry per calendar date.
type SleepRepository interface {
	GetByID(ctx context.Context, id string) (*domain.SleepEntry, error)
	GetByDate(ctx context.Context, date domain.Date) (*domain.SleepEntry, error)
	// ListRange returns entries dated within [from, to], oldest first.
	ListRange(ctx context.Context, from, to domain.Date) ([]domain.SleepEntry, error)
	// ListRecent returns the newest limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]domain.SleepEntry, error)
	// Save inserts the entry or replaces the one already logged for its date.
	Save(ctx context.Context, entry *domain.SleepEntry) (*domain.SleepEntry, error)
	Update(ctx context.Context, entry *domain.SleepEntry) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
