package sqlite

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/repository"
)

type sleepRepository struct {
	db *gorm.DB
}

// NewSleepRepository returns a SQLite-backed implementation of SleepRepository.
func NewSleepRepository(db *gorm.DB) repository.SleepRepository {
	return &sleepRepository{db: db}
}

func (r *sleepRepository) GetByID(ctx context.Context, id string) (*domain.SleepEntry, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *sleepRepository) GetByDate(ctx context.Context, date domain.Date) (*domain.SleepEntry, error) {
	return r.first(r.db.WithContext(ctx).Where("date = ?", date.String()))
}

func (r *sleepRepository) ListRange(ctx context.Context, from, to domain.Date) ([]domain.SleepEntry, error) {
	var rows []sleepRow
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from.String(), to.String()).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list sleep entries", nil)
	}
	return sleepRowsToDomain(rows)
}

func (r *sleepRepository) ListRecent(ctx context.Context, limit int) ([]domain.SleepEntry, error) {
	var rows []sleepRow
	q := paginate(r.db.WithContext(ctx).Order("date DESC"), limit, 0)
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err, "list recent sleep entries", nil)
	}
	return sleepRowsToDomain(rows)
}

func (r *sleepRepository) Save(ctx context.Context, entry *domain.SleepEntry) (*domain.SleepEntry, error) {
	if entry == nil {
		return nil, domain.ErrInvalidPayload
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing sleepRow
		err := tx.Where("date = ?", entry.Date.String()).First(&existing).Error
		switch {
		case err == nil:
			entry.ID = existing.ID
			entry.CreatedAt = existing.CreatedAt
			row := newSleepRow(entry)
			return tx.Model(&sleepRow{}).
				Where("id = ?", existing.ID).
				Select("bed_time", "wake_time", "quality", "notes").
				Updates(&row).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			if entry.ID == "" {
				entry.ID = uuid.NewString()
			}
			if entry.CreatedAt.IsZero() {
				entry.CreatedAt = time.Now()
			}
			row := newSleepRow(entry)
			return tx.Create(&row).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, translate(err, "save sleep entry", nil)
	}
	return entry, nil
}

func (r *sleepRepository) Update(ctx context.Context, entry *domain.SleepEntry) error {
	if entry == nil {
		return domain.ErrInvalidPayload
	}
	row := newSleepRow(entry)
	result := r.db.WithContext(ctx).Model(&sleepRow{}).
		Where("id = ?", entry.ID).
		Select("date", "bed_time", "wake_time", "quality", "notes").
		Updates(&row)
	if err := result.Error; err != nil {
		return translate(err, "update sleep entry", nil)
	}
	if result.RowsAffected == 0 {
		return domain.ErrSleepEntryNotFound
	}
	return nil
}

func (r *sleepRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&sleepRow{}, "id = ?", id)
	if err := result.Error; err != nil {
		return translate(err, "delete sleep entry", nil)
	}
	if result.RowsAffected == 0 {
		return domain.ErrSleepEntryNotFound
	}
	return nil
}

func (r *sleepRepository) Count(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&sleepRow{}).Count(&count).Error; err != nil {
		return 0, translate(err, "count sleep entries", nil)
	}
	return int(count), nil
}

func (r *sleepRepository) first(q *gorm.DB) (*domain.SleepEntry, error) {
	var row sleepRow
	if err := q.First(&row).Error; err != nil {
		return nil, translate(err, "find sleep entry", domain.ErrSleepEntryNotFound)
	}
	entry, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func sleepRowsToDomain(rows []sleepRow) ([]domain.SleepEntry, error) {
	entries := make([]domain.SleepEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
