package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/repository"
)

const sleepColumns = `id, entry_date, bed_time, wake_time, quality, notes, created_at`

type sleepRepository struct {
	pool *pgxpool.Pool
}

// NewSleepRepository returns a Postgres-backed implementation of SleepRepository.
func NewSleepRepository(pool *pgxpool.Pool) repository.SleepRepository {
	return &sleepRepository{pool: pool}
}

func (r *sleepRepository) GetByID(ctx context.Context, id string) (*domain.SleepEntry, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+sleepColumns+` FROM sleep_entries WHERE id = $1`, id)
	return scanSleepEntry(row)
}

func (r *sleepRepository) GetByDate(ctx context.Context, date domain.Date) (*domain.SleepEntry, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+sleepColumns+` FROM sleep_entries WHERE entry_date = $1::date`, date.String())
	return scanSleepEntry(row)
}

func (r *sleepRepository) ListRange(ctx context.Context, from, to domain.Date) ([]domain.SleepEntry, error) {
	const query = `SELECT ` + sleepColumns + `
	FROM sleep_entries
	WHERE entry_date BETWEEN $1::date AND $2::date
	ORDER BY entry_date ASC
	`
	return r.query(ctx, query, from.String(), to.String())
}

func (r *sleepRepository) ListRecent(ctx context.Context, limit int) ([]domain.SleepEntry, error) {
	const query = `SELECT ` + sleepColumns + `
	FROM sleep_entries
	ORDER BY entry_date DESC
	LIMIT $1
	`
	return r.query(ctx, query, limitArg(limit))
}

func (r *sleepRepository) Save(ctx context.Context, entry *domain.SleepEntry) (*domain.SleepEntry, error) {
	if entry == nil {
		return nil, domain.ErrInvalidPayload
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	const query = `
	INSERT INTO sleep_entries (id, entry_date, bed_time, wake_time, quality, notes, created_at)
	VALUES ($1, $2::date, $3, $4, $5, $6, $7)
	ON CONFLICT (entry_date) DO UPDATE
	SET bed_time = EXCLUDED.bed_time,
		wake_time = EXCLUDED.wake_time,
		quality = EXCLUDED.quality,
		notes = EXCLUDED.notes
	RETURNING id, created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.Date.String(),
		entry.BedTime.String(),
		entry.WakeTime.String(),
		int(entry.Quality),
		entry.Notes,
		entry.CreatedAt.UTC(),
	).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *sleepRepository) Update(ctx context.Context, entry *domain.SleepEntry) error {
	if entry == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE sleep_entries
	SET entry_date = $2::date,
		bed_time = $3,
		wake_time = $4,
		quality = $5,
		notes = $6
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.Date.String(),
		entry.BedTime.String(),
		entry.WakeTime.String(),
		int(entry.Quality),
		entry.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSleepEntryNotFound
	}
	return nil
}

func (r *sleepRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sleep_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSleepEntryNotFound
	}
	return nil
}

func (r *sleepRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sleep_entries`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *sleepRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.SleepEntry, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.SleepEntry{}
	for rows.Next() {
		entry, err := scanSleepEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func scanSleepEntry(row scanner) (*domain.SleepEntry, error) {
	var (
		entry   domain.SleepEntry
		date    time.Time
		bed     string
		wake    string
		quality int
	)

	if err := row.Scan(&entry.ID, &date, &bed, &wake, &quality, &entry.Notes, &entry.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSleepEntryNotFound
		}
		return nil, err
	}

	var err error
	if entry.BedTime, err = domain.ParseTimeOfDay(bed); err != nil {
		return nil, err
	}
	if entry.WakeTime, err = domain.ParseTimeOfDay(wake); err != nil {
		return nil, err
	}
	entry.Date = domain.DateOf(date)
	entry.Quality = domain.SleepQuality(quality)
	return &entry, nil
}
