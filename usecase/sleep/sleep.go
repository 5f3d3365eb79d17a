package sleep

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/repository"
	"github.com/fastygo/spideplan/usecase"
)

// DefaultRecentLimit is how many nights the history shows by default.
const DefaultRecentLimit = 7

var entryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("spideplan:sleep-entry"))

// EntryID is the id a night gets when it is first logged. It depends only on
// the date, so a save buffered while the store is down reports the same id
// the replayed row ends up with.
func EntryID(date domain.Date) string {
	return uuid.NewSHA1(entryNamespace, []byte(date.String())).String()
}

// Input is the sleep form. Missing fields take the form defaults
// (22:00 to 07:00, GOOD) and a missing date means today.
type Input struct {
	Date     *domain.Date        `json:"date"`
	BedTime  *domain.TimeOfDay   `json:"bed_time"`
	WakeTime *domain.TimeOfDay   `json:"wake_time"`
	Quality  domain.SleepQuality `json:"quality" validate:"omitempty,min=1,max=5"`
	Notes    string              `json:"notes" validate:"max=1000"`
}

// Entry decorates a stored night with its derived duration.
type Entry struct {
	domain.SleepEntry
	DurationMinutes int     `json:"duration_minutes"`
	DurationHours   float64 `json:"duration_hours"`
	QualityName     string  `json:"quality_name"`
}

func NewEntry(e domain.SleepEntry) Entry {
	return Entry{
		SleepEntry:      e,
		DurationMinutes: e.DurationMinutes(),
		DurationHours:   e.DurationHours(),
		QualityName:     e.Quality.DisplayName(),
	}
}

func entries(list []domain.SleepEntry) []Entry {
	out := make([]Entry, 0, len(list))
	for _, e := range list {
		out = append(out, NewEntry(e))
	}
	return out
}

type UseCase struct {
	entries repository.SleepRepository
	buffer  usecase.OperationBuffer
	logger  *zap.Logger
	clock   usecase.Clock
}

func New(entries repository.SleepRepository, buffer usecase.OperationBuffer, logger *zap.Logger, clock usecase.Clock) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		entries: entries,
		buffer:  buffer,
		logger:  logger,
		clock:   clock.OrDefault(),
	}
}

// Save logs the night for the given date, replacing any entry already
// recorded for it. A replaced entry keeps its id and creation time.
func (uc *UseCase) Save(ctx context.Context, in Input) (*Entry, error) {
	if err := usecase.Validate(in); err != nil {
		return nil, err
	}

	entry := &domain.SleepEntry{
		BedTime:   domain.DefaultBedTime,
		WakeTime:  domain.DefaultWakeTime,
		Quality:   domain.DefaultSleepQuality,
		Notes:     strings.TrimSpace(in.Notes),
		Date:      uc.clock.Today(),
		CreatedAt: uc.clock.Now(),
	}
	if in.Date != nil {
		entry.Date = *in.Date
	}
	if in.BedTime != nil {
		entry.BedTime = *in.BedTime
	}
	if in.WakeTime != nil {
		entry.WakeTime = *in.WakeTime
	}
	if in.Quality != 0 {
		entry.Quality = in.Quality
	}
	entry.ID = EntryID(entry.Date)

	existing, err := uc.entries.GetByDate(ctx, entry.Date)
	switch {
	case err == nil:
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		err = uc.entries.Update(ctx, entry)
		if err == nil {
			break
		}
		if domain.IsNotFound(err) {
			return uc.insert(ctx, entry)
		}
		if !uc.shouldBuffer(ctx, usecase.OperationUpdate, entry, err) {
			return nil, err
		}
	case domain.IsNotFound(err):
		return uc.insert(ctx, entry)
	default:
		if !uc.shouldBuffer(ctx, usecase.OperationCreate, entry, err) {
			return nil, err
		}
	}
	view := NewEntry(*entry)
	return &view, nil
}

func (uc *UseCase) insert(ctx context.Context, entry *domain.SleepEntry) (*Entry, error) {
	saved, err := uc.entries.Save(ctx, entry)
	if err != nil {
		if !uc.shouldBuffer(ctx, usecase.OperationCreate, entry, err) {
			return nil, err
		}
		saved = entry
	}
	view := NewEntry(*saved)
	return &view, nil
}

func (uc *UseCase) Get(ctx context.Context, id string) (*Entry, error) {
	entry, err := uc.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := NewEntry(*entry)
	return &view, nil
}

// ForDate returns the entry logged for date, or nil when there is none.
func (uc *UseCase) ForDate(ctx context.Context, date domain.Date) (*Entry, error) {
	entry, err := uc.entries.GetByDate(ctx, date)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	view := NewEntry(*entry)
	return &view, nil
}

func (uc *UseCase) Today(ctx context.Context) (*Entry, error) {
	return uc.ForDate(ctx, uc.clock.Today())
}

// Recent lists the newest limit nights, newest first.
func (uc *UseCase) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	list, err := uc.entries.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return entries(list), nil
}

// Range lists nights dated within [from, to], oldest first.
func (uc *UseCase) Range(ctx context.Context, from, to domain.Date) ([]Entry, error) {
	if to.Before(from) {
		return nil, domain.Invalid("range end must not precede its start")
	}
	list, err := uc.entries.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return entries(list), nil
}

func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.entries.Delete(ctx, id); err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationDelete, &domain.SleepEntry{ID: id}, err) {
			return nil
		}
		return err
	}
	return nil
}

// WeeklyStats summarizes the nights from a week ago through today.
func (uc *UseCase) WeeklyStats(ctx context.Context) (domain.SleepStats, error) {
	from, to := domain.WeeklyWindow(uc.clock.Today())
	return uc.stats(ctx, from, to, domain.WeeklyPeriodLabel)
}

func (uc *UseCase) RangeStats(ctx context.Context, from, to domain.Date) (domain.SleepStats, error) {
	if to.Before(from) {
		return domain.SleepStats{}, domain.Invalid("range end must not precede its start")
	}
	return uc.stats(ctx, from, to, from.String()+" to "+to.String())
}

func (uc *UseCase) Count(ctx context.Context) (int, error) {
	return uc.entries.Count(ctx)
}

func (uc *UseCase) stats(ctx context.Context, from, to domain.Date, period string) (domain.SleepStats, error) {
	list, err := uc.entries.ListRange(ctx, from, to)
	if err != nil {
		return domain.SleepStats{}, err
	}
	return domain.SummarizeSleep(list, from, to, period), nil
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, entry *domain.SleepEntry, cause error) bool {
	if uc.buffer == nil || !usecase.Bufferable(cause) {
		return false
	}
	if err := uc.buffer.BufferSleep(ctx, operation, entry); err != nil {
		uc.logger.Error("failed to buffer sleep operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("sleep operation buffered",
		zap.String("operation", operation),
		zap.String("entry_id", entry.ID),
		zap.String("date", entry.Date.String()),
		zap.NamedError("cause", cause))
	return true
}
