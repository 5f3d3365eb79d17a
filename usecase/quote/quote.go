package quote

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/repository"
	"github.com/fastygo/spideplan/usecase"
)

// Input describes a user-supplied quote.
type Input struct {
	Text     string               `json:"text" validate:"required,max=500"`
	Author   string               `json:"author" validate:"max=100"`
	Source   string               `json:"source" validate:"max=200"`
	Category domain.QuoteCategory `json:"category"`
}

type UseCase struct {
	quotes repository.QuoteRepository
	cache  repository.DailyQuoteCache
	logger *zap.Logger
	clock  usecase.Clock
}

// New builds the quote use case. cache may be nil, in which case the quote
// of the day is recomputed on every call.
func New(quotes repository.QuoteRepository, cache repository.DailyQuoteCache, logger *zap.Logger, clock usecase.Clock) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		quotes: quotes,
		cache:  cache,
		logger: logger,
		clock:  clock.OrDefault(),
	}
}

// Seed loads the default quotes when the store is empty and reports how
// many were inserted.
func (uc *UseCase) Seed(ctx context.Context) (int, error) {
	count, err := uc.quotes.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	defaults := DefaultQuotes()
	for i := range defaults {
		defaults[i].ID = uuid.NewString()
	}
	if err := uc.quotes.CreateBatch(ctx, defaults); err != nil {
		return 0, err
	}
	uc.logger.Info("default quotes seeded", zap.Int("count", len(defaults)))
	return len(defaults), nil
}

// Reset drops every quote, favourites included, and reloads the defaults.
func (uc *UseCase) Reset(ctx context.Context) (int, error) {
	if err := uc.quotes.DeleteAll(ctx); err != nil {
		return 0, err
	}
	uc.forgetDaily(ctx, "")
	return uc.Seed(ctx)
}

func (uc *UseCase) List(ctx context.Context, category domain.QuoteCategory, favoritesOnly bool) ([]domain.Quote, error) {
	if category != "" && !category.Valid() {
		return nil, domain.Invalid("unknown quote category " + string(category))
	}
	return uc.quotes.List(ctx, repository.QuoteFilter{Category: category, FavoritesOnly: favoritesOnly})
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Quote, error) {
	return uc.quotes.GetByID(ctx, id)
}

// Random returns nil when no quote matches.
func (uc *UseCase) Random(ctx context.Context, category domain.QuoteCategory) (*domain.Quote, error) {
	if category != "" && !category.Valid() {
		return nil, domain.Invalid("unknown quote category " + string(category))
	}
	quote, err := uc.quotes.Random(ctx, category)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return quote, nil
}

// Daily returns the quote of the local day. The pick is stable for the
// whole day; with a cache it survives unrelated edits to the quote list
// until midnight. nil means the store holds no quotes.
func (uc *UseCase) Daily(ctx context.Context) (*domain.Quote, error) {
	today := uc.clock.Today()

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, today)
		switch {
		case err == nil:
			return cached, nil
		case !domain.IsNotFound(err):
			uc.logger.Warn("daily quote cache read failed", zap.Error(err))
		}
	}

	quotes, err := uc.quotes.List(ctx, repository.QuoteFilter{})
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, nil
	}
	pick := quotes[dayNumber(today)%int64(len(quotes))]

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, today, &pick, uc.clock.UntilMidnight()); err != nil {
			uc.logger.Warn("daily quote cache write failed", zap.Error(err))
		}
	}
	return &pick, nil
}

func (uc *UseCase) Create(ctx context.Context, in Input) (*domain.Quote, error) {
	quote := &domain.Quote{ID: uuid.NewString()}
	if err := apply(quote, in); err != nil {
		return nil, err
	}
	return uc.quotes.Create(ctx, quote)
}

// Update edits text and attribution; the favourite flag is left alone.
func (uc *UseCase) Update(ctx context.Context, id string, in Input) (*domain.Quote, error) {
	quote, err := uc.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(quote, in); err != nil {
		return nil, err
	}
	if err := uc.quotes.Update(ctx, quote); err != nil {
		return nil, err
	}
	uc.forgetDaily(ctx, quote.ID)
	return quote, nil
}

func (uc *UseCase) SetFavorite(ctx context.Context, id string, favorite bool) (*domain.Quote, error) {
	if err := uc.quotes.SetFavorite(ctx, id, favorite); err != nil {
		return nil, err
	}
	return uc.quotes.GetByID(ctx, id)
}

func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.quotes.Delete(ctx, id); err != nil {
		return err
	}
	uc.forgetDaily(ctx, id)
	return nil
}

func (uc *UseCase) Count(ctx context.Context) (int, error) {
	return uc.quotes.Count(ctx)
}

// forgetDaily drops today's cached pick when it is the quote with id, or
// unconditionally when id is empty.
func (uc *UseCase) forgetDaily(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	today := uc.clock.Today()
	if id != "" {
		cached, err := uc.cache.Get(ctx, today)
		if err != nil || cached.ID != id {
			return
		}
	}
	if err := uc.cache.Clear(ctx, today); err != nil {
		uc.logger.Warn("daily quote cache clear failed", zap.Error(err))
	}
}

func apply(quote *domain.Quote, in Input) error {
	in.Text = strings.TrimSpace(in.Text)
	if err := usecase.Validate(in); err != nil {
		return err
	}
	category := in.Category
	if category == "" {
		category = domain.QuoteMotivation
	}
	if !category.Valid() {
		return domain.Invalid("unknown quote category " + string(in.Category))
	}
	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = "Unknown"
	}

	quote.Text = in.Text
	quote.Author = author
	quote.Source = strings.TrimSpace(in.Source)
	quote.Category = category
	return nil
}

func dayNumber(d domain.Date) int64 {
	return d.Start(time.UTC).Unix() / 86400
}
