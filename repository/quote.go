package repository

import (
	"context"
	"time"

	"github.com/fastygo/spideplan/domain"
)

type QuoteFilter struct {
	Category      domain.QuoteCategory
	FavoritesOnly bool
}

type QuoteRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Quote, error)
	List(ctx context.Context, filter QuoteFilter) ([]domain.Quote, error)
	// Random picks any quote, limited to category when it is set.
	Random(ctx context.Context, category domain.QuoteCategory) (*domain.Quote, error)
	Create(ctx context.Context, quote *domain.Quote) (*domain.Quote, error)
	CreateBatch(ctx context.Context, quotes []domain.Quote) error
	Update(ctx context.Context, quote *domain.Quote) error
	SetFavorite(ctx context.Context, id string, favorite bool) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// DailyQuoteCache keeps the quote picked for a given calendar date.
type DailyQuoteCache interface {
	Get(ctx context.Context, date domain.Date) (*domain.Quote, error)
	Set(ctx context.Context, date domain.Date, quote *domain.Quote, ttl time.Duration) error
	Clear(ctx context.Context, date domain.Date) error
}
