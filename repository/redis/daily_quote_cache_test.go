package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/spideplan/domain"
)

func newCache(t *testing.T) (*miniredis.Miniredis, *dailyQuoteCache) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return srv, NewDailyQuoteCache(client).(*dailyQuoteCache)
}

func TestDailyQuoteCache_MissThenHit(t *testing.T) {
	_, cache := newCache(t)
	ctx := context.Background()
	day := domain.NewDate(2024, time.July, 4)

	_, err := cache.Get(ctx, day)
	assert.True(t, domain.IsNotFound(err))

	quote := &domain.Quote{ID: "q1", Text: "Whatever comes our way, we'll face it together.", Author: "Mary Jane Watson", Category: domain.QuoteCourage}
	require.NoError(t, cache.Set(ctx, day, quote, time.Hour))

	cached, err := cache.Get(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, *quote, *cached)

	_, err = cache.Get(ctx, day.AddDays(1))
	assert.True(t, domain.IsNotFound(err), "keys are per date")
}

func TestDailyQuoteCache_Expires(t *testing.T) {
	srv, cache := newCache(t)
	ctx := context.Background()
	day := domain.NewDate(2024, time.July, 4)

	require.NoError(t, cache.Set(ctx, day, &domain.Quote{ID: "q1", Text: "t", Author: "a"}, 10*time.Minute))
	assert.Equal(t, 10*time.Minute, srv.TTL("quote:daily:2024-07-04"))

	srv.FastForward(11 * time.Minute)
	_, err := cache.Get(ctx, day)
	assert.True(t, domain.IsNotFound(err))
}

func TestDailyQuoteCache_Clear(t *testing.T) {
	srv, cache := newCache(t)
	ctx := context.Background()
	day := domain.NewDate(2024, time.July, 4)

	require.NoError(t, cache.Clear(ctx, day), "clearing a missing key is fine")
	require.NoError(t, cache.Set(ctx, day, &domain.Quote{ID: "q1", Text: "t", Author: "a"}, time.Hour))
	require.NoError(t, cache.Clear(ctx, day))

	assert.False(t, srv.Exists("quote:daily:2024-07-04"))
	_, err := cache.Get(ctx, day)
	assert.True(t, domain.IsNotFound(err))
}

func TestDailyQuoteCache_RejectsEmptyQuote(t *testing.T) {
	_, cache := newCache(t)
	assert.ErrorIs(t, cache.Set(context.Background(), domain.NewDate(2024, 1, 1), nil, time.Hour), domain.ErrInvalidPayload)
}
