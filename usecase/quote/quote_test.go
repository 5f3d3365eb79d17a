package quote

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/repository"
	rediscache "github.com/fastygo/spideplan/repository/redis"
	sqliterepo "github.com/fastygo/spideplan/repository/sqlite"
	"github.com/fastygo/spideplan/repository/sqlite/sqlitetest"
	"github.com/fastygo/spideplan/usecase"
)

var (
	ctx = context.Background()
	now = time.Date(2024, time.May, 1, 21, 0, 0, 0, time.UTC)
)

func newRepo(t *testing.T) repository.QuoteRepository {
	t.Helper()
	return sqliterepo.NewQuoteRepository(sqlitetest.NewDB(t))
}

func TestSeed_OnlyWhenEmpty(t *testing.T) {
	uc := New(newRepo(t), nil, nil, usecase.FixedClock(now))

	inserted, err := uc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultQuotes()), inserted)

	inserted, err = uc.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	count, err := uc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, count)
}

func TestReset_RestoresDefaults(t *testing.T) {
	uc := New(newRepo(t), nil, nil, usecase.FixedClock(now))
	_, err := uc.Create(ctx, Input{Text: "Keep swinging."})
	require.NoError(t, err)

	inserted, err := uc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, inserted)

	all, err := uc.List(ctx, "", false)
	require.NoError(t, err)
	for _, q := range all {
		assert.NotEqual(t, "Keep swinging.", q.Text)
	}
}

func TestCreate_DefaultsAndValidation(t *testing.T) {
	uc := New(newRepo(t), nil, nil, usecase.FixedClock(now))

	q, err := uc.Create(ctx, Input{Text: "  Stay curious.  "})
	require.NoError(t, err)
	assert.Equal(t, "Stay curious.", q.Text)
	assert.Equal(t, "Unknown", q.Author)
	assert.Equal(t, domain.QuoteMotivation, q.Category)

	_, err = uc.Create(ctx, Input{Text: "   "})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.Create(ctx, Input{Text: "x", Category: "HUMOR"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestFavorites(t *testing.T) {
	uc := New(newRepo(t), nil, nil, usecase.FixedClock(now))
	q, err := uc.Create(ctx, Input{Text: "Web first, questions later.", Category: domain.QuoteCourage})
	require.NoError(t, err)

	fav, err := uc.SetFavorite(ctx, q.ID, true)
	require.NoError(t, err)
	assert.True(t, fav.Favorite)

	updated, err := uc.Update(ctx, q.ID, Input{Text: "Web first.", Category: domain.QuoteCourage})
	require.NoError(t, err)
	assert.True(t, updated.Favorite, "editing keeps the favourite flag")

	favorites, err := uc.List(ctx, "", true)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Web first.", favorites[0].Text)

	_, err = uc.SetFavorite(ctx, "missing", true)
	assert.True(t, domain.IsNotFound(err))
}

func TestRandom(t *testing.T) {
	uc := New(newRepo(t), nil, nil, usecase.FixedClock(now))

	q, err := uc.Random(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, q)

	_, err = uc.Seed(ctx)
	require.NoError(t, err)

	q, err = uc.Random(ctx, domain.QuoteWisdom)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, domain.QuoteWisdom, q.Category)

	_, err = uc.Random(ctx, "FUNNY")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestDaily_StableWithoutCache(t *testing.T) {
	uc := New(newRepo(t), nil, nil, usecase.FixedClock(now))

	q, err := uc.Daily(ctx)
	require.NoError(t, err)
	assert.Nil(t, q)

	_, err = uc.Seed(ctx)
	require.NoError(t, err)

	first, err := uc.Daily(ctx)
	require.NoError(t, err)
	second, err := uc.Daily(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestDaily_CachedUntilMidnight(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := newRepo(t)
	uc := New(repo, rediscache.NewDailyQuoteCache(client), nil, usecase.FixedClock(now))
	_, err := uc.Seed(ctx)
	require.NoError(t, err)

	first, err := uc.Daily(ctx)
	require.NoError(t, err)
	require.NotNil(t, first)

	key := "quote:daily:2024-05-01"
	assert.True(t, srv.Exists(key))
	assert.Equal(t, 3*time.Hour, srv.TTL(key))

	// Removing some other quote leaves the pick pinned.
	all, err := uc.List(ctx, "", false)
	require.NoError(t, err)
	for _, q := range all {
		if q.ID != first.ID {
			require.NoError(t, uc.Delete(ctx, q.ID))
			break
		}
	}
	again, err := uc.Daily(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
}

func TestDaily_ForgetsRemovedQuote(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	uc := New(newRepo(t), rediscache.NewDailyQuoteCache(client), nil, usecase.FixedClock(now))
	_, err := uc.Seed(ctx)
	require.NoError(t, err)

	first, err := uc.Daily(ctx)
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, first.ID))
	assert.False(t, srv.Exists("quote:daily:2024-05-01"))

	next, err := uc.Daily(ctx)
	require.NoError(t, err)
	require.NotNil(t, next)
	_, err = uc.Get(ctx, next.ID)
	assert.NoError(t, err, "the daily quote always resolves")
}

func TestReset_ForgetsDailyQuote(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	uc := New(newRepo(t), rediscache.NewDailyQuoteCache(client), nil, usecase.FixedClock(now))
	_, err := uc.Seed(ctx)
	require.NoError(t, err)
	_, err = uc.Daily(ctx)
	require.NoError(t, err)

	_, err = uc.Reset(ctx)
	require.NoError(t, err)
	assert.False(t, srv.Exists("quote:daily:2024-05-01"))

	daily, err := uc.Daily(ctx)
	require.NoError(t, err)
	_, err = uc.Get(ctx, daily.ID)
	assert.NoError(t, err)
}

func TestDaily_CacheOutageFallsBackToStore(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	uc := New(newRepo(t), rediscache.NewDailyQuoteCache(client), nil, usecase.FixedClock(now))
	_, err := uc.Seed(ctx)
	require.NoError(t, err)
	srv.Close()

	q, err := uc.Daily(ctx)
	require.NoError(t, err)
	assert.NotNil(t, q)
}
