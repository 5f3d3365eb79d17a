package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/repository"
)

type dailyQuoteCache struct {
	client *redislib.Client
	prefix string
}

// NewDailyQuoteCache creates a Redis-backed cache of the quote of the day.
func NewDailyQuoteCache(client *redislib.Client) repository.DailyQuoteCache {
	return &dailyQuoteCache{
		client: client,
		prefix: "quote:daily:",
	}
}

// Get returns domain.ErrQuoteNotFound on a cache miss.
func (c *dailyQuoteCache) Get(ctx context.Context, date domain.Date) (*domain.Quote, error) {
	result, err := c.client.Get(ctx, c.key(date)).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, err
	}

	var quote domain.Quote
	if err := json.Unmarshal([]byte(result), &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (c *dailyQuoteCache) Set(ctx context.Context, date domain.Date, quote *domain.Quote, ttl time.Duration) error {
	if quote == nil || quote.ID == "" {
		return domain.ErrInvalidPayload
	}
	if ttl <= 0 {
		ttl = time.Minute
	}

	payload, err := json.Marshal(quote)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(date), payload, ttl).Err()
}

// Clear forgets the pick for date; a missing key is not an error.
func (c *dailyQuoteCache) Clear(ctx context.Context, date domain.Date) error {
	return c.client.Del(ctx, c.key(date)).Err()
}

func (c *dailyQuoteCache) key(date domain.Date) string {
	return fmt.Sprintf("%s%s", c.prefix, date)
}
