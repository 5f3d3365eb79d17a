package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManager_ShutdownRunsHooksInReverse(t *testing.T) {
	m := New(time.Second, nil)
	var order []string

	m.Register("store", func(context.Context) error {
		order = append(order, "store")
		return nil
	})
	m.RegisterCloser("buffer", func() error {
		order = append(order, "buffer")
		return errors.New("bolt: close failed")
	})
	m.Register("http", func(context.Context) error {
		order = append(order, "http")
		return nil
	})
	m.Register("ignored", nil)

	err := m.Shutdown(context.Background())
	assert.ErrorContains(t, err, "bolt: close failed")
	assert.Equal(t, []string{"http", "buffer", "store"}, order)

	assert.NoError(t, m.Shutdown(context.Background()), "hooks run once")
}

func TestManager_ShutdownStopsAtDeadline(t *testing.T) {
	m := New(10*time.Millisecond, nil)
	ran := false
	m.Register("late", func(context.Context) error {
		ran = true
		return nil
	})
	m.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})

	err := m.Shutdown(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, ran)
}
