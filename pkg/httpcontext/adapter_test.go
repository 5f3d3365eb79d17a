package httpcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/spideplan/pkg/logger"
)

func TestAttach_PropagatesRequestID(t *testing.T) {
	var rc fasthttp.RequestCtx
	rc.Request.Header.SetMethod(fasthttp.MethodGet)
	rc.Request.SetRequestURI("/api/v1/home")
	rc.Request.Header.Set(HeaderRequestID, "client-id")

	ctx, cancel := NewAdapter(time.Second).Attach(&rc)
	defer cancel()

	assert.Equal(t, "client-id", appLogger.RequestIDFromContext(ctx))
	assert.Equal(t, "client-id", string(rc.Response.Header.Peek(HeaderRequestID)))
	assert.Equal(t, "GET", ctx.Value(KeyMethod))
	assert.Equal(t, "/api/v1/home", ctx.Value(KeyPath))

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 100*time.Millisecond)
}

func TestAttach_GeneratesRequestID(t *testing.T) {
	var rc fasthttp.RequestCtx
	ctx, cancel := NewAdapter(0).Attach(&rc)
	defer cancel()

	id := appLogger.RequestIDFromContext(ctx)
	assert.Len(t, id, 36)
	assert.Equal(t, id, string(rc.Response.Header.Peek(HeaderRequestID)))
}

func TestAttach_BaseCancellation(t *testing.T) {
	base, stop := context.WithCancel(context.Background())
	adapter := NewAdapter(time.Minute).WithBase(base)

	var rc fasthttp.RequestCtx
	ctx, cancel := adapter.Attach(&rc)
	defer cancel()

	stop()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
