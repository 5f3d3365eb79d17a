package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/spideplan/api/transport"
	"github.com/fastygo/spideplan/internal/infrastructure/monitor"
	"github.com/fastygo/spideplan/pkg/httpcontext"
)

// StatusSource is implemented by *monitor.Monitor.
type StatusSource interface {
	GetStatus() monitor.Status
}

type HealthHandler struct {
	baseHandler
	monitor StatusSource
}

func NewHealthHandler(mon StatusSource, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	degraded := !status.Store ||
		(status.Redis != nil && !*status.Redis) ||
		(status.Buffer != nil && !*status.Buffer)

	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"degraded":  degraded,
		"services":  status,
	}

	if status.Store {
		h.respondSuccess(ctx, http.StatusOK, payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("UNAVAILABLE", "primary store unreachable", payload))
}
