package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/spideplan/pkg/httpcontext"
	homeUC "github.com/fastygo/spideplan/usecase/home"
)

type HomeHandler struct {
	baseHandler
	uc *homeUC.UseCase
}

func NewHomeHandler(uc *homeUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *HomeHandler {
	return &HomeHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Home dashboard
// @Tags home
// @Router /api/v1/home [get]
func (h *HomeHandler) GetDashboard(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	dash, err := h.uc.Load(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, dash)
}
