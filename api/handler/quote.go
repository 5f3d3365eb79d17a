package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/spideplan/api/transport"
	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/pkg/httpcontext"
	quoteUC "github.com/fastygo/spideplan/usecase/quote"
)

type QuoteHandler struct {
	baseHandler
	uc *quoteUC.UseCase
}

func NewQuoteHandler(uc *quoteUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List quotes
// @Tags quotes
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) GetQuotes(ctx *fasthttp.RequestCtx) {
	category, ok := h.category(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	quotes, err := h.uc.List(stdCtx, category, queryBool(ctx, "favorites"))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondList(ctx, quotes, transport.ListMeta{Count: len(quotes)})
}

// @Summary Get quote
// @Tags quotes
// @Router /api/v1/quotes/{id} [get]
func (h *QuoteHandler) GetQuote(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	quote, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, quote)
}

// @Summary Random quote
// @Tags quotes
// @Router /api/v1/quotes/random [get]
func (h *QuoteHandler) GetRandom(ctx *fasthttp.RequestCtx) {
	category, ok := h.category(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	quote, err := h.uc.Random(stdCtx, category)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	if quote == nil {
		h.respondSuccess(ctx, http.StatusOK, nil)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, quote)
}

// @Summary Quote of the day
// @Tags quotes
// @Router /api/v1/quotes/daily [get]
func (h *QuoteHandler) GetDaily(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	quote, err := h.uc.Daily(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	if quote == nil {
		h.respondSuccess(ctx, http.StatusOK, nil)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, quote)
}

// @Summary Add quote
// @Tags quotes
// @Router /api/v1/quotes [post]
func (h *QuoteHandler) CreateQuote(ctx *fasthttp.RequestCtx) {
	in, ok := h.parseQuote(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	quote, err := h.uc.Create(stdCtx, in)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, quote)
}

// @Summary Edit quote
// @Tags quotes
// @Router /api/v1/quotes/{id} [put]
func (h *QuoteHandler) UpdateQuote(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	in, ok := h.parseQuote(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	quote, err := h.uc.Update(stdCtx, id, in)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, quote)
}

// @Summary Mark or unmark a favourite
// @Tags quotes
// @Router /api/v1/quotes/{id}/favorite [put]
func (h *QuoteHandler) SetFavorite(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var req transport.FavoriteRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	quote, err := h.uc.SetFavorite(stdCtx, id, req.Favorite)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, quote)
}

// @Summary Delete quote
// @Tags quotes
// @Router /api/v1/quotes/{id} [delete]
func (h *QuoteHandler) DeleteQuote(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, id); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondNoContent(ctx)
}

// @Summary Restore the default quotes
// @Tags quotes
// @Router /api/v1/quotes/reset [post]
func (h *QuoteHandler) ResetQuotes(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	inserted, err := h.uc.Reset(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.CountResult{Count: inserted})
}

func (h *QuoteHandler) category(ctx *fasthttp.RequestCtx) (domain.QuoteCategory, bool) {
	raw := queryString(ctx, "category")
	if raw == "" {
		return "", true
	}
	category, err := domain.ParseQuoteCategory(raw)
	if err != nil {
		h.respondInvalid(ctx, err.Error())
		return "", false
	}
	return category, true
}

func (h *QuoteHandler) parseQuote(ctx *fasthttp.RequestCtx) (quoteUC.Input, bool) {
	var req transport.QuoteRequest
	if !h.decode(ctx, &req) {
		return quoteUC.Input{}, false
	}
	in := quoteUC.Input{Text: req.Text, Author: req.Author, Source: req.Source}
	if req.Category != "" {
		category, err := domain.ParseQuoteCategory(req.Category)
		if err != nil {
			h.respondInvalid(ctx, err.Error())
			return quoteUC.Input{}, false
		}
		in.Category = category
	}
	return in, true
}
