package handler

import (
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/spideplan/api/transport"
	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/pkg/httpcontext"
	sleepUC "github.com/fastygo/spideplan/usecase/sleep"
)

type SleepHandler struct {
	baseHandler
	uc *sleepUC.UseCase
}

func NewSleepHandler(uc *sleepUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *SleepHandler {
	return &SleepHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List sleep entries
// @Description Newest first by default; from/to return that inclusive range oldest first.
// @Tags sleep
// @Router /api/v1/sleep/entries [get]
func (h *SleepHandler) GetEntries(ctx *fasthttp.RequestCtx) {
	from, to, ranged, ok := h.dateRange(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var (
		entries []sleepUC.Entry
		err     error
	)
	if ranged {
		entries, err = h.uc.Range(stdCtx, from, to)
	} else {
		entries, err = h.uc.Recent(stdCtx, parseInt(queryString(ctx, "limit"), sleepUC.DefaultRecentLimit))
	}
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondList(ctx, entries, transport.ListMeta{Count: len(entries)})
}

// @Summary Log a night
// @Description Replaces the entry already logged for the same date.
// @Tags sleep
// @Router /api/v1/sleep/entries [post]
func (h *SleepHandler) SaveEntry(ctx *fasthttp.RequestCtx) {
	var req transport.SleepRequest
	if !h.decode(ctx, &req) {
		return
	}
	in, err := sleepInput(req)
	if err != nil {
		h.respondInvalid(ctx, err.Error())
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entry, err := h.uc.Save(stdCtx, in)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, entry)
}

// @Summary Delete sleep entry
// @Tags sleep
// @Router /api/v1/sleep/entries/{id} [delete]
func (h *SleepHandler) DeleteEntry(ctx *fasthttp.RequestCtx) {
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

// @Summary Sleep entry for a date
// @Description Accepts YYYY-MM-DD or "today". No data means nothing was logged.
// @Tags sleep
// @Router /api/v1/sleep/days/{date} [get]
func (h *SleepHandler) GetDay(ctx *fasthttp.RequestCtx) {
	raw, _ := ctx.UserValue("date").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var (
		entry *sleepUC.Entry
		err   error
	)
	if strings.EqualFold(raw, "today") {
		entry, err = h.uc.Today(stdCtx)
	} else {
		date, perr := domain.ParseDate(raw)
		if perr != nil {
			h.respondInvalid(ctx, perr.Error())
			return
		}
		entry, err = h.uc.ForDate(stdCtx, date)
	}
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	if entry == nil {
		h.respondSuccess(ctx, http.StatusOK, nil)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, entry)
}

// @Summary Sleep statistics
// @Description Weekly window by default; from/to select an inclusive range.
// @Tags sleep
// @Router /api/v1/sleep/stats [get]
func (h *SleepHandler) GetStats(ctx *fasthttp.RequestCtx) {
	from, to, ranged, ok := h.dateRange(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var (
		stats domain.SleepStats
		err   error
	)
	if ranged {
		stats, err = h.uc.RangeStats(stdCtx, from, to)
	} else {
		stats, err = h.uc.WeeklyStats(stdCtx)
	}
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}

// dateRange reads from/to; both or neither must be present.
func (h *SleepHandler) dateRange(ctx *fasthttp.RequestCtx) (from, to domain.Date, ranged, ok bool) {
	rawFrom, rawTo := queryString(ctx, "from"), queryString(ctx, "to")
	if rawFrom == "" && rawTo == "" {
		return from, to, false, true
	}
	if rawFrom == "" || rawTo == "" {
		h.respondInvalid(ctx, "from and to must be given together")
		return from, to, false, false
	}
	var err error
	if from, err = domain.ParseDate(rawFrom); err != nil {
		h.respondInvalid(ctx, err.Error())
		return from, to, false, false
	}
	if to, err = domain.ParseDate(rawTo); err != nil {
		h.respondInvalid(ctx, err.Error())
		return from, to, false, false
	}
	return from, to, true, true
}

func sleepInput(req transport.SleepRequest) (sleepUC.Input, error) {
	in := sleepUC.Input{Notes: req.Notes}
	if req.Date != "" {
		date, err := domain.ParseDate(req.Date)
		if err != nil {
			return in, err
		}
		in.Date = &date
	}
	if req.BedTime != "" {
		bed, err := domain.ParseTimeOfDay(req.BedTime)
		if err != nil {
			return in, err
		}
		in.BedTime = &bed
	}
	if req.WakeTime != "" {
		wake, err := domain.ParseTimeOfDay(req.WakeTime)
		if err != nil {
			return in, err
		}
		in.WakeTime = &wake
	}
	if req.Quality != "" {
		quality, err := domain.ParseSleepQuality(req.Quality)
		if err != nil {
			return in, err
		}
		in.Quality = quality
	}
	return in, nil
}
