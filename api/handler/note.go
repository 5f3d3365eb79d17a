package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/spideplan/api/transport"
	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/pkg/httpcontext"
	"github.com/fastygo/spideplan/repository"
	noteUC "github.com/fastygo/spideplan/usecase/note"
)

type NoteHandler struct {
	baseHandler
	uc *noteUC.UseCase
}

func NewNoteHandler(uc *noteUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List notes
// @Description scope=active|archived|all, q searches active notes.
// @Tags notes
// @Router /api/v1/notes [get]
func (h *NoteHandler) GetNotes(ctx *fasthttp.RequestCtx) {
	limit, offset := pagination(ctx)
	q := noteUC.Query{
		Scope:  repository.NoteScope(strings.ToLower(queryString(ctx, "scope"))),
		Search: queryString(ctx, "q"),
		Limit:  limit,
		Offset: offset,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	notes, err := h.uc.List(stdCtx, q)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondList(ctx, notes, transport.ListMeta{Count: len(notes), Limit: limit, Offset: offset})
}

// @Summary Count active notes
// @Tags notes
// @Router /api/v1/notes/count [get]
func (h *NoteHandler) GetCount(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	count, err := h.uc.CountActive(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.CountResult{Count: count})
}

// @Summary Get note
// @Tags notes
// @Router /api/v1/notes/{id} [get]
func (h *NoteHandler) GetNote(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	note, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, note)
}

// @Summary Create note
// @Tags notes
// @Router /api/v1/notes [post]
func (h *NoteHandler) CreateNote(ctx *fasthttp.RequestCtx) {
	var req transport.NoteRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	note, err := h.uc.Create(stdCtx, noteUC.Input{Content: req.Content, Tags: req.Tags})
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, note)
}

// @Summary Update note
// @Tags notes
// @Router /api/v1/notes/{id} [put]
func (h *NoteHandler) UpdateNote(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var req transport.NoteRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	note, err := h.uc.Update(stdCtx, id, noteUC.Input{Content: req.Content, Tags: req.Tags})
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, note)
}

// @Summary Archive note
// @Tags notes
// @Router /api/v1/notes/{id}/archive [post]
func (h *NoteHandler) ArchiveNote(ctx *fasthttp.RequestCtx) {
	h.transition(ctx, h.uc.Archive)
}

// @Summary Unarchive note
// @Tags notes
// @Router /api/v1/notes/{id}/unarchive [post]
func (h *NoteHandler) UnarchiveNote(ctx *fasthttp.RequestCtx) {
	h.transition(ctx, h.uc.Unarchive)
}

// @Summary Delete note
// @Tags notes
// @Router /api/v1/notes/{id} [delete]
func (h *NoteHandler) DeleteNote(ctx *fasthttp.RequestCtx) {
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

// @Summary Delete all archived notes
// @Tags notes
// @Router /api/v1/notes [delete]
func (h *NoteHandler) PurgeArchived(ctx *fasthttp.RequestCtx) {
	if !queryBool(ctx, "archived") {
		h.respondInvalid(ctx, "bulk delete requires archived=true")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	removed, err := h.uc.PurgeArchived(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.PurgeResult{Removed: removed})
}

func (h *NoteHandler) transition(ctx *fasthttp.RequestCtx, apply func(ctx context.Context, id string) (*domain.Note, error)) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	note, err := apply(stdCtx, id)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, note)
}
