package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/spideplan/api/transport"
	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/pkg/httpcontext"
	"github.com/fastygo/spideplan/repository"
	taskUC "github.com/fastygo/spideplan/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks
// @Description Filters: status, category, date (YYYY-MM-DD or "today"), overdue.
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	limit, offset := pagination(ctx)
	q := taskUC.Query{
		Status:  repository.TaskStatus(strings.ToLower(queryString(ctx, "status"))),
		Overdue: queryBool(ctx, "overdue"),
		Limit:   limit,
		Offset:  offset,
	}
	if raw := queryString(ctx, "category"); raw != "" {
		category, err := domain.ParseTaskCategory(raw)
		if err != nil {
			h.respondInvalid(ctx, err.Error())
			return
		}
		q.Category = category
	}
	switch raw := queryString(ctx, "date"); raw {
	case "":
	case "today":
		q.Today = true
	default:
		date, err := domain.ParseDate(raw)
		if err != nil {
			h.respondInvalid(ctx, err.Error())
			return
		}
		q.Date = &date
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, q)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondList(ctx, tasks, transport.ListMeta{Count: len(tasks), Limit: limit, Offset: offset})
}

// @Summary Task counters for the progress widgets
// @Tags tasks
// @Router /api/v1/tasks/counts [get]
func (h *TaskHandler) GetCounts(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	counts, err := h.uc.Counts(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, counts)
}

// @Summary Get task
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.GetTask(stdCtx, id)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	in, ok := h.parseTask(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, in)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update task
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	in, ok := h.parseTask(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateTask(stdCtx, id, in)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Complete task
// @Tags tasks
// @Router /api/v1/tasks/{id}/complete [post]
func (h *TaskHandler) CompleteTask(ctx *fasthttp.RequestCtx) {
	h.transition(ctx, h.uc.CompleteTask)
}

// @Summary Reopen task
// @Tags tasks
// @Router /api/v1/tasks/{id}/uncomplete [post]
func (h *TaskHandler) UncompleteTask(ctx *fasthttp.RequestCtx) {
	h.transition(ctx, h.uc.UncompleteTask)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, id); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondNoContent(ctx)
}

// @Summary Delete all completed tasks
// @Tags tasks
// @Router /api/v1/tasks [delete]
func (h *TaskHandler) PurgeCompleted(ctx *fasthttp.RequestCtx) {
	if !strings.EqualFold(queryString(ctx, "status"), string(repository.TaskStatusCompleted)) {
		h.respondInvalid(ctx, "bulk delete requires status=completed")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	removed, err := h.uc.PurgeCompleted(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.PurgeResult{Removed: removed})
}

func (h *TaskHandler) transition(ctx *fasthttp.RequestCtx, apply func(ctx context.Context, id string) (*domain.Task, error)) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := apply(stdCtx, id)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

func (h *TaskHandler) parseTask(ctx *fasthttp.RequestCtx) (taskUC.Input, bool) {
	var req transport.TaskRequest
	if !h.decode(ctx, &req) {
		return taskUC.Input{}, false
	}

	in := taskUC.Input{
		Title:                 req.Title,
		Description:           req.Description,
		Priority:              domain.TaskPriority(req.Priority),
		Recurring:             req.Recurring,
		ReminderMinutesBefore: req.ReminderMinutesBefore,
	}
	if req.Category != "" {
		category, err := domain.ParseTaskCategory(req.Category)
		if err != nil {
			h.respondInvalid(ctx, err.Error())
			return taskUC.Input{}, false
		}
		in.Category = category
	}
	if req.ScheduledAt != nil && *req.ScheduledAt != "" {
		scheduled, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			h.respondInvalid(ctx, "scheduled_at must be an RFC 3339 timestamp")
			return taskUC.Input{}, false
		}
		in.ScheduledAt = &scheduled
	}
	if req.RecurringType != nil && *req.RecurringType != "" {
		rt := domain.RecurringType(strings.ToUpper(strings.TrimSpace(*req.RecurringType)))
		in.RecurringType = &rt
	}
	return in, true
}
