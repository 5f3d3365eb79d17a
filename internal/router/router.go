package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/spideplan/api/handler"
	"github.com/fastygo/spideplan/internal/middleware"
)

type Handlers struct {
	Health *apiHandler.HealthHandler
	Home   *apiHandler.HomeHandler
	Task   *apiHandler.TaskHandler
	Sleep  *apiHandler.SleepHandler
	Quote  *apiHandler.QuoteHandler
	Note   *apiHandler.NoteHandler
}

// New registers every route. guard wraps the /api/v1 routes; /health stays open.
func New(handlers Handlers, guard middleware.Middleware) *router.Router {
	if guard == nil {
		guard = func(next fasthttp.RequestHandler) fasthttp.RequestHandler { return next }
	}
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	api := r.Group("/api/v1")
	get := func(path string, h fasthttp.RequestHandler) { api.GET(path, guard(h)) }
	post := func(path string, h fasthttp.RequestHandler) { api.POST(path, guard(h)) }
	put := func(path string, h fasthttp.RequestHandler) { api.PUT(path, guard(h)) }
	del := func(path string, h fasthttp.RequestHandler) { api.DELETE(path, guard(h)) }

	get("/home", handlers.Home.GetDashboard)

	get("/tasks", handlers.Task.GetTasks)
	post("/tasks", handlers.Task.CreateTask)
	del("/tasks", handlers.Task.PurgeCompleted)
	get("/tasks/counts", handlers.Task.GetCounts)
	get("/tasks/{id}", handlers.Task.GetTask)
	put("/tasks/{id}", handlers.Task.UpdateTask)
	del("/tasks/{id}", handlers.Task.DeleteTask)
	post("/tasks/{id}/complete", handlers.Task.CompleteTask)
	post("/tasks/{id}/uncomplete", handlers.Task.UncompleteTask)

	get("/sleep/entries", handlers.Sleep.GetEntries)
	post("/sleep/entries", handlers.Sleep.SaveEntry)
	del("/sleep/entries/{id}", handlers.Sleep.DeleteEntry)
	get("/sleep/days/{date}", handlers.Sleep.GetDay)
	get("/sleep/stats", handlers.Sleep.GetStats)

	get("/quotes", handlers.Quote.GetQuotes)
	post("/quotes", handlers.Quote.CreateQuote)
	get("/quotes/random", handlers.Quote.GetRandom)
	get("/quotes/daily", handlers.Quote.GetDaily)
	post("/quotes/reset", handlers.Quote.ResetQuotes)
	get("/quotes/{id}", handlers.Quote.GetQuote)
	put("/quotes/{id}", handlers.Quote.UpdateQuote)
	put("/quotes/{id}/favorite", handlers.Quote.SetFavorite)
	del("/quotes/{id}", handlers.Quote.DeleteQuote)

	get("/notes", handlers.Note.GetNotes)
	post("/notes", handlers.Note.CreateNote)
	del("/notes", handlers.Note.PurgeArchived)
	get("/notes/count", handlers.Note.GetCount)
	get("/notes/{id}", handlers.Note.GetNote)
	put("/notes/{id}", handlers.Note.UpdateNote)
	del("/notes/{id}", handlers.Note.DeleteNote)
	post("/notes/{id}/archive", handlers.Note.ArchiveNote)
	post("/notes/{id}/unarchive", handlers.Note.UnarchiveNote)

	return r
}
