package home

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/usecase"
)

// TaskReader is the slice of the task use case the dashboard reads.
type TaskReader interface {
	TodaysTasks(ctx context.Context) ([]domain.Task, error)
	OverdueTasks(ctx context.Context) ([]domain.Task, error)
	CompletedTodayCount(ctx context.Context) (int, error)
}

type QuoteReader interface {
	Daily(ctx context.Context) (*domain.Quote, error)
}

// Dashboard is the home screen state.
type Dashboard struct {
	Greeting       string        `json:"greeting"`
	Date           domain.Date   `json:"date"`
	TodaysTasks    []domain.Task `json:"todays_tasks"`
	OverdueTasks   []domain.Task `json:"overdue_tasks"`
	CompletedToday int           `json:"completed_today"`
	TotalToday     int           `json:"total_today"`
	DailyQuote     *domain.Quote `json:"daily_quote"`
}

type UseCase struct {
	tasks  TaskReader
	quotes QuoteReader
	logger *zap.Logger
	clock  usecase.Clock
}

func New(tasks TaskReader, quotes QuoteReader, logger *zap.Logger, clock usecase.Clock) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		quotes: quotes,
		logger: logger,
		clock:  clock.OrDefault(),
	}
}

// Greeting picks the salutation for the local hour.
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good morning, Spider!"
	case hour < 18:
		return "Good afternoon, Spider!"
	default:
		return "Good evening, Spider!"
	}
}

// Load reads the dashboard sections concurrently. A failing quote lookup
// leaves the quote empty instead of failing the whole screen.
func (uc *UseCase) Load(ctx context.Context) (*Dashboard, error) {
	now := uc.clock.Now()
	dash := &Dashboard{
		Greeting: Greeting(now.Hour()),
		Date:     domain.DateOf(now),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tasks, err := uc.tasks.TodaysTasks(gctx)
		dash.TodaysTasks = tasks
		return err
	})
	g.Go(func() error {
		tasks, err := uc.tasks.OverdueTasks(gctx)
		dash.OverdueTasks = tasks
		return err
	})
	g.Go(func() error {
		count, err := uc.tasks.CompletedTodayCount(gctx)
		dash.CompletedToday = count
		return err
	})
	g.Go(func() error {
		quote, err := uc.quotes.Daily(gctx)
		if err != nil {
			uc.logger.Warn("daily quote unavailable", zap.Error(err))
			return nil
		}
		dash.DailyQuote = quote
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if dash.TodaysTasks == nil {
		dash.TodaysTasks = []domain.Task{}
	}
	if dash.OverdueTasks == nil {
		dash.OverdueTasks = []domain.Task{}
	}
	dash.TotalToday = len(dash.TodaysTasks)
	return dash, nil
}
