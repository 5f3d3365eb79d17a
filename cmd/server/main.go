package main

import (
	"context"
	"log"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/spideplan/api/handler"
	"github.com/fastygo/spideplan/internal/config"
	"github.com/fastygo/spideplan/internal/infrastructure/buffer"
	"github.com/fastygo/spideplan/internal/infrastructure/monitor"
	redisInfra "github.com/fastygo/spideplan/internal/infrastructure/redis"
	"github.com/fastygo/spideplan/internal/middleware"
	"github.com/fastygo/spideplan/internal/router"
	"github.com/fastygo/spideplan/internal/services"
	"github.com/fastygo/spideplan/internal/services/lifecycle"
	"github.com/fastygo/spideplan/pkg/httpcontext"
	"github.com/fastygo/spideplan/pkg/logger"
	"github.com/fastygo/spideplan/repository"
	redisRepo "github.com/fastygo/spideplan/repository/redis"
	"github.com/fastygo/spideplan/usecase"
	homeUC "github.com/fastygo/spideplan/usecase/home"
	noteUC "github.com/fastygo/spideplan/usecase/note"
	quoteUC "github.com/fastygo/spideplan/usecase/quote"
	sleepUC "github.com/fastygo/spideplan/usecase/sleep"
	taskUC "github.com/fastygo/spideplan/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
		AppName:     cfg.AppName,
		Environment: cfg.Environment,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	location, err := cfg.Location()
	if err != nil {
		zapLogger.Fatal("invalid time zone", zap.Error(err))
	}
	clock := usecase.Clock{Location: location}

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	st, err := openStore(appCtx, cfg, manager, zapLogger)
	if err != nil {
		zapLogger.Fatal("store unavailable", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}

	var (
		redisClient *redislib.Client
		quoteCache  repository.DailyQuoteCache
	)
	if cfg.RedisEnabled() {
		redisClient, err = redisInfra.NewClient(appCtx, cfg.Redis)
		if err != nil {
			// The cache is optional; the planner keeps working without it.
			zapLogger.Warn("redis unavailable, daily quote cache disabled", zap.Error(err))
		} else {
			manager.RegisterCloser("redis", redisClient.Close)
			quoteCache = redisRepo.NewDailyQuoteCache(redisClient)
		}
	}

	var bufferStore *buffer.Store
	if cfg.Buffer.Enabled {
		bufferStore, err = buffer.Open(cfg.Buffer.Path, "planner", cfg.Buffer.MaxSize)
		if err != nil {
			zapLogger.Fatal("failed to open buffer store", zap.Error(err))
		}
		manager.RegisterCloser("buffer", bufferStore.Close)
	}

	mon := monitor.New(st.pinger, st.backend, redisClient, bufferStore, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	var opBuffer usecase.OperationBuffer
	if bufferStore != nil {
		processor := services.NewBufferProcessor(
			bufferStore,
			mon,
			services.Repositories{Tasks: st.tasks, Sleep: st.sleep, Notes: st.notes},
			zapLogger,
			services.ProcessorConfig{
				Interval:   cfg.Buffer.SyncInterval,
				BatchSize:  50,
				MaxRetries: cfg.Buffer.MaxRetry,
				Retention:  time.Duration(cfg.Buffer.RetentionHours) * time.Hour,
			},
		)
		processor.Start()
		manager.Register("buffer_processor", func(ctx context.Context) error {
			processor.Stop(ctx)
			return nil
		})
		opBuffer = services.NewBufferBridge(processor)
	}

	taskUseCase := taskUC.New(st.tasks, opBuffer, zapLogger, clock)
	sleepUseCase := sleepUC.New(st.sleep, opBuffer, zapLogger, clock)
	quoteUseCase := quoteUC.New(st.quotes, quoteCache, zapLogger, clock)
	noteUseCase := noteUC.New(st.notes, opBuffer, zapLogger, clock)
	homeUseCase := homeUC.New(taskUseCase, quoteUseCase, zapLogger, clock)

	if cfg.Quotes.Seed {
		if _, err := quoteUseCase.Seed(appCtx); err != nil {
			zapLogger.Error("quote seeding failed", zap.Error(err))
		}
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout).WithBase(appCtx)

	handlers := router.Handlers{
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
		Home:   apiHandler.NewHomeHandler(homeUseCase, ctxAdapter, zapLogger),
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Sleep:  apiHandler.NewSleepHandler(sleepUseCase, ctxAdapter, zapLogger),
		Quote:  apiHandler.NewQuoteHandler(quoteUseCase, ctxAdapter, zapLogger),
		Note:   apiHandler.NewNoteHandler(noteUseCase, ctxAdapter, zapLogger),
	}

	if !cfg.AuthEnabled() {
		zapLogger.Warn("JWT_SECRET is empty, API is not guarded")
	}
	guard := middleware.JWTAuth(cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger)
	r := router.New(handlers, guard)

	server := &fasthttp.Server{
		Handler:            middleware.AccessLog(zapLogger)(r.Handler),
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		Concurrency:        cfg.HTTP.MaxConn,
		Name:               cfg.AppName,
		CloseOnShutdown:    true,
		MaxRequestBodySize: 1 << 20,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("store", st.backend),
			zap.Bool("redis", quoteCache != nil),
			zap.Bool("buffer", bufferStore != nil))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Error("server stopped", zap.Error(err))
			cancel()
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
