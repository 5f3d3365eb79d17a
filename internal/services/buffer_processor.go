package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/internal/infrastructure/buffer"
	"github.com/fastygo/spideplan/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// ProcessorConfig controls how frequently the buffer is drained.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
	Retention  time.Duration
}

// Repositories the processor replays buffered writes into.
type Repositories struct {
	Tasks repository.TaskRepository
	Sleep repository.SleepRepository
	Notes repository.NoteRepository
}

// BufferProcessor replays buffered planner writes against the primary store.
type BufferProcessor struct {
	store   *buffer.Store
	monitor ConnectionHealth
	repos   Repositories
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     ProcessorConfig
}

func NewBufferProcessor(
	store *buffer.Store,
	monitor ConnectionHealth,
	repos Repositories,
	logger *zap.Logger,
	cfg ProcessorConfig,
) *BufferProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bp := &BufferProcessor{
		store:   store,
		monitor: monitor,
		repos:   repos,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = bp.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := bp.Drain(ctx); err != nil {
			bp.logger.Error("buffer drain failed", zap.Error(err))
		}
	})
	if cfg.Retention > 0 {
		_, _ = bp.cron.AddFunc("@hourly", bp.expire)
	}

	return bp
}

// Start launches the cron scheduler.
func (bp *BufferProcessor) Start() {
	if bp == nil || bp.cron == nil {
		return
	}
	bp.cron.Start()
	bp.logger.Info("buffer processor started", zap.Duration("interval", bp.cfg.Interval))
}

// Stop gracefully stops the scheduler.
func (bp *BufferProcessor) Stop(ctx context.Context) {
	if bp == nil || bp.cron == nil {
		return
	}
	stopCtx := bp.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	bp.logger.Info("buffer processor stopped")
}

// Drain replays buffered items in order until the batch is exhausted. Once a
// write for an entity fails, later writes for that entity wait for the next
// drain so they never overtake it.
func (bp *BufferProcessor) Drain(ctx context.Context) error {
	if bp == nil || bp.store == nil {
		return nil
	}
	if bp.monitor != nil && !bp.monitor.IsOnline() {
		bp.logger.Debug("skipping buffer drain (offline)")
		return nil
	}

	items, err := bp.store.GetBatch(bp.cfg.BatchSize)
	if err != nil {
		return err
	}

	held := make(map[string]struct{})
	for _, item := range items {
		key := item.Entity + "/" + item.EntityID
		if item.EntityID != "" {
			if _, ok := held[key]; ok {
				continue
			}
		}

		err := bp.processItem(ctx, item)
		if err == nil || (item.Operation == buffer.OperationDelete && domain.IsNotFound(err)) {
			if err := bp.store.Remove(item); err != nil {
				bp.logger.Warn("failed to purge processed buffer item", zap.Error(err))
			}
			continue
		}

		bp.logger.Error("failed to process buffer item",
			zap.String("item_id", item.ID),
			zap.String("entity", item.Entity),
			zap.String("entity_id", item.EntityID),
			zap.String("operation", item.Operation),
			zap.Error(err))
		if item.EntityID != "" {
			held[key] = struct{}{}
		}

		item.Retries++
		if item.Retries >= bp.cfg.MaxRetries {
			bp.logger.Warn("dropping buffer item (max retries reached)", zap.String("item_id", item.ID))
			_ = bp.store.Remove(item)
			continue
		}
		if err := bp.store.Requeue(item); err != nil {
			bp.logger.Error("failed to requeue buffer item", zap.Error(err))
		}
	}
	return nil
}

// BufferOperation attempts to run the operation immediately and falls back to
// persisting it. Writes for an entity that already has queued writes go
// straight to the queue.
func (bp *BufferProcessor) BufferOperation(ctx context.Context, item buffer.Item) error {
	if bp == nil || bp.store == nil {
		return fmt.Errorf("buffer processor not configured")
	}

	if bp.monitor == nil || bp.monitor.IsOnline() {
		pending, err := bp.store.HasPending(item.Entity, item.EntityID)
		if err != nil {
			bp.logger.Warn("buffer lookup failed", zap.Error(err))
		}
		if err == nil && !pending {
			err := bp.processItem(ctx, item)
			if err == nil {
				return nil
			}
			bp.logger.Warn("immediate processing failed, buffering", zap.Error(err))
		}
	}
	return bp.store.Enqueue(item)
}

// Size returns the number of buffered items.
func (bp *BufferProcessor) Size() int {
	if bp == nil || bp.store == nil {
		return 0
	}
	size, err := bp.store.Size()
	if err != nil {
		return 0
	}
	return size
}

func (bp *BufferProcessor) expire() {
	removed, err := bp.store.Cleanup(time.Now().Add(-bp.cfg.Retention))
	if err != nil {
		bp.logger.Error("buffer cleanup failed", zap.Error(err))
		return
	}
	if removed > 0 {
		bp.logger.Warn("expired buffered writes", zap.Int("count", removed))
	}
}

func (bp *BufferProcessor) processItem(ctx context.Context, item buffer.Item) error {
	if ctx == nil {
		ctx = context.Background()
	}

	switch item.Entity {
	case buffer.EntityTask:
		if bp.repos.Tasks == nil {
			return fmt.Errorf("no task repository for buffered %s", item.Operation)
		}
		var task domain.Task
		if err := json.Unmarshal(item.Data, &task); err != nil {
			return err
		}
		switch item.Operation {
		case buffer.OperationCreate:
			_, err := bp.repos.Tasks.Create(ctx, &task)
			return err
		case buffer.OperationUpdate:
			return bp.repos.Tasks.Update(ctx, &task)
		case buffer.OperationDelete:
			return bp.repos.Tasks.Delete(ctx, task.ID)
		}

	case buffer.EntitySleep:
		if bp.repos.Sleep == nil {
			return fmt.Errorf("no sleep repository for buffered %s", item.Operation)
		}
		var entry domain.SleepEntry
		if err := json.Unmarshal(item.Data, &entry); err != nil {
			return err
		}
		switch item.Operation {
		case buffer.OperationCreate:
			_, err := bp.repos.Sleep.Save(ctx, &entry)
			return err
		case buffer.OperationUpdate:
			err := bp.repos.Sleep.Update(ctx, &entry)
			if domain.IsNotFound(err) {
				// the night was deleted meanwhile; saving is an upsert by date
				_, err = bp.repos.Sleep.Save(ctx, &entry)
			}
			return err
		case buffer.OperationDelete:
			return bp.repos.Sleep.Delete(ctx, entry.ID)
		}

	case buffer.EntityNote:
		if bp.repos.Notes == nil {
			return fmt.Errorf("no note repository for buffered %s", item.Operation)
		}
		var note domain.Note
		if err := json.Unmarshal(item.Data, &note); err != nil {
			return err
		}
		switch item.Operation {
		case buffer.OperationCreate:
			_, err := bp.repos.Notes.Create(ctx, &note)
			return err
		case buffer.OperationUpdate:
			return bp.repos.Notes.Update(ctx, &note)
		case buffer.OperationDelete:
			return bp.repos.Notes.Delete(ctx, note.ID)
		}

	default:
		return fmt.Errorf("unsupported entity %s", item.Entity)
	}
	return fmt.Errorf("unsupported operation %s for %s", item.Operation, item.Entity)
}
