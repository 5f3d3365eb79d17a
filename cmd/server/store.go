package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/spideplan/internal/config"
	"github.com/fastygo/spideplan/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/spideplan/internal/infrastructure/postgres"
	sqliteInfra "github.com/fastygo/spideplan/internal/infrastructure/sqlite"
	"github.com/fastygo/spideplan/internal/services/lifecycle"
	"github.com/fastygo/spideplan/repository"
	"github.com/fastygo/spideplan/repository/postgres"
	sqliteRepo "github.com/fastygo/spideplan/repository/sqlite"
)

// store bundles the repositories of the selected backend.
type store struct {
	backend string
	pinger  monitor.Pinger
	tasks   repository.TaskRepository
	sleep   repository.SleepRepository
	quotes  repository.QuoteRepository
	notes   repository.NoteRepository
}

func openStore(ctx context.Context, cfg *config.Config, manager *lifecycle.Manager, logger *zap.Logger) (*store, error) {
	switch cfg.Storage.Backend {
	case config.StorageSQLite:
		db, err := sqliteInfra.Open(ctx, cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		manager.Register("sqlite", func(context.Context) error {
			sqliteInfra.Close(db, logger)
			return nil
		})
		if err := sqliteRepo.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return &store{
			backend: config.StorageSQLite,
			pinger:  sqliteInfra.Pinger{DB: db},
			tasks:   sqliteRepo.NewTaskRepository(db),
			sleep:   sqliteRepo.NewSleepRepository(db),
			quotes:  sqliteRepo.NewQuoteRepository(db),
			notes:   sqliteRepo.NewNoteRepository(db),
		}, nil

	case config.StoragePostgres:
		if err := pgInfra.RunMigrations(cfg, logger); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.AppName, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		manager.Register("postgres", func(context.Context) error {
			pgInfra.Close(pool, logger)
			return nil
		})
		return &store{
			backend: config.StoragePostgres,
			pinger:  pgInfra.Pinger{Pool: pool},
			tasks:   postgres.NewTaskRepository(pool),
			sleep:   postgres.NewSleepRepository(pool),
			quotes:  postgres.NewQuoteRepository(pool),
			notes:   postgres.NewNoteRepository(pool),
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
