package main

import (
	"context"
	"fmt"
	"log"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/database"
	"bookcatalog/internal/importer"
)

// store bundles the repositories for the configured driver.
type store struct {
	books book.Repository
	runs  importer.RunRepository
	close func()
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return openSQLiteStore(ctx, cfg)
	default:
		return openPostgresStore(ctx, cfg)
	}
}

func openPostgresStore(ctx context.Context, cfg *config.Config) (*store, error) {
	pool, err := database.OpenPostgres(ctx, cfg.DBDSN, cfg.DBTimeout)
	if err != nil {
		return nil, err
	}
	log.Printf("database connection OK dsn=%s", database.RedactDSN(cfg.DBDSN))

	return &store{
		books: book.NewPostgresRepo(pool, cfg.DBTimeout),
		runs:  importer.NewPostgresRunRepo(pool),
		close: pool.Close,
	}, nil
}

func openSQLiteStore(ctx context.Context, cfg *config.Config) (*store, error) {
	db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, err
	}

	books := book.NewBunRepo(db, cfg.DBTimeout)
	if err := books.CreateSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create books schema: %w", err)
	}
	runs := importer.NewBunRunRepo(db)
	if err := runs.CreateSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create import_runs schema: %w", err)
	}
	log.Printf("sqlite database OK path=%s", cfg.SQLitePath)

	return &store{
		books: books,
		runs:  runs,
		close: func() { _ = db.Close() },
	}, nil
}
