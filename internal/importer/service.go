package importer

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"bookcatalog/internal/book"
)

//go:embed books.csv
var bundledCSV []byte

// BundledSource names the CSV shipped inside the binary.
const BundledSource = "bundled:books.csv"

const outcomeTimeout = 5 * time.Second

type Config struct {
	// CSVPath overrides the bundled CSV when set.
	CSVPath string
}

type Service struct {
	books book.Repository
	runs  RunRepository
	cfg   Config
}

func NewService(books book.Repository, runs RunRepository, cfg Config) *Service {
	return &Service{
		books: books,
		runs:  runs,
		cfg:   cfg,
	}
}

// Run loads every CSV row into the store, one insert per row. There is no
// transaction: rows saved before a failure stay saved.
func (s *Service) Run(ctx context.Context) (err error) {
	run := &Run{
		Status:    StatusRunning,
		Source:    s.source(),
		StartedAt: time.Now(),
	}
	runID, rErr := s.runs.CreateRun(ctx, run)
	if rErr != nil {
		return rErr
	}
	run.ID = runID

	defer func() {
		now := time.Now()
		run.FinishedAt = &now
		if err != nil {
			run.Error = err.Error()
			run.Status = StatusFailed
		} else {
			run.Status = StatusCompleted
		}
		// The outcome is recorded even when ctx was cancelled mid-import.
		updateCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), outcomeTimeout)
		defer cancel()
		if updateErr := s.runs.UpdateRun(updateCtx, run); updateErr != nil {
			log.Printf("import run=%d: failed to record outcome: %v", run.ID, updateErr)
		}
	}()

	src, err := s.open()
	if err != nil {
		return err
	}
	defer src.Close()

	books, err := Parse(src)
	if err != nil {
		return fmt.Errorf("parse %s: %w", run.Source, err)
	}
	run.RowsRead = len(books)

	for i := range books {
		if err := s.books.Save(ctx, &books[i]); err != nil {
			return fmt.Errorf("import row %d: %w", i+1, err)
		}
		run.RowsImported++
	}

	log.Printf("import run=%d source=%s rows_read=%d rows_imported=%d", run.ID, run.Source, run.RowsRead, run.RowsImported)
	return nil
}

func (s *Service) source() string {
	if s.cfg.CSVPath != "" {
		return s.cfg.CSVPath
	}
	return BundledSource
}

func (s *Service) open() (io.ReadCloser, error) {
	if s.cfg.CSVPath == "" {
		return io.NopCloser(bytes.NewReader(bundledCSV)), nil
	}
	f, err := os.Open(s.cfg.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	return f, nil
}
