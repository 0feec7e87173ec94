package importer

import (
	"time"
)

const (
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Run records one startup import.
type Run struct {
	ID           int64
	StartedAt    time.Time
	FinishedAt   *time.Time
	Status       string // RUNNING, COMPLETED, FAILED
	Source       string
	RowsRead     int
	RowsImported int
	Error        string
}
