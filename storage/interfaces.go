package storage

import "daraz-scraper/models"

// RowWriter is the append-only sink the orchestrator writes output rows to.
// Rows are appended batch-at-a-time per product; once written, a row is
// never updated.
type RowWriter interface {
	Append(rows []*models.OutputRow) error
	Close() error
}
