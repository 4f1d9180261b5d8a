package storage

import (
	"daraz-scraper/models"
	"daraz-scraper/utils"
)

// TeeWriter fans each batch out to a primary and a secondary sink. A primary
// failure propagates and aborts the run; a secondary failure is logged and
// the run continues, since the CSV file remains the durable record.
type TeeWriter struct {
	primary   RowWriter
	secondary RowWriter
	logger    *utils.Logger
}

// NewTeeWriter wraps primary with a best-effort secondary mirror.
func NewTeeWriter(primary, secondary RowWriter, logger *utils.Logger) *TeeWriter {
	return &TeeWriter{primary: primary, secondary: secondary, logger: logger}
}

func (t *TeeWriter) Append(rows []*models.OutputRow) error {
	if err := t.primary.Append(rows); err != nil {
		return err
	}
	if err := t.secondary.Append(rows); err != nil {
		t.logger.Warn("[storage] Secondary sink append failed: %v", err)
	}
	return nil
}

func (t *TeeWriter) Close() error {
	if err := t.secondary.Close(); err != nil {
		t.logger.Warn("[storage] Secondary sink close failed: %v", err)
	}
	return t.primary.Close()
}
