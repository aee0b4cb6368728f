package ports

import (
	"context"

	"dataprof/domain/profile"
)

// HistoryRepository persists run manifests and their numeric summaries so
// past profiling runs can be listed and compared.
type HistoryRepository interface {
	// SaveRun stores one completed run with its numeric summaries.
	SaveRun(ctx context.Context, manifest profile.Manifest, summaries []profile.NumericSummary) error

	// RecentRuns lists the most recent runs, newest first.
	RecentRuns(ctx context.Context, limit int) ([]profile.RunRecord, error)

	// Close releases the underlying store.
	Close() error
}
