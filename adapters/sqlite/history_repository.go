package sqlite

import (
	"context"
	"math"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver

	"dataprof/domain/profile"
	"dataprof/internal/errors"
	"dataprof/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id       TEXT PRIMARY KEY,
	source_file  TEXT NOT NULL,
	row_count    INTEGER NOT NULL,
	column_count INTEGER NOT NULL,
	duration_ms  INTEGER NOT NULL,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS numeric_summaries (
	run_id      TEXT NOT NULL REFERENCES runs(run_id),
	variable    TEXT NOT NULL,
	count       INTEGER NOT NULL,
	mean        REAL,
	std         REAL,
	min         REAL,
	q1          REAL,
	median      REAL,
	q3          REAL,
	max         REAL,
	iqr         REAL,
	lower_fence REAL,
	upper_fence REAL,
	outlier_pct REAL,
	PRIMARY KEY (run_id, variable)
);
`

// historyRepository implements the HistoryRepository port on an embedded
// SQLite database. One file accumulates all runs for a working directory.
type historyRepository struct {
	db *sqlx.DB
}

// Open opens (or creates) the history database at the given path and
// ensures the schema exists.
func Open(path string) (ports.HistoryRepository, error) {
	db, err := sqlx.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, errors.Wrap(errors.DatabaseError(err.Error()), "failed to open history database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.DatabaseError(err.Error()), "failed to initialize history schema")
	}
	return &historyRepository{db: db}, nil
}

// SaveRun stores the manifest and its numeric summaries in one transaction.
func (r *historyRepository) SaveRun(ctx context.Context, manifest profile.Manifest, summaries []profile.NumericSummary) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin history transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, source_file, row_count, column_count, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		manifest.RunID.String(), manifest.SourceFile, manifest.RowCount, manifest.ColumnCount,
		manifest.Duration.Milliseconds(), manifest.StartedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return errors.Wrap(err, "failed to insert run")
	}

	for _, s := range summaries {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO numeric_summaries (
				run_id, variable, count, mean, std, min, q1, median, q3, max,
				iqr, lower_fence, upper_fence, outlier_pct
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			manifest.RunID.String(), s.Variable, s.Count,
			nullable(s.Mean), nullable(s.Std), nullable(s.Min), nullable(s.Q1),
			nullable(s.Median), nullable(s.Q3), nullable(s.Max), nullable(s.IQR),
			nullable(s.LowerFence), nullable(s.UpperFence), nullable(s.OutlierPct),
		)
		if err != nil {
			return errors.Wrapf(err, "failed to insert summary for %s", s.Variable)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit history transaction")
	}
	return nil
}

// RecentRuns lists stored runs, newest first.
func (r *historyRepository) RecentRuns(ctx context.Context, limit int) ([]profile.RunRecord, error) {
	type row struct {
		RunID       string `db:"run_id"`
		SourceFile  string `db:"source_file"`
		RowCount    int    `db:"row_count"`
		ColumnCount int    `db:"column_count"`
		DurationMs  int64  `db:"duration_ms"`
		CreatedAt   string `db:"created_at"`
	}

	var rows []row
	err := r.db.SelectContext(ctx, &rows,
		`SELECT run_id, source_file, row_count, column_count, duration_ms, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list runs")
	}

	records := make([]profile.RunRecord, 0, len(rows))
	for _, rw := range rows {
		createdAt, err := time.Parse(time.RFC3339, rw.CreatedAt)
		if err != nil {
			createdAt = time.Time{}
		}
		records = append(records, profile.RunRecord{
			RunID:       rw.RunID,
			SourceFile:  rw.SourceFile,
			RowCount:    rw.RowCount,
			ColumnCount: rw.ColumnCount,
			DurationMs:  rw.DurationMs,
			CreatedAt:   createdAt,
		})
	}
	return records, nil
}

// Close releases the database handle.
func (r *historyRepository) Close() error {
	return r.db.Close()
}

// nullable maps undefined statistics (NaN) to SQL NULL.
func nullable(x float64) interface{} {
	if math.IsNaN(x) {
		return nil
	}
	return x
}
