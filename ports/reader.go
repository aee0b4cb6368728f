package ports

import (
	"dataprof/domain/dataset"
)

// TableReader loads a rectangular dataset from some source. The returned
// table's headers are already normalized.
type TableReader interface {
	// Read loads the full table into memory. It fails when the source is
	// absent, unreadable, or has no data rows.
	Read() (*dataset.RawTable, error)
}
