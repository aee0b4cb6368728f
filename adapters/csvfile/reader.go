package csvfile

import (
	"encoding/csv"
	"os"

	"dataprof/domain/dataset"
	"dataprof/internal/errors"
	"dataprof/internal/logx"
)

// Reader loads a CSV file with a header row into a raw table.
type Reader struct {
	path string
	log  *logx.Logger
}

// NewReader creates a reader for the given file path.
func NewReader(path string, log *logx.Logger) *Reader {
	return &Reader{path: path, log: log}
}

// Read loads the whole file. Headers are normalized (trimmed, lower-cased,
// spaces to underscores). Short data rows are tolerated; the resolver pads
// them with missing cells. A file without at least a header row and one
// data row is an error.
func (r *Reader) Read() (*dataset.RawTable, error) {
	file, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.InputNotFound(r.path)
		}
		return nil, errors.Wrapf(err, "failed to open %s", r.path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged rows handled downstream

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(errors.InputInvalid(err.Error()), "failed to parse %s", r.path)
	}
	if len(rows) == 0 {
		return nil, errors.InputEmpty("input file has no header row")
	}
	if len(rows) < 2 {
		return nil, errors.InputEmpty("input file has a header but no data rows")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = dataset.NormalizeHeader(h)
	}

	r.log.Info("loaded %s (%d columns, %d rows)", r.path, len(headers), len(rows)-1)

	return &dataset.RawTable{Headers: headers, Rows: rows[1:]}, nil
}
