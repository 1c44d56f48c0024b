package csvio

import (
	"encoding/csv"
	"os"

	"github.com/pkg/errors"
)

// Writer persists pivot output as a CSV file. It implements
// pivot.TableWriter; callers must Close to flush buffered records.
type Writer struct {
	file *os.File
	csv  *csv.Writer
}

// Create opens (truncating) the output file at path.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "creating output file")
	}
	return &Writer{file: f, csv: csv.NewWriter(f)}, nil
}

// Write appends one record to the file.
func (w *Writer) Write(record []string) error {
	if err := w.csv.Write(record); err != nil {
		return errors.Wrap(err, "writing csv record")
	}
	return nil
}

// Close flushes buffered records and closes the file. The first error
// encountered wins.
func (w *Writer) Close() error {
	w.csv.Flush()
	flushErr := errors.Wrap(w.csv.Error(), "flushing csv output")
	closeErr := w.file.Close()
	if w.csv.Error() != nil {
		return flushErr
	}
	return errors.Wrap(closeErr, "closing output file")
}
