// Package csvio adapts delimited text files to the pivot engine's row
// source and table writer interfaces. It is deliberately thin: all
// aggregation semantics live in the pivot package, which never touches
// the filesystem itself.
package csvio

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/datatally/pivot/pivot"
)

// Reader streams rows from a CSV file one record at a time, so files
// larger than memory can be aggregated. The first record is taken as the
// header. Fields named in numericFields are parsed as float64; all other
// fields stay text.
type Reader struct {
	file    *os.File
	csv     *csv.Reader
	header  []string
	numeric map[string]bool
	row     *pivot.Row
	err     error
}

// Open creates a streaming reader over the CSV file at path.
func Open(path string, numericFields []string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening csv file")
	}

	cr := csv.NewReader(f)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "reading header of %s", path)
	}

	numeric := make(map[string]bool, len(numericFields))
	for _, field := range numericFields {
		numeric[field] = true
	}

	return &Reader{
		file:    f,
		csv:     cr,
		header:  append([]string(nil), header...),
		numeric: numeric,
	}, nil
}

// Header returns the file's column names in input order.
func (r *Reader) Header() []string {
	return r.header
}

// Next reads the next record and builds the current row. It returns
// false at end of file or on the first malformed record; Err
// distinguishes the two.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}

	record, err := r.csv.Read()
	if err == io.EOF {
		return false
	}
	if err != nil {
		r.err = errors.Wrap(err, "reading csv record")
		return false
	}

	row := pivot.NewRow()
	for i, field := range r.header {
		if i >= len(record) {
			break
		}
		if r.numeric[field] {
			n, perr := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
			if perr != nil {
				r.err = errors.Wrapf(perr, "parsing numeric field %q", field)
				return false
			}
			row.SetNumber(field, n)
		} else {
			row.SetText(field, record[i])
		}
	}

	r.row = row
	return true
}

// Row returns the row built by the last successful Next.
func (r *Reader) Row() *pivot.Row {
	return r.row
}

// Err returns the error that terminated iteration, if any.
func (r *Reader) Err() error {
	return r.err
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// Load materializes every row of a CSV file into memory, for the
// in-memory aggregation path.
func Load(path string, numericFields []string) ([]*pivot.Row, error) {
	r, err := Open(path, numericFields)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var rows []*pivot.Row
	for r.Next() {
		rows = append(rows, r.Row())
	}
	if r.Err() != nil {
		return nil, r.Err()
	}
	return rows, nil
}
