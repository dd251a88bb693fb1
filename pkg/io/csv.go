package io

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/eventline/pkg/errors"
	"github.com/matzehuels/eventline/pkg/timeline"
)

// Column names recognized in the CSV header. Matching is case-insensitive
// and ignores surrounding whitespace.
const (
	columnName     = "name"
	columnDate     = "date"
	columnPosition = "position"
)

// ReadCSV decodes timeline rows from r.
//
// The first row must be a header containing at least the name and date
// columns; the position column is optional and unknown columns are
// ignored. Rows shorter than the header are padded with empty cells.
// Cell values are returned verbatim, including blank rows, so the result
// round-trips through [WriteCSV] without loss.
//
// ReadCSV returns a MISSING_REQUIRED_COLUMN error when the header lacks a
// required column (an empty input has no header and fails the same way),
// and an INVALID_INPUT error for malformed CSV. It does not validate cell
// values; pass the records to [timeline.ParseRecords] for that.
func ReadCSV(r io.Reader) ([]timeline.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, missingColumns(columnName, columnDate)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read CSV header")
	}

	idx := headerIndex(header)
	var missing []string
	for _, col := range []string{columnName, columnDate} {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, missingColumns(missing...)
	}

	var records []timeline.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "row %d: malformed CSV", len(records)+1)
		}
		records = append(records, timeline.Record{
			Name:     cell(row, idx, columnName),
			Date:     cell(row, idx, columnDate),
			Position: cell(row, idx, columnPosition),
		})
	}
	return records, nil
}

// ImportCSV reads timeline rows from the CSV file at path.
func ImportCSV(path string) ([]timeline.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "failed to open %s", path)
	}
	defer f.Close()
	return ReadCSV(f)
}

// WriteCSV encodes records as CSV and writes them to w. The output always
// carries the canonical three-column header, regardless of what the
// records were read from.
func WriteCSV(w io.Writer, records []timeline.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{columnName, columnDate, columnPosition}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to write CSV header")
	}
	for i, rec := range records {
		if err := cw.Write([]string{rec.Name, rec.Date, rec.Position}); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "row %d: failed to write CSV", i+1)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to flush CSV")
	}
	return nil
}

// ExportCSV writes records to a CSV file at path.
func ExportCSV(records []timeline.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "failed to create %s", path)
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to close %s", path)
	}
	return nil
}

// headerIndex maps recognized column names to their position in the
// header row. The first occurrence of a duplicated column wins. A UTF-8
// BOM on the first cell is dropped so spreadsheet exports parse cleanly.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		key := strings.ToLower(strings.TrimSpace(h))
		if _, seen := idx[key]; !seen {
			idx[key] = i
		}
	}
	return idx
}

func cell(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func missingColumns(cols ...string) error {
	return errors.New(errors.ErrCodeMissingRequiredColumn,
		"missing required column(s): %s", strings.Join(cols, ", "))
}
