// Package ingest loads the games and users CSV exports into a repository.
//
// Rows that cannot be turned into valid entities are skipped and logged;
// they never abort a load.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// table is a CSV file read by header name.
type table struct {
	name    string
	reader  *csv.Reader
	columns map[string]int
	line    int
}

func newTable(name string, r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", name, err)
	}
	columns := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		columns[strings.TrimSpace(h)] = i
	}
	return &table{name: name, reader: cr, columns: columns, line: 1}, nil
}

// next returns the next record, or io.EOF when the file is exhausted.
func (t *table) next() (row, error) {
	record, err := t.reader.Read()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			t.line = parseErr.StartLine
		}
		return row{}, err
	}
	t.line, _ = t.reader.FieldPos(0)
	return row{table: t, record: record}, nil
}

// malformed reports whether err only concerns the current record.
func malformed(err error) bool {
	var parseErr *csv.ParseError
	return errors.As(err, &parseErr)
}

type row struct {
	table  *table
	record []string
}

type missingColumnError struct {
	column string
}

func (e *missingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.column)
}

// get returns the named field, or an error when the row is too short or the
// header lacks the column.
func (r row) get(column string) (string, error) {
	i, ok := r.table.columns[column]
	if !ok || i >= len(r.record) {
		return "", &missingColumnError{column: column}
	}
	return r.record[i], nil
}

// splitList splits on sep, trims every part and drops empty ones.
func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
