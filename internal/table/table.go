// Package table holds the ordered tabular batches exchanged with external
// collaborators: uploaded lead lists, fetched library tables, and the
// exported result CSVs.
package table

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Table is an ordered header row plus data rows. Column order and row order
// are preserved end to end so reruns over the same input produce identical
// output bytes.
type Table struct {
	Header []string
	Rows   [][]string

	colIdx map[string]int
}

// New creates a Table from a header and rows.
func New(header []string, rows [][]string) *Table {
	t := &Table{Header: header, Rows: rows}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.colIdx = make(map[string]int, len(t.Header))
	for i, col := range t.Header {
		t.colIdx[strings.TrimSpace(col)] = i
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// ColumnIndex returns the position of a named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.colIdx[strings.TrimSpace(name)]
	return i, ok
}

// Value returns the trimmed cell at (row, column name), or "" when the
// column is unknown or the row is ragged short.
func (t *Table) Value(row int, col string) string {
	idx, ok := t.colIdx[strings.TrimSpace(col)]
	if !ok || row < 0 || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][idx])
}

// Column returns all values of a named column in row order. Unknown columns
// yield a slice of empty strings so callers stay total over ragged input.
func (t *Table) Column(col string) []string {
	out := make([]string, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Value(i, col)
	}
	return out
}

// AddColumn appends a column. The values slice must cover every row. Rows
// ragged short of the header are padded with empty cells first so the
// appended value always lands under its header.
func (t *Table) AddColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return eris.Errorf("table: column %q has %d values for %d rows", name, len(values), len(t.Rows))
	}
	width := len(t.Header)
	t.Header = append(t.Header, name)
	for i := range t.Rows {
		for len(t.Rows[i]) < width {
			t.Rows[i] = append(t.Rows[i], "")
		}
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	t.reindex()
	return nil
}

// Filter returns a new Table containing only the rows for which keep is
// true, preserving order. The header is shared; rows are not copied.
func (t *Table) Filter(keep func(row int) bool) *Table {
	out := &Table{Header: t.Header}
	for i := range t.Rows {
		if keep(i) {
			out.Rows = append(out.Rows, t.Rows[i])
		}
	}
	out.reindex()
	return out
}

// RequireColumns verifies that every named column exists, returning the
// missing names. This is the upload-boundary validation; the enrichment core
// assumes designated columns exist.
func (t *Table) RequireColumns(cols ...string) []string {
	var missing []string
	for _, c := range cols {
		if c == "" {
			continue
		}
		if _, ok := t.ColumnIndex(c); !ok {
			missing = append(missing, c)
		}
	}
	return missing
}
