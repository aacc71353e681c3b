package table

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

// CSVOptions configures CSV reading.
type CSVOptions struct {
	// Charset names the source encoding (e.g. "windows-1252") for uploads
	// that are not UTF-8. Empty means UTF-8.
	Charset string
	// LazyQuotes tolerates bare quotes inside fields, common in
	// spreadsheet exports.
	LazyQuotes bool
}

// ReadCSV parses a CSV stream with a header row into a Table.
func ReadCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	if opts.Charset != "" {
		enc, err := htmlindex.Get(opts.Charset)
		if err != nil {
			return nil, eris.Wrapf(err, "table: unsupported charset %q", opts.Charset)
		}
		r = enc.NewDecoder().Reader(r)
	}

	reader := csv.NewReader(r)
	reader.LazyQuotes = opts.LazyQuotes
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "table: read csv")
	}
	if len(records) == 0 {
		return nil, eris.New("table: csv has no header row")
	}

	return New(records[0], records[1:]), nil
}

// ReadCSVFile reads a CSV file with a header row into a Table.
func ReadCSVFile(path string, opts CSVOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "table: open %s", path)
	}
	defer f.Close()

	t, err := ReadCSV(f, opts)
	if err != nil {
		return nil, eris.Wrapf(err, "table: parse %s", path)
	}
	return t, nil
}

// WriteCSV serializes the table as UTF-8 CSV with a header row. A table with
// no data rows still writes its header so consumers always receive a file.
func WriteCSV(t *Table, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Header); err != nil {
		return eris.Wrap(err, "table: write header")
	}
	for i, row := range t.Rows {
		// Pad ragged rows so every record matches the header width.
		if len(row) < len(t.Header) {
			padded := make([]string, len(t.Header))
			copy(padded, row)
			row = padded
		}
		if err := writer.Write(row); err != nil {
			return eris.Wrapf(err, "table: write row %d", i)
		}
	}
	writer.Flush()
	return eris.Wrap(writer.Error(), "table: flush csv")
}

// WriteCSVFile writes the table to a file, creating or truncating it.
func WriteCSVFile(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "table: create %s", path)
	}
	defer f.Close()

	if err := WriteCSV(t, f); err != nil {
		return eris.Wrapf(err, "table: write %s", path)
	}
	return eris.Wrapf(f.Close(), "table: close %s", path)
}
