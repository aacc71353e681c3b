package table

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ReadXLSXFile reads the first sheet of an XLSX workbook into a Table,
// treating the first row as the header.
func ReadXLSXFile(path string) (*Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "table: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("table: xlsx %s has no sheets", path)
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("table: xlsx %s sheet %q is empty", path, sheet.Name)
	}

	header := rowToStrings(sheet.Rows[0])
	rows := make([][]string, 0, len(sheet.Rows)-1)
	for _, row := range sheet.Rows[1:] {
		rows = append(rows, rowToStrings(row))
	}

	return New(header, rows), nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		cells[i] = cell.String()
	}
	return cells
}
