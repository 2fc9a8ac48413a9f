// Package tabular is the spreadsheet boundary of the reconciler: it turns
// uploaded workbooks into RawTables and renders annotated result tables back
// into xlsx files with solid fills.
package tabular

import "strings"

// RawTable is a sheet as found in the source file: the header row exactly as
// labelled (noise included) and every following row as text.
type RawTable struct {
	Sheet string
	// HeaderRow is the 1-based sheet row the header was taken from.
	HeaderRow int
	Header    []string
	Rows      [][]string
}

// Width is the number of columns in use. A blank trailing header label only
// shortens the table when no data row has a value under it.
func (t RawTable) Width() int {
	n := lastFilled(t.Header)
	for _, row := range t.Rows {
		if w := lastFilled(row); w > n {
			n = w
		}
	}
	return n
}

func lastFilled(cells []string) int {
	n := len(cells)
	for n > 0 && strings.TrimSpace(cells[n-1]) == "" {
		n--
	}
	return n
}

// Cell returns the text at (row, col) or "" when the row is shorter.
func (t RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// SheetRow maps a data row index back to its 1-based row in the sheet.
func (t RawTable) SheetRow(row int) int {
	return t.HeaderRow + row + 1
}

// fromGrid drops skip rows, promotes the next one to header and keeps the rest.
func fromGrid(sheet string, grid [][]string, skip int) (RawTable, error) {
	if skip < 0 {
		skip = 0
	}
	if len(grid) <= skip {
		return RawTable{}, &ReadError{Sheet: sheet, Reason: "no header row after skipping rows"}
	}
	return RawTable{
		Sheet:     sheet,
		HeaderRow: skip + 1,
		Header:    grid[skip],
		Rows:      grid[skip+1:],
	}, nil
}
