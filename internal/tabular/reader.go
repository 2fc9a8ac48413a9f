package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// ReadOptions selects the sheet and the number of banner rows above the header.
type ReadOptions struct {
	// Sheet is the worksheet name; empty means the first sheet.
	Sheet    string
	SkipRows int
}

// ReadTable parses an uploaded file into a RawTable. Every cell is read as raw
// text so that numeric coercion stays under the normalizer's control.
func ReadTable(filename string, data []byte, opts ReadOptions) (RawTable, error) {
	if len(data) == 0 {
		return RawTable{}, &ReadError{File: filename, Reason: "file is empty"}
	}

	var (
		sheet string
		grid  [][]string
		err   error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xlsm":
		sheet, grid, err = readXLSX(data, opts.Sheet)
	case ".xls":
		sheet, grid, err = readXLS(data, opts.Sheet)
	case ".csv":
		sheet, grid, err = readCSV(data)
	default:
		return RawTable{}, &ReadError{File: filename, Reason: ext, Err: ErrUnsupportedFormat}
	}
	if err != nil {
		return RawTable{}, &ReadError{File: filename, Sheet: opts.Sheet, Err: err}
	}

	t, err := fromGrid(sheet, grid, opts.SkipRows)
	if err != nil {
		if re, ok := err.(*ReadError); ok {
			re.File = filename
		}
		return RawTable{}, err
	}
	return t, nil
}

func readXLSX(data []byte, sheet string) (string, [][]string, error) {
	xl, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", nil, err
	}
	defer xl.Close()

	if sheet == "" {
		sheet = xl.GetSheetName(0)
	} else if idx, err := xl.GetSheetIndex(sheet); err != nil || idx < 0 {
		return sheet, nil, ErrSheetNotFound
	}

	rows, err := xl.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return sheet, nil, err
	}
	return sheet, rows, nil
}

// readXLS handles legacy BIFF workbooks, which older Tally installs still export.
// The BIFF decoder panics on some truncated files, so a panic is reported as
// an unreadable workbook.
func readXLS(data []byte, sheet string) (name string, grid [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			name, grid, err = sheet, nil, fmt.Errorf("corrupt xls workbook: %v", r)
		}
	}()

	book, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return "", nil, err
	}

	var ws *xls.WorkSheet
	for i := 0; i < book.NumSheets(); i++ {
		s := book.GetSheet(i)
		if s == nil {
			continue
		}
		if sheet == "" || s.Name == sheet {
			ws = s
			break
		}
	}
	if ws == nil {
		return sheet, nil, ErrSheetNotFound
	}

	grid = make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for c := range cells {
			cells[c] = row.Col(c)
		}
		grid = append(grid, cells)
	}
	return ws.Name, grid, nil
}

func readCSV(data []byte) (string, [][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return "", nil, err
	}
	return "", rows, nil
}
