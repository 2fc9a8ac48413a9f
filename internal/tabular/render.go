package tabular

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Category is one of the two fills a report can ask for.
type Category int

const (
	Mismatch Category = iota + 1
	DebitNote
)

func (c Category) String() string {
	switch c {
	case Mismatch:
		return "mismatch"
	case DebitNote:
		return "debit_note"
	default:
		return "unknown"
	}
}

// Color is the solid fill RGB used for the category.
func (c Category) Color() string {
	switch c {
	case Mismatch:
		return "FF0000"
	case DebitNote:
		return "FFFF00"
	default:
		return ""
	}
}

// WholeRow as a Highlight column fills every column of the row.
const WholeRow = -1

// Highlight marks a data row (0-based, header excluded) or a single cell of it.
type Highlight struct {
	Row      int
	Col      int
	Category Category
}

// Render writes one sheet with a header row, the data rows and the requested
// fills. Highlights are applied in slice order so a later fill wins on a cell
// that appears twice.
func Render(sheet string, columns []string, rows [][]interface{}, highlights []Highlight) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return nil, &RenderError{Err: err}
		}
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, &RenderError{Err: err}
	}

	for i, r := range rows {
		cells := make([]interface{}, len(r))
		for j, v := range r {
			cells[j] = cellValue(v)
		}
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, &RenderError{Err: err}
		}
		if err := f.SetSheetRow(sheet, start, &cells); err != nil {
			return nil, &RenderError{Err: err}
		}
	}

	styles := make(map[Category]int)
	for _, h := range highlights {
		if h.Row < 0 || h.Row >= len(rows) {
			return nil, &RenderError{Err: fmt.Errorf("highlight row %d out of range", h.Row)}
		}
		style, ok := styles[h.Category]
		if !ok {
			id, err := f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{h.Category.Color()}},
			})
			if err != nil {
				return nil, &RenderError{Err: err}
			}
			styles[h.Category] = id
			style = id
		}

		first, last := h.Col+1, h.Col+1
		if h.Col == WholeRow {
			first, last = 1, len(columns)
		}
		from, err := excelize.CoordinatesToCellName(first, h.Row+2)
		if err != nil {
			return nil, &RenderError{Err: err}
		}
		to, err := excelize.CoordinatesToCellName(last, h.Row+2)
		if err != nil {
			return nil, &RenderError{Err: err}
		}
		if err := f.SetCellStyle(sheet, from, to, style); err != nil {
			return nil, &RenderError{Err: err}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, &RenderError{Err: err}
	}
	return buf.Bytes(), nil
}

func cellValue(v interface{}) interface{} {
	switch t := v.(type) {
	case decimal.Decimal:
		return t.InexactFloat64()
	case *decimal.Decimal:
		if t == nil {
			return nil
		}
		return t.InexactFloat64()
	default:
		return v
	}
}
