package reconcile

import (
	"fmt"
	"strings"

	"GstRecon/internal/config"
	"GstRecon/internal/tabular"
)

// ReportKind names one of the three report variants.
type ReportKind string

const (
	ReportGST       ReportKind = "gst"
	ReportDebitNote ReportKind = "debit-note"
	ReportCombined  ReportKind = "combined"
)

var reportKinds = []ReportKind{ReportGST, ReportDebitNote, ReportCombined}

func ParseReportKind(s string) (ReportKind, error) {
	k := ReportKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range reportKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown report %q (want gst, debit-note or combined)", s)
}

func (k ReportKind) Title() string {
	switch k {
	case ReportGST:
		return "GST Reconciliation"
	case ReportDebitNote:
		return "Debit Note Reconciliation"
	case ReportCombined:
		return "Combined GST Reconciliation"
	default:
		return string(k)
	}
}

func (k ReportKind) FileName() string {
	switch k {
	case ReportGST:
		return config.FileGSTReport
	case ReportDebitNote:
		return config.FileDebitNoteReport
	default:
		return config.FileSummaryReport
	}
}

func (k ReportKind) Sheet() string {
	if k == ReportGST {
		return config.SheetGSTReport
	}
	return config.SheetDefault
}

// Summary is the run digest returned to API callers and written to the audit log.
type Summary struct {
	Report          ReportKind        `json:"report"`
	Rows            int               `json:"rows"`
	Statuses        map[Status]int    `json:"statuses"`
	DebitNoteRows   int               `json:"debit_note_rows"`
	CoercedCells    int               `json:"coerced_cells"`
	DroppedRows     int               `json:"dropped_rows"`
	PlaceholderRows int               `json:"placeholder_rows"`
	Inputs          map[string]string `json:"inputs,omitempty"`
}

// Report is a fully assembled, not yet rendered, reconciliation table.
type Report struct {
	Kind       ReportKind
	Columns    []string
	Rows       []ReconciledRow
	Highlights []tabular.Highlight
	Summary    Summary
}

func (r *Report) FileName() string { return r.Kind.FileName() }

// Cells returns the row values in column order, as handed to the renderer.
func (r *Report) Cells() [][]interface{} {
	out := make([][]interface{}, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.Cells
	}
	return out
}

// Render writes the report as an xlsx workbook.
func (r *Report) Render() ([]byte, error) {
	return tabular.Render(r.Kind.Sheet(), r.Columns, r.Cells(), r.Highlights)
}

func newReport(kind ReportKind, columns []string, rows []ReconciledRow, highlights []tabular.Highlight) *Report {
	s := Summary{Report: kind, Rows: len(rows), Statuses: make(map[Status]int)}
	for _, row := range rows {
		s.Statuses[row.Status]++
		if row.Block == BlockDebitNote {
			s.DebitNoteRows++
		}
	}
	return &Report{Kind: kind, Columns: columns, Rows: rows, Highlights: highlights, Summary: s}
}

// annotate marks Mismatch rows red across the row and debit-note block rows
// yellow, either across the row or, when cols is given, on those columns only.
// The yellow fill is emitted after the red one so it wins where both apply.
func annotate(rows []ReconciledRow, cols []int) []tabular.Highlight {
	var hs []tabular.Highlight
	for i, row := range rows {
		if row.Status == StatusMismatch {
			hs = append(hs, tabular.Highlight{Row: i, Col: tabular.WholeRow, Category: tabular.Mismatch})
		}
		if row.Block != BlockDebitNote {
			continue
		}
		if cols == nil {
			hs = append(hs, tabular.Highlight{Row: i, Col: tabular.WholeRow, Category: tabular.DebitNote})
			continue
		}
		for _, c := range cols {
			hs = append(hs, tabular.Highlight{Row: i, Col: c, Category: tabular.DebitNote})
		}
	}
	return hs
}
