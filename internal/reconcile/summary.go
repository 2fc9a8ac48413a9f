package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"
)

var summaryColumns = []string{
	"GSTIN", "Particulars", "IGST", "CGST", "SGST",
	"Trade_Name", "Integrated_Tax", "Central_Tax", "State_UT_Tax",
	"Diff_IGST", "Diff_CGST", "Diff_SGST", "Remarks",
}

// debitNoteColumns is the native layout of the debit register vs credit note
// join, position for position with summaryColumns.
var debitNoteColumns = []string{
	"GSTIN_of_Supplier", "Particulars", "IGST", "CGST", "SGST",
	"Trade_Legal_Name", "Integrated_Tax", "Central_Tax", "State_UT_Tax",
	"Diff_IGST", "Diff_CGST", "Diff_SGST", "Status",
}

// debitNoteRelabel moves debit-note fields into the purchase-side slots.
// Labels not listed keep their name.
var debitNoteRelabel = map[string]string{
	"GSTIN_of_Supplier": "GSTIN",
	"Trade_Legal_Name":  "Trade_Name",
	"Status":            "Remarks",
}

// offsetColumns are negated on the debit-note block: debit notes reduce the
// net purchase value. They are also the cells filled yellow.
var offsetColumns = []string{
	"IGST", "CGST", "SGST",
	"Integrated_Tax", "Central_Tax", "State_UT_Tax",
	"Diff_IGST", "Diff_CGST", "Diff_SGST",
}

const nameColumn = 1

// SummaryReport is the per-GSTIN view: purchases against B2B invoices, with
// the debit register against the statement notes offset underneath.
func SummaryReport(purchases, invoices, register, notes []Record, tolerance decimal.Decimal) *Report {
	rows := summarize(JoinGroups(Aggregate(purchases), Aggregate(invoices)), tolerance)
	sortByName(rows)

	debit := summarize(JoinGroups(Aggregate(register), Aggregate(notes)), tolerance)
	rows = append(rows, offsetDebitNotes(debit)...)
	sortByName(rows)

	return newReport(ReportCombined, summaryColumns, rows, annotate(rows, columnPositions(summaryColumns, offsetColumns)))
}

// summarize computes statement-minus-ledger tax deltas and classifies on them.
// An absent side counts as zero.
func summarize(pairs []GroupPair, tolerance decimal.Decimal) []ReconciledRow {
	rows := make([]ReconciledRow, 0, len(pairs))
	for _, p := range pairs {
		var l, r AggregatedGroup
		if p.Left != nil {
			l = *p.Left
		}
		if p.Right != nil {
			r = *p.Right
		}
		deltas := []decimal.Decimal{
			r.IGST.Sub(l.IGST),
			r.CGST.Sub(l.CGST),
			r.SGST.Sub(l.SGST),
		}
		status := ClassifyDeltas(p.Provenance, deltas, tolerance)
		rows = append(rows, ReconciledRow{
			Provenance: p.Provenance,
			Status:     status,
			Block:      BlockMain,
			Cells: []interface{}{
				p.TaxID(), l.Names, l.IGST, l.CGST, l.SGST,
				r.Names, r.IGST, r.CGST, r.SGST,
				deltas[0], deltas[1], deltas[2], string(status),
			},
		})
	}
	return rows
}

// offsetDebitNotes negates and relabels the debit-note block into the summary
// layout and stamps it "Debit Note", replacing its classified status.
func offsetDebitNotes(rows []ReconciledRow) []ReconciledRow {
	out := make([]ReconciledRow, 0, len(rows))
	for _, row := range rows {
		byLabel := make(map[string]interface{}, len(debitNoteColumns))
		for i, label := range debitNoteColumns {
			byLabel[label] = row.Cells[i]
		}
		for _, label := range offsetColumns {
			if d, ok := byLabel[label].(decimal.Decimal); ok {
				byLabel[label] = d.Neg()
			}
		}
		for from, to := range debitNoteRelabel {
			byLabel[to] = byLabel[from]
			delete(byLabel, from)
		}
		byLabel["Remarks"] = string(StatusDebitNote)

		cells := make([]interface{}, len(summaryColumns))
		for i, label := range summaryColumns {
			cells[i] = byLabel[label]
		}
		out = append(out, ReconciledRow{
			Provenance: row.Provenance,
			Status:     StatusDebitNote,
			Block:      BlockDebitNote,
			Cells:      cells,
		})
	}
	return out
}

// sortByName orders rows by ledger name ascending with unnamed rows last.
// The sort is stable so a debit-note row stays right after the purchase row
// of the same supplier.
func sortByName(rows []ReconciledRow) {
	name := func(i int) string {
		s, _ := rows[i].Cells[nameColumn].(string)
		return s
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := name(i), name(j)
		if a == "" || b == "" {
			return a != "" && b == ""
		}
		return a < b
	})
}

func columnPositions(columns, wanted []string) []int {
	pos := make(map[string]int, len(columns))
	for i, c := range columns {
		pos[c] = i
	}
	out := make([]int, 0, len(wanted))
	for _, w := range wanted {
		out = append(out, pos[w])
	}
	return out
}
