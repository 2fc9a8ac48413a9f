package reconcile

import "github.com/shopspring/decimal"

var invoiceColumns = []string{
	"GSTIN", "Supplier_Invoice_No", "Invoice_No", "Invoice_Value", "Gross_Total",
	"Taxable_Value", "Total_Expense", "IGST", "Integrated_Tax",
	"CGST", "Central_Tax", "SGST", "State_UT_Tax", "Status",
}

var debitNoteReportColumns = []string{
	"GSTIN", "Supplier_Invoice_No", "Invoice_Number", "Invoice_Value", "Gross_Total",
	"Taxable_Value", "Total_Expense", "IGST", "Integrated_Tax",
	"CGST", "Central_Tax", "SGST", "State_UT_Tax", "Status",
}

// placeholderAmount marks the dummy vouchers Tally users post to keep a
// debit note series contiguous.
var placeholderAmount = decimal.NewFromInt(1)

// InvoiceReport reconciles the purchase register against the B2B invoices
// and, below them, against the statement's debit notes.
func InvoiceReport(purchases, invoices, debitNotes []Record, tolerance decimal.Decimal) *Report {
	rows := reconcilePairs(OuterJoin(purchases, invoices), BlockMain, tolerance, false)
	noteRows := reconcilePairs(KeepRightNotes(OuterJoin(purchases, debitNotes), NoteDebit), BlockDebitNote, tolerance, false)
	rows = append(rows, noteRows...)
	return newReport(ReportGST, invoiceColumns, rows, annotate(rows, nil))
}

// DebitNoteReport reconciles the debit note register against the statement's
// credit notes. Placeholder vouchers are removed before matching and their
// count is returned.
func DebitNoteReport(register, creditNotes []Record, tolerance decimal.Decimal) (*Report, int) {
	kept, placeholders := dropPlaceholders(register)
	rows := reconcilePairs(OuterJoin(kept, creditNotes), BlockMain, tolerance, true)
	return newReport(ReportDebitNote, debitNoteReportColumns, rows, annotate(rows, nil)), placeholders
}

func dropPlaceholders(records []Record) ([]Record, int) {
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Gross.Equal(placeholderAmount) && r.Expense("Purchase_Accounts").Equal(placeholderAmount) {
			continue
		}
		kept = append(kept, r)
	}
	return kept, len(records) - len(kept)
}

func reconcilePairs(pairs []MatchedPair, block Block, tolerance decimal.Decimal, zeroMissing bool) []ReconciledRow {
	rows := make([]ReconciledRow, 0, len(pairs))
	for _, p := range pairs {
		status := Classify(p, tolerance)
		rows = append(rows, ReconciledRow{
			Provenance: p.Provenance,
			Status:     status,
			Block:      block,
			Cells:      invoiceCells(p, status, zeroMissing),
		})
	}
	return rows
}

// invoiceCells lays a pair out statement-then-ledger per amount, as the
// accountants read it. The absent side renders blank, or 0 when zeroMissing.
func invoiceCells(p MatchedPair, status Status, zeroMissing bool) []interface{} {
	amount := func(r *Record, pick func(*Record) decimal.Decimal) interface{} {
		if r == nil {
			if zeroMissing {
				return decimal.Zero
			}
			return nil
		}
		return pick(r)
	}
	doc := func(r *Record) string {
		if r == nil {
			return ""
		}
		return r.DocumentNo
	}
	gross := func(r *Record) decimal.Decimal { return r.Gross }
	taxable := func(r *Record) decimal.Decimal { return r.Taxable }
	igst := func(r *Record) decimal.Decimal { return r.IGST }
	cgst := func(r *Record) decimal.Decimal { return r.CGST }
	sgst := func(r *Record) decimal.Decimal { return r.SGST }

	return []interface{}{
		p.TaxID(),
		doc(p.Left),
		doc(p.Right),
		amount(p.Right, gross),
		amount(p.Left, gross),
		amount(p.Right, taxable),
		amount(p.Left, taxable),
		amount(p.Left, igst),
		amount(p.Right, igst),
		amount(p.Left, cgst),
		amount(p.Right, cgst),
		amount(p.Left, sgst),
		amount(p.Right, sgst),
		string(status),
	}
}
