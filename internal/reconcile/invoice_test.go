package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GstRecon/internal/tabular"
)

func TestInvoiceReport_EndToEndTolerance(t *testing.T) {
	ledger := []Record{purchase("27X", "INV1", "Acme", "1000", "180")}

	for gross, want := range map[string]Status{
		"1000":    StatusMatched,
		"1003":    StatusMismatch,
		"1001.50": StatusMatched,
	} {
		stmt := statement("27X", "INV1", "Acme", gross, "180")
		stmt.Taxable = ledger[0].Taxable
		report := InvoiceReport(ledger, []Record{stmt}, nil, DefaultTolerance)

		require.Len(t, report.Rows, 1, gross)
		assert.Equal(t, want, report.Rows[0].Status, gross)
		assert.Equal(t, string(want), report.Rows[0].Cells[len(invoiceColumns)-1], gross)
	}
}

func TestInvoiceReport_BlocksAndHighlights(t *testing.T) {
	purchases := []Record{
		purchase("27X", "INV1", "Acme", "1000", "180"),
		purchase("27X", "DN1", "Acme", "50", "9"),
	}
	invoices := []Record{
		statement("27X", "INV1", "Acme", "1003", "180"),
		statement("33Z", "INV5", "Zed", "100", "18"),
	}
	debitNotes := []Record{
		note("27X", "DN1", "Debit Note", "50", "9"),
		note("29Y", "DN2", "Debit Note", "20", "3"),
	}

	report := InvoiceReport(purchases, invoices, debitNotes, DefaultTolerance)
	require.Len(t, report.Rows, 5)

	statuses := make([]Status, len(report.Rows))
	for i, r := range report.Rows {
		statuses[i] = r.Status
	}
	assert.Equal(t, []Status{
		StatusMismatch, StatusMissingInStatement, StatusMissingInLedger,
		StatusMatched, StatusMissingInLedger,
	}, statuses)
	assert.Equal(t, BlockMain, report.Rows[2].Block)
	assert.Equal(t, BlockDebitNote, report.Rows[3].Block)

	// right-only: blank ledger side, statement amounts present
	cells := report.Rows[2].Cells
	assert.Equal(t, "33Z", cells[0])
	assert.Equal(t, "", cells[1])
	assert.Equal(t, "INV5", cells[2])
	assertDecimal(t, "100", cells[3])
	assert.Nil(t, cells[4])

	assert.Equal(t, []tabular.Highlight{
		{Row: 0, Col: tabular.WholeRow, Category: tabular.Mismatch},
		{Row: 3, Col: tabular.WholeRow, Category: tabular.DebitNote},
		{Row: 4, Col: tabular.WholeRow, Category: tabular.DebitNote},
	}, report.Highlights)

	s := report.Summary
	assert.Equal(t, ReportGST, s.Report)
	assert.Equal(t, 5, s.Rows)
	assert.Equal(t, 2, s.DebitNoteRows)
	assert.Equal(t, 2, s.Statuses[StatusMissingInLedger])
	assert.Equal(t, 1, s.Statuses[StatusMismatch])
}

func TestInvoiceReport_MismatchInDebitBlockEndsYellow(t *testing.T) {
	purchases := []Record{purchase("27X", "DN1", "Acme", "50", "9")}
	notes := []Record{note("27X", "DN1", "Debit Note", "80", "9")}

	report := InvoiceReport(purchases, nil, notes, DefaultTolerance)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, StatusMismatch, report.Rows[1].Status)

	hs := report.Highlights
	require.Len(t, hs, 2)
	assert.Equal(t, tabular.Mismatch, hs[0].Category)
	assert.Equal(t, tabular.DebitNote, hs[1].Category)
	assert.Equal(t, 1, hs[1].Row)
}

func TestDebitNoteReport_DropsPlaceholders(t *testing.T) {
	placeholder := purchase("27X", "DN0", "Acme", "1", "0")
	placeholder.Source = LedgerDebitNote
	placeholder.Expenses = map[string]decimal.Decimal{"Purchase_Accounts": decimal.NewFromInt(1)}

	genuine := purchase("27X", "CN1", "Acme", "118", "18")
	genuine.Source = LedgerDebitNote
	genuine.Expenses = map[string]decimal.Decimal{"Purchase_Accounts": decimal.NewFromInt(1)}

	credit := []Record{
		note("27X", "CN1", "Credit Note", "118", "18"),
		note("29Y", "CN2", "Credit Note", "59", "9"),
	}

	report, dropped := DebitNoteReport([]Record{placeholder, genuine}, credit, DefaultTolerance)
	assert.Equal(t, 1, dropped)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, StatusMatched, report.Rows[0].Status)
	assert.Equal(t, StatusMissingInLedger, report.Rows[1].Status)

	// absent side is zero-filled in this report
	assertDecimal(t, "0", report.Rows[1].Cells[4])
	assert.Empty(t, report.Highlights)
	assert.Equal(t, "Invoice_Number", report.Columns[2])
	assert.Equal(t, 0, report.Summary.DebitNoteRows)
}

func TestReport_Render(t *testing.T) {
	purchases := []Record{purchase("27X", "INV1", "Acme", "1000", "180")}
	invoices := []Record{statement("27X", "INV1", "Acme", "1500", "180")}

	report := InvoiceReport(purchases, invoices, nil, DefaultTolerance)
	data, err := report.Render()
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "GST_Reconciliation_Report_Combined.xlsx", report.FileName())
}
