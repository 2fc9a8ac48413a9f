// Package reconcile matches a taxpayer's purchase ledger against the
// supplier-reported GSTR-2B statement and produces the three reconciliation
// reports: invoice level, debit notes and the per-supplier summary.
package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SourceKind identifies which export a record came from.
type SourceKind int

const (
	LedgerPurchase SourceKind = iota + 1
	LedgerDebitNote
	StatementInvoice
	StatementNotes
)

func (k SourceKind) String() string {
	switch k {
	case LedgerPurchase:
		return "ledger purchase register"
	case LedgerDebitNote:
		return "ledger debit note register"
	case StatementInvoice:
		return "statement B2B invoices"
	case StatementNotes:
		return "statement B2B credit/debit notes"
	default:
		return fmt.Sprintf("source(%d)", int(k))
	}
}

// Record is one normalized row. Gross and Taxable are role slots: on the
// ledger side they hold Gross_Total and the summed expense heads, on the
// statement side Invoice_Value and Taxable_Value.
type Record struct {
	Source    SourceKind
	SourceRow int

	SupplierTaxID    string
	DocumentNo       string
	CounterpartyName string
	NoteKind         string

	Gross   decimal.Decimal
	Taxable decimal.Decimal
	IGST    decimal.Decimal
	CGST    decimal.Decimal
	SGST    decimal.Decimal

	// Expenses holds the ledger expense heads by column name.
	Expenses map[string]decimal.Decimal
}

// Expense returns the named ledger expense head, zero when absent.
func (r Record) Expense(column string) decimal.Decimal {
	if v, ok := r.Expenses[column]; ok {
		return v
	}
	return decimal.Zero
}

// Provenance records which side of an outer join produced a row.
type Provenance int

const (
	Both Provenance = iota + 1
	LeftOnly
	RightOnly
)

func (p Provenance) String() string {
	switch p {
	case Both:
		return "both"
	case LeftOnly:
		return "left_only"
	case RightOnly:
		return "right_only"
	default:
		return "unknown"
	}
}

// MatchedPair is one outer-join output row. Left is the ledger side and
// Right the statement side; the missing side is nil.
type MatchedPair struct {
	Left       *Record
	Right      *Record
	Provenance Provenance
}

// TaxID is the join's GSTIN, taken from whichever side is present.
func (p MatchedPair) TaxID() string {
	if p.Left != nil {
		return p.Left.SupplierTaxID
	}
	if p.Right != nil {
		return p.Right.SupplierTaxID
	}
	return ""
}

// Status is the reconciliation verdict written into the report.
type Status string

const (
	StatusMatched            Status = "Matched"
	StatusMismatch           Status = "Mismatch"
	StatusMissingInLedger    Status = "Missing in Ledger"
	StatusMissingInStatement Status = "Missing in Statement"
	// StatusDebitNote replaces the verdict on the offset block of the summary.
	StatusDebitNote Status = "Debit Note"
)

// Block tells which part of a report a row belongs to.
type Block int

const (
	BlockMain Block = iota
	BlockDebitNote
)

// ReconciledRow is a terminal report row.
type ReconciledRow struct {
	Provenance Provenance
	Status     Status
	Block      Block
	Cells      []interface{}
}

// AggregatedGroup is the per-GSTIN roll-up used by the summary report.
type AggregatedGroup struct {
	SupplierTaxID string
	// Names is the de-duplicated, comma-joined list of names seen for the GSTIN.
	Names   string
	Records int

	Gross   decimal.Decimal
	Taxable decimal.Decimal
	IGST    decimal.Decimal
	CGST    decimal.Decimal
	SGST    decimal.Decimal
}

// GroupPair is an outer-join row over aggregated groups.
type GroupPair struct {
	Left       *AggregatedGroup
	Right      *AggregatedGroup
	Provenance Provenance
}

func (p GroupPair) TaxID() string {
	if p.Left != nil {
		return p.Left.SupplierTaxID
	}
	if p.Right != nil {
		return p.Right.SupplierTaxID
	}
	return ""
}
