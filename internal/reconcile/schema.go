package reconcile

// Schema is the positional layout of one export: the Nth sheet column is
// renamed to Columns[N]. The role fields name which of those columns feed
// the Record slots.
type Schema struct {
	Source  SourceKind
	Columns []string

	TaxID      string
	DocumentNo string
	Name       string
	NoteKind   string

	Gross   string
	Taxable string
	IGST    string
	CGST    string
	SGST    string
	// Expenses are summed into the Taxable slot when Taxable is empty.
	Expenses []string

	// NoteFilter keeps only rows whose NoteKind contains it, ignoring case.
	NoteFilter string
	// FooterRows are dropped from the end of the sheet (grand total lines).
	FooterRows int
}

const (
	NoteDebit  = "Debit Note"
	NoteCredit = "Credit Note"
)

// Tally purchase register, 15 columns.
var PurchaseRegister = Schema{
	Source: LedgerPurchase,
	Columns: []string{
		"Date", "Particulars", "Voucher_Type", "Voucher_No", "Supplier_Invoice_No",
		"Supplier_Invoice_Date", "GSTIN", "Gross_Total", "Purchase_Accounts",
		"Fixed_Assets", "Direct_Expenses", "Indirect_Expenses", "IGST", "CGST", "SGST",
	},
	TaxID:      "GSTIN",
	DocumentNo: "Supplier_Invoice_No",
	Name:       "Particulars",
	Gross:      "Gross_Total",
	IGST:       "IGST",
	CGST:       "CGST",
	SGST:       "SGST",
	Expenses:   []string{"Purchase_Accounts", "Fixed_Assets", "Direct_Expenses", "Indirect_Expenses"},
}

// Tally debit note register, 16 columns.
var DebitNoteRegister = Schema{
	Source: LedgerDebitNote,
	Columns: []string{
		"Date", "Particulars", "Supplier_Invoice_No", "Credit_Note_Date", "Voucher_Type", "Voucher_No",
		"Voucher_Ref_No", "Voucher_Ref_Date", "GSTIN", "Gross_Total", "Purchase_Accounts",
		"Fixed_Assets", "IGST", "CGST", "SGST", "Round_Off",
	},
	TaxID:      "GSTIN",
	DocumentNo: "Supplier_Invoice_No",
	Name:       "Particulars",
	Gross:      "Gross_Total",
	IGST:       "IGST",
	CGST:       "CGST",
	SGST:       "SGST",
	Expenses:   []string{"Purchase_Accounts", "Fixed_Assets"},
}

// GSTR-2B B2B sheet, 21 columns.
var StatementInvoices = Schema{
	Source: StatementInvoice,
	Columns: []string{
		"GSTIN", "Trade_Name", "Invoice_No", "Invoice_Type", "Invoice_Date",
		"Invoice_Value", "Place_of_Supply", "Reverse_Charge", "Taxable_Value", "Integrated_Tax",
		"Central_Tax", "State_UT_Tax", "Cess", "GSTR_IFF_Period", "GSTR_IFF_Filing_Date",
		"ITC_Availability", "Reason", "Applicable_Tax_Rate", "Source", "IRN", "IRN_Date",
	},
	TaxID:      "GSTIN",
	DocumentNo: "Invoice_No",
	Name:       "Trade_Name",
	Gross:      "Invoice_Value",
	Taxable:    "Taxable_Value",
	IGST:       "Integrated_Tax",
	CGST:       "Central_Tax",
	SGST:       "State_UT_Tax",
}

// GSTR-2B B2B-CDNR sheet, 22 columns.
var StatementCreditDebitNotes = Schema{
	Source: StatementNotes,
	Columns: []string{
		"GSTIN_of_Supplier", "Trade_Legal_Name", "Invoice_Number", "Note_Type", "Note_Supply_Type",
		"Note_Date", "Invoice_Value", "Place_of_Supply", "Supply_Attract_Reverse_Charge", "Taxable_Value",
		"Integrated_Tax", "Central_Tax", "State_UT_Tax", "Cess", "GSTR_1_IFF_GSTR_5_Period",
		"GSTR_1_IFF_GSTR_5_Filing_Date", "ITC_Availability", "Reason", "Applicable_Tax_Rate",
		"Source", "IRN", "IRN_Date",
	},
	TaxID:      "GSTIN_of_Supplier",
	DocumentNo: "Invoice_Number",
	Name:       "Trade_Legal_Name",
	NoteKind:   "Note_Type",
	Gross:      "Invoice_Value",
	Taxable:    "Taxable_Value",
	IGST:       "Integrated_Tax",
	CGST:       "Central_Tax",
	SGST:       "State_UT_Tax",
}

// WithNoteFilter returns a copy restricted to one note kind.
func (s Schema) WithNoteFilter(kind string) Schema {
	s.NoteFilter = kind
	return s
}

// WithFooter returns a copy that drops n trailing rows.
func (s Schema) WithFooter(n int) Schema {
	s.FooterRows = n
	return s
}

// numericColumns lists the columns that are coerced to decimals.
func (s Schema) numericColumns() []string {
	cols := make([]string, 0, 5+len(s.Expenses))
	for _, c := range []string{s.Gross, s.Taxable, s.IGST, s.CGST, s.SGST} {
		if c != "" {
			cols = append(cols, c)
		}
	}
	return append(cols, s.Expenses...)
}

func (s Schema) index() map[string]int {
	idx := make(map[string]int, len(s.Columns))
	for i, c := range s.Columns {
		idx[c] = i
	}
	return idx
}
