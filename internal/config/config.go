package config

const (
	DefaultTimeZone = "Asia/Kolkata"
	DefaultPort     = 8081

	// Reconciliation engine defaults
	DefaultTolerance   = "2.00"
	DefaultCoercion    = "permissive"
	DefaultMaxUploadMB = 32

	// Report store / janitor
	DefaultOutputDir       = "./reports"
	DefaultRetention       = "24h"
	DefaultJanitorSchedule = "*/15 * * * *" // sweep expired reports every 15 minutes

	// Source sheet layouts as exported by Tally and the GST portal
	LedgerSkipRows             = 9
	DebitRegisterFooterRows    = 1
	StatementB2BSkipRows       = 4
	StatementB2BSummarySkip    = 5
	StatementCDNRSkipRows      = 3
	StatementCDNRDebitSkipRows = 5
	SheetB2BCDNR               = "B2B-CDNR"

	// Output workbooks
	FileGSTReport       = "GST_Reconciliation_Report_Combined.xlsx"
	FileDebitNoteReport = "DebitNoteReconciliation_Report.xlsx"
	FileSummaryReport   = "GST_Reconciliation_Summary.xlsx"
	SheetGSTReport      = "GSTR-2B"
	SheetDefault        = "Sheet1"
)
