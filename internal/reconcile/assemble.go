package reconcile

import (
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"GstRecon/internal/checksum"
	"GstRecon/internal/config"
	"GstRecon/internal/tabular"
)

// Input roles, also used as the upload form field names.
const (
	RoleLedger        = "ledger"
	RoleStatement     = "statement"
	RoleDebitRegister = "debit_register"
)

// Options configure an Assembler.
type Options struct {
	Tolerance decimal.Decimal
	Coercion  CoercionPolicy
	Layouts   map[ReportKind]config.PipelineLayouts
}

// OptionsFromConfig turns the recon service config into engine options.
func OptionsFromConfig(rc config.Recon) (Options, error) {
	tol, err := decimal.NewFromString(rc.Tolerance)
	if err != nil {
		return Options{}, fmt.Errorf("invalid tolerance %q: %w", rc.Tolerance, err)
	}
	if tol.IsNegative() {
		return Options{}, fmt.Errorf("tolerance must not be negative, got %s", rc.Tolerance)
	}
	policy, err := ParseCoercionPolicy(rc.Coercion)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Tolerance: tol,
		Coercion:  policy,
		Layouts: map[ReportKind]config.PipelineLayouts{
			ReportGST:       rc.GST,
			ReportDebitNote: rc.DebitNote,
			ReportCombined:  rc.Combined,
		},
	}, nil
}

// DefaultOptions uses the observed export layouts and the 2.00 tolerance.
func DefaultOptions() Options {
	opts, err := OptionsFromConfig(config.DefaultRecon())
	if err != nil {
		panic(err)
	}
	return opts
}

// Input is one uploaded file.
type Input struct {
	Name string
	Data []byte
}

func (in *Input) present() bool { return in != nil && len(in.Data) > 0 }

// Inputs carries the files of one run; which ones are needed depends on the report.
type Inputs struct {
	Ledger        *Input
	Statement     *Input
	DebitRegister *Input
}

func (in Inputs) byRole(role string) *Input {
	switch role {
	case RoleLedger:
		return in.Ledger
	case RoleStatement:
		return in.Statement
	case RoleDebitRegister:
		return in.DebitRegister
	}
	return nil
}

// RequiredInputs lists the roles a report needs.
func RequiredInputs(kind ReportKind) []string {
	switch kind {
	case ReportGST:
		return []string{RoleLedger, RoleStatement}
	case ReportDebitNote:
		return []string{RoleDebitRegister, RoleStatement}
	default:
		return []string{RoleLedger, RoleStatement, RoleDebitRegister}
	}
}

// DuplicateInputError flags the same file uploaded under two roles.
type DuplicateInputError struct {
	First, Second string
}

func (e *DuplicateInputError) Error() string {
	return fmt.Sprintf("the same file was supplied as %s and %s", e.First, e.Second)
}

// FingerprintMismatchError flags an input whose bytes differ from the sha256
// recorded by an earlier run.
type FingerprintMismatchError struct {
	Role     string
	Expected string
	Actual   string
}

func (e *FingerprintMismatchError) Error() string {
	if e.Actual == "" {
		return fmt.Sprintf("%s: expected sha256 %s but no file was supplied", e.Role, e.Expected)
	}
	return fmt.Sprintf("%s: sha256 %s does not match expected %s", e.Role, e.Actual, e.Expected)
}

// VerifyInputs checks each input against the fingerprint expected for its role.
// Roles without an expectation are skipped.
func VerifyInputs(in Inputs, expected map[string]string) error {
	for _, role := range []string{RoleLedger, RoleStatement, RoleDebitRegister} {
		want := strings.TrimSpace(expected[role])
		if want == "" {
			continue
		}
		file := in.byRole(role)
		if !file.present() {
			return &FingerprintMismatchError{Role: role, Expected: want}
		}
		ok, err := checksum.NewMatcher(want).Match(file.Data)
		if err != nil {
			return err
		}
		if !ok {
			return &FingerprintMismatchError{Role: role, Expected: want, Actual: checksum.Sum(file.Data)}
		}
	}
	return nil
}

// Assembler runs report pipelines. It holds no per-run state and is safe for
// concurrent use.
type Assembler struct {
	opts Options
}

func NewAssembler(opts Options) *Assembler {
	if opts.Layouts == nil {
		opts.Layouts = DefaultOptions().Layouts
	}
	return &Assembler{opts: opts}
}

// Run reads, normalizes and reconciles the inputs for one report. It either
// returns a complete report or an error; nothing partial.
func (a *Assembler) Run(kind ReportKind, in Inputs) (*Report, error) {
	fingerprints, err := checkInputs(kind, in)
	if err != nil {
		return nil, err
	}

	layouts := a.opts.Layouts[kind]
	var stats Summary
	var report *Report

	switch kind {
	case ReportGST:
		purchases, err := a.load(in.Ledger, layouts.LedgerPurchase, PurchaseRegister, &stats)
		if err != nil {
			return nil, err
		}
		invoices, err := a.load(in.Statement, layouts.StatementInvoice, StatementInvoices, &stats)
		if err != nil {
			return nil, err
		}
		notes, err := a.load(in.Statement, layouts.StatementNotes, StatementCreditDebitNotes.WithNoteFilter(NoteDebit), &stats)
		if err != nil {
			return nil, err
		}
		report = InvoiceReport(purchases, invoices, notes, a.opts.Tolerance)

	case ReportDebitNote:
		register, err := a.load(in.DebitRegister, layouts.LedgerDebitNote, DebitNoteRegister, &stats)
		if err != nil {
			return nil, err
		}
		notes, err := a.load(in.Statement, layouts.StatementNotes, StatementCreditDebitNotes.WithNoteFilter(NoteCredit), &stats)
		if err != nil {
			return nil, err
		}
		report, stats.PlaceholderRows = DebitNoteReport(register, notes, a.opts.Tolerance)

	case ReportCombined:
		purchases, err := a.load(in.Ledger, layouts.LedgerPurchase, PurchaseRegister, &stats)
		if err != nil {
			return nil, err
		}
		invoices, err := a.load(in.Statement, layouts.StatementInvoice, StatementInvoices, &stats)
		if err != nil {
			return nil, err
		}
		register, err := a.load(in.DebitRegister, layouts.LedgerDebitNote, DebitNoteRegister, &stats)
		if err != nil {
			return nil, err
		}
		notes, err := a.load(in.Statement, layouts.StatementNotes, StatementCreditDebitNotes, &stats)
		if err != nil {
			return nil, err
		}
		report = SummaryReport(purchases, invoices, register, notes, a.opts.Tolerance)

	default:
		return nil, fmt.Errorf("unknown report %q", kind)
	}

	report.Summary.CoercedCells = stats.CoercedCells
	report.Summary.DroppedRows = stats.DroppedRows
	report.Summary.PlaceholderRows = stats.PlaceholderRows
	report.Summary.Inputs = fingerprints

	log.Printf("[INFO] %s: %d rows, %d mismatched, %d missing in ledger, %d missing in statement",
		kind.Title(), report.Summary.Rows,
		report.Summary.Statuses[StatusMismatch],
		report.Summary.Statuses[StatusMissingInLedger],
		report.Summary.Statuses[StatusMissingInStatement])
	return report, nil
}

// checkInputs fails before any parsing when a file is absent or repeated, and
// returns the sha256 of each input by role.
func checkInputs(kind ReportKind, in Inputs) (map[string]string, error) {
	var missing []string
	for _, role := range RequiredInputs(kind) {
		if !in.byRole(role).present() {
			missing = append(missing, role)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingInputError{Report: kind, Missing: missing}
	}

	sums := make(map[string]string)
	owner := make(map[string]string)
	for _, role := range RequiredInputs(kind) {
		sum := checksum.Sum(in.byRole(role).Data)
		if prev, dup := owner[sum]; dup {
			return nil, &DuplicateInputError{First: prev, Second: role}
		}
		owner[sum] = role
		sums[role] = sum
	}
	return sums, nil
}

func (a *Assembler) load(in *Input, layout config.Layout, schema Schema, stats *Summary) ([]Record, error) {
	raw, err := tabular.ReadTable(in.Name, in.Data, tabular.ReadOptions{Sheet: layout.Sheet, SkipRows: layout.SkipRows})
	if err != nil {
		return nil, err
	}
	n, err := Normalize(raw, schema.WithFooter(layout.FooterRows), a.opts.Coercion)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in.Name, err)
	}
	stats.CoercedCells += n.Coerced
	stats.DroppedRows += n.Dropped
	if n.Coerced > 0 {
		log.Printf("[INFO] %s (%s): %d malformed amount cells read as zero", in.Name, schema.Source, n.Coerced)
	}
	return n.Records, nil
}
