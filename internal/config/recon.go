package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Layout describes where the table lives inside an uploaded workbook.
type Layout struct {
	Sheet      string `yaml:"sheet"`
	SkipRows   int    `yaml:"skip_rows"`
	FooterRows int    `yaml:"footer_rows"`
}

// PipelineLayouts holds one layout per source kind used by a report.
type PipelineLayouts struct {
	LedgerPurchase   Layout `yaml:"ledger_purchase"`
	LedgerDebitNote  Layout `yaml:"ledger_debit_note"`
	StatementInvoice Layout `yaml:"statement_invoice"`
	StatementNotes   Layout `yaml:"statement_notes"`
}

// Recon is the typed form of the `recon` service block in services.yaml.
type Recon struct {
	Port        int    `yaml:"port"`
	Tolerance   string `yaml:"tolerance"`
	Coercion    string `yaml:"coercion"`
	MaxUploadMB int    `yaml:"max_upload_mb"`

	OutputDir       string `yaml:"output_dir"`
	Retention       string `yaml:"retention"`
	JanitorSchedule string `yaml:"janitor_schedule"`
	TimeZone        string `yaml:"time_zone"`

	GST       PipelineLayouts `yaml:"gst"`
	DebitNote PipelineLayouts `yaml:"debit_note"`
	Combined  PipelineLayouts `yaml:"combined"`
}

// DefaultRecon returns the layouts observed in the Tally and GSTR-2B exports.
func DefaultRecon() Recon {
	ledger := Layout{SkipRows: LedgerSkipRows}
	debitRegister := Layout{SkipRows: LedgerSkipRows, FooterRows: DebitRegisterFooterRows}
	notes := Layout{Sheet: SheetB2BCDNR, SkipRows: StatementCDNRDebitSkipRows}

	return Recon{
		Port:            DefaultPort,
		Tolerance:       DefaultTolerance,
		Coercion:        DefaultCoercion,
		MaxUploadMB:     DefaultMaxUploadMB,
		OutputDir:       DefaultOutputDir,
		Retention:       DefaultRetention,
		JanitorSchedule: DefaultJanitorSchedule,
		TimeZone:        DefaultTimeZone,
		GST: PipelineLayouts{
			LedgerPurchase:   ledger,
			StatementInvoice: Layout{SkipRows: StatementB2BSkipRows},
			StatementNotes:   Layout{Sheet: SheetB2BCDNR, SkipRows: StatementCDNRSkipRows},
		},
		DebitNote: PipelineLayouts{
			LedgerDebitNote: debitRegister,
			StatementNotes:  notes,
		},
		Combined: PipelineLayouts{
			LedgerPurchase:   ledger,
			LedgerDebitNote:  debitRegister,
			StatementInvoice: Layout{SkipRows: StatementB2BSummarySkip},
			StatementNotes:   notes,
		},
	}
}

// DecodeRecon overlays a services.yaml config map onto the defaults.
func DecodeRecon(cfg map[string]interface{}) (Recon, error) {
	rc := DefaultRecon()
	if len(cfg) == 0 {
		return rc, nil
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return rc, fmt.Errorf("encode recon config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &rc); err != nil {
		return rc, fmt.Errorf("decode recon config: %w", err)
	}
	return rc, rc.Validate()
}

// ApplyEnv lets RECON_* variables (usually from .env) override the file values.
func (rc *Recon) ApplyEnv() {
	if v := os.Getenv("RECON_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			rc.Port = p
		}
	}
	if v := os.Getenv("RECON_TOLERANCE"); v != "" {
		rc.Tolerance = v
	}
	if v := os.Getenv("RECON_COERCION"); v != "" {
		rc.Coercion = v
	}
	if v := os.Getenv("RECON_OUTPUT_DIR"); v != "" {
		rc.OutputDir = v
	}
}

func (rc Recon) Validate() error {
	if rc.Coercion != "permissive" && rc.Coercion != "strict" {
		return fmt.Errorf("coercion must be permissive or strict, got %q", rc.Coercion)
	}
	if _, err := rc.RetentionDuration(); err != nil {
		return err
	}
	for name, l := range map[string]PipelineLayouts{"gst": rc.GST, "debit_note": rc.DebitNote, "combined": rc.Combined} {
		for _, lay := range []Layout{l.LedgerPurchase, l.LedgerDebitNote, l.StatementInvoice, l.StatementNotes} {
			if lay.SkipRows < 0 || lay.FooterRows < 0 {
				return fmt.Errorf("%s layout: skip_rows and footer_rows must not be negative", name)
			}
		}
	}
	return nil
}

func (rc Recon) RetentionDuration() (time.Duration, error) {
	d, err := time.ParseDuration(rc.Retention)
	if err != nil {
		return 0, fmt.Errorf("invalid retention %q: %w", rc.Retention, err)
	}
	return d, nil
}
