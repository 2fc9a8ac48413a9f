// Command reconcile runs one reconciliation report over local export files
// and writes the workbook next to them, without starting the HTTP service.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"GstRecon/internal/appmanager"
	"GstRecon/internal/config"
	"GstRecon/internal/reconcile"
)

func main() {
	_ = godotenv.Load()

	report := flag.String("report", "gst", "report to build: gst, debit-note or combined")
	ledger := flag.String("ledger", "", "purchase register export")
	statement := flag.String("statement", "", "GSTR-2B statement export")
	debitRegister := flag.String("debit-register", "", "debit note register export")
	out := flag.String("out", "", "output file (default: the report's standard file name)")
	configPath := flag.String("config", "", "services.yaml to take the recon settings from")
	expectLedger := flag.String("expect-ledger-sha256", "", "refuse to run unless the ledger has this sha256")
	expectStatement := flag.String("expect-statement-sha256", "", "refuse to run unless the statement has this sha256")
	expectRegister := flag.String("expect-debit-register-sha256", "", "refuse to run unless the debit register has this sha256")
	flag.Parse()

	expected := map[string]string{
		reconcile.RoleLedger:        *expectLedger,
		reconcile.RoleStatement:     *expectStatement,
		reconcile.RoleDebitRegister: *expectRegister,
	}
	if err := run(*report, *ledger, *statement, *debitRegister, *out, *configPath, expected); err != nil {
		log.Fatal(err)
	}
}

// run builds one report. expected maps input roles to the sha256 each file
// must have, as printed in the summary of an earlier run.
func run(report, ledger, statement, debitRegister, out, configPath string, expected map[string]string) error {
	kind, err := reconcile.ParseReportKind(report)
	if err != nil {
		return err
	}
	rc, err := loadRecon(configPath)
	if err != nil {
		return err
	}
	opts, err := reconcile.OptionsFromConfig(rc)
	if err != nil {
		return err
	}

	var inputs reconcile.Inputs
	if inputs.Ledger, err = readInput(ledger); err != nil {
		return err
	}
	if inputs.Statement, err = readInput(statement); err != nil {
		return err
	}
	if inputs.DebitRegister, err = readInput(debitRegister); err != nil {
		return err
	}

	if err := reconcile.VerifyInputs(inputs, expected); err != nil {
		return err
	}

	result, err := reconcile.NewAssembler(opts).Run(kind, inputs)
	if err != nil {
		return err
	}
	data, err := result.Render()
	if err != nil {
		return err
	}
	if out == "" {
		out = result.FileName()
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	summary, _ := json.MarshalIndent(result.Summary, "", "  ")
	fmt.Printf("wrote %s\n%s\n", out, summary)
	return nil
}

// loadRecon reads the recon block of services.yaml, or the defaults when no
// file is given. RECON_* variables override either.
func loadRecon(path string) (config.Recon, error) {
	if path == "" {
		rc := config.DefaultRecon()
		rc.ApplyEnv()
		return rc, rc.Validate()
	}
	seq, err := appmanager.LoadServiceSequence(path)
	if err != nil {
		return config.Recon{}, err
	}
	for _, svc := range seq {
		if svc.Name == "recon" {
			rc, err := config.DecodeRecon(svc.Config)
			if err != nil {
				return rc, err
			}
			rc.ApplyEnv()
			return rc, rc.Validate()
		}
	}
	return config.Recon{}, fmt.Errorf("%s has no recon service block", path)
}

func readInput(path string) (*reconcile.Input, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &reconcile.Input{Name: filepath.Base(path), Data: data}, nil
}
