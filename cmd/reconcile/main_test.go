package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GstRecon/internal/checksum"
	"GstRecon/internal/reconcile"
	"GstRecon/internal/tabular"
)

func TestRun_ExpectedFingerprints(t *testing.T) {
	dir := t.TempDir()
	ledger := filepath.Join(dir, "ledger.csv")
	statement := filepath.Join(dir, "gstr2b.csv")
	require.NoError(t, os.WriteFile(ledger, []byte("ledger"), 0644))
	require.NoError(t, os.WriteFile(statement, []byte("statement"), 0644))
	out := filepath.Join(dir, "out.xlsx")

	err := run("gst", ledger, statement, "", out, "", map[string]string{
		reconcile.RoleLedger: checksum.Sum([]byte("an older ledger")),
	})
	var fm *reconcile.FingerprintMismatchError
	require.True(t, errors.As(err, &fm))
	assert.Equal(t, reconcile.RoleLedger, fm.Role)
	assert.NoFileExists(t, out)

	// Matching fingerprints let the run go on to parse the files.
	err = run("gst", ledger, statement, "", out, "", map[string]string{
		reconcile.RoleLedger:    checksum.Sum([]byte("ledger")),
		reconcile.RoleStatement: checksum.Sum([]byte("statement")),
	})
	require.Error(t, err)
	assert.False(t, errors.As(err, &fm))
	var re *tabular.ReadError
	assert.True(t, errors.As(err, &re))
}
