package logger

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerService_Config(t *testing.T) {
	l := NewLoggerService(map[string]interface{}{
		"folder_path":    "/tmp/recon-logs",
		"max_file_mb":    5,
		"retention_days": float64(7),
	})
	assert.Equal(t, "/tmp/recon-logs", l.folderPath)
	assert.Equal(t, int64(5*1024*1024), l.maxFileBytes)
	assert.Equal(t, 7, l.retentionDays)
	assert.Equal(t, "logger", l.Name())

	t.Setenv("RECON_LOG_DIR", "/var/log/recon")
	assert.Equal(t, "/var/log/recon", NewLoggerService(nil).folderPath)
}

func TestLoggerService_WritesAuditLines(t *testing.T) {
	dir := t.TempDir()
	l := NewLoggerService(map[string]interface{}{"folder_path": dir})
	require.NoError(t, l.Start())

	l.LogAudit("run 42 finished")
	path := l.CurrentFile()
	require.NoError(t, l.Stop())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[AUDIT] run 42 finished")
}

func TestLoggerService_RotatesBySize(t *testing.T) {
	dir := t.TempDir()
	l := NewLoggerService(map[string]interface{}{"folder_path": dir})
	require.NoError(t, l.Start())
	defer l.Stop()

	l.maxFileBytes = 1
	first := l.CurrentFile()
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, l.rotateIfNeeded())
	assert.NotEqual(t, first, l.CurrentFile())
}

func TestZipAndCleanOldLogs(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "recon_old.log")
	fresh := filepath.Join(dir, "recon_fresh.log")
	require.NoError(t, os.WriteFile(old, []byte("old line"), 0644))
	require.NoError(t, os.WriteFile(fresh, []byte("fresh line"), 0644))
	past := time.Now().AddDate(0, 0, -10)
	require.NoError(t, os.Chtimes(old, past, past))

	l := NewLoggerService(map[string]interface{}{"folder_path": dir, "retention_days": 3})
	n, err := l.zipAndCleanOldLogs(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)

	zips, err := filepath.Glob(filepath.Join(dir, "logs_*.zip"))
	require.NoError(t, err)
	require.Len(t, zips, 1)
	zr, err := zip.OpenReader(zips[0])
	require.NoError(t, err)
	defer zr.Close()
	require.Len(t, zr.File, 1)
	assert.True(t, strings.HasSuffix(zr.File[0].Name, "recon_old.log"))
}
