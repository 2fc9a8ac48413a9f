package logger

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	defaultFolder     = "./logs"
	rotateCheckPeriod = 10 * time.Second
)

// LoggerService sends the standard logger to a size-rotated file and zips
// files older than the retention window.
type LoggerService struct {
	mu            sync.Mutex
	file          *os.File
	currentLog    string
	stopCh        chan struct{}
	wg            sync.WaitGroup
	maxFileBytes  int64
	retentionDays int
	folderPath    string
	console       bool
}

func NewLoggerService(config map[string]interface{}) *LoggerService {
	folder, _ := config["folder_path"].(string)
	if v := os.Getenv("RECON_LOG_DIR"); v != "" {
		folder = v
	}
	if folder == "" {
		folder = defaultFolder
	}
	console, _ := config["console"].(bool)
	return &LoggerService{
		stopCh:        make(chan struct{}),
		maxFileBytes:  int64(intValue(config["max_file_mb"])) * 1024 * 1024,
		retentionDays: intValue(config["retention_days"]),
		folderPath:    folder,
		console:       console,
	}
}

// intValue accepts the numeric shapes yaml and json decoders produce.
func intValue(v interface{}) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	}
	return 0
}

func (l *LoggerService) Name() string {
	return "logger"
}

func (l *LoggerService) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.folderPath, 0755); err != nil {
		return err
	}
	if err := l.openLocked(l.nextLogFileName()); err != nil {
		return err
	}
	log.Println("[LoggerService] Started, writing to", l.currentLog)

	l.wg.Add(1)
	go l.backgroundWorker()
	return nil
}

func (l *LoggerService) Stop() error {
	close(l.stopCh)
	l.wg.Wait()
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	log.Println("[LoggerService] Stopping")
	log.SetOutput(os.Stderr)
	err := l.file.Close()
	l.file = nil
	return err
}

// CurrentFile is the path log lines are written to.
func (l *LoggerService) CurrentFile() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.currentLog
}

func (l *LoggerService) openLocked(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	l.file = file
	l.currentLog = path
	var out io.Writer = file
	if l.console {
		out = io.MultiWriter(file, os.Stdout)
	}
	log.SetOutput(out)
	return nil
}

func (l *LoggerService) nextLogFileName() string {
	timestamp := time.Now().Format("20060102_150405.000")
	return filepath.Join(l.folderPath, fmt.Sprintf("recon_%s.log", timestamp))
}

func (l *LoggerService) rotateIfNeeded() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil || l.maxFileBytes <= 0 {
		return nil
	}
	info, err := l.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() < l.maxFileBytes {
		return nil
	}
	l.file.Close()
	if err := l.openLocked(l.nextLogFileName()); err != nil {
		return err
	}
	log.Println("[LoggerService] Rotated log file to", l.currentLog)
	return nil
}

func (l *LoggerService) backgroundWorker() {
	defer l.wg.Done()
	ticker := time.NewTicker(rotateCheckPeriod)
	retentionTicker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	defer retentionTicker.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			if err := l.rotateIfNeeded(); err != nil {
				log.Println("[LoggerService] rotate failed:", err)
			}
		case <-retentionTicker.C:
			l.zipAndCleanOldLogs(time.Now())
		}
	}
}

// zipAndCleanOldLogs moves .log files last written before the retention
// cutoff into a dated zip archive. The file currently in use is never touched.
func (l *LoggerService) zipAndCleanOldLogs(now time.Time) (int, error) {
	if l.retentionDays <= 0 {
		return 0, nil
	}
	cutoff := now.AddDate(0, 0, -l.retentionDays)
	files, err := os.ReadDir(l.folderPath)
	if err != nil {
		return 0, err
	}
	current := l.CurrentFile()

	var old []string
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".log" {
			continue
		}
		full := filepath.Join(l.folderPath, f.Name())
		if full == current {
			continue
		}
		info, err := f.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		old = append(old, full)
	}
	if len(old) == 0 {
		return 0, nil
	}

	zipName := filepath.Join(l.folderPath, fmt.Sprintf("logs_%s.zip", now.Format("20060102_150405")))
	zipFile, err := os.Create(zipName)
	if err != nil {
		return 0, err
	}
	defer zipFile.Close()
	zw := zip.NewWriter(zipFile)

	archived := 0
	for _, full := range old {
		if err := addToZip(zw, full); err != nil {
			continue
		}
		os.Remove(full)
		archived++
	}
	return archived, zw.Close()
}

func addToZip(zw *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	w, err := zw.Create(filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

// LogAudit writes an [AUDIT] line; run summaries and request traces go here.
func (l *LoggerService) LogAudit(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	log.Printf("[AUDIT] %s", msg)
}

var GlobalLogger *LoggerService

func SetGlobalLogger(l *LoggerService) {
	GlobalLogger = l
}
