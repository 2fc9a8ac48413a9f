package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"GstRecon/api/constants"
	"GstRecon/internal/logger"
)

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	return r.RemoteAddr
}

func audit(msg string) {
	if logr := logger.GlobalLogger; logr != nil {
		logr.LogAudit(msg)
	} else {
		log.Println(msg)
	}
}

// AuditMiddleware writes one audit line per request with method, path,
// client IP, status and latency. Error bodies are included for 4xx/5xx.
func AuditMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		msg := fmt.Sprintf("[Gateway] %s %s from %s, status %d in %s",
			r.Method, r.URL.Path, extractClientIP(r), rw.statusCode, time.Since(start).Round(time.Millisecond))
		if rw.statusCode >= 400 && rw.errBody != "" {
			msg += ", error: " + rw.errBody
		}
		audit(msg)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code and,
// for JSON error replies, the body. Workbook bodies are never buffered.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	errBody    string
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode >= 400 && len(rw.errBody) < 512 {
		rw.errBody += strings.TrimSpace(string(b))
	}
	return rw.ResponseWriter.Write(b)
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("GST reconciliation service is healthy"))
}

// NotFoundHandler is mounted behind AuditMiddleware, which records the miss.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(constants.ErrRouteNotFound))
}
