package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"GstRecon/api/constants"
)

// Error response helper
func RespondWithError(w http.ResponseWriter, status int, errMsg string) {
	log.Println("[ERROR]", errMsg)
	w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   errMsg,
	})
}

// RespondWithPayload sends {"success": true} merged with the payload fields.
func RespondWithPayload(w http.ResponseWriter, status int, payload map[string]interface{}) {
	w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
	w.WriteHeader(status)
	resp := map[string]interface{}{"success": true}
	for k, v := range payload {
		resp[k] = v
	}
	json.NewEncoder(w).Encode(resp)
}

// RespondWithFile streams a workbook as an attachment.
func RespondWithFile(w http.ResponseWriter, fileName string, data []byte) {
	w.Header().Set(constants.ContentTypeText, constants.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		LogError("write %s: %v", fileName, err)
	}
}

// LogInfo logs an informational message (wrapper for consistent logging)
func LogInfo(msg string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[INFO] "+msg, args...)
	} else {
		log.Println("[INFO]", msg)
	}
}

// LogError logs an error message (wrapper for consistent logging)
func LogError(msg string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[ERROR] "+msg, args...)
	} else {
		log.Println("[ERROR]", msg)
	}
}
