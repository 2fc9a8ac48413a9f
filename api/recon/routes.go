package recon

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the reconciliation endpoints on router.
func RegisterRoutes(router *mux.Router, h *Handler) {
	sub := router.PathPrefix("/recon").Subrouter()
	sub.HandleFunc("/reports", h.List).Methods(http.MethodGet)
	sub.HandleFunc("/reports/{run_id}", h.Download).Methods(http.MethodGet)
	sub.HandleFunc("/{report:gst|debit-note|combined}", h.Reconcile).Methods(http.MethodPost)
}
