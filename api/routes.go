package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"GstRecon/api/constants"
)

// NewRouter returns the base router: health check, 404 and 405 replies and
// the audit middleware. Feature packages add their routes to it.
func NewRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(AuditMiddleware)

	router.HandleFunc("/health", HealthHandler).Methods(http.MethodGet)
	router.NotFoundHandler = AuditMiddleware(http.HandlerFunc(NotFoundHandler))
	router.MethodNotAllowedHandler = AuditMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		RespondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
	}))
	return router
}
