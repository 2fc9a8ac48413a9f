package recon

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"GstRecon/api"
	"GstRecon/api/constants"
	"GstRecon/internal/logger"
	"GstRecon/internal/reconcile"
	"GstRecon/internal/resource"
	"GstRecon/internal/tabular"
)

// ReportStore is the subset of resource.ReportStore the handlers use.
type ReportStore interface {
	Put(fileName string, data []byte, summary interface{}) (resource.StoredReport, error)
	Get(runID string) (resource.StoredReport, []byte, error)
	List() []resource.StoredReport
}

type Handler struct {
	assembler *reconcile.Assembler
	store     ReportStore
	maxUpload int64
}

// NewHandler wires the HTTP surface. store may be nil, which disables
// ?store=true and the report download routes.
func NewHandler(assembler *reconcile.Assembler, store ReportStore, maxUploadMB int) *Handler {
	if maxUploadMB <= 0 {
		maxUploadMB = 32
	}
	return &Handler{assembler: assembler, store: store, maxUpload: int64(maxUploadMB) << 20}
}

// Reconcile handles POST /recon/{report}. The workbook is returned as an
// attachment, or kept in the store when store=true is passed.
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	kind, err := reconcile.ParseReportKind(mux.Vars(r)["report"])
	if err != nil {
		api.RespondWithError(w, http.StatusNotFound, constants.ErrUnknownReport)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			api.RespondWithError(w, http.StatusRequestEntityTooLarge, constants.ErrUploadTooLarge)
			return
		}
		api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidMultipart)
		return
	}
	defer r.MultipartForm.RemoveAll()

	var inputs reconcile.Inputs
	for _, slot := range []struct {
		role string
		dst  **reconcile.Input
	}{
		{reconcile.RoleLedger, &inputs.Ledger},
		{reconcile.RoleStatement, &inputs.Statement},
		{reconcile.RoleDebitRegister, &inputs.DebitRegister},
	} {
		in, err := readUpload(r, slot.role)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidMultipart)
			return
		}
		*slot.dst = in
	}

	report, err := h.assembler.Run(kind, inputs)
	if err != nil {
		status, msg := statusFor(err)
		api.LogError("%s: %v", kind.Title(), err)
		api.RespondWithError(w, status, msg)
		return
	}
	data, err := report.Render()
	if err != nil {
		status, msg := statusFor(err)
		api.LogError("%s: %v", kind.Title(), err)
		api.RespondWithError(w, status, msg)
		return
	}
	auditSummary(report.Summary)

	if store, _ := strconv.ParseBool(r.URL.Query().Get("store")); !store {
		api.RespondWithFile(w, report.FileName(), data)
		return
	}
	if h.store == nil {
		api.RespondWithError(w, http.StatusServiceUnavailable, constants.ErrStoreDisabled)
		return
	}
	rep, err := h.store.Put(report.FileName(), data, report.Summary)
	if err != nil {
		api.LogError("store %s: %v", report.FileName(), err)
		api.RespondWithError(w, http.StatusInternalServerError, constants.ErrStoreFailed)
		return
	}
	api.LogInfo("%s stored as run %s", report.FileName(), rep.RunID)
	api.RespondWithPayload(w, http.StatusCreated, map[string]interface{}{
		"run_id":    rep.RunID,
		"file_name": rep.FileName,
		"summary":   report.Summary,
	})
}

// Download handles GET /recon/reports/{run_id}.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		api.RespondWithError(w, http.StatusServiceUnavailable, constants.ErrStoreDisabled)
		return
	}
	rep, data, err := h.store.Get(mux.Vars(r)["run_id"])
	if err != nil {
		if errors.Is(err, resource.ErrReportNotFound) {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrReportNotFound)
			return
		}
		api.LogError("read stored report: %v", err)
		api.RespondWithError(w, http.StatusInternalServerError, constants.ErrInternal)
		return
	}
	api.RespondWithFile(w, rep.FileName, data)
}

// List handles GET /recon/reports.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		api.RespondWithError(w, http.StatusServiceUnavailable, constants.ErrStoreDisabled)
		return
	}
	api.RespondWithPayload(w, http.StatusOK, map[string]interface{}{"reports": h.store.List()})
}

func readUpload(r *http.Request, field string) (*reconcile.Input, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &reconcile.Input{Name: header.Filename, Data: data}, nil
}

// statusFor maps engine errors to an HTTP status and a user-facing message.
func statusFor(err error) (int, string) {
	var (
		missing   *reconcile.MissingInputError
		duplicate *reconcile.DuplicateInputError
		shape     *reconcile.SchemaShapeError
		coercion  *reconcile.CoercionError
		read      *tabular.ReadError
		render    *tabular.RenderError
	)
	switch {
	case errors.As(err, &missing):
		return http.StatusBadRequest, constants.FormatError(constants.ErrMissingUploads, missing.Report.Title(), strings.Join(missing.Missing, ", "))
	case errors.As(err, &duplicate):
		return http.StatusBadRequest, constants.FormatError(constants.ErrDuplicateUpload, duplicate.First, duplicate.Second)
	case errors.As(err, &shape):
		return http.StatusUnprocessableEntity, constants.FormatError(constants.ErrSheetShape, shape.Source, shape.Got, shape.Want)
	case errors.As(err, &coercion):
		return http.StatusUnprocessableEntity, constants.FormatError(constants.ErrInvalidAmount, coercion.Source, coercion.Row, coercion.Column, coercion.Value)
	case errors.As(err, &read):
		switch {
		case errors.Is(err, tabular.ErrUnsupportedFormat):
			return http.StatusBadRequest, constants.FormatError(constants.ErrUnsupportedFile, read.File)
		case errors.Is(err, tabular.ErrSheetNotFound):
			return http.StatusBadRequest, constants.FormatError(constants.ErrSheetMissing, read.File, read.Sheet)
		default:
			return http.StatusBadRequest, constants.FormatError(constants.ErrUnreadableFile, read.File)
		}
	case errors.As(err, &render):
		return http.StatusInternalServerError, constants.ErrRenderFailed
	default:
		return http.StatusInternalServerError, constants.ErrInternal
	}
}

func auditSummary(s reconcile.Summary) {
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	msg := fmt.Sprintf("%s run summary: %s", s.Report.Title(), raw)
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(msg)
	} else {
		api.LogInfo(msg)
	}
}
