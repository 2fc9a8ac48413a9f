package constants

import "fmt"

// ============================================================================
// UPLOAD ERRORS
// ============================================================================

const (
	ErrMissingUploads  = "%s report needs the following files: %s"
	ErrDuplicateUpload = "The same file was uploaded as %s and %s. Please upload each export once"
	ErrUnreadableFile  = "Could not read %s. Upload the xlsx, xls or csv export as downloaded"
	ErrUnsupportedFile = "%s is not a supported file. Upload an xlsx, xls or csv export"
	ErrSheetMissing    = "%s has no sheet named %q"
)

// ============================================================================
// LAYOUT & DATA ERRORS
// ============================================================================

const (
	ErrSheetShape    = "%s has %d columns where %d were expected. Check that the export was not edited and the layout settings are right"
	ErrInvalidAmount = "%s row %d: %s must be a number, found %q"
)

// ============================================================================
// REPORT ERRORS
// ============================================================================

const (
	ErrRenderFailed   = "The report could not be generated. Please try again"
	ErrStoreFailed    = "The report was generated but could not be stored"
	ErrReportNotFound = "Report not found or expired"
	ErrStoreDisabled  = "Report storage is not enabled on this server"
	ErrInternal       = "Unexpected error while reconciling"
)

// FormatError fills a message template.
func FormatError(baseError string, context ...interface{}) string {
	if len(context) == 0 {
		return baseError
	}
	return fmt.Sprintf(baseError, context...)
}
