package constants

// Common request errors
const (
	ErrMethodNotAllowed = "Method Not Allowed"
	ErrRouteNotFound    = "404 - Route not found"
	ErrInvalidMultipart = "invalid multipart form"
	ErrUploadTooLarge   = "upload exceeds the allowed size"
	ErrUnknownReport    = "unknown report type"
)

// Content Types
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "Content-Type"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)
