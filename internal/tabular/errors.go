package tabular

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrSheetNotFound     = errors.New("sheet not found")
)

// ReadError reports a workbook that could not be turned into a RawTable.
type ReadError struct {
	File   string
	Sheet  string
	Reason string
	Err    error
}

func (e *ReadError) Error() string {
	msg := "read"
	if e.File != "" {
		msg += " " + e.File
	}
	if e.Sheet != "" {
		msg += fmt.Sprintf(" sheet %q", e.Sheet)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ReadError) Unwrap() error { return e.Err }

// RenderError is fatal: no partial workbook is ever returned.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return "render report: " + e.Err.Error() }

func (e *RenderError) Unwrap() error { return e.Err }
