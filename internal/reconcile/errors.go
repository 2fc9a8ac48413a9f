package reconcile

import (
	"fmt"
	"strings"
)

// MissingInputError means a report was requested without all of its files.
type MissingInputError struct {
	Report  ReportKind
	Missing []string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%s report needs %s", e.Report.Title(), strings.Join(e.Missing, ", "))
}

// SchemaShapeError is raised before positional renaming when the sheet does
// not have exactly the columns the export layout defines.
type SchemaShapeError struct {
	Source SourceKind
	Sheet  string
	Want   int
	Got    int
}

func (e *SchemaShapeError) Error() string {
	where := e.Source.String()
	if e.Sheet != "" {
		where += fmt.Sprintf(" (sheet %q)", e.Sheet)
	}
	return fmt.Sprintf("%s: expected %d columns, found %d; check the export layout and skip rows", where, e.Want, e.Got)
}

// CoercionError is only produced under the Strict coercion policy.
type CoercionError struct {
	Source SourceKind
	Row    int
	Column string
	Value  string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s row %d: %s is not a number: %q", e.Source, e.Row, e.Column, e.Value)
}
