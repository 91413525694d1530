// Package parsererror defines the typed errors returned by the extraction
// pipeline. Row-level problems are never surfaced through these types; they
// are skipped and logged. Only document-level failures reach the caller.
package parsererror

import "fmt"

// ParseError represents an error during parsing of a specific field or section.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnreadableDocumentError indicates that a source document could not be opened
// or decoded at all. This is the only condition under which a statement parse
// fails as a whole; it is reported to the caller rather than swallowed into an
// empty result.
type UnreadableDocumentError struct {
	Source string
	Err    error
}

func (e *UnreadableDocumentError) Error() string {
	return fmt.Sprintf("unreadable document from %s: %v", e.Source, e.Err)
}

func (e *UnreadableDocumentError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an error where the input does not conform
// to the expected format for a specific parser.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// ValidationError represents a validation failure on a produced candidate.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}
