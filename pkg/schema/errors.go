package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is(). These allow quick category checks
// without type assertions.
var (
	// ErrFetch indicates a remote schema could not be retrieved.
	ErrFetch = errors.New("schema fetch error")

	// ErrRead indicates a local schema file could not be read.
	ErrRead = errors.New("schema read error")

	// ErrParse indicates the schema payload could not be decoded.
	ErrParse = errors.New("schema parse error")
)

// FetchError reports a failed remote schema retrieval. Any non-success status
// is treated as a single fatal condition; callers wanting retry semantics must
// layer them externally.
type FetchError struct {
	// Reference is the remote location that was requested.
	Reference string
	// Status is the HTTP status code, 0 when the request itself failed.
	Status int
	// Cause is the underlying transport error, if any.
	Cause error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("schema: fetch %s", e.Reference)
	if e.Status != 0 {
		msg += fmt.Sprintf(": unexpected status %d", e.Status)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// ReadError reports a failed local schema read, typically a missing file.
type ReadError struct {
	// Reference is the filesystem path that was requested.
	Reference string
	// Cause is the underlying filesystem error.
	Cause error
}

func (e *ReadError) Error() string {
	msg := fmt.Sprintf("schema: read %s", e.Reference)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}

func (e *ReadError) Is(target error) bool {
	return target == ErrRead
}

// ParseError reports a payload that could not be decoded as JSON or YAML. The
// underlying parser diagnostic is preserved in Cause.
type ParseError struct {
	// Reference is the document origin, empty for in-memory payloads.
	Reference string
	// Format is the encoding that was attempted, "json" or "yaml".
	Format string
	// Cause is the parser diagnostic.
	Cause error
}

func (e *ParseError) Error() string {
	msg := "schema: parse"
	if e.Reference != "" {
		msg += " " + e.Reference
	}
	if e.Format != "" {
		msg += " as " + e.Format
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
