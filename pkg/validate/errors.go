package validate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is the sentinel for structural schema violations, usable with
// errors.Is.
var ErrInvalid = errors.New("schema invalid")

// Violation describes a single structural problem found in a document.
type Violation struct {
	// Message is the human-readable description of the problem.
	Message string
	// Path locates the offending node within the document when known,
	// using $.dotted[0].notation. Empty when the validator could not
	// attribute the problem to a node.
	Path string
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// AggregateError collects every violation reported during one validation
// pass. Validation never stops at the first problem.
type AggregateError struct {
	Violations []Violation
}

// Error summarises the aggregate; Detail carries the full list.
func (e *AggregateError) Error() string {
	switch len(e.Violations) {
	case 0:
		return "schema validation failed"
	case 1:
		return "schema validation failed: " + e.Violations[0].String()
	default:
		return fmt.Sprintf("schema validation failed: %d violations (first: %s)",
			len(e.Violations), e.Violations[0].String())
	}
}

func (e *AggregateError) Is(target error) bool {
	return target == ErrInvalid
}

// Detail renders one violation per line, location first, for verbose
// reporting.
func (e *AggregateError) Detail() string {
	lines := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		lines = append(lines, "- "+v.String())
	}
	return strings.Join(lines, "\n")
}
