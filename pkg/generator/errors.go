package generator

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrInvalidReference indicates a generator reference that cannot be
	// resolved at all, e.g. a remote location without a repository suffix.
	ErrInvalidReference = errors.New("invalid generator reference")

	// ErrInvalidGenerator indicates a resolved generator root that lacks the
	// required template directory.
	ErrInvalidGenerator = errors.New("invalid generator")
)

// InvalidReferenceError reports a reference rejected before any network or
// filesystem work happened.
type InvalidReferenceError struct {
	// Reference is the rejected generator reference.
	Reference string
	// Reason explains why the reference is unusable.
	Reason string
}

func (e *InvalidReferenceError) Error() string {
	msg := fmt.Sprintf("generator: invalid reference %q", e.Reference)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *InvalidReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}

// InvalidGeneratorError reports a resolved root missing the template
// subdirectory that defines a generator bundle.
type InvalidGeneratorError struct {
	// Root is the resolved generator root that was inspected.
	Root string
	// Cause is the underlying filesystem error, if any.
	Cause error
}

func (e *InvalidGeneratorError) Error() string {
	msg := fmt.Sprintf("generator: %s does not contain a template directory", e.Root)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *InvalidGeneratorError) Unwrap() error {
	return e.Cause
}

func (e *InvalidGeneratorError) Is(target error) bool {
	return target == ErrInvalidGenerator
}
