package render

import (
	"path/filepath"

	"golang.org/x/tools/imports"
)

// Formatter reformats rendered text as source code. The output filename acts
// as the language hint. Implementations may fail; the engine always falls
// back to the unformatted render, so a formatter error never aborts a run.
type Formatter interface {
	Format(name string, src []byte) ([]byte, error)
}

// FormatterFunc adapts plain functions to the Formatter interface.
type FormatterFunc func(name string, src []byte) ([]byte, error)

// Format executes the wrapped function.
func (fn FormatterFunc) Format(name string, src []byte) ([]byte, error) {
	return fn(name, src)
}

// goFormatter runs goimports-equivalent processing on .go output and passes
// every other language through untouched.
type goFormatter struct{}

// NewGoFormatter returns the default formatter. Formatting rendered Go with
// import fixing means generated code is immediately compilable without the
// user running goimports.
func NewGoFormatter() Formatter {
	return goFormatter{}
}

func (goFormatter) Format(name string, src []byte) ([]byte, error) {
	if filepath.Ext(name) != ".go" {
		return src, nil
	}
	return imports.Process(name, src, nil)
}
