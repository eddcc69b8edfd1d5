package orchestrator

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-apigen/pkg/schema"
)

// Level controls how much of the run is reported.
type Level string

const (
	// LevelQuiet surfaces errors only.
	LevelQuiet Level = "quiet"
	// LevelStandard is the default operational level.
	LevelStandard Level = "standard"
	// LevelVerbose adds per-file and per-stage diagnostics.
	LevelVerbose Level = "verbose"
)

// ParseLevel maps a string onto a Level, defaulting empty to standard.
func ParseLevel(raw string) (Level, error) {
	switch Level(raw) {
	case "":
		return LevelStandard, nil
	case LevelQuiet, LevelStandard, LevelVerbose:
		return Level(raw), nil
	default:
		return LevelStandard, fmt.Errorf("orchestrator: unknown log level %q", raw)
	}
}

// SlogLevel maps the reporting level onto slog severities.
func (l Level) SlogLevel() slog.Level {
	switch l {
	case LevelQuiet:
		return slog.LevelError
	case LevelVerbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a text logger honouring the reporting level.
func NewLogger(level Level, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level.SlogLevel(),
	}))
}

// RunOptions is the immutable configuration for one invocation. It is
// attached read-only to the document under schema.OptionsKey before rendering
// so templates can observe the run configuration.
type RunOptions struct {
	// Output is the target directory for generated files.
	Output string

	// Exclude is an optional glob; template files matching it produce no
	// output at all.
	Exclude string

	// SkipValidation bypasses the schema validation stage entirely.
	SkipValidation bool

	// LogLevel selects quiet, standard, or verbose reporting.
	LogLevel Level
}

// contextMap is the representation templates see under schema.OptionsKey.
func (o RunOptions) contextMap() map[string]any {
	level := o.LogLevel
	if level == "" {
		level = LevelStandard
	}
	return map[string]any{
		"output":         o.Output,
		"exclude":        o.Exclude,
		"skipValidation": o.SkipValidation,
		"logLevel":       string(level),
	}
}

// attach stores the options on the document under the reserved key.
func (o RunOptions) attach(doc *schema.Document) {
	doc.AttachOptions(o.contextMap())
}
