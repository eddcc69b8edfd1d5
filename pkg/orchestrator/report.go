package orchestrator

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-apigen/pkg/schema"
	"github.com/goliatone/go-apigen/pkg/validate"
)

// Report is the terminal success summary of a run. The counters reflect what
// the loaded schema declared, independent of what templates consumed.
type Report struct {
	// Counters carries the model and endpoint counts derived from the
	// post-validation, pre-transformation document.
	Counters schema.Counters

	// Rendered, Copied and Skipped count the template files processed.
	Rendered int
	Copied   int
	Skipped  int

	// Files lists every written output path.
	Files []string
}

// Summary renders the one-line success report.
func (r *Report) Summary() string {
	return fmt.Sprintf("generated %d models, %d endpoints (%d rendered, %d copied, %d skipped)",
		r.Counters.ModelCount, r.Counters.EndpointCount, r.Rendered, r.Copied, r.Skipped)
}

// FormatError renders a captured run error for the configured level: summary
// mode surfaces only the top-level message, verbose mode the full diagnostic
// detail. Never both to the same channel.
func FormatError(err error, level Level) string {
	if err == nil {
		return ""
	}
	if level != LevelVerbose {
		return err.Error()
	}

	var aggregate *validate.AggregateError
	if errors.As(err, &aggregate) {
		return fmt.Sprintf("%s\n%s", aggregate.Error(), aggregate.Detail())
	}
	return fmt.Sprintf("%+v", err)
}
