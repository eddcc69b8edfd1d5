// Package apigen turns an OpenAPI document into a tree of generated source
// files, driven by a swappable generator bundle of templates plus optional
// helper and partial extension points.
//
// The pipeline resolves the generator (local directory or remote repository),
// loads and validates the schema, applies an ordered transformer chain, and
// renders every template file against the transformed document. Callers with
// simple needs use Generate; everything else composes the pkg/ packages
// directly.
package apigen

import (
	"context"

	"github.com/goliatone/go-apigen/pkg/orchestrator"
)

// Request aliases the orchestrator request so common use never needs a
// second import.
type Request = orchestrator.Request

// RunOptions aliases the per-run configuration.
type RunOptions = orchestrator.RunOptions

// Report aliases the terminal success summary.
type Report = orchestrator.Report

// Option aliases the orchestrator configuration option.
type Option = orchestrator.Option

// Generate executes one generation run with the built-in loader, validator,
// resolver, and render engine, honouring any supplied options. It completes
// with either a success report or a classified error; no failure escapes as
// a panic.
func Generate(ctx context.Context, req Request, options ...Option) (*Report, error) {
	return orchestrator.New(options...).Run(ctx, req)
}
