// Package orchestrator sequences the full generation pipeline: generator
// resolution, schema acquisition, validation, transformation, extension
// loading, and template rendering. It is the sole recovery boundary: every
// stage error propagates here unchanged, cleanup of owned resources is
// guaranteed on every exit path, and no stage is ever retried.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	internalLoader "github.com/goliatone/go-apigen/internal/schema/loader"
	"github.com/goliatone/go-apigen/pkg/generator"
	"github.com/goliatone/go-apigen/pkg/render"
	"github.com/goliatone/go-apigen/pkg/schema"
	"github.com/goliatone/go-apigen/pkg/transform"
	"github.com/goliatone/go-apigen/pkg/validate"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom schema loader.
func WithLoader(loader schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithValidator injects a custom schema validator.
func WithValidator(validator validate.Validator) Option {
	return func(o *Orchestrator) {
		o.validator = validator
	}
}

// WithResolver injects a custom generator resolver.
func WithResolver(resolver *generator.Resolver) Option {
	return func(o *Orchestrator) {
		o.resolver = resolver
	}
}

// WithTransformers registers the ordered schema mutator chain applied before
// rendering. Order is preserved exactly as supplied.
func WithTransformers(transformers ...transform.Transformer) Option {
	return func(o *Orchestrator) {
		o.transformers = append(o.transformers, transformers...)
	}
}

// WithHelpers registers programmatic template helpers by name.
func WithHelpers(helpers map[string]any) Option {
	return func(o *Orchestrator) {
		if o.helpers == nil {
			o.helpers = make(map[string]any, len(helpers))
		}
		for name, fn := range helpers {
			o.helpers[name] = fn
		}
	}
}

// WithEngineOptions forwards options to the render engine built for each run.
func WithEngineOptions(options ...render.Option) Option {
	return func(o *Orchestrator) {
		o.engineOptions = append(o.engineOptions, options...)
	}
}

// WithLogger injects the structured logger threaded through every stage.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator drives one generation run at a time. Missing dependencies are
// initialised with the built-in implementations so callers can start with a
// single constructor call.
type Orchestrator struct {
	loader        schema.Loader
	validator     validate.Validator
	resolver      *generator.Resolver
	transformers  []transform.Transformer
	helpers       map[string]any
	engineOptions []render.Option
	logger        *slog.Logger
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(schema.NewLoaderOptions())
	}
	if o.validator == nil {
		o.validator = validate.New()
	}
	if o.resolver == nil {
		o.resolver = generator.NewResolver()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

// Request describes the inputs required for one generation run.
type Request struct {
	// Schema references the OpenAPI document, a filesystem path or URL.
	// Optional when Document is supplied.
	Schema string

	// Document allows callers to bypass the loader when they already have a
	// parsed mapping. Takes precedence over Schema.
	Document map[string]any

	// Generator references the generator bundle, a filesystem path or a
	// remote repository URL ending in .git.
	Generator string

	// Options carries the immutable per-run configuration.
	Options RunOptions
}

// Run executes the pipeline for one request. It returns either a success
// report or the captured stage error, never both, and never lets a panic
// escape the orchestrator boundary. The state machine is run-local: a fresh
// Run never observes a previous run's state.
func (o *Orchestrator) Run(ctx context.Context, req Request) (report *Report, runErr error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			report = nil
			runErr = fmt.Errorf("orchestrator: panic during run: %v", recovered)
		}
	}()

	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := o.validateRequest(req); err != nil {
		return nil, err
	}

	run := &runState{orchestrator: o, state: StateIdle}
	return run.execute(ctx, req)
}

func (o *Orchestrator) validateRequest(req Request) error {
	if req.Generator == "" {
		return errors.New("orchestrator: generator reference is required")
	}
	if req.Schema == "" && req.Document == nil {
		return errors.New("orchestrator: schema reference or document is required")
	}
	if req.Options.Output == "" {
		return errors.New("orchestrator: output directory is required")
	}
	return nil
}

// runState carries the per-run mutable pieces so concurrent runs on one
// orchestrator never share state.
type runState struct {
	orchestrator *Orchestrator
	state        State
	descriptor   *generator.Descriptor
}

func (r *runState) transition(next State) {
	r.orchestrator.logger.Debug("state transition", "from", r.state.String(), "to", next.String())
	r.state = next
}

func (r *runState) execute(ctx context.Context, req Request) (*Report, error) {
	report, err := r.run(ctx, req)

	// Cleanup always runs, whatever state the run arrived from. Failing to
	// release an owned temporary directory is a correctness bug, so a
	// release failure on an otherwise successful run fails the run.
	r.transition(StateCleanup)
	if r.descriptor != nil {
		if releaseErr := r.descriptor.Release(); releaseErr != nil {
			releaseErr = fmt.Errorf("orchestrator: release generator directory: %w", releaseErr)
			if err == nil {
				report, err = nil, releaseErr
			} else {
				r.orchestrator.logger.Error("cleanup failed after run error", "error", releaseErr)
			}
		}
	}

	if err != nil {
		r.transition(StateFailed)
		return nil, err
	}
	r.transition(StateSucceeded)
	return report, nil
}

func (r *runState) run(ctx context.Context, req Request) (*Report, error) {
	o := r.orchestrator

	r.transition(StateResolvingGenerator)
	desc, err := o.resolver.Materialize(ctx, req.Generator)
	if err != nil {
		return nil, err
	}
	r.descriptor = desc
	o.logger.Debug("generator materialised", "root", desc.Root, "owned", desc.Owned())

	r.transition(StateValidatingGenerator)
	if err := generator.ValidateBundle(desc); err != nil {
		return nil, err
	}

	r.transition(StateLoadingSchema)
	doc, err := r.loadDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("schema loaded", "location", doc.Location())

	if req.Options.SkipValidation {
		o.logger.Debug("schema validation skipped")
	} else {
		r.transition(StateValidatingSchema)
		if err := o.validator.Validate(ctx, doc.Root()); err != nil {
			return nil, err
		}
	}

	r.transition(StateComputingCounters)
	counters := doc.Counters()
	o.logger.Info("schema accepted", "models", counters.ModelCount, "endpoints", counters.EndpointCount)

	r.transition(StateTransforming)
	if err := transform.Apply(ctx, doc, o.transformers...); err != nil {
		return nil, err
	}

	r.transition(StateLoadingExtensions)
	engineOptions := append([]render.Option{
		render.WithLogger(o.logger),
		render.WithHelpers(o.helpers),
	}, o.engineOptions...)
	engine := render.New(engineOptions...)
	if err := engine.LoadExtensions(desc.HelpersDir, desc.PartialsDir); err != nil {
		return nil, err
	}

	r.transition(StatePreparingOutput)
	req.Options.attach(doc)

	r.transition(StateRendering)
	result, err := engine.Render(ctx, render.Request{
		TemplateDir: desc.TemplateDir,
		OutputDir:   req.Options.Output,
		Exclude:     req.Options.Exclude,
		Context:     doc.Root(),
	})
	if err != nil {
		return nil, err
	}
	o.logger.Info("rendering complete",
		"rendered", result.Rendered, "copied", result.Copied, "skipped", result.Skipped)

	return &Report{
		Counters: counters,
		Rendered: result.Rendered,
		Copied:   result.Copied,
		Skipped:  result.Skipped,
		Files:    result.Files,
	}, nil
}

func (r *runState) loadDocument(ctx context.Context, req Request) (*schema.Document, error) {
	if req.Document != nil {
		return schema.FromMap(req.Document)
	}
	return r.orchestrator.loader.Load(ctx, schema.ParseSource(req.Schema))
}
