// Package render adapts a generator bundle onto the pongo2 template engine:
// it registers generator-supplied helpers and partials, compiles and renders
// every template file against the transformed document, reformats rendered
// source where possible, and copies static files verbatim.
package render

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/flosch/pongo2/v6"
)

// TemplateExt marks renderable files; everything else under the template
// directory is static and copied byte-for-byte.
const TemplateExt = ".tpl"

// Option customises the engine configuration.
type Option func(*Engine)

// WithFormatter injects a custom output formatter.
func WithFormatter(formatter Formatter) Option {
	return func(e *Engine) {
		if formatter != nil {
			e.formatter = formatter
		}
	}
}

// WithRegistry injects a pre-populated extension registry.
func WithRegistry(registry *Registry) Option {
	return func(e *Engine) {
		if registry != nil {
			e.registry = registry
		}
	}
}

// WithLogger injects a structured logger; the default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHelpers registers programmatic helpers by name. Each entry goes
// through RegisterHelper, so values with the pongo2 filter signature become
// filters and everything else becomes a template global.
func WithHelpers(helpers map[string]any) Option {
	return func(e *Engine) {
		for name, fn := range helpers {
			e.RegisterHelper(name, fn)
		}
	}
}

// WithExtension overrides the template extension, normalising the leading
// dot.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		e.ext = trimmed
	}
}

// Engine renders a template directory into an output directory. One engine
// serves one run; the registry it carries belongs to the resolved generator.
type Engine struct {
	registry  *Registry
	helpers   map[string]any
	formatter Formatter
	ext       string
	logger    *slog.Logger
}

// New constructs an Engine applying any provided options.
func New(options ...Option) *Engine {
	e := &Engine{
		registry:  NewRegistry(),
		helpers:   make(map[string]any),
		formatter: NewGoFormatter(),
		ext:       TemplateExt,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	registerDefaultFilters()
	return e
}

// Registry exposes the extension registry, mainly for tests and embedders.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Extension returns the active template extension.
func (e *Engine) Extension() string {
	return e.ext
}

// LoadExtensions scans the generator's helper and partial directories into
// the registry. Helpers load first so a partial with the same derived name
// overrides it; both override any previously registered built-in. Missing
// directories are fine, the extension points are optional.
func (e *Engine) LoadExtensions(helpersDir, partialsDir string) error {
	if err := e.registry.LoadDir(helpersDir); err != nil {
		return fmt.Errorf("render: load helpers: %w", err)
	}
	if err := e.registry.LoadDir(partialsDir); err != nil {
		return fmt.Errorf("render: load partials: %w", err)
	}
	e.logger.Debug("extensions loaded", "count", e.registry.Len(), "names", e.registry.Names())
	return nil
}

// RegisterHelper registers a programmatic helper. Functions with the pongo2
// filter signature become filters, replacing a same-named filter silently;
// any other callable is exposed as a template global.
func (e *Engine) RegisterHelper(name string, fn any) {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return
	}
	if filter, ok := asFilter(fn); ok {
		if pongo2.FilterExists(name) {
			_ = pongo2.ReplaceFilter(name, filter)
			return
		}
		_ = pongo2.RegisterFilter(name, filter)
		return
	}
	e.helpers[name] = fn
}

// asFilter matches the pongo2 filter contract whether or not the value was
// converted to the named FilterFunction type; a plain function literal with
// the same signature has a distinct type and would fail a single assertion.
func asFilter(fn any) (pongo2.FilterFunction, bool) {
	switch f := fn.(type) {
	case pongo2.FilterFunction:
		return f, true
	case func(*pongo2.Value, *pongo2.Value) (*pongo2.Value, *pongo2.Error):
		return f, true
	}
	return nil, false
}

// Request describes one render pass over a template directory.
type Request struct {
	// TemplateDir is the generator's template root.
	TemplateDir string
	// OutputDir receives the rendered tree; created recursively when
	// absent, reused without wiping when present.
	OutputDir string
	// Exclude is an optional glob; matching files are skipped entirely.
	Exclude string
	// Context is the transformed document mapping, run options included.
	Context map[string]any
}

// Result summarises what a render pass produced.
type Result struct {
	Rendered int
	Copied   int
	Skipped  int
	Files    []string
}

// Render walks the template directory in sorted order for deterministic
// output, renders every template-extension file, and copies the rest.
func (e *Engine) Render(ctx context.Context, req Request) (*Result, error) {
	if req.TemplateDir == "" {
		return nil, fmt.Errorf("render: template directory is required")
	}
	if req.OutputDir == "" {
		return nil, fmt.Errorf("render: output directory is required")
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("render: prepare output directory: %w", err)
	}

	set, err := e.templateSet(req.TemplateDir)
	if err != nil {
		return nil, err
	}

	files, err := listFiles(req.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("render: list templates: %w", err)
	}

	result := &Result{}
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		skip, err := excluded(req.Exclude, rel)
		if err != nil {
			return nil, fmt.Errorf("render: exclude pattern %q: %w", req.Exclude, err)
		}
		if skip {
			e.logger.Debug("excluded", "file", rel)
			result.Skipped++
			continue
		}

		if err := e.emit(set, req, rel, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (e *Engine) emit(set *pongo2.TemplateSet, req Request, rel string, result *Result) error {
	raw, err := os.ReadFile(filepath.Join(req.TemplateDir, rel))
	if err != nil {
		return fmt.Errorf("render: read template %s: %w", rel, err)
	}

	if !strings.HasSuffix(rel, e.ext) {
		target := filepath.Join(req.OutputDir, rel)
		if err := writeFile(target, raw); err != nil {
			return fmt.Errorf("render: copy %s: %w", rel, err)
		}
		e.logger.Debug("copied", "file", rel)
		result.Copied++
		result.Files = append(result.Files, target)
		return nil
	}

	tmpl, err := set.FromBytes(raw)
	if err != nil {
		return fmt.Errorf("render: compile template %s: %w", rel, err)
	}

	rendered, err := tmpl.Execute(pongo2.Context(req.Context))
	if err != nil {
		return fmt.Errorf("render: execute template %s: %w", rel, err)
	}

	name := strings.TrimSuffix(rel, e.ext)
	output := []byte(rendered)
	if formatted, err := e.formatter.Format(name, output); err != nil {
		// Formatting is best effort; the unformatted render is still the
		// output file.
		e.logger.Debug("format failed, writing unformatted", "file", name, "error", err)
	} else {
		output = formatted
	}

	target := filepath.Join(req.OutputDir, name)
	if err := writeFile(target, output); err != nil {
		return fmt.Errorf("render: write %s: %w", name, err)
	}
	e.logger.Debug("rendered", "file", rel, "output", target)
	result.Rendered++
	result.Files = append(result.Files, target)
	return nil
}

// templateSet wires the extension registry ahead of the template directory
// so generator-supplied partials shadow same-named files on disk.
func (e *Engine) templateSet(templateDir string) (*pongo2.TemplateSet, error) {
	loaders := []pongo2.TemplateLoader{registryLoader{registry: e.registry}}
	local, err := pongo2.NewLocalFileSystemLoader(templateDir)
	if err != nil {
		return nil, fmt.Errorf("render: template loader: %w", err)
	}
	loaders = append(loaders, local)

	set := pongo2.NewSet("apigen", loaders...)
	if len(e.helpers) > 0 {
		set.Globals = make(pongo2.Context, len(e.helpers))
		for name, fn := range e.helpers {
			set.Globals[name] = fn
		}
	}
	return set, nil
}

func listFiles(dir string) ([]string, error) {
	var files []string
	err := fs.WalkDir(os.DirFS(dir), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, filepath.FromSlash(path))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// excluded matches the glob against both the relative path and the bare
// filename so "*.md" skips nested readmes too.
func excluded(pattern, rel string) (bool, error) {
	if pattern == "" {
		return false, nil
	}
	if ok, err := doublestar.Match(pattern, filepath.ToSlash(rel)); err != nil || ok {
		return ok, err
	}
	return doublestar.Match(pattern, filepath.Base(rel))
}

func writeFile(target string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}
