// Package generator materialises a generator bundle from a local path or a
// remote repository and hands the orchestrator a descriptor whose lifecycle
// it owns.
package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-apigen/pkg/schema"
)

// RepositorySuffix is the only recognised remote repository suffix.
const RepositorySuffix = ".git"

// Option customises the resolver.
type Option func(*Resolver)

// WithCloner injects a repository cloner, primarily for tests.
func WithCloner(cloner Cloner) Option {
	return func(r *Resolver) {
		if cloner != nil {
			r.cloner = cloner
		}
	}
}

// Resolver turns generator references into descriptors. Remote references
// are cloned into a uniquely named scoped temporary directory; local
// references resolve in place with no copying.
type Resolver struct {
	cloner Cloner
}

// NewResolver constructs a Resolver with the git-backed cloner by default.
func NewResolver(options ...Option) *Resolver {
	r := &Resolver{cloner: NewGitCloner()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve materialises the generator identified by reference and validates
// the resulting bundle. The returned descriptor is owned (backed by a temp
// directory) iff the reference was remote; releasing it is the caller's
// responsibility on every exit path.
func (r *Resolver) Resolve(ctx context.Context, reference string) (*Descriptor, error) {
	desc, err := r.Materialize(ctx, reference)
	if err != nil {
		return nil, err
	}
	if err := ValidateBundle(desc); err != nil {
		_ = desc.Release()
		return nil, err
	}
	return desc, nil
}

// Materialize locates or clones the generator without inspecting its layout.
// Callers that need the two phases separately (the orchestrator's state
// machine does) follow up with ValidateBundle and own the release either way.
func (r *Resolver) Materialize(ctx context.Context, reference string) (*Descriptor, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, &InvalidReferenceError{Reference: reference, Reason: "empty reference"}
	}

	src := schema.ParseSource(reference)
	if schema.IsRemote(src) {
		return r.resolveRemote(ctx, reference)
	}
	return r.resolveLocal(src.Location())
}

func (r *Resolver) resolveLocal(path string) (*Descriptor, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &InvalidReferenceError{Reference: path, Reason: err.Error()}
	}
	return newDescriptor(abs, false), nil
}

// resolveRemote rejects references without the repository suffix before any
// network or clone work is attempted.
func (r *Resolver) resolveRemote(ctx context.Context, reference string) (*Descriptor, error) {
	if !strings.HasSuffix(reference, RepositorySuffix) {
		return nil, &InvalidReferenceError{
			Reference: reference,
			Reason:    fmt.Sprintf("remote generator must end with %q", RepositorySuffix),
		}
	}

	dir, err := os.MkdirTemp("", "apigen-generator-*")
	if err != nil {
		return nil, fmt.Errorf("generator: create temp dir: %w", err)
	}

	if err := r.cloner.Clone(ctx, reference, dir); err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}
	return newDescriptor(dir, true), nil
}

// ValidateBundle fails with InvalidGeneratorError unless a template
// subdirectory exists directly under the resolved root.
func ValidateBundle(desc *Descriptor) error {
	info, err := os.Stat(desc.TemplateDir)
	if err != nil {
		return &InvalidGeneratorError{Root: desc.Root, Cause: err}
	}
	if !info.IsDir() {
		return &InvalidGeneratorError{Root: desc.Root}
	}
	return nil
}
