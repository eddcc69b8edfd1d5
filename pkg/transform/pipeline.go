// Package transform applies an ordered sequence of schema mutators before
// rendering. Transformers are trusted, externally supplied logic: the
// pipeline neither validates their output nor wraps their failures.
package transform

import (
	"context"

	"github.com/goliatone/go-apigen/pkg/schema"
)

// Transformer mutates a schema document in place. Order matters and is part
// of the contract of the supplied transformer set, not of this package;
// idempotence is not assumed.
type Transformer interface {
	Transform(ctx context.Context, doc *schema.Document) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, doc *schema.Document) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, doc *schema.Document) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, doc)
}

// Apply runs each transformer in the order supplied. The first failure
// aborts the chain and is returned unmodified so callers see the
// transformer's own error, not a pipeline wrapper.
func Apply(ctx context.Context, doc *schema.Document, transformers ...Transformer) error {
	for _, t := range transformers {
		if t == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.Transform(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}
