package schema

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches schema bytes for a Source and decodes them into a Document.
type Loader interface {
	Load(ctx context.Context, src Source) (*Document, error)
}

// LoaderOptions configures the built-in loader implementation.
type LoaderOptions struct {
	// FileSystem enables loading SourceKindFS references.
	FileSystem fs.FS

	// HTTPClient overrides the client used for SourceKindURL references.
	HTTPClient *http.Client

	// AllowHTTPFallback constructs a default client when HTTPClient is nil.
	AllowHTTPFallback bool

	// RequestTimeout bounds a single remote fetch.
	RequestTimeout time.Duration
}

// NewLoaderOptions returns defaults: HTTP enabled with a 30s request timeout.
func NewLoaderOptions() LoaderOptions {
	return LoaderOptions{
		AllowHTTPFallback: true,
		RequestTimeout:    30 * time.Second,
	}
}
