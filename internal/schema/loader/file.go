package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/goliatone/go-apigen/pkg/schema"
)

func loadFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("schema loader: file path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &schema.ReadError{Reference: path, Cause: err}
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, &schema.ReadError{Reference: abs, Cause: err}
	}
	return data, nil
}
