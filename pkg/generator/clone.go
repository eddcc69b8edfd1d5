package generator

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Cloner fetches a remote repository into a target directory. The seam
// exists so tests and embedders can avoid shelling out to git.
type Cloner interface {
	Clone(ctx context.Context, url, dir string) error
}

// ClonerFunc adapts plain functions to the Cloner interface.
type ClonerFunc func(ctx context.Context, url, dir string) error

// Clone executes the wrapped function.
func (fn ClonerFunc) Clone(ctx context.Context, url, dir string) error {
	return fn(ctx, url, dir)
}

// gitCloner shells out to the git binary. A shallow clone is enough; the
// generator bundle only needs the work tree.
type gitCloner struct{}

// NewGitCloner returns the default git-backed cloner.
func NewGitCloner() Cloner {
	return gitCloner{}
}

func (gitCloner) Clone(ctx context.Context, url, dir string) error {
	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", url, dir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			return fmt.Errorf("generator: git clone %s: %w: %s", url, err, detail)
		}
		return fmt.Errorf("generator: git clone %s: %w", url, err)
	}
	return nil
}
