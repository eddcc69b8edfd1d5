package generator

import (
	"os"
	"path/filepath"
	"sync"
)

// Subdirectory names that define a generator bundle.
const (
	TemplateDirName = "template"
	HelpersDirName  = "helpers"
	PartialsDirName = "partials"
)

// Descriptor points at a materialised generator bundle on disk. Only the
// template directory is mandatory; helpers and partials are optional
// extension points scanned lazily by the render engine.
type Descriptor struct {
	// Root is the absolute path of the generator bundle.
	Root string
	// TemplateDir holds the renderable and static files, always <Root>/template.
	TemplateDir string
	// HelpersDir is the optional helper extension point, <Root>/helpers.
	HelpersDir string
	// PartialsDir is the optional partial extension point, <Root>/partials.
	PartialsDir string

	// owned marks descriptors backed by a scoped temporary directory that
	// must be deleted exactly once when the run finishes.
	owned bool

	releaseOnce sync.Once
	releaseErr  error
}

func newDescriptor(root string, owned bool) *Descriptor {
	return &Descriptor{
		Root:        root,
		TemplateDir: filepath.Join(root, TemplateDirName),
		HelpersDir:  filepath.Join(root, HelpersDirName),
		PartialsDir: filepath.Join(root, PartialsDirName),
		owned:       owned,
	}
}

// Owned reports whether Release will delete the backing directory.
func (d *Descriptor) Owned() bool {
	return d != nil && d.owned
}

// Release deletes the backing temporary directory for owned descriptors.
// It is safe to call more than once; only the first call does work, and
// subsequent calls return the first call's result. Local descriptors are
// never deleted.
func (d *Descriptor) Release() error {
	if d == nil || !d.owned {
		return nil
	}
	d.releaseOnce.Do(func() {
		d.releaseErr = os.RemoveAll(d.Root)
	})
	return d.releaseErr
}
