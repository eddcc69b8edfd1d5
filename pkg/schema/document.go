package schema

import (
	"errors"

	"github.com/mohae/deepcopy"
)

// OptionsKey is the reserved top-level key under which run configuration is
// attached to a document so templates can observe it without a separate
// parameter channel.
const OptionsKey = "_options"

// Document wraps the decoded schema mapping and its origin. The mapping is
// mutable during the transformation phase and is owned by exactly one run.
type Document struct {
	source Source
	root   map[string]any
}

// Counters summarises what the loaded schema declares, independent of what
// any template consumes.
type Counters struct {
	ModelCount    int
	EndpointCount int
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, root map[string]any) (*Document, error) {
	if root == nil {
		return nil, errors.New("schema: document mapping is nil")
	}
	return &Document{source: src, root: root}, nil
}

// FromMap wraps a caller-supplied, already parsed document. The loader is
// bypassed entirely for such documents.
func FromMap(root map[string]any) (*Document, error) {
	return NewDocument(nil, root)
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, root map[string]any) *Document {
	doc, err := NewDocument(src, root)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document, nil for in-memory
// documents.
func (d *Document) Source() Source {
	return d.source
}

// Root returns the underlying mapping. Mutations are visible to every holder
// of the document; transformers rely on that.
func (d *Document) Root() map[string]any {
	return d.root
}

// Location returns the string identifier for the origin.
func (d *Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Clone returns a deep, independent copy of the document mapping so callers
// such as validators can normalise in place without the run observing it.
func (d *Document) Clone() map[string]any {
	if d.root == nil {
		return nil
	}
	return deepcopy.Copy(d.root).(map[string]any)
}

// Counters derives model and endpoint counts from the declared
// components.schemas and paths sections. Missing or malformed sections count
// as zero.
func (d *Document) Counters() Counters {
	return Counters{
		ModelCount:    sectionLen(d.root, "components", "schemas"),
		EndpointCount: sectionLen(d.root, "paths"),
	}
}

// AttachOptions stores run configuration under the reserved OptionsKey. The
// supplied mapping is attached as-is; callers must not mutate it afterwards.
func (d *Document) AttachOptions(options map[string]any) {
	if d.root == nil || options == nil {
		return
	}
	d.root[OptionsKey] = options
}

func sectionLen(root map[string]any, path ...string) int {
	node := any(root)
	for _, key := range path {
		m, ok := node.(map[string]any)
		if !ok {
			return 0
		}
		node = m[key]
	}
	if m, ok := node.(map[string]any); ok {
		return len(m)
	}
	return 0
}
