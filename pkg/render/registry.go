package render

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Registry maps extension names to template source loaded from a generator's
// helpers and partials directories. Registration is last-writer-wins by
// design: a later file with the same derived name silently overrides an
// earlier one, which is the generator author's override mechanism.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]string)}
}

// Register stores template source under name, replacing any previous entry.
func (r *Registry) Register(name, content string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = content
}

// Lookup retrieves registered source by name.
func (r *Registry) Lookup(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	content, ok := r.entries[name]
	return content, ok
}

// Names returns the sorted registered names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports how many entries are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// LoadDir scans a single extension-point directory. Every contained regular
// file registers under its filename stripped of all extensions. A missing
// directory is not an error; the extension points are optional.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	// Deterministic registration order so same-name collisions resolve the
	// same way on every platform.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		r.Register(extensionName(entry.Name()), string(content))
	}
	return nil
}

// extensionName strips every extension: "header.html.tpl" registers as
// "header".
func extensionName(filename string) string {
	base := filepath.Base(filename)
	if idx := strings.Index(base, "."); idx > 0 {
		return base[:idx]
	}
	return base
}

// registryLoader exposes the registry to pongo2 so {% include %} and
// {% import %} resolve generator-supplied content ahead of any file on disk.
type registryLoader struct {
	registry *Registry
}

var _ pongo2.TemplateLoader = registryLoader{}

func (l registryLoader) Abs(base, name string) string {
	return name
}

func (l registryLoader) Get(path string) (io.Reader, error) {
	content, ok := l.registry.Lookup(path)
	if !ok {
		return nil, errors.New("render: no registered extension " + path)
	}
	return bytes.NewReader([]byte(content)), nil
}
