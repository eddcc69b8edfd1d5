package schema

import (
	"net/url"
	"path/filepath"
)

// Source identifies where a schema document originated so loaders can operate
// on files, fs.FS entries, or URLs without leaking implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// fileSource identifies on-disk schema documents.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path. Relative paths are
// resolved against the working directory.
func SourceFromFile(path string) Source {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// urlSource references an HTTP/HTTPS endpoint.
type urlSource struct {
	raw string
}

func (s urlSource) Location() string {
	return s.raw
}

func (s urlSource) Kind() SourceKind {
	return SourceKindURL
}

// SourceFromURL returns a Source for a remote location without validating it;
// use ParseSource when the reference may be either a path or a URL.
func SourceFromURL(raw string) Source {
	return urlSource{raw: raw}
}

// ParseSource classifies a reference string: a reference is remote iff it
// parses as an absolute URL with a scheme and host, otherwise it is treated
// as a local filesystem path resolved to an absolute path. Pure, no I/O.
func ParseSource(reference string) Source {
	if u, err := url.Parse(reference); err == nil && u.IsAbs() && u.Host != "" {
		return urlSource{raw: reference}
	}
	return SourceFromFile(reference)
}

// IsRemote reports whether the source points at a network location.
func IsRemote(src Source) bool {
	return src != nil && src.Kind() == SourceKindURL
}
