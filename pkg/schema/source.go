// Package schema loads registry documents: YAML descriptions of the named
// containers a generation run works from.
package schema

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source identifies where a registry document originated so loaders can
// operate on files, fs.FS entries, or in-memory bytes without leaking
// implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindBytes SourceKind = "bytes"
)

// fileSource identifies on-disk registry documents.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS.
type fsSource struct {
	fsys fs.FS
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(fsys fs.FS, name string) Source {
	return fsSource{fsys: fsys, name: name}
}

// bytesSource holds an in-memory document, typically from tests or stdin.
type bytesSource struct {
	label string
	raw   []byte
}

func (s bytesSource) Location() string {
	return s.label
}

func (s bytesSource) Kind() SourceKind {
	return SourceKindBytes
}

// SourceFromBytes wraps raw document bytes with a label for error messages.
func SourceFromBytes(label string, raw []byte) Source {
	return bytesSource{label: label, raw: append([]byte(nil), raw...)}
}

// read fetches the raw bytes behind a Source.
func read(src Source) ([]byte, error) {
	switch s := src.(type) {
	case fileSource:
		data, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("schema: read %s: %w", s.path, err)
		}
		return data, nil
	case fsSource:
		data, err := fs.ReadFile(s.fsys, s.name)
		if err != nil {
			return nil, fmt.Errorf("schema: read %s: %w", s.name, err)
		}
		return data, nil
	case bytesSource:
		return s.raw, nil
	default:
		return nil, fmt.Errorf("schema: unsupported source kind %q", src.Kind())
	}
}
