// Package gen defines the language-independent generation contracts: the
// configuration handed to every target, the emitter interface and registry,
// and the deduplicated helper table shared by all emitted containers.
package gen

import (
	"fmt"
	"strings"
)

// Encoding names a binary wire encoding the generated code must support.
// Each active encoding contributes a pair of convenience operations
// ("encode to bytes" / "decode from bytes") to every container.
type Encoding string

const (
	// Bincode is the non-canonical encoding: fixed-width little-endian
	// lengths and variant tags, map entries in iteration order.
	Bincode Encoding = "bincode"
	// BCS is the canonical encoding: ULEB128 lengths, map entries ordered by
	// serialized key bytes, bounded container depth.
	BCS Encoding = "bcs"
)

// Name returns the encoding identifier used in generated method names and
// runtime package paths.
func (e Encoding) Name() string {
	return string(e)
}

// ParseEncoding resolves a single encoding name against the known set. An
// unrecognized name is an error: it would otherwise flow straight into
// generated imports of a runtime package that does not exist.
func ParseEncoding(name string) (Encoding, error) {
	switch Encoding(name) {
	case Bincode, BCS:
		return Encoding(name), nil
	default:
		return "", fmt.Errorf("gen: unknown encoding %q", name)
	}
}

// ParseEncodings splits a comma-separated encoding list, ignoring blank
// entries, and validates every name.
func ParseEncodings(raw string) ([]Encoding, error) {
	var encodings []Encoding
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		encoding, err := ParseEncoding(name)
		if err != nil {
			return nil, err
		}
		encodings = append(encodings, encoding)
	}
	return encodings, nil
}

// Config carries the language-independent generation settings. The zero
// value is not useful; construct with NewConfig and adjust fields as needed.
type Config struct {
	// ModuleName is the target module/namespace for the generated code
	// (a Go package name, a Dart library name).
	ModuleName string

	// Encodings lists the active wire encodings. Order decides the order of
	// the per-encoding convenience methods in the output.
	Encodings []Encoding

	// External maps a namespace (import path or library prefix) to the type
	// names it declares. References to these names are legal even though the
	// registry does not define them; generated code qualifies them with the
	// namespace.
	External map[string][]string

	// Serialization selects whether codec methods are emitted at all.
	// When false the generator runs in schema-only mode: type definitions,
	// equality, and the JSON bridge only.
	Serialization bool
}

// NewConfig returns a Config with serialization enabled and both encodings
// active, the common case for wire-format libraries.
func NewConfig(moduleName string) Config {
	return Config{
		ModuleName:    moduleName,
		Encodings:     []Encoding{Bincode, BCS},
		Serialization: true,
	}
}

// ExternalNames flattens External into the set of type names declared
// outside the registry, the shape registry validation consumes.
func (c Config) ExternalNames() map[string]struct{} {
	if len(c.External) == 0 {
		return nil
	}
	names := make(map[string]struct{})
	for _, declared := range c.External {
		for _, name := range declared {
			names[name] = struct{}{}
		}
	}
	return names
}

// ExternalQualified returns a name to qualified-name lookup, joining each
// type name to its declaring namespace with sep ("." for Dart libraries;
// Go targets qualify through imports instead).
func (c Config) ExternalQualified(sep string) map[string]string {
	qualified := make(map[string]string)
	for namespace, declared := range c.External {
		for _, name := range declared {
			qualified[name] = namespace + sep + name
		}
	}
	return qualified
}

// ModulePath splits ModuleName on "." for targets that lay namespaces out as
// nested directories.
func (c Config) ModulePath() []string {
	if c.ModuleName == "" {
		return nil
	}
	return strings.Split(c.ModuleName, ".")
}
