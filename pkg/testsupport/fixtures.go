// Package testsupport carries shared helpers for tests that drive the
// generation pipeline against fixture registries.
package testsupport

import (
	"testing"

	"github.com/goliatone/go-wiregen/pkg/format"
	"github.com/goliatone/go-wiregen/pkg/gen"
	"github.com/goliatone/go-wiregen/pkg/schema"
)

// MustRegistry parses a YAML registry document held inline in a test.
func MustRegistry(t *testing.T, raw string) *format.Registry {
	t.Helper()

	doc, err := schema.Load(schema.SourceFromBytes("fixture.yaml", []byte(raw)))
	if err != nil {
		t.Fatalf("load fixture document: %v", err)
	}
	registry, err := schema.ParseRegistry(doc)
	if err != nil {
		t.Fatalf("parse fixture registry: %v", err)
	}
	return registry
}

// FindUnit returns the content of the unit with the given path, failing the
// test with the full path list when it is absent.
func FindUnit(t *testing.T, units []gen.SourceUnit, path string) string {
	t.Helper()

	for _, unit := range units {
		if unit.Path == path {
			return string(unit.Content)
		}
	}
	t.Fatalf("no unit %q, got %v", path, UnitPaths(units))
	return ""
}

// UnitPaths lists the paths of the given units in emission order.
func UnitPaths(units []gen.SourceUnit) []string {
	paths := make([]string, len(units))
	for i, unit := range units {
		paths[i] = unit.Path
	}
	return paths
}
