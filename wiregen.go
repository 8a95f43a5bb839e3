// Package wiregen generates binary-serialization bindings from registry
// documents: Go and Dart types with bincode and BCS codecs, structural
// equality, and a JSON bridge.
package wiregen

import (
	"context"

	"github.com/goliatone/go-wiregen/pkg/gen"
	"github.com/goliatone/go-wiregen/pkg/orchestrator"
	"github.com/goliatone/go-wiregen/pkg/schema"
)

// Config carries the language-independent generation settings; alias exported
// via the root package for convenience.
type Config = gen.Config

// SourceUnit is one generated output document.
type SourceUnit = gen.SourceUnit

// Encoding names a binary wire encoding.
type Encoding = gen.Encoding

// The built-in encodings.
const (
	Bincode = gen.Bincode
	BCS     = gen.BCS
)

// NewConfig returns a Config with serialization enabled and both encodings
// active.
func NewConfig(moduleName string) Config {
	return gen.NewConfig(moduleName)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module for callers that need custom emitters or targets.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the registry document, validates it, and emits source units
// for the named target. It is the simplest entry point for callers that just
// want generated bindings.
func Generate(ctx context.Context, source schema.Source, target string, cfg Config, options ...orchestrator.Option) ([]SourceUnit, error) {
	o := orchestrator.New(options...)
	return o.Generate(ctx, orchestrator.Request{
		Source: source,
		Target: target,
		Config: cfg,
	})
}

// GenerateTo behaves like Generate and additionally writes every unit beneath
// outDir.
func GenerateTo(ctx context.Context, source schema.Source, target string, cfg Config, outDir string, options ...orchestrator.Option) ([]SourceUnit, error) {
	o := orchestrator.New(options...)
	return o.Generate(ctx, orchestrator.Request{
		Source: source,
		Target: target,
		Config: cfg,
		OutDir: outDir,
	})
}
