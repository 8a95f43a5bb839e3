package gen

import (
	"context"

	"github.com/goliatone/go-wiregen/pkg/format"
)

// SourceUnit is one generated output document: a path relative to the
// installation root plus its content. Units are independent; the assembler
// may write them in any order.
type SourceUnit struct {
	Path    string
	Content []byte
}

// EnsureResolved fails fast on the unresolved placeholder format the
// upstream inference layer uses. Code generated from a placeholder cannot be
// trusted, so every emitter runs this check before writing anything.
func EnsureResolved(registry *format.Registry) error {
	for _, name := range registry.Names() {
		container, _ := registry.Get(name)
		err := format.VisitContainer(container, func(f format.Format) error {
			if _, ok := f.(format.Variable); ok {
				return &format.SchemaError{Container: name, Detail: "unresolved format placeholder"}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Emitter generates source units for one target language. Implementations
// must be pure functions of the registry and config: no state survives an
// Emit call, and the registry is never mutated.
type Emitter interface {
	// Name identifies the target language ("golang", "dart").
	Name() string

	// Emit produces every source unit for the registry: one per named
	// container, one shared helper unit, and the module assembly units.
	// The registry must already be validated; Emit fails fast on an
	// unresolved placeholder but performs no other schema checking.
	Emit(ctx context.Context, registry *format.Registry, cfg Config) ([]SourceUnit, error)
}
