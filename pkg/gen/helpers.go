package gen

import (
	"sort"

	"github.com/goliatone/go-wiregen/pkg/format"
)

// Helper is one deduplicated composite shape that gets a shared
// serialize/deserialize routine pair in the output.
type Helper struct {
	Signature string
	Format    format.Format
}

// HelperSet is the registry-wide table of composite shapes, keyed by
// structural signature. It is built in one traversal before any container is
// emitted and is read-only afterwards: container emission only looks
// signatures up, so a field in one container can call a helper discovered
// through a sibling container.
type HelperSet struct {
	bySignature map[string]format.Format
}

// BuildHelperSet performs one depth-first traversal of every format reachable
// from every container in the registry and records each shape that needs a
// helper. Insertion is idempotent: revisiting a signature is a no-op, so two
// containers sharing an optional<u32> field produce exactly one entry.
func BuildHelperSet(registry *format.Registry) *HelperSet {
	set := &HelperSet{bySignature: make(map[string]format.Format)}
	_ = registry.Visit(func(f format.Format) error {
		if format.NeedsHelper(f) {
			signature := format.Signature(f)
			if _, seen := set.bySignature[signature]; !seen {
				set.bySignature[signature] = f
			}
		}
		return nil
	})
	return set
}

// Contains reports whether a shape with the given signature was discovered.
func (s *HelperSet) Contains(signature string) bool {
	_, ok := s.bySignature[signature]
	return ok
}

// Len returns the number of distinct composite shapes.
func (s *HelperSet) Len() int {
	return len(s.bySignature)
}

// Sorted returns the helpers in signature order, the emission order that
// keeps generated output reproducible.
func (s *HelperSet) Sorted() []Helper {
	helpers := make([]Helper, 0, len(s.bySignature))
	for signature, f := range s.bySignature {
		helpers = append(helpers, Helper{Signature: signature, Format: f})
	}
	sort.Slice(helpers, func(i, j int) bool {
		return helpers[i].Signature < helpers[j].Signature
	})
	return helpers
}
