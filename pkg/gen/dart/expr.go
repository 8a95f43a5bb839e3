package dart

import (
	"fmt"

	"github.com/goliatone/go-wiregen/pkg/format"
)

// serializeStatement returns the statement that writes value (of format f),
// including the trailing semicolon. Primitives route to one writer primitive,
// named references to the type's own serialize method, and every composite
// shape to its TraitHelpers routine.
func (e *fileEmitter) serializeStatement(value string, f format.Format) string {
	switch t := f.(type) {
	case format.Primitive:
		return fmt.Sprintf("serializer.serialize_%s(%s);", string(t), value)
	case format.TypeName:
		return fmt.Sprintf("%s.serialize(serializer);", value)
	default:
		return fmt.Sprintf("TraitHelpers.serialize_%s(%s, serializer);", format.Signature(t), value)
	}
}

// deserializeExpression returns the expression that reads a value of format f.
func (e *fileEmitter) deserializeExpression(f format.Format) string {
	switch t := f.(type) {
	case format.Primitive:
		return fmt.Sprintf("deserializer.deserialize_%s()", string(t))
	case format.TypeName:
		return fmt.Sprintf("%s.deserialize(deserializer)", e.qualifiedName(string(t)))
	default:
		return fmt.Sprintf("TraitHelpers.deserialize_%s(deserializer)", format.Signature(t))
	}
}
