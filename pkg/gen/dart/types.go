package dart

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-wiregen/pkg/format"
)

// typeExpression maps a format to its Dart type. Optionals use the explicit
// Optional wrapper from package:optional, never a nullable type: the wire
// presence tag is not the same thing as null. Fixed arrays map to List like
// sequences, with the size asserted at runtime.
func (e *fileEmitter) typeExpression(f format.Format) string {
	switch t := f.(type) {
	case format.Primitive:
		return primitiveTypes[t]
	case format.TypeName:
		return e.qualifiedName(string(t))
	case format.Option:
		return fmt.Sprintf("Optional<%s>", e.typeExpression(t.Inner))
	case format.Seq:
		return fmt.Sprintf("List<%s>", e.typeExpression(t.Element))
	case format.Array:
		return fmt.Sprintf("List<%s>", e.typeExpression(t.Element))
	case format.Map:
		return fmt.Sprintf("Map<%s, %s>", e.typeExpression(t.Key), e.typeExpression(t.Value))
	case format.Tuple:
		return fmt.Sprintf("Tuple%d<%s>", len(t.Elements), e.typeExpressions(t.Elements))
	default:
		panic(fmt.Sprintf("dart: no type mapping for %T", f))
	}
}

func (e *fileEmitter) typeExpressions(elements []format.Format) string {
	types := make([]string, len(elements))
	for i, element := range elements {
		types[i] = e.typeExpression(element)
	}
	return strings.Join(types, ", ")
}

// Dart has no single-precision float type; f32 widens to double. The 128-bit
// integers use the runtime's Int128 wrapper.
var primitiveTypes = map[format.Primitive]string{
	format.Unit:  "Unit",
	format.Bool:  "bool",
	format.I8:    "int",
	format.I16:   "int",
	format.I32:   "int",
	format.I64:   "int",
	format.I128:  "Int128",
	format.U8:    "int",
	format.U16:   "int",
	format.U32:   "int",
	format.U64:   "int",
	format.U128:  "Int128",
	format.F32:   "double",
	format.F64:   "double",
	format.Char:  "int",
	format.Str:   "String",
	format.Bytes: "Bytes",
}

// qualifiedName resolves a container reference, using the dotted library
// prefix for externally declared names.
func (e *fileEmitter) qualifiedName(name string) string {
	if qualified, external := e.external[name]; external {
		return qualified
	}
	return name
}
