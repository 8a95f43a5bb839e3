package golang

import (
	"fmt"
	"path"
	"strings"

	"github.com/goliatone/go-wiregen/pkg/emit"
	"github.com/goliatone/go-wiregen/pkg/format"
)

// typeExpression maps a format to its Go type. Optionals map to the explicit
// serde.Option wrapper rather than a pointer: the wire presence tag is not
// the same thing as a nil value. Fixed arrays map to slices like sequences;
// their size is asserted at runtime so generated code stays uniform.
func (e *fileEmitter) typeExpression(f format.Format) string {
	switch t := f.(type) {
	case format.Primitive:
		if t == format.I128 || t == format.U128 {
			e.useRuntime()
		}
		return primitiveTypes[t]
	case format.TypeName:
		return e.qualifiedName(string(t))
	case format.Option:
		e.useRuntime()
		return fmt.Sprintf("serde.Option[%s]", e.optionInnerType(t))
	case format.Seq:
		return "[]" + e.typeExpression(t.Element)
	case format.Array:
		return "[]" + e.typeExpression(t.Element)
	case format.Map:
		return fmt.Sprintf("map[%s]%s", e.typeExpression(t.Key), e.typeExpression(t.Value))
	case format.Tuple:
		return e.tupleStructType(t.Elements)
	default:
		panic(fmt.Sprintf("golang: no type mapping for %T", f))
	}
}

var primitiveTypes = map[format.Primitive]string{
	format.Unit:  "struct{}",
	format.Bool:  "bool",
	format.I8:    "int8",
	format.I16:   "int16",
	format.I32:   "int32",
	format.I64:   "int64",
	format.I128:  "serde.Int128",
	format.U8:    "uint8",
	format.U16:   "uint16",
	format.U32:   "uint32",
	format.U64:   "uint64",
	format.U128:  "serde.Uint128",
	format.F32:   "float32",
	format.F64:   "float64",
	format.Char:  "rune",
	format.Str:   "string",
	format.Bytes: "[]byte",
}

// tupleStructType renders the inline struct type shared by every occurrence
// of a tuple shape: positional fields named Field0, Field1, and so on.
func (e *fileEmitter) tupleStructType(elements []format.Format) string {
	fields := make([]string, len(elements))
	for i, element := range elements {
		fields[i] = fmt.Sprintf("Field%d %s", i, e.typeExpression(element))
	}
	return fmt.Sprintf("struct {%s}", strings.Join(fields, "; "))
}

// optionInnerType boxes an optional reference to a recursive container:
// serde.Option embeds its value directly, so optional<Node> inside Node
// would make the struct contain itself.
func (e *fileEmitter) optionInnerType(t format.Option) string {
	if e.boxedOption(t) {
		return "*" + e.qualifiedName(string(t.Inner.(format.TypeName)))
	}
	return e.typeExpression(t.Inner)
}

// boxedOption reports whether the optional's inner reference needs a pointer.
func (e *fileEmitter) boxedOption(t format.Option) bool {
	ref, ok := t.Inner.(format.TypeName)
	return ok && e.boxed[string(ref)]
}

// recursiveNames returns the containers that reach themselves through value
// embedding: struct fields, tuple elements, and optional wrappers. Sequence,
// array, and map shapes emit Go reference types and enums emit interfaces,
// all of which already break the cycle.
func recursiveNames(registry *format.Registry) map[string]bool {
	edges := make(map[string]map[string]bool)
	for _, name := range registry.Names() {
		container, _ := registry.Get(name)
		targets := make(map[string]bool)
		switch t := container.(type) {
		case format.Struct:
			for _, field := range t.Fields {
				valueEdges(field.Value, targets)
			}
		case format.NewTypeStruct:
			valueEdges(t.Value, targets)
		case format.TupleStruct:
			for _, field := range t.Fields {
				valueEdges(field, targets)
			}
		}
		edges[name] = targets
	}

	boxed := make(map[string]bool)
	for _, name := range registry.Names() {
		if reaches(edges, name, name, make(map[string]bool)) {
			boxed[name] = true
		}
	}
	return boxed
}

func valueEdges(f format.Format, out map[string]bool) {
	switch t := f.(type) {
	case format.TypeName:
		out[string(t)] = true
	case format.Option:
		valueEdges(t.Inner, out)
	case format.Tuple:
		for _, element := range t.Elements {
			valueEdges(element, out)
		}
	}
}

func reaches(edges map[string]map[string]bool, from, to string, seen map[string]bool) bool {
	for target := range edges[from] {
		if target == to {
			return true
		}
		if seen[target] {
			continue
		}
		seen[target] = true
		if reaches(edges, target, to, seen) {
			return true
		}
	}
	return false
}

// qualifiedName resolves a container reference: registry-local names stay
// bare, externally declared names are qualified with their import package
// and the import is recorded for the file preamble.
func (e *fileEmitter) qualifiedName(name string) string {
	importPath, external := e.external[name]
	if !external {
		return name
	}
	e.imports[importPath] = struct{}{}
	return path.Base(importPath) + "." + name
}

// fieldName converts a schema field name to an exported Go identifier.
func fieldName(name string) string {
	return emit.CamelCase(name)
}

// helperName builds the generated helper identifier for a composite shape
// signature, for example "option_u32" becomes serializeOptionU32.
func helperName(prefix, signature string) string {
	return prefix + emit.CamelCase(signature)
}
