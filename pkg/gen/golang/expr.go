package golang

import (
	"fmt"
	"path"

	"github.com/goliatone/go-wiregen/pkg/format"
)

func deserializeFuncQualified(importPath, name string) string {
	return path.Base(importPath) + ".Deserialize" + name
}

// serializeCall returns the expression that writes value (of format f) and
// evaluates to an error. Primitives route to exactly one writer primitive,
// named references to the referenced type's own Serialize method, and every
// composite shape to its shared helper.
func (e *fileEmitter) serializeCall(value string, f format.Format) string {
	switch t := f.(type) {
	case format.Primitive:
		return fmt.Sprintf("serializer.Serialize%s(%s)", primitiveMethods[t], value)
	case format.TypeName:
		return fmt.Sprintf("%s.Serialize(serializer)", value)
	default:
		return fmt.Sprintf("%s(%s, serializer)", helperName("serialize", format.Signature(f)), value)
	}
}

// deserializeCall returns the expression that reads a value of format f,
// evaluating to (value, error).
func (e *fileEmitter) deserializeCall(f format.Format) string {
	switch t := f.(type) {
	case format.Primitive:
		return fmt.Sprintf("deserializer.Deserialize%s()", primitiveMethods[t])
	case format.TypeName:
		name := string(t)
		if importPath, external := e.external[name]; external {
			e.imports[importPath] = struct{}{}
			return fmt.Sprintf("%s(deserializer)", deserializeFuncQualified(importPath, name))
		}
		return fmt.Sprintf("Deserialize%s(deserializer)", name)
	default:
		return fmt.Sprintf("%s(deserializer)", helperName("deserialize", format.Signature(f)))
	}
}

var primitiveMethods = map[format.Primitive]string{
	format.Unit:  "Unit",
	format.Bool:  "Bool",
	format.I8:    "I8",
	format.I16:   "I16",
	format.I32:   "I32",
	format.I64:   "I64",
	format.I128:  "I128",
	format.U8:    "U8",
	format.U16:   "U16",
	format.U32:   "U32",
	format.U64:   "U64",
	format.U128:  "U128",
	format.F32:   "F32",
	format.F64:   "F64",
	format.Char:  "Char",
	format.Str:   "Str",
	format.Bytes: "Bytes",
}

// serializeField writes the uniform statement wrapping for one serialize
// call inside a Serialize method.
func (e *fileEmitter) serializeField(value string, f format.Format) {
	e.w.Linef("if err := %s; err != nil {", e.serializeCall(value, f))
	e.w.Indent()
	e.w.Line("return err")
	e.w.Unindent()
	e.w.Line("}")
}

// deserializeField writes the uniform statement wrapping for one deserialize
// call inside a Deserialize function, assigning into target.
func (e *fileEmitter) deserializeField(target string, f format.Format) {
	e.w.Linef("if val, err := %s; err == nil {", e.deserializeCall(f))
	e.w.Indent()
	e.w.Linef("%s = val", target)
	e.w.Unindent()
	e.w.Line("} else {")
	e.w.Indent()
	e.w.Line("return obj, err")
	e.w.Unindent()
	e.w.Line("}")
}
