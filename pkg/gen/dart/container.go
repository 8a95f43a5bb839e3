package dart

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-wiregen/pkg/emit"
	"github.com/goliatone/go-wiregen/pkg/format"
	"github.com/goliatone/go-wiregen/pkg/gen"
)

// variantContext carries what a variant needs beyond plain class emission:
// the base class, the wire tag, and the schema-level name for the JSON
// discriminator.
type variantContext struct {
	Base       string
	Index      uint32
	ActualName string
}

func (e *fileEmitter) emitContainer(name string, container format.ContainerFormat) {
	switch t := container.(type) {
	case format.UnitStruct:
		e.emitClass(name, nil, false, nil)
	case format.NewTypeStruct:
		e.emitClass(name, []format.Named{{Name: "value", Value: t.Value}}, true, nil)
	case format.TupleStruct:
		e.emitClass(name, synthesizeNames(t.Fields), false, nil)
	case format.Struct:
		e.emitClass(name, t.Fields, false, nil)
	case format.Enum:
		e.emitEnum(name, t)
	}
}

func synthesizeNames(fields []format.Format) []format.Named {
	named := make([]format.Named, len(fields))
	for i, f := range fields {
		named[i] = format.Named{Name: fmt.Sprintf("field%d", i), Value: f}
	}
	return named
}

// emitClass writes one struct-like container or enum variant: field
// declarations, constructor, serialize/deserialize (load, for variants),
// per-encoding entry points, equality, hashCode, and the JSON bridge. Field
// order is identical on the serialize and deserialize paths.
func (e *fileEmitter) emitClass(name string, fields []format.Named, newtype bool, variant *variantContext) {
	if variant != nil {
		e.w.Linef("class %s extends %s {", name, variant.Base)
	} else {
		e.w.Linef("class %s {", name)
	}
	e.w.Indent()

	for _, field := range fields {
		e.w.Linef("%s %s;", e.typeExpression(field.Value), field.Name)
	}
	if len(fields) > 0 {
		e.w.Blank()
	}
	e.emitConstructor(name, fields)

	if e.cfg.Serialization {
		e.emitSerialize(fields, variant)
		e.emitDeserialize(name, fields, variant)
		if variant == nil {
			for _, encoding := range e.cfg.Encodings {
				e.emitEncodingSerialize(encoding)
				e.emitEncodingDeserialize(name, encoding)
			}
		}
	}

	e.emitEquality(name, fields)
	e.emitHashCode(fields)
	e.emitJSON(name, fields, newtype, variant)

	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

func (e *fileEmitter) emitConstructor(name string, fields []format.Named) {
	if len(fields) == 0 {
		e.w.Linef("%s();", name)
		e.w.Blank()
		return
	}
	params := make([]string, len(fields))
	for i, field := range fields {
		params[i] = "this." + field.Name
	}
	e.w.Linef("%s(%s);", name, strings.Join(params, ", "))
	e.w.Blank()
}

func (e *fileEmitter) emitSerialize(fields []format.Named, variant *variantContext) {
	if variant != nil {
		e.w.Line("@override")
	}
	e.w.Line("void serialize(BinarySerializer serializer) {")
	e.w.Indent()
	if variant != nil {
		e.w.Linef("serializer.serialize_variant_index(%d);", variant.Index)
	}
	for _, field := range fields {
		e.w.Line(e.serializeStatement(field.Name, field.Value))
	}
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

func (e *fileEmitter) emitDeserialize(name string, fields []format.Named, variant *variantContext) {
	funcName := "deserialize"
	if variant != nil {
		funcName = "load"
	}
	e.w.Linef("static %s %s(BinaryDeserializer deserializer) {", name, funcName)
	e.w.Indent()
	for _, field := range fields {
		e.w.Linef("var %s = %s;", field.Name, e.deserializeExpression(field.Value))
	}
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name
	}
	e.w.Linef("return %s(%s);", name, strings.Join(names, ", "))
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

func (e *fileEmitter) emitEncodingSerialize(encoding gen.Encoding) {
	e.w.Linef("Uint8List %sSerialize() {", encoding.Name())
	e.w.Indent()
	e.w.Linef("var serializer = %sSerializer();", emit.CamelCase(encoding.Name()))
	e.w.Line("serialize(serializer);")
	e.w.Line("return serializer.get_bytes();")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

// emitEncodingDeserialize writes the "decode from bytes" entry point. It
// fails when unread bytes remain after the value.
func (e *fileEmitter) emitEncodingDeserialize(name string, encoding gen.Encoding) {
	e.w.Linef("static %s %sDeserialize(Uint8List input) {", name, encoding.Name())
	e.w.Indent()
	e.w.Linef("var deserializer = %sDeserializer(input);", emit.CamelCase(encoding.Name()))
	e.w.Linef("%s value = deserialize(deserializer);", name)
	e.w.Line("if (deserializer.get_buffer_offset() < input.length) {")
	e.w.Indent()
	e.w.Line("throw Exception('Some input bytes were not read');")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Line("return value;")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

func (e *fileEmitter) emitEquality(name string, fields []format.Named) {
	e.w.Line("@override")
	e.w.Linef("bool operator ==(covariant %s other) {", name)
	e.w.Indent()
	for _, field := range fields {
		if listLike(field.Value) {
			e.w.Linef("if (!isListsEqual(%s, other.%s)) {", field.Name, field.Name)
		} else {
			e.w.Linef("if (%s != other.%s) {", field.Name, field.Name)
		}
		e.w.Indent()
		e.w.Line("return false;")
		e.w.Unindent()
		e.w.Line("}")
	}
	e.w.Line("return true;")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

// listLike reports whether field equality goes through element-wise list
// comparison instead of ==.
func listLike(f format.Format) bool {
	switch f.(type) {
	case format.Seq, format.Array:
		return true
	default:
		return false
	}
}

func (e *fileEmitter) emitHashCode(fields []format.Named) {
	e.w.Line("@override")
	e.w.Line("int get hashCode {")
	e.w.Indent()
	e.w.Line("int value = 7;")
	for _, field := range fields {
		e.w.Linef("value = 31 * value + %s.hashCode;", field.Name)
	}
	e.w.Line("return value;")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

// emitJSON writes the JSON bridge: newtype containers flatten to the bare
// inner value, variants carry the discriminator keys.
func (e *fileEmitter) emitJSON(name string, fields []format.Named, newtype bool, variant *variantContext) {
	constructor := "fromJson"
	if variant != nil {
		constructor = "loadJson"
	}
	if len(fields) == 0 {
		e.w.Linef("%s.%s(dynamic json);", name, constructor)
	} else if newtype {
		e.w.Linef("%s.%s(dynamic json) : %s = json;", name, constructor, fields[0].Name)
	} else {
		e.w.Linef("%s.%s(dynamic json) :", name, constructor)
		e.w.Indent()
		for i, field := range fields {
			suffix := ","
			if i == len(fields)-1 {
				suffix = ";"
			}
			e.w.Linef("%s%s", e.fieldFromJSON(field), suffix)
		}
		e.w.Unindent()
	}
	e.w.Blank()

	if newtype {
		e.w.Linef("dynamic toJson() => %s;", fields[0].Name)
		return
	}
	if variant != nil {
		e.w.Line("@override")
	}
	e.w.Line("dynamic toJson() => {")
	e.w.Indent()
	for _, field := range fields {
		e.w.Linef("%s,", e.fieldToJSON(field))
	}
	if variant != nil {
		e.w.Linef("'type': %d,", variant.Index)
		e.w.Linef("'type_name': '%s',", variant.ActualName)
	}
	e.w.Unindent()
	e.w.Line("};")
}

func (e *fileEmitter) fieldToJSON(field format.Named) string {
	switch t := field.Value.(type) {
	case format.TypeName, format.Map:
		return fmt.Sprintf("'%s': %s.toJson()", field.Name, field.Name)
	case format.Primitive:
		if t == format.Bytes {
			return fmt.Sprintf("'%s': %s.toJson()", field.Name, field.Name)
		}
		return fmt.Sprintf("'%s': %s", field.Name, field.Name)
	case format.Option:
		return fmt.Sprintf("'%s': %s.isEmpty ? null : %s.value", field.Name, field.Name, field.Name)
	case format.Seq:
		if _, named := t.Element.(format.TypeName); named {
			return fmt.Sprintf("'%s': %s.map((f) => f.toJson()).toList()", field.Name, field.Name)
		}
		return fmt.Sprintf("'%s': %s", field.Name, field.Name)
	default:
		return fmt.Sprintf("'%s': %s", field.Name, field.Name)
	}
}

func (e *fileEmitter) fieldFromJSON(field format.Named) string {
	switch t := field.Value.(type) {
	case format.TypeName:
		return fmt.Sprintf("%s = %s.fromJson(json['%s'])", field.Name, e.qualifiedName(string(t)), field.Name)
	case format.Primitive:
		if t == format.Bytes {
			return fmt.Sprintf("%s = Bytes.fromJson(json['%s'])", field.Name, field.Name)
		}
		return fmt.Sprintf("%s = json['%s']", field.Name, field.Name)
	case format.Seq:
		if named, ok := t.Element.(format.TypeName); ok {
			return fmt.Sprintf("%s = List<%s>.from(json['%s'].map((f) => %s.fromJson(f)).toList())",
				field.Name, e.qualifiedName(string(named)), field.Name, e.qualifiedName(string(named)))
		}
		return fmt.Sprintf("%s = json['%s']", field.Name, field.Name)
	case format.Array:
		return fmt.Sprintf("%s = List<%s>.from(json['%s'])", field.Name, e.typeExpression(t.Element), field.Name)
	default:
		return fmt.Sprintf("%s = json['%s']", field.Name, field.Name)
	}
}
