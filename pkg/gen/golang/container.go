package golang

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-wiregen/pkg/emit"
	"github.com/goliatone/go-wiregen/pkg/format"
	"github.com/goliatone/go-wiregen/pkg/gen"
)

// variantContext carries what a variant needs beyond plain struct emission:
// the enum it belongs to, its wire tag, and its schema-level name for the
// JSON discriminator.
type variantContext struct {
	Base       string
	Index      uint32
	ActualName string
}

func (e *fileEmitter) emitContainer(name string, container format.ContainerFormat) {
	switch t := container.(type) {
	case format.UnitStruct:
		e.emitStruct(name, nil, false, nil)
	case format.NewTypeStruct:
		e.emitStruct(name, []format.Named{{Name: "value", Value: t.Value}}, true, nil)
	case format.TupleStruct:
		e.emitStruct(name, synthesizeNames(t.Fields), false, nil)
	case format.Struct:
		e.emitStruct(name, t.Fields, false, nil)
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

// emitStruct writes one struct-like container: type declaration, factory,
// Serialize/Deserialize (or load, for variants), per-encoding convenience
// methods, structural equality, hashing, and the JSON bridge. Field order is
// identical on the serialize and deserialize paths; reordering either one
// breaks round-tripping.
func (e *fileEmitter) emitStruct(name string, fields []format.Named, newtype bool, variant *variantContext) {
	e.emitTypeDecl(name, fields, newtype, variant)
	e.emitFactory(name, fields, variant)
	if e.cfg.Serialization {
		e.emitSerialize(name, fields, variant)
		e.emitDeserialize(name, fields, variant)
		if variant == nil {
			for _, encoding := range e.cfg.Encodings {
				e.emitEncodingSerialize(name, encoding)
				e.emitEncodingDeserialize(name, encoding)
			}
		} else {
			for _, encoding := range e.cfg.Encodings {
				e.emitEncodingSerialize(name, encoding)
			}
		}
	}
	e.emitEqual(name, fields)
	if e.cfg.Serialization && len(e.cfg.Encodings) > 0 {
		e.emitHash(name)
	}
	e.emitJSON(name, fields, newtype, variant)
}

func (e *fileEmitter) emitTypeDecl(name string, fields []format.Named, newtype bool, variant *variantContext) {
	e.w.Linef("type %s struct {", name)
	e.w.Indent()
	for _, field := range fields {
		e.w.Linef("%s %s `json:%q`", fieldName(field.Name), e.typeExpression(field.Value), field.Name)
	}
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
	if variant != nil {
		e.w.Linef("func (*%s) is%s() {}", name, variant.Base)
		e.w.Blank()
	}
}

// emitFactory writes the constructor. All fields are required: enum-typed
// fields (Go interfaces) are checked against nil, which is the
// construction-time fault the schema contract calls for. Variant factories
// return a pointer, since only the pointer type satisfies the enum
// interface.
func (e *fileEmitter) emitFactory(name string, fields []format.Named, variant *variantContext) {
	params := make([]string, len(fields))
	for i, field := range fields {
		params[i] = fmt.Sprintf("%s %s", emit.LowerCamelCase(field.Name), e.typeExpression(field.Value))
	}
	returnType := name
	if variant != nil {
		returnType = "*" + name
	}
	e.w.Linef("func New%s(%s) %s {", name, strings.Join(params, ", "), returnType)
	e.w.Indent()
	for _, field := range fields {
		if ref, ok := field.Value.(format.TypeName); ok && e.isEnum(string(ref)) {
			e.w.Linef("if %s == nil {", emit.LowerCamelCase(field.Name))
			e.w.Indent()
			e.w.Linef(`panic("%s: field %s is required")`, name, field.Name)
			e.w.Unindent()
			e.w.Line("}")
		}
	}
	assignments := make([]string, len(fields))
	for i, field := range fields {
		assignments[i] = fmt.Sprintf("%s: %s", fieldName(field.Name), emit.LowerCamelCase(field.Name))
	}
	construct := fmt.Sprintf("%s{%s}", name, strings.Join(assignments, ", "))
	if variant != nil {
		construct = "&" + construct
	}
	e.w.Linef("return %s", construct)
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

func (e *fileEmitter) emitSerialize(name string, fields []format.Named, variant *variantContext) {
	e.useRuntime()
	e.w.Linef("func (obj *%s) Serialize(serializer serde.Serializer) error {", name)
	e.w.Indent()
	e.w.Line("if err := serializer.IncreaseContainerDepth(); err != nil {")
	e.w.Indent()
	e.w.Line("return err")
	e.w.Unindent()
	e.w.Line("}")
	if variant != nil {
		e.w.Linef("if err := serializer.SerializeVariantIndex(%d); err != nil {", variant.Index)
		e.w.Indent()
		e.w.Line("return err")
		e.w.Unindent()
		e.w.Line("}")
	}
	for _, field := range fields {
		e.serializeField("obj."+fieldName(field.Name), field.Value)
	}
	e.w.Line("serializer.DecreaseContainerDepth()")
	e.w.Line("return nil")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

func (e *fileEmitter) emitDeserialize(name string, fields []format.Named, variant *variantContext) {
	e.useRuntime()
	funcName := "Deserialize" + name
	if variant != nil {
		funcName = "load" + name
	}
	e.w.Linef("func %s(deserializer serde.Deserializer) (%s, error) {", funcName, name)
	e.w.Indent()
	e.w.Linef("var obj %s", name)
	e.w.Line("if err := deserializer.IncreaseContainerDepth(); err != nil {")
	e.w.Indent()
	e.w.Line("return obj, err")
	e.w.Unindent()
	e.w.Line("}")
	for _, field := range fields {
		e.deserializeField("obj."+fieldName(field.Name), field.Value)
	}
	e.w.Line("deserializer.DecreaseContainerDepth()")
	e.w.Line("return obj, nil")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

func (e *fileEmitter) emitEncodingSerialize(name string, encoding gen.Encoding) {
	e.std["fmt"] = struct{}{}
	e.imports[e.runtime+"/"+encoding.Name()] = struct{}{}
	method := emit.CamelCase(encoding.Name()) + "Serialize"
	e.w.Linef("func (obj *%s) %s() ([]byte, error) {", name, method)
	e.w.Indent()
	e.w.Line("if obj == nil {")
	e.w.Indent()
	e.w.Linef(`return nil, fmt.Errorf("cannot serialize nil %s")`, name)
	e.w.Unindent()
	e.w.Line("}")
	e.w.Linef("serializer := %s.NewSerializer()", encoding.Name())
	e.w.Line("if err := obj.Serialize(serializer); err != nil {")
	e.w.Indent()
	e.w.Line("return nil, err")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Line("return serializer.GetBytes(), nil")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

// emitEncodingDeserialize writes the "decode from bytes" entry point. It
// fails when unread bytes remain after the value: truncated values already
// fail inside Deserialize, and trailing garbage must never be accepted.
func (e *fileEmitter) emitEncodingDeserialize(name string, encoding gen.Encoding) {
	e.useRuntime()
	e.imports[e.runtime+"/"+encoding.Name()] = struct{}{}
	funcName := emit.CamelCase(encoding.Name()) + "Deserialize" + name
	e.w.Linef("func %s(input []byte) (%s, error) {", funcName, name)
	e.w.Indent()
	e.w.Linef("deserializer := %s.NewDeserializer(input)", encoding.Name())
	e.w.Linef("obj, err := Deserialize%s(deserializer)", name)
	e.w.Line("if err != nil {")
	e.w.Indent()
	e.w.Line("return obj, err")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Line("if deserializer.GetRemainingBytes() > 0 {")
	e.w.Indent()
	e.w.Linef(`return obj, serde.NewDecodeError("some input bytes were not read")`)
	e.w.Unindent()
	e.w.Line("}")
	e.w.Line("return obj, nil")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

func (e *fileEmitter) emitEqual(name string, fields []format.Named) {
	e.w.Linef("func (obj *%s) Equal(other *%s) bool {", name, name)
	e.w.Indent()
	e.w.Line("if other == nil {")
	e.w.Indent()
	e.w.Line("return false")
	e.w.Unindent()
	e.w.Line("}")
	for _, field := range fields {
		goField := fieldName(field.Name)
		if comparableWithOperator(field.Value) {
			e.w.Linef("if obj.%s != other.%s {", goField, goField)
		} else {
			e.std["reflect"] = struct{}{}
			e.w.Linef("if !reflect.DeepEqual(obj.%s, other.%s) {", goField, goField)
		}
		e.w.Indent()
		e.w.Line("return false")
		e.w.Unindent()
		e.w.Line("}")
	}
	e.w.Line("return true")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

// comparableWithOperator reports whether == is both legal and structural for
// the field's Go type. Everything else goes through reflect.DeepEqual.
func comparableWithOperator(f format.Format) bool {
	p, ok := f.(format.Primitive)
	if !ok {
		return false
	}
	return p != format.Bytes
}

func (e *fileEmitter) emitHash(name string) {
	e.std["hash/fnv"] = struct{}{}
	encoding := e.hashEncoding()
	e.w.Linef("func (obj *%s) Hash() (uint64, error) {", name)
	e.w.Indent()
	e.w.Linef("data, err := obj.%sSerialize()", emit.CamelCase(encoding.Name()))
	e.w.Line("if err != nil {")
	e.w.Indent()
	e.w.Line("return 0, err")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Line("h := fnv.New64a()")
	e.w.Line("h.Write(data)")
	e.w.Line("return h.Sum64(), nil")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

// hashEncoding prefers the canonical encoding so equal values hash equal
// regardless of map iteration order.
func (e *fileEmitter) hashEncoding() gen.Encoding {
	for _, encoding := range e.cfg.Encodings {
		if encoding == gen.BCS {
			return encoding
		}
	}
	return e.cfg.Encodings[0]
}

// emitJSON writes the JSON bridge pieces that field tags cannot express:
// newtype flattening and the variant discriminator keys.
func (e *fileEmitter) emitJSON(name string, fields []format.Named, newtype bool, variant *variantContext) {
	if newtype {
		e.std["encoding/json"] = struct{}{}
		e.w.Linef("func (obj %s) MarshalJSON() ([]byte, error) {", name)
		e.w.Indent()
		e.w.Linef("return json.Marshal(obj.%s)", fieldName(fields[0].Name))
		e.w.Unindent()
		e.w.Line("}")
		e.w.Blank()
		e.w.Linef("func (obj *%s) UnmarshalJSON(input []byte) error {", name)
		e.w.Indent()
		if ref, ok := fields[0].Value.(format.TypeName); ok && e.isEnum(string(ref)) {
			e.w.Linef("val, err := %sFromJSON(input)", ref)
			e.w.Line("if err != nil {")
			e.w.Indent()
			e.w.Line("return err")
			e.w.Unindent()
			e.w.Line("}")
			e.w.Linef("obj.%s = val", fieldName(fields[0].Name))
			e.w.Line("return nil")
		} else {
			e.w.Linef("return json.Unmarshal(input, &obj.%s)", fieldName(fields[0].Name))
		}
		e.w.Unindent()
		e.w.Line("}")
		e.w.Blank()
		return
	}
	if variant == nil {
		// Structs without enum-typed fields round-trip through their tags;
		// an interface-typed field needs an explicit decode dispatch.
		e.emitUnmarshalEnumFields(name, fields)
		return
	}
	e.std["encoding/json"] = struct{}{}
	e.w.Linef("func (obj %s) MarshalJSON() ([]byte, error) {", name)
	e.w.Indent()
	e.w.Linef("type raw %s", name)
	e.w.Line("return json.Marshal(struct {")
	e.w.Indent()
	e.w.Line("Type uint32 `json:\"type\"`")
	e.w.Line("TypeName string `json:\"type_name\"`")
	e.w.Line("raw")
	e.w.Unindent()
	e.w.Linef("}{Type: %d, TypeName: %q, raw: raw(obj)})", variant.Index, variant.ActualName)
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
	e.emitUnmarshalEnumFields(name, fields)
}

// emitUnmarshalEnumFields writes an UnmarshalJSON for containers holding
// enum-typed fields. json.Unmarshal cannot fill an interface-typed field on
// its own, so those fields are captured raw and routed through the enum's
// FromJSON dispatcher; everything else decodes through the field tags of an
// embedded method-free alias.
func (e *fileEmitter) emitUnmarshalEnumFields(name string, fields []format.Named) {
	var enumFields []format.Named
	for _, field := range fields {
		if ref, ok := field.Value.(format.TypeName); ok && e.isEnum(string(ref)) {
			enumFields = append(enumFields, field)
		}
	}
	if len(enumFields) == 0 {
		return
	}

	e.std["encoding/json"] = struct{}{}
	e.w.Linef("func (obj *%s) UnmarshalJSON(input []byte) error {", name)
	e.w.Indent()
	e.w.Linef("type raw %s", name)
	e.w.Line("var aux struct {")
	e.w.Indent()
	e.w.Line("raw")
	for _, field := range enumFields {
		e.w.Linef("%s json.RawMessage `json:%q`", fieldName(field.Name), field.Name)
	}
	e.w.Unindent()
	e.w.Line("}")
	e.w.Line("if err := json.Unmarshal(input, &aux); err != nil {")
	e.w.Indent()
	e.w.Line("return err")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Linef("*obj = %s(aux.raw)", name)
	for _, field := range enumFields {
		goField := fieldName(field.Name)
		e.w.Linef("if len(aux.%s) > 0 {", goField)
		e.w.Indent()
		e.w.Linef("val, err := %sFromJSON(aux.%s)", field.Value.(format.TypeName), goField)
		e.w.Line("if err != nil {")
		e.w.Indent()
		e.w.Line("return err")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Linef("obj.%s = val", goField)
		e.w.Unindent()
		e.w.Line("}")
	}
	e.w.Line("return nil")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}
