package golang

import (
	"github.com/goliatone/go-wiregen/pkg/emit"
	"github.com/goliatone/go-wiregen/pkg/format"
	"github.com/goliatone/go-wiregen/pkg/gen"
)

// emitEnum writes the closed tagged union: an interface with a private
// marker method (so the variant set is sealed inside the generated package),
// a deserialize dispatcher switching exhaustively over the known tags, the
// per-encoding entry points, the JSON dispatcher, and then each variant as a
// struct container parameterized by (base, tag, fields).
func (e *fileEmitter) emitEnum(name string, enum format.Enum) {
	e.w.Linef("type %s interface {", name)
	e.w.Indent()
	e.w.Linef("is%s()", name)
	if e.cfg.Serialization {
		e.useRuntime()
		e.w.Line("Serialize(serializer serde.Serializer) error")
		for _, encoding := range e.cfg.Encodings {
			e.w.Linef("%sSerialize() ([]byte, error)", emit.CamelCase(encoding.Name()))
		}
	}
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()

	if e.cfg.Serialization {
		e.emitEnumDeserialize(name, enum)
		for _, encoding := range e.cfg.Encodings {
			e.emitEnumEncodingDeserialize(name, encoding)
		}
	}
	e.emitEnumFromJSON(name, enum)

	for _, variant := range enum.Variants {
		e.emitVariant(name, variant)
	}
}

// emitEnumDeserialize writes the tag dispatcher. An unrecognized tag is a
// decode failure, never a default construction.
func (e *fileEmitter) emitEnumDeserialize(name string, enum format.Enum) {
	e.useRuntime()
	e.w.Linef("func Deserialize%s(deserializer serde.Deserializer) (%s, error) {", name, name)
	e.w.Indent()
	e.w.Line("index, err := deserializer.DeserializeVariantIndex()")
	e.w.Line("if err != nil {")
	e.w.Indent()
	e.w.Line("return nil, err")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Line("switch index {")
	for _, variant := range enum.Variants {
		e.w.Linef("case %d:", variant.Index)
		e.w.Indent()
		e.w.Linef("if val, err := load%s(deserializer); err == nil {", variantTypeName(name, variant.Name))
		e.w.Indent()
		e.w.Line("return &val, nil")
		e.w.Unindent()
		e.w.Line("} else {")
		e.w.Indent()
		e.w.Line("return nil, err")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Unindent()
	}
	e.w.Line("default:")
	e.w.Indent()
	e.w.Linef(`return nil, serde.NewDecodeError("unknown variant index for %s: %%d", index)`, name)
	e.w.Unindent()
	e.w.Line("}")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

func (e *fileEmitter) emitEnumEncodingDeserialize(name string, encoding gen.Encoding) {
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

// emitEnumFromJSON dispatches on the "type" discriminator key written by the
// variant marshalers.
func (e *fileEmitter) emitEnumFromJSON(name string, enum format.Enum) {
	e.std["encoding/json"] = struct{}{}
	e.std["fmt"] = struct{}{}
	e.w.Linef("func %sFromJSON(input []byte) (%s, error) {", name, name)
	e.w.Indent()
	e.w.Line("var discriminator struct {")
	e.w.Indent()
	e.w.Line("Type *uint32 `json:\"type\"`")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Line("if err := json.Unmarshal(input, &discriminator); err != nil {")
	e.w.Indent()
	e.w.Line("return nil, err")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Line("if discriminator.Type == nil {")
	e.w.Indent()
	e.w.Linef(`return nil, fmt.Errorf("missing type discriminator for %s")`, name)
	e.w.Unindent()
	e.w.Line("}")
	e.w.Line("switch *discriminator.Type {")
	for _, variant := range enum.Variants {
		e.w.Linef("case %d:", variant.Index)
		e.w.Indent()
		e.w.Linef("var obj %s", variantTypeName(name, variant.Name))
		e.w.Line("if err := json.Unmarshal(input, &obj); err != nil {")
		e.w.Indent()
		e.w.Line("return nil, err")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("return &obj, nil")
		e.w.Unindent()
	}
	e.w.Line("default:")
	e.w.Indent()
	e.w.Linef(`return nil, fmt.Errorf("unknown type %%d for %s", *discriminator.Type)`, name)
	e.w.Unindent()
	e.w.Line("}")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

// emitVariant reuses struct emission for one variant of the enum.
func (e *fileEmitter) emitVariant(base string, variant format.Variant) {
	name := variantTypeName(base, variant.Name)
	ctx := &variantContext{Base: base, Index: variant.Index, ActualName: variant.Name}
	switch t := variant.Value.(type) {
	case format.VariantUnit:
		e.emitStruct(name, nil, false, ctx)
	case format.VariantNewType:
		e.emitStruct(name, []format.Named{{Name: "value", Value: t.Value}}, false, ctx)
	case format.VariantTuple:
		e.emitStruct(name, synthesizeNames(t.Fields), false, ctx)
	case format.VariantStruct:
		e.emitStruct(name, t.Fields, false, ctx)
	}
}

func variantTypeName(base, variant string) string {
	return base + emit.CamelCase(variant)
}
