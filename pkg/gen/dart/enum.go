package dart

import (
	"github.com/goliatone/go-wiregen/pkg/emit"
	"github.com/goliatone/go-wiregen/pkg/format"
)

// emitEnum writes the closed tagged union: an abstract base class declaring
// the serialize contract, a static deserialize dispatcher switching
// exhaustively over the known tags, the per-encoding entry points on the
// base, the JSON dispatcher, and each variant as a subclass emitted through
// the shared class emitter.
func (e *fileEmitter) emitEnum(name string, enum format.Enum) {
	e.w.Linef("abstract class %s {", name)
	e.w.Indent()
	e.w.Linef("%s();", name)
	e.w.Blank()

	if e.cfg.Serialization {
		e.w.Line("void serialize(BinarySerializer serializer);")
		e.w.Blank()
		e.emitEnumDeserialize(name, enum)
		for _, encoding := range e.cfg.Encodings {
			e.emitEncodingSerialize(encoding)
			e.emitEncodingDeserialize(name, encoding)
		}
	}
	e.emitEnumFromJSON(name, enum)
	e.w.Line("dynamic toJson();")

	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()

	for _, variant := range enum.Variants {
		e.emitVariant(name, variant)
	}
}

// emitEnumDeserialize writes the tag dispatcher. An unrecognized tag is a
// decode failure, never a default construction.
func (e *fileEmitter) emitEnumDeserialize(name string, enum format.Enum) {
	e.w.Linef("static %s deserialize(BinaryDeserializer deserializer) {", name)
	e.w.Indent()
	e.w.Line("int index = deserializer.deserialize_variant_index();")
	e.w.Line("switch (index) {")
	e.w.Indent()
	for _, variant := range enum.Variants {
		e.w.Linef("case %d:", variant.Index)
		e.w.Indent()
		e.w.Linef("return %s.load(deserializer);", variantClassName(name, variant.Name))
		e.w.Unindent()
	}
	e.w.Line("default:")
	e.w.Indent()
	e.w.Linef("throw Exception('Unknown variant index for %s: ' + index.toString());", name)
	e.w.Unindent()
	e.w.Line("}")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

// emitEnumFromJSON dispatches on the "type" discriminator key written by the
// variant toJson methods.
func (e *fileEmitter) emitEnumFromJSON(name string, enum format.Enum) {
	e.w.Linef("static %s fromJson(dynamic json) {", name)
	e.w.Indent()
	e.w.Line("final type = json['type'] as int;")
	e.w.Line("switch (type) {")
	e.w.Indent()
	for _, variant := range enum.Variants {
		e.w.Linef("case %d:", variant.Index)
		e.w.Indent()
		e.w.Linef("return %s.loadJson(json);", variantClassName(name, variant.Name))
		e.w.Unindent()
	}
	e.w.Line("default:")
	e.w.Indent()
	e.w.Linef("throw Exception('Unknown type for %s: ' + type.toString());", name)
	e.w.Unindent()
	e.w.Line("}")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

// emitVariant reuses class emission for one variant of the enum.
func (e *fileEmitter) emitVariant(base string, variant format.Variant) {
	name := variantClassName(base, variant.Name)
	ctx := &variantContext{Base: base, Index: variant.Index, ActualName: variant.Name}
	switch t := variant.Value.(type) {
	case format.VariantUnit:
		e.emitClass(name, nil, false, ctx)
	case format.VariantNewType:
		e.emitClass(name, []format.Named{{Name: "value", Value: t.Value}}, false, ctx)
	case format.VariantTuple:
		e.emitClass(name, synthesizeNames(t.Fields), false, ctx)
	case format.VariantStruct:
		e.emitClass(name, t.Fields, false, ctx)
	}
}

func variantClassName(base, variant string) string {
	return base + emit.CamelCase(variant) + "Item"
}
