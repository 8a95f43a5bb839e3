package dart

import (
	"fmt"

	"github.com/goliatone/go-wiregen/pkg/format"
	"github.com/goliatone/go-wiregen/pkg/gen"
)

// emitHelpers writes the TraitHelpers class: one static serialize/deserialize
// pair per deduplicated composite shape, in signature order.
func (e *fileEmitter) emitHelpers(helpers []gen.Helper) {
	e.w.Line("class TraitHelpers {")
	e.w.Indent()
	for _, helper := range helpers {
		e.emitSerializeHelper(helper)
		e.emitDeserializeHelper(helper)
	}
	e.w.Unindent()
	e.w.Line("}")
}

func (e *fileEmitter) emitSerializeHelper(helper gen.Helper) {
	e.w.Linef("static void serialize_%s(%s value, BinarySerializer serializer) {", helper.Signature, e.typeExpression(helper.Format))
	e.w.Indent()

	switch t := helper.Format.(type) {
	case format.Option:
		e.w.Line("if (value.isPresent) {")
		e.w.Indent()
		e.w.Line("serializer.serialize_option_tag(true);")
		e.w.Line(e.serializeStatement("value.value", t.Inner))
		e.w.Unindent()
		e.w.Line("} else {")
		e.w.Indent()
		e.w.Line("serializer.serialize_option_tag(false);")
		e.w.Unindent()
		e.w.Line("}")

	case format.Seq:
		e.w.Line("serializer.serialize_len(value.length);")
		e.w.Linef("for (%s item in value) {", e.typeExpression(t.Element))
		e.w.Indent()
		e.w.Line(e.serializeStatement("item", t.Element))
		e.w.Unindent()
		e.w.Line("}")

	case format.Array:
		e.w.Linef("if (value.length != %d) {", t.Size)
		e.w.Indent()
		e.w.Linef("throw Exception('Invalid length for fixed array: ${value.length}, expected %d');", t.Size)
		e.w.Unindent()
		e.w.Line("}")
		e.w.Linef("for (%s item in value) {", e.typeExpression(t.Element))
		e.w.Indent()
		e.w.Line(e.serializeStatement("item", t.Element))
		e.w.Unindent()
		e.w.Line("}")

	case format.Map:
		e.w.Line("serializer.serialize_len(value.length);")
		e.w.Line("List<int> offsets = [];")
		e.w.Line("for (var entry in value.entries) {")
		e.w.Indent()
		e.w.Line("offsets.add(serializer.get_buffer_offset());")
		e.w.Line(e.serializeStatement("entry.key", t.Key))
		e.w.Line(e.serializeStatement("entry.value", t.Value))
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("serializer.sort_map_entries(offsets);")

	case format.Tuple:
		for i, element := range t.Elements {
			e.w.Line(e.serializeStatement(fmt.Sprintf("value.item%d", i+1), element))
		}

	default:
		panic(fmt.Sprintf("dart: no helper for %T", helper.Format))
	}

	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

func (e *fileEmitter) emitDeserializeHelper(helper gen.Helper) {
	typeExpr := e.typeExpression(helper.Format)
	e.w.Linef("static %s deserialize_%s(BinaryDeserializer deserializer) {", typeExpr, helper.Signature)
	e.w.Indent()

	switch t := helper.Format.(type) {
	case format.Option:
		e.w.Line("bool tag = deserializer.deserialize_option_tag();")
		e.w.Line("if (!tag) {")
		e.w.Indent()
		e.w.Line("return Optional.empty();")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Linef("return Optional.of(%s);", e.deserializeExpression(t.Inner))

	case format.Seq:
		e.w.Line("int length = deserializer.deserialize_len();")
		e.w.Linef("%s obj = [];", typeExpr)
		e.w.Line("for (int i = 0; i < length; i++) {")
		e.w.Indent()
		e.w.Linef("obj.add(%s);", e.deserializeExpression(t.Element))
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("return obj;")

	case format.Array:
		e.w.Linef("%s obj = [];", typeExpr)
		e.w.Linef("for (int i = 0; i < %d; i++) {", t.Size)
		e.w.Indent()
		e.w.Linef("obj.add(%s);", e.deserializeExpression(t.Element))
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("return obj;")

	case format.Map:
		e.w.Line("int length = deserializer.deserialize_len();")
		e.w.Linef("%s obj = {};", typeExpr)
		e.w.Line("int previousKeyStart = 0;")
		e.w.Line("int previousKeyEnd = 0;")
		e.w.Line("for (int i = 0; i < length; i++) {")
		e.w.Indent()
		e.w.Line("int keyStart = deserializer.get_buffer_offset();")
		e.w.Linef("%s key = %s;", e.typeExpression(t.Key), e.deserializeExpression(t.Key))
		e.w.Line("int keyEnd = deserializer.get_buffer_offset();")
		e.w.Line("if (i > 0) {")
		e.w.Indent()
		e.w.Line("deserializer.check_that_key_slices_are_increasing(")
		e.w.Indent()
		e.w.Line("Slice(previousKeyStart, previousKeyEnd), Slice(keyStart, keyEnd));")
		e.w.Unindent()
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("previousKeyStart = keyStart;")
		e.w.Line("previousKeyEnd = keyEnd;")
		e.w.Linef("%s value = %s;", e.typeExpression(t.Value), e.deserializeExpression(t.Value))
		e.w.Line("obj[key] = value;")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("return obj;")

	case format.Tuple:
		e.w.Linef("return %s(", typeExpr)
		e.w.Indent()
		for i, element := range t.Elements {
			suffix := ","
			if i == len(t.Elements)-1 {
				suffix = ");"
			}
			e.w.Linef("%s%s", e.deserializeExpression(element), suffix)
		}
		e.w.Unindent()

	default:
		panic(fmt.Sprintf("dart: no helper for %T", helper.Format))
	}

	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}
