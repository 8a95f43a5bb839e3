package golang

import (
	"fmt"

	"github.com/goliatone/go-wiregen/pkg/format"
	"github.com/goliatone/go-wiregen/pkg/gen"
)

// emitHelpers writes one serialize/deserialize pair per deduplicated
// composite shape, in signature order. Nested composites call each other's
// helpers, so sequence<optional<T>> is one loop calling the option helper.
func (e *fileEmitter) emitHelpers(helpers []gen.Helper) {
	for _, helper := range helpers {
		e.emitSerializeHelper(helper)
		e.emitDeserializeHelper(helper)
	}
}

func (e *fileEmitter) emitSerializeHelper(helper gen.Helper) {
	name := helperName("serialize", helper.Signature)
	e.w.Linef("func %s(value %s, serializer serde.Serializer) error {", name, e.typeExpression(helper.Format))
	e.w.Indent()

	switch t := helper.Format.(type) {
	case format.Option:
		e.w.Line("if err := serializer.SerializeOptionTag(value.Present); err != nil {")
		e.w.Indent()
		e.w.Line("return err")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("if value.Present {")
		e.w.Indent()
		e.serializeField("value.Value", t.Inner)
		e.w.Unindent()
		e.w.Line("}")

	case format.Seq:
		e.w.Line("if err := serializer.SerializeLen(uint64(len(value))); err != nil {")
		e.w.Indent()
		e.w.Line("return err")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("for _, item := range value {")
		e.w.Indent()
		e.serializeField("item", t.Element)
		e.w.Unindent()
		e.w.Line("}")

	case format.Array:
		e.std["fmt"] = struct{}{}
		e.w.Linef("if len(value) != %d {", t.Size)
		e.w.Indent()
		e.w.Linef(`return fmt.Errorf("invalid length for fixed array: %%d, expected %d", len(value))`, t.Size)
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("for _, item := range value {")
		e.w.Indent()
		e.serializeField("item", t.Element)
		e.w.Unindent()
		e.w.Line("}")

	case format.Map:
		e.w.Line("if err := serializer.SerializeLen(uint64(len(value))); err != nil {")
		e.w.Indent()
		e.w.Line("return err")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("offsets := make([]uint64, 0, len(value))")
		e.w.Line("for key, item := range value {")
		e.w.Indent()
		e.w.Line("offsets = append(offsets, serializer.GetBufferOffset())")
		e.serializeField("key", t.Key)
		e.serializeField("item", t.Value)
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("serializer.SortMapEntries(offsets)")

	case format.Tuple:
		for i, element := range t.Elements {
			e.serializeField(fmt.Sprintf("value.Field%d", i), element)
		}

	default:
		panic(fmt.Sprintf("golang: no helper for %T", helper.Format))
	}

	e.w.Line("return nil")
	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}

func (e *fileEmitter) emitDeserializeHelper(helper gen.Helper) {
	name := helperName("deserialize", helper.Signature)
	typeExpr := e.typeExpression(helper.Format)
	e.w.Linef("func %s(deserializer serde.Deserializer) (%s, error) {", name, typeExpr)
	e.w.Indent()

	switch t := helper.Format.(type) {
	case format.Option:
		e.w.Line("tag, err := deserializer.DeserializeOptionTag()")
		e.w.Line("if err != nil {")
		e.w.Indent()
		e.w.Linef("return %s{}, err", typeExpr)
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("if !tag {")
		e.w.Indent()
		e.w.Linef("return %s{}, nil", typeExpr)
		e.w.Unindent()
		e.w.Line("}")
		e.w.Linef("val, err := %s", e.deserializeCall(t.Inner))
		e.w.Line("if err != nil {")
		e.w.Indent()
		e.w.Linef("return %s{}, err", typeExpr)
		e.w.Unindent()
		e.w.Line("}")
		if e.boxedOption(t) {
			e.w.Line("return serde.Some(&val), nil")
		} else {
			e.w.Line("return serde.Some(val), nil")
		}

	case format.Seq:
		e.w.Line("length, err := deserializer.DeserializeLen()")
		e.w.Line("if err != nil {")
		e.w.Indent()
		e.w.Line("return nil, err")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Linef("obj := make(%s, length)", typeExpr)
		e.w.Line("for i := range obj {")
		e.w.Indent()
		e.w.Linef("val, err := %s", e.deserializeCall(t.Element))
		e.w.Line("if err != nil {")
		e.w.Indent()
		e.w.Line("return nil, err")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("obj[i] = val")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("return obj, nil")

	case format.Array:
		e.w.Linef("obj := make(%s, %d)", typeExpr, t.Size)
		e.w.Line("for i := range obj {")
		e.w.Indent()
		e.w.Linef("val, err := %s", e.deserializeCall(t.Element))
		e.w.Line("if err != nil {")
		e.w.Indent()
		e.w.Line("return nil, err")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("obj[i] = val")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("return obj, nil")

	case format.Map:
		e.w.Line("length, err := deserializer.DeserializeLen()")
		e.w.Line("if err != nil {")
		e.w.Indent()
		e.w.Line("return nil, err")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Linef("obj := make(%s, length)", typeExpr)
		e.w.Line("previousKeyStart := uint64(0)")
		e.w.Line("previousKeyEnd := uint64(0)")
		e.w.Line("for i := uint64(0); i < length; i++ {")
		e.w.Indent()
		e.w.Line("keyStart := deserializer.GetBufferOffset()")
		e.w.Linef("key, err := %s", e.deserializeCall(t.Key))
		e.w.Line("if err != nil {")
		e.w.Indent()
		e.w.Line("return nil, err")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("keyEnd := deserializer.GetBufferOffset()")
		e.w.Line("if i > 0 {")
		e.w.Indent()
		e.w.Line("if err := deserializer.CheckThatKeySlicesAreIncreasing(")
		e.w.Indent()
		e.w.Line("serde.Slice{Start: previousKeyStart, End: previousKeyEnd},")
		e.w.Line("serde.Slice{Start: keyStart, End: keyEnd}); err != nil {")
		e.w.Unindent()
		e.w.Indent()
		e.w.Line("return nil, err")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("previousKeyStart = keyStart")
		e.w.Line("previousKeyEnd = keyEnd")
		e.w.Linef("val, err := %s", e.deserializeCall(t.Value))
		e.w.Line("if err != nil {")
		e.w.Indent()
		e.w.Line("return nil, err")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("obj[key] = val")
		e.w.Unindent()
		e.w.Line("}")
		e.w.Line("return obj, nil")

	case format.Tuple:
		e.w.Linef("var obj %s", typeExpr)
		for i, element := range t.Elements {
			e.deserializeField(fmt.Sprintf("obj.Field%d", i), element)
		}
		e.w.Line("return obj, nil")

	default:
		panic(fmt.Sprintf("golang: no helper for %T", helper.Format))
	}

	e.w.Unindent()
	e.w.Line("}")
	e.w.Blank()
}
