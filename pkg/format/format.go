package format

// Format describes the shape of a serializable value. The grammar is closed:
// the only implementations are the primitives plus Option, Seq, Array, Map,
// Tuple, TypeName, and the Variable placeholder. Consumers switch exhaustively
// over these; there is no open-ended dispatch.
type Format interface {
	isFormat()
}

// Primitive is a leaf format with a one-to-one mapping to a reader/writer
// primitive on the runtime serializer contract.
type Primitive string

const (
	Unit  Primitive = "unit"
	Bool  Primitive = "bool"
	I8    Primitive = "i8"
	I16   Primitive = "i16"
	I32   Primitive = "i32"
	I64   Primitive = "i64"
	I128  Primitive = "i128"
	U8    Primitive = "u8"
	U16   Primitive = "u16"
	U32   Primitive = "u32"
	U64   Primitive = "u64"
	U128  Primitive = "u128"
	F32   Primitive = "f32"
	F64   Primitive = "f64"
	Char  Primitive = "char"
	Str   Primitive = "str"
	Bytes Primitive = "bytes"
)

func (Primitive) isFormat() {}

// Option wraps a value that may be absent. On the wire it carries a one-byte
// presence tag followed by the inner value when present.
type Option struct {
	Inner Format
}

func (Option) isFormat() {}

// Seq is an ordered, variable-length collection; a length prefix precedes the
// elements on the wire.
type Seq struct {
	Element Format
}

func (Seq) isFormat() {}

// Array is an ordered collection whose size is fixed at generation time. The
// size is never written to the wire; encoders assert it, decoders assume it.
type Array struct {
	Element Format
	Size    int
}

func (Array) isFormat() {}

// Map is a key-unique associative collection. The canonical encoding requires
// entries ordered by their serialized key bytes.
type Map struct {
	Key   Format
	Value Format
}

func (Map) isFormat() {}

// Tuple is a fixed-arity, positionally-encoded group of values. No length or
// tag is written.
type Tuple struct {
	Elements []Format
}

func (Tuple) isFormat() {}

// TypeName references another container by registry name (or an externally
// declared type supplied through the generator configuration). Serialization
// routes through the referenced type's own methods, which is what lets
// mutually recursive containers terminate.
type TypeName string

func (TypeName) isFormat() {}

// Variable is the unresolved placeholder used by upstream schema inference.
// It is not valid generator input: validation rejects any registry that still
// contains one.
type Variable struct{}

func (Variable) isFormat() {}

// Named pairs a field or variant name with its format. Tuple positions use
// synthesized names (field0, field1, ...).
type Named struct {
	Name  string
	Value Format
}

// ContainerFormat describes the shape of a named container in the registry.
type ContainerFormat interface {
	isContainer()
}

// UnitStruct is a container with no data.
type UnitStruct struct{}

func (UnitStruct) isContainer() {}

// NewTypeStruct wraps exactly one format. It is transparent in the JSON
// bridge: its JSON form is the bare inner value, not an object.
type NewTypeStruct struct {
	Value Format
}

func (NewTypeStruct) isContainer() {}

// TupleStruct holds ordered unnamed fields; emission synthesizes field names.
type TupleStruct struct {
	Fields []Format
}

func (TupleStruct) isContainer() {}

// Struct holds ordered named fields. Declaration order is load-bearing: it is
// the exact order fields cross the wire.
type Struct struct {
	Fields []Named
}

func (Struct) isContainer() {}

// Enum is a closed tagged union. Variants keep declaration order; the Index
// of each variant is the integer tag written before its fields.
type Enum struct {
	Variants []Variant
}

func (Enum) isContainer() {}

// Variant is one alternative of an Enum.
type Variant struct {
	Index uint32
	Name  string
	Value VariantFormat
}

// VariantFormat mirrors ContainerFormat minus nested enums.
type VariantFormat interface {
	isVariant()
}

// VariantUnit is a variant with no fields.
type VariantUnit struct{}

func (VariantUnit) isVariant() {}

// VariantNewType wraps exactly one format.
type VariantNewType struct {
	Value Format
}

func (VariantNewType) isVariant() {}

// VariantTuple holds ordered unnamed fields.
type VariantTuple struct {
	Fields []Format
}

func (VariantTuple) isVariant() {}

// VariantStruct holds ordered named fields.
type VariantStruct struct {
	Fields []Named
}

func (VariantStruct) isVariant() {}
