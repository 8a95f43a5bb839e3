// Package serde defines the runtime collaborator contract generated code is
// written against: primitive writers and readers, length and variant-tag
// primitives, buffer-offset introspection for the canonical map-ordering
// check, and the shared value types (Uint128, Int128, Option) that targets
// without native equivalents map onto.
//
// The sibling packages bincode and bcs supply the concrete encodings.
package serde

// Serializer writes primitive values to a growing byte buffer. One encoding
// supplies one implementation; generated Serialize methods call exactly one
// primitive per leaf format.
type Serializer interface {
	SerializeStr(value string) error

	SerializeBytes(value []byte) error

	SerializeBool(value bool) error

	SerializeUnit(value struct{}) error

	SerializeChar(value rune) error

	SerializeF32(value float32) error

	SerializeF64(value float64) error

	SerializeU8(value uint8) error

	SerializeU16(value uint16) error

	SerializeU32(value uint32) error

	SerializeU64(value uint64) error

	SerializeU128(value Uint128) error

	SerializeI8(value int8) error

	SerializeI16(value int16) error

	SerializeI32(value int32) error

	SerializeI64(value int64) error

	SerializeI128(value Int128) error

	// SerializeLen writes a sequence/map/string length prefix.
	SerializeLen(value uint64) error

	// SerializeVariantIndex writes an enum variant tag.
	SerializeVariantIndex(value uint32) error

	// SerializeOptionTag writes the one-byte presence tag of an optional.
	SerializeOptionTag(value bool) error

	// GetBufferOffset reports the number of bytes written so far. Map
	// serialization records it before each entry.
	GetBufferOffset() uint64

	// SortMapEntries reorders the just-written map entries, delimited by
	// offsets, so their serialized key bytes are strictly increasing.
	// Non-canonical encodings implement it as a no-op.
	SortMapEntries(offsets []uint64)

	// IncreaseContainerDepth guards against runaway recursion in encodings
	// that bound nesting. DecreaseContainerDepth must be called on the way
	// out.
	IncreaseContainerDepth() error

	DecreaseContainerDepth()

	// GetBytes finalizes the buffer.
	GetBytes() []byte
}

// Deserializer reads primitive values from a byte buffer.
type Deserializer interface {
	DeserializeStr() (string, error)

	DeserializeBytes() ([]byte, error)

	DeserializeBool() (bool, error)

	DeserializeUnit() (struct{}, error)

	DeserializeChar() (rune, error)

	DeserializeF32() (float32, error)

	DeserializeF64() (float64, error)

	DeserializeU8() (uint8, error)

	DeserializeU16() (uint16, error)

	DeserializeU32() (uint32, error)

	DeserializeU64() (uint64, error)

	DeserializeU128() (Uint128, error)

	DeserializeI8() (int8, error)

	DeserializeI16() (int16, error)

	DeserializeI32() (int32, error)

	DeserializeI64() (int64, error)

	DeserializeI128() (Int128, error)

	DeserializeLen() (uint64, error)

	DeserializeVariantIndex() (uint32, error)

	DeserializeOptionTag() (bool, error)

	// GetBufferOffset reports the number of bytes consumed so far. Map
	// deserialization records it around each key read.
	GetBufferOffset() uint64

	// GetRemainingBytes reports how many input bytes are still unread; the
	// per-encoding "decode from bytes" entry points fail when it is nonzero
	// after the value is fully read.
	GetRemainingBytes() uint64

	// CheckThatKeySlicesAreIncreasing fails unless key2's byte range
	// compares strictly greater than key1's. Non-canonical encodings
	// implement it as a no-op.
	CheckThatKeySlicesAreIncreasing(key1, key2 Slice) error

	IncreaseContainerDepth() error

	DecreaseContainerDepth()
}

// Slice marks the byte range [Start, End) a map key occupied in the buffer.
type Slice struct {
	Start uint64
	End   uint64
}
