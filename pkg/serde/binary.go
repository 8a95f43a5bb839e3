package serde

import (
	"bytes"
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// BinarySerializer implements the primitives every binary encoding shares:
// fixed-width little-endian integers, IEEE-754 floats, presence tags, and
// the container depth guard. Encoding packages embed it and add the
// length/variant-tag/string primitives plus map-entry sorting.
type BinarySerializer struct {
	Buffer               *bytes.Buffer
	containerDepthBudget uint64
}

// NewBinarySerializer creates a serializer allowing at most maxContainerDepth
// nested containers. Pass math.MaxUint64 for unbounded encodings.
func NewBinarySerializer(maxContainerDepth uint64) *BinarySerializer {
	return &BinarySerializer{
		Buffer:               new(bytes.Buffer),
		containerDepthBudget: maxContainerDepth,
	}
}

func (s *BinarySerializer) SerializeBool(value bool) error {
	if value {
		return s.Buffer.WriteByte(1)
	}
	return s.Buffer.WriteByte(0)
}

func (s *BinarySerializer) SerializeUnit(value struct{}) error {
	return nil
}

// SerializeChar writes the rune as a little-endian u32 code point.
func (s *BinarySerializer) SerializeChar(value rune) error {
	return s.SerializeU32(uint32(value))
}

func (s *BinarySerializer) SerializeF32(value float32) error {
	return s.SerializeU32(math.Float32bits(value))
}

func (s *BinarySerializer) SerializeF64(value float64) error {
	return s.SerializeU64(math.Float64bits(value))
}

func (s *BinarySerializer) SerializeU8(value uint8) error {
	return s.Buffer.WriteByte(value)
}

func (s *BinarySerializer) SerializeU16(value uint16) error {
	return binary.Write(s.Buffer, binary.LittleEndian, value)
}

func (s *BinarySerializer) SerializeU32(value uint32) error {
	return binary.Write(s.Buffer, binary.LittleEndian, value)
}

func (s *BinarySerializer) SerializeU64(value uint64) error {
	return binary.Write(s.Buffer, binary.LittleEndian, value)
}

func (s *BinarySerializer) SerializeU128(value Uint128) error {
	if err := s.SerializeU64(value.Low); err != nil {
		return err
	}
	return s.SerializeU64(value.High)
}

func (s *BinarySerializer) SerializeI8(value int8) error {
	return s.SerializeU8(uint8(value))
}

func (s *BinarySerializer) SerializeI16(value int16) error {
	return s.SerializeU16(uint16(value))
}

func (s *BinarySerializer) SerializeI32(value int32) error {
	return s.SerializeU32(uint32(value))
}

func (s *BinarySerializer) SerializeI64(value int64) error {
	return s.SerializeU64(uint64(value))
}

func (s *BinarySerializer) SerializeI128(value Int128) error {
	if err := s.SerializeU64(value.Low); err != nil {
		return err
	}
	return s.SerializeU64(uint64(value.High))
}

func (s *BinarySerializer) SerializeOptionTag(value bool) error {
	return s.SerializeBool(value)
}

func (s *BinarySerializer) GetBufferOffset() uint64 {
	return uint64(s.Buffer.Len())
}

func (s *BinarySerializer) IncreaseContainerDepth() error {
	if s.containerDepthBudget == 0 {
		return NewDecodeError("exceeded maximum container depth")
	}
	s.containerDepthBudget--
	return nil
}

func (s *BinarySerializer) DecreaseContainerDepth() {
	s.containerDepthBudget++
}

func (s *BinarySerializer) GetBytes() []byte {
	out := make([]byte, s.Buffer.Len())
	copy(out, s.Buffer.Bytes())
	return out
}

// BinaryDeserializer is the reading counterpart of BinarySerializer. It
// keeps the full input around so canonical map-ordering checks can compare
// key byte ranges after the fact.
type BinaryDeserializer struct {
	Input                []byte
	pos                  uint64
	containerDepthBudget uint64
}

// NewBinaryDeserializer wraps input for reading.
func NewBinaryDeserializer(input []byte, maxContainerDepth uint64) *BinaryDeserializer {
	return &BinaryDeserializer{
		Input:                input,
		containerDepthBudget: maxContainerDepth,
	}
}

// Read consumes exactly n bytes, failing with a DecodeError on truncated
// input. The returned slice aliases the input buffer.
func (d *BinaryDeserializer) Read(n uint64) ([]byte, error) {
	if d.GetRemainingBytes() < n {
		return nil, NewDecodeError("input is truncated: need %d bytes, have %d", n, d.GetRemainingBytes())
	}
	out := d.Input[d.pos : d.pos+n]
	d.pos += n
	return out, nil
}

func (d *BinaryDeserializer) DeserializeBool() (bool, error) {
	b, err := d.Read(1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, NewDecodeError("invalid bool byte 0x%02x", b[0])
	}
}

func (d *BinaryDeserializer) DeserializeUnit() (struct{}, error) {
	return struct{}{}, nil
}

func (d *BinaryDeserializer) DeserializeChar() (rune, error) {
	code, err := d.DeserializeU32()
	if err != nil {
		return 0, err
	}
	if code > utf8.MaxRune {
		return 0, NewDecodeError("invalid character code point %d", code)
	}
	return rune(code), nil
}

func (d *BinaryDeserializer) DeserializeF32() (float32, error) {
	bits, err := d.DeserializeU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

func (d *BinaryDeserializer) DeserializeF64() (float64, error) {
	bits, err := d.DeserializeU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

func (d *BinaryDeserializer) DeserializeU8() (uint8, error) {
	b, err := d.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *BinaryDeserializer) DeserializeU16() (uint16, error) {
	b, err := d.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (d *BinaryDeserializer) DeserializeU32() (uint32, error) {
	b, err := d.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *BinaryDeserializer) DeserializeU64() (uint64, error) {
	b, err := d.Read(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (d *BinaryDeserializer) DeserializeU128() (Uint128, error) {
	low, err := d.DeserializeU64()
	if err != nil {
		return Uint128{}, err
	}
	high, err := d.DeserializeU64()
	if err != nil {
		return Uint128{}, err
	}
	return Uint128{High: high, Low: low}, nil
}

func (d *BinaryDeserializer) DeserializeI8() (int8, error) {
	v, err := d.DeserializeU8()
	return int8(v), err
}

func (d *BinaryDeserializer) DeserializeI16() (int16, error) {
	v, err := d.DeserializeU16()
	return int16(v), err
}

func (d *BinaryDeserializer) DeserializeI32() (int32, error) {
	v, err := d.DeserializeU32()
	return int32(v), err
}

func (d *BinaryDeserializer) DeserializeI64() (int64, error) {
	v, err := d.DeserializeU64()
	return int64(v), err
}

func (d *BinaryDeserializer) DeserializeI128() (Int128, error) {
	low, err := d.DeserializeU64()
	if err != nil {
		return Int128{}, err
	}
	high, err := d.DeserializeU64()
	if err != nil {
		return Int128{}, err
	}
	return Int128{High: int64(high), Low: low}, nil
}

func (d *BinaryDeserializer) DeserializeOptionTag() (bool, error) {
	return d.DeserializeBool()
}

func (d *BinaryDeserializer) GetBufferOffset() uint64 {
	return d.pos
}

func (d *BinaryDeserializer) GetRemainingBytes() uint64 {
	return uint64(len(d.Input)) - d.pos
}

func (d *BinaryDeserializer) IncreaseContainerDepth() error {
	if d.containerDepthBudget == 0 {
		return NewDecodeError("exceeded maximum container depth")
	}
	d.containerDepthBudget--
	return nil
}

func (d *BinaryDeserializer) DecreaseContainerDepth() {
	d.containerDepthBudget++
}

// CompareKeySlices implements the canonical ordering check over the raw
// input: key2's bytes must compare strictly greater than key1's,
// lexicographically. Composite keys fall under the same rule since the
// comparison is over encoded bytes, whatever the key format.
func (d *BinaryDeserializer) CompareKeySlices(key1, key2 Slice) error {
	if bytes.Compare(d.Input[key1.Start:key1.End], d.Input[key2.Start:key2.End]) >= 0 {
		return NewDecodeError("map keys are not in canonical order")
	}
	return nil
}
