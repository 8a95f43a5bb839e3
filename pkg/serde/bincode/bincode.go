// Package bincode implements the bincode wire encoding: fixed-width
// little-endian lengths (u64) and variant tags (u32), map entries in
// iteration order, unbounded nesting. It is not a canonical encoding; the
// map-ordering primitives are deliberate no-ops.
package bincode

import (
	"math"

	"github.com/goliatone/go-wiregen/pkg/serde"
)

// Serializer writes bincode bytes.
type Serializer struct {
	*serde.BinarySerializer
}

var _ serde.Serializer = (*Serializer)(nil)

// NewSerializer creates a bincode serializer.
func NewSerializer() *Serializer {
	return &Serializer{BinarySerializer: serde.NewBinarySerializer(math.MaxUint64)}
}

func (s *Serializer) SerializeLen(value uint64) error {
	return s.SerializeU64(value)
}

func (s *Serializer) SerializeVariantIndex(value uint32) error {
	return s.SerializeU32(value)
}

func (s *Serializer) SerializeStr(value string) error {
	return s.SerializeBytes([]byte(value))
}

func (s *Serializer) SerializeBytes(value []byte) error {
	if err := s.SerializeLen(uint64(len(value))); err != nil {
		return err
	}
	_, err := s.Buffer.Write(value)
	return err
}

// SortMapEntries is a no-op: bincode does not define a canonical entry
// order.
func (s *Serializer) SortMapEntries(offsets []uint64) {}

// Deserializer reads bincode bytes.
type Deserializer struct {
	*serde.BinaryDeserializer
}

var _ serde.Deserializer = (*Deserializer)(nil)

// NewDeserializer wraps input for reading.
func NewDeserializer(input []byte) *Deserializer {
	return &Deserializer{BinaryDeserializer: serde.NewBinaryDeserializer(input, math.MaxUint64)}
}

func (d *Deserializer) DeserializeLen() (uint64, error) {
	length, err := d.DeserializeU64()
	if err != nil {
		return 0, err
	}
	if length > d.GetRemainingBytes() {
		return 0, serde.NewDecodeError("length %d is larger than the remaining input", length)
	}
	return length, nil
}

func (d *Deserializer) DeserializeVariantIndex() (uint32, error) {
	return d.DeserializeU32()
}

func (d *Deserializer) DeserializeStr() (string, error) {
	raw, err := d.DeserializeBytes()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (d *Deserializer) DeserializeBytes() ([]byte, error) {
	length, err := d.DeserializeLen()
	if err != nil {
		return nil, err
	}
	raw, err := d.Read(length)
	if err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, raw)
	return out, nil
}

// CheckThatKeySlicesAreIncreasing is a no-op: bincode accepts map entries in
// any order.
func (d *Deserializer) CheckThatKeySlicesAreIncreasing(key1, key2 serde.Slice) error {
	return nil
}
