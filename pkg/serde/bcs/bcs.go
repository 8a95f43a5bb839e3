// Package bcs implements the canonical wire encoding: ULEB128 lengths in
// minimal form, map entries sorted by their serialized key bytes, bounded
// sequence length and container depth. Encoding the same logical value
// always yields the same bytes, and decoding verifies the canonical
// properties instead of correcting violations.
package bcs

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/goliatone/go-wiregen/pkg/serde"
)

// MaxSequenceLength bounds decoded sequence, map, string, and byte lengths.
const MaxSequenceLength = (1 << 31) - 1

// MaxContainerDepth bounds the nesting of containers in a single value.
const MaxContainerDepth = 500

// Serializer writes canonical bytes.
type Serializer struct {
	*serde.BinarySerializer
}

var _ serde.Serializer = (*Serializer)(nil)

// NewSerializer creates a canonical serializer.
func NewSerializer() *Serializer {
	return &Serializer{BinarySerializer: serde.NewBinarySerializer(MaxContainerDepth)}
}

func (s *Serializer) SerializeLen(value uint64) error {
	if value > MaxSequenceLength {
		return fmt.Errorf("bcs: length %d exceeds the maximum sequence length", value)
	}
	return s.serializeU32AsUleb128(uint32(value))
}

func (s *Serializer) SerializeVariantIndex(value uint32) error {
	return s.serializeU32AsUleb128(value)
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

func (s *Serializer) serializeU32AsUleb128(value uint32) error {
	for value >= 0x80 {
		if err := s.Buffer.WriteByte(byte(value&0x7f) | 0x80); err != nil {
			return err
		}
		value >>= 7
	}
	return s.Buffer.WriteByte(byte(value))
}

// SortMapEntries rewrites the just-serialized map entries so their key bytes
// are strictly increasing. offsets holds the buffer offset recorded before
// each entry; the final entry runs to the current end of the buffer.
func (s *Serializer) SortMapEntries(offsets []uint64) {
	if len(offsets) <= 1 {
		return
	}
	data := s.Buffer.Bytes()
	start := offsets[0]
	entries := make([][]byte, len(offsets))
	for i, begin := range offsets {
		end := uint64(len(data))
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		entry := make([]byte, end-begin)
		copy(entry, data[begin:end])
		entries[i] = entry
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i], entries[j]) < 0
	})
	cursor := start
	for _, entry := range entries {
		copy(data[cursor:], entry)
		cursor += uint64(len(entry))
	}
}

// Deserializer reads canonical bytes.
type Deserializer struct {
	*serde.BinaryDeserializer
}

var _ serde.Deserializer = (*Deserializer)(nil)

// NewDeserializer wraps input for reading.
func NewDeserializer(input []byte) *Deserializer {
	return &Deserializer{BinaryDeserializer: serde.NewBinaryDeserializer(input, MaxContainerDepth)}
}

func (d *Deserializer) DeserializeLen() (uint64, error) {
	length, err := d.deserializeUleb128AsU32()
	if err != nil {
		return 0, err
	}
	if uint64(length) > MaxSequenceLength {
		return 0, serde.NewDecodeError("length %d is too large", length)
	}
	return uint64(length), nil
}

func (d *Deserializer) DeserializeVariantIndex() (uint32, error) {
	return d.deserializeUleb128AsU32()
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

func (d *Deserializer) deserializeUleb128AsU32() (uint32, error) {
	var value uint64
	for shift := 0; shift < 32; shift += 7 {
		b, err := d.DeserializeU8()
		if err != nil {
			return 0, err
		}
		digit := uint64(b & 0x7f)
		value |= digit << shift
		if value > (1<<32)-1 {
			return 0, serde.NewDecodeError("overflow while parsing uleb128-encoded uint32")
		}
		if b < 0x80 {
			if shift > 0 && digit == 0 {
				return 0, serde.NewDecodeError("uleb128 expression was not minimal in size")
			}
			return uint32(value), nil
		}
	}
	return 0, serde.NewDecodeError("overflow while parsing uleb128-encoded uint32")
}

// CheckThatKeySlicesAreIncreasing enforces canonical map ordering over the
// raw key bytes.
func (d *Deserializer) CheckThatKeySlicesAreIncreasing(key1, key2 serde.Slice) error {
	return d.CompareKeySlices(key1, key2)
}
