package bcs

import (
	"bytes"
	"errors"
	"testing"

	"github.com/goliatone/go-wiregen/pkg/serde"
)

func TestUleb128Lengths(t *testing.T) {
	cases := []struct {
		value uint64
		bytes []byte
	}{
		{0, []byte{0x00}},
		{3, []byte{0x03}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{3000, []byte{0xb8, 0x17}},
	}
	for _, tc := range cases {
		s := NewSerializer()
		if err := s.SerializeLen(tc.value); err != nil {
			t.Fatalf("SerializeLen(%d): %v", tc.value, err)
		}
		if got := s.GetBytes(); !bytes.Equal(got, tc.bytes) {
			t.Fatalf("SerializeLen(%d) = %x, want %x", tc.value, got, tc.bytes)
		}

		d := NewDeserializer(tc.bytes)
		got, err := d.DeserializeLen()
		if err != nil {
			t.Fatalf("DeserializeLen(%x): %v", tc.bytes, err)
		}
		if got != tc.value {
			t.Fatalf("DeserializeLen(%x) = %d, want %d", tc.bytes, got, tc.value)
		}
	}
}

func TestUleb128RejectsNonMinimalForm(t *testing.T) {
	// 0x80 0x00 spells zero in two bytes; the minimal form is one byte.
	d := NewDeserializer([]byte{0x80, 0x00})
	_, err := d.DeserializeLen()
	assertDecodeError(t, err)
}

func TestUleb128RejectsOverflow(t *testing.T) {
	d := NewDeserializer([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0x01})
	_, err := d.DeserializeVariantIndex()
	assertDecodeError(t, err)
}

func TestStrRoundTrip(t *testing.T) {
	s := NewSerializer()
	if err := s.SerializeStr("héllo"); err != nil {
		t.Fatalf("SerializeStr: %v", err)
	}
	d := NewDeserializer(s.GetBytes())
	got, err := d.DeserializeStr()
	if err != nil {
		t.Fatalf("DeserializeStr: %v", err)
	}
	if got != "héllo" {
		t.Fatalf("DeserializeStr = %q", got)
	}
	if d.GetRemainingBytes() != 0 {
		t.Fatalf("%d bytes remain after full read", d.GetRemainingBytes())
	}
}

func TestSortMapEntriesProducesIncreasingKeys(t *testing.T) {
	// Serialize three u8→u8 entries with keys out of order, recording the
	// offset before each entry the way generated map helpers do.
	s := NewSerializer()
	var offsets []uint64
	for _, entry := range [][2]uint8{{9, 0}, {1, 1}, {5, 2}} {
		offsets = append(offsets, s.GetBufferOffset())
		if err := s.SerializeU8(entry[0]); err != nil {
			t.Fatalf("serialize key: %v", err)
		}
		if err := s.SerializeU8(entry[1]); err != nil {
			t.Fatalf("serialize value: %v", err)
		}
	}
	s.SortMapEntries(offsets)

	want := []byte{1, 1, 5, 2, 9, 0}
	if got := s.GetBytes(); !bytes.Equal(got, want) {
		t.Fatalf("sorted entries = %x, want %x", got, want)
	}
}

func TestCheckThatKeySlicesAreIncreasing(t *testing.T) {
	d := NewDeserializer([]byte{1, 2})
	if err := d.CheckThatKeySlicesAreIncreasing(
		serde.Slice{Start: 0, End: 1}, serde.Slice{Start: 1, End: 2}); err != nil {
		t.Fatalf("increasing keys rejected: %v", err)
	}
	err := d.CheckThatKeySlicesAreIncreasing(
		serde.Slice{Start: 1, End: 2}, serde.Slice{Start: 0, End: 1})
	assertDecodeError(t, err)
}

func TestSerializeLenRejectsOversizedSequence(t *testing.T) {
	s := NewSerializer()
	if err := s.SerializeLen(MaxSequenceLength + 1); err == nil {
		t.Fatal("expected oversized length to be rejected")
	}
}

func TestContainerDepthLimit(t *testing.T) {
	s := NewSerializer()
	for i := 0; i < MaxContainerDepth; i++ {
		if err := s.IncreaseContainerDepth(); err != nil {
			t.Fatalf("depth %d rejected early: %v", i, err)
		}
	}
	if err := s.IncreaseContainerDepth(); err == nil {
		t.Fatalf("expected depth %d to exceed the limit", MaxContainerDepth+1)
	}
}

func assertDecodeError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a decode error, got nil")
	}
	var decodeErr *serde.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *serde.DecodeError, got %T: %v", err, err)
	}
}
