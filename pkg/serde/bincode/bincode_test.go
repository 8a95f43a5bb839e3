package bincode

import (
	"bytes"
	"testing"

	"github.com/goliatone/go-wiregen/pkg/serde"
)

func TestLengthIsFixedWidth(t *testing.T) {
	s := NewSerializer()
	if err := s.SerializeLen(3); err != nil {
		t.Fatalf("SerializeLen: %v", err)
	}
	want := []byte{3, 0, 0, 0, 0, 0, 0, 0}
	if got := s.GetBytes(); !bytes.Equal(got, want) {
		t.Fatalf("SerializeLen(3) = %x, want %x", got, want)
	}
}

func TestVariantIndexIsFixedWidth(t *testing.T) {
	s := NewSerializer()
	if err := s.SerializeVariantIndex(2); err != nil {
		t.Fatalf("SerializeVariantIndex: %v", err)
	}
	want := []byte{2, 0, 0, 0}
	if got := s.GetBytes(); !bytes.Equal(got, want) {
		t.Fatalf("SerializeVariantIndex(2) = %x, want %x", got, want)
	}

	d := NewDeserializer(want)
	index, err := d.DeserializeVariantIndex()
	if err != nil || index != 2 {
		t.Fatalf("DeserializeVariantIndex = %d, %v", index, err)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	s := NewSerializer()
	if err := s.SerializeBytes([]byte{0xca, 0xfe}); err != nil {
		t.Fatalf("SerializeBytes: %v", err)
	}
	d := NewDeserializer(s.GetBytes())
	got, err := d.DeserializeBytes()
	if err != nil {
		t.Fatalf("DeserializeBytes: %v", err)
	}
	if !bytes.Equal(got, []byte{0xca, 0xfe}) {
		t.Fatalf("DeserializeBytes = %x", got)
	}
}

func TestLengthLargerThanInputFails(t *testing.T) {
	// Claims 200 bytes follow; none do.
	d := NewDeserializer([]byte{200, 0, 0, 0, 0, 0, 0, 0})
	if _, err := d.DeserializeBytes(); err == nil {
		t.Fatal("expected oversized length to be rejected")
	}
}

func TestMapOrderingPrimitivesAreNoOps(t *testing.T) {
	s := NewSerializer()
	if err := s.SerializeU8(9); err != nil {
		t.Fatalf("SerializeU8: %v", err)
	}
	if err := s.SerializeU8(1); err != nil {
		t.Fatalf("SerializeU8: %v", err)
	}
	s.SortMapEntries([]uint64{0, 1})
	if got := s.GetBytes(); !bytes.Equal(got, []byte{9, 1}) {
		t.Fatalf("SortMapEntries reordered bincode output: %x", got)
	}

	d := NewDeserializer([]byte{9, 1})
	err := d.CheckThatKeySlicesAreIncreasing(
		serde.Slice{Start: 0, End: 1}, serde.Slice{Start: 1, End: 2})
	if err != nil {
		t.Fatalf("bincode must not enforce key order, got %v", err)
	}
}
