package gen

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseEncodings(t *testing.T) {
	got, err := ParseEncodings("bincode, bcs,")
	if err != nil {
		t.Fatalf("ParseEncodings() error: %v", err)
	}
	if diff := cmp.Diff([]Encoding{Bincode, BCS}, got); diff != "" {
		t.Fatalf("encodings mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEncodingsRejectsUnknownName(t *testing.T) {
	if _, err := ParseEncodings("bincode,foo"); err == nil || !strings.Contains(err.Error(), `"foo"`) {
		t.Fatalf("want error naming the unknown encoding, got %v", err)
	}
	if _, err := ParseEncoding("cbor"); err == nil {
		t.Fatal("expected error for unknown encoding")
	}
}
