package serde

import (
	"encoding/json"
	"testing"
)

func TestOptionJSONRoundTrip(t *testing.T) {
	present, err := json.Marshal(Some(uint32(7)))
	if err != nil {
		t.Fatalf("marshal present: %v", err)
	}
	if string(present) != "7" {
		t.Fatalf("present value not flattened: %s", present)
	}

	absent, err := json.Marshal(None[uint32]())
	if err != nil {
		t.Fatalf("marshal absent: %v", err)
	}
	if string(absent) != "null" {
		t.Fatalf("absent value not null: %s", absent)
	}

	var decoded Option[uint32]
	if err := json.Unmarshal([]byte("42"), &decoded); err != nil {
		t.Fatalf("unmarshal present: %v", err)
	}
	if value, ok := decoded.Get(); !ok || value != 42 {
		t.Fatalf("got (%d, %v), want (42, true)", value, ok)
	}

	if err := json.Unmarshal([]byte("null"), &decoded); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if _, ok := decoded.Get(); ok {
		t.Fatal("null did not clear presence")
	}
}
