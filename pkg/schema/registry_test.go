package schema

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-wiregen/pkg/format"
)

const fleetDocument = `
Vehicle:
  STRUCT:
    - id: U64
    - tags:
        SEQ: STR
    - location:
        OPTION: U32
    - readings:
        MAP:
          KEY: STR
          VALUE: U64
    - checksum:
        TUPLEARRAY:
          CONTENT: U8
          SIZE: 16
VehicleId:
  NEWTYPESTRUCT: U64
Heartbeat: UNITSTRUCT
Pair:
  TUPLESTRUCT:
    - U8
    - STR
Command:
  ENUM:
    0:
      start: UNIT
    1:
      move:
        STRUCT:
          - dx: I32
    2:
      tag:
        NEWTYPE: STR
    3:
      pair:
        TUPLE:
          - U8
          - TYPENAME: VehicleId
`

func TestParseRegistry(t *testing.T) {
	doc := MustNewDocument(SourceFromBytes("fleet.yaml", []byte(fleetDocument)), []byte(fleetDocument))
	registry, err := ParseRegistry(doc)
	if err != nil {
		t.Fatalf("ParseRegistry() error: %v", err)
	}

	wantOrder := []string{"Vehicle", "VehicleId", "Heartbeat", "Pair", "Command"}
	if diff := cmp.Diff(wantOrder, registry.Names()); diff != "" {
		t.Fatalf("container order mismatch (-want +got):\n%s", diff)
	}

	vehicle, _ := registry.Get("Vehicle")
	wantVehicle := format.Struct{Fields: []format.Named{
		{Name: "id", Value: format.U64},
		{Name: "tags", Value: format.Seq{Element: format.Str}},
		{Name: "location", Value: format.Option{Inner: format.U32}},
		{Name: "readings", Value: format.Map{Key: format.Str, Value: format.U64}},
		{Name: "checksum", Value: format.Array{Element: format.U8, Size: 16}},
	}}
	if diff := cmp.Diff(format.ContainerFormat(wantVehicle), vehicle); diff != "" {
		t.Fatalf("Vehicle mismatch (-want +got):\n%s", diff)
	}

	if unit, _ := registry.Get("Heartbeat"); unit != (format.UnitStruct{}) {
		t.Fatalf("Heartbeat parsed as %T", unit)
	}

	command, _ := registry.Get("Command")
	wantCommand := format.Enum{Variants: []format.Variant{
		{Index: 0, Name: "start", Value: format.VariantUnit{}},
		{Index: 1, Name: "move", Value: format.VariantStruct{Fields: []format.Named{
			{Name: "dx", Value: format.I32},
		}}},
		{Index: 2, Name: "tag", Value: format.VariantNewType{Value: format.Str}},
		{Index: 3, Name: "pair", Value: format.VariantTuple{Fields: []format.Format{
			format.U8, format.TypeName("VehicleId"),
		}}},
	}}
	if diff := cmp.Diff(format.ContainerFormat(wantCommand), command); diff != "" {
		t.Fatalf("Command mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRegistryErrors(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "unknown container shape",
			doc:     "Thing:\n  BLOB: U8\n",
			wantErr: `unknown container shape "BLOB"`,
		},
		{
			name:    "unknown format",
			doc:     "Thing:\n  NEWTYPESTRUCT: U256\n",
			wantErr: `unknown format "U256"`,
		},
		{
			name:    "non integer variant tag",
			doc:     "Thing:\n  ENUM:\n    first:\n      a: UNIT\n",
			wantErr: "is not an unsigned integer",
		},
		{
			name:    "map missing value",
			doc:     "Thing:\n  NEWTYPESTRUCT:\n    MAP:\n      KEY: STR\n",
			wantErr: "MAP needs both KEY and VALUE",
		},
		{
			name:    "duplicate container",
			doc:     "Thing: UNITSTRUCT\nThing: UNITSTRUCT\n",
			wantErr: "", // yaml itself rejects duplicate mapping keys
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := MustNewDocument(SourceFromBytes(tc.name, []byte(tc.doc)), []byte(tc.doc))
			_, err := ParseRegistry(doc)
			if err == nil {
				t.Fatal("expected parse error")
			}
			if tc.wantErr != "" && !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadFromBytesSource(t *testing.T) {
	doc, err := Load(SourceFromBytes("inline", []byte("Thing: UNITSTRUCT\n")))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	registry, err := ParseRegistry(doc)
	if err != nil {
		t.Fatalf("ParseRegistry() error: %v", err)
	}
	if !registry.Has("Thing") {
		t.Fatal("Thing not registered")
	}
}
