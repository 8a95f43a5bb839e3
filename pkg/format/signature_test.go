package format

import "testing"

func TestSignature(t *testing.T) {
	cases := []struct {
		name   string
		format Format
		want   string
	}{
		{"primitive", U64, "u64"},
		{"type name", TypeName("Account"), "id_account"},
		{"camel-case type name", TypeName("BlockHeader"), "id_block_header"},
		{"option", Option{Inner: U64}, "option_u64"},
		{"option of string", Option{Inner: Str}, "option_str"},
		{"nested option", Option{Inner: Seq{Element: Bool}}, "option_vector_bool"},
		{"sequence", Seq{Element: Str}, "vector_str"},
		{"fixed array", Array{Element: U8, Size: 32}, "array32_u8_array"},
		{"map", Map{Key: Str, Value: U32}, "map_str_to_u32"},
		{"tuple", Tuple{Elements: []Format{Str, U64}}, "tuple2_str_u64"},
		{
			"deep composite",
			Map{Key: Tuple{Elements: []Format{U8, U8}}, Value: Seq{Element: Option{Inner: TypeName("Event")}}},
			"map_tuple2_u8_u8_to_vector_option_id_event",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Signature(tc.format); got != tc.want {
				t.Fatalf("Signature() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSignatureTypeNameCannotShadowShape(t *testing.T) {
	shape := Signature(Seq{Element: Option{Inner: U32}})
	named := Signature(Seq{Element: TypeName("OptionU32")})
	if shape == named {
		t.Fatalf("container name shadows shape signature: both %q", shape)
	}
}

func TestSignatureDistinguishesShapes(t *testing.T) {
	a := Signature(Option{Inner: U64})
	b := Signature(Option{Inner: Str})
	if a == b {
		t.Fatalf("expected distinct signatures, both %q", a)
	}
	if c := Signature(Option{Inner: U64}); c != a {
		t.Fatalf("expected identical signatures for identical shapes, got %q and %q", a, c)
	}
}

func TestNeedsHelper(t *testing.T) {
	if NeedsHelper(U64) {
		t.Fatal("primitives must not route through helpers")
	}
	if NeedsHelper(TypeName("Account")) {
		t.Fatal("type references must not route through helpers")
	}
	for _, f := range []Format{
		Option{Inner: U64},
		Seq{Element: Str},
		Array{Element: U8, Size: 4},
		Map{Key: Str, Value: Bool},
		Tuple{Elements: []Format{U8, Str}},
	} {
		if !NeedsHelper(f) {
			t.Fatalf("expected %q to need a helper", Signature(f))
		}
	}
}

func TestVisitReachesNestedShapes(t *testing.T) {
	var visited []string
	f := Map{Key: Str, Value: Seq{Element: Option{Inner: U64}}}
	err := Visit(f, func(node Format) error {
		visited = append(visited, Signature(node))
		return nil
	})
	if err != nil {
		t.Fatalf("Visit: %v", err)
	}
	want := []string{
		"map_str_to_vector_option_u64",
		"str",
		"vector_option_u64",
		"option_u64",
		"u64",
	}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited[%d] = %q, want %q (full: %v)", i, visited[i], want[i], visited)
		}
	}
}
