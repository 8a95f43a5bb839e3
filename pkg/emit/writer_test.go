package emit

import "testing"

func TestWriterIndentation(t *testing.T) {
	w := NewWriter("  ")
	w.Line("class Foo {")
	w.Indent()
	w.Line("int x;")
	w.Blank()
	w.Linef("int %s;", "y")
	w.Unindent()
	w.Line("}")

	want := "class Foo {\n  int x;\n\n  int y;\n}\n"
	if got := w.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriterSplitsEmbeddedNewlines(t *testing.T) {
	w := NewWriter("\t")
	w.Indent()
	w.Line("a\nb")

	want := "\ta\n\tb\n"
	if got := w.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriterUnbalancedUnindentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on unbalanced Unindent")
		}
	}()
	NewWriter("  ").Unindent()
}

func TestCamelCase(t *testing.T) {
	cases := map[string]string{
		"bincode":      "Bincode",
		"bcs":          "Bcs",
		"field_name":   "FieldName",
		"kebab-case":   "KebabCase",
		"alreadyCamel": "AlreadyCamel",
		"":             "",
	}
	for in, want := range cases {
		if got := CamelCase(in); got != want {
			t.Fatalf("CamelCase(%q) = %q, want %q", in, got, want)
		}
	}
	if got := LowerCamelCase("field_name"); got != "fieldName" {
		t.Fatalf("LowerCamelCase = %q, want fieldName", got)
	}
}

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"TransactionPayload": "transaction_payload",
		"Account":            "account",
		"already_snake":      "already_snake",
	}
	for in, want := range cases {
		if got := SnakeCase(in); got != want {
			t.Fatalf("SnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
