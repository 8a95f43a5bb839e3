package format

import (
	"errors"
	"strings"
	"testing"
)

func validRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	r.MustAdd("Account", Struct{Fields: []Named{
		{Name: "balance", Value: U64},
		{Name: "label", Value: Option{Inner: Str}},
	}})
	r.MustAdd("Transfer", Struct{Fields: []Named{
		{Name: "from", Value: TypeName("Account")},
		{Name: "to", Value: TypeName("Account")},
	}})
	return r
}

func TestValidateAcceptsClosedRegistry(t *testing.T) {
	if err := Validate(validRegistry(t), nil); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsPlaceholder(t *testing.T) {
	r := NewRegistry()
	r.MustAdd("Broken", Struct{Fields: []Named{{Name: "x", Value: Variable{}}}})

	err := Validate(r, nil)
	assertSchemaError(t, err, "Broken", "unresolved format placeholder")
}

func TestValidateRejectsDanglingReference(t *testing.T) {
	r := NewRegistry()
	r.MustAdd("Holder", NewTypeStruct{Value: TypeName("Missing")})

	err := Validate(r, nil)
	assertSchemaError(t, err, "Holder", `dangling reference to "Missing"`)
}

func TestValidateAllowsExternalReference(t *testing.T) {
	r := NewRegistry()
	r.MustAdd("Holder", NewTypeStruct{Value: TypeName("External")})

	err := Validate(r, map[string]struct{}{"External": {}})
	if err != nil {
		t.Fatalf("Validate with external declaration: %v", err)
	}
}

func TestValidateRejectsDuplicateVariantTag(t *testing.T) {
	r := NewRegistry()
	r.MustAdd("Choice", Enum{Variants: []Variant{
		{Index: 0, Name: "A", Value: VariantUnit{}},
		{Index: 0, Name: "B", Value: VariantUnit{}},
	}})

	err := Validate(r, nil)
	assertSchemaError(t, err, "Choice", "duplicate variant tag 0")
}

func TestValidateRejectsDuplicateFieldName(t *testing.T) {
	r := NewRegistry()
	r.MustAdd("Pair", Struct{Fields: []Named{
		{Name: "x", Value: U8},
		{Name: "x", Value: U16},
	}})

	err := Validate(r, nil)
	assertSchemaError(t, err, "Pair", `duplicate field name "x"`)
}

func TestValidateRejectsNonPositiveArraySize(t *testing.T) {
	r := NewRegistry()
	r.MustAdd("Block", NewTypeStruct{Value: Array{Element: U8, Size: 0}})

	err := Validate(r, nil)
	assertSchemaError(t, err, "Block", "fixed array size 0 is not positive")
}

func TestValidateChecksVariantFields(t *testing.T) {
	r := NewRegistry()
	r.MustAdd("Event", Enum{Variants: []Variant{
		{Index: 0, Name: "Created", Value: VariantStruct{Fields: []Named{
			{Name: "at", Value: U64},
			{Name: "by", Value: Variable{}},
		}}},
	}})

	err := Validate(r, nil)
	assertSchemaError(t, err, "Event", "unresolved format placeholder")
}

func assertSchemaError(t *testing.T, err error, container, detail string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a schema error, got nil")
	}
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
	if schemaErr.Container != container {
		t.Fatalf("container = %q, want %q", schemaErr.Container, container)
	}
	if !strings.Contains(schemaErr.Detail, detail) {
		t.Fatalf("detail = %q, want it to contain %q", schemaErr.Detail, detail)
	}
}

func TestRegistryOrderAndDuplicates(t *testing.T) {
	r := NewRegistry()
	r.MustAdd("B", UnitStruct{})
	r.MustAdd("A", UnitStruct{})
	r.MustAdd("C", UnitStruct{})

	names := r.Names()
	if len(names) != 3 || names[0] != "B" || names[1] != "A" || names[2] != "C" {
		t.Fatalf("Names() = %v, want insertion order [B A C]", names)
	}

	if err := r.Add("A", UnitStruct{}); err == nil {
		t.Fatal("expected duplicate container name to be rejected")
	}
	if err := r.Add("", UnitStruct{}); err == nil {
		t.Fatal("expected empty container name to be rejected")
	}
}
