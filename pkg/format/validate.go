package format

import "fmt"

// SchemaError reports a registry that cannot be trusted as generator input:
// an unresolved placeholder, a dangling type reference, or a duplicate
// tag/name. Generation aborts before writing any output.
type SchemaError struct {
	Container string
	Detail    string
}

func (e *SchemaError) Error() string {
	if e.Container == "" {
		return fmt.Sprintf("format: invalid schema: %s", e.Detail)
	}
	return fmt.Sprintf("format: invalid schema: container %q: %s", e.Container, e.Detail)
}

// Validate checks the registry invariants required by the generator: no
// Variable placeholder anywhere, every TypeName resolving to a registry entry
// or a declared external type, unique field and variant names, unique variant
// tags, and positive fixed-array sizes. external holds type names declared
// outside this registry (closed world otherwise).
func Validate(r *Registry, external map[string]struct{}) error {
	for _, name := range r.Names() {
		container, _ := r.Get(name)
		if err := validateContainer(r, external, name, container); err != nil {
			return err
		}
	}
	return nil
}

func validateContainer(r *Registry, external map[string]struct{}, name string, container ContainerFormat) error {
	if enum, ok := container.(Enum); ok {
		tags := make(map[uint32]struct{}, len(enum.Variants))
		names := make(map[string]struct{}, len(enum.Variants))
		for _, variant := range enum.Variants {
			if variant.Name == "" {
				return &SchemaError{Container: name, Detail: "variant name is required"}
			}
			if _, dup := tags[variant.Index]; dup {
				return &SchemaError{Container: name, Detail: fmt.Sprintf("duplicate variant tag %d", variant.Index)}
			}
			tags[variant.Index] = struct{}{}
			if _, dup := names[variant.Name]; dup {
				return &SchemaError{Container: name, Detail: fmt.Sprintf("duplicate variant name %q", variant.Name)}
			}
			names[variant.Name] = struct{}{}
			if fields, ok := variant.Value.(VariantStruct); ok {
				if err := validateFieldNames(name, fields.Fields); err != nil {
					return err
				}
			}
		}
	}
	if s, ok := container.(Struct); ok {
		if err := validateFieldNames(name, s.Fields); err != nil {
			return err
		}
	}
	return VisitContainer(container, func(f Format) error {
		switch t := f.(type) {
		case Variable:
			return &SchemaError{Container: name, Detail: "unresolved format placeholder"}
		case TypeName:
			if r.Has(string(t)) {
				return nil
			}
			if external != nil {
				if _, ok := external[string(t)]; ok {
					return nil
				}
			}
			return &SchemaError{Container: name, Detail: fmt.Sprintf("dangling reference to %q", string(t))}
		case Array:
			if t.Size <= 0 {
				return &SchemaError{Container: name, Detail: fmt.Sprintf("fixed array size %d is not positive", t.Size)}
			}
		}
		return nil
	})
}

func validateFieldNames(container string, fields []Named) error {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if field.Name == "" {
			return &SchemaError{Container: container, Detail: "field name is required"}
		}
		if _, dup := seen[field.Name]; dup {
			return &SchemaError{Container: container, Detail: fmt.Sprintf("duplicate field name %q", field.Name)}
		}
		seen[field.Name] = struct{}{}
	}
	return nil
}
