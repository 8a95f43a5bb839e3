package schema

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-wiregen/pkg/format"
)

// ParseRegistry decodes a registry document into the container table the
// generator consumes. The document is a YAML mapping of container name to
// container shape, using the uppercase shape tags of serialized reflection
// registries (STRUCT, NEWTYPESTRUCT, ENUM, OPTION, SEQ, and so on). Parsing
// goes through yaml.Node rather than plain maps so the container order in the
// document is preserved in the registry.
func ParseRegistry(doc Document) (*format.Registry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc.Raw(), &root); err != nil {
		return nil, fmt.Errorf("schema: parse %s: %w", doc.Source().Location(), err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("schema: %s: document is empty", doc.Source().Location())
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema: %s: document root must be a mapping of container names", doc.Source().Location())
	}

	registry := format.NewRegistry()
	for i := 0; i < len(mapping.Content); i += 2 {
		name := mapping.Content[i].Value
		container, err := parseContainer(mapping.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("schema: %s: container %q: %w", doc.Source().Location(), name, err)
		}
		if err := registry.Add(name, container); err != nil {
			return nil, fmt.Errorf("schema: %s: %w", doc.Source().Location(), err)
		}
	}
	return registry, nil
}

func parseContainer(node *yaml.Node) (format.ContainerFormat, error) {
	if node.Kind == yaml.ScalarNode {
		if strings.EqualFold(node.Value, "UNITSTRUCT") {
			return format.UnitStruct{}, nil
		}
		return nil, fmt.Errorf("unknown container shape %q", node.Value)
	}
	tag, value, err := singleEntry(node, "container shape")
	if err != nil {
		return nil, err
	}

	switch strings.ToUpper(tag) {
	case "NEWTYPESTRUCT":
		inner, err := parseFormat(value)
		if err != nil {
			return nil, err
		}
		return format.NewTypeStruct{Value: inner}, nil
	case "TUPLESTRUCT":
		fields, err := parseFormatSequence(value)
		if err != nil {
			return nil, err
		}
		return format.TupleStruct{Fields: fields}, nil
	case "STRUCT":
		fields, err := parseFields(value)
		if err != nil {
			return nil, err
		}
		return format.Struct{Fields: fields}, nil
	case "ENUM":
		variants, err := parseVariants(value)
		if err != nil {
			return nil, err
		}
		return format.Enum{Variants: variants}, nil
	default:
		return nil, fmt.Errorf("unknown container shape %q", tag)
	}
}

func parseFields(node *yaml.Node) ([]format.Named, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("struct fields must be a sequence, got %s", nodeKind(node))
	}
	fields := make([]format.Named, 0, len(node.Content))
	for _, entry := range node.Content {
		name, value, err := singleEntry(entry, "field")
		if err != nil {
			return nil, err
		}
		f, err := parseFormat(value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields = append(fields, format.Named{Name: name, Value: f})
	}
	return fields, nil
}

func parseVariants(node *yaml.Node) ([]format.Variant, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("enum variants must be a mapping of tags, got %s", nodeKind(node))
	}
	variants := make([]format.Variant, 0, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		index, err := strconv.ParseUint(node.Content[i].Value, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("variant tag %q is not an unsigned integer", node.Content[i].Value)
		}
		name, value, err := singleEntry(node.Content[i+1], "variant")
		if err != nil {
			return nil, err
		}
		vf, err := parseVariantFormat(value)
		if err != nil {
			return nil, fmt.Errorf("variant %q: %w", name, err)
		}
		variants = append(variants, format.Variant{Index: uint32(index), Name: name, Value: vf})
	}
	return variants, nil
}

func parseVariantFormat(node *yaml.Node) (format.VariantFormat, error) {
	if node.Kind == yaml.ScalarNode {
		if strings.EqualFold(node.Value, "UNIT") {
			return format.VariantUnit{}, nil
		}
		return nil, fmt.Errorf("unknown variant shape %q", node.Value)
	}
	tag, value, err := singleEntry(node, "variant shape")
	if err != nil {
		return nil, err
	}

	switch strings.ToUpper(tag) {
	case "NEWTYPE":
		inner, err := parseFormat(value)
		if err != nil {
			return nil, err
		}
		return format.VariantNewType{Value: inner}, nil
	case "TUPLE":
		fields, err := parseFormatSequence(value)
		if err != nil {
			return nil, err
		}
		return format.VariantTuple{Fields: fields}, nil
	case "STRUCT":
		fields, err := parseFields(value)
		if err != nil {
			return nil, err
		}
		return format.VariantStruct{Fields: fields}, nil
	default:
		return nil, fmt.Errorf("unknown variant shape %q", tag)
	}
}

var primitiveTags = map[string]format.Primitive{
	"UNIT":  format.Unit,
	"BOOL":  format.Bool,
	"I8":    format.I8,
	"I16":   format.I16,
	"I32":   format.I32,
	"I64":   format.I64,
	"I128":  format.I128,
	"U8":    format.U8,
	"U16":   format.U16,
	"U32":   format.U32,
	"U64":   format.U64,
	"U128":  format.U128,
	"F32":   format.F32,
	"F64":   format.F64,
	"CHAR":  format.Char,
	"STR":   format.Str,
	"BYTES": format.Bytes,
}

func parseFormat(node *yaml.Node) (format.Format, error) {
	if node.Kind == yaml.ScalarNode {
		if primitive, ok := primitiveTags[strings.ToUpper(node.Value)]; ok {
			return primitive, nil
		}
		return nil, fmt.Errorf("unknown format %q", node.Value)
	}
	tag, value, err := singleEntry(node, "format")
	if err != nil {
		return nil, err
	}

	switch strings.ToUpper(tag) {
	case "TYPENAME":
		if value.Kind != yaml.ScalarNode || value.Value == "" {
			return nil, fmt.Errorf("TYPENAME needs a container name")
		}
		return format.TypeName(value.Value), nil
	case "OPTION":
		inner, err := parseFormat(value)
		if err != nil {
			return nil, err
		}
		return format.Option{Inner: inner}, nil
	case "SEQ":
		element, err := parseFormat(value)
		if err != nil {
			return nil, err
		}
		return format.Seq{Element: element}, nil
	case "MAP":
		return parseMap(value)
	case "TUPLE":
		elements, err := parseFormatSequence(value)
		if err != nil {
			return nil, err
		}
		return format.Tuple{Elements: elements}, nil
	case "TUPLEARRAY":
		return parseArray(value)
	default:
		return nil, fmt.Errorf("unknown format %q", tag)
	}
}

func parseMap(node *yaml.Node) (format.Format, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("MAP needs KEY and VALUE entries, got %s", nodeKind(node))
	}
	var key, value format.Format
	for i := 0; i < len(node.Content); i += 2 {
		entry, err := parseFormat(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		switch strings.ToUpper(node.Content[i].Value) {
		case "KEY":
			key = entry
		case "VALUE":
			value = entry
		default:
			return nil, fmt.Errorf("unknown MAP entry %q", node.Content[i].Value)
		}
	}
	if key == nil || value == nil {
		return nil, fmt.Errorf("MAP needs both KEY and VALUE entries")
	}
	return format.Map{Key: key, Value: value}, nil
}

func parseArray(node *yaml.Node) (format.Format, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("TUPLEARRAY needs CONTENT and SIZE entries, got %s", nodeKind(node))
	}
	var element format.Format
	size := -1
	for i := 0; i < len(node.Content); i += 2 {
		switch strings.ToUpper(node.Content[i].Value) {
		case "CONTENT":
			parsed, err := parseFormat(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			element = parsed
		case "SIZE":
			parsed, err := strconv.Atoi(node.Content[i+1].Value)
			if err != nil {
				return nil, fmt.Errorf("TUPLEARRAY size %q is not an integer", node.Content[i+1].Value)
			}
			size = parsed
		default:
			return nil, fmt.Errorf("unknown TUPLEARRAY entry %q", node.Content[i].Value)
		}
	}
	if element == nil || size < 0 {
		return nil, fmt.Errorf("TUPLEARRAY needs both CONTENT and SIZE entries")
	}
	return format.Array{Element: element, Size: size}, nil
}

func parseFormatSequence(node *yaml.Node) ([]format.Format, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected a sequence of formats, got %s", nodeKind(node))
	}
	formats := make([]format.Format, 0, len(node.Content))
	for _, entry := range node.Content {
		f, err := parseFormat(entry)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// singleEntry unwraps the one-pair mapping YAML uses for tagged unions.
func singleEntry(node *yaml.Node, what string) (string, *yaml.Node, error) {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return "", nil, fmt.Errorf("%s must be a single-entry mapping, got %s", what, nodeKind(node))
	}
	return node.Content[0].Value, node.Content[1], nil
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	default:
		return "document"
	}
}
