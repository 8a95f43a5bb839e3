package format

import (
	"fmt"
	"strings"
)

// Signature returns a deterministic string encoding the structural shape of
// f, including all nested element shapes. Two formats share a signature iff
// they are structurally identical, which makes the signature the dedup key
// for generated helpers and a stable identifier inside helper names (it only
// contains [a-z0-9_]). Named references are folded into that alphabet behind
// an "id_" prefix so a container named OptionU32 cannot collide with the
// option_u32 shape.
func Signature(f Format) string {
	switch t := f.(type) {
	case Primitive:
		return string(t)
	case TypeName:
		return "id_" + foldName(string(t))
	case Option:
		return "option_" + Signature(t.Inner)
	case Seq:
		return "vector_" + Signature(t.Element)
	case Array:
		return fmt.Sprintf("array%d_%s_array", t.Size, Signature(t.Element))
	case Map:
		return fmt.Sprintf("map_%s_to_%s", Signature(t.Key), Signature(t.Value))
	case Tuple:
		parts := make([]string, len(t.Elements))
		for i, element := range t.Elements {
			parts[i] = Signature(element)
		}
		return fmt.Sprintf("tuple%d_%s", len(t.Elements), strings.Join(parts, "_"))
	case Variable:
		// Rejected by Validate before any signature is computed.
		return "unresolved"
	default:
		return "unknown"
	}
}

// foldName lowers a container name into the signature alphabet, marking
// camel-case word boundaries with underscores. Characters outside
// [A-Za-z0-9_] also become underscores.
func foldName(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// NeedsHelper reports whether a format's (de)serialization is emitted as a
// shared helper routine rather than a direct primitive or method call.
func NeedsHelper(f Format) bool {
	switch f.(type) {
	case Option, Seq, Array, Map, Tuple:
		return true
	default:
		return false
	}
}
