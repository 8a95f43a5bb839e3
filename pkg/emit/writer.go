// Package emit provides the low-level source emission primitives shared by
// the language targets: an indentation-aware writer and identifier casing
// helpers.
package emit

import (
	"fmt"
	"strings"
)

// Writer accumulates generated source text with automatic indentation. Lines
// written while indented are prefixed with the configured unit once per
// level; blank lines stay blank.
type Writer struct {
	buf    strings.Builder
	unit   string
	levels int
}

// NewWriter creates a writer using unit as the per-level indentation string
// (for example two or four spaces, or a tab).
func NewWriter(unit string) *Writer {
	return &Writer{unit: unit}
}

// Indent increases the indentation level for subsequent lines.
func (w *Writer) Indent() {
	w.levels++
}

// Unindent decreases the indentation level. Unbalanced calls are a
// programming error in the emitter and panic immediately rather than
// producing silently misaligned output.
func (w *Writer) Unindent() {
	if w.levels == 0 {
		panic("emit: unbalanced Unindent")
	}
	w.levels--
}

// Linef writes one formatted line at the current indentation. Embedded
// newlines split into multiple lines, each indented.
func (w *Writer) Linef(format string, args ...any) {
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			w.buf.WriteByte('\n')
			continue
		}
		for i := 0; i < w.levels; i++ {
			w.buf.WriteString(w.unit)
		}
		w.buf.WriteString(line)
		w.buf.WriteByte('\n')
	}
}

// Line writes one literal line at the current indentation.
func (w *Writer) Line(text string) {
	w.Linef("%s", text)
}

// Blank writes an empty line.
func (w *Writer) Blank() {
	w.buf.WriteByte('\n')
}

// String returns everything written so far.
func (w *Writer) String() string {
	return w.buf.String()
}
