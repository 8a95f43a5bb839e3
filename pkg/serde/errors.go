package serde

import "fmt"

// DecodeError reports malformed input detected while reading: a truncated
// buffer, an unknown variant tag, map keys out of canonical order, trailing
// bytes, or a non-minimal length expression. Malformed input is never
// repaired silently.
type DecodeError struct {
	Detail string
}

func (e *DecodeError) Error() string {
	return "serde: decode: " + e.Detail
}

// NewDecodeError builds a DecodeError from a format string. Generated code
// and the encoding runtimes use it for every decode-side invariant
// violation.
func NewDecodeError(format string, args ...any) error {
	return &DecodeError{Detail: fmt.Sprintf(format, args...)}
}
