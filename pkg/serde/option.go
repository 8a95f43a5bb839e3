package serde

import (
	"bytes"
	"encoding/json"
)

// Option is the explicit nullable wrapper generated Go types use for
// optional fields. The presence flag is distinct from the zero value of T,
// matching the one-byte presence tag on the wire; a nil pointer would
// conflate absence with a legitimately-nil value.
type Option[T any] struct {
	Present bool
	Value   T
}

// Some wraps a present value.
func Some[T any](value T) Option[T] {
	return Option[T]{Present: true, Value: value}
}

// None is the absent value.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.Value, o.Present
}

// MarshalJSON encodes a present value directly and an absent one as null.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.Present {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON treats null as absence and anything else as the inner value.
func (o *Option[T]) UnmarshalJSON(input []byte) error {
	if bytes.Equal(bytes.TrimSpace(input), []byte("null")) {
		*o = Option[T]{}
		return nil
	}
	var value T
	if err := json.Unmarshal(input, &value); err != nil {
		return err
	}
	*o = Some(value)
	return nil
}
