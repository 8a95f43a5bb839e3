package serde

// Uint128 is an unsigned 128-bit integer. On the wire it is 16 bytes,
// little-endian: Low first, then High.
type Uint128 struct {
	High uint64
	Low  uint64
}

// Int128 is a signed 128-bit integer in two's complement, with the same wire
// layout as Uint128.
type Int128 struct {
	High int64
	Low  uint64
}

// FromUint64 widens a uint64 to Uint128.
func FromUint64(value uint64) Uint128 {
	return Uint128{Low: value}
}

// FromInt64 sign-extends an int64 to Int128.
func FromInt64(value int64) Int128 {
	if value < 0 {
		return Int128{High: -1, Low: uint64(value)}
	}
	return Int128{Low: uint64(value)}
}
