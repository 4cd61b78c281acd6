// Package index implements a compile-time-tagged, 1-based ordinal type
// shared by every positional index in the system (guardian, contest,
// contest option, ballot style, ciphertext), preventing off-by-one errors
// and cross-domain index confusion.
//
// Grounded on original_source/src/util/src/index.rs's Index<T> newtype;
// Go's generics stand in for the phantom-typed Rust newtype, since Go has
// no zero-sized phantom marker.
package index

import (
	"errors"
	"fmt"
)

// Max is the largest representable one-based index, 2^31 - 1.
const Max = 1<<31 - 1

// ErrOutOfRange is returned when a value falls outside [1, Max].
var ErrOutOfRange = errors.New("index: value out of range 1 <= n <= 2^31-1")

// Index is a 1-based ordinal tagged with a marker type T, so an
// Index[Guardian] cannot be accidentally compared with an Index[Contest].
type Index[T any] struct {
	v uint32
}

// FromOneBased validates and wraps a 1-based integer.
func FromOneBased[T any](n int) (Index[T], error) {
	if n < 1 || n > Max {
		return Index[T]{}, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return Index[T]{v: uint32(n)}, nil
}

// FromZeroBased validates and wraps a 0-based integer as a 1-based index.
func FromZeroBased[T any](n int) (Index[T], error) {
	return FromOneBased[T](n + 1)
}

// One returns the index 1.
func One[T any]() Index[T] { return Index[T]{v: 1} }

// Int returns the 1-based value as an int.
func (ix Index[T]) Int() int { return int(ix.v) }

// ZeroBased returns the 0-based value, for slice indexing.
func (ix Index[T]) ZeroBased() int { return int(ix.v) - 1 }

// Uint32 returns the raw 1-based value.
func (ix Index[T]) Uint32() uint32 { return ix.v }

// BigEndian4Bytes encodes the 1-based value as 4 big-endian bytes, the
// encoding used when an index enters hashed material (spec section 6).
func (ix Index[T]) BigEndian4Bytes() [4]byte {
	var b [4]byte
	b[0] = byte(ix.v >> 24)
	b[1] = byte(ix.v >> 16)
	b[2] = byte(ix.v >> 8)
	b[3] = byte(ix.v)
	return b
}

// Equal reports index equality.
func (ix Index[T]) Equal(o Index[T]) bool { return ix.v == o.v }

// String renders the 1-based value.
func (ix Index[T]) String() string { return fmt.Sprintf("%d", ix.v) }

// MarshalJSON renders the index as a plain JSON number.
func (ix Index[T]) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%d", ix.v)), nil
}

// UnmarshalJSON parses a JSON number as a 1-based index.
func (ix *Index[T]) UnmarshalJSON(b []byte) error {
	var n int
	if _, err := fmt.Sscanf(string(b), "%d", &n); err != nil {
		return err
	}
	v, err := FromOneBased[T](n)
	if err != nil {
		return err
	}
	*ix = v
	return nil
}
