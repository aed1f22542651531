//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package secret defines the secret value primitives the oblivious
// data structures are written against. A Backend builds the
// operations symbolically; no operation reveals a value unless
// explicitly requested with Reveal.
package secret

import (
	"fmt"

	"github.com/markkurossi/oheap/types"
)

// Value is an opaque handle to a secret integer.
type Value interface {
	fmt.Stringer
	Type() types.Info
}

// Bit is an opaque handle to a secret bit.
type Bit interface {
	fmt.Stringer
	SecretBit()
}

// Backend implements secret value arithmetic. All values passed to a
// backend must have been created by the same backend. Arithmetic
// wraps modulo the backend type width.
type Backend interface {
	// Type returns the secret value type of the backend.
	Type() types.Info

	// Input creates a secret input value provided by a party.
	Input(name string, v int64) (Value, error)

	// Int coerces a public constant into a secret value. The
	// function fails if the type cannot represent the value.
	Int(v int64) (Value, error)

	// Const is like Int but it panics if the value overflows.
	Const(v int64) Value

	// Bool creates a public constant bit.
	Bool(v bool) Bit

	Add(a, b Value) Value
	Sub(a, b Value) Value
	Mul(a, b Value) Value

	// Lt tests a<b for signed values over the full type width.
	Lt(a, b Value) Bit

	// Eq tests a==b over the full type width.
	Eq(a, b Value) Bit

	// LtN tests a<b for the unsigned values of the bits least
	// significant bits of the arguments.
	LtN(a, b Value, bits int) Bit

	// EqN tests a==b for the bits least significant bits of the
	// arguments.
	EqN(a, b Value, bits int) Bit

	// Select returns t if c is set and f otherwise.
	Select(c Bit, t, f Value) Value

	// SelectBit returns t if c is set and f otherwise.
	SelectBit(c Bit, t, f Bit) Bit

	And(a, b Bit) Bit
	Or(a, b Bit) Bit
	Xor(a, b Bit) Bit
	Not(a Bit) Bit

	// Bits decomposes the n least significant bits of v, least
	// significant bit first.
	Bits(v Value, n int) []Bit

	// FromBit converts the bit into a value 0 or 1.
	FromBit(b Bit) Value

	// Random returns a uniformly random secret value of bits bits.
	Random(bits int) Value

	// RandomBit returns a uniformly random secret bit.
	RandomBit() Bit

	// Reveal opens the value. The result is public.
	Reveal(v Value) int64

	// RevealBit opens the bit. The result is public.
	RevealBit(b Bit) bool

	// Counters returns the backend operation counters.
	Counters() *Counters
}

// Zero returns the constant value 0 of the backend type.
func Zero(b Backend) Value {
	return b.Const(0)
}

// For calls the body exactly n times with indices 0...n-1. The
// iteration count n must be a public constant.
func For(n int, body func(i int)) {
	for i := 0; i < n; i++ {
		body(i)
	}
}

// Fold threads the state through exactly n steps. The iteration count
// n must be a public constant.
func Fold[S any](n int, state S, step func(state S, i int) S) S {
	for i := 0; i < n; i++ {
		state = step(state, i)
	}
	return state
}
