//
// circ_adder.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuits

import (
	"fmt"

	"github.com/markkurossi/oheap/circuit"
)

// NewHalfAdder creates a half adder returning the sum and carry
// wires of a+b.
func NewHalfAdder(cc *Builder, a, b circuit.Wire) (s, c circuit.Wire) {
	// S = XOR(A, B)
	s = cc.XOR(a, b)
	// C = AND(A, B)
	c = cc.AND(a, b)
	return
}

// NewFullAdder creates a full adder returning the sum and carry wires
// of a+b+cin.
func NewFullAdder(cc *Builder, a, b, cin circuit.Wire) (s, cout circuit.Wire) {
	// s = a XOR b XOR cin
	// cout = cin XOR ((a XOR cin) AND (b XOR cin)).

	// w1 = XOR(b, cin)
	w1 := cc.XOR(b, cin)

	// s = XOR(a, w1)
	s = cc.XOR(a, w1)

	// w2 = XOR(a, cin)
	w2 := cc.XOR(a, cin)

	// w3 = AND(w1, w2)
	w3 := cc.AND(w1, w2)

	// cout = XOR(cin, w3)
	cout = cc.XOR(cin, w3)
	return
}

func addWithCarry(cc *Builder, x, y []circuit.Wire, cin circuit.Wire) []circuit.Wire {
	z := make([]circuit.Wire, len(x))
	for i := 0; i < len(x); i++ {
		if i+1 < len(x) {
			z[i], cin = NewFullAdder(cc, x[i], y[i], cin)
		} else {
			// N+N=N, overflow, drop carry bit.
			z[i] = cc.XOR(x[i], cc.XOR(y[i], cin))
		}
	}
	return z
}

// NewAdder creates an adder circuit implementing x+y modulo
// 2^len(x). The arguments must have the same width.
func NewAdder(cc *Builder, x, y []circuit.Wire) ([]circuit.Wire, error) {
	if len(x) != len(y) || len(x) == 0 {
		return nil, fmt.Errorf("invalid adder arguments: x=%d, y=%d",
			len(x), len(y))
	}
	return addWithCarry(cc, x, y, cc.ZeroWire()), nil
}

// NewSubtractor creates a subtractor circuit implementing x-y modulo
// 2^len(x) as x+^y+1.
func NewSubtractor(cc *Builder, x, y []circuit.Wire) ([]circuit.Wire, error) {
	if len(x) != len(y) || len(x) == 0 {
		return nil, fmt.Errorf("invalid subtractor arguments: x=%d, y=%d",
			len(x), len(y))
	}
	ny := make([]circuit.Wire, len(y))
	for i, w := range y {
		ny[i] = cc.INV(w)
	}
	return addWithCarry(cc, x, ny, cc.OneWire()), nil
}

// NewArrayMultiplier creates a multiplier circuit implementing x*y
// modulo 2^len(x). This function implements Array Multiplier Circuit
// truncated to the argument width.
func NewArrayMultiplier(cc *Builder, x, y []circuit.Wire) ([]circuit.Wire, error) {
	if len(x) != len(y) || len(x) == 0 {
		return nil, fmt.Errorf("invalid multiplier arguments: x=%d, y=%d",
			len(x), len(y))
	}
	n := len(x)
	result := cc.Const(0, n)

	for i := 0; i < n; i++ {
		partial := make([]circuit.Wire, n)
		for j := 0; j < n; j++ {
			if j < i {
				partial[j] = cc.ZeroWire()
			} else {
				partial[j] = cc.AND(x[j-i], y[i])
			}
		}
		result = addWithCarry(cc, result, partial, cc.ZeroWire())
	}
	return result, nil
}
