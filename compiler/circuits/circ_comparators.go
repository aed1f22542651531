//
// Copyright (c) 2020-2025 Markku Rossi
//
// All rights reserved.
//

package circuits

import (
	"fmt"

	"github.com/markkurossi/oheap/circuit"
)

// comparator tests if x>y if cin=0, and x>=y if cin=1. The arguments
// are unsigned.
func comparator(cc *Builder, cin circuit.Wire, x, y []circuit.Wire) circuit.Wire {
	x, y = cc.ZeroPad(x, y)

	for i := 0; i < len(x); i++ {
		w1 := cc.XNOR(cin, y[i])
		w2 := cc.XOR(cin, x[i])
		w3 := cc.AND(w1, w2)
		cin = cc.XOR(cin, w3)
	}
	return cin
}

// NewGtComparator tests if x>y.
func NewGtComparator(cc *Builder, x, y []circuit.Wire) circuit.Wire {
	return comparator(cc, cc.ZeroWire(), x, y)
}

// NewGeComparator tests if x>=y.
func NewGeComparator(cc *Builder, x, y []circuit.Wire) circuit.Wire {
	return comparator(cc, cc.OneWire(), x, y)
}

// NewLtComparator tests if x<y.
func NewLtComparator(cc *Builder, x, y []circuit.Wire) circuit.Wire {
	return comparator(cc, cc.ZeroWire(), y, x)
}

// NewLeComparator tests if x<=y.
func NewLeComparator(cc *Builder, x, y []circuit.Wire) circuit.Wire {
	return comparator(cc, cc.OneWire(), y, x)
}

// NewSignedLtComparator tests if x<y for two's complement arguments
// of equal width. The sign bits are flipped so that the unsigned
// comparator orders the values correctly.
func NewSignedLtComparator(cc *Builder, x, y []circuit.Wire) (circuit.Wire, error) {
	if len(x) != len(y) || len(x) == 0 {
		return 0, fmt.Errorf("invalid signed lt arguments: x=%d, y=%d",
			len(x), len(y))
	}
	n := len(x)
	fx := append([]circuit.Wire(nil), x...)
	fy := append([]circuit.Wire(nil), y...)
	fx[n-1] = cc.INV(x[n-1])
	fy[n-1] = cc.INV(y[n-1])

	return NewLtComparator(cc, fx, fy), nil
}

// NewNeqComparator tests if x!=y.
func NewNeqComparator(cc *Builder, x, y []circuit.Wire) circuit.Wire {
	x, y = cc.ZeroPad(x, y)

	c := cc.ZeroWire()
	for i := 0; i < len(x); i++ {
		c = cc.OR(c, cc.XOR(x[i], y[i]))
	}
	return c
}

// NewEqComparator tests if x==y.
func NewEqComparator(cc *Builder, x, y []circuit.Wire) circuit.Wire {
	return cc.INV(NewNeqComparator(cc, x, y))
}
