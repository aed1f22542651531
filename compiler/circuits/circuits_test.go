//
// circuits_test.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuits

import (
	"math/big"
	"testing"

	"github.com/markkurossi/oheap/circuit"
)

const (
	bits = 8
)

type binaryFunc func(cc *Builder, x, y []circuit.Wire) ([]circuit.Wire, error)

func eval(t *testing.T, cc *Builder, x, y int64) int64 {
	circ := cc.Compile()
	mask := int64(1)<<bits - 1
	out, err := circ.Compute([]*big.Int{
		big.NewInt(x & mask),
		big.NewInt(y & mask),
	})
	if err != nil {
		t.Fatalf("Compute failed: %s", err)
	}
	return out[0].Int64()
}

func testBinary(t *testing.T, name string, f binaryFunc,
	expected func(x, y int64) int64) {

	values := []int64{0, 1, 2, 3, 7, 42, 127, 128, 200, 255}
	for _, x := range values {
		for _, y := range values {
			cc := NewBuilder(nil)
			xw := cc.Input("x", "uint8", bits)
			yw := cc.Input("y", "uint8", bits)
			r, err := f(cc, xw, yw)
			if err != nil {
				t.Fatalf("%s: %s", name, err)
			}
			cc.Output("r", "uint8", r)
			result := eval(t, cc, x, y)
			if result != expected(x, y)&0xff {
				t.Errorf("%s(%d,%d)=%d, expected %d", name, x, y, result,
					expected(x, y)&0xff)
			}
		}
	}
}

func TestAdder(t *testing.T) {
	testBinary(t, "add", NewAdder, func(x, y int64) int64 {
		return x + y
	})
}

func TestSubtractor(t *testing.T) {
	testBinary(t, "sub", NewSubtractor, func(x, y int64) int64 {
		return x - y
	})
}

func TestMultiplier(t *testing.T) {
	testBinary(t, "mul", NewArrayMultiplier, func(x, y int64) int64 {
		return x * y
	})
}

func bitFunc(f func(cc *Builder, x, y []circuit.Wire) circuit.Wire) binaryFunc {
	return func(cc *Builder, x, y []circuit.Wire) ([]circuit.Wire, error) {
		return []circuit.Wire{f(cc, x, y)}, nil
	}
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func TestComparators(t *testing.T) {
	testBinary(t, "lt", bitFunc(NewLtComparator), func(x, y int64) int64 {
		return b2i(x < y)
	})
	testBinary(t, "le", bitFunc(NewLeComparator), func(x, y int64) int64 {
		return b2i(x <= y)
	})
	testBinary(t, "gt", bitFunc(NewGtComparator), func(x, y int64) int64 {
		return b2i(x > y)
	})
	testBinary(t, "ge", bitFunc(NewGeComparator), func(x, y int64) int64 {
		return b2i(x >= y)
	})
	testBinary(t, "eq", bitFunc(NewEqComparator), func(x, y int64) int64 {
		return b2i(x == y)
	})
	testBinary(t, "neq", bitFunc(NewNeqComparator), func(x, y int64) int64 {
		return b2i(x != y)
	})
	testBinary(t, "slt",
		func(cc *Builder, x, y []circuit.Wire) ([]circuit.Wire, error) {
			r, err := NewSignedLtComparator(cc, x, y)
			return []circuit.Wire{r}, err
		},
		func(x, y int64) int64 {
			return b2i(int8(x) < int8(y))
		})
}

func TestMUX(t *testing.T) {
	for _, cond := range []int64{0, 1} {
		cc := NewBuilder(nil)
		c := cc.Input("c", "bool", 1)
		tw := cc.Input("t", "uint8", bits)
		fw := cc.Input("f", "uint8", bits)
		r, err := NewMUX(cc, c[0], tw, fw)
		if err != nil {
			t.Fatal(err)
		}
		cc.Output("r", "uint8", r)
		out, err := cc.Compile().Compute([]*big.Int{
			big.NewInt(cond), big.NewInt(17), big.NewInt(99),
		})
		if err != nil {
			t.Fatal(err)
		}
		expected := int64(99)
		if cond == 1 {
			expected = 17
		}
		if out[0].Int64() != expected {
			t.Errorf("mux(%d)=%v, expected %d", cond, out[0], expected)
		}
	}
}

func TestConstFold(t *testing.T) {
	cc := NewBuilder(nil)
	x := cc.Input("x", "bool", 1)[0]

	if cc.AND(x, cc.ZeroWire()) != cc.ZeroWire() {
		t.Errorf("AND(x,0) not folded")
	}
	if cc.OR(x, cc.ZeroWire()) != x {
		t.Errorf("OR(x,0) not folded")
	}
	if cc.XOR(x, x) != cc.ZeroWire() {
		t.Errorf("XOR(x,x) not folded")
	}
	if cc.INV(cc.OneWire()) != cc.ZeroWire() {
		t.Errorf("INV(1) not folded")
	}
	if cc.NumGates() != 0 {
		t.Errorf("folded gates emitted: %d", cc.NumGates())
	}

	// Adding a constant zero costs no AND gates.
	y := cc.Input("y", "uint8", bits)
	_, err := NewAdder(cc, y, cc.Const(0, bits))
	if err != nil {
		t.Fatal(err)
	}
	if cc.Stats[circuit.AND] != 0 {
		t.Errorf("x+0 emitted %d AND gates", cc.Stats[circuit.AND])
	}
}
