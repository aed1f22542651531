//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package gates

import (
	"testing"

	"github.com/markkurossi/oheap/secret"
	"github.com/markkurossi/oheap/types"
)

var seed = []byte("gates-test-seed-0123456789abcdef")

func newBackend(t *testing.T, typ types.Info) *Backend {
	prg, err := secret.NewPRG(seed)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(typ, nil, prg)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

var values = []int64{0, 1, 2, 5, 100, -1, -7, -128, 127}

func TestArithmetic(t *testing.T) {
	typ := types.Info{Type: types.TInt, Bits: 8}
	b := newBackend(t, typ)

	for _, av := range values {
		a, err := b.Input("a", av)
		if err != nil {
			t.Fatal(err)
		}
		for _, bv := range values {
			c := b.Const(bv)

			if v := b.Reveal(b.Add(a, c)); v != typ.Truncate(av+bv) {
				t.Errorf("%d+%d=%d", av, bv, v)
			}
			if v := b.Reveal(b.Sub(a, c)); v != typ.Truncate(av-bv) {
				t.Errorf("%d-%d=%d", av, bv, v)
			}
			if v := b.Reveal(b.Mul(a, c)); v != typ.Truncate(av*bv) {
				t.Errorf("%d*%d=%d", av, bv, v)
			}
			if v := b.RevealBit(b.Lt(a, c)); v != (av < bv) {
				t.Errorf("%d<%d=%v", av, bv, v)
			}
			if v := b.RevealBit(b.Eq(a, c)); v != (av == bv) {
				t.Errorf("%d==%d=%v", av, bv, v)
			}
			ua := uint64(av) & 0xf
			ub := uint64(bv) & 0xf
			if v := b.RevealBit(b.LtN(a, c, 4)); v != (ua < ub) {
				t.Errorf("LtN(%d, %d, 4)=%v", av, bv, v)
			}
			if v := b.RevealBit(b.EqN(a, c, 4)); v != (ua == ub) {
				t.Errorf("EqN(%d, %d, 4)=%v", av, bv, v)
			}
		}
	}
	if err := b.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestSelect(t *testing.T) {
	b := newBackend(t, types.Int16)
	x, _ := b.Input("x", 11)
	y, _ := b.Input("y", -22)

	for _, c := range []bool{false, true} {
		cond := b.Eq(x, b.Const(11))
		if !c {
			cond = b.Not(cond)
		}
		v := b.Reveal(b.Select(cond, x, y))
		if c && v != 11 || !c && v != -22 {
			t.Errorf("Select(%v)=%d", c, v)
		}
		bit := b.RevealBit(b.SelectBit(cond, b.Bool(true), b.Bool(false)))
		if bit != c {
			t.Errorf("SelectBit(%v)=%v", c, bit)
		}
	}
	if err := b.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestBitsRandom(t *testing.T) {
	b := newBackend(t, types.Int16)
	r := b.Random(6)
	rv := b.Reveal(r)
	if rv < 0 || rv >= 64 {
		t.Fatalf("Random(6)=%d", rv)
	}
	bits := b.Bits(r, 6)
	var sum int64
	for i, bit := range bits {
		if b.RevealBit(bit) {
			sum |= 1 << i
		}
	}
	if sum != rv {
		t.Errorf("Bits: got %d, expected %d", sum, rv)
	}
	rb := b.RandomBit()
	v := b.Reveal(b.FromBit(rb))
	if v != 0 && v != 1 {
		t.Errorf("FromBit=%d", v)
	}
	if b.RevealBit(b.Xor(rb, rb)) {
		t.Errorf("x^x != 0")
	}
	if !b.RevealBit(b.Or(rb, b.Not(rb))) {
		t.Errorf("x|!x != 1")
	}
	if b.RevealBit(b.And(rb, b.Not(rb))) {
		t.Errorf("x&!x != 0")
	}
	if err := b.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	circ := b.Compile()
	if len(circ.Inputs) != len(b.Witness()) {
		t.Errorf("circuit has %d inputs, witness %d",
			len(circ.Inputs), len(b.Witness()))
	}
}

func TestVerifyMismatch(t *testing.T) {
	b := newBackend(t, types.Int16)
	x, _ := b.Input("x", 3)
	b.Reveal(b.Add(x, x))

	// Corrupt the witness.
	b.inputs[0].SetInt64(4)
	if err := b.Verify(); err == nil {
		t.Errorf("Verify accepted corrupted witness")
	}
}

func TestCounters(t *testing.T) {
	b := newBackend(t, types.Int16)
	x, _ := b.Input("x", 3)
	b.Add(x, x)
	b.Lt(x, x)
	c := b.Counters()
	if c[secret.OpInput] != 1 || c[secret.OpAdd] != 1 || c[secret.OpLt] != 1 {
		t.Errorf("unexpected counters: %v", *c)
	}
	if b.Builder().NumGates() == 0 {
		t.Errorf("no gates emitted")
	}
}
