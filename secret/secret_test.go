//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package secret

import (
	"bytes"
	"strings"
	"testing"

	"github.com/markkurossi/oheap/env"
)

func TestFor(t *testing.T) {
	var seen []int
	For(5, func(i int) {
		seen = append(seen, i)
	})
	if len(seen) != 5 {
		t.Fatalf("For: got %d iterations, expected 5", len(seen))
	}
	for i, v := range seen {
		if v != i {
			t.Errorf("For: iteration %d got index %d", i, v)
		}
	}
	For(0, func(i int) {
		t.Errorf("For(0) called body")
	})
}

func TestFold(t *testing.T) {
	sum := Fold(10, 0, func(s, i int) int {
		return s + i
	})
	if sum != 45 {
		t.Errorf("Fold: got %d, expected 45", sum)
	}
	if v := Fold(0, 7, func(s, i int) int { return 0 }); v != 7 {
		t.Errorf("Fold(0): got %d, expected 7", v)
	}
}

var seed = []byte("0123456789abcdef0123456789abcdef")

func TestPRG(t *testing.T) {
	a, err := NewPRG(seed)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewPRG(seed)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		va := a.Uint64()
		vb := b.Uint64()
		if va != vb {
			t.Fatalf("PRG streams differ at %d: %x != %x", i, va, vb)
		}
	}
	for n := 0; n <= 64; n++ {
		v := a.Bits(n)
		if n < 64 && v>>n != 0 {
			t.Errorf("Bits(%d)=%x overflows", n, v)
		}
	}
	if _, err := NewPRG([]byte("short")); err == nil {
		t.Errorf("NewPRG accepted short seed")
	}

	r, err := NewRandomPRG(nil)
	if err != nil {
		t.Fatal(err)
	}

	// Equal entropy gives equal streams.
	c1, err := NewRandomPRG(&env.Config{Rand: bytes.NewReader(seed)})
	if err != nil {
		t.Fatal(err)
	}
	c2, err := NewRandomPRG(&env.Config{Rand: bytes.NewReader(seed)})
	if err != nil {
		t.Fatal(err)
	}
	if c1.Uint64() != c2.Uint64() {
		t.Errorf("equal entropy gave different streams")
	}
	if _, err := NewRandomPRG(&env.Config{Rand: strings.NewReader("x")}); err == nil {
		t.Errorf("NewRandomPRG accepted short entropy")
	}
	var buf [100]byte
	n, err := r.Read(buf[:])
	if err != nil || n != len(buf) {
		t.Fatalf("Read: n=%d, err=%v", n, err)
	}
}

func TestCounters(t *testing.T) {
	var c Counters
	c.Inc(OpAdd)
	c.Inc(OpAdd)
	c.Inc(OpSelect)

	if c.Total() != 3 {
		t.Errorf("Total: got %d, expected 3", c.Total())
	}
	if s := c.String(); s != "add=2 select=1" {
		t.Errorf("String: got %q", s)
	}

	before := c
	c.Inc(OpReveal)
	d := c.Sub(before)
	if d.Total() != 1 || d[OpReveal] != 1 {
		t.Errorf("Sub: got %v", d)
	}

	var out bytes.Buffer
	c.Print(&out)
	for _, s := range []string{"add", "select", "reveal", "Total"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("Print: output missing %q:\n%s", s, out.String())
		}
	}
	if OpReveal.String() != "reveal" {
		t.Errorf("Op.String: got %q", OpReveal.String())
	}
}
