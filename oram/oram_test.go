//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package oram

import (
	"testing"

	"github.com/markkurossi/oheap/secret/emul"
	"github.com/markkurossi/oheap/types"
)

func newBackend(t *testing.T) *emul.Backend {
	b, err := emul.New(types.Int32, nil)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

var pathTests = []struct {
	depth int
	leaf  uint64
	path  []int
}{
	{0, 0, []int{0}},
	{1, 0, []int{0, 1}},
	{1, 1, []int{0, 2}},
	{2, 0b00, []int{0, 1, 3}},
	{2, 0b01, []int{0, 2, 5}},
	{2, 0b10, []int{0, 1, 4}},
	{2, 0b11, []int{0, 2, 6}},
	{3, 0b110, []int{0, 1, 4, 10}},
}

func TestPathIndices(t *testing.T) {
	for _, test := range pathTests {
		path := PathIndices(test.depth, test.leaf)
		if len(path) != len(test.path) {
			t.Fatalf("PathIndices(%d, %b)=%v, expected %v",
				test.depth, test.leaf, path, test.path)
		}
		for i := range path {
			if path[i] != test.path[i] {
				t.Errorf("PathIndices(%d, %b)=%v, expected %v",
					test.depth, test.leaf, path, test.path)
				break
			}
			if Level(path[i]) != i {
				t.Errorf("Level(%d)=%d, expected %d",
					path[i], Level(path[i]), i)
			}
		}
	}
}

func TestStorage(t *testing.T) {
	b := newBackend(t)
	for _, variant := range []Variant{PathORAM, CircuitORAM} {
		s, err := NewStorage(b, variant, 3, variant.DefaultBucketSize(), 4,
			nil)
		if err != nil {
			t.Fatal(err)
		}
		if s.NumBuckets() != 15 {
			t.Errorf("%v: NumBuckets=%d", variant, s.NumBuckets())
		}
		z := s.BucketSize()

		// Every slot is initially empty.
		for idx := 0; idx < s.NumBuckets(); idx++ {
			for _, e := range s.ReadBucket(idx) {
				if !b.RevealBit(e.Empty) {
					t.Fatalf("%v: bucket %d not empty", variant, idx)
				}
			}
		}

		// Write a unique value into each bucket.
		for idx := 0; idx < s.NumBuckets(); idx++ {
			entries := s.ReadBucket(idx)
			entries[z-1] = Entry{
				Empty:    b.Bool(false),
				Leaf:     b.Const(0),
				Priority: b.Const(int64(idx)),
				Value:    b.Const(int64(idx * 10)),
			}
			s.WriteBucket(idx, entries)
		}
		for idx := 0; idx < s.NumBuckets(); idx++ {
			entries := s.ReadBucket(idx)
			if len(entries) != z {
				t.Fatalf("%v: bucket %d has %d entries", variant, idx,
					len(entries))
			}
			e := entries[z-1]
			if b.RevealBit(e.Empty) || b.Reveal(e.Value) != int64(idx*10) {
				t.Errorf("%v: bucket %d: %v", variant, idx, e)
			}
			if !b.RevealBit(entries[0].Empty) {
				t.Errorf("%v: bucket %d slot 0 not empty", variant, idx)
			}
		}

		// ReadBucket returns a copy.
		entries := s.ReadBucket(0)
		entries[0] = entries[z-1]
		if !b.RevealBit(s.ReadBucket(0)[0].Empty) {
			t.Errorf("%v: ReadBucket aliases storage", variant)
		}

		stash := s.ReadStash()
		if len(stash) != 4 {
			t.Fatalf("%v: stash size %d", variant, len(stash))
		}
		stash[2] = Entry{
			Empty:    b.Bool(false),
			Leaf:     b.Const(1),
			Priority: b.Const(2),
			Value:    b.Const(3),
		}
		s.WriteStash(stash)
		if b.Reveal(s.ReadStash()[2].Value) != 3 {
			t.Errorf("%v: stash write lost", variant)
		}
	}
}

func TestNewStorageErrors(t *testing.T) {
	b := newBackend(t)
	if _, err := NewStorage(b, PathORAM, -1, 2, 4, nil); err == nil {
		t.Errorf("negative depth accepted")
	}
	if _, err := NewStorage(b, PathORAM, 2, 0, 4, nil); err == nil {
		t.Errorf("zero bucket size accepted")
	}
	if _, err := NewStorage(b, PathORAM, 2, 2, 0, nil); err == nil {
		t.Errorf("zero stash size accepted")
	}
	if _, err := NewStorage(b, Variant(7), 2, 2, 4, nil); err == nil {
		t.Errorf("unknown variant accepted")
	}
}

func TestVariant(t *testing.T) {
	for _, v := range []Variant{PathORAM, CircuitORAM} {
		p, err := ParseVariant(v.String())
		if err != nil || p != v {
			t.Errorf("ParseVariant(%q)=%v, %v", v.String(), p, err)
		}
	}
	if _, err := ParseVariant("tree"); err == nil {
		t.Errorf("ParseVariant accepted unknown variant")
	}
	if PathORAM.DefaultBucketSize() != 2 || CircuitORAM.DefaultBucketSize() != 3 {
		t.Errorf("unexpected default bucket sizes")
	}
}

func TestCounter(t *testing.T) {
	b := newBackend(t)
	s, err := NewStorage(b, PathORAM, 2, 2, 4, nil)
	if err != nil {
		t.Fatal(err)
	}
	c1 := NewCounter(s)
	c2 := NewCounter(s)
	for _, c := range []*Counter{c1, c2} {
		for _, idx := range c.PathIndices(3) {
			c.WriteBucket(idx, c.ReadBucket(idx))
		}
		c.WriteStash(c.ReadStash())
	}
	if c1.Reads != 4 || c1.Writes != 4 {
		t.Errorf("Reads=%d, Writes=%d", c1.Reads, c1.Writes)
	}
	if !c1.Equal(c2) {
		t.Errorf("equal access patterns differ")
	}
	c2.ReadBucket(1)
	if c1.Equal(c2) {
		t.Errorf("different access patterns equal")
	}
	if c1.Log[len(c1.Log)-1].String() != "write-stash(-1)" {
		t.Errorf("unexpected log entry %v", c1.Log[len(c1.Log)-1])
	}
	c1.Reset()
	if c1.Reads != 0 || len(c1.Log) != 0 {
		t.Errorf("Reset failed")
	}
}

func TestSelectEntry(t *testing.T) {
	b := newBackend(t)
	x := Entry{
		Empty:    b.Bool(false),
		Leaf:     b.Const(1),
		Priority: b.Const(2),
		Value:    b.Const(3),
	}
	y := NewEmptyEntry(b)
	e := SelectEntry(b, b.Bool(true), x, y)
	if b.RevealBit(e.Empty) || b.Reveal(e.Value) != 3 {
		t.Errorf("SelectEntry(true)=%v", e)
	}
	e = SelectEntry(b, b.Bool(false), x, y)
	if !b.RevealBit(e.Empty) || b.Reveal(e.Value) != 0 {
		t.Errorf("SelectEntry(false)=%v", e)
	}
	var idx Index = NoIndex{}
	idx.Set(x.Value, x.Leaf, b.Bool(false))
	if idx.Size() != 0 {
		t.Errorf("NoIndex.Size=%d", idx.Size())
	}
}
