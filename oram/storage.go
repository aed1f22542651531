//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package oram implements bucket tree storage for tree based
// oblivious data structures. The tree has depth D and 2^(D+1)-1
// buckets of Z entries each, stored in heap order: the children of
// bucket i are 2i+1 and 2i+2. An overflow stash of S entries complements
// the tree.
package oram

import (
	"fmt"

	"github.com/markkurossi/oheap/secret"
)

// Storage provides bucket level access to the tree and the stash.
type Storage interface {
	// Depth returns the tree depth D. The leaves are at depth D.
	Depth() int

	// BucketSize returns the number of entries per bucket.
	BucketSize() int

	// StashSize returns the number of stash entries.
	StashSize() int

	// NumBuckets returns the number of buckets in the tree.
	NumBuckets() int

	// ReadBucket returns a copy of the entries of the bucket idx.
	ReadBucket(idx int) []Entry

	// WriteBucket replaces the entries of the bucket idx.
	WriteBucket(idx int, entries []Entry)

	// ReadStash returns a copy of the stash entries.
	ReadStash() []Entry

	// WriteStash replaces the stash entries.
	WriteStash(entries []Entry)

	// PathIndices returns the bucket indices from the root to the
	// leaf.
	PathIndices(leaf uint64) []int

	// Index returns the secondary index of the storage.
	Index() Index
}

// Variant specifies the storage layout.
type Variant int

// Storage variants.
const (
	PathORAM Variant = iota
	CircuitORAM
)

var variants = map[Variant]string{
	PathORAM:    "path",
	CircuitORAM: "circuit",
}

func (v Variant) String() string {
	name, ok := variants[v]
	if ok {
		return name
	}
	return fmt.Sprintf("{Variant %d}", int(v))
}

// DefaultBucketSize returns the default bucket size of the variant.
func (v Variant) DefaultBucketSize() int {
	switch v {
	case CircuitORAM:
		return 3
	default:
		return 2
	}
}

// ParseVariant parses the variant name.
func ParseVariant(name string) (Variant, error) {
	for k, v := range variants {
		if v == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown storage variant: %s", name)
}

// NewStorage creates a new storage of the variant. All entries are
// initially empty.
func NewStorage(b secret.Backend, variant Variant, depth, bucketSize,
	stashSize int, index Index) (Storage, error) {

	if depth < 0 || depth > 30 {
		return nil, fmt.Errorf("invalid tree depth %d", depth)
	}
	if bucketSize < 1 {
		return nil, fmt.Errorf("invalid bucket size %d", bucketSize)
	}
	if stashSize < 1 {
		return nil, fmt.Errorf("invalid stash size %d", stashSize)
	}
	if index == nil {
		index = NoIndex{}
	}
	switch variant {
	case PathORAM:
		return NewPathStorage(b, depth, bucketSize, stashSize, index), nil
	case CircuitORAM:
		return NewCircuitStorage(b, depth, bucketSize, stashSize, index), nil
	default:
		return nil, fmt.Errorf("unsupported storage variant %v", variant)
	}
}

// NumBuckets returns the number of buckets in a tree of depth.
func NumBuckets(depth int) int {
	return 1<<(depth+1) - 1
}

// PathIndices returns the bucket indices from the root to the leaf in
// a tree of depth. The leaf label is read least significant bit
// first: bit d-1 selects the child at depth d.
func PathIndices(depth int, leaf uint64) []int {
	result := make([]int, depth+1)
	var idx int
	for d := 1; d <= depth; d++ {
		idx = 2*idx + 1 + int(leaf&1)
		leaf >>= 1
		result[d] = idx
	}
	return result
}

// Level returns the depth of the bucket idx.
func Level(idx int) int {
	var level int
	for idx > 0 {
		idx = (idx - 1) / 2
		level++
	}
	return level
}

type base struct {
	depth      int
	bucketSize int
	stash      []Entry
	index      Index
}

func newBase(b secret.Backend, depth, bucketSize, stashSize int,
	index Index) base {

	return base{
		depth:      depth,
		bucketSize: bucketSize,
		stash:      emptyEntries(b, stashSize),
		index:      index,
	}
}

func emptyEntries(b secret.Backend, n int) []Entry {
	empty := NewEmptyEntry(b)
	result := make([]Entry, n)
	for i := range result {
		result[i] = empty
	}
	return result
}

func (s *base) Depth() int {
	return s.depth
}

func (s *base) BucketSize() int {
	return s.bucketSize
}

func (s *base) StashSize() int {
	return len(s.stash)
}

func (s *base) NumBuckets() int {
	return NumBuckets(s.depth)
}

func (s *base) ReadStash() []Entry {
	result := make([]Entry, len(s.stash))
	copy(result, s.stash)
	return result
}

func (s *base) WriteStash(entries []Entry) {
	if len(entries) != len(s.stash) {
		panic(fmt.Sprintf("oram: invalid stash write: %d entries, expected %d",
			len(entries), len(s.stash)))
	}
	copy(s.stash, entries)
}

func (s *base) PathIndices(leaf uint64) []int {
	return PathIndices(s.depth, leaf)
}

func (s *base) Index() Index {
	return s.index
}

func (s *base) checkBucket(idx int, entries []Entry) {
	if idx < 0 || idx >= s.NumBuckets() {
		panic(fmt.Sprintf("oram: invalid bucket %d", idx))
	}
	if entries != nil && len(entries) != s.bucketSize {
		panic(fmt.Sprintf("oram: invalid bucket write: %d entries, expected %d",
			len(entries), s.bucketSize))
	}
}

// PathStorage stores the tree buckets in one flat slot array.
type PathStorage struct {
	base
	slots []Entry
}

// NewPathStorage creates a new path storage.
func NewPathStorage(b secret.Backend, depth, bucketSize, stashSize int,
	index Index) *PathStorage {

	return &PathStorage{
		base:  newBase(b, depth, bucketSize, stashSize, index),
		slots: emptyEntries(b, NumBuckets(depth)*bucketSize),
	}
}

// ReadBucket implements Storage.ReadBucket.
func (s *PathStorage) ReadBucket(idx int) []Entry {
	s.checkBucket(idx, nil)
	result := make([]Entry, s.bucketSize)
	copy(result, s.slots[idx*s.bucketSize:])
	return result
}

// WriteBucket implements Storage.WriteBucket.
func (s *PathStorage) WriteBucket(idx int, entries []Entry) {
	s.checkBucket(idx, entries)
	copy(s.slots[idx*s.bucketSize:], entries)
}

// CircuitStorage stores the tree buckets in per-level slabs.
type CircuitStorage struct {
	base
	levels [][]Entry
}

// NewCircuitStorage creates a new circuit storage.
func NewCircuitStorage(b secret.Backend, depth, bucketSize, stashSize int,
	index Index) *CircuitStorage {

	levels := make([][]Entry, depth+1)
	for d := range levels {
		levels[d] = emptyEntries(b, (1<<d)*bucketSize)
	}
	return &CircuitStorage{
		base:   newBase(b, depth, bucketSize, stashSize, index),
		levels: levels,
	}
}

func (s *CircuitStorage) slab(idx int) []Entry {
	level := Level(idx)
	ofs := (idx - (1<<level - 1)) * s.bucketSize
	return s.levels[level][ofs : ofs+s.bucketSize]
}

// ReadBucket implements Storage.ReadBucket.
func (s *CircuitStorage) ReadBucket(idx int) []Entry {
	s.checkBucket(idx, nil)
	result := make([]Entry, s.bucketSize)
	copy(result, s.slab(idx))
	return result
}

// WriteBucket implements Storage.WriteBucket.
func (s *CircuitStorage) WriteBucket(idx int, entries []Entry) {
	s.checkBucket(idx, entries)
	copy(s.slab(idx), entries)
}
