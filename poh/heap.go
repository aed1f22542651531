//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package poh implements the Path Oblivious Heap, an oblivious
// min-priority queue over a bucket tree. The storage access pattern of
// the queue operations depends only on the public parameters:
// capacity, tree depth, bucket size, and stash size. All data
// dependent decisions are implemented with oblivious selects.
//
// Every tree node caches the minimum entry of its subtree. Insert
// adds the new entry to the stash under a random leaf label and evicts
// along two random paths. ExtractMin reads the cached global minimum,
// reveals its leaf label, and erases the entry from that path.
package poh

import (
	"fmt"

	"github.com/markkurossi/oheap/compiler/utils"
	"github.com/markkurossi/oheap/oram"
	"github.com/markkurossi/oheap/secret"
	"github.com/markkurossi/text/superscript"
)

// Queue implements the Path Oblivious Heap priority queue.
type Queue struct {
	b       secret.Backend
	cfg     Config
	log     *utils.Logger
	depth   int
	storage oram.Storage
	counter *oram.Counter
	ord     *ordering
	mins    []oram.Entry
}

// New creates a new queue for the backend b.
func New(b secret.Backend, cfg Config) (*Queue, error) {
	cfg, depth, err := cfg.resolve(b)
	if err != nil {
		return nil, err
	}
	storage, err := oram.NewStorage(b, cfg.Variant, depth, cfg.BucketSize,
		cfg.StashSize, oram.NoIndex{})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfiguration, err)
	}

	q := &Queue{
		b:     b,
		cfg:   cfg,
		log:   cfg.Logger,
		depth: depth,
		ord: &ordering{
			b: b,
		},
	}
	if cfg.CountAccesses {
		q.counter = oram.NewCounter(storage)
		q.storage = q.counter
	} else {
		q.storage = storage
	}

	// The last record holds the stash minimum.
	q.mins = make([]oram.Entry, storage.NumBuckets()+1)
	empty := oram.NewEmptyEntry(b)
	for i := range q.mins {
		q.mins[i] = empty
	}

	q.log.Printf("[POH] New: capacity %d, security %d",
		cfg.Capacity, cfg.Security)
	q.log.Printf("[POH] New: type hiding security is disabled")
	q.log.Printf("[POH] New: variant %v, depth %d, bucket %d, stash %d, evict %v",
		cfg.Variant, depth, cfg.BucketSize, cfg.StashSize, cfg.Eviction)
	q.log.Printf("[POH] New: entry size %v", cfg.EntrySize)

	return q, nil
}

// Config returns the resolved queue configuration.
func (q *Queue) Config() Config {
	return q.cfg
}

// Depth returns the tree depth.
func (q *Queue) Depth() int {
	return q.depth
}

// AccessCounter returns the storage access counter or nil if access
// counting is not enabled.
func (q *Queue) AccessCounter() *oram.Counter {
	return q.counter
}

func (q *Queue) subtreeMin(idx int) oram.Entry {
	if idx < 0 {
		return q.mins[len(q.mins)-1]
	}
	return q.mins[idx]
}

func (q *Queue) setSubtreeMin(idx int, e oram.Entry) {
	if idx < 0 {
		q.mins[len(q.mins)-1] = e
	} else {
		q.mins[idx] = e
	}
}

func nodeName(idx int) string {
	if idx < 0 {
		return "stash"
	}
	return "n" + superscript.Itoa(idx)
}

func (q *Queue) sentinel() secret.Value {
	return q.b.Const(-1)
}

// Insert inserts the value with the priority. If fake is set, the
// queue is not modified but the operation has the same cost and
// access pattern as a real insert.
func (q *Queue) Insert(value, priority secret.Value, fake secret.Bit) {
	if q.log.Tracing() {
		q.log.Tracef("[POH] insert: {value: %d, prio: %d, fake: %v}",
			q.b.Reveal(value), q.b.Reveal(priority), q.b.RevealBit(fake))
	} else {
		q.log.Debugf("[POH] insert")
	}
	b := q.b
	zero := secret.Zero(b)

	leaf := b.Random(q.depth)
	entry := oram.Entry{
		Empty:    fake,
		Leaf:     b.Select(fake, zero, leaf),
		Priority: b.Select(fake, zero, priority),
		Value:    b.Select(fake, zero, value),
	}

	// Place the entry into the first free stash slot.
	stash := q.storage.ReadStash()
	secret.Fold(len(stash), b.Bool(false),
		func(placed secret.Bit, i int) secret.Bit {
			put := b.And(stash[i].Empty, b.Not(placed))
			stash[i] = oram.SelectEntry(b, put, entry, stash[i])
			return b.Or(placed, put)
		})
	q.storage.WriteStash(stash)
	q.storage.Index().Set(entry.Value, entry.Leaf, fake)

	// Two paths that are disjoint below the root.
	even := uint64(b.Reveal(b.Random(q.depth-1))) * 2
	odd := uint64(b.Reveal(b.Random(q.depth-1)))*2 + 1

	q.evictAndUpdate(even, odd)
}

// ExtractMin removes the minimum entry and returns its value. If the
// queue is empty, the function returns -1. If fake is set, the queue
// is not modified but the operation has the same cost and access
// pattern as a real extract.
func (q *Queue) ExtractMin(fake secret.Bit) secret.Value {
	q.log.Debugf("[POH] extract_min")
	b := q.b

	candidate := q.subtreeMin(-1)
	leaf := q.leafLabel(b.Reveal(candidate.Leaf))

	empty := oram.NewEmptyEntry(b)
	notFake := b.Not(fake)

	erase := func(entries []oram.Entry) {
		secret.For(len(entries), func(i int) {
			found := b.And(q.ord.equal(candidate, entries[i]), notFake)
			entries[i] = oram.SelectEntry(b, found, empty, entries[i])
		})
	}
	for _, idx := range q.storage.PathIndices(leaf) {
		bucket := q.storage.ReadBucket(idx)
		erase(bucket)
		q.storage.WriteBucket(idx, bucket)
	}
	stash := q.storage.ReadStash()
	erase(stash)
	q.storage.WriteStash(stash)

	q.evictAndUpdate(leaf)

	result := b.Select(candidate.Empty, q.sentinel(), candidate.Value)
	if q.log.Tracing() {
		q.log.Tracef("[POH] extract_min: extracted value %d", b.Reveal(result))
	}
	return result
}

// FindMin returns the value of the minimum entry without removing it.
// If the queue is empty, the function returns -1. The fake argument
// has no effect since the operation does not modify the queue.
func (q *Queue) FindMin(fake secret.Bit) secret.Value {
	candidate := q.subtreeMin(-1)
	if q.log.Tracing() {
		q.traceEntry("find_min", candidate)
	} else {
		q.log.Debugf("[POH] find_min")
	}
	return q.b.Select(candidate.Empty, q.sentinel(), candidate.Value)
}

// leafLabel converts the revealed leaf label into a path coordinate.
func (q *Queue) leafLabel(v int64) uint64 {
	return uint64(v) & (uint64(1)<<q.depth - 1)
}

// evictAndUpdate evicts along the paths to the argument leaves and
// then restores the subtree minimums along the same paths, in the
// same order. The subtree minimums are never modified elsewhere.
func (q *Queue) evictAndUpdate(leaves ...uint64) {
	for _, leaf := range leaves {
		q.evict(leaf)
	}
	for _, leaf := range leaves {
		q.updateMin(leaf)
	}
}
