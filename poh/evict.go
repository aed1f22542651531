//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package poh

import (
	"fmt"
	"math/bits"

	"github.com/markkurossi/oheap/oram"
	"github.com/markkurossi/oheap/secret"
)

// record is an entry drained from the path or from the stash.
type record struct {
	entry oram.Entry
	// depth is the level the entry was drained from; -1 for stash.
	depth int
	// ok[l] is set if the entry may reside at level l of the path.
	ok []secret.Bit
}

// evict drains the path to the leaf and the stash, and places the
// entries as deep on the path as their leaf labels allow. The entries
// that do not fit the path are placed into the stash.
func (q *Queue) evict(leaf uint64) {
	q.log.Debugf("[POH] evict: along path with label %d", leaf)

	path := q.storage.PathIndices(leaf)

	var records []record
	for d, idx := range path {
		for _, e := range q.storage.ReadBucket(idx) {
			records = append(records, record{
				entry: e,
				depth: d,
			})
		}
	}
	for _, e := range q.storage.ReadStash() {
		records = append(records, record{
			entry: e,
			depth: -1,
		})
	}
	for i := range records {
		records[i].ok = q.pathMatch(records[i].entry, leaf)
		if q.log.Tracing() {
			q.traceEntry(fmt.Sprintf("evict: depth %d", records[i].depth),
				records[i].entry)
		}
	}

	var buckets [][]oram.Entry
	var stash []oram.Entry
	switch q.cfg.Eviction {
	case Naive:
		buckets, stash = q.evictNaive(records)
	default:
		buckets, stash = q.evictShuffle(records)
	}

	for d, idx := range path {
		q.storage.WriteBucket(idx, buckets[d])
	}
	q.storage.WriteStash(stash)
}

// pathMatch returns for each level l of the path to the leaf a bit
// telling if the entry's leaf label shares the first l path bits with
// the leaf.
func (q *Queue) pathMatch(e oram.Entry, leaf uint64) []secret.Bit {
	b := q.b
	leafBits := b.Bits(e.Leaf, q.depth)

	result := make([]secret.Bit, q.depth+1)
	result[0] = b.Bool(true)
	for l := 1; l <= q.depth; l++ {
		match := leafBits[l-1]
		if leaf&(1<<(l-1)) == 0 {
			match = b.Not(match)
		}
		result[l] = b.And(result[l-1], match)
	}
	return result
}

func (q *Queue) emptyBuckets() [][]oram.Entry {
	empty := oram.NewEmptyEntry(q.b)
	result := make([][]oram.Entry, q.depth+1)
	for d := range result {
		result[d] = make([]oram.Entry, q.cfg.BucketSize)
		for k := range result[d] {
			result[d][k] = empty
		}
	}
	return result
}

func (q *Queue) emptyStash() []oram.Entry {
	empty := oram.NewEmptyEntry(q.b)
	result := make([]oram.Entry, q.cfg.StashSize)
	for i := range result {
		result[i] = empty
	}
	return result
}

// evictNaive trials every record against every path slot, deepest
// level first, and then against every stash slot. Each record lands
// in the first free slot it may occupy.
func (q *Queue) evictNaive(records []record) ([][]oram.Entry, []oram.Entry) {
	b := q.b
	buckets := q.emptyBuckets()
	stash := q.emptyStash()

	secret.For(len(records), func(i int) {
		r := records[i]

		// Empty entries are never placed.
		placed := r.entry.Empty

		try := func(slot *oram.Entry, ok secret.Bit) {
			put := b.And(b.Not(placed), b.And(ok, slot.Empty))
			*slot = oram.SelectEntry(b, put, r.entry, *slot)
			placed = b.Or(placed, put)
		}
		for d := q.depth; d >= 0; d-- {
			secret.For(len(buckets[d]), func(k int) {
				try(&buckets[d][k], r.ok[d])
			})
		}
		secret.For(len(stash), func(k int) {
			try(&stash[k], b.Bool(true))
		})
	})

	return buckets, stash
}

// evictShuffle assigns every record a target key in one linear pass
// and routes the records with a sorting network. The key of an entry
// placed at level l is D-l; stash entries have key D+1 and discarded
// entries D+2. Filler records pad every level to exactly Z records so
// that after sorting the first (D+1)Z records form the path, leaf
// bucket first, and the next S records form the stash.
func (q *Queue) evictShuffle(records []record) ([][]oram.Entry, []oram.Entry) {
	b := q.b
	z := q.cfg.BucketSize

	keys := make([]secret.Value, q.depth+3)
	for i := range keys {
		keys[i] = b.Const(int64(i))
	}
	stashKey := keys[q.depth+1]
	dropKey := keys[q.depth+2]

	// count[l][k] is set if at least k+1 records target level l.
	count := make([][]secret.Bit, q.depth+1)
	for l := range count {
		count[l] = make([]secret.Bit, z)
		for k := range count[l] {
			count[l][k] = b.Bool(false)
		}
	}

	type keyed struct {
		key   secret.Value
		entry oram.Entry
	}
	var items []keyed

	secret.For(len(records), func(i int) {
		r := records[i]
		placed := r.entry.Empty
		key := b.Select(r.entry.Empty, dropKey, stashKey)

		for l := q.depth; l >= 0; l-- {
			free := b.Not(count[l][z-1])
			put := b.And(b.Not(placed), b.And(r.ok[l], free))
			for k := z - 1; k > 0; k-- {
				count[l][k] = b.Or(count[l][k], b.And(put, count[l][k-1]))
			}
			count[l][0] = b.Or(count[l][0], put)

			key = b.Select(put, keys[q.depth-l], key)
			placed = b.Or(placed, put)
		}
		items = append(items, keyed{
			key:   key,
			entry: r.entry,
		})
	})

	empty := oram.NewEmptyEntry(b)
	for l := 0; l <= q.depth; l++ {
		secret.For(z, func(k int) {
			items = append(items, keyed{
				key:   b.Select(count[l][k], dropKey, keys[q.depth-l]),
				entry: empty,
			})
		})
	}
	for n := nextPow2(len(items)); len(items) < n; {
		items = append(items, keyed{
			key:   dropKey,
			entry: empty,
		})
	}

	keyBits := bits.Len(uint(q.depth + 2))
	for _, c := range oddEvenMergeSort(len(items)) {
		lo := items[c.Lo]
		hi := items[c.Hi]
		swap := b.LtN(hi.key, lo.key, keyBits)
		items[c.Lo] = keyed{
			key:   b.Select(swap, hi.key, lo.key),
			entry: oram.SelectEntry(b, swap, hi.entry, lo.entry),
		}
		items[c.Hi] = keyed{
			key:   b.Select(swap, lo.key, hi.key),
			entry: oram.SelectEntry(b, swap, lo.entry, hi.entry),
		}
	}

	buckets := make([][]oram.Entry, q.depth+1)
	for l := range buckets {
		buckets[l] = make([]oram.Entry, z)
	}
	for i := 0; i < (q.depth+1)*z; i++ {
		buckets[q.depth-i/z][i%z] = items[i].entry
	}
	stash := make([]oram.Entry, q.cfg.StashSize)
	for i := range stash {
		stash[i] = items[(q.depth+1)*z+i].entry
	}

	return buckets, stash
}
