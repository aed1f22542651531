//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package poh

import (
	"github.com/markkurossi/oheap/oram"
)

// updateMin recomputes the subtree minimums of the nodes on the path
// to the leaf, from the leaf to the root, and then the stash minimum.
func (q *Queue) updateMin(leaf uint64) {
	q.log.Debugf("[POH] update_min: along path with label %d", leaf)

	path := q.storage.PathIndices(leaf)
	for i := len(path) - 1; i >= 0; i-- {
		idx := path[i]
		current := q.bucketMin(idx)

		var m oram.Entry
		if i == len(path)-1 {
			// Leaf bucket: no children.
			m = current
		} else {
			left := q.subtreeMin(2*idx + 1)
			right := q.subtreeMin(2*idx + 2)
			m = q.ord.min3(current, left, right)
		}
		q.setSubtreeMin(idx, m)
		q.traceEntry("update_min: "+nodeName(idx), m)
	}

	m := q.ord.min2(q.stashMin(), q.subtreeMin(0))
	q.setSubtreeMin(-1, m)
	q.traceEntry("update_min: "+nodeName(-1), m)
}

// bucketMin returns the minimum entry of the bucket idx.
func (q *Queue) bucketMin(idx int) oram.Entry {
	return q.ord.scanMin(q.storage.ReadBucket(idx))
}

// stashMin returns the minimum entry of the stash.
func (q *Queue) stashMin() oram.Entry {
	return q.ord.scanMin(q.storage.ReadStash())
}

func (q *Queue) traceEntry(label string, e oram.Entry) {
	if !q.log.Tracing() {
		return
	}
	b := q.b
	q.log.Tracef("[POH] %s: {empty: %v, leaf: %d, prio: %d, value: %d}",
		label, b.RevealBit(e.Empty), b.Reveal(e.Leaf), b.Reveal(e.Priority),
		b.Reveal(e.Value))
}
