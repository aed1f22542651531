//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package poh

import (
	"github.com/markkurossi/oheap/secret"
)

// HeapQ adapts the queue to the heap interface of graph algorithms
// such as Dijkstra's shortest paths. Update inserts a new entry and
// never modifies existing entries so the queue may contain duplicate
// values.
type HeapQ struct {
	*Queue
}

// NewHeapQ creates a new heap with the capacity maxSize.
func NewHeapQ(b secret.Backend, maxSize int) (*HeapQ, error) {
	q, err := New(b, Config{
		Capacity: maxSize,
	})
	if err != nil {
		return nil, err
	}
	return &HeapQ{
		Queue: q,
	}, nil
}

// Update inserts the value with the priority if forReal is set.
func (h *HeapQ) Update(value, priority secret.Value, forReal secret.Bit) {
	h.Insert(value, priority, h.b.Not(forReal))
}

// Pop extracts the minimum value if forReal is set. It returns -1 if
// the heap is empty.
func (h *HeapQ) Pop(forReal secret.Bit) secret.Value {
	return h.ExtractMin(h.b.Not(forReal))
}
