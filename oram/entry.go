//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package oram

import (
	"fmt"

	"github.com/markkurossi/oheap/secret"
)

// Entry defines a bucket slot. The Empty bit marks unused slots; the
// other fields of an empty entry are zero.
type Entry struct {
	Empty    secret.Bit
	Leaf     secret.Value
	Priority secret.Value
	Value    secret.Value
}

func (e Entry) String() string {
	return fmt.Sprintf("{empty=%v, leaf=%v, prio=%v, value=%v}",
		e.Empty, e.Leaf, e.Priority, e.Value)
}

// NewEmptyEntry creates an empty entry.
func NewEmptyEntry(b secret.Backend) Entry {
	zero := secret.Zero(b)
	return Entry{
		Empty:    b.Bool(true),
		Leaf:     zero,
		Priority: zero,
		Value:    zero,
	}
}

// SelectEntry returns t if c is set and f otherwise. All fields are
// selected obliviously.
func SelectEntry(b secret.Backend, c secret.Bit, t, f Entry) Entry {
	return Entry{
		Empty:    b.SelectBit(c, t.Empty, f.Empty),
		Leaf:     b.Select(c, t.Leaf, f.Leaf),
		Priority: b.Select(c, t.Priority, f.Priority),
		Value:    b.Select(c, t.Value, f.Value),
	}
}
