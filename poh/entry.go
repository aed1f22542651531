//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package poh

import (
	"github.com/markkurossi/oheap/oram"
	"github.com/markkurossi/oheap/secret"
)

// ordering implements the oblivious entry order. Non-empty entries
// order by priority, then by value; empty entries are greater than
// all non-empty entries and equal to each other. Priorities and values
// compare as signed integers of the backend type.
type ordering struct {
	b secret.Backend
}

// equal tests if the entries a and b are equal. The leaf labels are
// not compared.
func (o *ordering) equal(a, b oram.Entry) secret.Bit {
	be := o.b

	bothEmpty := be.And(a.Empty, b.Empty)
	sameEmpty := be.Not(be.Xor(a.Empty, b.Empty))
	sameKey := be.And(be.Eq(a.Priority, b.Priority), be.Eq(a.Value, b.Value))

	return be.Or(bothEmpty, be.And(sameEmpty, sameKey))
}

// less tests if the entry a is strictly smaller than the entry b.
func (o *ordering) less(a, b oram.Entry) secret.Bit {
	be := o.b

	prioLt := be.Lt(a.Priority, b.Priority)
	prioEq := be.Eq(a.Priority, b.Priority)
	valueLt := be.Lt(a.Value, b.Value)

	keyLt := be.Or(prioLt, be.And(prioEq, valueLt))

	return be.And(be.Not(a.Empty), be.Or(b.Empty, keyLt))
}

// min2 returns the smaller of a and b. The entry a wins ties.
func (o *ordering) min2(a, b oram.Entry) oram.Entry {
	aMin := o.b.Not(o.less(b, a))
	return oram.SelectEntry(o.b, aMin, a, b)
}

// min3 returns the smallest of the current, left, and right
// entries. Ties are broken in favour of current, then left, then
// right. Exactly one of the selectors is set.
func (o *ordering) min3(current, left, right oram.Entry) oram.Entry {
	be := o.b

	cl := be.Not(o.less(left, current))
	cr := be.Not(o.less(right, current))
	lr := be.Not(o.less(right, left))

	cMin := be.And(cl, cr)
	lMin := be.And(be.Not(cl), lr)

	return oram.SelectEntry(be, cMin, current,
		oram.SelectEntry(be, lMin, left, right))
}

// scanMin returns the smallest entry of the argument entries. The
// scan visits every entry. The first of equal entries wins.
func (o *ordering) scanMin(entries []oram.Entry) oram.Entry {
	return secret.Fold(len(entries), oram.NewEmptyEntry(o.b),
		func(result oram.Entry, i int) oram.Entry {
			m := o.less(entries[i], result)
			return oram.SelectEntry(o.b, m, entries[i], result)
		})
}
