//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package poh

import (
	"fmt"

	"github.com/markkurossi/oheap/secret"
)

// Sort sorts the values by their keys. The function inserts every
// key-value pair into a queue and extracts the minimum n times. Equal
// keys are ordered by value. Duplicate key-value pairs are extracted
// together, and the result ends with -1 for each removed duplicate.
func Sort(b secret.Backend, keys, values []secret.Value, cfg Config) (
	[]secret.Value, error) {

	if len(keys) != len(values) {
		return nil, fmt.Errorf("keys and values length mismatch: %d != %d",
			len(keys), len(values))
	}
	n := len(keys)
	if n == 0 {
		return nil, nil
	}

	cfg.Capacity = max(n, 2)
	q, err := New(b, cfg)
	if err != nil {
		return nil, err
	}

	fake := b.Bool(false)
	secret.For(n, func(i int) {
		q.Insert(values[i], keys[i], fake)
	})
	result := make([]secret.Value, n)
	secret.For(n, func(i int) {
		result[i] = q.ExtractMin(fake)
	})
	return result, nil
}
