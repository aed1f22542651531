//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package oram

import (
	"github.com/markkurossi/oheap/secret"
)

// Index defines a secondary index from entry values to their leaf
// labels. ORAM constructions that locate entries by identifier use
// the index as their position map.
type Index interface {
	// Set maps the value to the leaf unless fake is set.
	Set(value, leaf secret.Value, fake secret.Bit)

	// Size returns the number of index records.
	Size() int
}

// NoIndex implements an index that records nothing. It is used by
// structures that keep the leaf labels in the entries themselves.
type NoIndex struct{}

// Set implements Index.Set.
func (idx NoIndex) Set(value, leaf secret.Value, fake secret.Bit) {}

// Size implements Index.Size.
func (idx NoIndex) Size() int {
	return 0
}
