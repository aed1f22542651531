//
// Copyright (c) 2020-2025 Markku Rossi
//
// All rights reserved.
//

package utils

import (
	"io"
)

// Params specify compiler parameters.
type Params struct {
	// Verbose enables compile-time diagnostics about the constructed
	// structures.
	Verbose bool

	// Diagnostics enables per-operation messages. The messages reveal
	// the operation types.
	Diagnostics bool

	// Trace enables low-level tracing. The trace reveals secret
	// values and must never be enabled in production.
	Trace bool

	CircOut    io.WriteCloser
	CircFormat string
}

// NewParams returns new compiler params object, initialized with the
// default values.
func NewParams() *Params {
	return &Params{
		CircFormat: "ohc",
	}
}

// Close closes all open resources.
func (p *Params) Close() {
	if p.CircOut != nil {
		p.CircOut.Close()
		p.CircOut = nil
	}
}
