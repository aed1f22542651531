//
// Copyright (c) 2020-2025 Markku Rossi
//
// All rights reserved.
//

package circuits

import (
	"fmt"

	"github.com/markkurossi/oheap/circuit"
)

// NewMUX creates a multiplexer circuit that selects the input t or f
// to output, based on the value of the condition cond.
func NewMUX(cc *Builder, cond circuit.Wire, t, f []circuit.Wire) ([]circuit.Wire, error) {
	t, f = cc.ZeroPad(t, f)
	if len(t) != len(f) {
		return nil, fmt.Errorf("invalid mux arguments: t=%d, f=%d",
			len(t), len(f))
	}
	out := make([]circuit.Wire, len(t))

	for i := 0; i < len(t); i++ {
		// w1 = XOR(f[i], t[i])
		w1 := cc.XOR(f[i], t[i])

		// w2 = AND(w1, cond)
		w2 := cc.AND(w1, cond)

		// out[i] = XOR(w2, f[i])
		out[i] = cc.XOR(w2, f[i])
	}

	return out, nil
}
