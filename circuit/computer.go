//
// Copyright (c) 2020-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"math/big"
)

// Compute evaluates the circuit in plaintext with the argument input
// values. The inputs are given in the order of c.Inputs and the
// function returns the output values in the order of c.Outputs.
func (c *Circuit) Compute(inputs []*big.Int) ([]*big.Int, error) {
	if len(inputs) != len(c.Inputs) {
		return nil, fmt.Errorf("invalid inputs: got %d, expected %d",
			len(inputs), len(c.Inputs))
	}

	wires := make([]byte, c.NumWires)
	wires[OneWire] = 1

	for idx, io := range c.Inputs {
		a := inputs[idx]
		if a.Sign() < 0 {
			return nil, fmt.Errorf("input %s: negative value %v", io, a)
		}
		if a.BitLen() > io.Size() {
			return nil, fmt.Errorf("input %s: value %v overflows %d bits",
				io, a, io.Size())
		}
		for bit, w := range io.Wires {
			wires[w] = byte(a.Bit(bit))
		}
	}

	// Evaluate circuit.
	for _, gate := range c.Gates {
		var result byte

		switch gate.Op {
		case XOR:
			result = wires[gate.Input0] ^ wires[gate.Input1]

		case XNOR:
			result = 1 ^ wires[gate.Input0] ^ wires[gate.Input1]

		case AND:
			result = wires[gate.Input0] & wires[gate.Input1]

		case OR:
			result = wires[gate.Input0] | wires[gate.Input1]

		case INV:
			result = 1 ^ wires[gate.Input0]

		default:
			return nil, fmt.Errorf("invalid gate %s", gate.Op)
		}

		wires[gate.Output] = result
	}

	// Construct outputs
	var result []*big.Int
	for _, io := range c.Outputs {
		r := new(big.Int)
		for bit, w := range io.Wires {
			if wires[w] != 0 {
				r.SetBit(r, bit, 1)
			}
		}
		result = append(result, r)
	}

	return result, nil
}
