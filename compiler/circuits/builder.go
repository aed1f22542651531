//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuits

import (
	"fmt"

	"github.com/markkurossi/oheap/circuit"
	"github.com/markkurossi/oheap/compiler/utils"
)

// Builder implements binary circuit builder. Wire IDs are assigned
// eagerly so the gates are always in topological order. Gates with
// constant inputs are folded at construction time.
type Builder struct {
	Params     *utils.Params
	Inputs     circuit.IO
	Outputs    circuit.IO
	Gates      []circuit.Gate
	Stats      circuit.Stats
	nextWireID uint32
}

// NewBuilder creates a new circuit builder.
func NewBuilder(params *utils.Params) *Builder {
	if params == nil {
		params = utils.NewParams()
	}
	return &Builder{
		Params:     params,
		Gates:      make([]circuit.Gate, 0, 65536),
		nextWireID: uint32(circuit.OneWire) + 1,
	}
}

// NextWireID returns the next unique wire ID.
func (b *Builder) NextWireID() uint32 {
	ret := b.nextWireID
	b.nextWireID++
	return ret
}

// NewWire allocates a new wire.
func (b *Builder) NewWire() circuit.Wire {
	return circuit.Wire(b.NextWireID())
}

// MakeWires allocates bits number of wires.
func (b *Builder) MakeWires(bits int) []circuit.Wire {
	result := make([]circuit.Wire, bits)
	for i := 0; i < bits; i++ {
		result[i] = b.NewWire()
	}
	return result
}

// ZeroWire returns a wire holding value 0.
func (b *Builder) ZeroWire() circuit.Wire {
	return circuit.ZeroWire
}

// OneWire returns a wire holding value 1.
func (b *Builder) OneWire() circuit.Wire {
	return circuit.OneWire
}

// IsConst tests if the wire is a constant wire.
func IsConst(w circuit.Wire) bool {
	return w == circuit.ZeroWire || w == circuit.OneWire
}

// Const returns bits wires holding the value v.
func (b *Builder) Const(v uint64, bits int) []circuit.Wire {
	result := make([]circuit.Wire, bits)
	for i := 0; i < bits; i++ {
		if i < 64 && v&(1<<i) != 0 {
			result[i] = b.OneWire()
		} else {
			result[i] = b.ZeroWire()
		}
	}
	return result
}

// Input adds a new circuit input argument with bits wires.
func (b *Builder) Input(name, typ string, bits int) []circuit.Wire {
	wires := b.MakeWires(bits)
	b.Inputs = append(b.Inputs, circuit.IOArg{
		Name:  name,
		Type:  typ,
		Wires: wires,
	})
	return wires
}

// Output marks the wires as a circuit output argument.
func (b *Builder) Output(name, typ string, wires []circuit.Wire) {
	out := make([]circuit.Wire, len(wires))
	copy(out, wires)
	b.Outputs = append(b.Outputs, circuit.IOArg{
		Name:  name,
		Type:  typ,
		Wires: out,
	})
}

func (b *Builder) addGate(op circuit.Operation, i0, i1 circuit.Wire) circuit.Wire {
	o := b.NewWire()
	b.Gates = append(b.Gates, circuit.Gate{
		Input0: i0,
		Input1: i1,
		Output: o,
		Op:     op,
	})
	b.Stats[op]++
	return o
}

// XOR returns a wire holding x^y.
func (b *Builder) XOR(x, y circuit.Wire) circuit.Wire {
	switch {
	case x == y:
		return b.ZeroWire()
	case x == circuit.ZeroWire:
		return y
	case y == circuit.ZeroWire:
		return x
	}
	return b.addGate(circuit.XOR, x, y)
}

// XNOR returns a wire holding !(x^y).
func (b *Builder) XNOR(x, y circuit.Wire) circuit.Wire {
	switch {
	case x == y:
		return b.OneWire()
	case x == circuit.OneWire:
		return y
	case y == circuit.OneWire:
		return x
	case IsConst(x) || IsConst(y):
		return b.INV(b.XOR(x, y))
	}
	return b.addGate(circuit.XNOR, x, y)
}

// AND returns a wire holding x&y.
func (b *Builder) AND(x, y circuit.Wire) circuit.Wire {
	switch {
	case x == circuit.ZeroWire || y == circuit.ZeroWire:
		return b.ZeroWire()
	case x == circuit.OneWire:
		return y
	case y == circuit.OneWire:
		return x
	case x == y:
		return x
	}
	return b.addGate(circuit.AND, x, y)
}

// OR returns a wire holding x|y.
func (b *Builder) OR(x, y circuit.Wire) circuit.Wire {
	switch {
	case x == circuit.OneWire || y == circuit.OneWire:
		return b.OneWire()
	case x == circuit.ZeroWire:
		return y
	case y == circuit.ZeroWire:
		return x
	case x == y:
		return x
	}
	return b.addGate(circuit.OR, x, y)
}

// INV returns a wire holding !x. The inversion is implemented with a
// XOR gate against constant one so it is free with free-XOR garbling.
func (b *Builder) INV(x circuit.Wire) circuit.Wire {
	switch x {
	case circuit.ZeroWire:
		return b.OneWire()
	case circuit.OneWire:
		return b.ZeroWire()
	}
	return b.addGate(circuit.XOR, x, b.OneWire())
}

// ZeroPad pads the argument wires x and y with zero values so that
// the resulting wires have the same number of bits.
func (b *Builder) ZeroPad(x, y []circuit.Wire) ([]circuit.Wire, []circuit.Wire) {
	if len(x) == len(y) {
		return x, y
	}

	max := len(x)
	if len(y) > max {
		max = len(y)
	}

	rx := make([]circuit.Wire, max)
	for i := 0; i < max; i++ {
		if i < len(x) {
			rx[i] = x[i]
		} else {
			rx[i] = b.ZeroWire()
		}
	}

	ry := make([]circuit.Wire, max)
	for i := 0; i < max; i++ {
		if i < len(y) {
			ry[i] = y[i]
		} else {
			ry[i] = b.ZeroWire()
		}
	}

	return rx, ry
}

// NumGates returns the number of gates in the circuit.
func (b *Builder) NumGates() int {
	return len(b.Gates)
}

// Compile compiles the circuit. The builder can be used after
// compilation and subsequent calls return a circuit with all gates
// added so far.
func (b *Builder) Compile() *circuit.Circuit {
	gates := make([]circuit.Gate, len(b.Gates))
	copy(gates, b.Gates)

	result := &circuit.Circuit{
		NumGates: len(gates),
		NumWires: int(b.nextWireID),
		Inputs:   append(circuit.IO(nil), b.Inputs...),
		Outputs:  append(circuit.IO(nil), b.Outputs...),
		Gates:    gates,
		Stats:    b.Stats,
	}
	if b.Params.Diagnostics {
		fmt.Printf(" - Compile: %v\n", result)
	}
	return result
}
