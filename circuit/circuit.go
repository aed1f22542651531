//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
)

// Operation specifies gate function.
type Operation byte

// Gate functions.
const (
	XOR Operation = iota
	XNOR
	AND
	OR
	INV
)

// Stats holds statistics about circuit operations.
type Stats [INV + 1]int

// Count returns the total number of gates.
func (s Stats) Count() int {
	var result int
	for _, v := range s {
		result += v
	}
	return result
}

// Add adds the argument statistics to this one.
func (s *Stats) Add(o Stats) {
	for op, v := range o {
		s[op] += v
	}
}

// Cost computes the relative computational cost of the gates. XOR
// and XNOR gates are free with free-XOR garbling.
func (s Stats) Cost() int {
	return (s[AND]+s[OR])*4 + s[INV]*2
}

func (s Stats) String() string {
	var result string
	for k := XOR; k <= INV; k++ {
		if len(result) > 0 {
			result += " "
		}
		result += fmt.Sprintf("%s=%d", k, s[k])
	}
	return result
}

func (op Operation) String() string {
	switch op {
	case XOR:
		return "XOR"
	case XNOR:
		return "XNOR"
	case AND:
		return "AND"
	case OR:
		return "OR"
	case INV:
		return "INV"
	default:
		return fmt.Sprintf("{Operation %d}", op)
	}
}

// Predefined constant wires. Every circuit reserves the first two
// wire IDs for the constant values 0 and 1.
const (
	ZeroWire Wire = 0
	OneWire  Wire = 1
)

// IOArg describes circuit input or output argument. The argument
// bits are carried by Wires, least significant bit first.
type IOArg struct {
	Name  string
	Type  string
	Wires []Wire
}

// Size returns the argument size in bits.
func (io IOArg) Size() int {
	return len(io.Wires)
}

func (io IOArg) String() string {
	if len(io.Name) > 0 {
		return io.Name + ":" + io.Type
	}
	return io.Type
}

// IO specifies circuit input and output arguments.
type IO []IOArg

// Size computes the size of the circuit input and output arguments in
// bits.
func (io IO) Size() int {
	var sum int
	for _, a := range io {
		sum += a.Size()
	}
	return sum
}

func (io IO) String() string {
	var str = ""
	for i, a := range io {
		if i > 0 {
			str += ", "
		}
		str += a.String()
	}
	return str
}

// Circuit specifies a boolean circuit.
type Circuit struct {
	NumGates int
	NumWires int
	Inputs   IO
	Outputs  IO
	Gates    []Gate
	Stats    Stats
}

func (c *Circuit) String() string {
	return fmt.Sprintf("#gates=%d (%s) #w=%d", c.NumGates, c.Stats, c.NumWires)
}

// Cost computes the relative computational cost of the circuit.
func (c *Circuit) Cost() int {
	return c.Stats.Cost()
}

// Dump prints a debug dump of the circuit.
func (c *Circuit) Dump() {
	fmt.Printf("circuit %s\n", c)
	for id, gate := range c.Gates {
		fmt.Printf("%04d\t%s\n", id, gate)
	}
}

// Gate specifies a boolean gate.
type Gate struct {
	Input0 Wire
	Input1 Wire
	Output Wire
	Op     Operation
}

func (g Gate) String() string {
	return fmt.Sprintf("%v %v %v", g.Inputs(), g.Op, g.Output)
}

// Inputs returns gate input wires.
func (g Gate) Inputs() []Wire {
	switch g.Op {
	case XOR, XNOR, AND, OR:
		return []Wire{g.Input0, g.Input1}
	case INV:
		return []Wire{g.Input0}
	default:
		panic(fmt.Sprintf("unsupported gate type %s", g.Op))
	}
}

// Wire specifies a wire ID.
type Wire uint32

// ID returns the wire ID as integer.
func (w Wire) ID() int {
	return int(w)
}

func (w Wire) String() string {
	return fmt.Sprintf("w%d", w)
}
