//
// Copyright (c) 2020-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// MAGIC is a magic number for the wire-listed circuit format.
	MAGIC = 0x6f686331 // ohc1
)

var (
	bo = binary.BigEndian
)

// Marshal marshals circuit in the wire-listed binary circuit
// format. Unlike the Bristol format, the I/O arguments carry their
// wire IDs explicitly since inputs may be introduced between gates.
func (c *Circuit) Marshal(out io.Writer) error {
	var data = []interface{}{
		uint32(MAGIC),
		uint32(c.NumGates),
		uint32(c.NumWires),
		uint32(len(c.Inputs)),
		uint32(len(c.Outputs)),
	}
	for _, v := range data {
		if err := binary.Write(out, bo, v); err != nil {
			return err
		}
	}
	for _, input := range c.Inputs {
		if err := marshalIOArg(out, input); err != nil {
			return err
		}
	}
	for _, output := range c.Outputs {
		if err := marshalIOArg(out, output); err != nil {
			return err
		}
	}

	for _, g := range c.Gates {
		switch g.Op {
		case XOR, XNOR, AND, OR:
			data = []interface{}{
				byte(g.Op),
				uint32(g.Input0), uint32(g.Input1), uint32(g.Output),
			}

		case INV:
			data = []interface{}{
				byte(g.Op),
				uint32(g.Input0), uint32(g.Output),
			}
		default:
			return fmt.Errorf("unsupported gate type %s", g.Op)
		}
		for _, v := range data {
			if err := binary.Write(out, bo, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func marshalIOArg(out io.Writer, arg IOArg) error {
	if err := marshalString(out, arg.Name); err != nil {
		return err
	}
	if err := marshalString(out, arg.Type); err != nil {
		return err
	}
	if err := binary.Write(out, bo, uint32(len(arg.Wires))); err != nil {
		return err
	}
	for _, w := range arg.Wires {
		if err := binary.Write(out, bo, uint32(w)); err != nil {
			return err
		}
	}
	return nil
}

func marshalString(out io.Writer, val string) error {
	bytes := []byte(val)
	if err := binary.Write(out, bo, uint32(len(bytes))); err != nil {
		return err
	}
	_, err := out.Write(bytes)
	return err
}

// Parse parses a circuit in the wire-listed binary circuit format.
func Parse(in io.Reader) (*Circuit, error) {
	var header [5]uint32
	for i := range header {
		if err := binary.Read(in, bo, &header[i]); err != nil {
			return nil, err
		}
	}
	if header[0] != MAGIC {
		return nil, fmt.Errorf("invalid magic 0x%08x", header[0])
	}
	c := &Circuit{
		NumGates: int(header[1]),
		NumWires: int(header[2]),
	}
	for i := 0; i < int(header[3]); i++ {
		arg, err := parseIOArg(in)
		if err != nil {
			return nil, err
		}
		c.Inputs = append(c.Inputs, arg)
	}
	for i := 0; i < int(header[4]); i++ {
		arg, err := parseIOArg(in)
		if err != nil {
			return nil, err
		}
		c.Outputs = append(c.Outputs, arg)
	}

	c.Gates = make([]Gate, 0, c.NumGates)
	for i := 0; i < c.NumGates; i++ {
		var op byte
		if err := binary.Read(in, bo, &op); err != nil {
			return nil, err
		}
		var g Gate
		g.Op = Operation(op)

		var wires []uint32
		switch g.Op {
		case XOR, XNOR, AND, OR:
			wires = make([]uint32, 3)
		case INV:
			wires = make([]uint32, 2)
		default:
			return nil, fmt.Errorf("unsupported gate type %s", g.Op)
		}
		if err := binary.Read(in, bo, wires); err != nil {
			return nil, err
		}
		for _, w := range wires {
			if int(w) >= c.NumWires {
				return nil, fmt.Errorf("gate %d: invalid wire %d", i, w)
			}
		}
		g.Input0 = Wire(wires[0])
		if len(wires) == 3 {
			g.Input1 = Wire(wires[1])
		}
		g.Output = Wire(wires[len(wires)-1])

		c.Gates = append(c.Gates, g)
		c.Stats[g.Op]++
	}
	return c, nil
}

func parseIOArg(in io.Reader) (arg IOArg, err error) {
	arg.Name, err = parseString(in)
	if err != nil {
		return
	}
	arg.Type, err = parseString(in)
	if err != nil {
		return
	}
	var n uint32
	if err = binary.Read(in, bo, &n); err != nil {
		return
	}
	wires := make([]uint32, n)
	if err = binary.Read(in, bo, wires); err != nil {
		return
	}
	for _, w := range wires {
		arg.Wires = append(arg.Wires, Wire(w))
	}
	return
}

func parseString(in io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(in, bo, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(in, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
