//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"io"
)

// Dot creates graphviz dot output of the circuit.
func (c *Circuit) Dot(out io.Writer) {
	fmt.Fprintf(out, "digraph circuit\n{\n")
	fmt.Fprintf(out, "  overlap=scale;\n")
	fmt.Fprintf(out, "  node\t[fontname=\"Helvetica\"];\n")
	fmt.Fprintf(out, "  {\n    node [shape=plaintext];\n")
	for w := 0; w < c.NumWires; w++ {
		fmt.Fprintf(out, "    w%d\t[label=\"%d\"];\n", w, w)
	}
	fmt.Fprintf(out, "  }\n")

	fmt.Fprintf(out, "  {\n    node [shape=box];\n")
	for idx, gate := range c.Gates {
		fmt.Fprintf(out, "    g%d\t[label=\"%s\"];\n", idx, gate.Op)
	}
	fmt.Fprintf(out, "  }\n")

	rank := func(args IO) {
		fmt.Fprintf(out, "  {  rank=same")
		for _, arg := range args {
			for _, w := range arg.Wires {
				fmt.Fprintf(out, "; %v", w)
			}
		}
		fmt.Fprintf(out, ";}\n")
	}
	rank(c.Inputs)
	rank(c.Outputs)

	for idx, gate := range c.Gates {
		for _, i := range gate.Inputs() {
			fmt.Fprintf(out, "  %v -> g%d;\n", i, idx)
		}
		fmt.Fprintf(out, "  g%d -> %v;\n", idx, gate.Output)
	}
	fmt.Fprintf(out, "}\n")
}
