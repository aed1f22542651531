//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package secret

import (
	"fmt"
	"io"

	"github.com/markkurossi/tabulate"
)

// Op identifies a secret value operation.
type Op int

// Secret value operations.
const (
	OpInput Op = iota
	OpConst
	OpAdd
	OpSub
	OpMul
	OpLt
	OpEq
	OpSelect
	OpAnd
	OpOr
	OpXor
	OpNot
	OpBits
	OpRandom
	OpReveal
	NumOps
)

var opNames = [NumOps]string{
	OpInput:  "input",
	OpConst:  "const",
	OpAdd:    "add",
	OpSub:    "sub",
	OpMul:    "mul",
	OpLt:     "lt",
	OpEq:     "eq",
	OpSelect: "select",
	OpAnd:    "and",
	OpOr:     "or",
	OpXor:    "xor",
	OpNot:    "not",
	OpBits:   "bits",
	OpRandom: "random",
	OpReveal: "reveal",
}

func (op Op) String() string {
	if op >= 0 && op < NumOps {
		return opNames[op]
	}
	return fmt.Sprintf("{Op %d}", int(op))
}

// Counters count the secret value operations of a backend.
type Counters [NumOps]int

// Inc increments the counter of the operation op.
func (c *Counters) Inc(op Op) {
	c[op]++
}

// Total returns the total number of operations.
func (c Counters) Total() int {
	var sum int
	for _, v := range c {
		sum += v
	}
	return sum
}

// Sub returns the difference c-o.
func (c Counters) Sub(o Counters) Counters {
	for i := range c {
		c[i] -= o[i]
	}
	return c
}

func (c Counters) String() string {
	var result string
	for op := Op(0); op < NumOps; op++ {
		if c[op] == 0 {
			continue
		}
		if len(result) > 0 {
			result += " "
		}
		result += fmt.Sprintf("%s=%d", op, c[op])
	}
	return result
}

// Print prints the operation counters to out.
func (c *Counters) Print(out io.Writer) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Op").SetAlign(tabulate.ML)
	tab.Header("Count").SetAlign(tabulate.MR)
	tab.Header("%").SetAlign(tabulate.MR)

	total := c.Total()
	for op := Op(0); op < NumOps; op++ {
		if c[op] == 0 {
			continue
		}
		row := tab.Row()
		row.Column(op.String())
		row.Column(fmt.Sprintf("%d", c[op]))
		row.Column(fmt.Sprintf("%.2f%%", float64(c[op])/float64(total)*100))
	}
	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column(fmt.Sprintf("%d", total)).SetFormat(tabulate.FmtBold)
	row.Column("").SetFormat(tabulate.FmtBold)

	tab.Print(out)
}
