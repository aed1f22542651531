//
// Copyright (c) 2020-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"io"

	"github.com/markkurossi/tabulate"
)

// Report prints the circuit gate statistics to out.
func (c *Circuit) Report(out io.Writer) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Gate").SetAlign(tabulate.ML)
	tab.Header("Count").SetAlign(tabulate.MR)
	tab.Header("%").SetAlign(tabulate.MR)

	total := c.Stats.Count()
	for op := XOR; op <= INV; op++ {
		row := tab.Row()
		row.Column(op.String())
		row.Column(fmt.Sprintf("%d", c.Stats[op]))
		if total > 0 {
			row.Column(fmt.Sprintf("%.2f%%",
				float64(c.Stats[op])/float64(total)*100))
		} else {
			row.Column("")
		}
	}
	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column(fmt.Sprintf("%d", total)).SetFormat(tabulate.FmtBold)
	row.Column("").SetFormat(tabulate.FmtBold)

	row = tab.Row()
	row.Column("├╴Wires").SetFormat(tabulate.FmtItalic)
	row.Column(fmt.Sprintf("%d", c.NumWires)).SetFormat(tabulate.FmtItalic)
	row.Column("")

	row = tab.Row()
	row.Column("╰╴Cost").SetFormat(tabulate.FmtItalic)
	row.Column(fmt.Sprintf("%d", c.Cost())).SetFormat(tabulate.FmtItalic)
	row.Column("")

	tab.Print(out)
}
