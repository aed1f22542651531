//
// Copyright (c) 2020-2021 Markku Rossi
//
// All rights reserved.
//

package utils

import (
	"fmt"
)

// Point specifies a position in the program input, for example an
// argument index and the column within the argument.
type Point struct {
	Source string
	Line   int // 1-based
	Col    int // 0-based
}

func (p Point) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Source, p.Line, p.Col)
}

// Undefined tests if the position is undefined. Undefined positions
// print only the source.
func (p Point) Undefined() bool {
	return p.Line == 0
}
