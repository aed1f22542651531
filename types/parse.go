//
// parse.go
//
// Copyright (c) 2021-2025 Markku Rossi
//
// All rights reserved.
//

package types

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	reSized = regexp.MustCompilePOSIX(`^([[:alpha:]]+)([[:digit:]]*)$`)
)

// Parse parses a secret value type name such as "int32" or "i64" and
// returns its type information.
func Parse(val string) (info Info, err error) {
	switch val {
	case "b", "bool":
		info = Bool
		return
	}

	m := reSized.FindStringSubmatch(val)
	if m == nil {
		return info, fmt.Errorf("types.Parse: unknown type: %s", val)
	}
	switch m[1] {
	case "i", "int", "sint":
		info.Type = TInt

	case "u", "uint":
		info.Type = TUint

	default:
		return info, fmt.Errorf("types.Parse: unknown type: %s", val)
	}
	if len(m[2]) == 0 {
		info.Bits = 64
		return
	}
	bits, err := strconv.ParseInt(m[2], 10, 32)
	if err != nil {
		return
	}
	if bits < 2 || bits > MaxBits {
		return info, fmt.Errorf("types.Parse: invalid width %d: %s", bits, val)
	}
	info.Bits = Size(bits)
	return
}
