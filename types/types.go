//
// types.go
//
// Copyright (c) 2020-2025 Markku Rossi
//
// All rights reserved.
//

package types

import (
	"fmt"
	"math"
)

// Type specifies a secret value type class.
type Type int8

// Size specify sizes and bit counts in circuits.
type Size int32

// Secret value type classes.
const (
	TUndefined Type = iota
	TBool
	TInt
	TUint
)

// Types define the type class names.
var Types = map[string]Type{
	"<Undefined>": TUndefined,
	"bool":        TBool,
	"int":         TInt,
	"uint":        TUint,
}

var shortTypes = map[Type]string{
	TUndefined: "?",
	TBool:      "b",
	TInt:       "i",
	TUint:      "u",
}

func (t Type) String() string {
	for k, v := range Types {
		if v == t {
			return k
		}
	}
	return fmt.Sprintf("{Type %d}", t)
}

// ShortString returns a short string name for the type.
func (t Type) ShortString() string {
	name, ok := shortTypes[t]
	if ok {
		return name
	}
	return t.String()
}

// MaxBits defines the widest supported secret integer.
const MaxBits = 64

// Info specifies information about a secret value type.
type Info struct {
	Type Type
	Bits Size
}

// Undefined defines type info for undefined types.
var Undefined = Info{
	Type: TUndefined,
}

// Bool defines type info for secret bits.
var Bool = Info{
	Type: TBool,
	Bits: 1,
}

// Int16 defines type info for signed 16bit integers.
var Int16 = Info{
	Type: TInt,
	Bits: 16,
}

// Int32 defines type info for signed 32bit integers.
var Int32 = Info{
	Type: TInt,
	Bits: 32,
}

// Int64 defines type info for signed 64bit integers.
var Int64 = Info{
	Type: TInt,
	Bits: 64,
}

// Uint32 defines type info for unsigned 32bit integers.
var Uint32 = Info{
	Type: TUint,
	Bits: 32,
}

func (i Info) String() string {
	if i.Bits == 0 {
		return i.Type.String()
	}
	return fmt.Sprintf("%s%d", i.Type, i.Bits)
}

// ShortString returns a short string name for the type info.
func (i Info) ShortString() string {
	if i.Bits == 0 {
		return i.Type.ShortString()
	}
	return fmt.Sprintf("%s%d", i.Type.ShortString(), i.Bits)
}

// Undefined tests if type is undefined.
func (i Info) Undefined() bool {
	return i.Type == TUndefined
}

// Signed tests if the type is a signed integer type.
func (i Info) Signed() bool {
	return i.Type == TInt
}

// Equal tests if the argument type is equal to this type info.
func (i Info) Equal(o Info) bool {
	return i.Type == o.Type && i.Bits == o.Bits
}

// Min returns the smallest value representable by the type.
func (i Info) Min() int64 {
	switch i.Type {
	case TInt:
		if i.Bits >= 64 {
			return math.MinInt64
		}
		return -(int64(1) << (i.Bits - 1))
	default:
		return 0
	}
}

// Max returns the largest value representable by the type. Unsigned
// 64-bit values are limited to the int64 range.
func (i Info) Max() int64 {
	switch i.Type {
	case TBool:
		return 1
	case TInt:
		if i.Bits >= 64 {
			return math.MaxInt64
		}
		return int64(1)<<(i.Bits-1) - 1
	case TUint:
		if i.Bits >= 63 {
			return math.MaxInt64
		}
		return int64(1)<<i.Bits - 1
	default:
		return 0
	}
}

// CanHold tests if the value v is representable by the type.
func (i Info) CanHold(v int64) bool {
	return v >= i.Min() && v <= i.Max()
}

// Truncate wraps the value v to the type's width, sign extending
// signed types.
func (i Info) Truncate(v int64) int64 {
	if i.Bits >= 64 {
		return v
	}
	mask := uint64(1)<<i.Bits - 1
	u := uint64(v) & mask
	if i.Type == TInt && u&(uint64(1)<<(i.Bits-1)) != 0 {
		u |= ^mask
	}
	return int64(u)
}
